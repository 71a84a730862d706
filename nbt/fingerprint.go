package nbt

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// String returns the hex encoding of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses a 64-character hex string.
func ParseHash(s string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("%w: parsing hash: %w", ErrInvalidArgument, err)
	}
	if len(decoded) != len(h) {
		return h, fmt.Errorf("%w: hash is %d bytes, want %d", ErrInvalidArgument, len(decoded), len(h))
	}
	copy(h[:], decoded)
	return h, nil
}

// fingerprintKey separates tag fingerprints from other BLAKE3 uses of the
// same bytes. ASCII "nbt.fingerprint", zero-padded.
var fingerprintKey = [32]byte{
	'n', 'b', 't', '.', 'f', 'i', 'n', 'g', 'e', 'r', 'p', 'r', 'i', 'n', 't',
}

// Fingerprint hashes the binary encoding of t, name included. Compounds
// holding the same entries in a different order are Equal but have
// different fingerprints.
func Fingerprint(t Tag, opts ...Option) (Hash, error) {
	data, err := Marshal(t, opts...)
	if err != nil {
		return Hash{}, err
	}
	return SumKeyed(fingerprintKey, data), nil
}

// SumKeyed computes the BLAKE3 keyed hash of data.
func SumKeyed(key [32]byte, data []byte) Hash {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("nbt: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}
