package stream

import (
	"hash/crc32"
	"strings"

	"github.com/Neumenon/nbt/nbt"
)

// ============================================================
// Payload checksum
// ============================================================

var crcTable = crc32.MakeTable(crc32.IEEE)

// ComputeCRC computes CRC-32 IEEE of the given bytes.
func ComputeCRC(data []byte) uint32 {
	return crc32.Checksum(data, crcTable)
}

// ============================================================
// State hash
// ============================================================

// stateKey separates stream state hashes from tag fingerprints. ASCII
// "nbt.stream.state", zero-padded.
var stateKey = [32]byte{
	'n', 'b', 't', '.', 's', 't', 'r', 'e', 'a', 'm', '.', 's', 't', 'a', 't', 'e',
}

// StateHash computes the chaining hash of a document: a keyed BLAKE3 hash
// of its canonical text form. The root name is not part of the state, so
// tag and text frames of the same document chain identically.
func StateHash(t nbt.Tag, opts ...nbt.Option) (nbt.Hash, error) {
	text, err := nbt.Text(t, opts...)
	if err != nil {
		return nbt.Hash{}, err
	}
	return nbt.SumKeyed(stateKey, []byte(text)), nil
}

func formatBase(h nbt.Hash) string {
	return "blake3:" + h.String()
}

// parseBase parses a base hash: "blake3:XXXX..." or "XXXX..."
func parseBase(val string) (nbt.Hash, bool) {
	h, err := nbt.ParseHash(strings.TrimPrefix(val, "blake3:"))
	return h, err == nil
}
