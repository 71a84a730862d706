// Package stream frames a sequence of tag documents for transport over a
// byte stream.
//
// Each frame is a one-line text header followed by the payload:
//
//	@frame{v=1 seq=N kind=K len=N [crc=X] [base=blake3:X] [final=true]}\n
//	<payload bytes>\n
//
// Frames provide:
//   - Message boundaries and resync on a plain text header
//   - Ordering via sequence numbers (seq)
//   - Integrity via optional CRC-32
//   - Chaining via an optional state hash (base) of the previous document
//
// A tag frame carries a binary named tag, a text frame carries its
// canonical text form and an end frame closes the stream.
package stream

import (
	"fmt"

	"github.com/Neumenon/nbt/nbt"
)

// Version is the frame protocol version.
const Version uint8 = 1

// FrameKind indicates how a frame's payload is encoded.
type FrameKind uint8

const (
	KindTag  FrameKind = 0 // Binary named tag
	KindText FrameKind = 1 // Canonical text form
	KindEnd  FrameKind = 2 // End of stream, no payload
)

// String returns the kind name.
func (k FrameKind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindText:
		return "text"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// ParseKind parses a kind name or its numeric value.
func ParseKind(s string) (FrameKind, bool) {
	switch s {
	case "tag", "0":
		return KindTag, true
	case "text", "1":
		return KindText, true
	case "end", "2":
		return KindEnd, true
	default:
		return 0, false
	}
}

// Frame represents a single frame.
type Frame struct {
	// Required fields
	Version uint8     // Protocol version (must be 1)
	Seq     uint64    // Sequence number, monotonic from 1
	Kind    FrameKind // Payload encoding
	Payload []byte

	// Optional fields
	CRC   *uint32   // CRC-32 of payload (nil if not present)
	Base  *nbt.Hash // State hash of the previous document (nil if not present)
	Final bool      // End-of-stream marker
}

// HasCRC returns true if CRC is present.
func (f *Frame) HasCRC() bool {
	return f.CRC != nil
}

// HasBase returns true if base hash is present.
func (f *Frame) HasBase() bool {
	return f.Base != nil
}

// IsFinal returns true if this frame ends the stream.
func (f *Frame) IsFinal() bool {
	return f.Final || f.Kind == KindEnd
}

// MaxPayloadSize is the default maximum payload size (64 MiB).
const MaxPayloadSize = 64 * 1024 * 1024

// ParseError reports a malformed frame header or payload.
type ParseError struct {
	Reason string
	Offset int64
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("frame: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("frame: %s", e.Reason)
}

// CRCMismatchError is returned when CRC verification fails.
type CRCMismatchError struct {
	Seq      uint64
	Expected uint32
	Got      uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("frame %d: CRC mismatch: expected %08x, got %08x", e.Seq, e.Expected, e.Got)
}

// BaseMismatchError is returned when a frame's base does not match the
// state hash of the previous document.
type BaseMismatchError struct {
	Seq      uint64
	Expected nbt.Hash
	Got      nbt.Hash
}

func (e *BaseMismatchError) Error() string {
	return fmt.Sprintf("frame %d: base hash mismatch: expected %s, got %s", e.Seq, e.Expected, e.Got)
}

// SequenceError is returned when a frame arrives out of order.
type SequenceError struct {
	Expected uint64
	Got      uint64
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("frame: sequence gap: expected %d, got %d", e.Expected, e.Got)
}
