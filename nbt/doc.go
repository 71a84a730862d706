// Package nbt implements the named binary tag format: a self-describing,
// typed tree of values used to persist game-world and configuration data.
//
// # Data Model
//
// Thirteen tag kinds, identified on the wire by a single byte:
//
//	0  End        sentinel; empty list element kind, compound terminator
//	1  Byte       int8 (booleans are bytes holding 1 or 0)
//	2  Short      int16
//	3  Int        int32
//	4  Long       int64
//	5  Float      float32
//	6  Double     float64
//	7  ByteArray  []byte
//	8  String     modified UTF-8, at most 65535 encoded bytes
//	9  List       homogeneous, locked to one element kind
//	10 Compound   ordered map of unique names to tags
//	11 IntArray   []int32
//	12 LongArray  []int64
//
// # Binary Form
//
// All integers are big-endian. A named tag is its kind byte, a 2-byte name
// length, the name and the payload. List elements carry no header; the
// list stores one element kind and an int32 count. A compound's entries
// are named tags followed by a single End byte.
//
// # Text Forms
//
// Text renders the canonical form that ParseText reads back:
//
//	{name:"Steve",hp:20s,pos:[1.5d,64d,-3d],data:[I;1,2]}
//
// Display and String render a debug form naming each variant:
//
//	{"type":"ShortTag","value":20}
//
// # Depth Guard
//
// Every recursive operation spends one unit of a nesting budget, MaxDepth
// by default, when it enters a non-empty list or compound. Exceeding it
// fails the whole operation with ErrMaxDepth, which also stops a list
// that contains itself.
package nbt
