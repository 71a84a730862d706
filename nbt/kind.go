package nbt

import "fmt"

// Kind identifies a tag variant. The numeric value is the kind byte used
// on the wire.
type Kind uint8

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "end"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindByteArray:
		return "byte[]"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindCompound:
		return "compound"
	case KindIntArray:
		return "int[]"
	case KindLongArray:
		return "long[]"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the thirteen known kinds.
func (k Kind) Valid() bool {
	return k <= KindLongArray
}

// typeName is the variant name used by the display form.
func (k Kind) typeName() string {
	switch k {
	case KindEnd:
		return "EndTag"
	case KindByte:
		return "ByteTag"
	case KindShort:
		return "ShortTag"
	case KindInt:
		return "IntTag"
	case KindLong:
		return "LongTag"
	case KindFloat:
		return "FloatTag"
	case KindDouble:
		return "DoubleTag"
	case KindByteArray:
		return "ByteArrayTag"
	case KindString:
		return "StringTag"
	case KindList:
		return "ListTag"
	case KindCompound:
		return "CompoundTag"
	case KindIntArray:
		return "IntArrayTag"
	case KindLongArray:
		return "LongArrayTag"
	default:
		return "UnknownTag"
	}
}

// Empty returns a fresh, unnamed, zero-valued tag of the given kind.
func Empty(k Kind) (Tag, error) {
	switch k {
	case KindEnd:
		return &EndTag{}, nil
	case KindByte:
		return &ByteTag{}, nil
	case KindShort:
		return &ShortTag{}, nil
	case KindInt:
		return &IntTag{}, nil
	case KindLong:
		return &LongTag{}, nil
	case KindFloat:
		return &FloatTag{}, nil
	case KindDouble:
		return &DoubleTag{}, nil
	case KindByteArray:
		return &ByteArrayTag{Value: []byte{}}, nil
	case KindString:
		return &StringTag{}, nil
	case KindList:
		return NewList(), nil
	case KindCompound:
		return NewCompound(), nil
	case KindIntArray:
		return &IntArrayTag{Value: []int32{}}, nil
	case KindLongArray:
		return &LongArrayTag{Value: []int64{}}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
}
