package nbt

import (
	"slices"
	"strconv"
	"strings"
)

// ByteArrayTag holds a length-prefixed array of bytes. Elements render as
// signed values in the text forms.
type ByteArrayTag struct {
	named
	Value []byte
}

// NewByteArray creates an unnamed byte array tag. The slice is not copied.
func NewByteArray(v []byte) *ByteArrayTag {
	return &ByteArrayTag{Value: v}
}

func (*ByteArrayTag) Kind() Kind { return KindByteArray }

// Len returns the number of elements.
func (t *ByteArrayTag) Len() int { return len(t.Value) }

func (t *ByteArrayTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *ByteArrayTag) Compare(o Tag) int   { return compareSized(KindByteArray, len(t.Value), o) }
func (t *ByteArrayTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *ByteArrayTag) String() string      { return displayString(t) }

func (t *ByteArrayTag) writePayload(w *writer, _ int) error {
	if err := w.length(len(t.Value)); err != nil {
		return err
	}
	return w.raw(t.Value)
}

func (t *ByteArrayTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString("[B;")
	for i, v := range t.Value {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(int8(v)), 10))
		b.WriteByte('b')
	}
	b.WriteByte(']')
	return nil
}

func (t *ByteArrayTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayOpen(b, KindByteArray)
	b.WriteByte('[')
	for i, v := range t.Value {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(int8(v)), 10))
	}
	b.WriteString("]}")
	return nil
}

func (t *ByteArrayTag) clone(int) (Tag, error) {
	return &ByteArrayTag{named: t.named, Value: slices.Clone(t.Value)}, nil
}

func (t *ByteArrayTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*ByteArrayTag)
	return ok && slices.Equal(v.Value, t.Value), nil
}

// IntArrayTag holds a length-prefixed array of 32-bit integers.
type IntArrayTag struct {
	named
	Value []int32
}

// NewIntArray creates an unnamed int array tag. The slice is not copied.
func NewIntArray(v []int32) *IntArrayTag {
	return &IntArrayTag{Value: v}
}

func (*IntArrayTag) Kind() Kind { return KindIntArray }

// Len returns the number of elements.
func (t *IntArrayTag) Len() int { return len(t.Value) }

func (t *IntArrayTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *IntArrayTag) Compare(o Tag) int   { return compareSized(KindIntArray, len(t.Value), o) }
func (t *IntArrayTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *IntArrayTag) String() string      { return displayString(t) }

func (t *IntArrayTag) writePayload(w *writer, _ int) error {
	if err := w.length(len(t.Value)); err != nil {
		return err
	}
	for _, v := range t.Value {
		if err := w.u32(uint32(v)); err != nil {
			return err
		}
	}
	return nil
}

func (t *IntArrayTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString("[I;")
	for i, v := range t.Value {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	b.WriteByte(']')
	return nil
}

func (t *IntArrayTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayOpen(b, KindIntArray)
	b.WriteByte('[')
	for i, v := range t.Value {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	b.WriteString("]}")
	return nil
}

func (t *IntArrayTag) clone(int) (Tag, error) {
	return &IntArrayTag{named: t.named, Value: slices.Clone(t.Value)}, nil
}

func (t *IntArrayTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*IntArrayTag)
	return ok && slices.Equal(v.Value, t.Value), nil
}

// LongArrayTag holds a length-prefixed array of 64-bit integers.
type LongArrayTag struct {
	named
	Value []int64
}

// NewLongArray creates an unnamed long array tag. The slice is not copied.
func NewLongArray(v []int64) *LongArrayTag {
	return &LongArrayTag{Value: v}
}

func (*LongArrayTag) Kind() Kind { return KindLongArray }

// Len returns the number of elements.
func (t *LongArrayTag) Len() int { return len(t.Value) }

func (t *LongArrayTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *LongArrayTag) Compare(o Tag) int   { return compareSized(KindLongArray, len(t.Value), o) }
func (t *LongArrayTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *LongArrayTag) String() string      { return displayString(t) }

func (t *LongArrayTag) writePayload(w *writer, _ int) error {
	if err := w.length(len(t.Value)); err != nil {
		return err
	}
	for _, v := range t.Value {
		if err := w.u64(uint64(v)); err != nil {
			return err
		}
	}
	return nil
}

func (t *LongArrayTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString("[L;")
	for i, v := range t.Value {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
		b.WriteByte('l')
	}
	b.WriteByte(']')
	return nil
}

func (t *LongArrayTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayOpen(b, KindLongArray)
	b.WriteByte('[')
	for i, v := range t.Value {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	b.WriteString("]}")
	return nil
}

func (t *LongArrayTag) clone(int) (Tag, error) {
	return &LongArrayTag{named: t.named, Value: slices.Clone(t.Value)}, nil
}

func (t *LongArrayTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*LongArrayTag)
	return ok && slices.Equal(v.Value, t.Value), nil
}
