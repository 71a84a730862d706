package nbt

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Number is implemented by the six numeric scalar tags. The As methods
// coerce the value with the usual two's-complement truncation; floats
// saturate when converted to integers and NaN becomes 0.
type Number interface {
	Tag
	AsByte() int8
	AsShort() int16
	AsInt() int32
	AsLong() int64
	AsFloat() float32
	AsDouble() float64
}

// ============================================================
// Byte
// ============================================================

// ByteTag holds a signed 8-bit integer. Booleans are stored as bytes.
type ByteTag struct {
	named
	Value int8
}

// NewByte creates an unnamed byte tag.
func NewByte(v int8) *ByteTag {
	return &ByteTag{Value: v}
}

// NewBoolean creates a byte tag holding 1 for true and 0 for false.
func NewBoolean(v bool) *ByteTag {
	if v {
		return &ByteTag{Value: 1}
	}
	return &ByteTag{Value: 0}
}

func (*ByteTag) Kind() Kind { return KindByte }

// AsBool reports whether the value is non-zero.
func (t *ByteTag) AsBool() bool { return t.Value != 0 }

func (t *ByteTag) AsByte() int8        { return t.Value }
func (t *ByteTag) AsShort() int16      { return int16(t.Value) }
func (t *ByteTag) AsInt() int32        { return int32(t.Value) }
func (t *ByteTag) AsLong() int64       { return int64(t.Value) }
func (t *ByteTag) AsFloat() float32    { return float32(t.Value) }
func (t *ByteTag) AsDouble() float64   { return float64(t.Value) }
func (t *ByteTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *ByteTag) Compare(o Tag) int   { return compareNumber(t, o) }
func (t *ByteTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *ByteTag) String() string      { return displayString(t) }

func (t *ByteTag) writePayload(w *writer, _ int) error {
	return w.u8(uint8(t.Value))
}

func (t *ByteTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString(strconv.FormatInt(int64(t.Value), 10))
	b.WriteByte('b')
	return nil
}

func (t *ByteTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayScalar(b, KindByte, strconv.FormatInt(int64(t.Value), 10))
	return nil
}

func (t *ByteTag) clone(int) (Tag, error) {
	c := *t
	return &c, nil
}

func (t *ByteTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*ByteTag)
	return ok && v.Value == t.Value, nil
}

// ============================================================
// Short
// ============================================================

// ShortTag holds a signed 16-bit integer.
type ShortTag struct {
	named
	Value int16
}

// NewShort creates an unnamed short tag.
func NewShort(v int16) *ShortTag {
	return &ShortTag{Value: v}
}

func (*ShortTag) Kind() Kind { return KindShort }

func (t *ShortTag) AsByte() int8        { return int8(t.Value) }
func (t *ShortTag) AsShort() int16      { return t.Value }
func (t *ShortTag) AsInt() int32        { return int32(t.Value) }
func (t *ShortTag) AsLong() int64       { return int64(t.Value) }
func (t *ShortTag) AsFloat() float32    { return float32(t.Value) }
func (t *ShortTag) AsDouble() float64   { return float64(t.Value) }
func (t *ShortTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *ShortTag) Compare(o Tag) int   { return compareNumber(t, o) }
func (t *ShortTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *ShortTag) String() string      { return displayString(t) }

func (t *ShortTag) writePayload(w *writer, _ int) error {
	return w.u16(uint16(t.Value))
}

func (t *ShortTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString(strconv.FormatInt(int64(t.Value), 10))
	b.WriteByte('s')
	return nil
}

func (t *ShortTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayScalar(b, KindShort, strconv.FormatInt(int64(t.Value), 10))
	return nil
}

func (t *ShortTag) clone(int) (Tag, error) {
	c := *t
	return &c, nil
}

func (t *ShortTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*ShortTag)
	return ok && v.Value == t.Value, nil
}

// ============================================================
// Int
// ============================================================

// IntTag holds a signed 32-bit integer.
type IntTag struct {
	named
	Value int32
}

// NewInt creates an unnamed int tag.
func NewInt(v int32) *IntTag {
	return &IntTag{Value: v}
}

func (*IntTag) Kind() Kind { return KindInt }

func (t *IntTag) AsByte() int8        { return int8(t.Value) }
func (t *IntTag) AsShort() int16      { return int16(t.Value) }
func (t *IntTag) AsInt() int32        { return t.Value }
func (t *IntTag) AsLong() int64       { return int64(t.Value) }
func (t *IntTag) AsFloat() float32    { return float32(t.Value) }
func (t *IntTag) AsDouble() float64   { return float64(t.Value) }
func (t *IntTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *IntTag) Compare(o Tag) int   { return compareNumber(t, o) }
func (t *IntTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *IntTag) String() string      { return displayString(t) }

func (t *IntTag) writePayload(w *writer, _ int) error {
	return w.u32(uint32(t.Value))
}

func (t *IntTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString(strconv.FormatInt(int64(t.Value), 10))
	return nil
}

func (t *IntTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayScalar(b, KindInt, strconv.FormatInt(int64(t.Value), 10))
	return nil
}

func (t *IntTag) clone(int) (Tag, error) {
	c := *t
	return &c, nil
}

func (t *IntTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*IntTag)
	return ok && v.Value == t.Value, nil
}

// ============================================================
// Long
// ============================================================

// LongTag holds a signed 64-bit integer.
type LongTag struct {
	named
	Value int64
}

// NewLong creates an unnamed long tag.
func NewLong(v int64) *LongTag {
	return &LongTag{Value: v}
}

func (*LongTag) Kind() Kind { return KindLong }

func (t *LongTag) AsByte() int8        { return int8(t.Value) }
func (t *LongTag) AsShort() int16      { return int16(t.Value) }
func (t *LongTag) AsInt() int32        { return int32(t.Value) }
func (t *LongTag) AsLong() int64       { return t.Value }
func (t *LongTag) AsFloat() float32    { return float32(t.Value) }
func (t *LongTag) AsDouble() float64   { return float64(t.Value) }
func (t *LongTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *LongTag) Compare(o Tag) int   { return compareNumber(t, o) }
func (t *LongTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *LongTag) String() string      { return displayString(t) }

func (t *LongTag) writePayload(w *writer, _ int) error {
	return w.u64(uint64(t.Value))
}

func (t *LongTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString(strconv.FormatInt(t.Value, 10))
	b.WriteByte('l')
	return nil
}

func (t *LongTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayScalar(b, KindLong, strconv.FormatInt(t.Value, 10))
	return nil
}

func (t *LongTag) clone(int) (Tag, error) {
	c := *t
	return &c, nil
}

func (t *LongTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*LongTag)
	return ok && v.Value == t.Value, nil
}

// ============================================================
// Float
// ============================================================

// FloatTag holds an IEEE 754 single-precision value.
type FloatTag struct {
	named
	Value float32
}

// NewFloat creates an unnamed float tag.
func NewFloat(v float32) *FloatTag {
	return &FloatTag{Value: v}
}

func (*FloatTag) Kind() Kind { return KindFloat }

func (t *FloatTag) AsByte() int8   { return int8(t.AsInt()) }
func (t *FloatTag) AsShort() int16 { return int16(t.AsInt()) }
func (t *FloatTag) AsInt() int32 {
	return int32(saturate(float64(t.Value), math.MinInt32, math.MaxInt32))
}
func (t *FloatTag) AsLong() int64       { return saturate(float64(t.Value), math.MinInt64, math.MaxInt64) }
func (t *FloatTag) AsFloat() float32    { return t.Value }
func (t *FloatTag) AsDouble() float64   { return float64(t.Value) }
func (t *FloatTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *FloatTag) Compare(o Tag) int   { return compareNumber(t, o) }
func (t *FloatTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *FloatTag) String() string      { return displayString(t) }

func (t *FloatTag) writePayload(w *writer, _ int) error {
	return w.u32(math.Float32bits(t.Value))
}

func (t *FloatTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString(formatFloat(float64(t.Value), 32))
	b.WriteByte('f')
	return nil
}

func (t *FloatTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayScalar(b, KindFloat, formatFloat(float64(t.Value), 32))
	return nil
}

func (t *FloatTag) clone(int) (Tag, error) {
	c := *t
	return &c, nil
}

// equalPayload compares bit patterns, so NaN equals NaN and 0 differs
// from -0.
func (t *FloatTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*FloatTag)
	if !ok {
		return false, nil
	}
	if t.Value != t.Value && v.Value != v.Value {
		return true, nil
	}
	return math.Float32bits(v.Value) == math.Float32bits(t.Value), nil
}

// ============================================================
// Double
// ============================================================

// DoubleTag holds an IEEE 754 double-precision value.
type DoubleTag struct {
	named
	Value float64
}

// NewDouble creates an unnamed double tag.
func NewDouble(v float64) *DoubleTag {
	return &DoubleTag{Value: v}
}

func (*DoubleTag) Kind() Kind { return KindDouble }

func (t *DoubleTag) AsByte() int8        { return int8(t.AsInt()) }
func (t *DoubleTag) AsShort() int16      { return int16(t.AsInt()) }
func (t *DoubleTag) AsInt() int32        { return int32(saturate(t.Value, math.MinInt32, math.MaxInt32)) }
func (t *DoubleTag) AsLong() int64       { return saturate(t.Value, math.MinInt64, math.MaxInt64) }
func (t *DoubleTag) AsFloat() float32    { return float32(t.Value) }
func (t *DoubleTag) AsDouble() float64   { return t.Value }
func (t *DoubleTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *DoubleTag) Compare(o Tag) int   { return compareNumber(t, o) }
func (t *DoubleTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *DoubleTag) String() string      { return displayString(t) }

func (t *DoubleTag) writePayload(w *writer, _ int) error {
	return w.u64(math.Float64bits(t.Value))
}

func (t *DoubleTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString(formatFloat(t.Value, 64))
	b.WriteByte('d')
	return nil
}

func (t *DoubleTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayScalar(b, KindDouble, formatFloat(t.Value, 64))
	return nil
}

func (t *DoubleTag) clone(int) (Tag, error) {
	c := *t
	return &c, nil
}

func (t *DoubleTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*DoubleTag)
	if !ok {
		return false, nil
	}
	if t.Value != t.Value && v.Value != v.Value {
		return true, nil
	}
	return math.Float64bits(v.Value) == math.Float64bits(t.Value), nil
}

// ============================================================
// Numeric helpers
// ============================================================

// saturate converts f to an integer clamped to [lo, hi]; NaN yields 0.
func saturate(f float64, lo, hi int64) int64 {
	switch {
	case f != f:
		return 0
	case f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	default:
		return int64(f)
	}
}

func isFloating(k Kind) bool {
	return k == KindFloat || k == KindDouble
}

// compareNumber orders numeric tags by value. Integers compare exactly;
// any floating operand switches to float64 comparison. Non-numeric tags
// are ordered by kind, and every tag sorts after an absent one.
func compareNumber(t Number, other Tag) int {
	if isNil(other) {
		return 1
	}
	o, ok := other.(Number)
	if !ok {
		return cmp.Compare(t.Kind(), other.Kind())
	}
	if isFloating(t.Kind()) || isFloating(o.Kind()) {
		return cmp.Compare(t.AsDouble(), o.AsDouble())
	}
	return cmp.Compare(t.AsLong(), o.AsLong())
}
