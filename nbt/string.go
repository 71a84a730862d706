package nbt

import (
	"cmp"
	"strings"
)

// StringTag holds a text value. On the wire it is a 2-byte length followed
// by modified UTF-8, so the encoded form is limited to 65535 bytes.
type StringTag struct {
	named
	Value string
}

// NewString creates an unnamed string tag.
func NewString(v string) *StringTag {
	return &StringTag{Value: v}
}

func (*StringTag) Kind() Kind { return KindString }

func (t *StringTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *StringTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *StringTag) String() string      { return displayString(t) }

// Compare orders strings lexicographically by byte value. Other kinds are
// ordered by kind and an absent tag sorts first.
func (t *StringTag) Compare(o Tag) int {
	if isNil(o) {
		return 1
	}
	if s, ok := o.(*StringTag); ok {
		return strings.Compare(t.Value, s.Value)
	}
	return cmp.Compare(KindString, o.Kind())
}

func (t *StringTag) writePayload(w *writer, _ int) error {
	return w.str(t.Value)
}

func (t *StringTag) appendText(b *strings.Builder, _ int) error {
	writeQuoted(b, t.Value)
	return nil
}

func (t *StringTag) appendDisplay(b *strings.Builder, _ int) error {
	var q strings.Builder
	writeQuoted(&q, t.Value)
	writeDisplayScalar(b, KindString, q.String())
	return nil
}

func (t *StringTag) clone(int) (Tag, error) {
	c := *t
	return &c, nil
}

func (t *StringTag) equalPayload(o Tag, _ int) (bool, error) {
	v, ok := o.(*StringTag)
	return ok && v.Value == t.Value, nil
}

// EndTag is the sentinel kind: the element kind of an empty list and the
// terminator of a compound's encoding. It has no payload.
type EndTag struct {
	named
}

func (*EndTag) Kind() Kind { return KindEnd }

func (t *EndTag) Equal(o Tag) bool    { return Equal(t, o) }
func (t *EndTag) Clone() (Tag, error) { return t.clone(MaxDepth) }
func (t *EndTag) String() string      { return displayString(t) }

func (t *EndTag) Compare(o Tag) int {
	if isNil(o) {
		return 1
	}
	return cmp.Compare(KindEnd, o.Kind())
}

func (t *EndTag) writePayload(*writer, int) error {
	return nil
}

func (t *EndTag) appendText(b *strings.Builder, _ int) error {
	b.WriteString(`"end"`)
	return nil
}

func (t *EndTag) appendDisplay(b *strings.Builder, _ int) error {
	writeDisplayScalar(b, KindEnd, `"end"`)
	return nil
}

func (t *EndTag) clone(int) (Tag, error) {
	return &EndTag{named: t.named}, nil
}

func (t *EndTag) equalPayload(o Tag, _ int) (bool, error) {
	_, ok := o.(*EndTag)
	return ok, nil
}
