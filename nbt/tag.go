package nbt

import (
	"cmp"
	"strings"
)

// Tag is one node of a tag tree. The set of implementations is closed: the
// thirteen variants in this package.
type Tag interface {
	// Kind returns the variant's kind. It is safe to call on a nil pointer.
	Kind() Kind
	Name() string
	SetName(name string)

	// Equal reports structural equality: same kind, same name and
	// recursively equal payloads. Trees nested deeper than MaxDepth
	// compare unequal.
	Equal(other Tag) bool

	// Compare orders two tags. Numeric tags compare by value; lists,
	// arrays and compounds compare by element count only.
	Compare(other Tag) int

	// Clone returns a deep copy. It fails with ErrMaxDepth on trees nested
	// deeper than MaxDepth, including self-referential lists.
	Clone() (Tag, error)

	// String returns the display form, or the error text if rendering
	// fails.
	String() string

	writePayload(w *writer, budget int) error
	appendText(b *strings.Builder, budget int) error
	appendDisplay(b *strings.Builder, budget int) error
	clone(budget int) (Tag, error)
	equalPayload(other Tag, budget int) (bool, error)
}

// named carries the tag name shared by every variant.
type named struct {
	name string
}

// Name returns the tag name.
func (n *named) Name() string {
	return n.name
}

// SetName sets the tag name.
func (n *named) SetName(name string) {
	n.name = name
}

// Named sets the name of t and returns it, for use with constructors:
//
//	level := nbt.Named("Level", nbt.NewCompound())
func Named[T Tag](name string, t T) T {
	t.SetName(name)
	return t
}

// isNil reports whether t is absent, including typed nil pointers.
func isNil(t Tag) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *EndTag:
		return v == nil
	case *ByteTag:
		return v == nil
	case *ShortTag:
		return v == nil
	case *IntTag:
		return v == nil
	case *LongTag:
		return v == nil
	case *FloatTag:
		return v == nil
	case *DoubleTag:
		return v == nil
	case *StringTag:
		return v == nil
	case *ByteArrayTag:
		return v == nil
	case *IntArrayTag:
		return v == nil
	case *LongArrayTag:
		return v == nil
	case *ListTag:
		return v == nil
	case *CompoundTag:
		return v == nil
	default:
		return false
	}
}

// Equal reports whether a and b are structurally equal. Two absent tags
// are equal.
func Equal(a, b Tag) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() || a.Name() != b.Name() {
		return false
	}
	ok, err := a.equalPayload(b, MaxDepth)
	return err == nil && ok
}

// samePayload compares payloads only, ignoring names.
func samePayload(a, b Tag, budget int) (bool, error) {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b), nil
	}
	if a.Kind() != b.Kind() {
		return false, nil
	}
	return a.equalPayload(b, budget)
}

// sized is implemented by tags whose ordering is by element count.
type sized interface {
	Len() int
}

// compareSized implements the container ordering: element count only, and
// an absent other tag compares equal.
func compareSized(k Kind, n int, other Tag) int {
	if isNil(other) {
		return 0
	}
	if s, ok := other.(sized); ok {
		return cmp.Compare(n, s.Len())
	}
	return cmp.Compare(k, other.Kind())
}

// Text renders t in the canonical text form, for example
// {name:"x",data:[I;1,2]}.
func Text(t Tag, opts ...Option) (string, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return "", err
	}
	if isNil(t) {
		return "", ErrInvalidArgument
	}
	var b strings.Builder
	if err := t.appendText(&b, o.MaxDepth); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Display renders t in the debug form, for example
// {"type":"IntTag","value":3}.
func Display(t Tag, opts ...Option) (string, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return "", err
	}
	if isNil(t) {
		return "", ErrInvalidArgument
	}
	var b strings.Builder
	if err := t.appendDisplay(&b, o.MaxDepth); err != nil {
		return "", err
	}
	return b.String(), nil
}

// CloneTag deep-copies t with a configurable nesting budget.
func CloneTag(t Tag, opts ...Option) (Tag, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if isNil(t) {
		return nil, ErrInvalidArgument
	}
	return t.clone(o.MaxDepth)
}

func displayString(t Tag) string {
	s, err := Display(t)
	if err != nil {
		return err.Error()
	}
	return s
}
