package nbt

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ListTag is an ordered sequence of unnamed tags that all share one
// element kind. The element kind is KindEnd exactly when the list is empty:
// it locks on the first insertion and resets when the list empties again.
//
// ListTag is not safe for concurrent mutation.
type ListTag struct {
	named
	elemKind Kind
	items    []Tag
}

// NewList creates an empty, unlocked list.
func NewList() *ListTag {
	return &ListTag{}
}

// ListOf creates a list holding items, which must all share one kind.
func ListOf(items ...Tag) (*ListTag, error) {
	l := NewList()
	if err := l.AddAll(items...); err != nil {
		return nil, err
	}
	return l, nil
}

func (*ListTag) Kind() Kind { return KindList }

// ElementKind returns the locked element kind, or KindEnd for an empty list.
func (l *ListTag) ElementKind() Kind { return l.elemKind }

// Len returns the number of elements.
func (l *ListTag) Len() int { return len(l.items) }

// IsEmpty reports whether the list has no elements.
func (l *ListTag) IsEmpty() bool { return len(l.items) == 0 }

func (l *ListTag) Equal(o Tag) bool    { return Equal(l, o) }
func (l *ListTag) Compare(o Tag) int   { return compareSized(KindList, len(l.items), o) }
func (l *ListTag) Clone() (Tag, error) { return l.clone(MaxDepth) }
func (l *ListTag) String() string      { return displayString(l) }

// accepts checks t against the current lock without mutating the list.
func (l *ListTag) accepts(lock Kind, t Tag) (Kind, error) {
	if isNil(t) {
		return lock, fmt.Errorf("%w: nil list element", ErrInvalidArgument)
	}
	if t.Kind() == KindEnd {
		return lock, fmt.Errorf("%w: end tag as list element", ErrInvalidArgument)
	}
	if lock == KindEnd {
		return t.Kind(), nil
	}
	if t.Kind() != lock {
		return lock, fmt.Errorf("%w: cannot add %s to list of %s", ErrTypeMismatch, t.Kind(), lock)
	}
	return lock, nil
}

// Add appends t. It fails with ErrTypeMismatch when the list is locked to a
// different kind.
func (l *ListTag) Add(t Tag) error {
	lock, err := l.accepts(l.elemKind, t)
	if err != nil {
		return err
	}
	l.items = append(l.items, t)
	l.elemKind = lock
	return nil
}

// Insert places t at index i, shifting later elements. i may equal Len.
func (l *ListTag) Insert(i int, t Tag) error {
	if i < 0 || i > len(l.items) {
		return l.indexError(i)
	}
	lock, err := l.accepts(l.elemKind, t)
	if err != nil {
		return err
	}
	l.items = slices.Insert(l.items, i, t)
	l.elemKind = lock
	return nil
}

// AddAll appends items. Every item is checked first; on any failure the
// list is left unchanged.
func (l *ListTag) AddAll(items ...Tag) error {
	return l.InsertAll(len(l.items), items...)
}

// InsertAll inserts items at index i with the same all-or-nothing check as
// AddAll.
func (l *ListTag) InsertAll(i int, items ...Tag) error {
	if i < 0 || i > len(l.items) {
		return l.indexError(i)
	}
	lock := l.elemKind
	for _, t := range items {
		var err error
		if lock, err = l.accepts(lock, t); err != nil {
			return err
		}
	}
	if len(items) == 0 {
		return nil
	}
	l.items = slices.Insert(l.items, i, items...)
	l.elemKind = lock
	return nil
}

// Get returns the element at index i.
func (l *ListTag) Get(i int) (Tag, error) {
	if i < 0 || i >= len(l.items) {
		return nil, l.indexError(i)
	}
	return l.items[i], nil
}

// Set replaces the element at index i and returns the previous one. Set
// rejects a nil tag but does not check t against the element kind; callers
// that need the check use Remove and Insert.
func (l *ListTag) Set(i int, t Tag) (Tag, error) {
	if i < 0 || i >= len(l.items) {
		return nil, l.indexError(i)
	}
	if isNil(t) {
		return nil, fmt.Errorf("%w: nil list element", ErrInvalidArgument)
	}
	prev := l.items[i]
	l.items[i] = t
	return prev, nil
}

// Remove deletes and returns the element at index i. Removing the last
// element unlocks the list.
func (l *ListTag) Remove(i int) (Tag, error) {
	if i < 0 || i >= len(l.items) {
		return nil, l.indexError(i)
	}
	prev := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	if len(l.items) == 0 {
		l.elemKind = KindEnd
	}
	return prev, nil
}

// Clear removes every element and unlocks the list.
func (l *ListTag) Clear() {
	clear(l.items)
	l.items = l.items[:0]
	l.elemKind = KindEnd
}

// IndexOf returns the index of the first element with a payload equal to
// t, or -1. Element names are not compared.
func (l *ListTag) IndexOf(t Tag) int {
	for i, item := range l.items {
		if ok, err := samePayload(item, t, MaxDepth); err == nil && ok {
			return i
		}
	}
	return -1
}

// Contains reports whether some element is structurally equal to t.
func (l *ListTag) Contains(t Tag) bool {
	return l.IndexOf(t) >= 0
}

// ContainsAll reports whether every tag in ts is contained in the list.
func (l *ListTag) ContainsAll(ts ...Tag) bool {
	for _, t := range ts {
		if !l.Contains(t) {
			return false
		}
	}
	return true
}

// Sort orders the elements with cmp, keeping equal elements in their
// original order.
func (l *ListTag) Sort(cmp func(a, b Tag) int) {
	slices.SortStableFunc(l.items, cmp)
}

// All iterates over the elements in order. Each call starts a new pass.
func (l *ListTag) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, t := range l.items {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Values returns a copy of the element slice.
func (l *ListTag) Values() []Tag {
	return slices.Clone(l.items)
}

func (l *ListTag) indexError(i int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(l.items))
}

// ============================================================
// Typed adders
// ============================================================

// AddBoolean appends a byte tag holding 1 or 0.
func (l *ListTag) AddBoolean(v bool) error { return l.Add(NewBoolean(v)) }

func (l *ListTag) AddByte(v int8) error         { return l.Add(NewByte(v)) }
func (l *ListTag) AddShort(v int16) error       { return l.Add(NewShort(v)) }
func (l *ListTag) AddInt(v int32) error         { return l.Add(NewInt(v)) }
func (l *ListTag) AddLong(v int64) error        { return l.Add(NewLong(v)) }
func (l *ListTag) AddFloat(v float32) error     { return l.Add(NewFloat(v)) }
func (l *ListTag) AddDouble(v float64) error    { return l.Add(NewDouble(v)) }
func (l *ListTag) AddString(v string) error     { return l.Add(NewString(v)) }
func (l *ListTag) AddByteArray(v []byte) error  { return l.Add(NewByteArray(v)) }
func (l *ListTag) AddIntArray(v []int32) error  { return l.Add(NewIntArray(v)) }
func (l *ListTag) AddLongArray(v []int64) error { return l.Add(NewLongArray(v)) }

// AddList appends a new empty list and returns it for filling.
func (l *ListTag) AddList() (*ListTag, error) {
	child := NewList()
	if err := l.Add(child); err != nil {
		return nil, err
	}
	return child, nil
}

// AddCompound appends a new empty compound and returns it for filling.
func (l *ListTag) AddCompound() (*CompoundTag, error) {
	child := NewCompound()
	if err := l.Add(child); err != nil {
		return nil, err
	}
	return child, nil
}

// ============================================================
// Recursive operations
// ============================================================

func (l *ListTag) writePayload(w *writer, budget int) error {
	if err := w.u8(uint8(l.elemKind)); err != nil {
		return err
	}
	if err := w.length(len(l.items)); err != nil {
		return err
	}
	if len(l.items) == 0 {
		return nil
	}
	next, err := descend(budget)
	if err != nil {
		return err
	}
	for _, t := range l.items {
		if err := t.writePayload(w, next); err != nil {
			return err
		}
	}
	return nil
}

func (l *ListTag) appendText(b *strings.Builder, budget int) error {
	b.WriteByte('[')
	if len(l.items) > 0 {
		next, err := descend(budget)
		if err != nil {
			return err
		}
		for i, t := range l.items {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := t.appendText(b, next); err != nil {
				return err
			}
		}
	}
	b.WriteByte(']')
	return nil
}

func (l *ListTag) appendDisplay(b *strings.Builder, budget int) error {
	writeDisplayOpen(b, KindList)
	b.WriteString(`{"type":"`)
	b.WriteString(l.elemKind.typeName())
	b.WriteString(`","list":[`)
	if len(l.items) > 0 {
		next, err := descend(budget)
		if err != nil {
			return err
		}
		for i, t := range l.items {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := t.appendDisplay(b, next); err != nil {
				return err
			}
		}
	}
	b.WriteString("]}}")
	return nil
}

func (l *ListTag) clone(budget int) (Tag, error) {
	c := &ListTag{named: l.named, elemKind: l.elemKind}
	if len(l.items) == 0 {
		return c, nil
	}
	next, err := descend(budget)
	if err != nil {
		return nil, err
	}
	c.items = make([]Tag, len(l.items))
	for i, t := range l.items {
		if c.items[i], err = t.clone(next); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (l *ListTag) equalPayload(o Tag, budget int) (bool, error) {
	v, ok := o.(*ListTag)
	if !ok || v.elemKind != l.elemKind || len(v.items) != len(l.items) {
		return false, nil
	}
	if len(l.items) == 0 {
		return true, nil
	}
	next, err := descend(budget)
	if err != nil {
		return false, err
	}
	for i := range l.items {
		if ok, err := samePayload(l.items[i], v.items[i], next); err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
