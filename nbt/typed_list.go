package nbt

import (
	"fmt"
	"iter"
)

// TypedList is a view of a ListTag whose elements are all of type T. It
// shares the underlying list: changes through either are visible in both.
type TypedList[T Tag] struct {
	list *ListTag
}

// ListAs returns a typed view of l. The view succeeds when l is empty or
// locked to T's kind, and fails with ErrCastFailure otherwise.
func ListAs[T Tag](l *ListTag) (TypedList[T], error) {
	k, ok := kindFor[T]()
	if !ok {
		return TypedList[T]{}, fmt.Errorf("%w: %T is not a concrete tag type", ErrCastFailure, *new(T))
	}
	if l == nil {
		return TypedList[T]{}, fmt.Errorf("%w: nil list", ErrInvalidArgument)
	}
	if l.elemKind != KindEnd && l.elemKind != k {
		return TypedList[T]{}, fmt.Errorf("%w: list of %s viewed as %s", ErrCastFailure, l.elemKind, k)
	}
	return TypedList[T]{list: l}, nil
}

func kindFor[T Tag]() (Kind, bool) {
	var zero T
	switch any(zero).(type) {
	case *ByteTag:
		return KindByte, true
	case *ShortTag:
		return KindShort, true
	case *IntTag:
		return KindInt, true
	case *LongTag:
		return KindLong, true
	case *FloatTag:
		return KindFloat, true
	case *DoubleTag:
		return KindDouble, true
	case *StringTag:
		return KindString, true
	case *ByteArrayTag:
		return KindByteArray, true
	case *IntArrayTag:
		return KindIntArray, true
	case *LongArrayTag:
		return KindLongArray, true
	case *ListTag:
		return KindList, true
	case *CompoundTag:
		return KindCompound, true
	default:
		return KindEnd, false
	}
}

// List returns the underlying list.
func (v TypedList[T]) List() *ListTag { return v.list }

// Len returns the number of elements.
func (v TypedList[T]) Len() int { return v.list.Len() }

// Add appends t.
func (v TypedList[T]) Add(t T) error { return v.list.Add(t) }

// Get returns the element at index i. It fails with ErrCastFailure if the
// underlying list was relocked to another kind after the view was taken.
func (v TypedList[T]) Get(i int) (T, error) {
	var zero T
	t, err := v.list.Get(i)
	if err != nil {
		return zero, err
	}
	typed, ok := t.(T)
	if !ok {
		return zero, fmt.Errorf("%w: element %d is %s", ErrCastFailure, i, t.Kind())
	}
	return typed, nil
}

// All iterates over the elements that have type T.
func (v TypedList[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, t := range v.list.items {
			typed, ok := t.(T)
			if !ok {
				continue
			}
			if !yield(i, typed) {
				return
			}
		}
	}
}

// ============================================================
// Per-variant views
// ============================================================

func (l *ListTag) AsByteList() (TypedList[*ByteTag], error)     { return ListAs[*ByteTag](l) }
func (l *ListTag) AsShortList() (TypedList[*ShortTag], error)   { return ListAs[*ShortTag](l) }
func (l *ListTag) AsIntList() (TypedList[*IntTag], error)       { return ListAs[*IntTag](l) }
func (l *ListTag) AsLongList() (TypedList[*LongTag], error)     { return ListAs[*LongTag](l) }
func (l *ListTag) AsFloatList() (TypedList[*FloatTag], error)   { return ListAs[*FloatTag](l) }
func (l *ListTag) AsDoubleList() (TypedList[*DoubleTag], error) { return ListAs[*DoubleTag](l) }
func (l *ListTag) AsStringList() (TypedList[*StringTag], error) { return ListAs[*StringTag](l) }

func (l *ListTag) AsByteArrayList() (TypedList[*ByteArrayTag], error) {
	return ListAs[*ByteArrayTag](l)
}

func (l *ListTag) AsIntArrayList() (TypedList[*IntArrayTag], error) {
	return ListAs[*IntArrayTag](l)
}

func (l *ListTag) AsLongArrayList() (TypedList[*LongArrayTag], error) {
	return ListAs[*LongArrayTag](l)
}

func (l *ListTag) AsListList() (TypedList[*ListTag], error) {
	return ListAs[*ListTag](l)
}

func (l *ListTag) AsCompoundList() (TypedList[*CompoundTag], error) {
	return ListAs[*CompoundTag](l)
}
