package nbt

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// CompoundTag maps unique names to tags of any kind, preserving insertion
// order. Replacing an existing name keeps its original position. Put renames
// the child to its key; the key is what gets encoded.
//
// CompoundTag is not safe for concurrent mutation.
type CompoundTag struct {
	named
	entries []entry
	index   map[string]int
}

type entry struct {
	key string
	tag Tag
}

// NewCompound creates an empty compound.
func NewCompound() *CompoundTag {
	return &CompoundTag{index: make(map[string]int)}
}

func (*CompoundTag) Kind() Kind { return KindCompound }

// Len returns the number of entries.
func (c *CompoundTag) Len() int { return len(c.entries) }

// IsEmpty reports whether the compound has no entries.
func (c *CompoundTag) IsEmpty() bool { return len(c.entries) == 0 }

func (c *CompoundTag) Equal(o Tag) bool    { return Equal(c, o) }
func (c *CompoundTag) Compare(o Tag) int   { return compareSized(KindCompound, len(c.entries), o) }
func (c *CompoundTag) Clone() (Tag, error) { return c.clone(MaxDepth) }
func (c *CompoundTag) String() string      { return displayString(c) }

// Put stores t under name, renaming t to name. An existing entry is
// replaced in place. End tags are rejected: on the wire they terminate
// the compound.
func (c *CompoundTag) Put(name string, t Tag) error {
	if isNil(t) {
		return fmt.Errorf("%w: nil value for %q", ErrInvalidArgument, name)
	}
	if t.Kind() == KindEnd {
		return fmt.Errorf("%w: end tag under %q", ErrInvalidArgument, name)
	}
	c.put(name, t)
	return nil
}

func (c *CompoundTag) put(name string, t Tag) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	t.SetName(name)
	if i, ok := c.index[name]; ok {
		c.entries[i].tag = t
		return
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, entry{key: name, tag: t})
}

// Get returns the entry stored under name.
func (c *CompoundTag) Get(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].tag, true
}

// Has reports whether name is present.
func (c *CompoundTag) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Remove deletes name and returns the removed entry.
func (c *CompoundTag) Remove(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	prev := c.entries[i].tag
	c.entries = slices.Delete(c.entries, i, i+1)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].key] = j
	}
	return prev, true
}

// Clear removes every entry.
func (c *CompoundTag) Clear() {
	clear(c.entries)
	c.entries = c.entries[:0]
	clear(c.index)
}

// Keys returns the entry names in insertion order.
func (c *CompoundTag) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.key
	}
	return keys
}

// All iterates over the entries in insertion order.
func (c *CompoundTag) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for _, e := range c.entries {
			if !yield(e.key, e.tag) {
				return
			}
		}
	}
}

// ============================================================
// Typed putters and getters
// ============================================================

// PutBoolean stores a byte tag holding 1 or 0.
func (c *CompoundTag) PutBoolean(name string, v bool) { c.put(name, NewBoolean(v)) }

func (c *CompoundTag) PutByte(name string, v int8)         { c.put(name, NewByte(v)) }
func (c *CompoundTag) PutShort(name string, v int16)       { c.put(name, NewShort(v)) }
func (c *CompoundTag) PutInt(name string, v int32)         { c.put(name, NewInt(v)) }
func (c *CompoundTag) PutLong(name string, v int64)        { c.put(name, NewLong(v)) }
func (c *CompoundTag) PutFloat(name string, v float32)     { c.put(name, NewFloat(v)) }
func (c *CompoundTag) PutDouble(name string, v float64)    { c.put(name, NewDouble(v)) }
func (c *CompoundTag) PutString(name string, v string)     { c.put(name, NewString(v)) }
func (c *CompoundTag) PutByteArray(name string, v []byte)  { c.put(name, NewByteArray(v)) }
func (c *CompoundTag) PutIntArray(name string, v []int32)  { c.put(name, NewIntArray(v)) }
func (c *CompoundTag) PutLongArray(name string, v []int64) { c.put(name, NewLongArray(v)) }

// lookup returns the entry under name if it has type T.
func lookup[T Tag](c *CompoundTag, name string) (T, bool) {
	var zero T
	t, ok := c.Get(name)
	if !ok {
		return zero, false
	}
	typed, ok := t.(T)
	return typed, ok
}

// GetBoolean reports a byte entry as a boolean. Missing or non-byte
// entries report false.
func (c *CompoundTag) GetBoolean(name string) (bool, bool) {
	t, ok := lookup[*ByteTag](c, name)
	if !ok {
		return false, false
	}
	return t.Value != 0, true
}

func (c *CompoundTag) GetByte(name string) (int8, bool) {
	t, ok := lookup[*ByteTag](c, name)
	if !ok {
		return 0, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetShort(name string) (int16, bool) {
	t, ok := lookup[*ShortTag](c, name)
	if !ok {
		return 0, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetInt(name string) (int32, bool) {
	t, ok := lookup[*IntTag](c, name)
	if !ok {
		return 0, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetLong(name string) (int64, bool) {
	t, ok := lookup[*LongTag](c, name)
	if !ok {
		return 0, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetFloat(name string) (float32, bool) {
	t, ok := lookup[*FloatTag](c, name)
	if !ok {
		return 0, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetDouble(name string) (float64, bool) {
	t, ok := lookup[*DoubleTag](c, name)
	if !ok {
		return 0, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetString(name string) (string, bool) {
	t, ok := lookup[*StringTag](c, name)
	if !ok {
		return "", false
	}
	return t.Value, true
}

func (c *CompoundTag) GetByteArray(name string) ([]byte, bool) {
	t, ok := lookup[*ByteArrayTag](c, name)
	if !ok {
		return nil, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetIntArray(name string) ([]int32, bool) {
	t, ok := lookup[*IntArrayTag](c, name)
	if !ok {
		return nil, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetLongArray(name string) ([]int64, bool) {
	t, ok := lookup[*LongArrayTag](c, name)
	if !ok {
		return nil, false
	}
	return t.Value, true
}

func (c *CompoundTag) GetList(name string) (*ListTag, bool) {
	return lookup[*ListTag](c, name)
}

func (c *CompoundTag) GetCompound(name string) (*CompoundTag, bool) {
	return lookup[*CompoundTag](c, name)
}

// ============================================================
// Recursive operations
// ============================================================

func (c *CompoundTag) writePayload(w *writer, budget int) error {
	if len(c.entries) > 0 {
		next, err := descend(budget)
		if err != nil {
			return err
		}
		for _, e := range c.entries {
			if err := writeEntry(w, e.key, e.tag, next); err != nil {
				return err
			}
		}
	}
	return w.u8(uint8(KindEnd))
}

func (c *CompoundTag) appendText(b *strings.Builder, budget int) error {
	b.WriteByte('{')
	if len(c.entries) > 0 {
		next, err := descend(budget)
		if err != nil {
			return err
		}
		for i, e := range c.entries {
			if i > 0 {
				b.WriteByte(',')
			}
			writeKey(b, e.key)
			b.WriteByte(':')
			if err := e.tag.appendText(b, next); err != nil {
				return err
			}
		}
	}
	b.WriteByte('}')
	return nil
}

func (c *CompoundTag) appendDisplay(b *strings.Builder, budget int) error {
	writeDisplayOpen(b, KindCompound)
	b.WriteByte('{')
	if len(c.entries) > 0 {
		next, err := descend(budget)
		if err != nil {
			return err
		}
		for i, e := range c.entries {
			if i > 0 {
				b.WriteByte(',')
			}
			writeQuoted(b, e.key)
			b.WriteByte(':')
			if err := e.tag.appendDisplay(b, next); err != nil {
				return err
			}
		}
	}
	b.WriteString("}}")
	return nil
}

func (c *CompoundTag) clone(budget int) (Tag, error) {
	out := &CompoundTag{
		named:   c.named,
		entries: make([]entry, 0, len(c.entries)),
		index:   make(map[string]int, len(c.entries)),
	}
	if len(c.entries) == 0 {
		return out, nil
	}
	next, err := descend(budget)
	if err != nil {
		return nil, err
	}
	for _, e := range c.entries {
		child, err := e.tag.clone(next)
		if err != nil {
			return nil, err
		}
		out.put(e.key, child)
	}
	return out, nil
}

// equalPayload ignores entry order, matching map semantics.
func (c *CompoundTag) equalPayload(o Tag, budget int) (bool, error) {
	v, ok := o.(*CompoundTag)
	if !ok || len(v.entries) != len(c.entries) {
		return false, nil
	}
	if len(c.entries) == 0 {
		return true, nil
	}
	next, err := descend(budget)
	if err != nil {
		return false, err
	}
	for _, e := range c.entries {
		other, ok := v.Get(e.key)
		if !ok {
			return false, nil
		}
		if ok, err := samePayload(e.tag, other, next); err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
