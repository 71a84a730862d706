package nbt

import (
	"slices"
	"testing"
)

func TestCompound_PutReplaceKeepsPosition(t *testing.T) {
	c := NewCompound()
	c.PutInt("a", 1)
	c.PutInt("b", 2)
	c.PutInt("c", 3)
	c.PutString("a", "replaced")

	if got := c.Keys(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("keys = %v", got)
	}
	if s, ok := c.GetString("a"); !ok || s != "replaced" {
		t.Errorf("a = %q, %v", s, ok)
	}
	if _, ok := c.GetInt("a"); ok {
		t.Error("GetInt on a string entry reported ok")
	}
}

func TestCompound_PutRenamesChild(t *testing.T) {
	c := NewCompound()
	child := Named("old", NewInt(1))
	if err := c.Put("new", child); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if child.Name() != "new" {
		t.Errorf("child name = %q, want new", child.Name())
	}

	// Renaming the child afterwards does not move the entry.
	child.SetName("other")
	if !c.Has("new") || c.Has("other") {
		t.Error("entry key followed the child name")
	}
}

func TestCompound_PutRejects(t *testing.T) {
	c := NewCompound()
	wantErr(t, c.Put("x", nil), ErrInvalidArgument)
	var typedNil *CompoundTag
	wantErr(t, c.Put("x", typedNil), ErrInvalidArgument)
	wantErr(t, c.Put("x", &EndTag{}), ErrInvalidArgument)
	if c.Len() != 0 {
		t.Errorf("len = %d, want 0", c.Len())
	}
}

func TestCompound_Remove(t *testing.T) {
	c := NewCompound()
	c.PutInt("a", 1)
	c.PutInt("b", 2)
	c.PutInt("c", 3)

	prev, ok := c.Remove("b")
	if !ok || prev.(*IntTag).Value != 2 {
		t.Fatalf("Remove(b) = %v, %v", prev, ok)
	}
	if _, ok := c.Remove("b"); ok {
		t.Error("second Remove(b) reported ok")
	}
	if got := c.Keys(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("keys = %v", got)
	}
	if v, _ := c.GetInt("c"); v != 3 {
		t.Errorf("c = %d after reindex", v)
	}

	c.PutInt("b", 4)
	if got := c.Keys(); !slices.Equal(got, []string{"a", "c", "b"}) {
		t.Errorf("keys = %v", got)
	}

	c.Clear()
	if !c.IsEmpty() || c.Has("a") {
		t.Error("Clear left entries behind")
	}
}

func TestCompound_TypedAccessors(t *testing.T) {
	c := NewCompound()
	c.PutBoolean("t", true)
	c.PutBoolean("f", false)
	c.PutByte("b", 7)
	c.PutShort("s", 8)
	c.PutLong("l", 9)
	c.PutFloat("fl", 1.5)
	c.PutDouble("d", 2.5)
	c.PutByteArray("ba", []byte{1})
	c.PutIntArray("ia", []int32{2})
	c.PutLongArray("la", []int64{3})
	list, _ := ListOf(NewInt(1))
	_ = c.Put("list", list)
	_ = c.Put("comp", NewCompound())

	if v, ok := c.GetBoolean("t"); !ok || !v {
		t.Error("GetBoolean(t)")
	}
	if v, ok := c.GetBoolean("f"); !ok || v {
		t.Error("GetBoolean(f)")
	}
	if v, _ := c.GetByte("t"); v != 1 {
		t.Errorf("boolean stored as %d", v)
	}
	if v, _ := c.GetByte("b"); v != 7 {
		t.Error("GetByte")
	}
	if v, _ := c.GetShort("s"); v != 8 {
		t.Error("GetShort")
	}
	if v, _ := c.GetLong("l"); v != 9 {
		t.Error("GetLong")
	}
	if v, _ := c.GetFloat("fl"); v != 1.5 {
		t.Error("GetFloat")
	}
	if v, _ := c.GetDouble("d"); v != 2.5 {
		t.Error("GetDouble")
	}
	if v, _ := c.GetByteArray("ba"); !slices.Equal(v, []byte{1}) {
		t.Error("GetByteArray")
	}
	if v, _ := c.GetIntArray("ia"); !slices.Equal(v, []int32{2}) {
		t.Error("GetIntArray")
	}
	if v, _ := c.GetLongArray("la"); !slices.Equal(v, []int64{3}) {
		t.Error("GetLongArray")
	}
	if v, ok := c.GetList("list"); !ok || v != list {
		t.Error("GetList")
	}
	if _, ok := c.GetCompound("comp"); !ok {
		t.Error("GetCompound")
	}
	if _, ok := c.GetCompound("list"); ok {
		t.Error("GetCompound on a list reported ok")
	}
	if _, ok := c.GetInt("missing"); ok {
		t.Error("GetInt(missing) reported ok")
	}
}

func TestCompound_All(t *testing.T) {
	c := NewCompound()
	c.PutInt("x", 1)
	c.PutInt("y", 2)

	var keys []string
	for k, v := range c.All() {
		keys = append(keys, k)
		if v.Name() != k {
			t.Errorf("entry %s named %q", k, v.Name())
		}
	}
	if !slices.Equal(keys, []string{"x", "y"}) {
		t.Errorf("keys = %v", keys)
	}
}

func TestCompound_EqualIgnoresOrder(t *testing.T) {
	a := NewCompound()
	a.PutInt("x", 1)
	a.PutString("y", "s")
	b := NewCompound()
	b.PutString("y", "s")
	b.PutInt("x", 1)

	if !Equal(a, b) {
		t.Error("compounds with the same entries in another order are not equal")
	}
	b.PutInt("x", 2)
	if Equal(a, b) {
		t.Error("compounds with different values are equal")
	}
}

func TestCompound_CloneIsDeep(t *testing.T) {
	root := sampleTree(t)
	cp, err := root.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if !Equal(cp, root) {
		t.Fatal("clone differs from original")
	}

	clone := cp.(*CompoundTag)
	strs, _ := clone.GetList("strings")
	if err := strs.AddString("extra"); err != nil {
		t.Fatalf("AddString: %v", err)
	}
	ints, _ := clone.GetIntArray("ints")
	ints[0] = 99

	orig, _ := root.GetList("strings")
	if orig.Len() != 3 {
		t.Errorf("original list len = %d, want 3", orig.Len())
	}
	if v, _ := root.GetIntArray("ints"); v[0] != 1 {
		t.Errorf("original array changed to %d", v[0])
	}
	if Equal(cp, root) {
		t.Error("modified clone still equal to original")
	}
}
