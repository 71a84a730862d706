package nbt

import (
	"errors"
	"math"
	"testing"
)

// sampleTree builds a compound holding one tag of every kind.
func sampleTree(t *testing.T) *CompoundTag {
	t.Helper()

	root := Named("Level", NewCompound())
	root.PutByte("byte", -128)
	root.PutBoolean("flag", true)
	root.PutShort("short", math.MaxInt16)
	root.PutInt("int", math.MinInt32)
	root.PutLong("long", math.MaxInt64)
	root.PutFloat("float", 0.1)
	root.PutDouble("double", -6.25)
	root.PutString("string", "héllo \"world\"\n\x00😀")
	root.PutByteArray("bytes", []byte{0, 1, 0xFF})
	root.PutIntArray("ints", []int32{1, -2, math.MaxInt32})
	root.PutLongArray("longs", []int64{math.MinInt64, 0})

	strs := NewList()
	for _, s := range []string{"a", "b", ""} {
		if err := strs.AddString(s); err != nil {
			t.Fatalf("AddString: %v", err)
		}
	}
	if err := root.Put("strings", strs); err != nil {
		t.Fatalf("Put strings: %v", err)
	}
	if err := root.Put("empty", NewList()); err != nil {
		t.Fatalf("Put empty: %v", err)
	}

	entities := NewList()
	for i := range 2 {
		e, err := entities.AddCompound()
		if err != nil {
			t.Fatalf("AddCompound: %v", err)
		}
		e.PutString("id", "zombie")
		e.PutInt("index", int32(i))
		pos, err := ListOf(NewDouble(1.5), NewDouble(64), NewDouble(-3))
		if err != nil {
			t.Fatalf("ListOf: %v", err)
		}
		if err := e.Put("Pos", pos); err != nil {
			t.Fatalf("Put Pos: %v", err)
		}
	}
	if err := root.Put("entities", entities); err != nil {
		t.Fatalf("Put entities: %v", err)
	}

	nested := NewCompound()
	nested.PutString("with space", "x")
	nested.PutString("", "empty key")
	if err := root.Put("nested", nested); err != nil {
		t.Fatalf("Put nested: %v", err)
	}
	return root
}

// nestedLists builds a chain of levels lists, each holding the next; the
// innermost is empty.
func nestedLists(t *testing.T, levels int) *ListTag {
	t.Helper()
	root := NewList()
	cur := root
	for i := 1; i < levels; i++ {
		child, err := cur.AddList()
		if err != nil {
			t.Fatalf("AddList: %v", err)
		}
		cur = child
	}
	return root
}

func selfReferential(t *testing.T) *ListTag {
	t.Helper()
	l := NewList()
	if err := l.Add(l); err != nil {
		t.Fatalf("Add self: %v", err)
	}
	return l
}

func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
