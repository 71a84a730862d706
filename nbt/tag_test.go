package nbt

import (
	"math"
	"testing"
)

// ============================================================
// Kinds
// ============================================================

func TestEmpty(t *testing.T) {
	for k := KindEnd; k <= KindLongArray; k++ {
		tag, err := Empty(k)
		if err != nil {
			t.Fatalf("Empty(%s): %v", k, err)
		}
		if tag.Kind() != k {
			t.Errorf("Empty(%s).Kind() = %s", k, tag.Kind())
		}
		if tag.Name() != "" {
			t.Errorf("Empty(%s) is named %q", k, tag.Name())
		}
	}
	_, err := Empty(13)
	wantErr(t, err, ErrUnknownKind)
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindEnd:       "end",
		KindByteArray: "byte[]",
		KindCompound:  "compound",
		KindLongArray: "long[]",
		Kind(200):     "unknown(200)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(k), got, want)
		}
	}
}

// ============================================================
// Equality
// ============================================================

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Tag
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil tag", nil, NewInt(1), false},
		{"same value", NewInt(1), NewInt(1), true},
		{"different value", NewInt(1), NewInt(2), false},
		{"different kind", NewInt(1), NewLong(1), false},
		{"different name", Named("a", NewInt(1)), Named("b", NewInt(1)), false},
		{"nan", NewDouble(math.NaN()), NewDouble(math.NaN()), true},
		{"signed zero", NewFloat(0), NewFloat(float32(math.Copysign(0, -1))), false},
		{"nil vs empty array", NewByteArray(nil), NewByteArray([]byte{}), true},
		{"strings", NewString("a"), NewString("a"), true},
		{"end", &EndTag{}, &EndTag{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqual_ListElementNamesIgnored(t *testing.T) {
	a, _ := ListOf(Named("x", NewInt(1)))
	b, _ := ListOf(NewInt(1))
	if !a.Equal(b) {
		t.Error("list elements compared by name")
	}
}

// ============================================================
// Ordering
// ============================================================

func TestCompare(t *testing.T) {
	list2, _ := ListOf(NewInt(100), NewInt(200))
	list1, _ := ListOf(NewString("z"))
	comp := NewCompound()
	comp.PutInt("a", 1)
	comp.PutInt("b", 2)

	tests := []struct {
		name string
		a, b Tag
		want int
	}{
		{"int vs smaller byte", NewInt(5), NewByte(3), 1},
		{"byte vs double equal", NewByte(3), NewDouble(3), 0},
		{"float vs long", NewFloat(1.5), NewLong(2), -1},
		{"long precision", NewLong(math.MaxInt64), NewLong(math.MaxInt64 - 1), 1},
		{"number vs nil", NewInt(1), nil, 1},
		{"number vs string", NewInt(1), NewString("1"), -1},
		{"string order", NewString("a"), NewString("b"), -1},
		{"string vs nil", NewString("a"), nil, 1},
		{"list counts only", list2, list1, 1},
		{"list vs same-size compound", list2, comp, 0},
		{"list vs int array", list1, NewIntArray([]int32{5}), 0},
		{"list vs nil", list2, nil, 0},
		{"compound vs nil", comp, nil, 0},
		{"list vs byte", list1, NewByte(1), 1},
		{"byte array vs long array", NewByteArray([]byte{1, 2, 3}), NewLongArray([]int64{1}), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}

// ============================================================
// Numeric coercion
// ============================================================

func TestNumber_Coercion(t *testing.T) {
	tests := []struct {
		name string
		n    Number
		b    int8
		i    int32
		l    int64
	}{
		{"short truncates to byte", NewShort(300), 44, 300, 300},
		{"negative int", NewInt(-1), -1, -1, -1},
		{"float saturates", NewFloat(1e20), -1, math.MaxInt32, math.MaxInt64},
		{"double floors toward zero", NewDouble(-2.7), -2, -2, -2},
		{"nan is zero", NewDouble(math.NaN()), 0, 0, 0},
		{"negative infinity", NewDouble(math.Inf(-1)), 0, math.MinInt32, math.MinInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.AsByte(); got != tt.b {
				t.Errorf("AsByte = %d, want %d", got, tt.b)
			}
			if got := tt.n.AsInt(); got != tt.i {
				t.Errorf("AsInt = %d, want %d", got, tt.i)
			}
			if got := tt.n.AsLong(); got != tt.l {
				t.Errorf("AsLong = %d, want %d", got, tt.l)
			}
		})
	}

	if !NewBoolean(true).AsBool() || NewBoolean(false).AsBool() {
		t.Error("boolean round trip through byte failed")
	}
}
