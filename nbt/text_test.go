package nbt

import (
	"math"
	"testing"
)

// ============================================================
// Canonical text
// ============================================================

func TestText_Scalars(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{NewByte(1), "1b"},
		{NewByte(-128), "-128b"},
		{NewShort(2), "2s"},
		{NewInt(3), "3"},
		{NewLong(4), "4l"},
		{NewFloat(5.5), "5.5f"},
		{NewDouble(6.25), "6.25d"},
		{NewDouble(3), "3d"},
		{NewFloat(0.1), "0.1f"},
		{NewDouble(math.Inf(1)), "+Infd"},
		{NewString(`a"b`), `"a\"b"`},
		{NewString("tab\there\\"), `"tab\there\\"`},
		{NewByteArray([]byte{1, 0xFF}), "[B;1b,-1b]"},
		{NewIntArray([]int32{1, 2}), "[I;1,2]"},
		{NewLongArray([]int64{1, 2}), "[L;1l,2l]"},
		{NewIntArray(nil), "[I;]"},
		{NewList(), "[]"},
		{NewCompound(), "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Text(tt.tag)
			if err != nil {
				t.Fatalf("Text failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestText_Compound(t *testing.T) {
	c := NewCompound()
	c.PutByte("b", 1)
	c.PutString("name", "x")
	c.PutIntArray("data", []int32{1, 2})
	c.PutInt("a b", 5)
	c.PutInt("k:v", 6)
	c.PutInt("", 7)
	l, _ := ListOf(NewDouble(1.5), NewDouble(2))
	_ = c.Put("pos", l)

	got, err := Text(c)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	want := `{b:1b,name:"x",data:[I;1,2],"a b":5,"k:v":6,"":7,pos:[1.5d,2d]}`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestText_NilTag(t *testing.T) {
	_, err := Text(nil)
	wantErr(t, err, ErrInvalidArgument)
	_, err = Display(nil)
	wantErr(t, err, ErrInvalidArgument)
}

// ============================================================
// Display form
// ============================================================

func TestDisplay(t *testing.T) {
	bytesList, _ := ListOf(NewByte(1), NewByte(2))
	c := NewCompound()
	c.PutInt("a", 1)

	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{"byte", NewByte(-128), `{"type":"ByteTag","value":-128}`},
		{"named int", Named("ignored", NewInt(3)), `{"type":"IntTag","value":3}`},
		{"double", NewDouble(0.5), `{"type":"DoubleTag","value":0.5}`},
		{"string", NewString("q\""), `{"type":"StringTag","value":"q\""}`},
		{"end", &EndTag{}, `{"type":"EndTag","value":"end"}`},
		{"int array", NewIntArray([]int32{1, 2}), `{"type":"IntArrayTag","value":[1,2]}`},
		{"byte array", NewByteArray([]byte{0xFE}), `{"type":"ByteArrayTag","value":[-2]}`},
		{"empty list", NewList(), `{"type":"ListTag","value":{"type":"EndTag","list":[]}}`},
		{
			"byte list", bytesList,
			`{"type":"ListTag","value":{"type":"ByteTag","list":[{"type":"ByteTag","value":1},{"type":"ByteTag","value":2}]}}`,
		},
		{"compound", c, `{"type":"CompoundTag","value":{"a":{"type":"IntTag","value":1}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Display(tt.tag)
			if err != nil {
				t.Fatalf("Display failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
			if s := tt.tag.String(); s != tt.want {
				t.Errorf("String() = %s", s)
			}
		})
	}
}
