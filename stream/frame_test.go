package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/Neumenon/nbt/nbt"
)

func sampleDoc(t *testing.T, n int32) *nbt.CompoundTag {
	t.Helper()
	c := nbt.Named("doc", nbt.NewCompound())
	c.PutInt("n", n)
	c.PutString("label", "frame\nwith newline")
	c.PutIntArray("ids", []int32{1, 2, 3})
	return c
}

// ============================================================
// Writer Tests
// ============================================================

func TestWriter_MinimalFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	err := w.WriteFrame(&Frame{
		Version: 1,
		Seq:     1,
		Kind:    KindText,
		Payload: []byte("{}"),
	})
	if err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	got := buf.String()
	want := "@frame{v=1 seq=1 kind=text len=2}\n{}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriter_WithCRC(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithCRC())

	if err := w.WriteFrame(&Frame{Seq: 5, Kind: KindText, Payload: []byte("hello")}); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	want := "@frame{v=1 seq=5 kind=text len=5 crc=3610a686}\nhello\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriter_FinalAndBase(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	base := nbt.Hash{0xab, 0xcd}
	if err := w.WriteFrame(&Frame{Seq: 2, Kind: KindText, Payload: []byte("1"), Base: &base, Final: true}); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, " base=blake3:abcd0000") {
		t.Errorf("missing base in %q", got)
	}
	if !strings.Contains(got, " final=true}") {
		t.Errorf("missing final in %q", got)
	}
}

func TestWriter_Sequence(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteText(nbt.NewInt(7)); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if err := w.WriteTag(sampleDoc(t, 1)); err != nil {
		t.Fatalf("WriteTag: %v", err)
	}
	if err := w.WriteEnd(); err != nil {
		t.Fatalf("WriteEnd: %v", err)
	}
	if w.Seq() != 3 {
		t.Errorf("Seq = %d, want 3", w.Seq())
	}

	frames, err := NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	kinds := []FrameKind{KindText, KindTag, KindEnd}
	if len(frames) != len(kinds) {
		t.Fatalf("got %d frames, want %d", len(frames), len(kinds))
	}
	for i, f := range frames {
		if f.Seq != uint64(i+1) || f.Kind != kinds[i] {
			t.Errorf("frame %d: seq=%d kind=%s", i, f.Seq, f.Kind)
		}
	}
	if string(frames[0].Payload) != "7" {
		t.Errorf("text payload = %q", frames[0].Payload)
	}
	if !frames[2].IsFinal() || len(frames[2].Payload) != 0 {
		t.Errorf("end frame = %+v", frames[2])
	}
}

// ============================================================
// Reader Tests
// ============================================================

func TestReader_MinimalFrame(t *testing.T) {
	input := "@frame{v=1 seq=1 kind=text len=2}\n{}\n"
	r := NewReader(strings.NewReader(input))

	frame, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if frame.Version != 1 {
		t.Errorf("Version = %d, want 1", frame.Version)
	}
	if frame.Seq != 1 {
		t.Errorf("Seq = %d, want 1", frame.Seq)
	}
	if frame.Kind != KindText {
		t.Errorf("Kind = %v, want text", frame.Kind)
	}
	if string(frame.Payload) != "{}" {
		t.Errorf("Payload = %q, want {}", string(frame.Payload))
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("second Next = %v, want io.EOF", err)
	}
}

func TestReader_CRCMismatch(t *testing.T) {
	input := "@frame{v=1 seq=5 kind=text len=5 crc=deadbeef}\nhello\n"

	_, err := NewReader(strings.NewReader(input)).Next()
	var crcErr *CRCMismatchError
	if !errors.As(err, &crcErr) {
		t.Fatalf("expected CRCMismatchError, got %T: %v", err, err)
	}
	if crcErr.Seq != 5 || crcErr.Got != 0x3610a686 {
		t.Errorf("CRCMismatchError = %+v", crcErr)
	}

	// Verification off
	r := NewReader(strings.NewReader(input), WithCRCVerification(false))
	if _, err := r.Next(); err != nil {
		t.Errorf("Next without verification: %v", err)
	}
}

func TestReader_PayloadWithNewlinesAndBraces(t *testing.T) {
	payload := "{a:\"}\n{\"}\n"
	input := fmt.Sprintf("@frame{v=1 seq=1 kind=text len=%d}\n%s\n", len(payload), payload)

	frame, err := NewReader(strings.NewReader(input)).Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if string(frame.Payload) != payload {
		t.Errorf("Payload = %q, want %q", frame.Payload, payload)
	}
}

func TestReader_HeaderVariations(t *testing.T) {
	inputs := []string{
		"@frame{v=1 seq=1 kind=text len=1}\nx\n",
		"@frame{v=1,seq=1,kind=text,len=1}\nx\n",
		"@frame{seq=1\tkind=1 len=1 extra}\nx\n",
		"@frame{v=1 seq=1 kind=text len=1 crc=crc32:8cdc1683}\nx",
	}
	for _, input := range inputs {
		frame, err := NewReader(strings.NewReader(input)).Next()
		if err != nil {
			t.Errorf("%q: %v", input, err)
			continue
		}
		if frame.Kind != KindText || string(frame.Payload) != "x" {
			t.Errorf("%q: got %+v", input, frame)
		}
	}
}

func TestReader_MalformedHeaders(t *testing.T) {
	inputs := []string{
		"frame{v=1 seq=1 kind=text len=0}\n",
		"@frame{v=1 seq=1 kind=text len=0\n",
		"@frame{v=2 seq=1 kind=text len=0}\n",
		"@frame{v=1 kind=text len=0}\n",
		"@frame{v=1 seq=1 len=0}\n",
		"@frame{v=1 seq=1 kind=text}\n",
		"@frame{v=1 seq=x kind=text len=0}\n",
		"@frame{v=1 seq=1 kind=patch len=0}\n",
		"@frame{v=1 seq=1 kind=text len=-1}\n",
		"@frame{v=1 seq=1 kind=text len=0 crc=123}\n",
		"@frame{v=1 seq=1 kind=text len=0 base=blake3:zz}\n",
		"@frame{v=1 seq=1 kind=end len=1}\nx\n",
		"@frame{v=1 seq=1 kind=text len=10}\nshort",
	}
	for _, input := range inputs {
		_, err := NewReader(strings.NewReader(input)).Next()
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%q: got %v, want ParseError", input, err)
		}
	}
}

func TestReader_ErrorOffset(t *testing.T) {
	first := "@frame{v=1 seq=1 kind=text len=1}\nx\n"
	input := first + "@frame{v=1 seq=2 kind=nope len=0}\n"
	r := NewReader(strings.NewReader(input))
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	_, err := r.Next()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want ParseError", err)
	}
	if perr.Offset != int64(len(first)) {
		t.Errorf("Offset = %d, want %d", perr.Offset, len(first))
	}
}

func TestReader_PayloadTooLarge(t *testing.T) {
	input := "@frame{v=1 seq=1 kind=text len=1000}\n"
	r := NewReader(strings.NewReader(input), WithMaxPayload(100))

	_, err := r.Next()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want ParseError", err)
	}
	if !strings.Contains(perr.Error(), "too large") {
		t.Errorf("error = %v", perr)
	}
}

// ============================================================
// Document round trips
// ============================================================

func TestRoundtrip_Documents(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithCRC(), WithChain())

	docs := []*nbt.CompoundTag{sampleDoc(t, 1), sampleDoc(t, 2), sampleDoc(t, 3)}
	for i, d := range docs {
		write := w.WriteTag
		if i == 1 {
			write = w.WriteText
		}
		if err := write(d); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := w.WriteEnd(); err != nil {
		t.Fatalf("WriteEnd: %v", err)
	}

	r := NewReader(&buf)
	for i, want := range docs {
		got, frame, err := r.NextTag()
		if err != nil {
			t.Fatalf("NextTag %d: %v", i, err)
		}
		if i > 0 && !frame.HasBase() {
			t.Errorf("frame %d has no base", frame.Seq)
		}
		if !frame.HasCRC() {
			t.Errorf("frame %d has no crc", frame.Seq)
		}
		if frame.Kind == KindText {
			got.SetName(want.Name())
		}
		if !nbt.Equal(got, want) {
			t.Errorf("doc %d = %v, want %v", i, got, want)
		}
	}
	if _, _, err := r.NextTag(); err != io.EOF {
		t.Fatalf("after last doc: %v, want io.EOF", err)
	}
	if !r.Cursor().Done() {
		t.Error("cursor should be done after end frame")
	}
	if _, _, err := r.NextTag(); err != io.EOF {
		t.Errorf("after end: %v, want io.EOF", err)
	}
}

func TestRoundtrip_TextDropsRootName(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteText(sampleDoc(t, 1)); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	got, _, err := NewReader(&buf).NextTag()
	if err != nil {
		t.Fatalf("NextTag: %v", err)
	}
	if got.Name() != "" {
		t.Errorf("Name = %q, want empty", got.Name())
	}
}

func TestRoundtrip_BadPayload(t *testing.T) {
	input := "@frame{v=1 seq=1 kind=tag len=3}\n\x0a\x00\x00\n"
	_, _, err := NewReader(strings.NewReader(input)).NextTag()
	if !errors.Is(err, nbt.ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestRoundtrip_SequenceGap(t *testing.T) {
	input := "@frame{v=1 seq=1 kind=text len=1}\n1\n@frame{v=1 seq=3 kind=text len=1}\n2\n"
	r := NewReader(strings.NewReader(input))
	if _, _, err := r.NextTag(); err != nil {
		t.Fatalf("NextTag: %v", err)
	}
	_, _, err := r.NextTag()
	var seqErr *SequenceError
	if !errors.As(err, &seqErr) {
		t.Fatalf("got %v, want SequenceError", err)
	}
	if seqErr.Expected != 2 || seqErr.Got != 3 {
		t.Errorf("SequenceError = %+v", seqErr)
	}
}

func TestRoundtrip_BaseMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithChain())
	if err := w.WriteTag(sampleDoc(t, 1)); err != nil {
		t.Fatalf("WriteTag: %v", err)
	}
	bogus := nbt.Hash{1}
	if err := w.WriteFrame(&Frame{Seq: 2, Kind: KindText, Payload: []byte("1"), Base: &bogus}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	r := NewReader(&buf)
	if _, _, err := r.NextTag(); err != nil {
		t.Fatalf("NextTag: %v", err)
	}
	_, _, err := r.NextTag()
	var baseErr *BaseMismatchError
	if !errors.As(err, &baseErr) {
		t.Fatalf("got %v, want BaseMismatchError", err)
	}
	if baseErr.Expected != bogus {
		t.Errorf("Expected = %s, want %s", baseErr.Expected, bogus)
	}
}

// ============================================================
// Hash helpers
// ============================================================

func TestCRC_KnownValues(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"", 0},
		{"hello", 0x3610a686},
		{"123456789", 0xcbf43926},
	}
	for _, tt := range tests {
		if got := ComputeCRC([]byte(tt.input)); got != tt.want {
			t.Errorf("ComputeCRC(%q) = %08x, want %08x", tt.input, got, tt.want)
		}
	}
}

func TestStateHash_IgnoresRootName(t *testing.T) {
	a := sampleDoc(t, 1)
	b := sampleDoc(t, 1)
	b.SetName("other")

	ha, err := StateHash(a)
	if err != nil {
		t.Fatalf("StateHash: %v", err)
	}
	hb, err := StateHash(b)
	if err != nil {
		t.Fatalf("StateHash: %v", err)
	}
	if ha != hb {
		t.Errorf("state hash depends on root name")
	}

	fp, err := nbt.Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp == ha {
		t.Error("state hash should differ from fingerprint")
	}

	parsed, ok := parseBase(formatBase(ha))
	if !ok || parsed != ha {
		t.Errorf("parseBase(formatBase(h)) = %s, %v", parsed, ok)
	}
}
