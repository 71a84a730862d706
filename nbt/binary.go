package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// readChunk bounds how many array or list elements are allocated ahead of
// the data actually read, so a forged length cannot force a large
// allocation from a short stream.
const readChunk = 8192

// ============================================================
// Writer
// ============================================================

type writer struct {
	w       io.Writer
	scratch [8]byte
	buf     []byte
}

func (w *writer) raw(p []byte) error {
	_, err := w.w.Write(p)
	return err
}

func (w *writer) u8(v uint8) error {
	w.scratch[0] = v
	return w.raw(w.scratch[:1])
}

func (w *writer) u16(v uint16) error {
	binary.BigEndian.PutUint16(w.scratch[:2], v)
	return w.raw(w.scratch[:2])
}

func (w *writer) u32(v uint32) error {
	binary.BigEndian.PutUint32(w.scratch[:4], v)
	return w.raw(w.scratch[:4])
}

func (w *writer) u64(v uint64) error {
	binary.BigEndian.PutUint64(w.scratch[:8], v)
	return w.raw(w.scratch[:8])
}

// length writes an element count as a signed 32-bit integer.
func (w *writer) length(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: %d elements exceed the int32 count", ErrInvalidArgument, n)
	}
	return w.u32(uint32(n))
}

// str writes a 2-byte length and the modified UTF-8 bytes of s.
func (w *writer) str(s string) error {
	n := mutf8Len(s)
	if n > math.MaxUint16 {
		return fmt.Errorf("%w: string encodes to %d bytes, limit %d", ErrInvalidArgument, n, math.MaxUint16)
	}
	if err := w.u16(uint16(n)); err != nil {
		return err
	}
	w.buf = appendMUTF8(w.buf[:0], s)
	return w.raw(w.buf)
}

// writeEntry writes a full entry: kind byte, name, payload.
func writeEntry(w *writer, name string, t Tag, budget int) error {
	if err := w.u8(uint8(t.Kind())); err != nil {
		return err
	}
	if err := w.str(name); err != nil {
		return err
	}
	return t.writePayload(w, budget)
}

// writeNamed writes t as a root entry. An End tag is written as its kind
// byte alone.
func writeNamed(w *writer, t Tag, budget int) error {
	if t.Kind() == KindEnd {
		return w.u8(uint8(KindEnd))
	}
	return writeEntry(w, t.Name(), t, budget)
}

// ============================================================
// Reader
// ============================================================

type reader struct {
	r       io.Reader
	off     int64
	opts    Options
	scratch [8]byte
}

func (r *reader) fail(err error) error {
	return &DecodeError{Offset: r.off, Err: err}
}

func (r *reader) fill(p []byte) error {
	if limit := int64(r.opts.MaxSize); limit > 0 && r.off+int64(len(p)) > limit {
		return r.fail(fmt.Errorf("%w: input exceeds %d bytes", ErrMalformed, limit))
	}
	n, err := io.ReadFull(r.r, p)
	r.off += int64(n)
	switch {
	case err == nil:
		return nil
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return r.fail(fmt.Errorf("%w: unexpected end of stream", ErrMalformed))
	default:
		return r.fail(fmt.Errorf("%w: %w", ErrMalformed, err))
	}
}

func (r *reader) u8() (uint8, error) {
	if err := r.fill(r.scratch[:1]); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.fill(r.scratch[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.scratch[:2]), nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.fill(r.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.scratch[:4]), nil
}

func (r *reader) u64() (uint64, error) {
	if err := r.fill(r.scratch[:8]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(r.scratch[:8]), nil
}

func (r *reader) str() (string, error) {
	n, err := r.u16()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if err := r.fill(buf); err != nil {
		return "", err
	}
	s, ok := decodeMUTF8(buf)
	if !ok {
		return "", r.fail(fmt.Errorf("%w: invalid modified UTF-8", ErrMalformed))
	}
	return s, nil
}

// arrayLen reads an array element count. Negative counts are malformed.
func (r *reader) arrayLen() (int, error) {
	v, err := r.u32()
	if err != nil {
		return 0, err
	}
	n := int(int32(v))
	if n < 0 {
		return 0, r.fail(fmt.Errorf("%w: negative array length %d", ErrMalformed, n))
	}
	return n, r.checkLen(n)
}

func (r *reader) checkLen(n int) error {
	if r.opts.MaxArrayLen > 0 && n > r.opts.MaxArrayLen {
		return r.fail(fmt.Errorf("%w: length %d exceeds limit %d", ErrMalformed, n, r.opts.MaxArrayLen))
	}
	return nil
}

func (r *reader) kind() (Kind, error) {
	b, err := r.u8()
	if err != nil {
		return 0, err
	}
	k := Kind(b)
	if !k.Valid() {
		return 0, r.fail(fmt.Errorf("%w: %d", ErrUnknownKind, b))
	}
	return k, nil
}

// ============================================================
// Payload decoding
// ============================================================

// decodePayload builds a fresh, unnamed tag of kind k from the stream.
func decodePayload(k Kind, r *reader, budget int) (Tag, error) {
	switch k {
	case KindEnd:
		return &EndTag{}, nil
	case KindByte:
		v, err := r.u8()
		if err != nil {
			return nil, err
		}
		return &ByteTag{Value: int8(v)}, nil
	case KindShort:
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		return &ShortTag{Value: int16(v)}, nil
	case KindInt:
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		return &IntTag{Value: int32(v)}, nil
	case KindLong:
		v, err := r.u64()
		if err != nil {
			return nil, err
		}
		return &LongTag{Value: int64(v)}, nil
	case KindFloat:
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		return &FloatTag{Value: math.Float32frombits(v)}, nil
	case KindDouble:
		v, err := r.u64()
		if err != nil {
			return nil, err
		}
		return &DoubleTag{Value: math.Float64frombits(v)}, nil
	case KindString:
		v, err := r.str()
		if err != nil {
			return nil, err
		}
		return &StringTag{Value: v}, nil
	case KindByteArray:
		v, err := decodeBytes(r)
		if err != nil {
			return nil, err
		}
		return &ByteArrayTag{Value: v}, nil
	case KindIntArray:
		v, err := decodeInts(r, 4, func(p []byte) int32 {
			return int32(binary.BigEndian.Uint32(p))
		})
		if err != nil {
			return nil, err
		}
		return &IntArrayTag{Value: v}, nil
	case KindLongArray:
		v, err := decodeInts(r, 8, func(p []byte) int64 {
			return int64(binary.BigEndian.Uint64(p))
		})
		if err != nil {
			return nil, err
		}
		return &LongArrayTag{Value: v}, nil
	case KindList:
		return decodeList(r, budget)
	case KindCompound:
		return decodeCompound(r, budget)
	default:
		return nil, r.fail(fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k)))
	}
}

func decodeBytes(r *reader) ([]byte, error) {
	n, err := r.arrayLen()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, min(n, readChunk))
	for len(out) < n {
		start := len(out)
		out = append(out, make([]byte, min(n-start, readChunk))...)
		if err := r.fill(out[start:]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeInts[T int32 | int64](r *reader, width int, conv func([]byte) T) ([]T, error) {
	n, err := r.arrayLen()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(n, readChunk))
	buf := make([]byte, min(n, readChunk)*width)
	for len(out) < n {
		k := min(n-len(out), readChunk)
		p := buf[:k*width]
		if err := r.fill(p); err != nil {
			return nil, err
		}
		for i := 0; i < k; i++ {
			out = append(out, conv(p[i*width:]))
		}
	}
	return out, nil
}

// decodeList reads element kind, count and raw element payloads. A
// negative count reads as an empty list; an End element kind with a
// non-zero count is malformed.
func decodeList(r *reader, budget int) (*ListTag, error) {
	elem, err := r.kind()
	if err != nil {
		return nil, err
	}
	v, err := r.u32()
	if err != nil {
		return nil, err
	}
	n := max(0, int(int32(v)))
	if err := r.checkLen(n); err != nil {
		return nil, err
	}
	l := NewList()
	if n == 0 {
		return l, nil
	}
	if elem == KindEnd {
		return nil, r.fail(fmt.Errorf("%w: list of %d end tags", ErrMalformed, n))
	}
	next, err := descend(budget)
	if err != nil {
		return nil, r.fail(err)
	}
	l.items = make([]Tag, 0, min(n, readChunk))
	for i := 0; i < n; i++ {
		t, err := decodePayload(elem, r, next)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, t)
	}
	l.elemKind = elem
	return l, nil
}

// decodeCompound reads named entries until an End kind byte. A repeated
// name keeps its first position and the last value.
func decodeCompound(r *reader, budget int) (*CompoundTag, error) {
	c := NewCompound()
	next := -1
	for {
		k, err := r.kind()
		if err != nil {
			return nil, err
		}
		if k == KindEnd {
			return c, nil
		}
		name, err := r.str()
		if err != nil {
			return nil, err
		}
		if next < 0 {
			if next, err = descend(budget); err != nil {
				return nil, r.fail(err)
			}
		}
		t, err := decodePayload(k, r, next)
		if err != nil {
			return nil, err
		}
		c.put(name, t)
	}
}

// decodeNamed reads a root entry. A lone End kind byte yields an EndTag.
func decodeNamed(r *reader, budget int) (Tag, error) {
	k, err := r.kind()
	if err != nil {
		return nil, err
	}
	if k == KindEnd {
		return &EndTag{}, nil
	}
	name, err := r.str()
	if err != nil {
		return nil, err
	}
	t, err := decodePayload(k, r, budget)
	if err != nil {
		return nil, err
	}
	t.SetName(name)
	return t, nil
}
