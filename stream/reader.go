package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Neumenon/nbt/nbt"
)

// Reader reads frames from an io.Reader.
type Reader struct {
	r          *bufio.Reader
	off        int64
	maxPayload int
	verifyCRC  bool
	tagOpts    []nbt.Option
	cursor     *Cursor
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxPayload sets the maximum payload size (default: 64 MiB).
func WithMaxPayload(max int) ReaderOption {
	return func(r *Reader) {
		r.maxPayload = max
	}
}

// WithCRCVerification turns CRC verification on or off. It is on by
// default.
func WithCRCVerification(enabled bool) ReaderOption {
	return func(r *Reader) {
		r.verifyCRC = enabled
	}
}

// WithDecodeOptions sets the options used to decode and parse payloads.
func WithDecodeOptions(opts ...nbt.Option) ReaderOption {
	return func(r *Reader) {
		r.tagOpts = opts
	}
}

// NewReader creates a new frame reader.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	reader := &Reader{
		r:          bufio.NewReader(r),
		maxPayload: MaxPayloadSize,
		verifyCRC:  true,
	}
	for _, opt := range opts {
		opt(reader)
	}
	reader.cursor = NewCursor(reader.tagOpts...)
	return reader
}

// Cursor returns the cursor tracking the documents read by NextTag.
func (r *Reader) Cursor() *Cursor {
	return r.cursor
}

// Next reads and returns the next raw frame without sequence or base
// checks. Returns io.EOF when no more frames are available.
func (r *Reader) Next() (*Frame, error) {
	start := r.off
	headerLine, err := r.r.ReadString('\n')
	r.off += int64(len(headerLine))
	if err != nil {
		if err == io.EOF && strings.TrimSpace(headerLine) == "" {
			return nil, io.EOF
		}
		if err != io.EOF {
			return nil, fmt.Errorf("read header: %w", err)
		}
		// A header without its newline can still be complete when the
		// frame has no payload.
	}

	frame, payloadLen, err := parseHeader(headerLine, start)
	if err != nil {
		return nil, err
	}
	if payloadLen > r.maxPayload {
		return nil, &ParseError{
			Reason: fmt.Sprintf("payload too large: %d > %d", payloadLen, r.maxPayload),
			Offset: start,
		}
	}
	if frame.Kind == KindEnd && payloadLen > 0 {
		return nil, &ParseError{Reason: "end frame with payload", Offset: start}
	}

	if payloadLen > 0 {
		frame.Payload = make([]byte, payloadLen)
		n, err := io.ReadFull(r.r, frame.Payload)
		r.off += int64(n)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, &ParseError{Reason: "truncated payload", Offset: r.off}
			}
			return nil, fmt.Errorf("read payload: %w", err)
		}
	}

	// Trailing newline, optional at EOF.
	if b, err := r.r.ReadByte(); err == nil {
		if b == '\n' {
			r.off++
		} else {
			_ = r.r.UnreadByte()
		}
	}

	if r.verifyCRC && frame.CRC != nil {
		computed := ComputeCRC(frame.Payload)
		if computed != *frame.CRC {
			return nil, &CRCMismatchError{Seq: frame.Seq, Expected: *frame.CRC, Got: computed}
		}
	}

	return frame, nil
}

// NextTag reads the next document frame, checks it against the cursor and
// decodes its payload. It returns io.EOF at an end frame, after a final
// frame or at the end of input.
func (r *Reader) NextTag() (nbt.Tag, *Frame, error) {
	if r.cursor.Done() {
		return nil, nil, io.EOF
	}
	f, err := r.Next()
	if err != nil {
		return nil, nil, err
	}
	if err := r.cursor.Process(f); err != nil {
		return nil, f, err
	}

	var t nbt.Tag
	switch f.Kind {
	case KindEnd:
		return nil, f, io.EOF
	case KindTag:
		t, err = nbt.Unmarshal(f.Payload, r.tagOpts...)
	case KindText:
		t, err = nbt.ParseText(string(f.Payload), r.tagOpts...)
	}
	if err != nil {
		return nil, f, fmt.Errorf("frame %d: %w", f.Seq, err)
	}
	r.cursor.SetState(t)
	return t, f, nil
}

// ReadAll reads all frames until EOF.
func (r *Reader) ReadAll() ([]*Frame, error) {
	var frames []*Frame
	for {
		frame, err := r.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
}

// ReadAllTags reads documents until the stream ends.
func (r *Reader) ReadAllTags() ([]nbt.Tag, error) {
	var tags []nbt.Tag
	for {
		t, _, err := r.NextTag()
		if err == io.EOF {
			return tags, nil
		}
		if err != nil {
			return tags, err
		}
		tags = append(tags, t)
	}
}

// parseHeader parses an @frame{...} header line that starts at offset off.
func parseHeader(line string, off int64) (*Frame, int, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "@frame{") {
		return nil, 0, &ParseError{Reason: "expected @frame{", Offset: off}
	}
	end := strings.LastIndexByte(line, '}')
	if end < 0 {
		return nil, 0, &ParseError{Reason: "missing closing }", Offset: off + int64(len(line))}
	}

	frame := &Frame{Version: Version}
	payloadLen := 0
	var seen struct{ seq, kind, length bool }

	for _, pair := range strings.FieldsFunc(line[len("@frame{"):end], isSeparator) {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue // unknown flags are ignored
		}
		invalid := func() (*Frame, int, error) {
			return nil, 0, &ParseError{Reason: "invalid " + key + ": " + val, Offset: off}
		}

		switch key {
		case "v":
			v, err := strconv.ParseUint(val, 10, 8)
			if err != nil {
				return invalid()
			}
			if uint8(v) != Version {
				return nil, 0, &ParseError{Reason: "unsupported version " + val, Offset: off}
			}
			frame.Version = uint8(v)

		case "seq":
			seq, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return invalid()
			}
			frame.Seq = seq
			seen.seq = true

		case "kind":
			kind, ok := ParseKind(val)
			if !ok {
				return invalid()
			}
			frame.Kind = kind
			seen.kind = true

		case "len":
			l, err := strconv.ParseUint(val, 10, 31)
			if err != nil {
				return invalid()
			}
			payloadLen = int(l)
			seen.length = true

		case "crc":
			crc, ok := parseCRC(val)
			if !ok {
				return invalid()
			}
			frame.CRC = &crc

		case "base":
			base, ok := parseBase(val)
			if !ok {
				return invalid()
			}
			frame.Base = &base

		case "final":
			frame.Final = val == "true" || val == "1"
		}
	}

	switch {
	case !seen.seq:
		return nil, 0, &ParseError{Reason: "missing seq", Offset: off}
	case !seen.kind:
		return nil, 0, &ParseError{Reason: "missing kind", Offset: off}
	case !seen.length:
		return nil, 0, &ParseError{Reason: "missing len", Offset: off}
	}
	return frame, payloadLen, nil
}

func isSeparator(c rune) bool {
	return c == ' ' || c == ',' || c == '\t'
}

// parseCRC parses CRC value: "crc32:XXXXXXXX" or "XXXXXXXX"
func parseCRC(val string) (uint32, bool) {
	val = strings.TrimPrefix(val, "crc32:")
	if len(val) != 8 {
		return 0, false
	}
	v, err := strconv.ParseUint(val, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
