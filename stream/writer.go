package stream

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Neumenon/nbt/nbt"
)

// Writer writes frames to an io.Writer. It numbers document frames from 1
// and, when chaining, stamps each frame with the state hash of the
// document written before it.
type Writer struct {
	w       io.Writer
	withCRC bool
	chain   bool
	tagOpts []nbt.Option

	seq  uint64
	base *nbt.Hash
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCRC computes and includes a CRC for each frame with a payload.
func WithCRC() WriterOption {
	return func(w *Writer) {
		w.withCRC = true
	}
}

// WithChain stamps every document frame after the first with base=, the
// state hash of the previous document.
func WithChain() WriterOption {
	return func(w *Writer) {
		w.chain = true
	}
}

// WithEncodeOptions sets the options used to encode and render tags.
func WithEncodeOptions(opts ...nbt.Option) WriterOption {
	return func(w *Writer) {
		w.tagOpts = opts
	}
}

// NewWriter creates a new frame writer.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	writer := &Writer{w: w}
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

// Seq returns the sequence number of the last frame written.
func (w *Writer) Seq() uint64 {
	return w.seq
}

// WriteTag writes t as a binary tag frame.
func (w *Writer) WriteTag(t nbt.Tag) error {
	data, err := nbt.Marshal(t, w.tagOpts...)
	if err != nil {
		return fmt.Errorf("encode tag: %w", err)
	}
	return w.writeDoc(KindTag, data, t)
}

// WriteText writes t as a canonical text frame. The root name is not
// carried.
func (w *Writer) WriteText(t nbt.Tag) error {
	text, err := nbt.Text(t, w.tagOpts...)
	if err != nil {
		return fmt.Errorf("render tag: %w", err)
	}
	return w.writeDoc(KindText, []byte(text), t)
}

// WriteEnd writes the final end frame.
func (w *Writer) WriteEnd() error {
	w.seq++
	return w.WriteFrame(&Frame{
		Version: Version,
		Seq:     w.seq,
		Kind:    KindEnd,
		Final:   true,
	})
}

func (w *Writer) writeDoc(kind FrameKind, payload []byte, t nbt.Tag) error {
	w.seq++
	err := w.WriteFrame(&Frame{
		Version: Version,
		Seq:     w.seq,
		Kind:    kind,
		Payload: payload,
		Base:    w.base,
	})
	if err != nil {
		return err
	}
	if w.chain {
		h, err := StateHash(t, w.tagOpts...)
		if err != nil {
			return fmt.Errorf("state hash: %w", err)
		}
		w.base = &h
	}
	return nil
}

// WriteFrame writes a single frame as given, without numbering it.
//
// Format:
//
//	@frame{v=1 seq=N kind=K len=N [crc=X] [base=blake3:X] [final=true]}\n
//	<payload bytes>\n
func (w *Writer) WriteFrame(f *Frame) error {
	var header strings.Builder
	header.WriteString("@frame{")

	// Required fields
	header.WriteString("v=")
	if f.Version == 0 {
		header.WriteByte('1')
	} else {
		header.WriteString(strconv.Itoa(int(f.Version)))
	}

	header.WriteString(" seq=")
	header.WriteString(strconv.FormatUint(f.Seq, 10))

	header.WriteString(" kind=")
	header.WriteString(f.Kind.String())

	header.WriteString(" len=")
	header.WriteString(strconv.Itoa(len(f.Payload)))

	crc := f.CRC
	if crc == nil && w.withCRC && len(f.Payload) > 0 {
		computed := ComputeCRC(f.Payload)
		crc = &computed
	}
	if crc != nil {
		fmt.Fprintf(&header, " crc=%08x", *crc)
	}

	if f.Base != nil {
		header.WriteString(" base=")
		header.WriteString(formatBase(*f.Base))
	}

	if f.Final {
		header.WriteString(" final=true")
	}

	header.WriteString("}\n")

	if _, err := io.WriteString(w.w, header.String()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(f.Payload) > 0 {
		if _, err := w.w.Write(f.Payload); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
	}
	if _, err := io.WriteString(w.w, "\n"); err != nil {
		return fmt.Errorf("write trailing newline: %w", err)
	}
	return nil
}
