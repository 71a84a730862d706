package nbt

import (
	"bytes"
	"fmt"
	"io"
)

// Encode writes t to w as a root entry: kind byte, name, payload. The tree
// is encoded in memory first and handed to w in a single Write, so a tree
// that fails to encode leaves w untouched.
func Encode(w io.Writer, t Tag, opts ...Option) error {
	data, err := Marshal(t, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal returns the binary encoding of t.
func Marshal(t Tag, opts ...Option) ([]byte, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if isNil(t) {
		return nil, fmt.Errorf("%w: nil tag", ErrInvalidArgument)
	}
	var buf bytes.Buffer
	if err := writeNamed(&writer{w: &buf}, t, o.MaxDepth); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one root entry from r. It reads no further than the end of
// that entry, so several tags can be decoded from one stream in turn.
func Decode(r io.Reader, opts ...Option) (Tag, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return decodeNamed(&reader{r: r, opts: o}, o.MaxDepth)
}

// Unmarshal decodes data, which must hold exactly one root entry.
func Unmarshal(data []byte, opts ...Option) (Tag, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	br := bytes.NewReader(data)
	rd := &reader{r: br, opts: o}
	t, err := decodeNamed(rd, o.MaxDepth)
	if err != nil {
		return nil, err
	}
	if br.Len() > 0 {
		return nil, rd.fail(fmt.Errorf("%w: %d trailing bytes", ErrMalformed, br.Len()))
	}
	return t, nil
}
