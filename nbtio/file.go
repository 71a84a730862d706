package nbtio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Neumenon/nbt/nbt"
)

// DefaultMaxSize caps the decompressed size ReadTag accepts unless the
// caller passes its own nbt.WithMaxSize.
const DefaultMaxSize = 128 << 20

// ReadTag reads one named tag from r, detecting its compression from the
// leading bytes.
func ReadTag(r io.Reader, opts ...nbt.Option) (nbt.Tag, Compression, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, err
	}
	c := Detect(head)
	t, err := DecodeTag(br, c, opts...)
	return t, c, err
}

// DecodeTag reads one named tag from r compressed with c. The tag is
// decoded straight from the decompressor, at most DefaultMaxSize bytes of
// it unless opts carry nbt.WithMaxSize, and must account for the whole
// decompressed stream.
func DecodeTag(r io.Reader, c Compression, opts ...nbt.Option) (nbt.Tag, error) {
	zr, err := NewReader(r, c)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	opts = append([]nbt.Option{nbt.WithMaxSize(DefaultMaxSize)}, opts...)
	t, err := nbt.Decode(zr, opts...)
	if err != nil {
		return nil, err
	}

	// Reading to the end also lets gzip and zlib verify their checksums.
	var extra [1]byte
	switch _, err := io.ReadFull(zr, extra[:]); {
	case err == nil:
		return nil, fmt.Errorf("%w: trailing data after tag", nbt.ErrMalformed)
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	return t, nil
}

// WriteTag writes t to w as a named tag compressed with c.
func WriteTag(w io.Writer, t nbt.Tag, c Compression, opts ...nbt.Option) error {
	zw, err := NewWriter(w, c)
	if err != nil {
		return err
	}
	if err := nbt.Encode(zw, t, opts...); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	return nil
}

// ReadFile reads a tag file of any supported compression.
func ReadFile(path string, opts ...nbt.Option) (nbt.Tag, Compression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, None, err
	}
	defer f.Close()

	t, c, err := ReadTag(f, opts...)
	if err != nil {
		return nil, c, fmt.Errorf("read %s: %w", path, err)
	}
	return t, c, nil
}

// WriteFile writes t to path compressed with c. The file is written to a
// temporary sibling first and renamed into place, so a failed write leaves
// any existing file untouched.
func WriteFile(path string, t nbt.Tag, c Compression, opts ...nbt.Option) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".nbt-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	bw := bufio.NewWriter(tmp)
	if err = WriteTag(bw, t, c, opts...); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
