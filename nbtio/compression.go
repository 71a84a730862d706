// Package nbtio reads and writes tag files through the compression
// formats they are commonly stored in.
package nbtio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the compression wrapped around a tag stream.
type Compression uint8

const (
	// None is an uncompressed stream.
	None Compression = iota

	// Gzip is RFC 1952 gzip, the usual format of standalone .dat files.
	Gzip

	// Zlib is RFC 1950 zlib, the usual format of region chunks.
	Zlib

	// Zstd is a Zstandard frame.
	Zstd

	// LZ4 is an LZ4 frame.
	LZ4
)

// ErrUnknownCompression is returned for an unrecognized compression.
var ErrUnknownCompression = errors.New("nbtio: unknown compression")

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name as returned by String.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// Detect guesses the compression from the first bytes of a stream. It
// needs at most four bytes and reports None when nothing matches.
//
// Only zlib headers with a window of at least 512 bytes are recognized,
// which keeps every uncompressed root kind byte out of the zlib range.
func Detect(head []byte) Compression {
	switch {
	case len(head) >= 4 && head[0] == 0x04 && head[1] == 0x22 && head[2] == 0x4d && head[3] == 0x18:
		return LZ4
	case len(head) >= 4 && head[0] == 0x28 && head[1] == 0xb5 && head[2] == 0x2f && head[3] == 0xfd:
		return Zstd
	case len(head) >= 2 && head[0] == 0x1f && head[1] == 0x8b:
		return Gzip
	case len(head) >= 2 && isZlibHeader(head[0], head[1]):
		return Zlib
	default:
		return None
	}
}

func isZlibHeader(cmf, flg byte) bool {
	method, info := cmf&0x0f, cmf>>4
	return method == 8 && info >= 1 && info <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// NewReader wraps r with a decompressor for c. Closing the returned reader
// releases the decompressor but does not close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		return zr, nil
	case Zstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

// NewWriter wraps w with a compressor for c. The caller must Close the
// returned writer to flush it; Close does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Compress returns data compressed with c.
func Compress(data []byte, c Compression) ([]byte, error) {
	if c == None {
		return data, nil
	}
	var buf bytes.Buffer
	zw, err := NewWriter(&buf, c)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("%s compress: %w", c, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%s compress: %w", c, err)
	}
	return buf.Bytes(), nil
}

// Decompress returns data decompressed with c.
func Decompress(data []byte, c Compression) ([]byte, error) {
	if c == None {
		return data, nil
	}
	zr, err := NewReader(bytes.NewReader(data), c)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", c, err)
	}
	return out, nil
}
