package region

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Neumenon/nbt/nbt"
	"github.com/Neumenon/nbt/nbtio"
)

// ChunkCompression is the compression id stored in front of each chunk in
// a region file.
//
// ChunkLZ4 chunks are LZ4 frames (nbtio.LZ4). Chunks written with the
// "LZ4Block" stream framing of lz4-java are not supported; DecodeChunk
// reports them as ErrUnknownCompression.
type ChunkCompression uint8

const (
	ChunkGzip ChunkCompression = 1
	ChunkZlib ChunkCompression = 2
	ChunkNone ChunkCompression = 3
	ChunkLZ4  ChunkCompression = 4
)

func (c ChunkCompression) String() string {
	if comp, err := c.Compression(); err == nil {
		return comp.String()
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

// Compression maps the id to a stream compression.
func (c ChunkCompression) Compression() (nbtio.Compression, error) {
	switch c {
	case ChunkGzip:
		return nbtio.Gzip, nil
	case ChunkZlib:
		return nbtio.Zlib, nil
	case ChunkNone:
		return nbtio.None, nil
	case ChunkLZ4:
		return nbtio.LZ4, nil
	default:
		return 0, fmt.Errorf("%w: chunk compression id %d", nbtio.ErrUnknownCompression, uint8(c))
	}
}

// ChunkCompressionOf returns the chunk id for a stream compression. Zstd
// has no chunk id.
func ChunkCompressionOf(c nbtio.Compression) (ChunkCompression, error) {
	switch c {
	case nbtio.Gzip:
		return ChunkGzip, nil
	case nbtio.Zlib:
		return ChunkZlib, nil
	case nbtio.None:
		return ChunkNone, nil
	case nbtio.LZ4:
		return ChunkLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %s has no chunk id", nbtio.ErrUnknownCompression, c)
	}
}

// chunkHeaderSize is the 4-byte length and 1-byte compression id in front
// of every chunk. The length counts the id byte and the data.
const chunkHeaderSize = 5

// EncodeChunk returns the chunk record for t: header followed by the
// compressed tag.
func EncodeChunk(t nbt.Tag, c ChunkCompression, opts ...nbt.Option) ([]byte, error) {
	comp, err := c.Compression()
	if err != nil {
		return nil, err
	}
	data, err := nbt.Marshal(t, opts...)
	if err != nil {
		return nil, err
	}
	if data, err = nbtio.Compress(data, comp); err != nil {
		return nil, err
	}
	out := make([]byte, chunkHeaderSize, chunkHeaderSize+len(data))
	binary.BigEndian.PutUint32(out, uint32(len(data)+1))
	out[4] = byte(c)
	return append(out, data...), nil
}

// DecodeChunk decodes a chunk record. Bytes after the declared length are
// sector padding and are ignored.
func DecodeChunk(record []byte, opts ...nbt.Option) (nbt.Tag, ChunkCompression, error) {
	if len(record) < chunkHeaderSize {
		return nil, 0, fmt.Errorf("%w: chunk record of %d bytes", nbt.ErrMalformed, len(record))
	}
	n := binary.BigEndian.Uint32(record)
	if n == 0 || uint64(n)+4 > uint64(len(record)) {
		return nil, 0, fmt.Errorf("%w: chunk length %d exceeds record of %d bytes", nbt.ErrMalformed, n, len(record))
	}
	c := ChunkCompression(record[4])
	comp, err := c.Compression()
	if err != nil {
		return nil, c, err
	}
	data := record[chunkHeaderSize : 4+n]
	if c == ChunkLZ4 && bytes.HasPrefix(data, lz4BlockMagic) {
		return nil, c, fmt.Errorf("%w: lz4-java block framing", nbtio.ErrUnknownCompression)
	}
	t, err := nbtio.DecodeTag(bytes.NewReader(data), comp, opts...)
	if err != nil {
		return nil, c, err
	}
	return t, c, nil
}

var lz4BlockMagic = []byte("LZ4Block")
