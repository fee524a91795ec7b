package nbt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compression is the container format a tag stream was found in.
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZlib
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionZstd:
		return "zstd"
	}
	return "none"
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// DetectCompression inspects the leading bytes of a stream. A raw stream
// always starts with a tag type byte, which never collides with the gzip,
// zlib or zstd magic.
func DetectCompression(head []byte) Compression {
	switch {
	case len(head) >= 2 && head[0] == 0x1f && head[1] == 0x8b:
		return CompressionGzip
	case len(head) >= 2 && head[0] == 0x78 && (uint16(head[0])<<8|uint16(head[1]))%31 == 0:
		return CompressionZlib
	case len(head) >= 4 && bytes.Equal(head[:4], zstdMagic):
		return CompressionZstd
	}
	return CompressionNone
}

// Decompress wraps r in the decoder matching its magic bytes.
func Decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, CompressionNone, err
	}

	switch c := DetectCompression(head); c {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, c, compressionError(c, 0, err)
		}
		return zr, c, nil
	case CompressionZlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, c, compressionError(c, 0, err)
		}
		return zr, c, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, compressionError(c, 0, err)
		}
		return zr.IOReadCloser(), c, nil
	default:
		return io.NopCloser(br), c, nil
	}
}

// ReadFile decodes the tag stream stored at path, transparently handling
// gzip, zlib and zstd compression.
func ReadFile(path string) (tag Tag, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	stream, c, err := Decompress(file)
	if err != nil {
		return
	}
	defer stream.Close()

	b, err := io.ReadAll(stream)
	if err != nil {
		err = compressionError(c, len(b), err)
		return
	}
	return Read(b)
}

// compressionError reports a corrupt or truncated compressed stream. Offset
// counts decompressed bytes.
func compressionError(c Compression, offset int, err error) error {
	reason := fmt.Sprintf("corrupt %s stream: %v", c, err)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		reason = fmt.Sprintf("truncated %s stream", c)
	}
	return &MalformedError{Offset: offset, Reason: reason, Err: err}
}
