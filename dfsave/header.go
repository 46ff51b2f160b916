package dfsave

import (
	"io"

	saveerrors "github.com/dfarchive/dfsave/dfsave/errors"
)

// Compression tags understood by the save header.
const (
	// CompressionNone marks a raw body: flat bytes until end of stream.
	CompressionNone uint32 = 0
	// CompressionChunked marks a chunked body: length-prefixed,
	// independently zlib-compressed chunks until end of stream.
	CompressionChunked uint32 = 1
)

// Header is the 8-byte prefix present in both save representations: a
// nonzero version followed by a compression tag, both little-endian u32.
type Header struct {
	Version     uint32
	Compression uint32
}

// ReadHeader reads and validates the save header. The version is an opaque
// passthrough value but must be nonzero; the compression tag must be one of
// the known values.
func ReadHeader(r io.Reader) (Header, error) {
	version, err := ReadU32(r)
	if err != nil {
		return Header{}, err
	}
	if version == 0 {
		return Header{}, saveerrors.ErrVersionIsZero
	}

	compression, err := ReadU32(r)
	if err != nil {
		return Header{}, err
	}
	if compression > CompressionChunked {
		return Header{}, saveerrors.ErrCompressionUnknown.WithDetail("compression", compression)
	}

	return Header{Version: version, Compression: compression}, nil
}

// WriteHeader writes the two header fields. No validation happens on write;
// the output compression tag is always chosen by the codec, never taken
// from untrusted input.
func WriteHeader(w io.Writer, h Header) error {
	if err := WriteU32(w, h.Version); err != nil {
		return err
	}
	return WriteU32(w, h.Compression)
}
