package dfsave

import (
	"io"

	"github.com/opencontainers/go-digest"

	saveerrors "github.com/dfarchive/dfsave/dfsave/errors"
	"github.com/dfarchive/dfsave/dfsave/logger"
)

// SaveInfo summarizes one save stream in either representation.
type SaveInfo struct {
	Version     uint32
	Compression uint32
	// Chunks is the number of chunks in the body; 0 for a raw body.
	Chunks int
	// CompressedBytes is the total chunk payload size, excluding the
	// length prefixes. For a raw body it equals FlatBytes.
	CompressedBytes int64
	// FlatBytes is the size of the flat body.
	FlatBytes int64
	// FlatDigest is the SHA-256 digest of the flat body. Two streams
	// carry the same save if and only if their flat digests match,
	// regardless of representation.
	FlatDigest digest.Digest
}

// Inspect reads a save stream and reports its header fields, chunk layout
// and the digest of the flat body. It walks the body with the same framing
// rules as the codec but writes nothing; the input is consumed.
func Inspect(r io.Reader) (*SaveInfo, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	info := &SaveInfo{Version: hdr.Version, Compression: hdr.Compression}
	digester := digest.SHA256.Digester()

	if hdr.Compression == CompressionNone {
		n, err := io.Copy(digester.Hash(), r)
		if err != nil {
			return nil, saveerrors.FromIO(err)
		}
		info.FlatBytes = n
		info.CompressedBytes = n
		info.FlatDigest = digester.Digest()
		return info, nil
	}

	for {
		length, ok, err := ReadU32OrEOF(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		n, err := decompressChunk(digester.Hash(), r, length)
		if err != nil {
			return nil, err
		}
		info.Chunks++
		info.CompressedBytes += int64(length)
		info.FlatBytes += n
		logger.Debug("chunk %d: %d compressed bytes, %d flat bytes", info.Chunks, length, n)
	}

	info.FlatDigest = digester.Digest()
	return info, nil
}
