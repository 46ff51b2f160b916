package dfsave

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	saveerrors "github.com/dfarchive/dfsave/dfsave/errors"
	"github.com/dfarchive/dfsave/dfsave/logger"
)

// ChunkSize is the number of flat-body bytes that go into one chunk.
// Fixed by the legacy save format.
const ChunkSize = 20000

// Compress converts a save stream from the raw representation to the
// chunked zlib representation. The input must begin with a valid header;
// the output receives the same version with the chunked tag, followed by
// the chunk sequence. An input that is already chunked is copied through
// unchanged after the header, so nothing gets compressed twice.
func Compress(r io.Reader, w io.Writer) error {
	hdr, err := ReadHeader(r)
	if err != nil {
		return err
	}
	if err := WriteHeader(w, Header{Version: hdr.Version, Compression: CompressionChunked}); err != nil {
		return err
	}

	if hdr.Compression == CompressionChunked {
		logger.Debug("input already chunked, copying body verbatim")
		if _, err := io.Copy(w, r); err != nil {
			return saveerrors.ErrIO.WithCause(err)
		}
		return nil
	}

	window := make([]byte, ChunkSize)
	var chunk bytes.Buffer
	chunks := 0
	for {
		n, rerr := io.ReadFull(r, window)
		if rerr == io.EOF {
			// Zero bytes consumed: clean end of the flat body. An input
			// whose length is an exact multiple of the window size must
			// not grow a trailing empty chunk.
			break
		}
		if rerr != nil && rerr != io.ErrUnexpectedEOF {
			return saveerrors.FromIO(rerr)
		}

		chunk.Reset()
		zw := zlib.NewWriter(&chunk)
		if _, err := zw.Write(window[:n]); err != nil {
			return saveerrors.ErrIO.WithCause(err)
		}
		if err := zw.Close(); err != nil {
			return saveerrors.ErrIO.WithCause(err)
		}

		if err := WriteU32(w, uint32(chunk.Len())); err != nil {
			return err
		}
		if _, err := w.Write(chunk.Bytes()); err != nil {
			return saveerrors.ErrIO.WithCause(err)
		}
		chunks++

		if rerr == io.ErrUnexpectedEOF {
			// Final undersized window.
			break
		}
	}

	logger.Debug("compressed flat body into %d chunks", chunks)
	return nil
}
