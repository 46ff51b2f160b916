package dfsave

import (
	"io"

	"github.com/klauspost/compress/zlib"

	saveerrors "github.com/dfarchive/dfsave/dfsave/errors"
	"github.com/dfarchive/dfsave/dfsave/logger"
)

// Decompress converts a save stream from the chunked zlib representation to
// the raw representation. The input must begin with a valid header; the
// output receives the same version with the raw tag, followed by the flat
// body. An input that is already raw is copied through unchanged after the
// header.
func Decompress(r io.Reader, w io.Writer) error {
	hdr, err := ReadHeader(r)
	if err != nil {
		return err
	}
	if err := WriteHeader(w, Header{Version: hdr.Version, Compression: CompressionNone}); err != nil {
		return err
	}

	if hdr.Compression == CompressionNone {
		logger.Debug("input already raw, copying body verbatim")
		if _, err := io.Copy(w, r); err != nil {
			return saveerrors.FromIO(err)
		}
		return nil
	}

	chunks := 0
	for {
		length, ok, err := ReadU32OrEOF(r)
		if err != nil {
			return err
		}
		if !ok {
			// End of the chunk sequence. There is no trailer or chunk
			// count; a clean EOF at a chunk boundary is the terminator.
			break
		}
		if _, err := decompressChunk(w, r, length); err != nil {
			return err
		}
		chunks++
	}

	logger.Debug("decompressed %d chunks", chunks)
	return nil
}

// decompressChunk inflates one chunk of exactly length compressed bytes
// from r into w and returns the number of flat bytes produced. The zlib
// stream reads through a length-bounded view so it can never consume past
// its own chunk; leftover bytes inside the view are drained afterwards so
// the caller is positioned at the next length field.
func decompressChunk(w io.Writer, r io.Reader, length uint32) (int64, error) {
	bounded := &io.LimitedReader{R: r, N: int64(length)}

	zr, err := zlib.NewReader(bounded)
	if err != nil {
		return 0, saveerrors.FromIO(err)
	}
	defer zr.Close()

	n, err := io.Copy(w, zr)
	if err != nil {
		return n, saveerrors.FromIO(err)
	}
	if _, err := io.Copy(io.Discard, bounded); err != nil {
		return n, saveerrors.FromIO(err)
	}
	if bounded.N > 0 {
		// The length field claimed more bytes than the input holds.
		return n, saveerrors.ErrUnexpectedEOF
	}
	return n, nil
}
