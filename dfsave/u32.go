package dfsave

import (
	"encoding/binary"
	"io"

	saveerrors "github.com/dfarchive/dfsave/dfsave/errors"
)

// ReadU32 reads exactly 4 bytes from r and decodes them as a little-endian
// unsigned 32-bit integer. A stream that ends before all 4 bytes arrive
// fails with ErrUnexpectedEOF; any other read failure becomes ErrIO.
func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, saveerrors.FromIO(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadU32OrEOF reads a little-endian u32 like ReadU32, but a stream that
// ends cleanly before the first byte is not an error: ok is false and the
// caller treats it as the end of a sequence. A partial field (1-3 bytes
// before EOF) is still ErrUnexpectedEOF.
func ReadU32OrEOF(r io.Reader) (value uint32, ok bool, err error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if n == 0 && err == io.EOF {
			return 0, false, nil
		}
		return 0, false, saveerrors.FromIO(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), true, nil
}

// WriteU32 encodes value as a little-endian u32 and writes it to w.
func WriteU32(w io.Writer, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	if _, err := w.Write(buf[:]); err != nil {
		return saveerrors.ErrIO.WithCause(err)
	}
	return nil
}
