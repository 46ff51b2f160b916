package dfsave

import (
	"bytes"
	"errors"
	"testing"

	saveerrors "github.com/dfarchive/dfsave/dfsave/errors"
)

func TestReadU32(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"small value", []byte{42, 0, 0, 0}, 42},
		{"all bytes significant", []byte{1, 2, 3, 4}, 4<<24 | 3<<16 | 2<<8 | 1},
		{"chunk size", []byte{0x20, 0x4e, 0, 0}, 20000},
		{"max", []byte{0xff, 0xff, 0xff, 0xff}, 0xffffffff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadU32(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("ReadU32 failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadU32 = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteU32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 42, 20000, 11111111, 0xdeadbeef, 0xffffffff}

	for _, v := range values {
		var buf bytes.Buffer
		if err := WriteU32(&buf, v); err != nil {
			t.Fatalf("WriteU32(%d) failed: %v", v, err)
		}
		if buf.Len() != 4 {
			t.Fatalf("WriteU32(%d) wrote %d bytes, want 4", v, buf.Len())
		}
		got, err := ReadU32(&buf)
		if err != nil {
			t.Fatalf("ReadU32 after WriteU32(%d) failed: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip = %d, want %d", got, v)
		}
	}
}

func TestReadU32Truncated(t *testing.T) {
	for n := 0; n < 4; n++ {
		_, err := ReadU32(bytes.NewReader(make([]byte, n)))
		if saveerrors.GetErrorCode(err) != "UNEXPECTED_EOF" {
			t.Errorf("%d available bytes: got %v, want UNEXPECTED_EOF", n, err)
		}
	}
}

func TestReadU32OrEOF(t *testing.T) {
	t.Run("clean end of stream", func(t *testing.T) {
		_, ok, err := ReadU32OrEOF(bytes.NewReader(nil))
		if err != nil {
			t.Fatalf("ReadU32OrEOF on empty stream failed: %v", err)
		}
		if ok {
			t.Errorf("ok = true on empty stream, want false")
		}
	})

	t.Run("full field", func(t *testing.T) {
		got, ok, err := ReadU32OrEOF(bytes.NewReader([]byte{0x20, 0x4e, 0, 0}))
		if err != nil {
			t.Fatalf("ReadU32OrEOF failed: %v", err)
		}
		if !ok {
			t.Fatalf("ok = false, want true")
		}
		if got != 20000 {
			t.Errorf("ReadU32OrEOF = %d, want 20000", got)
		}
	})

	t.Run("partial field is a hard error", func(t *testing.T) {
		for n := 1; n < 4; n++ {
			_, ok, err := ReadU32OrEOF(bytes.NewReader(make([]byte, n)))
			if ok {
				t.Errorf("%d available bytes: ok = true, want false", n)
			}
			if saveerrors.GetErrorCode(err) != "UNEXPECTED_EOF" {
				t.Errorf("%d available bytes: got %v, want UNEXPECTED_EOF", n, err)
			}
		}
	})
}

// failingReader returns a non-EOF error on every read.
type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}

func TestReadU32IOError(t *testing.T) {
	cause := errors.New("device gone")
	_, err := ReadU32(&failingReader{err: cause})
	if saveerrors.GetErrorCode(err) != "IO_FAILURE" {
		t.Fatalf("got %v, want IO_FAILURE", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error does not wrap the underlying cause")
	}
}
