package source

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// stutterReader returns data in tiny pieces and interleaves transient
// (0, nil) reads.
type stutterReader struct {
	data []byte
	off  int
	n    int
}

func (r *stutterReader) Read(p []byte) (int, error) {
	r.n++
	if r.n%3 == 0 {
		return 0, nil
	}
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), 2)], r.data[r.off:])
	r.off += n
	return n, nil
}

func TestStreamRead(t *testing.T) {
	data := []byte(`{"a": [1, 2, 3]}`)
	s := NewStream(&stutterReader{data: data})
	var got []byte
	buf := make([]byte, 8)
	for {
		n := s.Read(buf)
		if n == 0 {
			break
		}
		got = append(got, buf[:n]...)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %q, want %q", got, data)
	}
	if !s.EOF() {
		t.Error("EOF not reported")
	}
	if s.Err() != nil {
		t.Errorf("unexpected error: %v", s.Err())
	}
	if s.Sum64() != xxhash.Sum64(data) {
		t.Error("digest mismatch")
	}
}

type faultReader struct {
	data []byte
	sent bool
}

var errBackend = errors.New("backend fault")

func (r *faultReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, r.data), nil
	}
	return 0, errBackend
}

func TestStreamFault(t *testing.T) {
	s := NewStream(&faultReader{data: []byte("{")})
	buf := make([]byte, 4)
	if n := s.Read(buf); n != 1 {
		t.Fatalf("got %d bytes, want 1", n)
	}
	if n := s.Read(buf); n != 0 {
		t.Fatalf("got %d bytes after fault, want 0", n)
	}
	if !errors.Is(s.Err(), errBackend) {
		t.Errorf("got %v, want backend fault", s.Err())
	}
	if !s.EOF() {
		t.Error("EOF not reported after fault")
	}
}

func TestBytesTake(t *testing.T) {
	data := []byte("[1,2]")
	b := NewBytes(data)
	if b.EOF() {
		t.Fatal("EOF before Take")
	}
	if got := b.Take(); !bytes.Equal(got, data) {
		t.Fatalf("got %q, want %q", got, data)
	}
	if !b.EOF() {
		t.Error("EOF not reported after Take")
	}
	if got := b.Take(); len(got) != 0 {
		t.Errorf("second Take returned %q", got)
	}
	if b.Err() != nil {
		t.Errorf("unexpected error: %v", b.Err())
	}
}

func TestBytesRead(t *testing.T) {
	b := NewBytes([]byte("abcdef"))
	buf := make([]byte, 4)
	if n := b.Read(buf); n != 4 || string(buf[:n]) != "abcd" {
		t.Fatalf("first read: %d %q", n, buf[:n])
	}
	if n := b.Read(buf); n != 2 || string(buf[:n]) != "ef" {
		t.Fatalf("second read: %d %q", n, buf[:n])
	}
	if n := b.Read(buf); n != 0 {
		t.Fatalf("read after exhaustion: %d", n)
	}
}

func TestSniffReader(t *testing.T) {
	payload := []byte(`{"compressed": true}`)

	t.Run("plain", func(t *testing.T) {
		r, err := SniffReader(bytes.NewReader(payload))
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("got %q, want %q", got, payload)
		}
	})

	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		r, err := SniffReader(&buf)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("got %q, want %q", got, payload)
		}
	})

	t.Run("zstd", func(t *testing.T) {
		var buf bytes.Buffer
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := zw.Write(payload); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		r, err := SniffReader(&buf)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("got %q, want %q", got, payload)
		}
	})

	t.Run("short input", func(t *testing.T) {
		r, err := SniffReader(bytes.NewReader([]byte("{}")))
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "{}" {
			t.Errorf("got %q, want {}", got)
		}
	})
}
