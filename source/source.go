package source

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Source is the byte-producing backend a cursor refills from.
//
// Read fills p with up to len(p) bytes and returns the count; 0 means
// the source is exhausted. EOF reports permanent exhaustion. Err
// reports an unrecoverable backend fault, distinct from clean
// exhaustion.
type Source interface {
	Read(p []byte) int
	EOF() bool
	Err() error
}

// Stream adapts an io.Reader. It must be re-queried per chunk and
// never holds the whole input. Transient (0, nil) reads are retried so
// Read only returns 0 on permanent exhaustion or fault.
type Stream struct {
	r   io.Reader
	eof bool
	err error
	sum *xxhash.Digest
}

func NewStream(r io.Reader) *Stream {
	return &Stream{r: r, sum: xxhash.New()}
}

func (s *Stream) Read(p []byte) int {
	if s.eof || s.err != nil || len(p) == 0 {
		return 0
	}
	for {
		n, err := s.r.Read(p)
		if n > 0 {
			_, _ = s.sum.Write(p[:n])
			switch {
			case err == io.EOF:
				s.eof = true
			case err != nil:
				s.err = err
				s.eof = true
			}
			return n
		}
		switch {
		case err == io.EOF:
			s.eof = true
			return 0
		case err != nil:
			s.err = err
			s.eof = true
			return 0
		}
		// 0, nil is a transient empty read
	}
}

func (s *Stream) EOF() bool  { return s.eof }
func (s *Stream) Err() error { return s.err }

// Sum64 returns the xxhash-64 digest of every byte delivered so far,
// for callers that want a cheap content fingerprint of what was read.
func (s *Stream) Sum64() uint64 { return s.sum.Sum64() }

// Bytes is the fixed-slice variant: the entire input is already
// materialized as a contiguous read-only view and no buffering is ever
// required.
type Bytes struct {
	data []byte
	off  int
}

func NewBytes(b []byte) *Bytes {
	return &Bytes{data: b}
}

// Take returns the remaining view in one piece and exhausts the
// source. The returned slice aliases the input; callers must not
// mutate it.
func (b *Bytes) Take() []byte {
	rest := b.data[b.off:]
	b.off = len(b.data)
	return rest
}

func (b *Bytes) Read(p []byte) int {
	n := copy(p, b.data[b.off:])
	b.off += n
	return n
}

func (b *Bytes) EOF() bool  { return b.off >= len(b.data) }
func (b *Bytes) Err() error { return nil }
