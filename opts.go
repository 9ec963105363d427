package jstream

import (
	"fmt"

	"github.com/signadot/jstream/parse"
)

const (
	// DefaultBufferLength is the refill chunk size unless overridden
	// with WithBufferLength. It trades refill frequency against
	// per-cursor memory.
	DefaultBufferLength = 16384

	// minBufferLength keeps the one-shot encoding-marker scan inside
	// the first chunk.
	minBufferLength = 4
)

type options struct {
	bufferLength int
	parseOpts    []parse.Opt
}

type Option func(*options)

func WithBufferLength(n int) Option {
	return func(o *options) { o.bufferLength = n }
}

func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.parseOpts = append(o.parseOpts, parse.WithMaxDepth(n))
	}
}

// WithDiagnosticHandler routes recoverable format diagnostics (such as
// comments in the input) through h; returning false escalates the
// diagnostic to a syntax error.
func WithDiagnosticHandler(h parse.DiagnosticHandler) Option {
	return func(o *options) {
		o.parseOpts = append(o.parseOpts, parse.WithDiagnosticHandler(h))
	}
}

func newOptions(opts []Option) (*options, error) {
	o := &options{bufferLength: DefaultBufferLength}
	for _, f := range opts {
		f(o)
	}
	if o.bufferLength < minBufferLength {
		return nil, fmt.Errorf("buffer length %d below minimum %d", o.bufferLength, minBufferLength)
	}
	return o, nil
}
