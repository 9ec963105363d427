package jstream

import (
	"fmt"
	"io"

	"github.com/signadot/jstream/debug"
	"github.com/signadot/jstream/event"
	"github.com/signadot/jstream/parse"
	"github.com/signadot/jstream/source"
)

// Cursor binds a byte source to an incremental tokenizer and exposes
// the parsed structural events, either one at a time (Current/Next) or
// forwarded in bulk to a visitor (ReadTo).
//
// A Cursor owns its source and buffer exclusively; it is bound to one
// source for its whole lifetime and must not be driven from two
// goroutines at once. Distinct cursors over distinct sources are
// independent.
type Cursor struct {
	src    source.Source
	parser *parse.Parser
	cache  cache
	buf    []byte
	bufLen int
	eof    bool
	begin  bool
	err    error
}

// cache holds the most recently produced event for pull-style access.
type cache struct {
	ev  event.Event
	set bool
}

func (c *cache) Accept(ev *event.Event, _ event.Context) (bool, error) {
	c.ev = *ev
	c.set = true
	return true, nil
}

// New creates a Cursor over an incremental byte stream and primes it
// with the first event. The stream is read chunk by chunk and never
// buffered whole.
func New(r io.Reader, opts ...Option) (*Cursor, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	c := &Cursor{
		src:    source.NewStream(r),
		parser: parse.NewParser(o.parseOpts...),
		bufLen: o.bufferLength,
		begin:  true,
	}
	return c.prime()
}

// NewBytes creates a Cursor over pre-materialized input. The slice is
// handed to the tokenizer as a single read-only view; no buffering
// ever occurs and the buffer length option is ignored.
func NewBytes(data []byte, opts ...Option) (*Cursor, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	src := source.NewBytes(data)
	c := &Cursor{
		src:    src,
		parser: parse.NewParser(o.parseOpts...),
		bufLen: o.bufferLength,
	}
	chunk := src.Take()
	off, err := skipBOM(chunk)
	if err != nil {
		return nil, parse.NewError(err, c.parser.Line(), c.parser.Column())
	}
	c.parser.Update(chunk[off:])
	return c.prime()
}

func (c *Cursor) prime() (*Cursor, error) {
	if !c.parser.Done() {
		if err := c.Next(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Current returns the most recent event. It is stable and
// side-effect-free between calls to Next. The returned event is
// overwritten by the next advance.
func (c *Cursor) Current() *event.Event { return &c.cache.ev }

// Done reports whether no further events remain.
func (c *Cursor) Done() bool { return c.parser.Done() }

// EOF reports whether the source has reached permanent exhaustion.
func (c *Cursor) EOF() bool { return c.eof }

func (c *Cursor) Line() int    { return c.parser.Line() }
func (c *Cursor) Column() int  { return c.parser.Column() }
func (c *Cursor) Depth() int   { return c.parser.Depth() }
func (c *Cursor) Path() string { return c.parser.Path() }

// BufferLength returns the configured refill chunk size.
func (c *Cursor) BufferLength() int { return c.bufLen }

// SetBufferLength reconfigures the refill chunk size. It takes effect
// on the next refill; the fixed-slice variant never buffers and is
// unaffected.
func (c *Cursor) SetBufferLength(n int) error {
	if n < minBufferLength {
		return fmt.Errorf("buffer length %d below minimum %d", n, minBufferLength)
	}
	c.bufLen = n
	return nil
}

// Next advances to the next event. Once Next returns a fatal error the
// cursor makes no further progress and repeats the same error.
func (c *Cursor) Next() error {
	if c.err != nil {
		return c.err
	}
	if err := c.readNext(&c.cache); err != nil {
		c.err = err
		return err
	}
	return nil
}

// ReadTo replays the current event into v and then forwards every
// remaining event directly to v; while draining, the cursor's own
// cache sees nothing, so each event reaches exactly one sink. The
// visitor may return false from Accept to stop the drain early.
//
// Pull-mode Next may be resumed after ReadTo returns and picks up
// exactly where the drain left off, but Current is unspecified until
// that Next succeeds.
func (c *Cursor) ReadTo(v event.Visitor) error {
	if c.err != nil {
		return c.err
	}
	sink := &drainSink{v: v}
	if c.cache.set {
		more, err := v.Accept(&c.cache.ev, c)
		if err != nil {
			return err
		}
		// the cached event now belongs to the visitor; a later drain
		// must not replay it again
		c.cache.set = false
		if !more {
			return nil
		}
	}
	for !c.parser.Done() && !sink.stop {
		if err := c.readNext(sink); err != nil {
			c.err = err
			return err
		}
	}
	return nil
}

// CheckDone confirms no unexpected trailing content remains after the
// consumer believes it is done reading, without advancing past further
// events.
func (c *Cursor) CheckDone() error {
	if c.err != nil {
		return c.err
	}
	if err := c.src.Err(); err != nil {
		return c.fail(parse.NewError(fmt.Errorf("%w: %v", ErrSource, err), c.Line(), c.Column()))
	}
	for !c.eof {
		if c.parser.SourceExhausted() {
			if !c.src.EOF() {
				if err := c.readBuffer(); err != nil {
					return c.fail(err)
				}
			} else {
				c.eof = true
			}
		}
		if !c.eof {
			if err := c.parser.CheckDone(false); err != nil {
				return c.fail(err)
			}
		}
	}
	if err := c.parser.CheckDone(true); err != nil {
		return c.fail(err)
	}
	return nil
}

func (c *Cursor) fail(err error) error {
	c.err = err
	return err
}

// readNext drives the refill/tokenize loop until the tokenizer pauses
// at an event boundary or reports completion. sink receives every
// event produced.
func (c *Cursor) readNext(sink event.Visitor) error {
	if debug.Events() {
		sink = traceSink{sink}
	}
	c.parser.Restart()
	for !c.parser.Stopped() && !c.parser.Done() {
		if c.parser.SourceExhausted() {
			if !c.src.EOF() {
				if err := c.readBuffer(); err != nil {
					return err
				}
				// a refill may yield no parseable bytes, e.g. when the
				// first chunk was entirely an encoding marker
				if c.parser.SourceExhausted() && !c.eof {
					continue
				}
			} else {
				c.eof = true
			}
		}
		if err := c.parser.ParseSome(sink); err != nil {
			return err
		}
	}
	return nil
}

// readBuffer refills the buffer from the source, replacing its
// contents, and hands the chunk to the tokenizer. The first chunk is
// scanned once for a leading encoding marker.
func (c *Cursor) readBuffer() error {
	if cap(c.buf) < c.bufLen {
		c.buf = make([]byte, c.bufLen)
	}
	buf := c.buf[:c.bufLen]
	n := c.src.Read(buf)
	if c.begin {
		// top up so a short read cannot split the marker
		for n > 0 && n < len(bomUTF8) {
			m := c.src.Read(buf[n:])
			if m == 0 {
				break
			}
			n += m
		}
	}
	if err := c.src.Err(); err != nil {
		return parse.NewError(fmt.Errorf("%w: %v", ErrSource, err), c.Line(), c.Column())
	}
	if debug.Refill() {
		debug.Logf("refill %d bytes, eof=%t", n, c.src.EOF())
	}
	if n == 0 {
		c.eof = true
		return nil
	}
	chunk := buf[:n]
	if c.begin {
		off, err := skipBOM(chunk)
		if err != nil {
			return parse.NewError(err, c.Line(), c.Column())
		}
		chunk = chunk[off:]
		c.begin = false
	}
	c.buf = buf
	c.parser.Update(chunk)
	return nil
}

// drainSink forwards to the consumer's visitor and remembers an early
// stop request so the drain loop can honor it across restarts.
type drainSink struct {
	v    event.Visitor
	stop bool
}

func (d *drainSink) Accept(ev *event.Event, ctx event.Context) (bool, error) {
	more, err := d.v.Accept(ev, ctx)
	if !more {
		d.stop = true
	}
	return more, err
}

type traceSink struct {
	inner event.Visitor
}

func (t traceSink) Accept(ev *event.Event, ctx event.Context) (bool, error) {
	debug.Eventf(ev.String(), ev.Line, ev.Column)
	return t.inner.Accept(ev, ctx)
}
