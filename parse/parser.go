package parse

import (
	"github.com/signadot/jstream/event"
)

type state uint8

const (
	stRootValue       state = iota // before the root value
	stObjectKeyOrEnd               // after '{'
	stObjectKey                    // after ',' in an object
	stObjectColon                  // after a key
	stObjectValue                  // after ':'
	stObjectNext                   // after a member value
	stArrayValueOrEnd              // after '['
	stArrayValue                   // after ',' in an array
	stArrayNext                    // after an element
	stInString
	stInNumber
	stInLiteral
	stSlash
	stLineComment
	stBlockComment
	stBlockCommentStar
	stDocEnd // root value complete, end-of-document pending
	stDone
)

// Parser is an incremental JSON tokenizer. It consumes input handed to
// it chunk by chunk via Update and emits events to the visitor passed
// to ParseSome, pausing after each event boundary. A Parser is bound to
// a single goroutine; none of its methods are reentrant.
type Parser struct {
	input []byte
	pos   int

	line   int // current position, 1-based
	column int
	mkLine int // position of the token being lexed
	mkCol  int

	st    state
	retSt state // state to restore after a comment
	stack []frame

	scratch  []byte // partial token: decoded string bytes, raw number/literal
	strIsKey bool
	esc      bool
	uniLeft  int
	uniVal   rune
	hiSur    rune

	stopped bool
	done    bool

	opts parseOpts
}

func NewParser(opts ...Opt) *Parser {
	p := &Parser{
		line:   1,
		column: 1,
		opts:   parseOpts{maxDepth: DefaultMaxDepth},
	}
	for _, o := range opts {
		o(&p.opts)
	}
	return p
}

// Update replaces the parser's current input chunk. The previous chunk
// must have been fully consumed. The parser never reads past the chunk.
func (p *Parser) Update(chunk []byte) {
	p.input = chunk
	p.pos = 0
}

// SourceExhausted reports whether the current chunk is fully consumed.
func (p *Parser) SourceExhausted() bool { return p.pos >= len(p.input) }

// Restart clears the stop condition, beginning the search for the next
// event boundary.
func (p *Parser) Restart() { p.stopped = false }

// Stopped reports whether the parser paused at an event boundary during
// the current ParseSome call sequence.
func (p *Parser) Stopped() bool { return p.stopped }

// Done reports whether no further events remain.
func (p *Parser) Done() bool { return p.done }

func (p *Parser) Line() int   { return p.line }
func (p *Parser) Column() int { return p.column }

// ParseSome consumes as much buffered input as possible, delivering
// events to v. It returns after emitting one event, on chunk
// exhaustion, or on error. Calling it with exhausted input signals end
// of input: tokens that may legally end at EOF are finalized, anything
// else is reported as ErrUnexpectedEOF.
func (p *Parser) ParseSome(v event.Visitor) error {
	if p.pos >= len(p.input) {
		return p.finishInput(v)
	}
	for p.pos < len(p.input) && !p.stopped && !p.done {
		c := p.input[p.pos]
		var err error
		switch p.st {
		case stRootValue, stObjectValue, stArrayValue, stArrayValueOrEnd:
			err = p.stepValue(v, c)
		case stObjectKeyOrEnd, stObjectKey:
			err = p.stepKey(v, c)
		case stObjectColon:
			err = p.stepColon(c)
		case stObjectNext:
			err = p.stepObjectNext(v, c)
		case stArrayNext:
			err = p.stepArrayNext(v, c)
		case stInString:
			err = p.stepString(v)
		case stInNumber:
			err = p.stepNumber(v)
		case stInLiteral:
			err = p.stepLiteral(v)
		case stSlash, stLineComment, stBlockComment, stBlockCommentStar:
			err = p.stepComment(c)
		case stDocEnd:
			err = p.endDocument(v)
		case stDone:
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// finishInput handles ParseSome with no buffered input, which by the
// cursor's refill discipline means the source is exhausted.
func (p *Parser) finishInput(v event.Visitor) error {
	switch p.st {
	case stDone:
		return nil
	case stDocEnd:
		return p.endDocument(v)
	case stInNumber:
		// numbers may be terminated by end of input
		return p.endNumber(v)
	case stInLiteral:
		switch string(p.scratch) {
		case "true", "false", "null":
			return p.endLiteral(v)
		}
		return p.errAt(ErrUnexpectedEOF)
	case stLineComment:
		p.st = p.retSt
		return p.finishInput(v)
	default:
		return p.errAt(ErrUnexpectedEOF)
	}
}

// endDocument emits the end-of-document event. Content after it, if
// any, is the business of CheckDone.
func (p *Parser) endDocument(v event.Visitor) error {
	p.mark()
	ev := event.Structural(event.EndOfDocument)
	if err := p.emit(v, ev); err != nil {
		return err
	}
	p.st = stDone
	p.done = true
	return nil
}

// CheckDone validates that nothing but whitespace remains in the
// buffered input. With eof set it additionally requires the document to
// have completed, so truncated input surfaces as ErrUnexpectedEOF.
func (p *Parser) CheckDone(eof bool) error {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if !isWS(c) {
			return p.errAt(ErrTrailingContent)
		}
		p.advance(c)
	}
	if eof && !p.done && p.st != stDocEnd {
		return p.errAt(ErrUnexpectedEOF)
	}
	return nil
}

func (p *Parser) stepValue(v event.Visitor, c byte) error {
	switch {
	case isWS(c):
		p.advance(c)
	case c == '{':
		p.mark()
		p.advance(c)
		if err := p.emit(v, event.Structural(event.BeginObject)); err != nil {
			return err
		}
		if err := p.push(frame{object: true}); err != nil {
			return err
		}
		p.st = stObjectKeyOrEnd
	case c == '[':
		p.mark()
		p.advance(c)
		if err := p.emit(v, event.Structural(event.BeginArray)); err != nil {
			return err
		}
		if err := p.push(frame{}); err != nil {
			return err
		}
		p.st = stArrayValueOrEnd
	case c == ']' && p.st == stArrayValueOrEnd:
		return p.endContainer(v, c)
	case c == '"':
		p.mark()
		p.advance(c)
		p.beginString(false)
	case c == '-' || (c >= '0' && c <= '9'):
		p.mark()
		p.scratch = p.scratch[:0]
		p.st = stInNumber
	case c == 't' || c == 'f' || c == 'n':
		p.mark()
		p.scratch = p.scratch[:0]
		p.st = stInLiteral
	case c == '/':
		return p.beginComment()
	default:
		return p.unexpected(c)
	}
	return nil
}

func (p *Parser) stepKey(v event.Visitor, c byte) error {
	switch {
	case isWS(c):
		p.advance(c)
	case c == '"':
		p.mark()
		p.advance(c)
		p.beginString(true)
	case c == '}' && p.st == stObjectKeyOrEnd:
		return p.endContainer(v, c)
	case c == '/':
		return p.beginComment()
	default:
		return p.unexpected(c)
	}
	return nil
}

func (p *Parser) stepColon(c byte) error {
	switch {
	case isWS(c):
		p.advance(c)
	case c == ':':
		p.advance(c)
		p.st = stObjectValue
	case c == '/':
		return p.beginComment()
	default:
		return p.unexpected(c)
	}
	return nil
}

func (p *Parser) stepObjectNext(v event.Visitor, c byte) error {
	switch {
	case isWS(c):
		p.advance(c)
	case c == ',':
		p.advance(c)
		p.st = stObjectKey
	case c == '}':
		return p.endContainer(v, c)
	case c == '/':
		return p.beginComment()
	default:
		return p.unexpected(c)
	}
	return nil
}

func (p *Parser) stepArrayNext(v event.Visitor, c byte) error {
	switch {
	case isWS(c):
		p.advance(c)
	case c == ',':
		p.advance(c)
		p.st = stArrayValue
	case c == ']':
		return p.endContainer(v, c)
	case c == '/':
		return p.beginComment()
	default:
		return p.unexpected(c)
	}
	return nil
}

func (p *Parser) endContainer(v event.Visitor, c byte) error {
	p.mark()
	p.advance(c)
	kind := event.EndObject
	if c == ']' {
		kind = event.EndArray
	}
	p.pop()
	if err := p.emit(v, event.Structural(kind)); err != nil {
		return err
	}
	p.afterValue()
	return nil
}

// afterValue transitions out of a completed value according to the
// enclosing container.
func (p *Parser) afterValue() {
	if len(p.stack) == 0 {
		p.st = stDocEnd
		return
	}
	top := &p.stack[len(p.stack)-1]
	if top.object {
		p.st = stObjectNext
	} else {
		top.index++
		p.st = stArrayNext
	}
}

func (p *Parser) beginComment() error {
	if p.opts.onDiag != nil {
		ok := p.opts.onDiag(Diagnostic{
			Message: "comment in json input",
			Line:    p.line,
			Column:  p.column,
		})
		if !ok {
			return p.errAt(ErrComment)
		}
	}
	p.retSt = p.st
	p.st = stSlash
	p.advance('/')
	return nil
}

func (p *Parser) stepComment(c byte) error {
	switch p.st {
	case stSlash:
		switch c {
		case '/':
			p.st = stLineComment
		case '*':
			p.st = stBlockComment
		default:
			return p.errAt(ErrComment)
		}
		p.advance(c)
	case stLineComment:
		if c == '\n' {
			p.st = p.retSt
		}
		p.advance(c)
	case stBlockComment:
		if c == '*' {
			p.st = stBlockCommentStar
		}
		p.advance(c)
	case stBlockCommentStar:
		switch c {
		case '/':
			p.st = p.retSt
		case '*':
			// stay
		default:
			p.st = stBlockComment
		}
		p.advance(c)
	}
	return nil
}

// emit delivers an event stamped with the marked token position and
// pauses the parser at the resulting event boundary.
func (p *Parser) emit(v event.Visitor, ev event.Event) error {
	ev.Line = p.mkLine
	ev.Column = p.mkCol
	p.stopped = true
	_, err := v.Accept(&ev, p)
	return err
}

func (p *Parser) mark() {
	p.mkLine = p.line
	p.mkCol = p.column
}

func (p *Parser) advance(c byte) {
	p.pos++
	if c == '\n' {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
}

func (p *Parser) errAt(err error) error {
	return NewError(err, p.line, p.column)
}

func (p *Parser) unexpected(c byte) error {
	return p.errAt(unexpectedByte(c))
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
