package parse

import (
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/signadot/jstream/event"
)

func unexpectedByte(c byte) error {
	return fmt.Errorf("%w: unexpected %q", ErrSyntax, c)
}

func (p *Parser) beginString(isKey bool) {
	p.scratch = p.scratch[:0]
	p.strIsKey = isKey
	p.esc = false
	p.uniLeft = 0
	p.hiSur = 0
	p.st = stInString
}

// stepString consumes string content until the closing quote or chunk
// exhaustion. Escape and \uXXXX state survives chunk boundaries.
func (p *Parser) stepString(v event.Visitor) error {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if p.uniLeft > 0 {
			d := hexVal(c)
			if d < 0 {
				return p.errAt(ErrBadUnicode)
			}
			p.uniVal = p.uniVal<<4 | rune(d)
			p.uniLeft--
			p.advance(c)
			if p.uniLeft == 0 {
				if err := p.resolveUnicode(); err != nil {
					return err
				}
			}
			continue
		}
		if p.esc {
			p.esc = false
			if p.hiSur != 0 && c != 'u' {
				return p.errAt(ErrBadUnicode)
			}
			switch c {
			case '"', '\\', '/':
				p.scratch = append(p.scratch, c)
			case 'b':
				p.scratch = append(p.scratch, '\b')
			case 'f':
				p.scratch = append(p.scratch, '\f')
			case 'n':
				p.scratch = append(p.scratch, '\n')
			case 'r':
				p.scratch = append(p.scratch, '\r')
			case 't':
				p.scratch = append(p.scratch, '\t')
			case 'u':
				p.uniLeft = 4
				p.uniVal = 0
			default:
				return p.errAt(ErrBadEscape)
			}
			p.advance(c)
			continue
		}
		switch {
		case c == '"':
			if p.hiSur != 0 {
				return p.errAt(ErrBadUnicode)
			}
			p.advance(c)
			return p.endString(v)
		case c == '\\':
			p.esc = true
			p.advance(c)
		case c < 0x20:
			return p.errAt(ErrControlChar)
		default:
			if p.hiSur != 0 {
				return p.errAt(ErrBadUnicode)
			}
			p.scratch = append(p.scratch, c)
			p.advance(c)
		}
	}
	return nil
}

// resolveUnicode folds a completed \uXXXX escape into the scratch
// buffer, pairing UTF-16 surrogates.
func (p *Parser) resolveUnicode() error {
	r := p.uniVal
	switch {
	case p.hiSur != 0:
		if !utf16.IsSurrogate(r) || r < 0xDC00 {
			return p.errAt(ErrBadUnicode)
		}
		p.scratch = utf8.AppendRune(p.scratch, utf16.DecodeRune(p.hiSur, r))
		p.hiSur = 0
	case r >= 0xD800 && r < 0xDC00:
		p.hiSur = r
	case r >= 0xDC00 && r < 0xE000:
		// low surrogate without a high one
		return p.errAt(ErrBadUnicode)
	default:
		p.scratch = utf8.AppendRune(p.scratch, r)
	}
	return nil
}

func (p *Parser) endString(v event.Visitor) error {
	if !utf8.Valid(p.scratch) {
		return p.errAt(ErrBadUTF8)
	}
	s := string(p.scratch)
	if p.strIsKey {
		top := &p.stack[len(p.stack)-1]
		top.key = s
		top.keySet = true
		if err := p.emit(v, event.MakeKey(s)); err != nil {
			return err
		}
		p.st = stObjectColon
		return nil
	}
	if err := p.emit(v, event.MakeString(s)); err != nil {
		return err
	}
	p.afterValue()
	return nil
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func (p *Parser) stepNumber(v event.Visitor) error {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if !isNumberByte(c) {
			return p.endNumber(v)
		}
		p.scratch = append(p.scratch, c)
		p.advance(c)
	}
	return nil
}

func (p *Parser) endNumber(v event.Visitor) error {
	if !validNumber(p.scratch) {
		return p.errAt(ErrNumber)
	}
	text := string(p.scratch)
	var ev event.Event
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		ev = event.MakeInt64(i)
	} else if u, uerr := strconv.ParseUint(text, 10, 64); uerr == nil {
		ev = event.MakeUint64(u)
	} else if f, ferr := strconv.ParseFloat(text, 64); ferr == nil {
		ev = event.MakeFloat64(f)
	} else {
		return p.errAt(ErrNumber)
	}
	if err := p.emit(v, ev); err != nil {
		return err
	}
	p.afterValue()
	return nil
}

// validNumber checks the JSON number grammar: -?int frac? exp? with no
// leading zeros.
func validNumber(b []byte) bool {
	i := 0
	if i < len(b) && b[i] == '-' {
		i++
	}
	switch {
	case i < len(b) && b[i] == '0':
		i++
	case i < len(b) && b[i] >= '1' && b[i] <= '9':
		for i < len(b) && b[i] >= '0' && b[i] <= '9' {
			i++
		}
	default:
		return false
	}
	if i < len(b) && b[i] == '.' {
		i++
		j := i
		for i < len(b) && b[i] >= '0' && b[i] <= '9' {
			i++
		}
		if i == j {
			return false
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		j := i
		for i < len(b) && b[i] >= '0' && b[i] <= '9' {
			i++
		}
		if i == j {
			return false
		}
	}
	return i == len(b)
}

func (p *Parser) stepLiteral(v event.Visitor) error {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c < 'a' || c > 'z' {
			return p.endLiteral(v)
		}
		if len(p.scratch) >= 5 {
			return p.errAt(ErrLiteral)
		}
		p.scratch = append(p.scratch, c)
		p.advance(c)
	}
	return nil
}

func (p *Parser) endLiteral(v event.Visitor) error {
	var ev event.Event
	switch string(p.scratch) {
	case "true":
		ev = event.MakeBool(true)
	case "false":
		ev = event.MakeBool(false)
	case "null":
		ev = event.MakeNull()
	default:
		return p.errAt(ErrLiteral)
	}
	if err := p.emit(v, ev); err != nil {
		return err
	}
	p.afterValue()
	return nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
