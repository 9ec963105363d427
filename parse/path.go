package parse

import (
	"strconv"
	"strings"
)

// frame records one level of container nesting. Object frames carry the
// member key currently being parsed; array frames carry the index of
// the element under construction.
type frame struct {
	object bool
	key    string
	keySet bool
	index  int
}

func (p *Parser) push(f frame) error {
	if len(p.stack) >= p.opts.maxDepth {
		return p.errAt(ErrDepth)
	}
	p.stack = append(p.stack, f)
	return nil
}

func (p *Parser) pop() {
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// Depth returns the current container nesting depth.
func (p *Parser) Depth() int { return len(p.stack) }

// Path returns the kinded path of the value under construction, e.g.
// "", "key", "key[0]", "a.b". Keys containing path metacharacters are
// quoted.
func (p *Parser) Path() string {
	var b strings.Builder
	for i := range p.stack {
		f := &p.stack[i]
		if f.object {
			if !f.keySet {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			if pathQuoteField(f.key) {
				b.WriteString(strconv.Quote(f.key))
			} else {
				b.WriteString(f.key)
			}
		} else {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(f.index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func pathQuoteField(key string) bool {
	if key == "" {
		return true
	}
	return strings.ContainsAny(key, ".[]{}\" \t\n")
}
