package parse

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax          = errors.New("invalid json")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrTrailingContent = errors.New("trailing content after value")

	ErrComment     = fmt.Errorf("%w: comment", ErrSyntax)
	ErrBadEscape   = fmt.Errorf("%w: bad escape", ErrSyntax)
	ErrBadUnicode  = fmt.Errorf("%w: bad unicode escape", ErrSyntax)
	ErrControlChar = fmt.Errorf("%w: control character in string", ErrSyntax)
	ErrBadUTF8     = fmt.Errorf("%w: bad utf8", ErrSyntax)
	ErrNumber      = fmt.Errorf("%w: malformed number", ErrSyntax)
	ErrLiteral     = fmt.Errorf("%w: bad literal", ErrSyntax)
	ErrDepth       = fmt.Errorf("%w: max depth exceeded", ErrSyntax)
)

// Error carries an error kind plus the 1-based position it was
// detected at.
type Error struct {
	Err    error
	Line   int
	Column int
}

func NewError(err error, line, column int) *Error {
	return &Error{Err: err, Line: line, Column: column}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Error() string {
	return fmt.Sprintf("%v at line %d, column %d", e.Err, e.Line, e.Column)
}
