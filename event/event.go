package event

import (
	"fmt"
	"strconv"
)

// Kind identifies the structural meaning of an Event.
type Kind int

const (
	None Kind = iota
	BeginObject
	EndObject
	BeginArray
	EndArray
	Key
	String
	Int64
	Uint64
	Float64
	Bool
	Null
	EndOfDocument
)

func (k Kind) String() string {
	return map[Kind]string{
		None:          "none",
		BeginObject:   "begin-object",
		EndObject:     "end-object",
		BeginArray:    "begin-array",
		EndArray:      "end-array",
		Key:           "key",
		String:        "string",
		Int64:         "int64",
		Uint64:        "uint64",
		Float64:       "float64",
		Bool:          "bool",
		Null:          "null",
		EndOfDocument: "end-of-document",
	}[k]
}

// Event is one parsed structural token plus its optional payload.
// The zero value has Kind None. Line and Column are 1-based and refer
// to the first input byte of the token.
type Event struct {
	Kind   Kind
	Line   int
	Column int

	str string
	i   int64
	u   uint64
	f   float64
	b   bool
}

func Structural(k Kind) Event     { return Event{Kind: k} }
func MakeKey(name string) Event   { return Event{Kind: Key, str: name} }
func MakeString(s string) Event   { return Event{Kind: String, str: s} }
func MakeInt64(v int64) Event     { return Event{Kind: Int64, i: v} }
func MakeUint64(v uint64) Event   { return Event{Kind: Uint64, u: v} }
func MakeFloat64(v float64) Event { return Event{Kind: Float64, f: v} }
func MakeBool(v bool) Event       { return Event{Kind: Bool, b: v} }
func MakeNull() Event             { return Event{Kind: Null} }

// Str returns the string payload of a Key or String event.
func (e *Event) Str() string { return e.str }

func (e *Event) Int64() int64     { return e.i }
func (e *Event) Uint64() uint64   { return e.u }
func (e *Event) Float64() float64 { return e.f }
func (e *Event) Bool() bool       { return e.b }

// Value returns the payload as an untyped value: string for Key and
// String, the numeric value for number kinds, bool for Bool, and nil
// for everything else.
func (e *Event) Value() any {
	switch e.Kind {
	case Key, String:
		return e.str
	case Int64:
		return e.i
	case Uint64:
		return e.u
	case Float64:
		return e.f
	case Bool:
		return e.b
	default:
		return nil
	}
}

// String renders the event in a compact form such as "begin-object",
// "key(company)" or "int64(1)", used by traces, test fixtures and
// failure diffs.
func (e *Event) String() string {
	switch e.Kind {
	case Key, String:
		return fmt.Sprintf("%s(%s)", e.Kind, e.str)
	case Int64:
		return fmt.Sprintf("%s(%d)", e.Kind, e.i)
	case Uint64:
		return fmt.Sprintf("%s(%d)", e.Kind, e.u)
	case Float64:
		return fmt.Sprintf("%s(%s)", e.Kind, strconv.FormatFloat(e.f, 'g', -1, 64))
	case Bool:
		return fmt.Sprintf("%s(%t)", e.Kind, e.b)
	default:
		return e.Kind.String()
	}
}
