package jstream

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/jstream/event"
)

// Predicate decides whether a filtered view exposes an event.
type Predicate func(ev *event.Event, ctx event.Context) bool

// Filter is a derived view over a base cursor that hides events the
// predicate rejects. It holds only a reference to the base cursor and
// owns no buffer of its own; the base cursor must outlive it and must
// not be advanced independently while the view is in use.
type Filter struct {
	base *Cursor
	pred Predicate
}

// Filter derives a filtered view positioned on the first matching
// event.
func (c *Cursor) Filter(pred Predicate) (*Filter, error) {
	f := &Filter{base: c, pred: pred}
	if err := f.sync(); err != nil {
		return nil, err
	}
	return f, nil
}

// sync advances the base cursor until its current event matches or no
// events remain.
func (f *Filter) sync() error {
	for !f.base.Done() && !f.pred(f.base.Current(), f.base) {
		if err := f.base.Next(); err != nil {
			return err
		}
	}
	return nil
}

// Next advances to the next matching event.
func (f *Filter) Next() error {
	if f.base.Done() {
		return nil
	}
	if err := f.base.Next(); err != nil {
		return err
	}
	return f.sync()
}

// Current returns the most recent matching event.
func (f *Filter) Current() *event.Event { return f.base.Current() }

// Done reports whether no further matching events remain.
func (f *Filter) Done() bool { return f.base.Done() }

func (f *Filter) Line() int    { return f.base.Line() }
func (f *Filter) Column() int  { return f.base.Column() }
func (f *Filter) Depth() int   { return f.base.Depth() }
func (f *Filter) Path() string { return f.base.Path() }

// exprEnv must be an alias: the expr VM accepts only a plain
// map[string]any environment at run time.
type exprEnv = map[string]any

// FilterExpr derives a filtered view whose predicate is compiled from
// an expression over the variables kind, value, line, column, depth
// and path, e.g.
//
//	f, err := c.FilterExpr(`kind == "key" && depth > 1`)
func (c *Cursor) FilterExpr(src string) (*Filter, error) {
	prg, err := expr.Compile(src, expr.Env(exprEnv{}), expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return c.Filter(exprPredicate(prg))
}

func exprPredicate(prg *vm.Program) Predicate {
	return func(ev *event.Event, ctx event.Context) bool {
		out, err := expr.Run(prg, exprEnv{
			"kind":   ev.Kind.String(),
			"value":  ev.Value(),
			"line":   ev.Line,
			"column": ev.Column,
			"depth":  ctx.Depth(),
			"path":   ctx.Path(),
		})
		if err != nil {
			return false
		}
		b, _ := out.(bool)
		return b
	}
}
