package event

// Context exposes the producer's diagnostic position alongside a
// delivered event. Depth and Path describe the container nesting at the
// point of delivery, in kinded path form (e.g. "", "key", "key[0]",
// "a.b").
type Context interface {
	Line() int
	Column() int
	Depth() int
	Path() string
}

// Visitor receives document-ordered events. Accept returns false to
// request that the producer stop delivering further events; a non-nil
// error aborts delivery and is returned to the caller unchanged.
type Visitor interface {
	Accept(ev *Event, ctx Context) (bool, error)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(ev *Event, ctx Context) (bool, error)

func (f VisitorFunc) Accept(ev *Event, ctx Context) (bool, error) {
	return f(ev, ctx)
}

// Recorder is a Visitor that collects every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Accept(ev *Event, _ Context) (bool, error) {
	r.Events = append(r.Events, *ev)
	return true, nil
}

// Strings returns the compact string form of each recorded event.
func (r *Recorder) Strings() []string {
	out := make([]string, 0, len(r.Events))
	for i := range r.Events {
		out = append(out, r.Events[i].String())
	}
	return out
}
