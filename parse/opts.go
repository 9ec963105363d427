package parse

// Diagnostic describes a recoverable deviation from strict JSON found
// while tokenizing, such as a comment.
type Diagnostic struct {
	Message string
	Line    int
	Column  int
}

// DiagnosticHandler decides whether tokenizing continues after a
// recoverable diagnostic. Returning false escalates the diagnostic to
// a syntax error.
type DiagnosticHandler func(d Diagnostic) bool

type parseOpts struct {
	maxDepth int
	onDiag   DiagnosticHandler
}

type Opt func(*parseOpts)

// DefaultMaxDepth bounds container nesting unless overridden with
// WithMaxDepth.
const DefaultMaxDepth = 1024

func WithMaxDepth(n int) Opt {
	return func(o *parseOpts) { o.maxDepth = n }
}

func WithDiagnosticHandler(h DiagnosticHandler) Opt {
	return func(o *parseOpts) { o.onDiag = h }
}
