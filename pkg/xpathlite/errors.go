package xpathlite

import "fmt"

// SyntaxError reports a malformed XPath expression, naming the
// offending fragment and its byte position.
type SyntaxError struct {
	Expr     string
	Pos      int
	Fragment string
	Reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid xpath %q: %s at position %d (near %q)", e.Expr, e.Reason, e.Pos, e.Fragment)
}

// EvalError reports a structurally valid expression using a construct
// this engine does not implement.
type EvalError struct {
	Expr      string
	Construct string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("unsupported xpath construct %s in %q", e.Construct, e.Expr)
}
