package cssselect

import "fmt"

// SyntaxError reports a selector string the parser could not
// understand. It names the offending fragment and its byte position so
// the caller can fix the query.
type SyntaxError struct {
	// Input is the full selector string.
	Input string

	// Pos is the byte offset of the offending fragment.
	Pos int

	// Fragment is the unrecognized or unterminated portion.
	Fragment string

	// Reason describes what was expected.
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid selector %q: %s at position %d (near %q)", e.Input, e.Reason, e.Pos, e.Fragment)
}
