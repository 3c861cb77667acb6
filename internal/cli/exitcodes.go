package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/scrapekit/pkg/cssselect"
	"github.com/yaklabco/scrapekit/pkg/htmldom"
	"github.com/yaklabco/scrapekit/pkg/xpathlite"
)

// Exit codes for scrapekit.
const (
	// ExitSuccess indicates at least one match (or successful text output).
	ExitSuccess = 0

	// ExitNoMatches indicates the query ran but matched nothing.
	ExitNoMatches = 1

	// ExitInvalidUsage indicates invalid command-line usage, including
	// malformed selectors and XPath expressions.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInputTooLarge indicates the input exceeded the size limit
	// with truncation disabled.
	ExitInputTooLarge = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrNoMatches signals an empty result; it carries no message worth
// logging, only the exit code.
var ErrNoMatches = errors.New("no matches found")

// errConfig wraps configuration loading failures so they map to
// ExitConfigError.
type errConfig struct{ err error }

func (e *errConfig) Error() string { return e.err.Error() }
func (e *errConfig) Unwrap() error { return e.err }

// ExitCodeForError maps a command error to the process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		sizeErr   *htmldom.SizeLimitError
		cssErr    *cssselect.SyntaxError
		xpSynErr  *xpathlite.SyntaxError
		xpEvalErr *xpathlite.EvalError
		cfgErr    *errConfig
		pathErr   *fs.PathError
	)

	switch {
	case errors.Is(err, ErrNoMatches):
		return ExitNoMatches
	case errors.As(err, &sizeErr):
		return ExitInputTooLarge
	case errors.As(err, &cssErr), errors.As(err, &xpSynErr), errors.As(err, &xpEvalErr):
		return ExitInvalidUsage
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
