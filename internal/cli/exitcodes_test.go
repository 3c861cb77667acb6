package cli

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/scrapekit/pkg/cssselect"
	"github.com/yaklabco/scrapekit/pkg/htmldom"
	"github.com/yaklabco/scrapekit/pkg/xpathlite"
)

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, ExitSuccess},
		{"no matches", ErrNoMatches, ExitNoMatches},
		{"wrapped no matches", errors.Join(errors.New("context"), ErrNoMatches), ExitNoMatches},
		{"size limit", &htmldom.SizeLimitError{Length: 100, Limit: 10}, ExitInputTooLarge},
		{"selector syntax", &cssselect.SyntaxError{Input: "[x"}, ExitInvalidUsage},
		{"xpath syntax", &xpathlite.SyntaxError{Expr: "//"}, ExitInvalidUsage},
		{"xpath unsupported", &xpathlite.EvalError{Expr: "//a[last()]"}, ExitInvalidUsage},
		{"config failure", &errConfig{err: errors.New("bad yaml")}, ExitConfigError},
		{"io failure", &fs.PathError{Op: "open", Path: "x.html", Err: fs.ErrNotExist}, ExitIOError},
		{"anything else", errors.New("boom"), ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
