package pretty_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/scrapekit/internal/ui/pretty"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))

	// A plain buffer is not a TTY, so auto disables color.
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
	assert.False(t, pretty.IsColorEnabled("", &buf))
}

func TestNewStyles_PlainWhenDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "x", styles.Tag.Render("x"))
	assert.Equal(t, "y", styles.Warning.Render("y"))
}
