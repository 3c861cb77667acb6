// Package pretty provides Lipgloss-based styled output for query
// results.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for CLI output.
type Styles struct {
	Tag       lipgloss.Style
	AttrName  lipgloss.Style
	AttrValue lipgloss.Style
	Text      lipgloss.Style
	Index     lipgloss.Style
	Summary   lipgloss.Style
	Warning   lipgloss.Style
	Dim       lipgloss.Style
}

// NewStyles creates styles for the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Tag:       plain,
			AttrName:  plain,
			AttrValue: plain,
			Text:      plain,
			Index:     plain,
			Summary:   plain,
			Warning:   plain,
			Dim:       plain,
		}
	}
	return &Styles{
		Tag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		AttrName:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		AttrValue: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Text:      lipgloss.NewStyle(),
		Index:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Summary:   lipgloss.NewStyle().Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// IsColorEnabled determines if color should be enabled based on mode
// and writer. Mode values: "auto" (default), "always", "never". In auto
// mode, color is enabled only if the writer is a TTY and NO_COLOR is
// not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
