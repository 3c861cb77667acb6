package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/scrapekit/pkg/scrape"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 100

// Renderer writes styled query results.
type Renderer struct {
	w      io.Writer
	styles *Styles
	width  int
}

// NewRenderer creates a renderer for w using the given color mode.
func NewRenderer(w io.Writer, colorMode string) *Renderer {
	return &Renderer{
		w:      w,
		styles: NewStyles(IsColorEnabled(colorMode, w)),
		width:  terminalWidth(w),
	}
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 20 {
			return width
		}
	}
	return defaultWidth
}

// RenderRecords writes one line-oriented block per record: the tag and
// attributes first, then a text preview clipped to the terminal width.
func (r *Renderer) RenderRecords(records []scrape.Record) error {
	for i, rec := range records {
		if err := r.renderRecord(i, rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRecord(index int, rec scrape.Record) error {
	var line strings.Builder
	line.WriteString(r.styles.Index.Render(fmt.Sprintf("%d:", index+1)))
	line.WriteString(" ")
	line.WriteString(r.styles.Tag.Render("<" + rec.Tag + ">"))

	for _, a := range rec.Attrs {
		line.WriteString(" ")
		line.WriteString(r.styles.AttrName.Render(a.Name))
		line.WriteString(r.styles.Dim.Render("="))
		line.WriteString(r.styles.AttrValue.Render(fmt.Sprintf("%q", a.Value)))
	}

	if _, err := fmt.Fprintln(r.w, line.String()); err != nil {
		return err
	}

	if rec.Text != "" {
		preview := clip(rec.Text, r.width-4)
		if _, err := fmt.Fprintf(r.w, "   %s\n", r.styles.Text.Render(preview)); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary writes the trailing match-count line.
func (r *Renderer) RenderSummary(matches int, truncated bool) error {
	noun := "elements"
	if matches == 1 {
		noun = "element"
	}
	line := r.styles.Summary.Render(fmt.Sprintf("%d %s matched", matches, noun))
	if truncated {
		line += " " + r.styles.Warning.Render("(input truncated by size limit)")
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

// clip shortens s to at most width runes, appending an ellipsis when it
// was cut.
func clip(s string, width int) string {
	if width < 8 {
		width = 8
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
