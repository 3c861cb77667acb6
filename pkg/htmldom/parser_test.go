package htmldom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/scrapekit/pkg/config"
	"github.com/yaklabco/scrapekit/pkg/htmldom"
)

func mustParse(t *testing.T, src string) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.Parse(src, config.Default())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return doc
}

// firstElement returns the first element with the given lowercase tag,
// in document order.
func firstElement(t *testing.T, doc *htmldom.Document, tag string) htmldom.NodeID {
	t.Helper()
	id, ok := htmldom.FindFirst(doc, doc.Root(), func(_ htmldom.NodeID, n *htmldom.Node) bool {
		return n.Kind == htmldom.NodeElement && n.TagLower == tag
	})
	if !ok {
		t.Fatalf("no <%s> element in document", tag)
	}
	return id
}

// elementsByTag returns all elements with the given lowercase tag.
func elementsByTag(doc *htmldom.Document, tag string) []htmldom.NodeID {
	return htmldom.FindAll(doc, doc.Root(), func(_ htmldom.NodeID, n *htmldom.Node) bool {
		return n.Kind == htmldom.NodeElement && n.TagLower == tag
	})
}

func TestParse_SimpleTree(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<html><body><div id="main">Hello</div></body></html>`)

	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	if div.Tag != "div" {
		t.Errorf("expected tag div, got %q", div.Tag)
	}
	if id, ok := div.Attr("id"); !ok || id != "main" {
		t.Errorf("expected id=main, got %q (present=%v)", id, ok)
	}
	if len(div.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(div.Children))
	}
	text := doc.Nodes.Node(div.Children[0])
	if text.Kind != htmldom.NodeText || text.Text != "Hello" {
		t.Errorf("expected text child %q, got kind=%s text=%q", "Hello", text.Kind, text.Text)
	}
}

func TestParse_ImplicitClose(t *testing.T) {
	t.Parallel()

	// </div> pops the unclosed span and b on its way to the div.
	doc := mustParse(t, `<div><span>a<b>c</div>after`)

	div := firstElement(t, doc, "div")
	span := firstElement(t, doc, "span")
	b := firstElement(t, doc, "b")

	if doc.Nodes.Node(span).Parent != div {
		t.Error("span should remain a child of div")
	}
	if doc.Nodes.Node(b).Parent != span {
		t.Error("b should remain a child of span")
	}

	// The trailing text lands outside the div, proving the stack was
	// popped down past the implicitly closed elements.
	after := doc.Nodes.Node(doc.Root()).Children
	last := doc.Nodes.Node(after[len(after)-1])
	if last.Kind != htmldom.NodeText || last.Text != "after" {
		t.Errorf("expected trailing text under root, got kind=%s text=%q", last.Kind, last.Text)
	}
}

func TestParse_UnclosedAtEOF(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div><p>dangling`)

	p := doc.Nodes.Node(firstElement(t, doc, "p"))
	if len(p.Children) != 1 {
		t.Fatalf("expected 1 child of p, got %d", len(p.Children))
	}
	if got := doc.Nodes.Node(p.Children[0]).Text; got != "dangling" {
		t.Errorf("expected text %q, got %q", "dangling", got)
	}
}

func TestParse_VoidElements(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div>a<br>b<img src="x.png">c</div>`)

	br := doc.Nodes.Node(firstElement(t, doc, "br"))
	if len(br.Children) != 0 {
		t.Errorf("void element br has %d children", len(br.Children))
	}

	// The text after the void element must be a sibling, not a child.
	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	if len(div.Children) != 5 {
		t.Errorf("expected 5 children of div (a, br, b, img, c), got %d", len(div.Children))
	}
}

func TestParse_SelfClosing(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div><widget/>after</div>`)

	widget := doc.Nodes.Node(firstElement(t, doc, "widget"))
	if len(widget.Children) != 0 {
		t.Errorf("self-closing element has %d children", len(widget.Children))
	}
	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	if len(div.Children) != 2 {
		t.Errorf("expected widget and text as siblings, got %d children", len(div.Children))
	}
}

func TestParse_RawText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "markup inside script is not parsed",
			src:  `<script>if (a < b) { x = "<div>"; }</script>`,
			want: `if (a < b) { x = "<div>"; }`,
		},
		{
			name: "entities inside style are not decoded",
			src:  `<style>a::before { content: "&amp;"; }</style>`,
			want: `a::before { content: "&amp;"; }`,
		},
		{
			name: "end tag match is case-insensitive",
			src:  `<script>var x = 1;</SCRIPT>after`,
			want: `var x = 1;`,
		},
		{
			name: "unterminated raw text runs to end of input",
			src:  `<script>var x = 1;`,
			want: `var x = 1;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tt.src)
			var raw htmldom.NodeID
			if strings.Contains(tt.src, "script") || strings.Contains(tt.src, "SCRIPT") {
				raw = firstElement(t, doc, "script")
			} else {
				raw = firstElement(t, doc, "style")
			}
			n := doc.Nodes.Node(raw)
			if len(n.Children) != 1 {
				t.Fatalf("expected 1 text child, got %d", len(n.Children))
			}
			if got := doc.Nodes.Node(n.Children[0]).Text; got != tt.want {
				t.Errorf("expected content %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParse_Comments(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div><!-- a comment --></div>`)

	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	if len(div.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(div.Children))
	}
	c := doc.Nodes.Node(div.Children[0])
	if c.Kind != htmldom.NodeComment {
		t.Fatalf("expected comment node, got %s", c.Kind)
	}
	if c.Text != " a comment " {
		t.Errorf("expected comment text %q, got %q", " a comment ", c.Text)
	}
}

func TestParse_UnterminatedComment(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div><!-- never closed`)

	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	if len(div.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(div.Children))
	}
	c := doc.Nodes.Node(div.Children[0])
	if c.Kind != htmldom.NodeComment || c.Text != " never closed" {
		t.Errorf("expected unterminated comment to run to EOF, got kind=%s text=%q", c.Kind, c.Text)
	}
}

func TestParse_ProcessingInstruction(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<?xml version="1.0"?><root>x</root>`)

	root := doc.Nodes.Node(doc.Root())
	if len(root.Children) != 2 {
		t.Fatalf("expected comment and root element, got %d children", len(root.Children))
	}
	if doc.Nodes.Node(root.Children[0]).Kind != htmldom.NodeComment {
		t.Errorf("expected <?...?> to become a comment node")
	}
}

func TestParse_DoctypeSkipped(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<!DOCTYPE html><html><body>x</body></html>`)

	root := doc.Nodes.Node(doc.Root())
	if len(root.Children) != 1 {
		t.Fatalf("expected only the html element under the root, got %d children", len(root.Children))
	}
	if doc.Nodes.Node(root.Children[0]).TagLower != "html" {
		t.Errorf("expected html element, got %q", doc.Nodes.Node(root.Children[0]).TagLower)
	}
}

func TestParse_DuplicateAttributes(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div class="first" class="second" id="x">y</div>`)

	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	if len(div.Attrs) != 2 {
		t.Fatalf("expected 2 attributes after dedup, got %d", len(div.Attrs))
	}
	if got, _ := div.Attr("class"); got != "first" {
		t.Errorf("expected first occurrence to win, got class=%q", got)
	}
}

func TestParse_AttributeForms(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<input type="text" name='user' disabled value=abc>`)

	input := doc.Nodes.Node(firstElement(t, doc, "input"))

	tests := []struct {
		name string
		want string
	}{
		{"type", "text"},
		{"name", "user"},
		{"disabled", ""},
		{"value", "abc"},
	}
	for _, tt := range tests {
		got, ok := input.Attr(tt.name)
		if !ok {
			t.Errorf("attribute %q missing", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("attribute %q: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestParse_AttributeNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div Data-ID="7">x</div>`)

	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	if got, ok := div.Attr("data-id"); !ok || got != "7" {
		t.Errorf("case-insensitive lookup failed: got %q (present=%v)", got, ok)
	}
	// Original case survives in the stored attribute.
	if div.Attrs[0].Name != "Data-ID" {
		t.Errorf("expected stored name Data-ID, got %q", div.Attrs[0].Name)
	}
}

func TestParse_TagCase(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<DIV>x</div>`)

	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	if div.Tag != "DIV" {
		t.Errorf("expected original case DIV, got %q", div.Tag)
	}
	if div.TagLower != "div" {
		t.Errorf("expected match key div, got %q", div.TagLower)
	}
	// The lowercase end tag must have closed the uppercase start tag.
	if len(div.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(div.Children))
	}
}

func TestParse_StrayEndTag(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div>a</span>b</div>`)

	div := doc.Nodes.Node(firstElement(t, doc, "div"))
	var texts []string
	for _, child := range div.Children {
		if n := doc.Nodes.Node(child); n.Kind == htmldom.NodeText {
			texts = append(texts, n.Text)
		}
	}
	if len(texts) != 2 || texts[0] != "a" || texts[1] != "b" {
		t.Errorf("expected stray end tag dropped with text [a b], got %v", texts)
	}
}

func TestParse_LoneLessThan(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<p>1 < 2</p>`)

	p := doc.Nodes.Node(firstElement(t, doc, "p"))
	if len(p.Children) != 1 {
		t.Fatalf("expected 1 text child, got %d", len(p.Children))
	}
	if got := doc.Nodes.Node(p.Children[0]).Text; got != "1 < 2" {
		t.Errorf("expected lone '<' kept as text, got %q", got)
	}
}

func TestParse_Entities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"named", `<p>a &amp; b</p>`, "a & b"},
		{"angle brackets", `<p>&lt;div&gt;</p>`, "<div>"},
		{"decimal numeric", `<p>&#65;</p>`, "A"},
		{"hex numeric", `<p>&#x41;</p>`, "A"},
		{"unknown left verbatim", `<p>&bogus; &amp;</p>`, "&bogus; &"},
		{"bare ampersand", `<p>fish & chips</p>`, "fish & chips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, tt.src)
			p := doc.Nodes.Node(firstElement(t, doc, "p"))
			if got := doc.Nodes.Node(p.Children[0]).Text; got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParse_EntityInAttribute(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<a href="?a=1&amp;b=2">x</a>`)

	a := doc.Nodes.Node(firstElement(t, doc, "a"))
	if got, _ := a.Attr("href"); got != "?a=1&b=2" {
		t.Errorf("expected decoded attribute value, got %q", got)
	}
}

func TestParse_DocumentOrderIDs(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<a><b></b><c><d></d></c></a><e></e>`)

	// Node ids are assigned in pre-order; a document-order walk must see
	// them strictly ascending.
	prev := htmldom.NodeID(-1)
	err := htmldom.Walk(doc, func(id htmldom.NodeID, _ *htmldom.Node) error {
		if id <= prev {
			t.Errorf("walk visited id %d after %d", id, prev)
		}
		prev = id
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
}

func TestParse_SizeLimitExceeded(t *testing.T) {
	t.Parallel()

	opts := config.Options{MaxSizeBytes: 10, TruncateOnLimit: false}
	_, err := htmldom.Parse("<div>this is longer than ten bytes</div>", opts)

	var sizeErr *htmldom.SizeLimitError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected *SizeLimitError, got %v", err)
	}
	if sizeErr.Limit != 10 {
		t.Errorf("expected limit 10, got %d", sizeErr.Limit)
	}
	if sizeErr.Length != len("<div>this is longer than ten bytes</div>") {
		t.Errorf("expected length %d, got %d", len("<div>this is longer than ten bytes</div>"), sizeErr.Length)
	}
}

func TestParse_Truncation(t *testing.T) {
	t.Parallel()

	src := `<div>abcdefghijklmnop</div>`
	opts := config.Options{MaxSizeBytes: 12, TruncateOnLimit: true}

	doc, err := htmldom.Parse(src, opts)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !doc.Truncated {
		t.Error("expected Truncated to be true")
	}
	if doc.Source != src[:12] {
		t.Errorf("expected source %q, got %q", src[:12], doc.Source)
	}
	if doc.OriginalLength != len(src) {
		t.Errorf("expected original length %d, got %d", len(src), doc.OriginalLength)
	}
}

func TestParse_TruncationRuneBoundary(t *testing.T) {
	t.Parallel()

	// "é" is two bytes; a limit cutting it in half must back up so no
	// partial sequence is admitted.
	src := "abcé"
	opts := config.Options{MaxSizeBytes: 4, TruncateOnLimit: true}

	doc, err := htmldom.Parse(src, opts)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Source != "abc" {
		t.Errorf("expected clamp to rune boundary %q, got %q", "abc", doc.Source)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "")
	if doc.Nodes.Len() != 1 {
		t.Fatalf("expected only the root node, got %d nodes", doc.Nodes.Len())
	}
	if doc.Nodes.Node(doc.Root()).Kind != htmldom.NodeDocument {
		t.Errorf("expected document root kind")
	}
}
