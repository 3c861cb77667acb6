package scrape

import (
	"bytes"
	"encoding/json"

	"github.com/yaklabco/scrapekit/pkg/cssselect"
	"github.com/yaklabco/scrapekit/pkg/htmldom"
	"github.com/yaklabco/scrapekit/pkg/xpathlite"
)

// Element is a non-owning view of one element node: a reference to the
// owning Document plus an arena index. It is valid only for the
// Document's lifetime and must be detached with Record before crossing
// a goroutine or ownership boundary.
type Element struct {
	doc *Document
	id  htmldom.NodeID
}

// Tag returns the tag name with original source case preserved.
func (e Element) Tag() string {
	return e.node().Tag
}

// Text returns the normalized text content of the element's subtree,
// using the same whitespace contract as Document.Text.
func (e Element) Text() string {
	return htmldom.CollectText(e.doc.dom, e.id)
}

// HTML returns the exact markup of the element as found in the source,
// including its own start and end tags.
func (e Element) HTML() string {
	return htmldom.OuterHTML(e.doc.dom, e.id)
}

// InnerHTML returns the markup between the element's start and end
// tags.
func (e Element) InnerHTML() string {
	return htmldom.InnerHTML(e.doc.dom, e.id)
}

// Attr returns the value of the named attribute. The name comparison is
// case-insensitive; the second return is false when the attribute is
// absent.
func (e Element) Attr(name string) (string, bool) {
	return e.node().Attr(name)
}

// Get returns the named attribute's value, substituting def when the
// attribute is absent. The substitution happens here at the call
// boundary; the underlying lookup still distinguishes absence.
func (e Element) Get(name, def string) string {
	if value, ok := e.Attr(name); ok {
		return value
	}
	return def
}

// Attrs returns the element's attributes in source order with original
// name case preserved. The returned slice is shared with the arena and
// must not be modified.
func (e Element) Attrs() []htmldom.Attr {
	return e.node().Attrs
}

// Select returns all elements under this element (itself excluded)
// matching the CSS selector, in document order.
func (e Element) Select(selector string) ([]Element, error) {
	list, err := cssselect.Parse(selector)
	if err != nil {
		return nil, err
	}
	ids := cssselect.Match(e.doc.dom, e.id, list)
	return e.doc.elements(ids), nil
}

// Find returns the first element under this element matching the CSS
// selector, short-circuiting the subtree traversal.
func (e Element) Find(selector string) (Element, bool, error) {
	list, err := cssselect.Parse(selector)
	if err != nil {
		return Element{}, false, err
	}
	id, ok := cssselect.MatchFirst(e.doc.dom, e.id, list)
	if !ok {
		return Element{}, false, nil
	}
	return Element{doc: e.doc, id: id}, true, nil
}

// XPath evaluates a relative XPath expression with this element as the
// context node. Absolute expressions still start at the document root.
func (e Element) XPath(expr string) ([]Element, error) {
	path, err := xpathlite.Parse(expr)
	if err != nil {
		return nil, err
	}
	ids, err := xpathlite.Eval(e.doc.dom, e.id, path)
	if err != nil {
		return nil, err
	}
	return e.doc.elements(ids), nil
}

// Record detaches the element into an owned value carrying no reference
// into the arena. Records are the boundary type safe to move across
// goroutine and ownership boundaries.
func (e Element) Record() Record {
	n := e.node()
	attrs := make([]htmldom.Attr, len(n.Attrs))
	copy(attrs, n.Attrs)
	return Record{
		Tag:   n.Tag,
		Text:  e.Text(),
		HTML:  e.HTML(),
		Inner: e.InnerHTML(),
		Attrs: attrs,
	}
}

func (e Element) node() *htmldom.Node {
	return e.doc.dom.Nodes.Node(e.id)
}

// Record is the detached owned form of an element: plain values only,
// safe to serialize or to hand to another goroutine.
type Record struct {
	Tag   string
	Text  string
	HTML  string
	Inner string

	// Attrs preserves source order and original name case. Lookups via
	// Attr are case-insensitive, matching the live Element contract.
	Attrs []htmldom.Attr
}

// Attr returns the value of the named attribute and whether it is
// present, matching Element.Attr semantics.
func (r Record) Attr(name string) (string, bool) {
	for i := range r.Attrs {
		if equalFoldASCII(r.Attrs[i].Name, name) {
			return r.Attrs[i].Value, true
		}
	}
	return "", false
}

// Get returns the named attribute's value or def when absent.
func (r Record) Get(name, def string) string {
	if value, ok := r.Attr(name); ok {
		return value
	}
	return def
}

// MarshalJSON renders the record as an object whose attrs member keeps
// source attribute order, which encoding/json's map type would lose.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"tag":`)
	writeJSONString(&buf, r.Tag)
	buf.WriteString(`,"text":`)
	writeJSONString(&buf, r.Text)
	buf.WriteString(`,"html":`)
	writeJSONString(&buf, r.HTML)
	buf.WriteString(`,"attrs":{`)
	for i, a := range r.Attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, a.Name)
		buf.WriteByte(':')
		writeJSONString(&buf, a.Value)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, err := json.Marshal(s)
	if err != nil {
		buf.WriteString(`""`)
		return
	}
	buf.Write(b)
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
