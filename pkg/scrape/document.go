// Package scrape is the read-only query facade over the HTML engine:
// Document and Element views composing the parser, the CSS selector
// engine, and the XPath engine into one public contract.
//
// A Document and the Elements borrowed from it are confined to the
// goroutine that owns them; hand results to another goroutine either by
// transferring ownership of the whole Document or by detaching elements
// with Element.Record first.
package scrape

import (
	"github.com/yaklabco/scrapekit/pkg/config"
	"github.com/yaklabco/scrapekit/pkg/cssselect"
	"github.com/yaklabco/scrapekit/pkg/htmldom"
	"github.com/yaklabco/scrapekit/pkg/xpathlite"
)

// Document is an immutable parsed HTML document.
type Document struct {
	dom *htmldom.Document
}

// Parse builds a Document from raw HTML under the given options. The
// only possible error is *htmldom.SizeLimitError; malformed markup is
// recovered, never rejected.
func Parse(html string, opts config.Options) (*Document, error) {
	dom, err := htmldom.Parse(html, opts)
	if err != nil {
		return nil, err
	}
	return &Document{dom: dom}, nil
}

// HTML returns the source that was parsed. When the document was
// truncated by the size guard this is the admitted prefix.
func (d *Document) HTML() string {
	return d.dom.Source
}

// Text returns the normalized text content of the whole document:
// every text run in document order, separated by single spaces, with
// whitespace collapsed and the result trimmed.
func (d *Document) Text() string {
	return htmldom.CollectText(d.dom, d.dom.Root())
}

// Truncated reports whether the size guard cut the input before
// parsing.
func (d *Document) Truncated() bool {
	return d.dom.Truncated
}

// OriginalLength returns the byte length of the input as given, before
// any truncation.
func (d *Document) OriginalLength() int {
	return d.dom.OriginalLength
}

// Select returns all elements matching the CSS selector, in document
// order. An empty result is not an error; a malformed selector is
// reported as *cssselect.SyntaxError.
func (d *Document) Select(selector string) ([]Element, error) {
	list, err := cssselect.Parse(selector)
	if err != nil {
		return nil, err
	}
	ids := cssselect.Match(d.dom, d.dom.Root(), list)
	return d.elements(ids), nil
}

// Find returns the first element matching the CSS selector in document
// order, short-circuiting the traversal at the first match. The second
// return is false when nothing matches.
func (d *Document) Find(selector string) (Element, bool, error) {
	list, err := cssselect.Parse(selector)
	if err != nil {
		return Element{}, false, err
	}
	id, ok := cssselect.MatchFirst(d.dom, d.dom.Root(), list)
	if !ok {
		return Element{}, false, nil
	}
	return Element{doc: d, id: id}, true, nil
}

// XPath evaluates an XPath expression against the document, returning
// matching elements in document order with duplicates collapsed.
// Malformed expressions yield *xpathlite.SyntaxError; valid expressions
// using unsupported constructs yield *xpathlite.EvalError.
func (d *Document) XPath(expr string) ([]Element, error) {
	path, err := xpathlite.Parse(expr)
	if err != nil {
		return nil, err
	}
	ids, err := xpathlite.Eval(d.dom, d.dom.Root(), path)
	if err != nil {
		return nil, err
	}
	return d.elements(ids), nil
}

// XPathFirst returns the first XPath result in document order, or
// ok=false when the expression matches nothing.
func (d *Document) XPathFirst(expr string) (Element, bool, error) {
	path, err := xpathlite.Parse(expr)
	if err != nil {
		return Element{}, false, err
	}
	id, ok, err := xpathlite.EvalFirst(d.dom, d.dom.Root(), path)
	if err != nil || !ok {
		return Element{}, false, err
	}
	return Element{doc: d, id: id}, true, nil
}

func (d *Document) elements(ids []htmldom.NodeID) []Element {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Element, len(ids))
	for i, id := range ids {
		out[i] = Element{doc: d, id: id}
	}
	return out
}
