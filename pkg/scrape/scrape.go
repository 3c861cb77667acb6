package scrape

import "github.com/yaklabco/scrapekit/pkg/config"

// Select is the stateless convenience combining parse and select: it
// parses html and returns all elements matching the CSS selector. The
// returned elements keep the freshly parsed Document alive.
func Select(html, selector string, opts config.Options) ([]Element, error) {
	doc, err := Parse(html, opts)
	if err != nil {
		return nil, err
	}
	return doc.Select(selector)
}

// First parses html and returns the first element matching the CSS
// selector, or ok=false when nothing matches.
func First(html, selector string, opts config.Options) (Element, bool, error) {
	doc, err := Parse(html, opts)
	if err != nil {
		return Element{}, false, err
	}
	return doc.Find(selector)
}

// XPath parses html and returns all elements matching the XPath
// expression.
func XPath(html, expr string, opts config.Options) ([]Element, error) {
	doc, err := Parse(html, opts)
	if err != nil {
		return nil, err
	}
	return doc.XPath(expr)
}

// XPathFirst parses html and returns the first XPath match, or
// ok=false when nothing matches.
func XPathFirst(html, expr string, opts config.Options) (Element, bool, error) {
	doc, err := Parse(html, opts)
	if err != nil {
		return Element{}, false, err
	}
	return doc.XPathFirst(expr)
}

// Records detaches a slice of elements into owned records.
func Records(elements []Element) []Record {
	if len(elements) == 0 {
		return nil
	}
	out := make([]Record, len(elements))
	for i, el := range elements {
		out[i] = el.Record()
	}
	return out
}
