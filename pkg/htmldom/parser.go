// Package htmldom parses HTML into a flat, index-addressed node arena
// and provides read-only traversal over the resulting tree.
//
// The parser is permissive: it tolerates malformed real-world markup
// the way production browsers do and never fails on bounded input. The
// only parse-time error is the size guard rejecting oversized input.
package htmldom

import (
	"strings"

	"github.com/yaklabco/scrapekit/pkg/config"
)

// voidElements never have children or end tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// rawTextElements swallow their content verbatim until the matching
// end tag; no markup or character references are recognized inside.
var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

// Parse builds a Document from src under the given options. It returns
// *SizeLimitError when src exceeds the limit and truncation is
// disabled; it never fails for any other reason.
func Parse(src string, opts config.Options) (*Document, error) {
	opts = opts.Normalized()

	admitted, truncated, err := guard(src, opts.MaxSizeBytes, opts.TruncateOnLimit)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Source:         admitted,
		Truncated:      truncated,
		OriginalLength: len(src),
		Limit:          opts.MaxSizeBytes,
	}

	p := parser{doc: doc, src: admitted}
	p.run()
	return doc, nil
}

// parser holds the tokenizer position and the open-element stack used
// for tree construction.
type parser struct {
	doc   *Document
	src   string
	pos   int
	stack []NodeID
}

func (p *parser) run() {
	root := p.doc.Nodes.append(Node{
		Kind:   NodeDocument,
		Parent: InvalidNode,
	})
	p.stack = []NodeID{root}

	for p.pos < len(p.src) {
		if p.src[p.pos] == '<' && p.startsMarkup() {
			p.markup()
		} else {
			p.text()
		}
	}

	// End-of-input implicitly closes every remaining open element, so a
	// truncated or unterminated document still yields a rooted tree.
	p.closeAbove(0, len(p.src), len(p.src))

	rootNode := p.doc.Nodes.Node(root)
	rootNode.Start = 0
	rootNode.StartTagEnd = 0
	rootNode.EndTagStart = len(p.src)
	rootNode.End = len(p.src)
}

// startsMarkup reports whether the '<' at the current position opens a
// tag, comment, or other markup. A lone '<' degrades to text.
func (p *parser) startsMarkup() bool {
	if p.pos+1 >= len(p.src) {
		return false
	}
	c := p.src[p.pos+1]
	return isASCIILetter(c) || c == '/' || c == '!' || c == '?'
}

// text consumes a character run up to the next markup-opening '<' and
// appends a text node. Whitespace is preserved verbatim; character
// references are decoded.
func (p *parser) text() {
	start := p.pos
	for p.pos < len(p.src) {
		if p.src[p.pos] == '<' && p.startsMarkup() {
			break
		}
		p.pos++
	}
	p.appendText(start, p.pos, true)
}

func (p *parser) appendText(start, end int, decode bool) {
	if start >= end {
		return
	}
	content := p.src[start:end]
	if decode {
		content = decodeEntities(content)
	}
	id := p.doc.Nodes.append(Node{
		Kind:        NodeText,
		Text:        content,
		Parent:      p.top(),
		Start:       start,
		StartTagEnd: start,
		EndTagStart: end,
		End:         end,
	})
	p.appendChild(id)
}

func (p *parser) markup() {
	switch p.src[p.pos+1] {
	case '/':
		p.endTag()
	case '!':
		p.declaration()
	case '?':
		p.bogusComment()
	default:
		p.startTag()
	}
}

// declaration handles "<!--" comments, doctypes, and other "<!" markup.
func (p *parser) declaration() {
	if strings.HasPrefix(p.src[p.pos:], "<!--") {
		p.comment()
		return
	}
	// Doctype or bogus declaration: skip through the closing '>'.
	p.skipPast('>')
}

func (p *parser) comment() {
	start := p.pos
	contentStart := p.pos + len("<!--")
	end := strings.Index(p.src[contentStart:], "-->")

	var content string
	if end < 0 {
		// Unterminated comment runs to end of input.
		content = p.src[contentStart:]
		p.pos = len(p.src)
	} else {
		content = p.src[contentStart : contentStart+end]
		p.pos = contentStart + end + len("-->")
	}

	id := p.doc.Nodes.append(Node{
		Kind:        NodeComment,
		Text:        content,
		Parent:      p.top(),
		Start:       start,
		StartTagEnd: start,
		EndTagStart: p.pos,
		End:         p.pos,
	})
	p.appendChild(id)
}

// bogusComment handles "<?" markup (processing instructions, stray XML
// declarations). Browsers turn these into comment nodes.
func (p *parser) bogusComment() {
	start := p.pos
	contentStart := p.pos + 2
	gt := strings.IndexByte(p.src[contentStart:], '>')

	var content string
	if gt < 0 {
		content = p.src[contentStart:]
		p.pos = len(p.src)
	} else {
		content = p.src[contentStart : contentStart+gt]
		p.pos = contentStart + gt + 1
	}

	id := p.doc.Nodes.append(Node{
		Kind:        NodeComment,
		Text:        content,
		Parent:      p.top(),
		Start:       start,
		StartTagEnd: start,
		EndTagStart: p.pos,
		End:         p.pos,
	})
	p.appendChild(id)
}

func (p *parser) startTag() {
	tagStart := p.pos
	p.pos++ // consume '<'

	name := p.tagName()
	attrs := p.attributes()

	selfClosing := false
	if p.pos+1 < len(p.src) && p.src[p.pos] == '/' && p.src[p.pos+1] == '>' {
		selfClosing = true
		p.pos += 2
	} else if p.pos < len(p.src) && p.src[p.pos] == '>' {
		p.pos++
	} else {
		// EOF inside the tag: take what we have.
		p.pos = len(p.src)
	}

	lower := lowerASCII(name)
	id := p.doc.Nodes.append(Node{
		Kind:        NodeElement,
		Tag:         name,
		TagLower:    lower,
		Attrs:       attrs,
		Parent:      p.top(),
		Start:       tagStart,
		StartTagEnd: p.pos,
	})
	p.appendChild(id)

	if selfClosing || voidElements[lower] {
		n := p.doc.Nodes.Node(id)
		n.EndTagStart = p.pos
		n.End = p.pos
		return
	}

	p.stack = append(p.stack, id)

	if rawTextElements[lower] {
		p.rawText(lower)
	}
}

// rawText consumes verbatim content up to the matching end tag of a
// raw-text element (script, style). The end tag itself is left for the
// main loop to process.
func (p *parser) rawText(lower string) {
	needle := "</" + lower
	rest := p.src[p.pos:]

	idx := -1
	for from := 0; from < len(rest); {
		i := indexFold(rest[from:], needle)
		if i < 0 {
			break
		}
		after := from + i + len(needle)
		if after >= len(rest) || isTagNameEnd(rest[after]) {
			idx = from + i
			break
		}
		from += i + 1
	}

	start := p.pos
	if idx < 0 {
		p.pos = len(p.src)
	} else {
		p.pos = start + idx
	}
	p.appendText(start, p.pos, false)
}

func (p *parser) endTag() {
	tagStart := p.pos
	p.pos += 2 // consume "</"

	if p.pos >= len(p.src) || !isASCIILetter(p.src[p.pos]) {
		// "</" followed by a non-letter is bogus markup; skip it.
		p.pos = tagStart
		p.skipPast('>')
		return
	}

	name := p.tagName()
	p.skipPast('>')
	end := p.pos

	lower := lowerASCII(name)

	// Find the nearest matching open element. An end tag with no open
	// counterpart is dropped (recovery, not an error).
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.doc.Nodes.Node(p.stack[i]).TagLower != lower {
			continue
		}
		// Implicitly close any intervening unclosed elements, then
		// close the match with its real end-tag span.
		p.closeAbove(i, tagStart, tagStart)
		n := p.doc.Nodes.Node(p.stack[i])
		n.EndTagStart = tagStart
		n.End = end
		p.stack = p.stack[:i]
		return
	}
}

// closeAbove implicitly closes every open element above stack index
// keep, recording the close position. Implicit closes have no end tag,
// so EndTagStart == End.
func (p *parser) closeAbove(keep, endTagStart, end int) {
	for i := len(p.stack) - 1; i > keep; i-- {
		n := p.doc.Nodes.Node(p.stack[i])
		n.EndTagStart = endTagStart
		n.End = end
	}
	p.stack = p.stack[:keep+1]
}

func (p *parser) tagName() string {
	start := p.pos
	for p.pos < len(p.src) && !isTagNameEnd(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// attributes parses name/value pairs in source order. A duplicate name
// within one tag keeps the first occurrence, matching standard HTML
// parsing behavior.
func (p *parser) attributes() []Attr {
	var attrs []Attr
	for {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] == '>' {
			return attrs
		}
		if p.src[p.pos] == '/' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '>' {
				return attrs
			}
			p.pos++
			continue
		}

		name := p.attrName()
		if name == "" {
			// Stray byte that can't start a name; skip it to make progress.
			p.pos++
			continue
		}

		value := ""
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '=' {
			p.pos++
			p.skipSpace()
			value = p.attrValue()
		}

		if !hasAttrNamed(attrs, name) {
			attrs = append(attrs, Attr{Name: name, Value: decodeEntities(value)})
		}
	}
}

func (p *parser) attrName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSpace(c) || c == '=' || c == '/' || c == '>' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) attrValue() string {
	if p.pos >= len(p.src) {
		return ""
	}
	if q := p.src[p.pos]; q == '"' || q == '\'' {
		p.pos++
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != q {
			p.pos++
		}
		value := p.src[start:p.pos]
		if p.pos < len(p.src) {
			p.pos++ // closing quote
		}
		return value
	}
	// Unquoted value: runs to whitespace or '>'.
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSpace(c) || c == '>' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func hasAttrNamed(attrs []Attr, name string) bool {
	for i := range attrs {
		if equalFold(attrs[i].Name, name) {
			return true
		}
	}
	return false
}

func (p *parser) appendChild(id NodeID) {
	parent := p.top()
	pn := p.doc.Nodes.Node(parent)
	pn.Children = append(pn.Children, id)
}

func (p *parser) top() NodeID {
	return p.stack[len(p.stack)-1]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// skipPast advances just past the next occurrence of b, or to end of
// input if b never occurs.
func (p *parser) skipPast(b byte) {
	for p.pos < len(p.src) && p.src[p.pos] != b {
		p.pos++
	}
	if p.pos < len(p.src) {
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isTagNameEnd(c byte) bool {
	return isSpace(c) || c == '/' || c == '>'
}

// indexFold returns the index of the first ASCII case-insensitive
// occurrence of needle in s, or -1.
func indexFold(s, needle string) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(s); i++ {
		if equalFold(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
