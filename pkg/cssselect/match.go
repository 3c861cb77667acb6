package cssselect

import (
	"strings"

	"github.com/yaklabco/scrapekit/pkg/htmldom"
)

// Match returns every element in the subtree rooted at scope (scope
// itself excluded) matching the selector list, in document order.
// Duplicates across list members are collapsed: each element is visited
// once and tested against the whole list.
func Match(doc *htmldom.Document, scope htmldom.NodeID, list *SelectorList) []htmldom.NodeID {
	var result []htmldom.NodeID
	//nolint:errcheck // the callback never fails
	htmldom.WalkFrom(doc, scope, func(id htmldom.NodeID, n *htmldom.Node) error {
		if id != scope && n.Kind == htmldom.NodeElement && matchList(doc, id, list) {
			result = append(result, id)
		}
		return nil
	})
	return result
}

// MatchFirst returns the first matching element in document order. The
// walk stops at the first match, so the cost is proportional to the
// distance to that match, not to the tree size.
func MatchFirst(doc *htmldom.Document, scope htmldom.NodeID, list *SelectorList) (htmldom.NodeID, bool) {
	return htmldom.FindFirst(doc, scope, func(id htmldom.NodeID, n *htmldom.Node) bool {
		return id != scope && n.Kind == htmldom.NodeElement && matchList(doc, id, list)
	})
}

func matchList(doc *htmldom.Document, id htmldom.NodeID, list *SelectorList) bool {
	for i := range list.Selectors {
		if matchComplex(doc, id, &list.Selectors[i]) {
			return true
		}
	}
	return false
}

// matchComplex tests a complex selector right to left: the rightmost
// compound must match the candidate itself, then each combinator is
// satisfied by walking cached parent links, backtracking across
// descendant combinators as needed.
func matchComplex(doc *htmldom.Document, id htmldom.NodeID, cx *Complex) bool {
	last := len(cx.Parts) - 1
	if !matchCompound(doc, id, &cx.Parts[last]) {
		return false
	}
	return matchUp(doc, id, cx, last)
}

func matchUp(doc *htmldom.Document, id htmldom.NodeID, cx *Complex, part int) bool {
	if part == 0 {
		return true
	}
	parent := doc.Nodes.Node(id).Parent

	switch cx.Combinators[part-1] {
	case Child:
		if !isElement(doc, parent) {
			return false
		}
		return matchCompound(doc, parent, &cx.Parts[part-1]) && matchUp(doc, parent, cx, part-1)
	default: // Descendant
		for cur := parent; isElement(doc, cur); cur = doc.Nodes.Node(cur).Parent {
			if matchCompound(doc, cur, &cx.Parts[part-1]) && matchUp(doc, cur, cx, part-1) {
				return true
			}
		}
		return false
	}
}

func matchCompound(doc *htmldom.Document, id htmldom.NodeID, c *Compound) bool {
	n := doc.Nodes.Node(id)

	if c.Tag != "" && n.TagLower != c.Tag {
		return false
	}
	if c.ID != "" {
		idAttr, ok := n.Attr("id")
		if !ok || idAttr != c.ID {
			return false
		}
	}
	if len(c.Classes) > 0 {
		classAttr, ok := n.Attr("class")
		if !ok {
			return false
		}
		classes := strings.Fields(classAttr)
		for _, want := range c.Classes {
			if !containsString(classes, want) {
				return false
			}
		}
	}
	for i := range c.Attrs {
		m := &c.Attrs[i]
		value, ok := n.Attr(m.Name)
		if !ok {
			return false
		}
		switch m.Op {
		case AttrEquals:
			if value != m.Value {
				return false
			}
		case AttrPrefix:
			if !strings.HasPrefix(value, m.Value) {
				return false
			}
		case AttrSuffix:
			if !strings.HasSuffix(value, m.Value) {
				return false
			}
		case AttrSubstring:
			if !strings.Contains(value, m.Value) {
				return false
			}
		}
	}
	return true
}

func isElement(doc *htmldom.Document, id htmldom.NodeID) bool {
	return id != htmldom.InvalidNode && doc.Nodes.Node(id).Kind == htmldom.NodeElement
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
