package htmldom

import "strings"

// CollectText returns the normalized text content of the subtree rooted
// at id: every text node's content in document order, joined so that
// runs from separate source positions are separated by a single space,
// with all whitespace runs collapsed and the result trimmed.
//
// This normalization is a presentation contract; the parser itself
// stores text verbatim.
func CollectText(doc *Document, id NodeID) string {
	var parts []string
	//nolint:errcheck // the callback never fails
	WalkFrom(doc, id, func(_ NodeID, n *Node) error {
		if n.Kind == NodeText && n.Text != "" {
			parts = append(parts, n.Text)
		}
		return nil
	})
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
