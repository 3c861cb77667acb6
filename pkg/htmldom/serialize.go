package htmldom

// OuterHTML returns the exact markup of the node as found in the
// (possibly truncated) source, including its own start and end tags.
// For the document root it returns the whole source. Elements closed
// implicitly have no end tag in the source, so none appears here.
func OuterHTML(doc *Document, id NodeID) string {
	n := doc.Nodes.Node(id)
	return doc.Source[n.Start:n.End]
}

// InnerHTML returns the markup between the node's start and end tags.
// Void and self-closing elements have no content.
func InnerHTML(doc *Document, id NodeID) string {
	n := doc.Nodes.Node(id)
	if n.StartTagEnd >= n.EndTagStart {
		return ""
	}
	return doc.Source[n.StartTagEnd:n.EndTagStart]
}
