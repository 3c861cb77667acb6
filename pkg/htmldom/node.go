package htmldom

// NodeKind classifies the type of a parsed node.
type NodeKind uint8

const (
	// NodeDocument is the synthetic root owning the whole tree.
	NodeDocument NodeKind = iota

	// NodeElement is a tag-delimited element.
	NodeElement

	// NodeText is a run of character data.
	NodeText

	// NodeComment is a <!-- --> comment.
	NodeComment
)

// String returns a human-readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "document"
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	case NodeComment:
		return "comment"
	default:
		return "unknown"
	}
}

// NodeID identifies a node within its owning Arena. IDs are assigned in
// the order nodes are appended during parsing, which is a pre-order
// walk of the final tree: sorting NodeIDs ascending yields document
// order.
type NodeID int32

// InvalidNode is the null node reference (e.g. the parent of the root).
const InvalidNode NodeID = -1

// Attr is a single element attribute. Name preserves the source case;
// lookups through Node.Attr are case-insensitive.
type Attr struct {
	Name  string
	Value string
}

// Node is a single node in the parsed tree. All fields are written once
// during parsing and read-only afterwards.
type Node struct {
	Kind NodeKind

	// Tag is the element tag name with original case preserved.
	// TagLower is the lowercase match key. Both are empty for
	// non-element nodes.
	Tag      string
	TagLower string

	// Attrs holds attributes in source order. Duplicate names within
	// one start tag keep the first occurrence only.
	Attrs []Attr

	// Text is the decoded character content of NodeText and
	// NodeComment nodes.
	Text string

	// Tree structure. Children are in insertion (document) order.
	Parent   NodeID
	Children []NodeID

	// Byte offsets into Document.Source. Start..End covers the full
	// outer range. StartTagEnd is the offset just past the start tag;
	// EndTagStart is the offset of the end tag. For void and
	// self-closing elements StartTagEnd == EndTagStart == End. For
	// implicitly closed elements EndTagStart == End == the position at
	// which the element was closed.
	Start       int
	StartTagEnd int
	EndTagStart int
	End         int
}

// Attr returns the value of the named attribute and whether it is
// present. The name comparison is case-insensitive.
func (n *Node) Attr(name string) (string, bool) {
	for i := range n.Attrs {
		if equalFold(n.Attrs[i].Name, name) {
			return n.Attrs[i].Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// equalFold is an ASCII-only case-insensitive comparison. Attribute and
// tag names in HTML are case-insensitive in the ASCII range only.
func equalFold(a, b string) bool {
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

// lowerASCII returns s with ASCII uppercase letters folded to lowercase.
// It returns s unchanged (no allocation) when already lowercase.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if c := b[j]; 'A' <= c && c <= 'Z' {
					b[j] = c + 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
