package htmldom

// Arena is the flat, append-only store holding every node of one
// Document. Node identity is the arena index; indices are stable for
// the arena's lifetime. The arena is written only during parsing and is
// read-only afterwards, so it may be read from any goroutine once the
// owning Document has been handed over.
type Arena struct {
	nodes []Node
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Node returns the node with the given id. The returned pointer is
// valid for the arena's lifetime and must be treated as read-only.
func (a *Arena) Node(id NodeID) *Node {
	return &a.nodes[id]
}

// Valid reports whether id references a node in this arena.
func (a *Arena) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(a.nodes)
}

// append adds a node and returns its id. Only the parser appends.
func (a *Arena) append(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

// Document owns one parsed tree plus the size-guard decision made for
// its input. It is immutable after construction; Element views borrow
// it and must not outlive it.
type Document struct {
	// Nodes is the arena holding the tree. Index 0 is the document root.
	Nodes Arena

	// Source is the input actually parsed. When Truncated is true this
	// is the admitted prefix of the original input, clamped to a rune
	// boundary.
	Source string

	// Truncated reports whether the size guard cut the input.
	Truncated bool

	// OriginalLength is the length in bytes of the input as given.
	OriginalLength int

	// Limit is the size limit that was in effect.
	Limit int
}

// Root returns the id of the document root node.
func (d *Document) Root() NodeID {
	return 0
}
