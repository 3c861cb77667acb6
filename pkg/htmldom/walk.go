package htmldom

import "errors"

// ErrStopWalk stops a walk early. Walk returns nil when the callback
// returns it, so callers can distinguish "found what I wanted" from a
// real failure.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is the callback signature for Walk. Returning ErrStopWalk
// ends the walk without error; any other non-nil error aborts the walk
// and is returned to the caller.
type WalkFunc func(id NodeID, n *Node) error

// Walk performs a pre-order traversal of the whole document. Pre-order
// with children in insertion order is exactly document order.
func Walk(doc *Document, fn WalkFunc) error {
	return WalkFrom(doc, doc.Root(), fn)
}

// WalkFrom performs a pre-order traversal of the subtree rooted at id,
// visiting id itself first.
func WalkFrom(doc *Document, id NodeID, fn WalkFunc) error {
	err := walk(doc, id, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(doc *Document, id NodeID, fn WalkFunc) error {
	n := doc.Nodes.Node(id)
	if err := fn(id, n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := walk(doc, child, fn); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns the ids of all nodes under root (inclusive) matching
// the predicate, in document order.
func FindAll(doc *Document, root NodeID, predicate func(id NodeID, n *Node) bool) []NodeID {
	var result []NodeID
	//nolint:errcheck // the callback never fails
	WalkFrom(doc, root, func(id NodeID, n *Node) error {
		if predicate(id, n) {
			result = append(result, id)
		}
		return nil
	})
	return result
}

// FindFirst returns the first node under root (inclusive, document
// order) matching the predicate. The walk short-circuits at the first
// match rather than materializing the full result set.
func FindFirst(doc *Document, root NodeID, predicate func(id NodeID, n *Node) bool) (NodeID, bool) {
	found := InvalidNode
	//nolint:errcheck // ErrStopWalk is expected and absorbed by WalkFrom
	WalkFrom(doc, root, func(id NodeID, n *Node) error {
		if predicate(id, n) {
			found = id
			return ErrStopWalk
		}
		return nil
	})
	return found, found != InvalidNode
}

// Ancestors visits the parent chain of id from nearest to root,
// stopping when fn returns false.
func Ancestors(doc *Document, id NodeID, fn func(id NodeID, n *Node) bool) {
	for cur := doc.Nodes.Node(id).Parent; cur != InvalidNode; cur = doc.Nodes.Node(cur).Parent {
		if !fn(cur, doc.Nodes.Node(cur)) {
			return
		}
	}
}
