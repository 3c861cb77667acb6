package xpathlite

import (
	"sort"

	"github.com/yaklabco/scrapekit/pkg/htmldom"
)

// Eval evaluates a parsed path against the subtree context rooted at
// start (the document root for absolute paths). The result contains
// element nodes only, in document order, with duplicates reachable via
// multiple paths collapsed to their first occurrence.
func Eval(doc *htmldom.Document, start htmldom.NodeID, path *Path) ([]htmldom.NodeID, error) {
	ctx := []htmldom.NodeID{start}
	if path.Absolute {
		ctx = []htmldom.NodeID{doc.Root()}
	}

	for i := range path.Steps {
		step := &path.Steps[i]
		if step.Axis == axisUnsupported {
			return nil, &EvalError{Expr: path.Source, Construct: "axis " + step.RawAxis}
		}
		if step.Func != "" {
			return nil, &EvalError{Expr: path.Source, Construct: "node test " + step.Func + "()"}
		}

		base := ctx
		if step.Descent {
			base = expandDescent(doc, ctx)
		}

		var out []htmldom.NodeID
		for _, c := range base {
			cands := axisCandidates(doc, c, step)
			for _, pred := range step.Preds {
				var err error
				cands, err = applyPredicate(doc, cands, &pred, path)
				if err != nil {
					return nil, err
				}
			}
			out = append(out, cands...)
		}
		ctx = dedupOrdered(out)
	}

	// The result surface is element views only; a path ending in a self
	// step can still carry the document root here.
	result := ctx[:0:0]
	for _, id := range ctx {
		if doc.Nodes.Node(id).Kind == htmldom.NodeElement {
			result = append(result, id)
		}
	}
	return result, nil
}

// EvalFirst returns the first result in document order, short-circuiting
// where it can. Positional predicates and ordering still require full
// step evaluation, so the saving is the final materialization only.
func EvalFirst(doc *htmldom.Document, start htmldom.NodeID, path *Path) (htmldom.NodeID, bool, error) {
	ids, err := Eval(doc, start, path)
	if err != nil || len(ids) == 0 {
		return htmldom.InvalidNode, false, err
	}
	return ids[0], true, nil
}

// expandDescent replaces each context node with itself plus all its
// descendants, the descendant-or-self::node() expansion implied by //.
func expandDescent(doc *htmldom.Document, ctx []htmldom.NodeID) []htmldom.NodeID {
	var out []htmldom.NodeID
	for _, c := range ctx {
		//nolint:errcheck // the callback never fails
		htmldom.WalkFrom(doc, c, func(id htmldom.NodeID, _ *htmldom.Node) error {
			out = append(out, id)
			return nil
		})
	}
	return dedupOrdered(out)
}

func axisCandidates(doc *htmldom.Document, c htmldom.NodeID, step *Step) []htmldom.NodeID {
	n := doc.Nodes.Node(c)

	switch step.Axis {
	case AxisChild:
		var out []htmldom.NodeID
		for _, child := range n.Children {
			if nodeTestMatches(doc, child, step) {
				out = append(out, child)
			}
		}
		return out

	case AxisDescendant:
		var out []htmldom.NodeID
		//nolint:errcheck // the callback never fails
		htmldom.WalkFrom(doc, c, func(id htmldom.NodeID, _ *htmldom.Node) error {
			if id != c && nodeTestMatches(doc, id, step) {
				out = append(out, id)
			}
			return nil
		})
		return out

	case AxisDescendantOrSelf:
		var out []htmldom.NodeID
		//nolint:errcheck // the callback never fails
		htmldom.WalkFrom(doc, c, func(id htmldom.NodeID, _ *htmldom.Node) error {
			if nodeTestMatches(doc, id, step) {
				out = append(out, id)
			}
			return nil
		})
		return out

	case AxisSelf:
		if step.Wildcard || nodeTestMatches(doc, c, step) {
			return []htmldom.NodeID{c}
		}
		return nil

	case AxisAttribute:
		// Attribute steps keep the owning element when the attribute is
		// present; the engine never yields detached attribute nodes.
		if n.Kind != htmldom.NodeElement {
			return nil
		}
		if step.Wildcard {
			if len(n.Attrs) > 0 {
				return []htmldom.NodeID{c}
			}
			return nil
		}
		if n.HasAttr(step.Name) {
			return []htmldom.NodeID{c}
		}
		return nil

	default:
		return nil
	}
}

func nodeTestMatches(doc *htmldom.Document, id htmldom.NodeID, step *Step) bool {
	n := doc.Nodes.Node(id)
	if n.Kind != htmldom.NodeElement {
		return false
	}
	return step.Wildcard || n.TagLower == step.Name
}

func applyPredicate(doc *htmldom.Document, cands []htmldom.NodeID, pred *Predicate, path *Path) ([]htmldom.NodeID, error) {
	switch pred.Kind {
	case PredPosition:
		if pred.Position < 1 || pred.Position > len(cands) {
			return nil, nil
		}
		return cands[pred.Position-1 : pred.Position], nil

	case PredAttr:
		var out []htmldom.NodeID
		for _, id := range cands {
			value, ok := doc.Nodes.Node(id).Attr(pred.Attr)
			if !ok {
				continue
			}
			if pred.HasValue && value != pred.Value {
				continue
			}
			out = append(out, id)
		}
		return out, nil

	default:
		return nil, &EvalError{Expr: path.Source, Construct: "predicate " + pred.Raw}
	}
}

// dedupOrdered collapses duplicates (first occurrence wins) and returns
// ids in ascending order. Arena ids are assigned in pre-order, so
// ascending id order is document order.
func dedupOrdered(ids []htmldom.NodeID) []htmldom.NodeID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[htmldom.NodeID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
