// Package xpathlite parses and evaluates a constrained XPath surface
// against an htmldom tree: absolute and relative paths, / and //
// separators, the child, descendant, descendant-or-self, self and
// attribute axes, name and * node tests, and positional and attribute
// predicates.
//
// Recognized-but-unsupported XPath constructs (other axes, function
// calls) parse successfully and fail at evaluation with *EvalError, so
// callers can distinguish "fix your expression" from "this engine does
// not do that".
package xpathlite

// Axis is the traversal relation of a location step.
type Axis uint8

const (
	// AxisChild selects element children of the context node.
	AxisChild Axis = iota

	// AxisDescendant selects element descendants of the context node.
	AxisDescendant

	// AxisDescendantOrSelf selects the context node and its element
	// descendants.
	AxisDescendantOrSelf

	// AxisSelf selects the context node itself.
	AxisSelf

	// AxisAttribute filters context elements by attribute presence.
	// The engine's result type is element-only, so an attribute step
	// selects the owning element rather than a detached attribute node.
	AxisAttribute

	// axisUnsupported marks a recognized axis this engine does not
	// implement. Evaluation reports it as *EvalError.
	axisUnsupported
)

// Step is one location step of a path.
type Step struct {
	// Descent is set when the step was preceded by //. The context
	// expands to each node and all its descendants before the axis is
	// applied, mirroring the descendant-or-self::node()/ shorthand.
	Descent bool

	Axis Axis

	// RawAxis preserves the written axis name for error reporting when
	// Axis is axisUnsupported.
	RawAxis string

	// Name is the lowercase node test (tag name, or attribute name for
	// the attribute axis). Empty when Wildcard or Self is set.
	Name string

	// Wildcard is the * node test.
	Wildcard bool

	// Func is a node-test function name such as "text" or "node".
	// Non-empty Func fails at evaluation.
	Func string

	Preds []Predicate
}

// PredKind discriminates predicate forms.
type PredKind uint8

const (
	// PredPosition is [n]: keep the n-th candidate (1-based) of each
	// per-context-node candidate list.
	PredPosition PredKind = iota

	// PredAttr is [@name] or [@name='value'].
	PredAttr

	// predUnsupported marks a parsed but unimplemented predicate, such
	// as [last()].
	predUnsupported
)

// Predicate filters the candidates produced by one step.
type Predicate struct {
	Kind PredKind

	// Position is the 1-based index for PredPosition.
	Position int

	// Attr is the attribute name for PredAttr.
	Attr string

	// HasValue distinguishes [@a] from [@a=''].
	HasValue bool
	Value    string

	// Raw preserves the written form for error reporting when Kind is
	// predUnsupported.
	Raw string
}

// Path is a parsed XPath expression.
type Path struct {
	// Source is the original expression, kept for error reporting.
	Source string

	// Absolute paths start at the document root regardless of the
	// evaluation context node.
	Absolute bool

	Steps []Step
}
