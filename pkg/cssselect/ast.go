// Package cssselect parses CSS selector strings and matches them
// against an htmldom tree, returning results in document order.
//
// Supported grammar: type selectors, the universal selector, .class,
// #id, attribute selectors ([attr], [attr=v], [attr^=v], [attr$=v],
// [attr*=v]), compound selectors, descendant (whitespace) and child (>)
// combinators, and comma-separated selector lists.
package cssselect

// AttrOp is the comparison applied by an attribute selector.
type AttrOp uint8

const (
	// AttrExists matches when the attribute is present, regardless of value.
	AttrExists AttrOp = iota

	// AttrEquals matches when the attribute value equals the operand exactly.
	AttrEquals

	// AttrPrefix matches when the attribute value starts with the operand (^=).
	AttrPrefix

	// AttrSuffix matches when the attribute value ends with the operand ($=).
	AttrSuffix

	// AttrSubstring matches when the attribute value contains the operand (*=).
	AttrSubstring
)

// AttrMatcher is a single [attr] or [attr=value] selector. Name is
// matched case-insensitively; Value comparison is case-sensitive.
type AttrMatcher struct {
	Name  string
	Op    AttrOp
	Value string
}

// Compound is a run of simple selectors with no combinator between
// them; every part must match the same element (implicit AND).
type Compound struct {
	// Tag is the lowercase type selector, or "" for the universal
	// selector and for compounds with no type part.
	Tag string

	// ID is the #id part, or "".
	ID string

	// Classes are the .class parts, all of which must be present.
	Classes []string

	// Attrs are the attribute selector parts.
	Attrs []AttrMatcher
}

// Combinator relates adjacent compounds of a complex selector.
type Combinator uint8

const (
	// Descendant matches any ancestor relation (whitespace combinator).
	Descendant Combinator = iota

	// Child matches the direct parent relation (> combinator).
	Child
)

// Complex is a full selector: compounds joined by combinators, matched
// right to left. Combinators[i] relates Parts[i] to Parts[i+1].
type Complex struct {
	Parts       []Compound
	Combinators []Combinator
}

// SelectorList is a parsed, comma-separated selector group. Matching a
// list is the union of matching each member, deduplicated and emitted
// in document order.
type SelectorList struct {
	// Source is the original selector text, kept for error reporting.
	Source string

	Selectors []Complex
}
