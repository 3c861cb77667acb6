package xpathlite

import "strings"

// supportedAxes maps explicit axis names to their Axis value.
var supportedAxes = map[string]Axis{
	"child":              AxisChild,
	"descendant":         AxisDescendant,
	"descendant-or-self": AxisDescendantOrSelf,
	"self":               AxisSelf,
	"attribute":          AxisAttribute,
}

// knownAxes are axis names that are valid XPath but not implemented
// here. They parse cleanly and fail at evaluation.
var knownAxes = map[string]bool{
	"ancestor": true, "ancestor-or-self": true,
	"following": true, "following-sibling": true, "namespace": true,
	"parent": true, "preceding": true, "preceding-sibling": true,
}

// Parse compiles an XPath expression. Malformed expressions yield
// *SyntaxError; expressions using recognized-but-unsupported constructs
// parse successfully and fail later in Eval.
func Parse(expr string) (*Path, error) {
	p := &parser{expr: expr}
	path := &Path{Source: expr}

	p.skipSpace()
	if p.pos >= len(p.expr) {
		return nil, p.errorf("empty expression")
	}

	descent := false
	if p.expr[p.pos] == '/' {
		path.Absolute = true
		p.pos++
		if p.pos < len(p.expr) && p.expr[p.pos] == '/' {
			descent = true
			p.pos++
		}
		p.skipSpace()
		if p.pos >= len(p.expr) {
			if descent {
				return nil, p.errorf("expected step after '//'")
			}
			// Bare "/" selects the root; represent as a single self step.
			path.Steps = append(path.Steps, Step{Axis: AxisSelf, Wildcard: true})
			return path, nil
		}
	}

	for {
		step, err := p.parseStep(descent)
		if err != nil {
			return nil, err
		}
		path.Steps = append(path.Steps, step)

		p.skipSpace()
		if p.pos >= len(p.expr) {
			return path, nil
		}
		if p.expr[p.pos] != '/' {
			return nil, p.errorf("unexpected token")
		}
		p.pos++
		descent = false
		if p.pos < len(p.expr) && p.expr[p.pos] == '/' {
			descent = true
			p.pos++
		}
		p.skipSpace()
		if p.pos >= len(p.expr) {
			return nil, p.errorf("expected step after '/'")
		}
	}
}

type parser struct {
	expr string
	pos  int
}

func (p *parser) parseStep(descent bool) (Step, error) {
	step := Step{Descent: descent, Axis: AxisChild}

	switch c := p.expr[p.pos]; {
	case c == '@':
		p.pos++
		step.Axis = AxisAttribute
	case c == '.':
		p.pos++
		if p.pos < len(p.expr) && p.expr[p.pos] == '.' {
			p.pos++
			step.Axis = axisUnsupported
			step.RawAxis = "parent"
		} else {
			step.Axis = AxisSelf
			step.Wildcard = true
		}
		return p.parsePredicates(step)
	}

	if p.pos < len(p.expr) && p.expr[p.pos] == '*' {
		p.pos++
		step.Wildcard = true
		return p.parsePredicates(step)
	}

	name := p.name()
	if name == "" {
		return step, p.errorf("expected node test")
	}

	// Explicit axis: name followed by '::'.
	if step.Axis != AxisAttribute && strings.HasPrefix(p.expr[p.pos:], "::") {
		p.pos += 2
		lower := strings.ToLower(name)
		if axis, ok := supportedAxes[lower]; ok {
			step.Axis = axis
		} else if knownAxes[lower] {
			step.Axis = axisUnsupported
			step.RawAxis = lower
		} else {
			return step, p.errorf("unknown axis")
		}
		if p.pos < len(p.expr) && p.expr[p.pos] == '*' {
			p.pos++
			step.Wildcard = true
			return p.parsePredicates(step)
		}
		name = p.name()
		if name == "" {
			return step, p.errorf("expected node test after axis")
		}
	}

	// Node-test function such as text() or node().
	if strings.HasPrefix(p.expr[p.pos:], "(") {
		p.pos++
		p.skipSpace()
		if p.pos >= len(p.expr) || p.expr[p.pos] != ')' {
			return step, p.errorf("expected ')'")
		}
		p.pos++
		step.Func = strings.ToLower(name)
		return p.parsePredicates(step)
	}

	step.Name = strings.ToLower(name)
	return p.parsePredicates(step)
}

func (p *parser) parsePredicates(step Step) (Step, error) {
	for {
		p.skipSpace()
		if p.pos >= len(p.expr) || p.expr[p.pos] != '[' {
			return step, nil
		}
		pred, err := p.parsePredicate()
		if err != nil {
			return step, err
		}
		step.Preds = append(step.Preds, pred)
	}
}

func (p *parser) parsePredicate() (Predicate, error) {
	var pred Predicate
	open := p.pos
	p.pos++ // consume '['
	p.skipSpace()

	if p.pos >= len(p.expr) {
		p.pos = open
		return pred, p.errorf("unterminated predicate")
	}

	switch c := p.expr[p.pos]; {
	case c >= '0' && c <= '9':
		pred.Kind = PredPosition
		pred.Position = p.number()
	case c == '@':
		p.pos++
		name := p.name()
		if name == "" {
			return pred, p.errorf("expected attribute name after '@'")
		}
		pred.Kind = PredAttr
		pred.Attr = strings.ToLower(name)
		p.skipSpace()
		if p.pos < len(p.expr) && p.expr[p.pos] == '=' {
			p.pos++
			p.skipSpace()
			value, err := p.literal()
			if err != nil {
				return pred, err
			}
			pred.HasValue = true
			pred.Value = value
		}
	default:
		// A bare function call like last() or position() is valid
		// XPath; record it and let evaluation report it.
		name := p.name()
		if name != "" && strings.HasPrefix(p.expr[p.pos:], "(") {
			p.pos++
			p.skipSpace()
			if p.pos >= len(p.expr) || p.expr[p.pos] != ')' {
				return pred, p.errorf("expected ')'")
			}
			p.pos++
			pred.Kind = predUnsupported
			pred.Raw = name + "()"
		} else {
			return pred, p.errorf("unsupported predicate")
		}
	}

	p.skipSpace()
	if p.pos >= len(p.expr) || p.expr[p.pos] != ']' {
		return pred, p.errorf("expected ']'")
	}
	p.pos++
	return pred, nil
}

// literal parses a quoted string literal.
func (p *parser) literal() (string, error) {
	if p.pos >= len(p.expr) {
		return "", p.errorf("expected string literal")
	}
	q := p.expr[p.pos]
	if q != '\'' && q != '"' {
		return "", p.errorf("expected string literal")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.expr) && p.expr[p.pos] != q {
		p.pos++
	}
	if p.pos >= len(p.expr) {
		return "", p.errorf("unterminated string literal")
	}
	value := p.expr[start:p.pos]
	p.pos++
	return value, nil
}

func (p *parser) number() int {
	n := 0
	for p.pos < len(p.expr) && p.expr[p.pos] >= '0' && p.expr[p.pos] <= '9' {
		n = n*10 + int(p.expr[p.pos]-'0')
		p.pos++
	}
	return n
}

// name consumes an XML name: letters, digits, '-', '_', '.' and any
// non-ASCII byte. A leading digit or '.' is not accepted.
func (p *parser) name() string {
	start := p.pos
	if p.pos < len(p.expr) && isNameStart(p.expr[p.pos]) {
		p.pos++
		for p.pos < len(p.expr) && isNameChar(p.expr[p.pos]) {
			p.pos++
		}
	}
	return p.expr[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.expr) {
		switch p.expr[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorf(reason string) error {
	return &SyntaxError{
		Expr:     p.expr,
		Pos:      p.pos,
		Fragment: fragmentAt(p.expr, p.pos),
		Reason:   reason,
	}
}

func fragmentAt(expr string, pos int) string {
	if pos >= len(expr) {
		return "end of expression"
	}
	end := pos + 12
	if end > len(expr) {
		end = len(expr)
	}
	return expr[pos:end]
}

func isNameStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9') || c == '-' || c == '.'
}
