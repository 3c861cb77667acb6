package cssselect

import "strings"

// Parse compiles a selector string into a SelectorList. Failures are
// reported as *SyntaxError naming the offending fragment and position.
func Parse(input string) (*SelectorList, error) {
	p := &parser{input: input}
	list := &SelectorList{Source: input}

	for {
		complex, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		list.Selectors = append(list.Selectors, complex)

		p.skipSpace()
		if p.pos >= len(p.input) {
			return list, nil
		}
		if p.input[p.pos] != ',' {
			return nil, p.errorf("unexpected token")
		}
		p.pos++ // consume ','
	}
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseComplex() (Complex, error) {
	var cx Complex

	p.skipSpace()
	first, err := p.parseCompound()
	if err != nil {
		return cx, err
	}
	cx.Parts = append(cx.Parts, first)

	for {
		hadSpace := p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] == ',' {
			return cx, nil
		}

		comb := Descendant
		if p.input[p.pos] == '>' {
			comb = Child
			p.pos++
			p.skipSpace()
		} else if !hadSpace {
			return cx, p.errorf("unexpected token")
		}

		next, err := p.parseCompound()
		if err != nil {
			return cx, err
		}
		cx.Combinators = append(cx.Combinators, comb)
		cx.Parts = append(cx.Parts, next)
	}
}

func (p *parser) parseCompound() (Compound, error) {
	var c Compound
	start := p.pos
	for p.pos < len(p.input) {
		switch ch := p.input[p.pos]; {
		case ch == '*':
			p.pos++
		case ch == '.':
			p.pos++
			name := p.ident()
			if name == "" {
				return c, p.errorf("expected class name after '.'")
			}
			c.Classes = append(c.Classes, name)
		case ch == '#':
			p.pos++
			name := p.ident()
			if name == "" {
				return c, p.errorf("expected id after '#'")
			}
			c.ID = name
		case ch == '[':
			attr, err := p.parseAttr()
			if err != nil {
				return c, err
			}
			c.Attrs = append(c.Attrs, attr)
		case isIdentStart(ch):
			if p.pos != start {
				// A type selector is only valid at the start of a compound.
				return c, p.errorf("unexpected token")
			}
			c.Tag = strings.ToLower(p.ident())
		default:
			if p.pos == start {
				return c, p.errorf("unexpected token")
			}
			return c, nil
		}
	}
	if p.pos == start {
		return c, p.errorf("expected selector")
	}
	return c, nil
}

func (p *parser) parseAttr() (AttrMatcher, error) {
	var m AttrMatcher
	open := p.pos
	p.pos++ // consume '['
	p.skipSpace()

	m.Name = p.ident()
	if m.Name == "" {
		return m, p.errorf("expected attribute name")
	}

	p.skipSpace()
	if op, ok := p.attrOp(); ok {
		p.skipSpace()
		value, err := p.attrValue()
		if err != nil {
			return m, err
		}
		m.Op = op
		m.Value = value
		p.skipSpace()
	}

	if p.pos >= len(p.input) || p.input[p.pos] != ']' {
		p.pos = open
		return m, p.errorf("unbalanced '['")
	}
	p.pos++ // consume ']'
	return m, nil
}

// attrOp consumes an attribute comparison operator if one is present.
func (p *parser) attrOp() (AttrOp, bool) {
	if p.pos >= len(p.input) {
		return AttrExists, false
	}
	switch p.input[p.pos] {
	case '=':
		p.pos++
		return AttrEquals, true
	case '^', '$', '*':
		if p.pos+1 >= len(p.input) || p.input[p.pos+1] != '=' {
			break
		}
		var op AttrOp
		switch p.input[p.pos] {
		case '^':
			op = AttrPrefix
		case '$':
			op = AttrSuffix
		default:
			op = AttrSubstring
		}
		p.pos += 2
		return op, true
	}
	return AttrExists, false
}

func (p *parser) attrValue() (string, error) {
	if p.pos >= len(p.input) {
		return "", p.errorf("expected attribute value")
	}
	if q := p.input[p.pos]; q == '"' || q == '\'' {
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != q {
			p.pos++
		}
		if p.pos >= len(p.input) {
			return "", p.errorf("unterminated string")
		}
		value := p.input[start:p.pos]
		p.pos++ // closing quote
		return value, nil
	}

	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ']' || c == ' ' || c == '\t' || c == '\n' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected attribute value")
	}
	return p.input[start:p.pos], nil
}

// ident consumes a selector identifier: letters, digits, '-', '_' and
// any non-ASCII byte. CSS escape sequences are not supported.
func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) skipSpace() bool {
	start := p.pos
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return p.pos != start
		}
	}
	return p.pos != start
}

func (p *parser) errorf(reason string) error {
	return &SyntaxError{
		Input:    p.input,
		Pos:      p.pos,
		Fragment: fragmentAt(p.input, p.pos),
		Reason:   reason,
	}
}

// fragmentAt returns a short window of the input starting at pos, for
// error messages.
func fragmentAt(input string, pos int) string {
	if pos >= len(input) {
		return "end of selector"
	}
	end := pos + 12
	if end > len(input) {
		end = len(input)
	}
	return input[pos:end]
}

func isIdentStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c == '-' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
