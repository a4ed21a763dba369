package css

import "strings"

// ParseSelectorList parses a comma separated list of selectors,
// such as the prelude of a rule set.
func ParseSelectorList(s string) (SelectorList, error) {
	r := NewReader(s)
	list, err := parseSelectorList(r, false)
	if err != nil {
		return nil, err
	}
	if !r.EOF() {
		return nil, r.Errorf("unexpected %q in selector", r.Peek(0))
	}
	return list, nil
}

// parseSelectorList stops at the end of input, or before a closing
// parenthesis when `nested` is true.
func parseSelectorList(r *Reader, nested bool) (SelectorList, error) {
	var out SelectorList
	for {
		sel, err := parseComplex(r, nested)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
		if r.Peek(0) != ',' {
			return out, nil
		}
		r.Next()
	}
}

func parseComplex(r *Reader, nested bool) (ComplexSelector, error) {
	r.SkipSpaceAndComments()
	var out ComplexSelector
	for {
		compound, err := parseCompound(r)
		if err != nil {
			return nil, err
		}
		if len(compound) == 0 {
			if r.EOF() {
				return nil, r.Errorf("unexpected end of selector")
			}
			return nil, r.Errorf("unexpected %q in selector", r.Peek(0))
		}
		sawSpace := r.SkipSpaceAndComments()

		comb := CombinatorNone
		switch c := r.Peek(0); {
		case c == '>':
			comb = CombinatorChild
		case c == '+':
			comb = CombinatorNextSibling
		case c == '~':
			comb = CombinatorSubsequentSibling
		case c == ',' || r.EOF() || (nested && c == ')'):
		case sawSpace:
			comb = CombinatorDescendant
		default:
			return nil, r.Errorf("unexpected %q in selector", c)
		}
		out = append(out, ComplexPart{Compound: compound, Combinator: comb})
		if comb == CombinatorNone {
			return out, nil
		}
		if comb != CombinatorDescendant {
			r.Next()
			r.SkipSpaceAndComments()
		}
	}
}

// parseCompound returns an empty selector if no simple selector
// starts at the current position.
func parseCompound(r *Reader) (CompoundSelector, error) {
	var out CompoundSelector
	if r.Peek(0) == '*' {
		r.Next()
		out = append(out, SimpleSelector{Kind: Universal})
	} else if r.IsIdentStart() {
		out = append(out, SimpleSelector{Kind: Type, Name: r.ReadIdent()})
	}

	// attribute and pseudo selectors refine the last simple selector
	last := func() *SimpleSelector {
		if len(out) == 0 {
			out = append(out, SimpleSelector{Kind: Universal})
		}
		return &out[len(out)-1]
	}

	for {
		switch r.Peek(0) {
		case '#', '.':
			kind := ID
			if r.Next() == '.' {
				kind = Class
			}
			name := r.ReadIdent()
			if name == "" {
				return nil, r.Errorf("expected identifier")
			}
			out = append(out, SimpleSelector{Kind: kind, Name: name})
		case '[':
			attr, err := parseAttrSelector(r)
			if err != nil {
				return nil, err
			}
			s := last()
			s.Attrs = append(s.Attrs, attr)
		case ':':
			pseudo, err := parsePseudoClass(r)
			if err != nil {
				return nil, err
			}
			s := last()
			s.Pseudos = append(s.Pseudos, pseudo)
		default:
			return out, nil
		}
	}
}

func parseAttrSelector(r *Reader) (AttrSelector, error) {
	var out AttrSelector
	if err := r.Expect('['); err != nil {
		return out, err
	}
	r.SkipSpaceAndComments()
	out.Name = r.ReadIdent()
	if out.Name == "" {
		return out, r.Errorf("expected attribute name")
	}
	r.SkipSpaceAndComments()
	if r.Peek(0) == ']' {
		r.Next()
		return out, nil
	}

	switch c := r.Next(); c {
	case '=':
		out.Op = AttrEquals
	case '~', '|', '^', '$', '*':
		if err := r.Expect('='); err != nil {
			return out, err
		}
		out.Op = map[byte]AttrOperator{
			'~': AttrIncludes, '|': AttrDashMatch, '^': AttrPrefix,
			'$': AttrSuffix, '*': AttrSubstring,
		}[c]
	default:
		return out, r.Errorf("invalid attribute operator %q", c)
	}

	r.SkipSpaceAndComments()
	if c := r.Peek(0); c == '"' || c == '\'' {
		value, err := r.ReadString()
		if err != nil {
			return out, err
		}
		out.Value = value
	} else if r.IsIdentStart() {
		out.Value = r.ReadIdent()
	} else {
		return out, r.Errorf("expected attribute value")
	}

	r.SkipSpaceAndComments()
	if r.IsIdentStart() {
		switch flag := r.ReadIdent(); strings.ToLower(flag) {
		case "i":
			out.IgnoreCase = true
		case "s":
		default:
			return out, r.Errorf("invalid attribute flag %q", flag)
		}
		r.SkipSpaceAndComments()
	}
	return out, r.Expect(']')
}

func parsePseudoClass(r *Reader) (PseudoClass, error) {
	var out PseudoClass
	if err := r.Expect(':'); err != nil {
		return out, err
	}
	if r.Peek(0) == ':' { // pseudo element, which never matches
		r.Next()
	}
	out.Name = strings.ToLower(r.ReadIdent())
	if out.Name == "" {
		return out, r.Errorf("expected pseudo-class name")
	}
	out.Group = pseudoGroups[out.Name]
	if r.Peek(0) != '(' {
		return out, nil
	}
	r.Next()

	if out.Group == PseudoFunctional {
		args, err := parseSelectorList(r, true)
		if err != nil {
			return out, err
		}
		out.Args = args
		return out, r.Expect(')')
	}

	// keep the raw arguments, balancing parentheses
	start, depth := r.Pos(), 0
	for {
		switch r.Next() {
		case 0:
			return out, r.Errorf("unterminated pseudo-class arguments")
		case '(':
			depth++
		case ')':
			if depth == 0 {
				out.Raw = strings.TrimSpace(string(r.src[start : r.Pos()-1]))
				return out, nil
			}
			depth--
		}
	}
}
