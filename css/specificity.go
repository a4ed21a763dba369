package css

// Specificity is the weight of a selector, used
// to rank competing declarations.
type Specificity struct {
	ID    int
	Class int // classes, attributes and pseudo-classes
	Type  int
}

// Value returns a number preserving the lexicographic order
// of (ID, Class, Type).
func (s Specificity) Value() int {
	return s.ID*65536 + s.Class*256 + s.Type
}

func (s Specificity) add(o Specificity) Specificity {
	return Specificity{s.ID + o.ID, s.Class + o.Class, s.Type + o.Type}
}

func (s Specificity) Less(o Specificity) bool { return s.Value() < o.Value() }

func (s SimpleSelector) Specificity() Specificity {
	var out Specificity
	switch s.Kind {
	case ID:
		out.ID++
	case Class:
		out.Class++
	case Type:
		out.Type++
	}
	out.Class += len(s.Attrs)
	for _, p := range s.Pseudos {
		out = out.add(p.specificity())
	}
	return out
}

func (p PseudoClass) specificity() Specificity {
	switch p.Name {
	case "where":
		return Specificity{}
	case "not", "is", "matches", "has":
		return p.Args.maxSpecificity()
	default:
		return Specificity{Class: 1}
	}
}

func (l SelectorList) maxSpecificity() Specificity {
	var out Specificity
	for _, sel := range l {
		if sp := sel.Specificity(); out.Less(sp) {
			out = sp
		}
	}
	return out
}

func (c ComplexSelector) Specificity() Specificity {
	var out Specificity
	for _, part := range c {
		for _, s := range part.Compound {
			out = out.add(s.Specificity())
		}
	}
	return out
}
