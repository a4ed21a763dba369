package css

import "strings"

// Node is the view of a document element required
// to match selectors.
type Node interface {
	Tag() string
	ID() string
	HasClass(name string) bool
	Attr(name string) (string, bool)

	// Parent returns false for the root.
	Parent() (Node, bool)
	PrevSibling() (Node, bool)
	NextSibling() (Node, bool)
	Children() []Node

	// Synthetic nodes are produced by instantiation
	// (like SVG <use>) and never match any selector.
	Synthetic() bool
}

// Match returns true if `n` is matched by the selector.
func Match(sel ComplexSelector, n Node) bool {
	if len(sel) == 0 {
		return false
	}
	return matchFrom(sel, len(sel)-1, n)
}

// MatchAny returns true if one of the selectors matches `n`.
func (l SelectorList) MatchAny(n Node) bool {
	for _, sel := range l {
		if Match(sel, n) {
			return true
		}
	}
	return false
}

// matchFrom checks sel[:i+1] with the compound at index i matching n,
// walking right to left.
func matchFrom(sel ComplexSelector, i int, n Node) bool {
	if !matchCompound(sel[i].Compound, n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch sel[i-1].Combinator {
	case CombinatorDescendant:
		for p, ok := n.Parent(); ok; p, ok = p.Parent() {
			if matchFrom(sel, i-1, p) {
				return true
			}
		}
	case CombinatorChild:
		if p, ok := n.Parent(); ok {
			return matchFrom(sel, i-1, p)
		}
	case CombinatorNextSibling:
		if s, ok := n.PrevSibling(); ok {
			return matchFrom(sel, i-1, s)
		}
	case CombinatorSubsequentSibling:
		for s, ok := n.PrevSibling(); ok; s, ok = s.PrevSibling() {
			if matchFrom(sel, i-1, s) {
				return true
			}
		}
	}
	return false
}

func matchCompound(c CompoundSelector, n Node) bool {
	if n.Synthetic() {
		return false
	}
	for _, s := range c {
		if !matchSimple(s, n) {
			return false
		}
	}
	return true
}

func matchSimple(s SimpleSelector, n Node) bool {
	switch s.Kind {
	case Type:
		if n.Tag() != s.Name {
			return false
		}
	case Class:
		if !n.HasClass(s.Name) {
			return false
		}
	case ID:
		if n.ID() != s.Name {
			return false
		}
	}
	for _, attr := range s.Attrs {
		if !attr.match(n) {
			return false
		}
	}
	for _, pseudo := range s.Pseudos {
		if !pseudo.match(n) {
			return false
		}
	}
	return true
}

func (a AttrSelector) match(n Node) bool {
	value, ok := n.Attr(a.Name)
	if !ok {
		return false
	}
	expected := a.Value
	if a.IgnoreCase {
		value, expected = strings.ToLower(value), strings.ToLower(expected)
	}
	switch a.Op {
	case AttrExists:
		return true
	case AttrEquals:
		return value == expected
	case AttrIncludes:
		for _, word := range strings.Fields(value) {
			if word == expected {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return value == expected || strings.HasPrefix(value, expected+"-")
	case AttrPrefix:
		return expected != "" && strings.HasPrefix(value, expected)
	case AttrSuffix:
		return expected != "" && strings.HasSuffix(value, expected)
	case AttrSubstring:
		return expected != "" && strings.Contains(value, expected)
	default:
		return false
	}
}

func (p PseudoClass) match(n Node) bool {
	switch p.Name {
	case "not":
		return !p.Args.MatchAny(n)
	case "is", "matches", "where":
		return p.Args.MatchAny(n)
	case "has":
		return hasDescendant(n, p.Args)
	case "first-child":
		_, ok := n.PrevSibling()
		return !ok
	case "last-child":
		_, ok := n.NextSibling()
		return !ok
	case "only-child":
		_, hasPrev := n.PrevSibling()
		_, hasNext := n.NextSibling()
		return !hasPrev && !hasNext
	case "root":
		_, ok := n.Parent()
		return !ok
	case "empty":
		return len(n.Children()) == 0
	default: // user action, unsupported structural and unknown
		return false
	}
}

func hasDescendant(n Node, l SelectorList) bool {
	for _, child := range n.Children() {
		if l.MatchAny(child) || hasDescendant(child, l) {
			return true
		}
	}
	return false
}
