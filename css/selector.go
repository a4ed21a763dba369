package css

import "strings"

// SimpleKind is the kind of a simple selector.
type SimpleKind uint8

const (
	Universal SimpleKind = iota // *
	Type                        // rect
	Class                       // .name
	ID                          // #name
)

// AttrOperator is the matching operator of an attribute selector.
type AttrOperator uint8

const (
	AttrExists    AttrOperator = iota // [name]
	AttrEquals                        // [name=value]
	AttrIncludes                      // [name~=value]
	AttrDashMatch                     // [name|=value]
	AttrPrefix                        // [name^=value]
	AttrSuffix                        // [name$=value]
	AttrSubstring                     // [name*=value]
)

func (op AttrOperator) String() string {
	switch op {
	case AttrExists:
		return ""
	case AttrEquals:
		return "="
	case AttrIncludes:
		return "~="
	case AttrDashMatch:
		return "|="
	case AttrPrefix:
		return "^="
	case AttrSuffix:
		return "$="
	case AttrSubstring:
		return "*="
	default:
		return "<unknown AttrOperator>"
	}
}

// AttrSelector represents an attribute selector like `[href]` or `[type="text" i]`.
type AttrSelector struct {
	Name       string
	Op         AttrOperator
	Value      string
	IgnoreCase bool // the `i` flag
}

// PseudoGroup classifies pseudo-classes.
type PseudoGroup uint8

const (
	// PseudoUnknown pseudo-classes are accepted, but never match.
	PseudoUnknown PseudoGroup = iota
	// PseudoFunctional pseudo-classes take a selector list: :not(), :is(), :matches(), :where(), :has()
	PseudoFunctional
	// PseudoUserAction pseudo-classes (:hover, :focus, ...) never match a static tree.
	PseudoUserAction
	// PseudoStructural pseudo-classes depend on the position in the tree
	PseudoStructural
)

var pseudoGroups = map[string]PseudoGroup{
	"not":     PseudoFunctional,
	"is":      PseudoFunctional,
	"matches": PseudoFunctional,
	"where":   PseudoFunctional,
	"has":     PseudoFunctional,

	"hover":         PseudoUserAction,
	"active":        PseudoUserAction,
	"focus":         PseudoUserAction,
	"focus-within":  PseudoUserAction,
	"focus-visible": PseudoUserAction,
	"visited":       PseudoUserAction,
	"link":          PseudoUserAction,
	"target":        PseudoUserAction,

	"first-child":      PseudoStructural,
	"last-child":       PseudoStructural,
	"only-child":       PseudoStructural,
	"root":             PseudoStructural,
	"empty":            PseudoStructural,
	"nth-child":        PseudoStructural,
	"nth-last-child":   PseudoStructural,
	"first-of-type":    PseudoStructural,
	"last-of-type":     PseudoStructural,
	"nth-of-type":      PseudoStructural,
	"nth-last-of-type": PseudoStructural,
}

// PseudoClass is a pseudo-class like `:first-child` or `:not(.a)`.
// Args is only non empty for functional pseudo-classes;
// Raw stores the unparsed arguments of other functions, like `2n+1`.
type PseudoClass struct {
	Name  string
	Group PseudoGroup
	Args  SelectorList
	Raw   string
}

// SimpleSelector is one of Type, Universal, Class or ID, refined by
// attribute selectors and pseudo-classes.
type SimpleSelector struct {
	Kind    SimpleKind
	Name    string // tag, class or id, empty for Universal
	Attrs   []AttrSelector
	Pseudos []PseudoClass
}

// CompoundSelector is a sequence of simple selectors not separated
// by a combinator, as in `rect.a#b`.
// A Type or Universal selector, if present, is the first item.
type CompoundSelector []SimpleSelector

// Combinator defines the relationship between two compound selectors.
type Combinator uint8

const (
	CombinatorNone              Combinator = iota // last compound
	CombinatorDescendant                          // space
	CombinatorChild                               // >
	CombinatorNextSibling                         // +
	CombinatorSubsequentSibling                   // ~
)

func (c Combinator) String() string {
	switch c {
	case CombinatorNone:
		return ""
	case CombinatorDescendant:
		return " "
	case CombinatorChild:
		return " > "
	case CombinatorNextSibling:
		return " + "
	case CombinatorSubsequentSibling:
		return " ~ "
	default:
		return "<unknown Combinator>"
	}
}

// ComplexPart is a compound selector, with the combinator linking
// it to the next part.
type ComplexPart struct {
	Compound   CompoundSelector
	Combinator Combinator
}

// ComplexSelector is a chain of compound selectors joined by combinators,
// as in `g > rect.a`. The last part has CombinatorNone.
type ComplexSelector []ComplexPart

// SelectorList is a comma separated list of selectors.
type SelectorList []ComplexSelector

func (s SimpleSelector) String() string {
	var b strings.Builder
	switch s.Kind {
	case Universal:
		b.WriteByte('*')
	case Type:
		b.WriteString(s.Name)
	case Class:
		b.WriteString("." + s.Name)
	case ID:
		b.WriteString("#" + s.Name)
	}
	for _, a := range s.Attrs {
		b.WriteString("[" + a.Name)
		if a.Op != AttrExists {
			b.WriteString(a.Op.String() + `"` + a.Value + `"`)
			if a.IgnoreCase {
				b.WriteString(" i")
			}
		}
		b.WriteByte(']')
	}
	for _, p := range s.Pseudos {
		b.WriteString(":" + p.Name)
		if len(p.Args) != 0 {
			b.WriteString("(" + p.Args.String() + ")")
		} else if p.Raw != "" {
			b.WriteString("(" + p.Raw + ")")
		}
	}
	return b.String()
}

func (c CompoundSelector) String() string {
	var b strings.Builder
	for _, s := range c {
		b.WriteString(s.String())
	}
	return b.String()
}

func (c ComplexSelector) String() string {
	var b strings.Builder
	for _, part := range c {
		b.WriteString(part.Compound.String())
		b.WriteString(part.Combinator.String())
	}
	return b.String()
}

func (l SelectorList) String() string {
	chunks := make([]string, len(l))
	for i, c := range l {
		chunks[i] = c.String()
	}
	return strings.Join(chunks, ", ")
}
