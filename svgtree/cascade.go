package svgtree

import (
	"sort"
	"strings"

	"github.com/benoitkugler/svgscene/css"
	"go.uber.org/zap"
)

// Cascade resolves the computed style of the elements of a tree.
// Results are cached, since the tree is not modified after loading.
type Cascade struct {
	tree  *Tree
	cache map[NodeID]*ComputedStyle
}

func NewCascade(tree *Tree) *Cascade {
	return &Cascade{tree: tree, cache: make(map[NodeID]*ComputedStyle)}
}

// Get is a shortcut for Style(id)[p].Raw
func (c *Cascade) Get(id NodeID, p Property) string { return c.Style(id)[p].Raw }

// matchedRule is a rule matching an element,
// with the highest specificity of its matching selectors.
type matchedRule struct {
	specificity int
	sheet       int
	rule        *css.Rule
}

func (c *Cascade) matchingRules(id NodeID) []matchedRule {
	n := c.tree.Node(id)
	var out []matchedRule
	for si, sheet := range c.tree.Sheets {
		for ri := range sheet.Rules {
			rule := &sheet.Rules[ri]
			best := -1
			for _, sel := range rule.Selectors {
				if sp := sel.Specificity().Value(); sp > best && css.Match(sel, n) {
					best = sp
				}
			}
			if best != -1 {
				out = append(out, matchedRule{specificity: best, sheet: si, rule: rule})
			}
		}
	}
	// ascending priority: later items override earlier ones
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.specificity != b.specificity {
			return a.specificity < b.specificity
		}
		if a.sheet != b.sheet {
			return a.sheet < b.sheet
		}
		return a.rule.Order < b.rule.Order
	})
	return out
}

// localValues gathers the declarations of one element,
// per priority level.
type localValues struct {
	importantInline, importantRules [NumProperties]*string
	inline, rules, presentation     [NumProperties]*string
	// explicit "inherit" seen for the property
	inherit [NumProperties]bool
}

func (lv *localValues) add(decl css.Declaration, important, normal *[NumProperties]*string) {
	p, ok := PropertyByName(decl.Property)
	if !ok {
		logger.Debug("ignoring unsupported property", zap.String("property", decl.Property))
		return
	}
	value := strings.TrimSpace(decl.Value)
	if value == "inherit" {
		lv.inherit[p] = true
		return
	}
	if decl.Important && important != nil {
		important[p] = &value
	} else {
		normal[p] = &value
	}
}

func (c *Cascade) collect(id NodeID) *localValues {
	el := c.tree.Element(id)
	var lv localValues
	for _, decl := range el.Inline {
		lv.add(decl, &lv.importantInline, &lv.inline)
	}
	for _, m := range c.matchingRules(id) {
		for _, decl := range m.rule.Decls {
			lv.add(decl, &lv.importantRules, &lv.rules)
		}
	}
	for _, decl := range el.Presentation {
		lv.add(decl, nil, &lv.presentation)
	}
	return &lv
}

// Style returns the computed style of the element `id`.
// For each property, the first of the following is used:
//   - the parent value, if it is marked important
//   - an important inline declaration
//   - an important declaration of the matching rules, by specificity then source order
//   - an inline declaration
//   - a declaration of the matching rules
//   - a presentation attribute
//   - the parent value (or Defaults for the root and non inherited properties)
func (c *Cascade) Style(id NodeID) *ComputedStyle {
	if cs, ok := c.cache[id]; ok {
		return cs
	}

	parent := &Defaults
	if p := c.tree.Parent(id); p != NoNode {
		parent = c.Style(p)
	}

	lv := c.collect(id)
	var out ComputedStyle
	for p := Property(0); p < NumProperties; p++ {
		inherited := p.Inherited()
		if inherited && parent[p].Important {
			out[p] = parent[p]
			continue
		}
		if v := lv.importantInline[p]; v != nil {
			out[p] = Value{Raw: *v, Important: true}
		} else if v := lv.importantRules[p]; v != nil {
			out[p] = Value{Raw: *v, Important: true}
		} else if v := lv.inline[p]; v != nil {
			out[p] = Value{Raw: *v}
		} else if v := lv.rules[p]; v != nil {
			out[p] = Value{Raw: *v}
		} else if v := lv.presentation[p]; v != nil {
			out[p] = Value{Raw: *v}
		} else if inherited || lv.inherit[p] {
			out[p] = parent[p]
		} else {
			out[p] = Defaults[p]
		}
	}

	c.cache[id] = &out
	return &out
}
