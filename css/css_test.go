package css

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
)

// testNode is a minimal tree implementing Node.
type testNode struct {
	tag       string
	id        string
	classes   []string
	attrs     map[string]string
	synthetic bool

	parent   *testNode
	children []*testNode
}

func el(tag, id string, classes ...string) *testNode {
	return &testNode{tag: tag, id: id, classes: classes, attrs: map[string]string{}}
}

func (n *testNode) add(children ...*testNode) *testNode {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

func (n *testNode) with(key, value string) *testNode {
	n.attrs[key] = value
	return n
}

func (n *testNode) Tag() string { return n.tag }
func (n *testNode) ID() string  { return n.id }

func (n *testNode) HasClass(name string) bool {
	for _, c := range n.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (n *testNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *testNode) Parent() (Node, bool) {
	if n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

func (n *testNode) index() int {
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (n *testNode) PrevSibling() (Node, bool) {
	if n.parent == nil {
		return nil, false
	}
	if i := n.index(); i > 0 {
		return n.parent.children[i-1], true
	}
	return nil, false
}

func (n *testNode) NextSibling() (Node, bool) {
	if n.parent == nil {
		return nil, false
	}
	if i := n.index(); i < len(n.parent.children)-1 {
		return n.parent.children[i+1], true
	}
	return nil, false
}

func (n *testNode) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *testNode) Synthetic() bool { return n.synthetic }

func mustSelector(t *testing.T, s string) ComplexSelector {
	t.Helper()
	list, err := ParseSelectorList(s)
	require.NoError(t, err)
	require.Len(t, list, 1)
	return list[0]
}

func TestReader(t *testing.T) {
	r := NewReader(" /* comment */ \tfoo-bar 'a\\'b' x")
	assert.True(t, r.SkipSpaceAndComments())
	assert.False(t, r.SkipSpaceAndComments())
	assert.Equal(t, "foo-bar", r.ReadIdent())
	r.SkipSpaceAndComments()
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "a'b", s)
	r.SkipSpaceAndComments()
	assert.Equal(t, byte('x'), r.Peek(0))
	assert.Equal(t, byte(0), r.Peek(1))
	assert.NoError(t, r.Expect('x'))
	assert.True(t, r.EOF())

	err = r.Expect('y')
	var perr *parse.Error
	assert.True(t, errors.As(err, &perr))
}

func TestParseSelectorList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SelectorList
	}{
		{
			name:  "type",
			input: "rect",
			expected: SelectorList{{
				{Compound: CompoundSelector{{Kind: Type, Name: "rect"}}},
			}},
		},
		{
			name:  "compound",
			input: "rect.a#b",
			expected: SelectorList{{
				{Compound: CompoundSelector{
					{Kind: Type, Name: "rect"},
					{Kind: Class, Name: "a"},
					{Kind: ID, Name: "b"},
				}},
			}},
		},
		{
			name:  "combinators",
			input: "svg g > rect + circle ~ path",
			expected: SelectorList{{
				{Compound: CompoundSelector{{Kind: Type, Name: "svg"}}, Combinator: CombinatorDescendant},
				{Compound: CompoundSelector{{Kind: Type, Name: "g"}}, Combinator: CombinatorChild},
				{Compound: CompoundSelector{{Kind: Type, Name: "rect"}}, Combinator: CombinatorNextSibling},
				{Compound: CompoundSelector{{Kind: Type, Name: "circle"}}, Combinator: CombinatorSubsequentSibling},
				{Compound: CompoundSelector{{Kind: Type, Name: "path"}}},
			}},
		},
		{
			name:  "list",
			input: ".a, #b",
			expected: SelectorList{
				{{Compound: CompoundSelector{{Kind: Class, Name: "a"}}}},
				{{Compound: CompoundSelector{{Kind: ID, Name: "b"}}}},
			},
		},
		{
			name:  "attribute on implicit universal",
			input: `[fill^="url" i]`,
			expected: SelectorList{{
				{Compound: CompoundSelector{{Kind: Universal, Attrs: []AttrSelector{
					{Name: "fill", Op: AttrPrefix, Value: "url", IgnoreCase: true},
				}}}},
			}},
		},
		{
			name:  "pseudo classes",
			input: "rect:first-child:not(.a, #b)",
			expected: SelectorList{{
				{Compound: CompoundSelector{{Kind: Type, Name: "rect", Pseudos: []PseudoClass{
					{Name: "first-child", Group: PseudoStructural},
					{Name: "not", Group: PseudoFunctional, Args: SelectorList{
						{{Compound: CompoundSelector{{Kind: Class, Name: "a"}}}},
						{{Compound: CompoundSelector{{Kind: ID, Name: "b"}}}},
					}},
				}}}},
			}},
		},
		{
			name:  "unknown pseudo class",
			input: "*:frobnicate(2n+1)",
			expected: SelectorList{{
				{Compound: CompoundSelector{{Kind: Universal, Pseudos: []PseudoClass{
					{Name: "frobnicate", Group: PseudoUnknown, Raw: "2n+1"},
				}}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelectorList(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSelectorListErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"rect >",
		".",
		"a,",
		"[x",
		"[x!=3]",
		"[x=3 q]",
		":not(.a",
		"rect{",
		"g *rect",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSelectorList(input)
			var perr *parse.Error
			assert.True(t, errors.As(err, &perr), "expected parse error, got %v", err)
		})
	}
}

func TestSelectorString(t *testing.T) {
	for _, input := range []string{
		"svg > g.a rect#b",
		`[x="1"]:first-child`,
		":not(.a, .b) + path",
	} {
		list, err := ParseSelectorList(input)
		require.NoError(t, err)
		again, err := ParseSelectorList(list.String())
		require.NoError(t, err)
		assert.Equal(t, list, again)
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		selector string
		expected Specificity
	}{
		{"*", Specificity{}},
		{"rect", Specificity{Type: 1}},
		{".b", Specificity{Class: 1}},
		{"#a", Specificity{ID: 1}},
		{"g > rect.a.b[x]", Specificity{Class: 3, Type: 2}},
		{"rect:hover", Specificity{Class: 1, Type: 1}},
		{":not(#a, .b)", Specificity{ID: 1}},
		{":where(#a) rect", Specificity{Type: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustSelector(t, tt.selector).Specificity())
		})
	}

	id := mustSelector(t, "#a").Specificity()
	class := mustSelector(t, ".b").Specificity()
	typ := mustSelector(t, "div").Specificity()
	assert.Greater(t, id.Value(), class.Value())
	assert.Greater(t, class.Value(), typ.Value())
	assert.Equal(t, 65536+2*256+3, Specificity{1, 2, 3}.Value())
}

func TestMatch(t *testing.T) {
	// <svg>
	//   <g id="layer" class="main">
	//     <rect class="a b" fill="url(#g)"/>
	//     <circle id="c" lang="en-US"/>
	//     <path/>
	//   </g>
	// </svg>
	rect := el("rect", "", "a", "b").with("fill", "url(#g)")
	circle := el("circle", "c").with("lang", "en-US")
	path := el("path", "")
	g := el("g", "layer", "main").add(rect, circle, path)
	svg := el("svg", "").add(g)

	tests := []struct {
		selector string
		node     *testNode
		expected bool
	}{
		{"*", path, true},
		{"rect", rect, true},
		{"circle", rect, false},
		{".a.b", rect, true},
		{".a.c", rect, false},
		{"#c", circle, true},
		{"svg rect", rect, true},
		{"svg > rect", rect, false},
		{"g > rect", rect, true},
		{"svg > g > .a", rect, true},
		{"rect + circle", circle, true},
		{"rect + path", path, false},
		{"rect ~ path", path, true},
		{"path ~ rect", rect, false},
		{"[fill]", rect, true},
		{"[fill]", circle, false},
		{`[fill="url(#g)"]`, rect, true},
		{"[class~=b]", rect, false}, // classes are not attributes of testNode
		{"[lang|=en]", circle, true},
		{"[lang^=en]", circle, true},
		{"[lang$=us]", circle, false},
		{"[lang$=us i]", circle, true},
		{"[lang*=x]", circle, false},
		{`[lang*="-"]`, circle, true},
		{"rect:first-child", rect, true},
		{"circle:first-child", circle, false},
		{"path:last-child", path, true},
		{"g:only-child", g, true},
		{"svg:root", svg, true},
		{"g:root", g, false},
		{"path:empty", path, true},
		{"g:empty", g, false},
		{"rect:not(.c)", rect, true},
		{"rect:not(.a)", rect, false},
		{":is(circle, path)", path, true},
		{"g:has(#c)", g, true},
		{"svg:has(.missing)", svg, false},
		{"rect:hover", rect, false},
		{"rect:nth-child(1)", rect, false},
		{"rect:unknown", rect, false},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(mustSelector(t, tt.selector), tt.node))
		})
	}
}

func TestMatchSynthetic(t *testing.T) {
	inner := el("rect", "r", "a")
	inner.synthetic = true
	use := el("use", "u").add(inner)
	el("svg", "").add(use)

	assert.False(t, Match(mustSelector(t, "rect"), inner))
	assert.False(t, Match(mustSelector(t, "*"), inner))

	// synthetic nodes are skipped as ancestors too
	child := el("circle", "")
	child.synthetic = true
	wrapper := el("g", "", "w")
	wrapper.synthetic = true
	wrapper.add(child)
	normal := el("path", "")
	wrapper.add(normal)
	assert.False(t, Match(mustSelector(t, ".w path"), normal))
	assert.True(t, Match(mustSelector(t, "path"), normal))
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Declaration
	}{
		{"empty", "", nil},
		{"simple", "fill:red", []Declaration{{Property: "fill", Value: "red"}}},
		{
			name:  "several",
			input: "fill: red; Stroke : blue ;stroke-width:2px;",
			expected: []Declaration{
				{Property: "fill", Value: "red"},
				{Property: "stroke", Value: "blue"},
				{Property: "stroke-width", Value: "2px"},
			},
		},
		{
			name:     "important",
			input:    "fill:red !important",
			expected: []Declaration{{Property: "fill", Value: "red", Important: true}},
		},
		{
			name:  "functions and lists",
			input: "fill: url(#g) none; stroke-dasharray: 1, 2 3",
			expected: []Declaration{
				{Property: "fill", Value: "url(#g) none"},
				{Property: "stroke-dasharray", Value: "1,2 3"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeclarations(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseDeclarations("fill red")
	assert.Error(t, err)
}

func TestParseStylesheet(t *testing.T) {
	sheet, err := ParseStylesheet(`
		/* header */
		.x { fill: red }
		@media print { rect { fill: green } }
		@import url(other.css);
		#y, g > rect { fill: blue !important; stroke: none; }
	`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 2)

	assert.Equal(t, 0, sheet.Rules[0].Order)
	assert.Equal(t, "x", sheet.Rules[0].Selectors[0][0].Compound[0].Name)
	assert.Equal(t, []Declaration{{Property: "fill", Value: "red"}}, sheet.Rules[0].Decls)

	assert.Equal(t, 1, sheet.Rules[1].Order)
	assert.Len(t, sheet.Rules[1].Selectors, 2)
	assert.Equal(t, "g > rect", sheet.Rules[1].Selectors[1].String())
	assert.Equal(t, []Declaration{
		{Property: "fill", Value: "blue", Important: true},
		{Property: "stroke", Value: "none"},
	}, sheet.Rules[1].Decls)
}

func TestParseStylesheetErrors(t *testing.T) {
	for _, input := range []string{
		"rect > { fill: red }",
		"rect { fill red }",
		".a { fill: red } }",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseStylesheet(input)
			assert.Error(t, err)
		})
	}
}
