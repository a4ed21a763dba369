package svgtree

import "github.com/benoitkugler/svgscene/css"

// node exposes a tree element to the selector engine.
type node struct {
	tree *Tree
	id   NodeID
}

// Node returns the selector view of the element `id`.
func (t *Tree) Node(id NodeID) css.Node { return node{t, id} }

func (n node) el() *Element { return &n.tree.elems[n.id] }

func (n node) Tag() string { return n.el().Tag }

func (n node) ID() string { return n.el().ID }

func (n node) HasClass(name string) bool { return n.el().HasClass(name) }

func (n node) Attr(name string) (string, bool) {
	v, ok := n.el().Attrs[name]
	return v, ok
}

func (n node) wrap(id NodeID) (css.Node, bool) {
	if id == NoNode {
		return nil, false
	}
	return node{n.tree, id}, true
}

func (n node) Parent() (css.Node, bool) { return n.wrap(n.tree.Parent(n.id)) }

func (n node) PrevSibling() (css.Node, bool) { return n.wrap(n.tree.PrevSibling(n.id)) }

func (n node) NextSibling() (css.Node, bool) { return n.wrap(n.tree.NextSibling(n.id)) }

func (n node) Children() []css.Node {
	children := n.el().Children
	out := make([]css.Node, len(children))
	for i, c := range children {
		out[i] = node{n.tree, c}
	}
	return out
}

func (n node) Synthetic() bool { return n.el().Synthetic }
