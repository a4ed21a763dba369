package svgtree

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestAttach(t *testing.T) {
	tree := NewTree()
	root := tree.NewElement(Svg, "")
	g := tree.NewElement(G, "")
	a := tree.NewElement(Rect, "")
	b := tree.NewElement(Circle, "")
	tree.Root = root

	test.Error(t, tree.Attach(root, g))
	test.Error(t, tree.Attach(g, a))
	test.Error(t, tree.Attach(g, b))

	test.T(t, tree.Parent(a), g)
	test.T(t, tree.Children(g), []NodeID{a, b})
	test.T(t, tree.PrevSibling(b), a)
	test.T(t, tree.PrevSibling(a), NoNode)
	test.T(t, tree.NextSibling(a), b)
	test.T(t, tree.NextSibling(b), NoNode)
	test.T(t, tree.Parent(root), NoNode)
	test.T(t, tree.Element(g).Tag, "g")

	// exclusive attachment
	err := tree.Attach(root, a)
	test.That(t, errors.Is(err, ErrAlreadyAttached))
	test.T(t, tree.Parent(a), g)

	// explicit re-parenting
	tree.Detach(a)
	test.T(t, tree.Parent(a), NoNode)
	test.T(t, tree.Children(g), []NodeID{b})
	test.Error(t, tree.Attach(root, a))
	test.T(t, tree.Children(root), []NodeID{g, a})

	// cycles
	tree.Detach(g)
	err = tree.Attach(b, g)
	test.That(t, errors.Is(err, ErrCycle))
}

func TestGetByID(t *testing.T) {
	tree := NewTree()
	root := tree.NewElement(Svg, "")
	tree.Root = root
	a := tree.NewElement(Rect, "")
	tree.Element(a).ID = "a"
	test.Error(t, tree.Attach(root, a))

	dup := tree.NewElement(Circle, "")
	tree.Element(dup).ID = "a"
	test.Error(t, tree.Attach(root, dup))

	synth := tree.NewElement(Path, "")
	tree.Element(synth).ID = "s"
	tree.Element(synth).Synthetic = true
	test.Error(t, tree.Attach(root, synth))

	test.T(t, tree.GetByID("a"), a)
	test.T(t, tree.GetByID("s"), NoNode)
	test.T(t, tree.GetByID("missing"), NoNode)
}

func TestClasses(t *testing.T) {
	var el Element
	el.AddClass("a")
	el.AddClass("b")
	el.AddClass("a")
	el.AddClass("")
	test.T(t, el.Classes, []string{"a", "b"})
	test.That(t, el.HasClass("b"))
	test.That(t, !el.HasClass("c"))
}

func TestKind(t *testing.T) {
	test.T(t, KindOf("linearGradient"), LinearGradient)
	test.T(t, KindOf("lineargradient"), Unknown)
	test.T(t, KindOf("clipPath"), ClipPath)
	test.T(t, Rect.String(), "rect")
	test.That(t, Polygon.IsShape())
	test.That(t, !G.IsShape())
}

func TestIDIndexKeptForSyntheticElements(t *testing.T) {
	tree := NewTree()
	root := tree.NewElement(Svg, "")
	tree.Root = root
	a := tree.NewElement(Rect, "")
	tree.Element(a).ID = "a"
	test.Error(t, tree.Attach(root, a))
	test.T(t, tree.GetByID("a"), a)

	synth := tree.NewElement(Rect, "")
	tree.Element(synth).ID = "b"
	tree.Element(synth).Synthetic = true
	test.Error(t, tree.Attach(root, synth))
	test.That(t, tree.ids != nil, "index reset by a synthetic element")
	test.T(t, tree.GetByID("b"), NoNode)

	b := tree.NewElement(Rect, "")
	tree.Element(b).ID = "b"
	test.Error(t, tree.Attach(root, b))
	test.T(t, tree.GetByID("b"), b)

	tree.Detach(a)
	test.T(t, tree.GetByID("a"), NoNode)
}
