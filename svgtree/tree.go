// Package svgtree loads SVG documents into an element tree,
// and resolves the style of its elements, combining
// style sheets, inline styles, presentation attributes and inheritance.
package svgtree

import (
	"fmt"

	"github.com/benoitkugler/svgscene/css"
)

// Kind is the closed set of supported SVG elements.
type Kind uint8

const (
	Unknown Kind = iota // see Element.Tag
	Svg
	G
	Defs
	Use
	Symbol
	Path
	Rect
	Circle
	Ellipse
	Line
	Polyline
	Polygon
	Title
	Desc
	Style
	LinearGradient
	RadialGradient
	Stop
	Pattern
	Text
	Tspan
	Mask
	Filter
	ClipPath
	Marker
)

var kindTags = [...]string{
	Unknown:        "",
	Svg:            "svg",
	G:              "g",
	Defs:           "defs",
	Use:            "use",
	Symbol:         "symbol",
	Path:           "path",
	Rect:           "rect",
	Circle:         "circle",
	Ellipse:        "ellipse",
	Line:           "line",
	Polyline:       "polyline",
	Polygon:        "polygon",
	Title:          "title",
	Desc:           "desc",
	Style:          "style",
	LinearGradient: "linearGradient",
	RadialGradient: "radialGradient",
	Stop:           "stop",
	Pattern:        "pattern",
	Text:           "text",
	Tspan:          "tspan",
	Mask:           "mask",
	Filter:         "filter",
	ClipPath:       "clipPath",
	Marker:         "marker",
}

var tagKinds = func() map[string]Kind {
	out := make(map[string]Kind, len(kindTags))
	for k, tag := range kindTags {
		if tag != "" {
			out[tag] = Kind(k)
		}
	}
	return out
}()

// KindOf returns the Kind of an element tag, or Unknown.
func KindOf(tag string) Kind { return tagKinds[tag] }

func (k Kind) String() string {
	if int(k) < len(kindTags) {
		if k == Unknown {
			return "unknown"
		}
		return kindTags[k]
	}
	return fmt.Sprintf("<unknown Kind %d>", k)
}

// IsShape returns true for the basic shapes and paths.
func (k Kind) IsShape() bool {
	switch k {
	case Path, Rect, Circle, Ellipse, Line, Polyline, Polygon:
		return true
	}
	return false
}

// NodeID is an index into the element store of a Tree.
type NodeID int32

// NoNode is the absent element, used for the parent of the root.
const NoNode NodeID = -1

// Element is one node of the document.
type Element struct {
	Kind Kind
	Tag  string // raw tag name, useful for Unknown elements
	ID   string
	// Classes is ordered, without duplicates.
	Classes []string
	// Inline is the content of the style attribute.
	Inline []css.Declaration
	// Presentation holds the presentation attributes, like fill="red".
	Presentation []css.Declaration
	// Attrs stores every attribute, by local name.
	Attrs map[string]string
	// Text is the character data of the element.
	Text string

	Children []NodeID
	Parent   NodeID

	// Synthetic is true for the elements created by
	// instantiating <use> references.
	Synthetic bool
}

// Attr returns the attribute `name`, or an empty string.
func (e *Element) Attr(name string) string { return e.Attrs[name] }

// HasClass returns true if `class` is one of the element classes.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends `class` if not already present.
func (e *Element) AddClass(class string) {
	if class != "" && !e.HasClass(class) {
		e.Classes = append(e.Classes, class)
	}
}

// Tree is an SVG document, stored as an arena of elements.
// Elements refer to each other through their NodeID.
type Tree struct {
	elems []Element
	// Root is the outermost <svg> element
	Root NodeID
	// Sheets are the style sheets found in <style> elements,
	// in document order.
	Sheets []*css.Stylesheet

	ids map[string]NodeID // lazily built, reset when non synthetic elements move
}

func NewTree() *Tree {
	return &Tree{Root: NoNode}
}

// Len returns the number of elements in the store, attached or not.
func (t *Tree) Len() int { return len(t.elems) }

// NewElement adds a detached element to the store.
func (t *Tree) NewElement(kind Kind, tag string) NodeID {
	if tag == "" {
		tag = kindTags[kind]
	}
	t.elems = append(t.elems, Element{Kind: kind, Tag: tag, Parent: NoNode, Attrs: map[string]string{}})
	return NodeID(len(t.elems) - 1)
}

// Element returns the element `id`, which must be valid.
func (t *Tree) Element(id NodeID) *Element { return &t.elems[id] }

func (t *Tree) valid(id NodeID) bool { return 0 <= id && int(id) < len(t.elems) }

// Attach appends `child` to the children of `parent`.
// The child must not already have a parent: moving an element
// requires an explicit Detach.
func (t *Tree) Attach(parent, child NodeID) error {
	if !t.valid(parent) || !t.valid(child) {
		return fmt.Errorf("invalid node (%d, %d)", parent, child)
	}
	if t.elems[child].Parent != NoNode {
		return fmt.Errorf("attaching %d to %d: %w", child, parent, ErrAlreadyAttached)
	}
	for p := parent; p != NoNode; p = t.elems[p].Parent {
		if p == child {
			return fmt.Errorf("attaching %d to %d: %w", child, parent, ErrCycle)
		}
	}
	t.elems[child].Parent = parent
	t.elems[parent].Children = append(t.elems[parent].Children, child)
	t.invalidateIDs(child)
	return nil
}

// Detach removes `child` from its parent children, if any.
func (t *Tree) Detach(child NodeID) {
	parent := t.elems[child].Parent
	if parent == NoNode {
		return
	}
	children := t.elems[parent].Children
	for i, c := range children {
		if c == child {
			t.elems[parent].Children = append(children[:i:i], children[i+1:]...)
			break
		}
	}
	t.elems[child].Parent = NoNode
	t.invalidateIDs(child)
}

// synthetic elements are never indexed
func (t *Tree) invalidateIDs(moved NodeID) {
	if !t.elems[moved].Synthetic {
		t.ids = nil
	}
}

// Parent returns NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.elems[id].Parent }

func (t *Tree) Children(id NodeID) []NodeID { return t.elems[id].Children }

func (t *Tree) siblingIndex(id NodeID) int {
	parent := t.elems[id].Parent
	if parent == NoNode {
		return -1
	}
	for i, c := range t.elems[parent].Children {
		if c == id {
			return i
		}
	}
	return -1
}

// PrevSibling returns NoNode for a first child.
func (t *Tree) PrevSibling(id NodeID) NodeID {
	if i := t.siblingIndex(id); i > 0 {
		return t.elems[t.elems[id].Parent].Children[i-1]
	}
	return NoNode
}

// NextSibling returns NoNode for a last child.
func (t *Tree) NextSibling(id NodeID) NodeID {
	i := t.siblingIndex(id)
	if i == -1 {
		return NoNode
	}
	siblings := t.elems[t.elems[id].Parent].Children
	if i+1 < len(siblings) {
		return siblings[i+1]
	}
	return NoNode
}

// Walk calls `fn` on `id` and its descendants, in document order.
// Returning false from `fn` skips the children of the element.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, child := range t.elems[id].Children {
		t.Walk(child, fn)
	}
}

// GetByID returns the first non synthetic element, in document order,
// with the given id, or NoNode.
func (t *Tree) GetByID(id string) NodeID {
	if t.ids == nil {
		t.indexIDs()
	}
	if n, ok := t.ids[id]; ok {
		return n
	}
	return NoNode
}

func (t *Tree) indexIDs() {
	t.ids = make(map[string]NodeID)
	if t.Root == NoNode {
		return
	}
	t.Walk(t.Root, func(n NodeID) bool {
		el := &t.elems[n]
		if el.Synthetic {
			return false
		}
		if _, has := t.ids[el.ID]; el.ID != "" && !has {
			t.ids[el.ID] = n
		}
		return true
	})
}

// IsAncestor returns true if `ancestor` is a strict ancestor of `id`.
func (t *Tree) IsAncestor(ancestor, id NodeID) bool {
	for p := t.elems[id].Parent; p != NoNode; p = t.elems[p].Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}
