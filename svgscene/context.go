// Compiles a loaded SVG tree into a flat list of drawing
// items (normalized path, resolved paint, transform and stroke
// parameters), which can then be consumed by painting drivers.
// See for example svgscene/svgraster or svgscene/svgpdf .
package svgscene

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgtree"
)

var (
	// ErrUnsupportedTransform is returned when merging the bounding
	// box of an element transformed by something else than
	// a translation and a uniform scale.
	ErrUnsupportedTransform = errors.New("unsupported transform for bounding box")
	// ErrUnresolvedReference is returned when a paint refers to
	// a missing element, and no fallback is provided.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// Context gathers what is needed to resolve the geometry
// and the paint of the elements of a tree.
type Context struct {
	Tree     *svgtree.Tree
	Styles   *svgtree.Cascade
	Viewport svgtree.Viewport // reference for percentages
}

// NewContext uses the root element of `tree` to
// setup the viewport.
func NewContext(tree *svgtree.Tree) (*Context, error) {
	vb, w, h, err := rootGeometry(tree)
	if err != nil {
		return nil, err
	}
	vp := svgtree.Viewport{W: vb.W, H: vb.H}
	if vp.W == 0 || vp.H == 0 {
		vp = svgtree.Viewport{W: w, H: h}
	}
	return &Context{Tree: tree, Styles: svgtree.NewCascade(tree), Viewport: vp}, nil
}

// rootGeometry returns the view box and the size of the document.
// A missing view box defaults to (0, 0, width, height) and
// a missing size to the view box size.
func rootGeometry(tree *svgtree.Tree) (viewBox svgpath.Bounds, width, height float64, err error) {
	root := tree.Element(tree.Root)
	if v, ok := root.Attrs["viewBox"]; ok {
		nums, err := svgpath.ParseNumbers(v)
		if err != nil {
			return viewBox, 0, 0, fmt.Errorf("invalid viewBox: %w", err)
		}
		if len(nums) != 4 {
			return viewBox, 0, 0, fmt.Errorf("invalid viewBox %q: expected 4 numbers", v)
		}
		if nums[2] < 0 || nums[3] < 0 {
			return viewBox, 0, 0, fmt.Errorf("invalid viewBox %q: negative size", v)
		}
		viewBox = svgpath.Bounds{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}
	}

	size := func(attr string, total float64) (float64, error) {
		v, ok := root.Attrs[attr]
		if !ok || v == "auto" {
			return total, nil
		}
		l, err := svgtree.ParseLength(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", attr, err)
		}
		return l.ResolveIn(total), nil
	}
	if width, err = size("width", viewBox.W); err != nil {
		return
	}
	if height, err = size("height", viewBox.H); err != nil {
		return
	}
	if viewBox.W == 0 && viewBox.H == 0 {
		viewBox.W, viewBox.H = width, height
	}
	return viewBox, width, height, nil
}

// length resolves the attribute `attr` of the element `id`,
// returning `def` when it is missing.
func (c *Context) length(id svgtree.NodeID, attr string, axis svgtree.Axis, def float64) (float64, error) {
	v, ok := c.Tree.Element(id).Attrs[attr]
	if !ok {
		return def, nil
	}
	f, err := c.Viewport.ParseLengthIn(v, axis)
	if err != nil {
		return 0, fmt.Errorf("invalid attribute %s=%q: %w", attr, v, err)
	}
	return f, nil
}

// lengths resolves several attributes in one go, all defaulting to 0.
func (c *Context) lengths(id svgtree.NodeID, attrs []string, axes []svgtree.Axis) ([]float64, error) {
	out := make([]float64, len(attrs))
	for i, attr := range attrs {
		var err error
		out[i], err = c.length(id, attr, axes[i], 0)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ElementTransform returns the transformation from the element
// coordinates to its parent ones: the transform attribute,
// followed by the x, y translation of <use> elements.
func (c *Context) ElementTransform(id svgtree.NodeID) (svgpath.Matrix2D, error) {
	el := c.Tree.Element(id)
	m, err := ParseTransform(el.Attrs["transform"])
	if err != nil {
		return m, err
	}
	if el.Kind == svgtree.Use || (el.Kind == svgtree.Svg && id != c.Tree.Root) {
		xy, err := c.lengths(id, []string{"x", "y"}, []svgtree.Axis{svgtree.Horizontal, svgtree.Vertical})
		if err != nil {
			return m, err
		}
		m = m.Translate(xy[0], xy[1])
	}
	return m, nil
}
