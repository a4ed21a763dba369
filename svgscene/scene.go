package svgscene

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgtree"
	"go.uber.org/zap"
)

// FillRule selects the algorithm used to decide what is inside a path.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	if f == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Item is one drawing operation: a normalized path
// with its resolved paint.
type Item struct {
	Element svgtree.NodeID
	// Path only contains absolute MoveTo, CubicTo and Close segments.
	Path svgpath.Path
	// Fill and Stroke are nil when not painted.
	Fill, Stroke               PaintServer
	FillOpacity, StrokeOpacity float64
	FillRule                   FillRule
	// Matrix maps the path coordinates to the root user space.
	Matrix      svgpath.Matrix2D
	StrokeStyle StrokeParams
}

// Scene holds the drawing items of a document.
// See the `Draw` methods to use it.
type Scene struct {
	ViewBox       svgpath.Bounds
	Width, Height float64 // resolved width and height attributes of the root
	Items         []Item
	Titles        []string // Title elements collect here
	Descriptions  []string // Description elements collect here
	// Transform is applied on top of the items matrices when drawing.
	// It is the identity by default, see `SetTarget`.
	Transform svgpath.Matrix2D
}

// Build walks the (loaded) tree and compiles the elements
// which partake in the rendering into drawing items.
func Build(tree *svgtree.Tree, opts svgtree.Options) (*Scene, error) {
	ctx, err := NewContext(tree)
	if err != nil {
		return nil, err
	}
	vb, w, h, err := rootGeometry(tree)
	if err != nil {
		return nil, err
	}
	b := builder{
		ctx:   ctx,
		opts:  opts,
		scene: &Scene{ViewBox: vb, Width: w, Height: h, Transform: svgpath.Identity},
	}
	if err := b.walk(tree.Root, svgpath.Identity, 1); err != nil {
		return nil, err
	}
	svgtree.Logger().Debug("scene built", zap.Int("items", len(b.scene.Items)))
	return b.scene, nil
}

type builder struct {
	ctx   *Context
	opts  svgtree.Options
	scene *Scene
}

// handle applies the error mode to a recoverable problem on the element `id`
func (b *builder) handle(id svgtree.NodeID, err error) error {
	el := b.ctx.Tree.Element(id)
	return b.opts.ErrorMode.Handle(fmt.Sprintf("<%s>: %s", el.Tag, err), zap.String("tag", el.Tag), zap.String("id", el.ID))
}

// walk compiles `id` and its children. `m` is the transform
// of the parent and `opacity` the accumulated group opacity.
func (b *builder) walk(id svgtree.NodeID, m svgpath.Matrix2D, opacity float64) error {
	tree := b.ctx.Tree
	el := tree.Element(id)
	switch el.Kind {
	case svgtree.Title:
		b.scene.Titles = append(b.scene.Titles, strings.TrimSpace(el.Text))
		return nil
	case svgtree.Desc:
		b.scene.Descriptions = append(b.scene.Descriptions, strings.TrimSpace(el.Text))
		return nil
	case svgtree.Defs, svgtree.LinearGradient, svgtree.RadialGradient, svgtree.Stop,
		svgtree.Pattern, svgtree.ClipPath, svgtree.Mask, svgtree.Marker, svgtree.Filter, svgtree.Style:
		return nil // not rendered directly
	case svgtree.Symbol:
		// only rendered through <use>
		if parent := tree.Parent(id); parent == svgtree.NoNode || tree.Element(parent).Kind != svgtree.Use {
			return nil
		}
	case svgtree.Text, svgtree.Tspan:
		svgtree.Logger().Debug("text is not laid out", zap.String("id", el.ID))
		return nil
	}

	styles := b.ctx.Styles
	if strings.TrimSpace(styles.Get(id, svgtree.Display)) == "none" {
		return nil
	}
	elOpacity, err := parseOpacity(styles.Get(id, svgtree.Opacity))
	if err != nil {
		if err := b.handle(id, err); err != nil {
			return err
		}
		elOpacity = 1
	}
	opacity *= elOpacity

	// unknown elements (<a>, <switch>) are transparent containers
	if id != tree.Root && el.Kind != svgtree.Unknown {
		t, err := b.ctx.ElementTransform(id)
		if err != nil {
			return fmt.Errorf("<%s>: %w", el.Tag, err)
		}
		m = m.Mult(t)
	}

	if el.Kind.IsShape() {
		return b.shape(id, m, opacity)
	}
	for _, child := range tree.Children(id) {
		if err := b.walk(child, m, opacity); err != nil {
			return err
		}
	}
	return nil
}

// paint resolves the fill or stroke property `p` of the element `id`.
func (b *builder) paint(id svgtree.NodeID, p svgtree.Property) (PaintServer, error) {
	paint, err := ParsePaint(b.ctx.Styles.Get(id, p))
	if err != nil {
		return nil, b.handle(id, fmt.Errorf("invalid %s: %w", p, err))
	}
	return b.ctx.ResolvePaint(paint, id)
}

// opacity parses the property `p`, defaulting to 1 when invalid.
func (b *builder) opacity(id svgtree.NodeID, p svgtree.Property) (float64, error) {
	op, err := parseOpacity(b.ctx.Styles.Get(id, p))
	if err != nil {
		return 1, b.handle(id, fmt.Errorf("invalid %s: %w", p, err))
	}
	return op, nil
}

func (b *builder) shape(id svgtree.NodeID, m svgpath.Matrix2D, opacity float64) error {
	styles := b.ctx.Styles
	el := b.ctx.Tree.Element(id)
	if strings.TrimSpace(styles.Get(id, svgtree.Visibility)) != "visible" {
		return nil
	}
	path, err := b.ctx.ShapePath(id)
	if err != nil {
		return fmt.Errorf("<%s>: %w", el.Tag, err)
	}
	if len(path) == 0 {
		return nil
	}

	item := Item{
		Element:  id,
		Path:     svgpath.ToCubicOnlyClose(path, b.opts.EmitClose),
		Matrix:   m,
		FillRule: NonZero,
	}
	if strings.TrimSpace(styles.Get(id, svgtree.FillRule)) == "evenodd" {
		item.FillRule = EvenOdd
	}

	item.Fill, err = b.paint(id, svgtree.Fill)
	if err != nil {
		return fmt.Errorf("<%s>: %w", el.Tag, err)
	}
	item.Stroke, err = b.paint(id, svgtree.Stroke)
	if err != nil {
		return fmt.Errorf("<%s>: %w", el.Tag, err)
	}

	fillOpacity, err := b.opacity(id, svgtree.FillOpacity)
	if err != nil {
		return err
	}
	strokeOpacity, err := b.opacity(id, svgtree.StrokeOpacity)
	if err != nil {
		return err
	}
	item.FillOpacity, item.StrokeOpacity = fillOpacity*opacity, strokeOpacity*opacity

	if item.Stroke != nil {
		item.StrokeStyle, err = b.ctx.strokeParams(id, func(err error) error { return b.handle(id, err) })
		if err != nil {
			return err
		}
		if item.StrokeStyle.Width <= 0 {
			item.Stroke = nil
		}
	}
	if item.Fill == nil && item.Stroke == nil {
		return nil
	}
	b.scene.Items = append(b.scene.Items, item)
	return nil
}
