package svgscene

import (
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgtree"
)

// compute the bounding box of elements, needed when using gradient with objectBoundingBox

func box(minX, minY, maxX, maxY float64) *svgpath.Bounds {
	return &svgpath.Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ElementBBox returns the bounding box of the element `id`, in its
// own coordinate system (that is, without its transform attribute).
// It returns nil (and no error) for elements without geometry.
//
// Containers merge the boxes of their children, mapped
// by the children transform: only translations and uniform scales
// are supported, other transformations return ErrUnsupportedTransform.
func (c *Context) ElementBBox(id svgtree.NodeID) (*svgpath.Bounds, error) {
	el := c.Tree.Element(id)
	switch el.Kind {
	case svgtree.Rect:
		vals, err := c.lengths(id, []string{"x", "y", "width", "height"}, []svgtree.Axis{axisX, axisY, axisX, axisY})
		if err != nil {
			return nil, err
		}
		if vals[2] <= 0 || vals[3] <= 0 {
			return nil, nil
		}
		return &svgpath.Bounds{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
	case svgtree.Circle:
		vals, err := c.lengths(id, []string{"cx", "cy", "r"}, []svgtree.Axis{axisX, axisY, axisD})
		if err != nil {
			return nil, err
		}
		cx, cy, r := vals[0], vals[1], vals[2]
		if r <= 0 {
			return nil, nil
		}
		return box(cx-r, cy-r, cx+r, cy+r), nil
	case svgtree.Ellipse:
		vals, err := c.lengths(id, []string{"cx", "cy"}, []svgtree.Axis{axisX, axisY})
		if err != nil {
			return nil, err
		}
		rx, ry, err := c.radii(id)
		if err != nil {
			return nil, err
		}
		if rx <= 0 || ry <= 0 {
			return nil, nil
		}
		return box(vals[0]-rx, vals[1]-ry, vals[0]+rx, vals[1]+ry), nil
	case svgtree.Line:
		vals, err := c.lengths(id, []string{"x1", "y1", "x2", "y2"}, []svgtree.Axis{axisX, axisY, axisX, axisY})
		if err != nil {
			return nil, err
		}
		x1, y1, x2, y2 := vals[0], vals[1], vals[2], vals[3]
		return box(math.Min(x1, x2), math.Min(y1, y2), math.Max(x1, x2), math.Max(y1, y2)), nil
	case svgtree.Polyline, svgtree.Polygon:
		points, err := svgpath.ParsePoints(el.Attrs["points"])
		if err != nil {
			return nil, fmt.Errorf("invalid points: %w", err)
		}
		if b, ok := svgpath.BoundsOfPoints(points); ok {
			return &b, nil
		}
		return nil, nil
	case svgtree.Path:
		p, err := c.ShapePath(id)
		if err != nil {
			return nil, err
		}
		if b, ok := p.Bounds(); ok {
			return &b, nil
		}
		return nil, nil
	case svgtree.G, svgtree.Svg, svgtree.Use, svgtree.Symbol, svgtree.Unknown:
		return c.groupBBox(id)
	default:
		return nil, nil
	}
}

func (c *Context) groupBBox(id svgtree.NodeID) (*svgpath.Bounds, error) {
	var out *svgpath.Bounds
	for _, child := range c.Tree.Children(id) {
		if strings.TrimSpace(c.Styles.Get(child, svgtree.Display)) == "none" {
			continue
		}
		b, err := c.ElementBBox(child)
		if err != nil {
			return nil, err
		}
		if b == nil {
			continue
		}
		m := svgpath.Identity
		if c.Tree.Element(child).Kind != svgtree.Unknown {
			if m, err = c.ElementTransform(child); err != nil {
				return nil, err
			}
		}
		if m != svgpath.Identity {
			if !m.IsTranslateUniformScale() {
				return nil, fmt.Errorf("child <%s> of <%s>: %w", c.Tree.Element(child).Tag, c.Tree.Element(id).Tag, ErrUnsupportedTransform)
			}
			x, y := m.Transform(b.X, b.Y)
			b = &svgpath.Bounds{X: x, Y: y, W: b.W * m.A, H: b.H * m.A}
		}
		if out == nil {
			out = b
		} else {
			u := out.Union(*b)
			out = &u
		}
	}
	return out, nil
}
