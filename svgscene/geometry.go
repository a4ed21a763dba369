package svgscene

import (
	"fmt"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgtree"
)

const (
	axisX = svgtree.Horizontal
	axisY = svgtree.Vertical
	axisD = svgtree.Diagonal
)

// radii returns rx and ry, each one defaulting to the other
// when missing.
func (c *Context) radii(id svgtree.NodeID) (rx, ry float64, err error) {
	el := c.Tree.Element(id)
	_, hasRx := el.Attrs["rx"]
	_, hasRy := el.Attrs["ry"]
	if rx, err = c.length(id, "rx", axisX, 0); err != nil {
		return
	}
	if ry, err = c.length(id, "ry", axisY, 0); err != nil {
		return
	}
	if !hasRx {
		rx = ry
	}
	if !hasRy {
		ry = rx
	}
	return rx, ry, nil
}

// ShapePath returns the (not normalized) path drawn by the element `id`,
// which is empty for elements which are not shapes, or
// which are disabled by their attributes (like a zero radius).
func (c *Context) ShapePath(id svgtree.NodeID) (svgpath.Path, error) {
	el := c.Tree.Element(id)
	switch el.Kind {
	case svgtree.Path:
		p, err := svgpath.Parse(el.Attrs["d"])
		if err != nil {
			return nil, fmt.Errorf("invalid path data: %w", err)
		}
		return p, nil
	case svgtree.Rect:
		vals, err := c.lengths(id, []string{"x", "y", "width", "height"}, []svgtree.Axis{axisX, axisY, axisX, axisY})
		if err != nil {
			return nil, err
		}
		rx, ry, err := c.radii(id)
		if err != nil {
			return nil, err
		}
		return svgpath.RectPath(vals[0], vals[1], vals[2], vals[3], rx, ry), nil
	case svgtree.Circle:
		vals, err := c.lengths(id, []string{"cx", "cy", "r"}, []svgtree.Axis{axisX, axisY, axisD})
		if err != nil {
			return nil, err
		}
		return svgpath.EllipsePath(vals[0], vals[1], vals[2], vals[2]), nil
	case svgtree.Ellipse:
		vals, err := c.lengths(id, []string{"cx", "cy"}, []svgtree.Axis{axisX, axisY})
		if err != nil {
			return nil, err
		}
		rx, ry, err := c.radii(id)
		if err != nil {
			return nil, err
		}
		return svgpath.EllipsePath(vals[0], vals[1], rx, ry), nil
	case svgtree.Line:
		vals, err := c.lengths(id, []string{"x1", "y1", "x2", "y2"}, []svgtree.Axis{axisX, axisY, axisX, axisY})
		if err != nil {
			return nil, err
		}
		return svgpath.LinePath(vals[0], vals[1], vals[2], vals[3]), nil
	case svgtree.Polyline, svgtree.Polygon:
		points, err := svgpath.ParsePoints(el.Attrs["points"])
		if err != nil {
			return nil, fmt.Errorf("invalid points: %w", err)
		}
		if len(points) < 2 {
			return nil, nil
		}
		return svgpath.PolyPath(points, el.Kind == svgtree.Polygon), nil
	default:
		return nil, nil
	}
}
