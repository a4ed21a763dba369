package svgpath

import "math"

// This file implements the transformation from
// high level shapes to their path equivalent.
// The returned paths are absolute, and use arcs for
// the rounded parts.

// RectPath returns the path of the rectangle (x, y, w, h), with corners
// rounded by rx in the x axis and ry in the y axis.
// Radii are clamped to half the sides.
func RectPath(x, y, w, h, rx, ry float64) Path {
	if w <= 0 || h <= 0 {
		return nil
	}
	rx, ry = math.Min(math.Abs(rx), w/2), math.Min(math.Abs(ry), h/2)
	maxX, maxY := x+w, y+h
	var p Path
	if rx == 0 || ry == 0 {
		p.Start(Point{x, y})
		p = append(p, HLineTo{X: maxX}, VLineTo{Y: maxY}, HLineTo{X: x})
		p.Stop(true)
		return p
	}
	p.Start(Point{x + rx, y})
	p = append(p, HLineTo{X: maxX - rx})
	p.Arc(rx, ry, 0, false, true, Point{maxX, y + ry})
	p = append(p, VLineTo{Y: maxY - ry})
	p.Arc(rx, ry, 0, false, true, Point{maxX - rx, maxY})
	p = append(p, HLineTo{X: x + rx})
	p.Arc(rx, ry, 0, false, true, Point{x, maxY - ry})
	p = append(p, VLineTo{Y: y + ry})
	p.Arc(rx, ry, 0, false, true, Point{x + rx, y})
	p.Stop(true)
	return p
}

// EllipsePath returns the path of the ellipse centered at (cx, cy),
// made of four quarter arcs.
func EllipsePath(cx, cy, rx, ry float64) Path {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	var p Path
	p.Start(Point{cx + rx, cy})
	p.Arc(rx, ry, 0, false, true, Point{cx, cy + ry})
	p.Arc(rx, ry, 0, false, true, Point{cx - rx, cy})
	p.Arc(rx, ry, 0, false, true, Point{cx, cy - ry})
	p.Arc(rx, ry, 0, false, true, Point{cx + rx, cy})
	p.Stop(true)
	return p
}

// LinePath returns a path made of one line segment.
func LinePath(x1, y1, x2, y2 float64) Path {
	var p Path
	p.Start(Point{x1, y1})
	p.Line(Point{x2, y2})
	return p
}

// PolyPath returns the path joining the points, closed
// for polygons.
func PolyPath(points []Point, closed bool) Path {
	if len(points) == 0 {
		return nil
	}
	var p Path
	p.Start(points[0])
	for _, pt := range points[1:] {
		p.Line(pt)
	}
	p.Stop(closed)
	return p
}
