package svgpath

import (
	"math"
)

// compute the bounding box of a path, needed when using gradient with objectBoundingBox

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// Union returns the smallest box containing b and other.
func (b Bounds) Union(other Bounds) Bounds {
	minX, minY := math.Min(b.X, other.X), math.Min(b.Y, other.Y)
	maxX, maxY := math.Max(b.X+b.W, other.X+other.W), math.Max(b.Y+b.H, other.Y+other.H)
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// bX + c, a simple line
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

type cubicBezier [4]Point

// compute the t zeroing the derivative
func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubicDerivative(cu[0].X, cu[1].X, cu[2].X, cu[3].X)
	aY, bY, cY := cubicDerivative(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y)
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

// compute the point a time t
func (cu cubicBezier) evaluateCurve(t float64) Point {
	return Point{
		bezierSpline(cu[0].X, cu[1].X, cu[2].X, cu[3].X, t),
		bezierSpline(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y, t),
	}
}

type extent struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func newExtent() extent {
	return extent{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1), true}
}

func (e *extent) add(p Point) {
	e.minX = math.Min(e.minX, p.X)
	e.minY = math.Min(e.minY, p.Y)
	e.maxX = math.Max(e.maxX, p.X)
	e.maxY = math.Max(e.maxY, p.Y)
	e.empty = false
}

func (e *extent) addCubic(cu cubicBezier) {
	resX, resY := cu.criticalPoints()
	e.add(cu[0])
	e.add(cu[3])
	for _, t := range append(resX, resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		e.add(cu.evaluateCurve(t))
	}
}

// Bounds returns the exact extent of the path (control points
// of curves are not included). It returns false for empty paths.
func (p Path) Bounds() (Bounds, bool) {
	ext := newExtent()
	var pen, start Point
	for _, seg := range ToCubicOnly(p) {
		switch s := seg.(type) {
		case Close:
			pen = start
		case MoveTo:
			pen, start = s.P, s.P
			ext.add(pen)
		case CubicTo:
			ext.addCubic(cubicBezier{pen, s.C1, s.C2, s.P})
			pen = s.P
		}
	}
	if ext.empty {
		return Bounds{}, false
	}
	return Bounds{X: ext.minX, Y: ext.minY, W: ext.maxX - ext.minX, H: ext.maxY - ext.minY}, true
}

// BoundsOfPoints returns the smallest box containing all the points.
func BoundsOfPoints(points []Point) (Bounds, bool) {
	ext := newExtent()
	for _, p := range points {
		ext.add(p)
	}
	if ext.empty {
		return Bounds{}, false
	}
	return Bounds{X: ext.minX, Y: ext.minY, W: ext.maxX - ext.minX, H: ext.maxY - ext.minY}, true
}
