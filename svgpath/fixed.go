package svgpath

import "golang.org/x/image/math/fixed"

// Fixed converts the point to the fixed point representation
// used by drivers.
func (p Point) Fixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// FromFixed is the inverse of Point.Fixed.
func FromFixed(a fixed.Point26_6) Point {
	return Point{float64(a.X) / 64, float64(a.Y) / 64}
}
