// Implements an abstract representation of
// svg paths: the path data mini-language is parsed
// into a sequence of segments, which can then be normalized
// to absolute cubic curves and consumed by painting drivers.
package svgpath

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position (or a vector) in user space.
type Point struct{ X, Y float64 }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// reflect returns the reflection of `ctrl` about `pen`
func reflect(ctrl, pen Point) Point { return pen.Scale(2).Sub(ctrl) }

// Kind enumerates the 19 segment variants of the path mini-language.
type Kind uint8

const (
	KindClose Kind = iota
	KindMoveToAbs
	KindMoveToRel
	KindLineToAbs
	KindLineToRel
	KindHLineToAbs
	KindHLineToRel
	KindVLineToAbs
	KindVLineToRel
	KindCubicToAbs
	KindCubicToRel
	KindSmoothCubicToAbs
	KindSmoothCubicToRel
	KindQuadToAbs
	KindQuadToRel
	KindSmoothQuadToAbs
	KindSmoothQuadToRel
	KindArcToAbs
	KindArcToRel
)

// Letter returns the path command letter of the kind.
func (k Kind) Letter() byte { return "ZMmLlHhVvCcSsQqTtAa"[k] }

func (k Kind) String() string { return string(k.Letter()) }

// Segment groups the different SVG path commands.
// The set of implementations is closed: Close, MoveTo, LineTo,
// HLineTo, VLineTo, CubicTo, SmoothCubicTo, QuadTo, SmoothQuadTo and ArcTo.
type Segment interface {
	Kind() Kind
	isSegment()
}

type Close struct{}

type MoveTo struct {
	P   Point
	Rel bool
}

type LineTo struct {
	P   Point
	Rel bool
}

type HLineTo struct {
	X   float64
	Rel bool
}

type VLineTo struct {
	Y   float64
	Rel bool
}

type CubicTo struct {
	C1, C2, P Point
	Rel       bool
}

// SmoothCubicTo has its first control point implied by
// the previous segment.
type SmoothCubicTo struct {
	C2, P Point
	Rel   bool
}

type QuadTo struct {
	C, P Point
	Rel  bool
}

// SmoothQuadTo has its control point implied by
// the previous segment.
type SmoothQuadTo struct {
	P   Point
	Rel bool
}

// ArcTo is an elliptical arc. Rotation is in degrees.
type ArcTo struct {
	Rx, Ry, Rotation float64
	LargeArc, Sweep  bool
	P                Point
	Rel              bool
}

func kindOf(abs Kind, rel bool) Kind {
	if rel {
		return abs + 1
	}
	return abs
}

func (Close) Kind() Kind           { return KindClose }
func (s MoveTo) Kind() Kind        { return kindOf(KindMoveToAbs, s.Rel) }
func (s LineTo) Kind() Kind        { return kindOf(KindLineToAbs, s.Rel) }
func (s HLineTo) Kind() Kind       { return kindOf(KindHLineToAbs, s.Rel) }
func (s VLineTo) Kind() Kind       { return kindOf(KindVLineToAbs, s.Rel) }
func (s CubicTo) Kind() Kind       { return kindOf(KindCubicToAbs, s.Rel) }
func (s SmoothCubicTo) Kind() Kind { return kindOf(KindSmoothCubicToAbs, s.Rel) }
func (s QuadTo) Kind() Kind        { return kindOf(KindQuadToAbs, s.Rel) }
func (s SmoothQuadTo) Kind() Kind  { return kindOf(KindSmoothQuadToAbs, s.Rel) }
func (s ArcTo) Kind() Kind         { return kindOf(KindArcToAbs, s.Rel) }

func (Close) isSegment()         {}
func (MoveTo) isSegment()        {}
func (LineTo) isSegment()        {}
func (HLineTo) isSegment()       {}
func (VLineTo) isSegment()       {}
func (CubicTo) isSegment()       {}
func (SmoothCubicTo) isSegment() {}
func (QuadTo) isSegment()        {}
func (SmoothQuadTo) isSegment()  {}
func (ArcTo) isSegment()         {}

// IsRelative returns true for the relative variants.
// Close is considered absolute.
func IsRelative(s Segment) bool {
	k := s.Kind()
	return k != KindClose && k%2 == 0
}

// Path describes a sequence of SVG path segments.
// Higher-level shapes may be reduced to a path.
type Path []Segment

// IsAbsolute returns true if no segment is relative.
func (p Path) IsAbsolute() bool {
	for _, seg := range p {
		if IsRelative(seg) {
			return false
		}
	}
	return true
}

func appendNumber(b []byte, f float64) []byte {
	if f == 0 { // avoid -0
		return append(b, '0')
	}
	return strconv.AppendFloat(b, f, 'g', -1, 64)
}

func appendPoint(b []byte, p Point) []byte {
	b = appendNumber(b, p.X)
	b = append(b, ',')
	return appendNumber(b, p.Y)
}

func appendFlag(b []byte, f bool) []byte {
	if f {
		return append(b, '1')
	}
	return append(b, '0')
}

// ToSVGPath returns a string representation of the path,
// which may be parsed back with `Parse`.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	var b []byte
	for i, seg := range p {
		b = append(b[:0], seg.Kind().Letter())
		switch seg := seg.(type) {
		case Close:
		case MoveTo:
			b = appendPoint(b, seg.P)
		case LineTo:
			b = appendPoint(b, seg.P)
		case HLineTo:
			b = appendNumber(b, seg.X)
		case VLineTo:
			b = appendNumber(b, seg.Y)
		case CubicTo:
			b = appendPoint(b, seg.C1)
			b = append(b, ' ')
			b = appendPoint(b, seg.C2)
			b = append(b, ' ')
			b = appendPoint(b, seg.P)
		case SmoothCubicTo:
			b = appendPoint(b, seg.C2)
			b = append(b, ' ')
			b = appendPoint(b, seg.P)
		case QuadTo:
			b = appendPoint(b, seg.C)
			b = append(b, ' ')
			b = appendPoint(b, seg.P)
		case SmoothQuadTo:
			b = appendPoint(b, seg.P)
		case ArcTo:
			b = appendNumber(b, seg.Rx)
			b = append(b, ',')
			b = appendNumber(b, seg.Ry)
			b = append(b, ' ')
			b = appendNumber(b, seg.Rotation)
			b = append(b, ' ')
			b = appendFlag(b, seg.LargeArc)
			b = append(b, ',')
			b = appendFlag(b, seg.Sweep)
			b = append(b, ' ')
			b = appendPoint(b, seg.P)
		}
		chunks[i] = string(b)
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Start starts a new sub-path at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo{P: a})
}

// Line adds a linear segment to the current sub-path.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo{P: b})
}

// CubeBezier adds a cubic segment to the current sub-path.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{C1: b, C2: c, P: d})
}

// Arc adds an elliptical arc to the current sub-path.
func (p *Path) Arc(rx, ry, rot float64, largeArc, sweep bool, to Point) {
	*p = append(*p, ArcTo{Rx: rx, Ry: ry, Rotation: rot, LargeArc: largeArc, Sweep: sweep, P: to})
}

// Stop joins the ends of the sub-path if `closeLoop` is true.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
