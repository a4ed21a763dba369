package svgpath

import (
	"errors"
	"fmt"
)

// ErrNotAbsolute is returned when a transformation requiring absolute
// coordinates is applied on a path with relative segments.
var ErrNotAbsolute = errors.New("path has relative segments")

// ToAbsolute returns a new path where every relative segment has been
// replaced by its absolute counterpart. The input is not modified.
func ToAbsolute(p Path) Path {
	out := make(Path, 0, len(p))
	var pen, start Point // current point and start of the sub-path
	for _, seg := range p {
		switch s := seg.(type) {
		case Close:
			pen = start
		case MoveTo:
			if s.Rel {
				s.P, s.Rel = pen.Add(s.P), false
			}
			pen, start = s.P, s.P
			seg = s
		case LineTo:
			if s.Rel {
				s.P, s.Rel = pen.Add(s.P), false
			}
			pen = s.P
			seg = s
		case HLineTo:
			if s.Rel {
				s.X, s.Rel = pen.X+s.X, false
			}
			pen.X = s.X
			seg = s
		case VLineTo:
			if s.Rel {
				s.Y, s.Rel = pen.Y+s.Y, false
			}
			pen.Y = s.Y
			seg = s
		case CubicTo:
			if s.Rel {
				s.C1, s.C2, s.P, s.Rel = pen.Add(s.C1), pen.Add(s.C2), pen.Add(s.P), false
			}
			pen = s.P
			seg = s
		case SmoothCubicTo:
			if s.Rel {
				s.C2, s.P, s.Rel = pen.Add(s.C2), pen.Add(s.P), false
			}
			pen = s.P
			seg = s
		case QuadTo:
			if s.Rel {
				s.C, s.P, s.Rel = pen.Add(s.C), pen.Add(s.P), false
			}
			pen = s.P
			seg = s
		case SmoothQuadTo:
			if s.Rel {
				s.P, s.Rel = pen.Add(s.P), false
			}
			pen = s.P
			seg = s
		case ArcTo:
			if s.Rel {
				s.P, s.Rel = pen.Add(s.P), false
			}
			pen = s.P
			seg = s
		default:
			panic(fmt.Sprintf("svgpath: unexpected segment type %T", seg))
		}
		out = append(out, seg)
	}
	return out
}

// line returns the cubic equivalent of the straight line from `a` to `b`,
// with control points at 1/3 and 2/3 of the segment.
func line(a, b Point) CubicTo {
	d := b.Sub(a)
	return CubicTo{C1: a.Add(d.Scale(1. / 3)), C2: a.Add(d.Scale(2. / 3)), P: b}
}

// quadratic to cubic degree elevation
func elevate(p0, q, p1 Point) CubicTo {
	return CubicTo{
		C1: p0.Add(q.Sub(p0).Scale(2. / 3)),
		C2: p1.Add(q.Sub(p1).Scale(2. / 3)),
		P:  p1,
	}
}

// ToCubicOnly reduces the path to MoveTo, CubicTo and Close segments,
// with absolute coordinates. The input is not modified.
// It is idempotent: a normalized path is returned unchanged.
func ToCubicOnly(p Path) Path { return ToCubicOnlyClose(p, true) }

// ToCubicOnlyClose is the same as ToCubicOnly, but when `emitClose` is false,
// the close segments are replaced by an explicit (straight) cubic curve
// back to the start of the sub-path.
func ToCubicOnlyClose(p Path, emitClose bool) Path {
	const (
		prevNone uint8 = iota
		prevCubic
		prevQuad
	)
	var (
		out        = make(Path, 0, len(p))
		pen, start Point
		lastCtrl   Point // last control point of a curve, for smooth variants
		prev       uint8 // kind of curve for lastCtrl
	)
	for _, seg := range ToAbsolute(p) {
		next := prevNone
		switch s := seg.(type) {
		case Close:
			if emitClose {
				out = append(out, s)
			} else if pen != start {
				out = append(out, line(pen, start))
			}
			pen = start
		case MoveTo:
			out = append(out, s)
			pen, start = s.P, s.P
		case LineTo:
			out = append(out, line(pen, s.P))
			pen = s.P
		case HLineTo:
			end := Point{s.X, pen.Y}
			out = append(out, line(pen, end))
			pen = end
		case VLineTo:
			end := Point{pen.X, s.Y}
			out = append(out, line(pen, end))
			pen = end
		case CubicTo:
			out = append(out, s)
			pen, lastCtrl, next = s.P, s.C2, prevCubic
		case SmoothCubicTo:
			c1 := pen
			if prev == prevCubic {
				c1 = reflect(lastCtrl, pen)
			}
			out = append(out, CubicTo{C1: c1, C2: s.C2, P: s.P})
			pen, lastCtrl, next = s.P, s.C2, prevCubic
		case QuadTo:
			out = append(out, elevate(pen, s.C, s.P))
			pen, lastCtrl, next = s.P, s.C, prevQuad
		case SmoothQuadTo:
			c := pen
			if prev == prevQuad {
				c = reflect(lastCtrl, pen)
			}
			out = append(out, elevate(pen, c, s.P))
			pen, lastCtrl, next = s.P, c, prevQuad
		case ArcTo:
			out = appendArc(out, pen, s)
			pen = s.P
		default:
			panic(fmt.Sprintf("svgpath: unexpected segment type %T", seg))
		}
		prev = next
	}
	return out
}

// ApplyMatrix returns a new path with every point transformed by `m`.
// The path must be absolute, otherwise ErrNotAbsolute is returned.
// Horizontal and vertical lines only project their free coordinate,
// so that they keep their kind.
func ApplyMatrix(p Path, m Matrix2D) (Path, error) {
	out := make(Path, len(p))
	for i, seg := range p {
		if IsRelative(seg) {
			return nil, fmt.Errorf("segment %d (%s): %w", i, seg.Kind(), ErrNotAbsolute)
		}
		switch s := seg.(type) {
		case Close:
		case MoveTo:
			s.P = m.TransformPoint(s.P)
			seg = s
		case LineTo:
			s.P = m.TransformPoint(s.P)
			seg = s
		case HLineTo:
			s.X = m.A*s.X + m.E
			seg = s
		case VLineTo:
			s.Y = m.D*s.Y + m.F
			seg = s
		case CubicTo:
			s.C1, s.C2, s.P = m.TransformPoint(s.C1), m.TransformPoint(s.C2), m.TransformPoint(s.P)
			seg = s
		case SmoothCubicTo:
			s.C2, s.P = m.TransformPoint(s.C2), m.TransformPoint(s.P)
			seg = s
		case QuadTo:
			s.C, s.P = m.TransformPoint(s.C), m.TransformPoint(s.P)
			seg = s
		case SmoothQuadTo:
			s.P = m.TransformPoint(s.P)
			seg = s
		case ArcTo:
			seg = m.transformArc(s)
		default:
			panic(fmt.Sprintf("svgpath: unexpected segment type %T", seg))
		}
		out[i] = seg
	}
	return out, nil
}
