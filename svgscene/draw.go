package svgscene

import (
	"math"

	"github.com/benoitkugler/svgscene/svgpath"
	"golang.org/x/image/math/fixed"
)

// Given a compiled scene, implements how to
// draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the paint for the current path. Gradients
	// are expressed in the same space as the points.
	SetColor(paint PaintServer, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	// This promise may enable the implementation to avoid duplicating filled and stroked paths
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // the miter cutoff value for miter, arc, miterclip and arcClip joinModes
	LineJoin     JoinMode      // JoinMode for curve segments
	TrailLineCap CapMode       // capping functions for leading and trailing line ends. If one is nil, the other function is used at both ends.

	LeadLineCap CapMode // not part of the standard specification
	LineGap     GapMode // not part of the standard specification. determines how a gap on the convex side of two lines joining is filled
}

type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line
	Join      JoinOptions
	Dash      DashOptions
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

// SetTarget sets the Transform matrix to draw within the bounds of the rectangle arguments
func (s *Scene) SetTarget(x, y, w, h float64) {
	scaleW := w / s.ViewBox.W
	scaleH := h / s.ViewBox.H
	s.Transform = svgpath.Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-s.ViewBox.X, -s.ViewBox.Y)
}

// Draw the compiled scene into the driver `d`, applying the scene Transform.
// All elements should be contained by the ViewBox rectangle of the Scene.
func (s *Scene) Draw(d Driver, opacity float64) {
	for i := range s.Items {
		s.Items[i].drawTransformed(d, opacity, s.Transform)
	}
}

// drawPath sends the path to the drawer, applying `m` on every point.
// `p` must be normalized.
func drawPath(d Drawer, p svgpath.Path, m svgpath.Matrix2D) {
	inPath := false
	for _, seg := range p {
		switch seg := seg.(type) {
		case svgpath.MoveTo:
			if inPath {
				d.Stop(false) // implicit close if currently in path.
			}
			d.Start(m.TransformPoint(seg.P).Fixed())
			inPath = true
		case svgpath.LineTo:
			d.Line(m.TransformPoint(seg.P).Fixed())
		case svgpath.CubicTo:
			d.CubeBezier(m.TransformPoint(seg.C1).Fixed(), m.TransformPoint(seg.C2).Fixed(), m.TransformPoint(seg.P).Fixed())
		case svgpath.Close:
			d.Stop(true)
			inPath = false
		}
	}
	if inPath {
		d.Stop(false)
	}
}

// drawTransformed draws the item into the driver while applying transform t.
func (it *Item) drawTransformed(d Driver, opacity float64, t svgpath.Matrix2D) {
	m := t.Mult(it.Matrix)

	filler, stroker := d.SetupDrawers(it.Fill != nil, it.Stroke != nil)
	if filler != nil { // nil paint disable filling
		filler.Clear()
		filler.SetWinding(it.FillRule == NonZero)
		drawPath(filler, it.Path, m)
		filler.SetColor(Transform(it.Fill, m), it.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil paint disable lining
		stroker.Clear()
		// lengths are scaled by the mean scale factor of the transform
		scale := math.Sqrt(math.Abs(m.Det()))
		var dash []float64
		if len(it.StrokeStyle.Dash) != 0 {
			dash = make([]float64, len(it.StrokeStyle.Dash))
			for i, v := range it.StrokeStyle.Dash {
				dash[i] = v * scale
			}
		}
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth: fToFixed(it.StrokeStyle.Width * scale),
			Join: JoinOptions{
				MiterLimit:   fToFixed(it.StrokeStyle.MiterLimit),
				LineJoin:     it.StrokeStyle.Join,
				LeadLineCap:  it.StrokeStyle.Cap,
				TrailLineCap: it.StrokeStyle.Cap,
				LineGap:      FlatGap,
			},
			Dash: DashOptions{Dash: dash, DashOffset: it.StrokeStyle.DashOffset * scale},
		})
		drawPath(stroker, it.Path, m)
		stroker.SetColor(Transform(it.Stroke, m), it.StrokeOpacity*opacity)
		stroker.Draw()
	}
}
