// Implements a PDF backend to render SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgtree"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgscene.Driver  = Renderer{}
	_ svgscene.Filler  = (*filler)(nil)
	_ svgscene.Stroker = (*stroker)(nil)
)

// pxToPt converts CSS pixels (96 per inch) to PDF points (72 per inch)
const pxToPt = 72. / 96

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// SetupDrawers implements svgscene.Driver. Filling and stroking
// are written as two separated PDF paths.
func (r Renderer) SetupDrawers(willFill, willStroke bool) (svgscene.Filler, svgscene.Stroker) {
	var (
		f svgscene.Filler
		s svgscene.Stroker
	)
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

// AddScene adds a page, sized after the scene, and draws
// the scene on it.
// `pdf` is expected to use points as unit.
func AddScene(pdf *gofpdf.Fpdf, scene *svgscene.Scene) error {
	w, h := scene.Width*pxToPt, scene.Height*pxToPt
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid page size %gx%g", w, h)
	}
	if scene.ViewBox.W <= 0 || scene.ViewBox.H <= 0 {
		return fmt.Errorf("invalid view box %v", scene.ViewBox)
	}
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
	scene.SetTarget(0, 0, w, h)
	scene.Draw(NewRenderer(pdf), 1)
	return pdf.Error()
}

// RenderSVGToPDF reads a document and writes it as a one page
// PDF file at `out`.
func RenderSVGToPDF(r io.Reader, out string, opts svgtree.Options) error {
	tree, err := svgtree.Load(r, opts)
	if err != nil {
		return err
	}
	scene, err := svgscene.Build(tree, opts)
	if err != nil {
		return err
	}
	pdf := gofpdf.New("P", "pt", "", "")
	if err = AddScene(pdf, scene); err != nil {
		return err
	}
	svgtree.Logger().Debug("pdf written", zap.String("file", out), zap.Int("items", len(scene.Items)))
	return pdf.OutputFileAndClose(out)
}

func fixedTof(a fixed.Point26_6) svgpath.Point {
	return svgpath.Point{X: float64(a.X) / 64, Y: float64(a.Y) / 64}
}

// pather records the path commands, which are
// written when drawing
type pather struct {
	pdf  *gofpdf.Fpdf
	path svgpath.Path // in page coordinates
}

func (p *pather) Clear() { p.path = p.path[:0] }

func (p *pather) Start(a fixed.Point26_6) { p.path = append(p.path, svgpath.MoveTo{P: fixedTof(a)}) }

func (p *pather) Line(b fixed.Point26_6) { p.path = append(p.path, svgpath.LineTo{P: fixedTof(b)}) }

func (p *pather) CubeBezier(b, c, d fixed.Point26_6) {
	p.path = append(p.path, svgpath.CubicTo{C1: fixedTof(b), C2: fixedTof(c), P: fixedTof(d)})
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.path = append(p.path, svgpath.Close{})
	}
}

// writePath outputs the path, without painting it
func (p *pather) writePath() {
	for _, seg := range p.path {
		switch seg := seg.(type) {
		case svgpath.MoveTo:
			p.pdf.MoveTo(seg.P.X, seg.P.Y)
		case svgpath.LineTo:
			p.pdf.LineTo(seg.P.X, seg.P.Y)
		case svgpath.CubicTo:
			p.pdf.CurveBezierCubicTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.P.X, seg.P.Y)
		case svgpath.Close:
			p.pdf.ClosePath()
		}
	}
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
	gradient          svgscene.PaintServer // nil for plain colors
	opacity           float64
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) SetColor(paint svgscene.PaintServer, opacity float64) {
	f.gradient, f.opacity = nil, opacity
	switch paint := paint.(type) {
	case svgscene.Solid:
		f.pdf.SetFillColor(int(paint.Color.R), int(paint.Color.G), int(paint.Color.B))
		f.pdf.SetAlpha(clamp01(opacity*paint.Opacity*float64(paint.Color.A)/255), "")
	case svgscene.LinearGradient, svgscene.RadialGradient:
		f.gradient = paint
	}
}

func (f *filler) Draw() {
	if len(f.path) == 0 {
		return
	}
	if f.gradient != nil {
		f.drawGradient()
		return
	}
	f.writePath()
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

// drawGradient clips to the path and paints the gradient in its bounding box.
// PDF axial and radial shadings only use the first and last stops.
func (f *filler) drawGradient() {
	bbox, ok := f.path.Bounds()
	if !ok || bbox.W <= 0 || bbox.H <= 0 {
		return
	}
	var (
		stops []svgscene.GradientStop
		m     svgpath.Matrix2D
	)
	switch g := f.gradient.(type) {
	case svgscene.LinearGradient:
		stops, m = g.Stops, g.Matrix
	case svgscene.RadialGradient:
		stops, m = g.Stops, g.Matrix
	}
	if len(stops) == 0 {
		return
	}
	first, last := stops[0], stops[len(stops)-1]
	if m.Det() == 0 {
		// degenerated: paint the last color
		f.SetColor(svgscene.Solid{Color: last.Color, Opacity: last.Opacity}, f.opacity)
		f.gradient = nil
		f.Draw()
		return
	}
	alpha := (first.Opacity*float64(first.Color.A) + last.Opacity*float64(last.Color.A)) / (2 * 255)
	f.pdf.SetAlpha(clamp01(f.opacity*alpha), "")

	f.pdf.ClipRect(bbox.X, bbox.Y, bbox.W, bbox.H, false)
	f.writePath()
	clipOp := "W* n"
	if f.useNonZeroWinding {
		clipOp = "W n"
	}
	f.pdf.DrawPath(clipOp)

	c1, c2 := first.Color, last.Color
	switch g := f.gradient.(type) {
	case svgscene.LinearGradient:
		p1, p2 := linearVector(g)
		x1, y1 := normalize(bbox, p1)
		x2, y2 := normalize(bbox, p2)
		f.pdf.LinearGradient(bbox.X, bbox.Y, bbox.W, bbox.H, int(c1.R), int(c1.G), int(c1.B), int(c2.R), int(c2.G), int(c2.B), x1, y1, x2, y2)
	case svgscene.RadialGradient:
		// a square, so that the circle is not distorted
		side := math.Max(bbox.W, bbox.H)
		square := svgpath.Bounds{X: bbox.X, Y: bbox.Y, W: side, H: side}
		fx, fy := normalize(square, g.Matrix.TransformPoint(svgpath.Point{X: g.FX, Y: g.FY}))
		cx, cy := normalize(square, g.Matrix.TransformPoint(svgpath.Point{X: g.CX, Y: g.CY}))
		r := g.R * math.Sqrt(math.Abs(g.Matrix.Det())) / side
		f.pdf.RadialGradient(square.X, square.Y, side, side, int(c1.R), int(c1.G), int(c1.B), int(c2.R), int(c2.G), int(c2.B), fx, fy, cx, cy, r)
	}
	f.pdf.ClipEnd()
}

// linearVector returns the gradient vector in page space.
// Since isolines are perpendicular to the vector in gradient space,
// the end point is not simply mapped by the matrix.
func linearVector(g svgscene.LinearGradient) (p1, p2 svgpath.Point) {
	d := svgpath.Point{X: g.X2 - g.X1, Y: g.Y2 - g.Y1}
	norm2 := d.X*d.X + d.Y*d.Y
	p1 = g.Matrix.TransformPoint(svgpath.Point{X: g.X1, Y: g.Y1})
	// gradient of t(x) = (M^-1 x - p1).d / |d|², that is M^-T d / |d|²
	inv := g.Matrix.Invert()
	grad := svgpath.Point{X: (inv.A*d.X + inv.B*d.Y) / norm2, Y: (inv.C*d.X + inv.D*d.Y) / norm2}
	gn2 := grad.X*grad.X + grad.Y*grad.Y
	p2 = svgpath.Point{X: p1.X + grad.X/gn2, Y: p1.Y + grad.Y/gn2}
	return p1, p2
}

// normalize returns coordinates relative to `b`, with
// (0, 0) at the lower left corner and (1, 1) at the upper right one.
func normalize(b svgpath.Bounds, p svgpath.Point) (float64, float64) {
	return (p.X - b.X) / b.W, 1 - (p.Y-b.Y)/b.H
}

// implements the stroking operation
type stroker struct {
	pather
}

var (
	capStyles = [...]string{
		svgscene.NilCap:       "butt",
		svgscene.ButtCap:      "butt",
		svgscene.SquareCap:    "square",
		svgscene.RoundCap:     "round",
		svgscene.CubicCap:     "round",
		svgscene.QuadraticCap: "round",
	}
	joinStyles = [...]string{
		svgscene.Arc:       "round",
		svgscene.Round:     "round",
		svgscene.Bevel:     "bevel",
		svgscene.Miter:     "miter",
		svgscene.MiterClip: "miter",
		svgscene.ArcClip:   "miter",
	}
)

func (s *stroker) SetStrokeOptions(options svgscene.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	capMode := options.Join.TrailLineCap
	if capMode == svgscene.NilCap {
		capMode = options.Join.LeadLineCap
	}
	if int(capMode) < len(capStyles) {
		s.pdf.SetLineCapStyle(capStyles[capMode])
	}
	if int(options.Join.LineJoin) < len(joinStyles) {
		s.pdf.SetLineJoinStyle(joinStyles[options.Join.LineJoin])
	}
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

// gradients are approximated by the blend of their extreme stops
func blend(stops []svgscene.GradientStop) (color.NRGBA, float64) {
	if len(stops) == 0 {
		return color.NRGBA{}, 0
	}
	a, b := stops[0], stops[len(stops)-1]
	mix := func(u, v uint8) uint8 { return uint8((int(u) + int(v) + 1) / 2) }
	return color.NRGBA{mix(a.Color.R, b.Color.R), mix(a.Color.G, b.Color.G), mix(a.Color.B, b.Color.B), mix(a.Color.A, b.Color.A)},
		(a.Opacity + b.Opacity) / 2
}

func (s *stroker) SetColor(paint svgscene.PaintServer, opacity float64) {
	var (
		c  color.NRGBA
		op float64
	)
	switch paint := paint.(type) {
	case svgscene.Solid:
		c, op = paint.Color, paint.Opacity
	case svgscene.LinearGradient:
		c, op = blend(paint.Stops)
		svgtree.Logger().Debug("gradient stroke approximated by a plain color")
	case svgscene.RadialGradient:
		c, op = blend(paint.Stops)
		svgtree.Logger().Debug("gradient stroke approximated by a plain color")
	}
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(clamp01(opacity*op*float64(c.A)/255), "")
}

func (s *stroker) Draw() {
	if len(s.path) == 0 {
		return
	}
	s.writePath()
	s.pdf.DrawPath("D")
}
