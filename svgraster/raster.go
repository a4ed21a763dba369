// Implements a raster backend to render SVG images,
// by wrapping rasterx.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgtree"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"
)

var _ svgscene.Driver = (*Renderer)(nil) // assert interface conformance

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// SetupDrawers implements svgscene.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgscene.Filler, svgscene.Stroker) {
	var (
		f svgscene.Filler
		s svgscene.Stroker
	)
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

// RasterSVGToImage uses a ScannerGV instance to render the
// document into an image and returns it.
// The image size is the document size, scaled by opts.DPI / 96.
func RasterSVGToImage(r io.Reader, opts svgtree.Options) (*image.RGBA, error) {
	tree, err := svgtree.Load(r, opts)
	if err != nil {
		return nil, err
	}
	scene, err := svgscene.Build(tree, opts)
	if err != nil {
		return nil, err
	}
	scale := opts.DPI / 96
	w, h := int(math.Ceil(scene.Width*scale)), int(math.Ceil(scene.Height*scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	if scene.ViewBox.W <= 0 || scene.ViewBox.H <= 0 {
		return nil, fmt.Errorf("invalid view box %v", scene.ViewBox)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	scene.SetTarget(0, 0, float64(w), float64(h))
	scene.Draw(renderer, 1.0)
	svgtree.Logger().Debug("rasterized", zap.Int("width", w), zap.Int("height", h), zap.Int("items", len(scene.Items)))
	return img, nil
}

// withOpacity returns `c` with its alpha multiplied by `opacity`
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * math.Max(0, math.Min(1, opacity))))
	return c
}

func toRasterxStops(stops []svgscene.GradientStop) []rasterx.GradStop {
	out := make([]rasterx.GradStop, len(stops))
	for i, s := range stops {
		// rasterx expects opaque colors, with the alpha in the opacity
		c := s.Color
		out[i] = rasterx.GradStop{StopColor: color.NRGBA{c.R, c.G, c.B, 0xff}, Offset: s.Offset, Opacity: s.Opacity * float64(c.A) / 0xff}
	}
	return out
}

// toRasterxGradient expresses the gradient in a unit bounding box:
// rasterx then maps each pixel back through the inverse of the
// gradient matrix, which supports any (invertible) transformation.
func toRasterxGradient(ps svgscene.PaintServer) (rasterx.Gradient, bool) {
	grad := rasterx.Gradient{Units: rasterx.ObjectBoundingBox}
	grad.Bounds.W, grad.Bounds.H = 1, 1
	switch ps := ps.(type) {
	case svgscene.LinearGradient:
		grad.Points = [5]float64{ps.X1, ps.Y1, ps.X2, ps.Y2}
		grad.Matrix = rasterx.Matrix2D(ps.Matrix)
		grad.Spread = rasterx.SpreadMethod(ps.Spread)
		grad.Stops = toRasterxStops(ps.Stops)
	case svgscene.RadialGradient:
		grad.Points = [5]float64{ps.CX, ps.CY, ps.FX, ps.FY, ps.R}
		grad.Matrix = rasterx.Matrix2D(ps.Matrix)
		grad.Spread = rasterx.SpreadMethod(ps.Spread)
		grad.Stops = toRasterxStops(ps.Stops)
		grad.IsRadial = true
	default:
		return grad, false
	}
	return grad, true
}

// lastStop is used for degenerated gradients
func lastStop(stops []svgscene.GradientStop) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	s := stops[len(stops)-1]
	return withOpacity(s.Color, s.Opacity)
}

// resolve gradient color
func setColorFromPaint(paint svgscene.PaintServer, opacity float64, scanner rasterx.Scanner) {
	switch paint := paint.(type) {
	case svgscene.Solid:
		scanner.SetColor(withOpacity(paint.Color, paint.Opacity*opacity))
	case svgscene.LinearGradient:
		if paint.Matrix.Det() == 0 {
			scanner.SetColor(withOpacity(lastStop(paint.Stops), opacity))
			return
		}
		grad, _ := toRasterxGradient(paint)
		scanner.SetColor(grad.GetColorFunction(opacity))
	case svgscene.RadialGradient:
		if paint.Matrix.Det() == 0 {
			scanner.SetColor(withOpacity(lastStop(paint.Stops), opacity))
			return
		}
		grad, _ := toRasterxGradient(paint)
		scanner.SetColor(grad.GetColorFunction(opacity))
	}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgscene.Round:     rasterx.Round,
		svgscene.Bevel:     rasterx.Bevel,
		svgscene.Miter:     rasterx.Miter,
		svgscene.MiterClip: rasterx.MiterClip,
		svgscene.Arc:       rasterx.Arc,
		svgscene.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgscene.ButtCap:      rasterx.ButtCap,
		svgscene.SquareCap:    rasterx.SquareCap,
		svgscene.RoundCap:     rasterx.RoundCap,
		svgscene.CubicCap:     rasterx.CubicCap,
		svgscene.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgscene.FlatGap:      rasterx.FlatGap,
		svgscene.RoundGap:     rasterx.RoundGap,
		svgscene.CubicGap:     rasterx.CubicGap,
		svgscene.QuadraticGap: rasterx.QuadraticGap,
	}
)

// filler paints the interior of paths
type filler struct {
	f *rasterx.Filler
}

func (fl filler) Clear()                             { fl.f.Clear() }
func (fl filler) Start(a fixed.Point26_6)            { fl.f.Start(a) }
func (fl filler) Line(b fixed.Point26_6)             { fl.f.Line(b) }
func (fl filler) CubeBezier(b, c, d fixed.Point26_6) { fl.f.CubeBezier(b, c, d) }
func (fl filler) Stop(closeLoop bool)                { fl.f.Stop(closeLoop) }
func (fl filler) Draw()                              { fl.f.Draw() }
func (fl filler) SetWinding(useNonZeroWinding bool)  { fl.f.SetWinding(useNonZeroWinding) }

func (fl filler) SetColor(paint svgscene.PaintServer, opacity float64) {
	setColorFromPaint(paint, opacity, fl.f.Scanner)
}

// stroker paints the outline of paths
type stroker struct {
	d *rasterx.Dasher
}

func (st stroker) Clear()                             { st.d.Clear() }
func (st stroker) Start(a fixed.Point26_6)            { st.d.Start(a) }
func (st stroker) Line(b fixed.Point26_6)             { st.d.Line(b) }
func (st stroker) CubeBezier(b, c, d fixed.Point26_6) { st.d.CubeBezier(b, c, d) }
func (st stroker) Stop(closeLoop bool)                { st.d.Stop(closeLoop) }
func (st stroker) Draw()                              { st.d.Draw() }

func (st stroker) SetColor(paint svgscene.PaintServer, opacity float64) {
	setColorFromPaint(paint, opacity, st.d.Scanner)
}

func (st stroker) SetStrokeOptions(options svgscene.StrokeOptions) {
	st.d.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}
