package svgscene

import (
	"fmt"
	"image/color"

	"github.com/benoitkugler/svgscene/svgpath"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

func (s SpreadMethod) String() string {
	switch s {
	case PadSpread:
		return "pad"
	case ReflectSpread:
		return "reflect"
	case RepeatSpread:
		return "repeat"
	default:
		return fmt.Sprintf("<unknown SpreadMethod %d>", s)
	}
}

// GradientStop represents a stop in the SVG 2.0 gradient specification.
// Offsets are in [0, 1].
type GradientStop struct {
	Offset  float64
	Color   color.NRGBA
	Opacity float64
}

// PaintServer is the resolved paint of a fill or a stroke.
// The set of implementations is closed: Solid, LinearGradient and RadialGradient.
type PaintServer interface {
	isPaintServer()
}

// Solid is a plain color, with an additional opacity
// (the alpha channel of Color is kept as is).
type Solid struct {
	Color   color.NRGBA
	Opacity float64
}

// LinearGradient goes from (X1, Y1) to (X2, Y2).
// Once resolved, coordinates are expressed in the space mapped
// to user space by Matrix.
type LinearGradient struct {
	X1, Y1, X2, Y2 float64
	Units          GradientUnits
	Spread         SpreadMethod
	Matrix         svgpath.Matrix2D
	Stops          []GradientStop
}

// RadialGradient is centered at (CX, CY) with radius R,
// and focal point (FX, FY).
type RadialGradient struct {
	CX, CY, R, FX, FY float64
	Units             GradientUnits
	Spread            SpreadMethod
	Matrix            svgpath.Matrix2D
	Stops             []GradientStop
}

func (Solid) isPaintServer()          {}
func (LinearGradient) isPaintServer() {}
func (RadialGradient) isPaintServer() {}

// Transform returns the paint server as seen through `m`:
// gradients are expressed in a space mapped by m.Mult(Matrix).
func Transform(ps PaintServer, m svgpath.Matrix2D) PaintServer {
	switch ps := ps.(type) {
	case LinearGradient:
		ps.Matrix = m.Mult(ps.Matrix)
		return ps
	case RadialGradient:
		ps.Matrix = m.Mult(ps.Matrix)
		return ps
	default:
		return ps
	}
}

// Describe returns a short, human readable description of the paint server.
func Describe(ps PaintServer) string {
	switch ps := ps.(type) {
	case nil:
		return "none"
	case Solid:
		return fmt.Sprintf("rgba(%d,%d,%d,%d)@%g", ps.Color.R, ps.Color.G, ps.Color.B, ps.Color.A, ps.Opacity)
	case LinearGradient:
		return fmt.Sprintf("linear(%g,%g -> %g,%g, %d stops, %s)", ps.X1, ps.Y1, ps.X2, ps.Y2, len(ps.Stops), ps.Spread)
	case RadialGradient:
		return fmt.Sprintf("radial(%g,%g r=%g, %d stops, %s)", ps.CX, ps.CY, ps.R, len(ps.Stops), ps.Spread)
	default:
		return fmt.Sprintf("%T", ps)
	}
}
