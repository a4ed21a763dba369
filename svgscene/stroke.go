package svgscene

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgtree"
)

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
// ArcClip mode is like MiterClip applied to arcs, and is not part of the SVG2.0
// standard.
const (
	Arc JoinMode = iota // New in SVG2
	Round
	Bevel
	Miter
	MiterClip // New in SVG2
	ArcClip   // Like MiterClip applied to arcs, and is not part of the SVG2.0 standard.
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // Not part of the SVG2.0 standard.
	QuadraticCap // Not part of the SVG2.0 standard.
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	case CubicCap:
		return "CubicCap"
	case QuadraticCap:
		return "QuadraticCap"
	default:
		return "<unknown CapMode>"
	}
}

// GapMode defines how to bridge gaps when the miter limit is exceeded,
// and is not part of the SVG2.0 standard.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

func (g GapMode) String() string {
	switch g {
	case NilGap:
		return "NilGap"
	case FlatGap:
		return "FlatGap"
	case RoundGap:
		return "RoundGap"
	case CubicGap:
		return "CubicGap"
	case QuadraticGap:
		return "QuadraticGap"
	default:
		return "<unknown GapMode>"
	}
}

var (
	capModes = map[string]CapMode{
		"butt":      ButtCap,
		"round":     RoundCap,
		"square":    SquareCap,
		"cubic":     CubicCap,
		"quadratic": QuadraticCap,
	}
	joinModes = map[string]JoinMode{
		"miter":      Miter,
		"miter-clip": MiterClip,
		"arc-clip":   ArcClip,
		"round":      Round,
		"arc":        Arc,
		"bevel":      Bevel,
	}
)

// StrokeParams are the stroking parameters of an item, in
// the item coordinates.
type StrokeParams struct {
	Width      float64
	Cap        CapMode
	Join       JoinMode
	MiterLimit float64
	Dash       []float64 // nil for solid lines
	DashOffset float64
}

var strokeProperties = [...]svgtree.Property{
	svgtree.StrokeWidth, svgtree.StrokeLinecap, svgtree.StrokeLinejoin,
	svgtree.StrokeMiterlimit, svgtree.StrokeDashoffset, svgtree.StrokeDasharray,
}

// strokeParams resolves the stroke properties of the element `id`.
// An invalid value is passed to `handle`, and replaced by its default
// when `handle` returns nil.
func (c *Context) strokeParams(id svgtree.NodeID, handle func(error) error) (StrokeParams, error) {
	style := c.Styles.Style(id)
	var out StrokeParams
	for _, p := range strokeProperties {
		err := c.setStrokeProperty(&out, p, style.Get(p))
		if err == nil {
			continue
		}
		if err = handle(err); err != nil {
			return out, err
		}
		if err = c.setStrokeProperty(&out, p, svgtree.Defaults.Get(p)); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (c *Context) setStrokeProperty(out *StrokeParams, p svgtree.Property, value string) error {
	var (
		ok  bool
		err error
	)
	switch p {
	case svgtree.StrokeWidth:
		if out.Width, err = c.Viewport.ParseLengthIn(value, axisD); err != nil {
			return fmt.Errorf("invalid stroke-width: %w", err)
		}
	case svgtree.StrokeLinecap:
		if out.Cap, ok = capModes[strings.TrimSpace(value)]; !ok {
			return fmt.Errorf("invalid stroke-linecap %q", value)
		}
	case svgtree.StrokeLinejoin:
		if out.Join, ok = joinModes[strings.TrimSpace(value)]; !ok {
			return fmt.Errorf("invalid stroke-linejoin %q", value)
		}
	case svgtree.StrokeMiterlimit:
		miter, err := svgpath.ParseNumbers(value)
		if err != nil || len(miter) != 1 || miter[0] < 1 {
			return fmt.Errorf("invalid stroke-miterlimit %q", value)
		}
		out.MiterLimit = miter[0]
	case svgtree.StrokeDashoffset:
		if out.DashOffset, err = c.Viewport.ParseLengthIn(value, axisD); err != nil {
			return fmt.Errorf("invalid stroke-dashoffset: %w", err)
		}
	case svgtree.StrokeDasharray:
		out.Dash, err = c.parseDashArray(value)
		return err
	}
	return nil
}

// parseDashArray returns nil for none, and for arrays
// which would disable the stroke (only zeros).
// An odd number of values is repeated to yield an even one.
func (c *Context) parseDashArray(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "none" {
		return nil, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	out := make([]float64, 0, 2*len(fields))
	var sum float64
	for _, f := range fields {
		v, err := c.Viewport.ParseLengthIn(f, axisD)
		if err != nil {
			return nil, fmt.Errorf("invalid stroke-dasharray: %w", err)
		}
		if v < 0 {
			return nil, fmt.Errorf("invalid stroke-dasharray %q: negative value", s)
		}
		sum += v
		out = append(out, v)
	}
	if sum == 0 {
		return nil, nil
	}
	if len(out)%2 == 1 {
		out = append(out, out...)
	}
	return out, nil
}
