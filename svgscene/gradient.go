package svgscene

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgtree"
	"go.uber.org/zap"
)

// isGradient returns true for linear and radial gradients
func isGradient(k svgtree.Kind) bool {
	return k == svgtree.LinearGradient || k == svgtree.RadialGradient
}

// gradientSource is a gradient element, merged with
// the gradients it references.
type gradientSource struct {
	kind  svgtree.Kind
	attrs map[string]string
	stops []svgtree.NodeID
}

// collectGradient follows the href chain starting at `id`: attributes
// not specified on an element are taken from the referenced one, and
// stops come from the first element of the chain having some.
func (c *Context) collectGradient(id svgtree.NodeID) (gradientSource, error) {
	src := gradientSource{kind: c.Tree.Element(id).Kind, attrs: map[string]string{}}
	visited := map[svgtree.NodeID]bool{}
	for cur := id; cur != svgtree.NoNode; cur = c.Tree.Href(cur) {
		if visited[cur] {
			return src, fmt.Errorf("%w: cyclic gradient reference #%s", ErrUnresolvedReference, c.Tree.Element(cur).ID)
		}
		visited[cur] = true
		el := c.Tree.Element(cur)
		if !isGradient(el.Kind) {
			break
		}
		for k, v := range el.Attrs {
			if k == "id" || k == "href" {
				continue
			}
			if _, has := src.attrs[k]; !has {
				src.attrs[k] = v
			}
		}
		if src.stops == nil {
			for _, child := range el.Children {
				if c.Tree.Element(child).Kind == svgtree.Stop {
					src.stops = append(src.stops, child)
				}
			}
		}
	}
	return src, nil
}

// coordinate resolves a gradient coordinate: in objectBoundingBox mode
// numbers and percentages are fractions of the box, otherwise
// they are user space lengths.
func (c *Context) coordinate(src gradientSource, attr, def string, axis svgtree.Axis, units GradientUnits) (float64, error) {
	val, ok := src.attrs[attr]
	if !ok {
		val = def
	}
	l, err := svgtree.ParseLength(val)
	if err != nil {
		return 0, fmt.Errorf("invalid gradient attribute %s=%q: %w", attr, val, err)
	}
	if units == ObjectBoundingBox {
		if l.Unit == svgtree.Percentage {
			return l.Value / 100, nil
		}
		return l.ResolveIn(1), nil
	}
	return l.ResolveIn(c.Viewport.Reference(axis)), nil
}

// resolveStops returns the stops with offsets clamped to [0, 1]
// and made monotonic.
func (c *Context) resolveStops(stops []svgtree.NodeID) ([]GradientStop, error) {
	out := make([]GradientStop, 0, len(stops))
	prev := 0.
	for _, id := range stops {
		var stop GradientStop
		if v, ok := c.Tree.Element(id).Attrs["offset"]; ok {
			f, isPercent, err := parseComponent(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid stop offset: %w", err)
			}
			if isPercent {
				f /= 100
			}
			stop.Offset = f
		}
		stop.Offset = math.Max(math.Min(math.Max(stop.Offset, 0), 1), prev)
		prev = stop.Offset

		var err error
		stop.Color, err = c.colorProperty(id, svgtree.StopColor)
		if err != nil {
			return nil, err
		}
		stop.Opacity, err = parseOpacity(c.Styles.Get(id, svgtree.StopOpacity))
		if err != nil {
			return nil, err
		}
		out = append(out, stop)
	}
	return out, nil
}

// colorProperty resolves a color valued property, handling currentColor.
func (c *Context) colorProperty(id svgtree.NodeID, p svgtree.Property) (color.NRGBA, error) {
	val := c.Styles.Get(id, p)
	if strings.EqualFold(strings.TrimSpace(val), "currentcolor") {
		if p == svgtree.Color {
			// only reachable with an explicit color: currentColor
			return color.NRGBA{A: 0xff}, nil
		}
		p, val = svgtree.Color, c.Styles.Get(id, svgtree.Color)
		if strings.EqualFold(strings.TrimSpace(val), "currentcolor") {
			return color.NRGBA{A: 0xff}, nil
		}
	}
	col, err := ParseColor(val)
	if err != nil {
		return col, fmt.Errorf("invalid %s: %w", p, err)
	}
	return col, nil
}

// ResolvePaint converts `p`, used by the element `id`,
// into a paint server. It returns nil for PaintNone.
// References to a missing element fail with ErrUnresolvedReference,
// unless the paint carries a fallback.
func (c *Context) ResolvePaint(p Paint, id svgtree.NodeID) (PaintServer, error) {
	switch p.Kind {
	case PaintNone:
		return nil, nil
	case PaintColor:
		return Solid{Color: p.Color, Opacity: 1}, nil
	case PaintCurrentColor:
		col, err := c.colorProperty(id, svgtree.Color)
		if err != nil {
			return nil, err
		}
		return Solid{Color: col, Opacity: 1}, nil
	}

	ref := c.Tree.GetByID(p.Ref)
	if ref == svgtree.NoNode || !isGradient(c.Tree.Element(ref).Kind) {
		if p.Fallback != nil {
			return c.ResolvePaint(*p.Fallback, id)
		}
		if ref == svgtree.NoNode {
			return nil, fmt.Errorf("%w: #%s", ErrUnresolvedReference, p.Ref)
		}
		// patterns and other paint servers
		svgtree.Logger().Warn("unsupported paint server", zap.String("ref", p.Ref),
			zap.Stringer("kind", c.Tree.Element(ref).Kind))
		return nil, nil
	}
	return c.resolveGradient(ref, id)
}

func (c *Context) resolveGradient(grad, id svgtree.NodeID) (PaintServer, error) {
	src, err := c.collectGradient(grad)
	if err != nil {
		return nil, err
	}
	stops, err := c.resolveStops(src.stops)
	if err != nil {
		return nil, err
	}
	switch len(stops) {
	case 0: // as none
		return nil, nil
	case 1:
		return Solid{Color: stops[0].Color, Opacity: stops[0].Opacity}, nil
	}

	units := ObjectBoundingBox
	if src.attrs["gradientUnits"] == "userSpaceOnUse" {
		units = UserSpaceOnUse
	}
	spread := PadSpread
	switch src.attrs["spreadMethod"] {
	case "reflect":
		spread = ReflectSpread
	case "repeat":
		spread = RepeatSpread
	}
	gradT, err := ParseTransform(src.attrs["gradientTransform"])
	if err != nil {
		return nil, err
	}

	// objectBBox returns false when the gradient can't be applied
	objectBBox := func() (svgpath.Bounds, bool, error) {
		b, err := c.ElementBBox(id)
		if err != nil {
			return svgpath.Bounds{}, false, err
		}
		if b == nil || b.W == 0 || b.H == 0 {
			svgtree.Logger().Debug("gradient on an empty bounding box", zap.Int32("element", int32(id)))
			return svgpath.Bounds{}, false, nil
		}
		return *b, true, nil
	}

	type coord struct {
		attr, def string
		axis      svgtree.Axis
	}
	resolve := func(coords []coord) ([]float64, error) {
		out := make([]float64, len(coords))
		for i, co := range coords {
			var err error
			out[i], err = c.coordinate(src, co.attr, co.def, co.axis, units)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	if src.kind == svgtree.LinearGradient {
		vals, err := resolve([]coord{{"x1", "0%", axisX}, {"y1", "0%", axisY}, {"x2", "100%", axisX}, {"y2", "0%", axisY}})
		if err != nil {
			return nil, err
		}
		if vals[0] == vals[2] && vals[1] == vals[3] {
			last := stops[len(stops)-1]
			return Solid{Color: last.Color, Opacity: last.Opacity}, nil
		}
		out := LinearGradient{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3], Units: UserSpaceOnUse, Spread: spread, Matrix: gradT, Stops: stops}
		if units == ObjectBoundingBox {
			bbox, ok, err := objectBBox()
			if !ok {
				return nil, err
			}
			axisAligned := vals[0] == vals[2] || vals[1] == vals[3]
			bm := bboxMatrix(bbox)
			if gradT == svgpath.Identity && (axisAligned || bbox.W == bbox.H) {
				out.X1, out.Y1 = bm.Transform(out.X1, out.Y1)
				out.X2, out.Y2 = bm.Transform(out.X2, out.Y2)
			} else {
				out.Matrix = bm.Mult(gradT)
			}
		}
		return out, nil
	}

	vals, err := resolve([]coord{{"cx", "50%", axisX}, {"cy", "50%", axisY}, {"r", "50%", axisD}})
	if err != nil {
		return nil, err
	}
	out := RadialGradient{CX: vals[0], CY: vals[1], R: vals[2], FX: vals[0], FY: vals[1], Units: UserSpaceOnUse, Spread: spread, Matrix: gradT, Stops: stops}
	if _, has := src.attrs["fx"]; has {
		if out.FX, err = c.coordinate(src, "fx", "", axisX, units); err != nil {
			return nil, err
		}
	}
	if _, has := src.attrs["fy"]; has {
		if out.FY, err = c.coordinate(src, "fy", "", axisY, units); err != nil {
			return nil, err
		}
	}
	if out.R <= 0 {
		last := stops[len(stops)-1]
		return Solid{Color: last.Color, Opacity: last.Opacity}, nil
	}
	if units == ObjectBoundingBox {
		bbox, ok, err := objectBBox()
		if !ok {
			return nil, err
		}
		bm := bboxMatrix(bbox)
		if gradT == svgpath.Identity && bbox.W == bbox.H {
			out.CX, out.CY = bm.Transform(out.CX, out.CY)
			out.FX, out.FY = bm.Transform(out.FX, out.FY)
			out.R *= bbox.W
		} else {
			out.Matrix = bm.Mult(gradT)
		}
	}
	return out, nil
}

// bboxMatrix maps the unit square to `b`.
func bboxMatrix(b svgpath.Bounds) svgpath.Matrix2D {
	return svgpath.Identity.Translate(b.X, b.Y).Scale(b.W, b.H)
}
