package svgtree

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// Unit is the unit of a Length.
type Unit uint8

const (
	Number Unit = iota // no unit, same as Px
	Percentage
	Px
	Cm
	Mm
	In
	Pt
	Pc
	Em
	Ex
)

var unitNames = [...]string{
	Number:     "",
	Percentage: "%",
	Px:         "px",
	Cm:         "cm",
	Mm:         "mm",
	In:         "in",
	Pt:         "pt",
	Pc:         "pc",
	Em:         "em",
	Ex:         "ex",
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("<unknown Unit %d>", u)
}

// font metrics used for relative units, since text layout
// is not performed
const (
	emSize = 12
	exSize = emSize / 2
)

// user units per unit
var unitFactors = [...]float64{
	Number: 1,
	Px:     1,
	Cm:     96 / 2.54,
	Mm:     96 / 25.4,
	In:     96,
	Pt:     96. / 72,
	Pc:     96. / 6,
	Em:     emSize,
	Ex:     exSize,
}

// Length is a number with a unit, as found in
// SVG attributes like width or stroke-width.
type Length struct {
	Value float64
	Unit  Unit
}

func (l Length) String() string {
	return fmt.Sprintf("%g%s", l.Value, l.Unit)
}

// ParseLength parses a dimension like "12", "50%" or "2.5mm".
func ParseLength(s string) (Length, error) {
	b := bytes.TrimSpace([]byte(s))
	num, unitLen := parse.Dimension(b)
	if num == 0 {
		return Length{}, parse.NewError(bytes.NewReader(b), 0, "invalid length %q", s)
	}
	value, n := strconv.ParseFloat(b[:num])
	if n != num {
		return Length{}, parse.NewError(bytes.NewReader(b), n, "invalid number in length %q", s)
	}
	if num+unitLen != len(b) {
		return Length{}, parse.NewError(bytes.NewReader(b), num+unitLen, "unexpected characters in length %q", s)
	}
	unitName := strings.ToLower(string(b[num:]))
	for u, name := range unitNames {
		if name == unitName {
			return Length{Value: value, Unit: Unit(u)}, nil
		}
	}
	return Length{}, parse.NewError(bytes.NewReader(b), num, "unknown unit %q", unitName)
}

// Resolve returns the length in user units.
// Percentages require a context and fail with ErrNoLengthContext.
func (l Length) Resolve() (float64, error) {
	if l.Unit == Percentage {
		return 0, fmt.Errorf("resolving %s: %w", l, ErrNoLengthContext)
	}
	if int(l.Unit) >= len(unitFactors) {
		return 0, fmt.Errorf("invalid unit %d", l.Unit)
	}
	return l.Value * unitFactors[l.Unit], nil
}

// ResolveIn returns the length in user units, using `total`
// as reference for percentages.
func (l Length) ResolveIn(total float64) float64 {
	if l.Unit == Percentage {
		return l.Value * total / 100
	}
	if int(l.Unit) >= len(unitFactors) {
		return l.Value
	}
	return l.Value * unitFactors[l.Unit]
}

// Axis selects the viewport dimension used to resolve percentages.
type Axis uint8

const (
	Horizontal Axis = iota // width
	Vertical               // height
	Diagonal               // sqrt((w² + h²)/2), for radii and stroke widths
)

// Viewport is the reference rectangle for percentages.
type Viewport struct{ W, H float64 }

// Reference returns the length used to resolve percentages along `axis`.
func (v Viewport) Reference(axis Axis) float64 {
	switch axis {
	case Horizontal:
		return v.W
	case Vertical:
		return v.H
	default:
		return math.Sqrt((v.W*v.W + v.H*v.H) / 2)
	}
}

// ParseLengthIn parses and resolves `s` in one step.
func (v Viewport) ParseLengthIn(s string, axis Axis) (float64, error) {
	l, err := ParseLength(s)
	if err != nil {
		return 0, err
	}
	return l.ResolveIn(v.Reference(axis)), nil
}
