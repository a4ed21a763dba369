package svgscene

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
)

// PaintKind distinguishes the values of the fill and stroke properties.
type PaintKind uint8

const (
	PaintNone PaintKind = iota
	PaintCurrentColor
	PaintColor
	PaintRef // url(#id)
)

func (k PaintKind) String() string {
	switch k {
	case PaintNone:
		return "none"
	case PaintCurrentColor:
		return "currentColor"
	case PaintColor:
		return "color"
	case PaintRef:
		return "url"
	default:
		return fmt.Sprintf("<unknown PaintKind %d>", k)
	}
}

// Paint is the parsed value of a fill or stroke property.
type Paint struct {
	Kind  PaintKind
	Color color.NRGBA // for PaintColor
	Ref   string      // for PaintRef, without the leading '#'
	// Fallback is used when Ref can't be resolved.
	// It is nil when no fallback is given.
	Fallback *Paint
}

func (p Paint) String() string {
	switch p.Kind {
	case PaintColor:
		return fmt.Sprintf("#%02x%02x%02x%02x", p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	case PaintRef:
		if p.Fallback != nil {
			return fmt.Sprintf("url(#%s) %s", p.Ref, p.Fallback)
		}
		return fmt.Sprintf("url(#%s)", p.Ref)
	default:
		return p.Kind.String()
	}
}

// ParsePaint parses a fill or stroke value: none, currentColor,
// a color, or an IRI reference with an optional fallback.
func ParsePaint(s string) (Paint, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "none":
		return Paint{Kind: PaintNone}, nil
	case "currentcolor":
		return Paint{Kind: PaintCurrentColor}, nil
	}

	if len(s) >= 4 && strings.EqualFold(s[:4], "url(") {
		end := strings.IndexByte(s, ')')
		if end == -1 {
			return Paint{}, fmt.Errorf("invalid paint %q: missing )", s)
		}
		iri := strings.Trim(strings.TrimSpace(s[4:end]), `"'`)
		if !strings.HasPrefix(iri, "#") || len(iri) == 1 {
			return Paint{}, fmt.Errorf("invalid paint %q: only local references are supported", s)
		}
		out := Paint{Kind: PaintRef, Ref: iri[1:]}
		if rest := strings.TrimSpace(s[end+1:]); rest != "" {
			fallback, err := ParsePaint(rest)
			if err != nil {
				return Paint{}, err
			}
			if fallback.Kind == PaintRef {
				return Paint{}, fmt.Errorf("invalid paint %q: fallback must not be a reference", s)
			}
			out.Fallback = &fallback
		}
		return out, nil
	}

	c, err := ParseColor(s)
	if err != nil {
		return Paint{}, err
	}
	return Paint{Kind: PaintColor, Color: c}, nil
}

// ParseColor parses a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(), rgba() or a color keyword.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, errors.New("empty color")
	}
	if s[0] == '#' {
		return parseHexColor(s)
	}
	v := strings.ToLower(s)
	if v == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	var args string
	if strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")") {
		args = v[5 : len(v)-1]
	} else if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		args = v[4 : len(v)-1]
	} else {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}

	comps := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == ' ' || r == '/' || r == '\t' })
	if len(comps) != 3 && len(comps) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected 3 or 4 components", s)
	}
	var rgb [3]uint8
	for i := range rgb {
		f, isPercent, err := parseComponent(comps[i])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		if isPercent {
			f = f * 255 / 100
		}
		rgb[i] = clampByte(f)
	}
	alpha := uint8(0xff)
	if len(comps) == 4 {
		f, isPercent, err := parseComponent(comps[3])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		if isPercent {
			f /= 100
		}
		alpha = clampByte(f * 255)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	hex := s[1:]
	digits := make([]uint8, len(hex))
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		switch {
		case '0' <= c && c <= '9':
			digits[i] = c - '0'
		case 'a' <= c && c <= 'f':
			digits[i] = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			digits[i] = c - 'A' + 10
		default:
			return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
		}
	}
	out := color.NRGBA{A: 0xff}
	switch len(digits) {
	case 3, 4:
		out.R, out.G, out.B = digits[0]*17, digits[1]*17, digits[2]*17
		if len(digits) == 4 {
			out.A = digits[3] * 17
		}
	case 6, 8:
		out.R, out.G, out.B = digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5]
		if len(digits) == 8 {
			out.A = digits[6]<<4 | digits[7]
		}
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return out, nil
}

// parseComponent parses a number, optionally followed by '%'.
func parseComponent(s string) (f float64, isPercent bool, err error) {
	b := []byte(s)
	f, n := strconv.ParseFloat(b)
	if n == 0 {
		return 0, false, fmt.Errorf("bad component %q", s)
	}
	switch rest := string(b[n:]); rest {
	case "":
		return f, false, nil
	case "%":
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("bad component %q", s)
	}
}

func clampByte(f float64) uint8 {
	if f <= 0 {
		return 0
	} else if f >= 255 {
		return 255
	}
	return uint8(f + 0.5)
}

// parseOpacity parses a number or a percentage, clamped to [0, 1].
func parseOpacity(s string) (float64, error) {
	f, isPercent, err := parseComponent(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid opacity: %w", err)
	}
	if isPercent {
		f /= 100
	}
	if f < 0 {
		return 0, nil
	} else if f > 1 {
		return 1, nil
	}
	return f, nil
}
