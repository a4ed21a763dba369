package svgpath

import (
	"bytes"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// number of arguments expected by each command, -1 for invalid letters
func argCount(cmd byte) int {
	switch cmd {
	case 'Z', 'z':
		return 0
	case 'H', 'h', 'V', 'v':
		return 1
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'S', 's', 'Q', 'q':
		return 4
	case 'C', 'c':
		return 6
	case 'A', 'a':
		return 7
	default:
		return -1
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func startsNumber(c byte) bool {
	return ('0' <= c && c <= '9') || c == '.' || c == '-' || c == '+'
}

type pathParser struct {
	data []byte
	pos  int
}

func (p *pathParser) errorf(message string, a ...interface{}) error {
	return parse.NewError(bytes.NewReader(p.data), p.pos, message, a...)
}

func (p *pathParser) skipSpace() {
	for p.pos < len(p.data) && isSpace(p.data[p.pos]) {
		p.pos++
	}
}

// skipSeparator skips whitespace with at most one comma
func (p *pathParser) skipSeparator() {
	p.skipSpace()
	if p.pos < len(p.data) && p.data[p.pos] == ',' {
		p.pos++
		p.skipSpace()
	}
}

func (p *pathParser) readNumber() (float64, error) {
	f, n := strconv.ParseFloat(p.data[p.pos:])
	if n == 0 {
		if p.pos >= len(p.data) {
			return 0, p.errorf("unexpected end of path data, expected number")
		}
		return 0, p.errorf("invalid number starting with %q", p.data[p.pos])
	}
	p.pos += n
	return f, nil
}

// arc flags may be written without separators, as in "a1 1 0 00 1 1"
func (p *pathParser) readFlag() (float64, error) {
	if p.pos < len(p.data) {
		switch p.data[p.pos] {
		case '0':
			p.pos++
			return 0, nil
		case '1':
			p.pos++
			return 1, nil
		}
	}
	return 0, p.errorf("invalid arc flag, expected 0 or 1")
}

// Parse parses the path data mini-language.
// An error is returned for unknown commands and invalid numbers,
// in which case the path is nil: no partial segment is ever returned.
func Parse(d string) (Path, error) {
	p := pathParser{data: []byte(d)}
	var (
		out  Path
		cmd  byte // last command, used for implicit repetitions
		args [7]float64
	)
	p.skipSpace()
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if argCount(c) >= 0 {
			cmd = c
			p.pos++
		} else if !startsNumber(c) {
			return nil, p.errorf("unknown path command %q", c)
		} else if cmd == 0 {
			return nil, p.errorf("path data must start with a command")
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, p.errorf("unexpected number after close path")
		}

		n := argCount(cmd)
		for i := 0; i < n; i++ {
			if i == 0 {
				p.skipSpace()
			} else {
				p.skipSeparator()
			}
			var err error
			if (cmd == 'A' || cmd == 'a') && (i == 3 || i == 4) {
				args[i], err = p.readFlag()
			} else {
				args[i], err = p.readNumber()
			}
			if err != nil {
				return nil, err
			}
		}
		out = append(out, newSegment(cmd, args[:n]))

		// extra pairs after a moveto are implicit lineto
		if cmd == 'M' {
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
		p.skipSeparator()
	}
	return out, nil
}

func newSegment(cmd byte, a []float64) Segment {
	rel := 'a' <= cmd && cmd <= 'z'
	switch cmd {
	case 'Z', 'z':
		return Close{}
	case 'M', 'm':
		return MoveTo{P: Point{a[0], a[1]}, Rel: rel}
	case 'L', 'l':
		return LineTo{P: Point{a[0], a[1]}, Rel: rel}
	case 'H', 'h':
		return HLineTo{X: a[0], Rel: rel}
	case 'V', 'v':
		return VLineTo{Y: a[0], Rel: rel}
	case 'C', 'c':
		return CubicTo{C1: Point{a[0], a[1]}, C2: Point{a[2], a[3]}, P: Point{a[4], a[5]}, Rel: rel}
	case 'S', 's':
		return SmoothCubicTo{C2: Point{a[0], a[1]}, P: Point{a[2], a[3]}, Rel: rel}
	case 'Q', 'q':
		return QuadTo{C: Point{a[0], a[1]}, P: Point{a[2], a[3]}, Rel: rel}
	case 'T', 't':
		return SmoothQuadTo{P: Point{a[0], a[1]}, Rel: rel}
	case 'A', 'a':
		return ArcTo{Rx: a[0], Ry: a[1], Rotation: a[2], LargeArc: a[3] != 0, Sweep: a[4] != 0, P: Point{a[5], a[6]}, Rel: rel}
	default:
		panic("svgpath: invalid command " + string(cmd))
	}
}

// ParseNumbers parses a list of numbers separated by whitespace
// and/or commas, as found in `points`, `viewBox` or transform arguments.
func ParseNumbers(s string) ([]float64, error) {
	p := pathParser{data: []byte(s)}
	var out []float64
	p.skipSeparator()
	for p.pos < len(p.data) {
		f, err := p.readNumber()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
		p.skipSeparator()
	}
	return out, nil
}

// ParsePoints parses a `points` attribute. A trailing odd coordinate
// is dropped, as required for polylines and polygons.
func ParsePoints(s string) ([]Point, error) {
	nums, err := ParseNumbers(s)
	if err != nil {
		return nil, err
	}
	out := make([]Point, len(nums)/2)
	for i := range out {
		out[i] = Point{nums[2*i], nums[2*i+1]}
	}
	return out, nil
}
