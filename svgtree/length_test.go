package svgtree

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/test"
)

func TestParseLength(t *testing.T) {
	var tts = []struct {
		s string
		l Length
	}{
		{"12", Length{12, Number}},
		{" -1.5e2 ", Length{-150, Number}},
		{"50%", Length{50, Percentage}},
		{"3px", Length{3, Px}},
		{"2.54cm", Length{2.54, Cm}},
		{"10MM", Length{10, Mm}},
		{"1in", Length{1, In}},
		{"72pt", Length{72, Pt}},
		{"6pc", Length{6, Pc}},
		{".5em", Length{0.5, Em}},
		{"2ex", Length{2, Ex}},
	}
	for _, tt := range tts {
		t.Run(tt.s, func(t *testing.T) {
			l, err := ParseLength(tt.s)
			test.Error(t, err)
			test.T(t, l, tt.l)
		})
	}

	for _, s := range []string{"", "px", "12 px", "3furlongs", "1..2", "4%%"} {
		t.Run("invalid "+s, func(t *testing.T) {
			_, err := ParseLength(s)
			var perr *parse.Error
			test.That(t, errors.As(err, &perr), "expected a parse error, got", err)
		})
	}
}

func TestResolveLength(t *testing.T) {
	var tts = []struct {
		l    Length
		want float64
	}{
		{Length{12, Number}, 12},
		{Length{12, Px}, 12},
		{Length{2.54, Cm}, 96},
		{Length{25.4, Mm}, 96},
		{Length{1, In}, 96},
		{Length{72, Pt}, 96},
		{Length{6, Pc}, 96},
		{Length{2, Em}, 24},
		{Length{2, Ex}, 12},
	}
	for _, tt := range tts {
		v, err := tt.l.Resolve()
		test.Error(t, err)
		test.Float(t, v, tt.want, tt.l)
		test.Float(t, tt.l.ResolveIn(1000), tt.want, tt.l)
	}

	_, err := Length{50, Percentage}.Resolve()
	test.That(t, errors.Is(err, ErrNoLengthContext))
	test.Float(t, Length{50, Percentage}.ResolveIn(300), 150)
}

func TestViewportReference(t *testing.T) {
	vp := Viewport{W: 300, H: 400}
	test.Float(t, vp.Reference(Horizontal), 300)
	test.Float(t, vp.Reference(Vertical), 400)
	test.Float(t, vp.Reference(Diagonal), math.Sqrt((300*300+400*400)/2))

	v, err := vp.ParseLengthIn("10%", Vertical)
	test.Error(t, err)
	test.Float(t, v, 40)
}
