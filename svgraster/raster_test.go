package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgtree"
)

func toPngBytes(m image.Image) ([]byte, error) {
	var b bytes.Buffer
	// Write the image into the buffer
	err := png.Encode(&b, m)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func render(t *testing.T, src string, opts svgtree.Options) *image.RGBA {
	t.Helper()
	img, err := RasterSVGToImage(strings.NewReader(src), opts)
	if err != nil {
		t.Fatalf("can't raster image: %s", err)
	}
	return img
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// assertColor compares premultiplied colors, with a small tolerance
func assertColor(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	if absDiff(got.R, want.R) > 2 || absDiff(got.G, want.G) > 2 || absDiff(got.B, want.B) > 2 || absDiff(got.A, want.A) > 2 {
		t.Errorf("pixel (%d, %d): expected %v, got %v", x, y, want, got)
	}
}

func TestSolidFill(t *testing.T) {
	img := render(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<rect width="10" height="5" fill="red"/>
		<rect y="5" width="10" height="5" fill="#00f" opacity="0.5"/>
	</svg>`, svgtree.DefaultOptions())
	if img.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	assertColor(t, img, 5, 2, color.RGBA{255, 0, 0, 255})
	assertColor(t, img, 5, 7, color.RGBA{0, 0, 128, 128})
}

func TestDPI(t *testing.T) {
	opts := svgtree.DefaultOptions()
	opts.DPI = 192
	img := render(t, `<svg viewBox="0 0 10 5"><circle cx="5" cy="2.5" r="2" fill="green"/></svg>`, opts)
	if img.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	assertColor(t, img, 10, 5, color.RGBA{0, 128, 0, 255})
	assertColor(t, img, 1, 1, color.RGBA{})
}

func TestStroke(t *testing.T) {
	img := render(t, `<svg viewBox="0 0 20 20">
		<rect x="2" y="2" width="16" height="16" fill="none" stroke="black" stroke-width="2"/>
	</svg>`, svgtree.DefaultOptions())
	assertColor(t, img, 10, 10, color.RGBA{})
	assertColor(t, img, 10, 2, color.RGBA{0, 0, 0, 255})
	assertColor(t, img, 2, 10, color.RGBA{0, 0, 0, 255})
}

func TestLinearGradient(t *testing.T) {
	for _, attrs := range []string{
		`gradientUnits="userSpaceOnUse" x1="0" x2="100"`,
		`x1="0" x2="1"`,
		// same gradient, expressed with a transform
		`gradientUnits="userSpaceOnUse" x1="0" x2="50" gradientTransform="scale(2 1)"`,
	} {
		img := render(t, `<svg viewBox="0 0 100 10">
			<linearGradient id="g" `+attrs+`>
				<stop offset="0" stop-color="red"/>
				<stop offset="1" stop-color="blue"/>
			</linearGradient>
			<rect width="100" height="10" fill="url(#g)"/>
		</svg>`, svgtree.DefaultOptions())
		left, right, mid := img.RGBAAt(0, 5), img.RGBAAt(99, 5), img.RGBAAt(50, 5)
		if left.R < 240 || left.B > 15 {
			t.Errorf("%s: expected red on the left, got %v", attrs, left)
		}
		if right.B < 240 || right.R > 15 {
			t.Errorf("%s: expected blue on the right, got %v", attrs, right)
		}
		if absDiff(mid.R, 127) > 4 || absDiff(mid.B, 128) > 4 {
			t.Errorf("%s: expected a blend in the middle, got %v", attrs, mid)
		}
	}
}

func TestRadialGradient(t *testing.T) {
	img := render(t, `<svg viewBox="0 0 40 40">
		<radialGradient id="g">
			<stop offset="0" stop-color="white"/>
			<stop offset="1" stop-color="black"/>
		</radialGradient>
		<rect width="40" height="40" fill="url(#g)"/>
	</svg>`, svgtree.DefaultOptions())
	center, corner := img.RGBAAt(20, 20), img.RGBAAt(0, 0)
	if center.R < 240 {
		t.Errorf("expected white in the center, got %v", center)
	}
	if corner.R > 15 || corner.A != 255 {
		t.Errorf("expected black outside the radius, got %v", corner)
	}
}

func TestWithOpacity(t *testing.T) {
	if got := withOpacity(color.NRGBA{1, 2, 3, 200}, 0.5); got != (color.NRGBA{1, 2, 3, 100}) {
		t.Errorf("unexpected color %v", got)
	}
	if got := withOpacity(color.NRGBA{1, 2, 3, 200}, 2); got.A != 200 {
		t.Errorf("opacity should be clamped, got %v", got)
	}
	stops := toRasterxStops([]svgscene.GradientStop{{Offset: 0.5, Color: color.NRGBA{10, 20, 30, 51}, Opacity: 0.5}})
	if stops[0].Opacity != 0.1 || stops[0].StopColor != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("unexpected stops %v", stops)
	}
}

func TestInvalid(t *testing.T) {
	for _, src := range []string{
		`<svg/>`,
		`<svg width="10" height="10"><rect width="1" height="1" fill="url(#none)"/></svg>`,
		`<notsvg`,
	} {
		if _, err := RasterSVGToImage(strings.NewReader(src), svgtree.DefaultOptions()); err == nil {
			t.Errorf("expected error for %s", src)
		}
	}
}

func TestSavePNG(t *testing.T) {
	img := render(t, `<svg viewBox="0 0 16 16">
		<path d="M2 2 L14 2 L8 14 Z" fill="orange" stroke="black" stroke-linejoin="round" stroke-dasharray="2 1"/>
	</svg>`, svgtree.DefaultOptions())
	b, err := toPngBytes(img)
	if err != nil {
		t.Fatalf("can't encode image: %s", err)
	}
	out := filepath.Join(t.TempDir(), "triangle.png")
	if err = os.WriteFile(out, b, 0o644); err != nil {
		t.Fatalf("can't save rasterized image: %s", err)
	}
	decoded, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("unexpected bounds %v", decoded.Bounds())
	}
}
