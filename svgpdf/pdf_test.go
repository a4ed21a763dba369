package svgpdf

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgtree"
	"github.com/jung-kurt/gofpdf"
)

// renderString returns the uncompressed PDF output
func renderString(t *testing.T, src string) string {
	t.Helper()
	tree, err := svgtree.Load(strings.NewReader(src), svgtree.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	scene, err := svgscene.Build(tree, svgtree.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	pdf := gofpdf.New("P", "pt", "", "")
	pdf.SetCompression(false)
	if err = AddScene(pdf, scene); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err = pdf.Output(&out); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestSolid(t *testing.T) {
	out := renderString(t, `<svg width="100" height="50">
		<rect width="10" height="10" fill="red"/>
		<path d="M0 0 L10 0 L10 10 Z M2 2 L8 2 L8 8 Z" fill="#00f" fill-rule="evenodd" fill-opacity="0.5"/>
	</svg>`)
	for _, want := range []string{
		"/MediaBox [0 0 75.00 37.50]",
		"1.000 0.000 0.000 rg",
		"0.000 0.000 1.000 rg",
		"\nf\n",
		"\nf*\n",
		"/ca 0.500",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}
}

func TestStroke(t *testing.T) {
	out := renderString(t, `<svg viewBox="0 0 96 96">
		<polyline points="0,0 50,50 90,0" fill="none" stroke="green" stroke-width="4"
			stroke-linecap="round" stroke-linejoin="bevel" stroke-dasharray="8 4"/>
	</svg>`)
	for _, want := range []string{
		"0.000 0.502 0.000 RG",
		"3.00 w", // 4px = 3pt
		"1 J",
		"2 j",
		"[6.00 3.00] 0.00 d",
		"\nS\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}
	if strings.Contains(out, "\nf\n") {
		t.Error("unexpected fill")
	}
}

func TestGradients(t *testing.T) {
	out := renderString(t, `<svg viewBox="0 0 100 100">
		<linearGradient id="lin"><stop offset="0" stop-color="red"/><stop offset="1" stop-color="blue"/></linearGradient>
		<radialGradient id="rad"><stop offset="0" stop-color="white"/><stop offset="1" stop-color="black"/></radialGradient>
		<rect width="50" height="50" fill="url(#lin)"/>
		<circle cx="75" cy="75" r="20" fill="url(#rad)" stroke="url(#lin)"/>
	</svg>`)
	for _, want := range []string{
		"/ShadingType 2",
		"/ShadingType 3",
		"W n",
		"/Sh0 sh",
		"/Sh1 sh",
		"0.502 0.000 0.502 RG", // stroke approximated by the middle color
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}
}

func TestLinearVector(t *testing.T) {
	// a skew: the vector is not simply mapped by the matrix
	g := svgscene.LinearGradient{X2: 1, Matrix: svgpath.Identity.SkewY(math.Pi / 4)}
	p1, p2 := linearVector(g)
	if p1 != (svgpath.Point{}) {
		t.Errorf("unexpected start %v", p1)
	}
	// isolines of the gradient are vertical: the vector stays horizontal
	if math.Abs(p2.X-1) > 1e-9 || math.Abs(p2.Y) > 1e-9 {
		t.Errorf("unexpected end %v", p2)
	}

	g = svgscene.LinearGradient{X1: 1, Y1: 1, X2: 3, Y2: 1, Matrix: svgpath.Identity.Translate(1, 0).Scale(2, 2)}
	p1, p2 = linearVector(g)
	if p1 != (svgpath.Point{X: 3, Y: 2}) || math.Abs(p2.X-7) > 1e-9 || math.Abs(p2.Y-2) > 1e-9 {
		t.Errorf("unexpected vector %v %v", p1, p2)
	}
}

func TestRenderSVGToPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	err := RenderSVGToPDF(strings.NewReader(`<svg viewBox="0 0 10 10"><circle cx="5" cy="5" r="4"/></svg>`), out, svgtree.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("invalid pdf output")
	}

	err = RenderSVGToPDF(strings.NewReader(`<svg/>`), out, svgtree.DefaultOptions())
	if err == nil {
		t.Error("expected error for empty document")
	}
}
