package figure

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func renderSVG(t *testing.T, tree *Node, opts Options) string {
	t.Helper()
	sc, err := Build(NewRegistry(), tree, opts, true)
	test.Error(t, err)
	sb := &strings.Builder{}
	test.Error(t, sc.WriteSVG(sb))
	return sb.String()
}

func TestSVGDocument(t *testing.T) {
	s := renderSVG(t, NewNode("Disk"), Options{})
	test.That(t, strings.HasPrefix(s, `<svg xmlns="http://www.w3.org/2000/svg"`))
	test.That(t, strings.Contains(s, `width="350px" height="350px"`))
	test.That(t, strings.HasSuffix(s, "</svg>\n"))
	test.That(t, strings.Contains(s, `<ellipse cx="175" cy="175" rx="175" ry="175"`))
	test.That(t, strings.Contains(s, "fill:rgb(0%, 0%, 0%)"))
}

func TestSVGBackground(t *testing.T) {
	s := renderSVG(t, NewNode("Disk"), Options{Background: Sym("Yellow")})
	test.That(t, strings.Contains(s, `<rect width="100%" height="100%" style="fill:rgb(100%, 100%, 0%)"/>`))
}

func TestSVGLine(t *testing.T) {
	tree := NewNode("Line", List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(1.0))))
	s := renderSVG(t, tree, Options{})

	// the device y axis runs downwards
	test.That(t, strings.Contains(s, `<polyline points="0,350 350,0"`))
	test.That(t, strings.Contains(s, "stroke:rgb(0%, 0%, 0%)"))
	test.That(t, strings.Contains(s, "stroke-width:"))
	test.That(t, strings.Contains(s, "fill:none"))
}

func TestSVGPolygonStyle(t *testing.T) {
	tree := List(
		NewNode("EdgeForm", Sym("Red")),
		Sym("Blue"),
		NewNode("Polygon", List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(0.0)), List(Num(0.0), Num(1.0)))),
	)
	s := renderSVG(t, tree, Options{})
	test.That(t, strings.Contains(s, "<polygon"))
	test.That(t, strings.Contains(s, "stroke:rgb(100%, 0%, 0%)"))
	test.That(t, strings.Contains(s, "fill:rgb(0%, 0%, 100%)"))
}

func TestSVGRectangle(t *testing.T) {
	tree := NewNode("Rectangle", List(Num(0.0), Num(0.0)), List(Num(2.0), Num(1.0)))
	s := renderSVG(t, tree, Options{ImageSize: Num(200.0)})
	test.That(t, strings.Contains(s, `<rect x="0" y="0" width="200" height="100"`))
}

func TestSVGSector(t *testing.T) {
	tree := NewNode("Disk", List(Num(0.0), Num(0.0)), Num(1.0), List(Num(0.0), Num(1.5707963267948966)))
	s := renderSVG(t, tree, Options{})
	test.That(t, strings.Contains(s, "<path d=\"M"))
	test.That(t, strings.Contains(s, " Z\""))
	test.That(t, strings.Contains(s, "A"))
}

func TestSVGTextEscaping(t *testing.T) {
	tree := NewNode("Text", Str("a<b&c"), List(Num(0.0), Num(0.0)))
	s := renderSVG(t, tree, Options{})
	test.That(t, strings.Contains(s, ">a&lt;b&amp;c</text>"))
}

func TestSVGBezier(t *testing.T) {
	tree := NewNode("BezierCurve", List(
		List(Num(0.0), Num(0.0)), List(Num(1.0), Num(2.0)), List(Num(3.0), Num(2.0)), List(Num(4.0), Num(0.0)),
	))
	s := renderSVG(t, tree, Options{})
	test.That(t, strings.Contains(s, `<path d="M`))
	test.That(t, strings.Contains(s, "C"))
}

func TestSVGArrow(t *testing.T) {
	tree := NewNode("Arrow", List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(0.0))))
	s := renderSVG(t, tree, Options{})
	test.That(t, strings.Contains(s, "<polyline"))

	// default head: size 0.04 of the 350px viewport, tip at the path end
	test.That(t, strings.Contains(s, `<polygon points="350,350 336,354.667 336,345.333"`))
}

func TestSVGArrowCustomGlyph(t *testing.T) {
	glyph := NewNode("Graphics", NewNode("Disk"))
	spec := NewNode("Arrowheads", List(List(Num(0.1), Num(1.0), glyph)))
	tree := List(spec, NewNode("Arrow", List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(0.0)))))
	s := renderSVG(t, tree, Options{})
	test.That(t, strings.Contains(s, `<g transform="translate(`))
	test.That(t, strings.Contains(s, "</g>"))
}

func TestSVGFragmentsPure(t *testing.T) {
	sc, err := Build(NewRegistry(), NewNode("Disk"), Options{}, true)
	test.Error(t, err)
	test.Error(t, sc.Size())

	svg := NewSVG(sc)
	a, err := svg.Fragments(sc.Elements[0])
	test.Error(t, err)
	b, err := svg.Fragments(sc.Elements[0])
	test.Error(t, err)
	test.T(t, a, b)
}
