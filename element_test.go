package figure

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func buildOne(t *testing.T, tree *Node) *Element {
	t.Helper()
	sc, err := Build(NewRegistry(), tree, Options{}, false)
	test.Error(t, err)
	test.That(t, len(sc.Elements) == 1)
	return sc.Elements[0]
}

func TestCoordGroups(t *testing.T) {
	// a flat coordinate list is promoted to a single group
	single := List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(1.0)))
	groups, err := parseCoordGroups(single)
	test.Error(t, err)
	test.That(t, len(groups) == 1)
	test.That(t, len(groups[0]) == 2)

	nested := List(single, single)
	groups, err = parseCoordGroups(nested)
	test.Error(t, err)
	test.That(t, len(groups) == 2)

	_, err = parseCoordGroups(Num(1.0))
	test.That(t, errors.Is(err, ErrCoordinate))
	_, err = parseCoordGroups(List())
	test.That(t, errors.Is(err, ErrCoordinate))
}

func TestPointPromotion(t *testing.T) {
	e := buildOne(t, NewNode("Point", List(Num(2.0), Num(3.0))))
	test.That(t, len(e.Lines) == 1)
	test.That(t, len(e.Lines[0]) == 1)
	test.T(t, *e.Lines[0][0].P, Point{2.0, 3.0})

	e = buildOne(t, NewNode("Point", List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(1.0)))))
	test.That(t, len(e.Lines[0]) == 2)
}

func TestRectangleDefaultCorner(t *testing.T) {
	e := buildOne(t, NewNode("Rectangle", List(Num(1.0), Num(2.0))))
	test.T(t, *e.Lines[0][0].P, Point{1.0, 2.0})
	test.T(t, *e.Lines[0][1].P, Point{2.0, 3.0})
}

func TestDiskDefaults(t *testing.T) {
	e := buildOne(t, NewNode("Disk"))
	test.T(t, *e.Center.P, Point{})
	test.Float(t, e.Rx, 1.0)
	test.Float(t, e.Ry, 1.0)
	test.T(t, e.hasAngles(), false)

	e = buildOne(t, NewNode("Disk", List(Num(1.0), Num(1.0)), List(Num(2.0), Num(3.0))))
	test.Float(t, e.Rx, 2.0)
	test.Float(t, e.Ry, 3.0)

	e = buildOne(t, NewNode("Disk", List(Num(0.0), Num(0.0)), Num(1.0), List(Num(0.0), Num(1.0))))
	test.T(t, e.Sector, true)

	e = buildOne(t, NewNode("Circle", List(Num(0.0), Num(0.0)), Num(1.0), List(Num(0.0), Num(1.0))))
	test.T(t, e.Sector, false)
	test.T(t, e.hasAngles(), true)
}

func TestRegularPolygon(t *testing.T) {
	e := buildOne(t, NewNode("RegularPolygon", Num(4.0)))
	test.T(t, e.Kind, PolygonElement)
	test.That(t, len(e.Lines[0]) == 4)

	// the first vertex points up
	test.Float(t, e.Lines[0][0].P.X, 0.0)
	test.Float(t, e.Lines[0][0].P.Y, 1.0)

	e = buildOne(t, NewNode("RegularPolygon", List(Num(1.0), Num(1.0)), Num(2.0), Num(3.0)))
	test.That(t, len(e.Lines[0]) == 3)
	test.Float(t, e.Lines[0][0].P.Y, 3.0)

	// {r, phi} rotates the first vertex to the given phase
	e = buildOne(t, NewNode("RegularPolygon", List(Num(2.0), Num(0.0)), Num(4.0)))
	test.Float(t, e.Lines[0][0].P.X, 2.0)
	test.Float(t, e.Lines[0][0].P.Y, 0.0)

	_, err := Build(NewRegistry(), NewNode("RegularPolygon", Num(2.0)), Options{}, false)
	test.That(t, errors.Is(err, ErrCoordinate))
}

func TestTextContent(t *testing.T) {
	e := buildOne(t, NewNode("Text", Str("hello"), List(Num(1.0), Num(2.0))))
	test.String(t, e.Text, "hello")
	test.T(t, *e.Center.P, Point{1.0, 2.0})

	// non-string content renders through its expression form
	e = buildOne(t, NewNode("Text", NewNode("Subscript", Sym("x"), Num(1.0))))
	test.String(t, e.Text, "Subscript[x, 1]")
}

func TestBezierDegreeOption(t *testing.T) {
	pts := List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(1.0)), List(Num(2.0), Num(0.0)))
	e := buildOne(t, NewNode("BezierCurve", pts))
	test.T(t, e.Degree, 3)

	e = buildOne(t, NewNode("BezierCurve", pts, Rule("SplineDegree", Num(2.0))))
	test.T(t, e.Degree, 2)

	_, err := Build(NewRegistry(), NewNode("BezierCurve", pts, Rule("SplineDegree", Num(7.0))), Options{}, false)
	test.That(t, errors.Is(err, ErrUnsupportedDegree))
}

func TestFilledCurveComponents(t *testing.T) {
	line := NewNode("Line", List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(0.0))))
	curve := NewNode("BezierCurve", List(List(Num(1.0), Num(0.0)), List(Num(1.0), Num(1.0)), List(Num(0.0), Num(1.0))))

	e := buildOne(t, NewNode("FilledCurve", List(line, curve)))
	test.That(t, len(e.Components) == 1)
	test.That(t, len(e.Components[0]) == 2)
	test.T(t, e.Components[0][0].degree, 1)
	test.T(t, e.Components[0][1].degree, 3)

	e = buildOne(t, NewNode("FilledCurve", List(List(line), List(curve))))
	test.That(t, len(e.Components) == 2)

	_, err := Build(NewRegistry(), NewNode("FilledCurve", List(NewNode("Disk"))), Options{}, false)
	test.That(t, errors.Is(err, ErrUnrecognizedPrimitive))
}

func TestArrowSetback(t *testing.T) {
	pts := List(List(Num(0.0), Num(0.0)), List(Num(1.0), Num(0.0)))
	e := buildOne(t, NewNode("Arrow", pts, Num(0.1)))
	test.T(t, e.Setback, [2]float64{0.1, 0.1})

	e = buildOne(t, NewNode("Arrow", pts, List(Num(0.1), Num(0.2))))
	test.T(t, e.Setback, [2]float64{0.1, 0.2})

	_, err := Build(NewRegistry(), NewNode("Arrow", pts, Str("far")), Options{}, false)
	test.That(t, errors.Is(err, ErrCoordinate))
}

func TestArrowOverCurve(t *testing.T) {
	curve := NewNode("BezierCurve", List(
		List(Num(0.0), Num(0.0)), List(Num(1.0), Num(2.0)), List(Num(3.0), Num(2.0)), List(Num(4.0), Num(0.0)),
	))
	e := buildOne(t, NewNode("Arrow", curve))
	test.That(t, e.Curve != nil)
	test.T(t, e.Curve.Kind, BezierElement)
	test.That(t, len(e.Lines[0]) == 4)
}

func TestElementExtentPadding(t *testing.T) {
	vp := &Viewport{}
	vp.SetSize(0.0, 0.0, 100.0, 100.0, 100.0, 100.0)
	st := newStyle(vp)
	test.Error(t, st.Append(NewNode("AbsoluteThickness", Num(6.0))))

	e, err := newLineElement(st, []*Node{List(List(Num(10.0), Num(10.0)), List(Num(20.0), Num(10.0)))}, nil)
	test.Error(t, err)

	// padded by half the 8px device line width
	ext := e.Extent()
	test.Float(t, ext.YMin, 10.0-4.0)
	test.Float(t, ext.YMax, 10.0+4.0)
	test.Float(t, ext.XMin, 10.0-4.0)

	// angles of a sector do not change the conservative box
	disk := buildOne(t, NewNode("Disk", List(Num(0.0), Num(0.0)), Num(2.0)))
	ext = disk.Extent()
	test.Float(t, ext.XMin, -2.0)
	test.Float(t, ext.XMax, 2.0)
}
