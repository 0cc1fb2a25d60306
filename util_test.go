package figure

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestPoint(t *testing.T) {
	p := Point{3.0, 4.0}
	test.T(t, p.Mul(2.0), Point{6.0, 8.0})
	test.T(t, p.Add(Point{1.0, 1.0}), Point{4.0, 5.0})
	test.T(t, p.Sub(Point{1.0, 1.0}), Point{2.0, 3.0})
	test.T(t, p.Rot90CCW(), Point{-4.0, 3.0})
	test.Float(t, p.Length(), 5.0)
	test.T(t, p.Norm(10.0), Point{6.0, 8.0})
	test.T(t, Point{}.Norm(1.0), Point{0.0, 0.0})
	test.T(t, Point{}.Interpolate(p, 0.5), Point{1.5, 2.0})
	test.T(t, p.IsZero(), false)
	test.T(t, Point{}.IsZero(), true)
	test.T(t, p.Equals(Point{3.0, 4.0}), true)
}

func TestExtent(t *testing.T) {
	var e Extent
	test.T(t, e.IsEmpty(), true)

	e = e.Union(Point{1.0, 2.0})
	test.T(t, e.IsEmpty(), false)
	test.Float(t, e.Width(), 0.0)

	e = e.Union(Point{3.0, -2.0})
	test.Float(t, e.XMin, 1.0)
	test.Float(t, e.XMax, 3.0)
	test.Float(t, e.YMin, -2.0)
	test.Float(t, e.YMax, 2.0)
	test.Float(t, e.Width(), 2.0)
	test.Float(t, e.Height(), 4.0)

	q := Extent{}.Union(Point{10.0, 10.0})
	sum := e.Add(q)
	test.Float(t, sum.XMax, 10.0)
	test.T(t, e.Add(Extent{}), e)
	test.T(t, Extent{}.Add(e), e)

	padded := e.Pad(0.5)
	test.Float(t, padded.XMin, 0.5)
	test.Float(t, padded.YMax, 2.5)
}

func TestNode(t *testing.T) {
	n := NewNode("Disk", List(Num(1.0), Num(2.0)), Num(3.0))
	test.String(t, n.String(), "Disk[List[1, 2], 3]")
	test.T(t, n.HasForm("Disk"), true)
	test.T(t, n.HasForm("Disk", 2), true)
	test.T(t, n.HasForm("Disk", 1), false)
	test.T(t, n.HasForm("Circle"), false)

	v, ok := Num(1.5).IsNum()
	test.That(t, ok)
	test.Float(t, v, 1.5)
	s, ok := Str("x").IsStr()
	test.That(t, ok)
	test.String(t, s, "x")
	test.T(t, Sym("Automatic").IsSym("Automatic"), true)
	test.T(t, Num(1.0).IsSym("Automatic"), false)

	p, err := coords(List(Num(1.0), Num(2.0)))
	test.Error(t, err)
	test.T(t, p, Point{1.0, 2.0})
	_, err = coords(List(Num(1.0)))
	test.That(t, err != nil)

	data, options, err := dataAndOptions([]*Node{Num(1.0), Rule("SplineDegree", Num(2.0))})
	test.Error(t, err)
	test.That(t, len(data) == 1)
	test.That(t, options["SplineDegree"] != nil)
}
