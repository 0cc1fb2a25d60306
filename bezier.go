package figure

import "fmt"

// bezierEvaluate evaluates the Bezier curve with the given control points at
// parameter t using the closed-form Bernstein expansion. Only degrees 1
// through 3 are supported.
// See https://pomax.github.io/bezierinfo/, controlling curvatures.
func bezierEvaluate(p []Point, t float64) (Point, error) {
	switch len(p) - 1 {
	case 1:
		mt := 1.0 - t
		return Point{
			p[0].X*mt + p[1].X*t,
			p[0].Y*mt + p[1].Y*t,
		}, nil
	case 2:
		t2 := t * t
		mt := 1.0 - t
		mt2 := mt * mt
		return Point{
			p[0].X*mt2 + 2.0*p[1].X*mt*t + p[2].X*t2,
			p[0].Y*mt2 + 2.0*p[1].Y*mt*t + p[2].Y*t2,
		}, nil
	case 3:
		t2 := t * t
		t3 := t2 * t
		mt := 1.0 - t
		mt2 := mt * mt
		mt3 := mt2 * mt
		return Point{
			p[0].X*mt3 + 3.0*p[1].X*mt2*t + 3.0*p[2].X*mt*t2 + p[3].X*t3,
			p[0].Y*mt3 + 3.0*p[1].Y*mt2*t + 3.0*p[2].Y*mt*t2 + p[3].Y*t3,
		}, nil
	}
	return Point{}, fmt.Errorf("%w: %d", ErrUnsupportedDegree, len(p)-1)
}

// bezierDerivative returns the control points of the derivative curve, one
// degree lower: n·(p[i+1]-p[i]).
func bezierDerivative(p []Point) []Point {
	n := float64(len(p) - 1)
	d := make([]Point, len(p)-1)
	for i := range d {
		d[i] = p[i+1].Sub(p[i]).Mul(n)
	}
	return d
}
