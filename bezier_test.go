package figure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestBezierEndpoints(t *testing.T) {
	var tts = [][]Point{
		{{0.0, 0.0}, {4.0, 2.0}},
		{{0.0, 0.0}, {1.0, 1.0}, {2.0, 0.0}},
		{{0.0, 0.0}, {1.0, 2.0}, {3.0, 2.0}, {4.0, 0.0}},
	}
	for i, p := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			start, err := bezierEvaluate(p, 0.0)
			test.Error(t, err)
			test.T(t, start, p[0])

			end, err := bezierEvaluate(p, 1.0)
			test.Error(t, err)
			test.T(t, end, p[len(p)-1])
		})
	}
}

func TestBezierEvaluate(t *testing.T) {
	// quadratic midpoint
	p, err := bezierEvaluate([]Point{{0.0, 0.0}, {1.0, 1.0}, {2.0, 0.0}}, 0.5)
	test.Error(t, err)
	test.T(t, p, Point{1.0, 0.5})

	// linear interpolation
	p, err = bezierEvaluate([]Point{{0.0, 0.0}, {4.0, 2.0}}, 0.25)
	test.Error(t, err)
	test.T(t, p, Point{1.0, 0.5})

	// cubic midpoint
	p, err = bezierEvaluate([]Point{{0.0, 0.0}, {0.0, 2.0}, {2.0, 2.0}, {2.0, 0.0}}, 0.5)
	test.Error(t, err)
	test.T(t, p, Point{1.0, 1.5})
}

func TestBezierUnsupportedDegree(t *testing.T) {
	_, err := bezierEvaluate([]Point{{0.0, 0.0}}, 0.5)
	test.That(t, errors.Is(err, ErrUnsupportedDegree))

	_, err = bezierEvaluate([]Point{{0.0, 0.0}, {1.0, 0.0}, {2.0, 0.0}, {3.0, 0.0}, {4.0, 0.0}}, 0.5)
	test.That(t, errors.Is(err, ErrUnsupportedDegree))
}

func TestBezierDerivative(t *testing.T) {
	d := bezierDerivative([]Point{{0.0, 0.0}, {2.0, 2.0}})
	test.T(t, d, []Point{{2.0, 2.0}})

	d = bezierDerivative([]Point{{0.0, 0.0}, {1.0, 2.0}, {3.0, 2.0}, {4.0, 0.0}})
	test.T(t, d, []Point{{3.0, 6.0}, {6.0, 0.0}, {3.0, -6.0}})

	// derivative at the start points along the first control leg
	p, err := bezierEvaluate(d, 0.0)
	test.Error(t, err)
	test.T(t, p, Point{3.0, 6.0})
}
