package figure

import (
	"fmt"
	"math"
)

const machineEpsilon = 2.220446049250313e-16

func euclideanDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func componentDistance(a, b []float64, i int) float64 {
	return math.Abs(a[i] - b[i])
}

// cie2000Distance implements the full CIEDE2000 formula on LAB values scaled
// to the conventional 0..100 range.
// See https://en.wikipedia.org/wiki/Color_difference#CIEDE2000
func cie2000Distance(lab1, lab2 []float64) float64 {
	e := machineEpsilon
	const kL, kC, kH = 1.0, 1.0, 1.0

	L1, L2 := lab1[0], lab2[0]
	a1, a2 := lab1[1], lab2[1]
	b1, b2 := lab1[2], lab2[2]

	dL := L2 - L1
	Lm := (L1 + L2) / 2.0
	C1 := math.Hypot(a1, b1)
	C2 := math.Hypot(a2, b2)
	Cm := (C1 + C2) / 2.0

	// chroma-based a* correction with the 25^7 weighting term
	g := (1.0 - math.Sqrt(math.Pow(Cm, 7.0)/(math.Pow(Cm, 7.0)+math.Pow(25.0, 7.0)))) / 2.0
	a1 *= 1.0 + g
	a2 *= 1.0 + g

	C1 = math.Hypot(a1, b1)
	C2 = math.Hypot(a2, b2)
	Cm = (C1 + C2) / 2.0
	dC := C2 - C1

	h1 := math.Mod(180.0*math.Atan2(b1, a1+e)/math.Pi+360.0, 360.0)
	h2 := math.Mod(180.0*math.Atan2(b2, a2+e)/math.Pi+360.0, 360.0)

	// shortest-arc hue difference
	var dh float64
	switch {
	case math.Abs(h2-h1) <= 180.0:
		dh = h2 - h1
	case h2 <= h1:
		dh = h2 - h1 + 360.0
	default:
		dh = h2 - h1 - 360.0
	}
	dH := 2.0 * math.Sqrt(C1*C2) * math.Sin(radians(dh)/2.0)

	Hm := (h1 + h2) / 2.0
	if math.Abs(h2-h1) > 180.0 {
		Hm = (h1 + h2 + 360.0) / 2.0
	}
	T := 1.0 -
		0.17*math.Cos(radians(Hm-30.0)) +
		0.24*math.Cos(radians(2.0*Hm)) +
		0.32*math.Cos(radians(3.0*Hm+6.0)) -
		0.2*math.Cos(radians(4.0*Hm-63.0))

	SL := 1.0 + 0.015*(Lm-50.0)*(Lm-50.0)/math.Sqrt(20.0+(Lm-50.0)*(Lm-50.0))
	SC := 1.0 + 0.045*Cm
	SH := 1.0 + 0.015*Cm*T

	// rotation term with a Gaussian centered at hue 275 degrees, width 25
	rT := -2.0 *
		math.Sqrt(math.Pow(Cm, 7.0)/(math.Pow(Cm, 7.0)+math.Pow(25.0, 7.0))) *
		math.Sin(radians(60.0*math.Exp(-(Hm-275.0)*(Hm-275.0)/(25.0*25.0))))

	return math.Sqrt(
		(dL/(SL*kL))*(dL/(SL*kL)) +
			(dC/(SC*kC))*(dC/(SC*kC)) +
			(dH/(SH*kH))*(dH/(SH*kH)) +
			rT*(dC/(SC*kC))*(dH/(SH*kH)))
}

// cmcDistance implements the 1984 Colour Measurement Committee formula with
// lightness and chroma weights l and c, on LAB values scaled to 0..100.
// See https://en.wikipedia.org/wiki/Color_difference#CMC_l:c_(1984)
func cmcDistance(lab1, lab2 []float64, l, c float64) float64 {
	L1, L2 := lab1[0], lab2[0]
	a1, a2 := lab1[1], lab2[1]
	b1, b2 := lab1[2], lab2[2]

	dL, da, db := L2-L1, a2-a1, b2-b1
	e := machineEpsilon

	C1 := math.Hypot(a1, b1)
	C2 := math.Hypot(a2, b2)

	h1 := math.Mod(180.0*math.Atan2(b1, a1+e)/math.Pi+360.0, 360.0)
	dC := C2 - C1
	dH2 := da*da + db*db - dC*dC
	F := C1 * C1 / math.Sqrt(C1*C1*C1*C1+1900.0)
	var T float64
	if 164.0 <= h1 && h1 <= 345.0 {
		T = 0.56 + math.Abs(0.2*math.Cos(radians(h1+168.0)))
	} else {
		T = 0.36 + math.Abs(0.4*math.Cos(radians(h1+35.0)))
	}

	SL := 0.511
	if L1 >= 16.0 {
		SL = 0.040975 * L1 / (1.0 + 0.01765*L1)
	}
	SC := 0.0638*C1/(1.0+0.0131*C1) + 0.638
	SH := SC * (F*T + 1.0 - F)
	return math.Sqrt((dL/(l*SL))*(dL/(l*SL)) + (dC/(c*SC))*(dC/(c*SC)) + dH2/(SH*SH))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

////////////////////////////////////////////////////////////////

type distanceFunc func(a, b Color) (float64, error)

func labScaled(c Color) ([]float64, error) {
	lab, err := c.Convert(LAB)
	if err != nil {
		return nil, err
	}
	return []float64{lab.Components[0] * 100.0, lab.Components[1] * 100.0, lab.Components[2] * 100.0}, nil
}

func labDistance(dist func(lab1, lab2 []float64) float64) distanceFunc {
	return func(a, b Color) (float64, error) {
		lab1, err := labScaled(a)
		if err != nil {
			return 0.0, err
		}
		lab2, err := labScaled(b)
		if err != nil {
			return 0.0, err
		}
		return dist(lab1, lab2) / 100.0, nil
	}
}

func spaceDistance(space ColorSpace, dist func(a, b []float64) float64) distanceFunc {
	return func(a, b Color) (float64, error) {
		ca, err := a.Convert(space)
		if err != nil {
			return 0.0, err
		}
		cb, err := b.Convert(space)
		if err != nil {
			return 0.0, err
		}
		return dist(ca.Components[:3], cb.Components[:3]), nil
	}
}

var namedDistances = map[string]distanceFunc{
	"CIE76":     spaceDistance(LAB, euclideanDistance),
	"CIE94":     spaceDistance(LCH, euclideanDistance),
	"CIE2000":   labDistance(cie2000Distance),
	"CIEDE2000": labDistance(cie2000Distance),
	"DeltaL":    spaceDistance(LCH, func(a, b []float64) float64 { return componentDistance(a, b, 0) }),
	"DeltaC":    spaceDistance(LCH, func(a, b []float64) float64 { return componentDistance(a, b, 1) }),
	"DeltaH":    spaceDistance(LCH, func(a, b []float64) float64 { return componentDistance(a, b, 2) }),
	"CMC":       labDistance(func(lab1, lab2 []float64) float64 { return cmcDistance(lab1, lab2, 1.0, 1.0) }),
}

// resolveDistanceFunction turns a DistanceFunction option value into a
// distance function. Accepted forms are Automatic (CIE76), a metric name,
// {"CMC", "Perceptibility"|"Acceptability"|{l, c}}, or a custom callback that
// is applied to the two LAB component lists through the host evaluator.
func resolveDistanceFunction(spec *Node, ev Evaluator) (distanceFunc, error) {
	if spec == nil || spec.IsSym("Automatic") {
		return namedDistances["CIE76"], nil
	}
	if name, ok := spec.IsStr(); ok {
		if compute, ok := namedDistances[name]; ok {
			return compute, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidDistanceSpec, name)
	}
	if spec.HasForm("List", 2) {
		if name, ok := spec.Leaves[0].IsStr(); !ok || name != "CMC" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDistanceSpec, spec)
		}
		arg := spec.Leaves[1]
		if mode, ok := arg.IsStr(); ok {
			switch mode {
			case "Perceptibility":
				return namedDistances["CMC"], nil
			case "Acceptability":
				return labDistance(func(lab1, lab2 []float64) float64 {
					return cmcDistance(lab1, lab2, 2.0, 1.0)
				}), nil
			}
			return nil, fmt.Errorf("%w: %s", ErrInvalidDistanceSpec, spec)
		}
		if arg.HasForm("List", 2) {
			l, okl := arg.Leaves[0].IsNum()
			c, okc := arg.Leaves[1].IsNum()
			if okl && okc && l > 0.0 && c > 0.0 {
				return labDistance(func(lab1, lab2 []float64) float64 {
					return cmcDistance(lab1, lab2, l, c)
				}), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidDistanceSpec, spec)
	}
	if spec.HasForm("List") || len(spec.Leaves) == 0 {
		// other lists and bare symbols are not distance selectors
		return nil, fmt.Errorf("%w: %s", ErrInvalidDistanceSpec, spec)
	}
	if ev == nil {
		return nil, fmt.Errorf("%w: custom distance needs an evaluator", ErrInvalidDistanceSpec)
	}
	return func(a, b Color) (float64, error) {
		labA, err := a.Convert(LAB)
		if err != nil {
			return 0.0, err
		}
		labB, err := b.Convert(LAB)
		if err != nil {
			return 0.0, err
		}
		result, err := ev.Apply(spec, []*Node{labA.ToNode(), labB.ToNode()})
		if err != nil {
			return 0.0, err
		}
		v, ok := result.IsNum()
		if !ok {
			return 0.0, fmt.Errorf("%w: callback returned %s", ErrInvalidDistanceSpec, result)
		}
		return v, nil
	}, nil
}

// ColorDistance measures the color distance between c1 and c2, each either a
// color node or a list of color nodes. Two lists must have equal length and
// yield elementwise distances; a single color against a list broadcasts.
func ColorDistance(c1, c2 *Node, distanceSpec *Node, ev Evaluator) (*Node, error) {
	compute, err := resolveDistanceFunction(distanceSpec, ev)
	if err != nil {
		return nil, err
	}

	distance := func(a, b *Node) (*Node, error) {
		ca, err := ColorFromNode(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrArgumentMismatch, a)
		}
		cb, err := ColorFromNode(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrArgumentMismatch, b)
		}
		v, err := compute(ca, cb)
		if err != nil {
			return nil, err
		}
		return Num(v), nil
	}

	if c1.HasForm("List") {
		if c2.HasForm("List") {
			if len(c1.Leaves) != len(c2.Leaves) {
				return nil, fmt.Errorf("%w: %d vs %d colors", ErrArgumentMismatch, len(c1.Leaves), len(c2.Leaves))
			}
			results := make([]*Node, len(c1.Leaves))
			for i := range c1.Leaves {
				if results[i], err = distance(c1.Leaves[i], c2.Leaves[i]); err != nil {
					return nil, err
				}
			}
			return List(results...), nil
		}
		results := make([]*Node, len(c1.Leaves))
		for i, a := range c1.Leaves {
			if results[i], err = distance(a, c2); err != nil {
				return nil, err
			}
		}
		return List(results...), nil
	}
	if c2.HasForm("List") {
		results := make([]*Node, len(c2.Leaves))
		for i, b := range c2.Leaves {
			if results[i], err = distance(c1, b); err != nil {
				return nil, err
			}
		}
		return List(results...), nil
	}
	return distance(c1, c2)
}
