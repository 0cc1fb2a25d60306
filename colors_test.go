package figure

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func mustColor(t *testing.T, space ColorSpace, components ...float64) Color {
	t.Helper()
	c, err := NewColor(space, components...)
	test.Error(t, err)
	return c
}

func TestNewColorPadding(t *testing.T) {
	c := mustColor(t, RGB, 1.0, 0.0, 0.0)
	test.T(t, c.Components, []float64{1.0, 0.0, 0.0, 1.0})
	test.Float(t, c.Alpha(), 1.0)

	c = mustColor(t, Grayscale, 0.3)
	test.T(t, c.Components, []float64{0.3, 1.0})

	// hue alone defaults saturation and brightness to 1
	c = mustColor(t, HSB, 0.6)
	test.T(t, c.Components, []float64{0.6, 1.0, 1.0, 1.0})

	c = mustColor(t, CMYK, 0.1, 0.2, 0.3)
	test.T(t, c.Components, []float64{0.1, 0.2, 0.3, 0.0, 1.0})

	// out-of-gamut components are preserved, never clipped
	c = mustColor(t, RGB, 2.0, -1.0, 0.0)
	test.Float(t, c.Components[0], 2.0)
	test.Float(t, c.Components[1], -1.0)
}

func TestNewColorBadCount(t *testing.T) {
	_, err := NewColor(RGB, 1.0, 0.0)
	test.That(t, err != nil)
	_, err = NewColor(Grayscale, 1.0, 1.0, 1.0)
	test.That(t, err != nil)
	_, err = NewColor(CMYK)
	test.That(t, err != nil)
}

func TestColorFromNode(t *testing.T) {
	c, err := ColorFromNode(NewNode("RGBColor", Num(1.0), Num(0.0), Num(0.0)))
	test.Error(t, err)
	test.T(t, c, Red)

	c, err = ColorFromNode(Sym("Blue"))
	test.Error(t, err)
	test.T(t, c, Blue)

	// a single List argument is flattened
	c, err = ColorFromNode(NewNode("GrayLevel", List(Num(0.5), Num(0.8))))
	test.Error(t, err)
	test.T(t, c.Components, []float64{0.5, 0.8})

	_, err = ColorFromNode(NewNode("RGBColor", Str("red"), Num(0.0), Num(0.0)))
	test.That(t, err != nil)
	_, err = ColorFromNode(Sym("NoSuchColor"))
	test.That(t, err != nil)
}

func TestColorRoundTrip(t *testing.T) {
	var tts = []Color{
		mustColor(t, RGB, 0.2, 0.4, 0.6),
		mustColor(t, RGB, 0.2, 0.4, 0.6, 0.5),
		mustColor(t, CMYK, 0.1, 0.2, 0.3, 0.4),
		mustColor(t, Grayscale, 0.3),
		mustColor(t, HSB, 0.6, 0.5, 0.4),
		mustColor(t, LAB, 0.5, 0.1, -0.1),
		mustColor(t, LCH, 0.5, 0.2, 0.7),
		mustColor(t, LUV, 0.5, 0.1, -0.1),
		mustColor(t, XYZ, 0.3, 0.4, 0.5),
	}
	for i, c := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			back, err := ColorFromNode(c.ToNode())
			test.Error(t, err)
			want := c.ToRGBA()
			got := back.ToRGBA()
			for j := range want {
				test.Float(t, got[j], want[j])
			}
		})
	}
}

func TestColorConvertPivot(t *testing.T) {
	// Grayscale to CMYK passes through the RGB pivot
	c, err := Gray.Convert(CMYK)
	test.Error(t, err)
	test.T(t, c.Space, CMYK)

	rgba := c.ToRGBA()
	want := Gray.ToRGBA()
	for i := range want {
		test.Float(t, rgba[i], want[i])
	}
}

func TestHSBConversion(t *testing.T) {
	// primary red round trip through the analytic path
	r, g, b := hsbToRGB(0.0, 1.0, 1.0)
	test.Float(t, r, 1.0)
	test.Float(t, g, 0.0)
	test.Float(t, b, 0.0)

	h, s, v := rgbToHSB(0.0, 0.0, 1.0)
	test.Float(t, h, 2.0/3.0)
	test.Float(t, s, 1.0)
	test.Float(t, v, 1.0)

	// hue wraps
	r, g, b = hsbToRGB(1.5, 1.0, 1.0)
	r2, g2, b2 := hsbToRGB(0.5, 1.0, 1.0)
	test.Float(t, r, r2)
	test.Float(t, g, g2)
	test.Float(t, b, b2)
}

func TestBlendBoundary(t *testing.T) {
	c, err := Blend([]Color{Red, Blue}, 0.0)
	test.Error(t, err)
	test.T(t, c, Red)

	c, err = Blend([]Color{Red, Blue}, 1.0)
	test.Error(t, err)
	test.T(t, c, Blue)

	c, err = Blend([]Color{Red, Blue}, 0.5)
	test.Error(t, err)
	test.T(t, c.Components, []float64{0.5, 0.0, 0.5, 1.0})
}

func TestBlendBins(t *testing.T) {
	// x=0.5 over three colors lands exactly on the middle color
	c, err := Blend([]Color{Red, Green, Blue}, 0.5)
	test.Error(t, err)
	test.T(t, c.Components, []float64{0.0, 1.0, 0.0, 1.0})

	// mixed spaces fall back to RGB
	c, err = Blend([]Color{Red, Gray}, 1.0)
	test.Error(t, err)
	test.T(t, c, Gray)
	c, err = Blend([]Color{Red, Gray}, 0.25)
	test.Error(t, err)
	test.T(t, c.Space, RGB)
}

func TestBlendWeighted(t *testing.T) {
	c, err := BlendWeighted([]Color{Red, Blue}, []float64{1.0, 3.0})
	test.Error(t, err)
	test.T(t, c.Components, []float64{0.25, 0.0, 0.75, 1.0})

	_, err = BlendWeighted([]Color{Red, Blue}, []float64{1.0})
	test.That(t, err != nil)
	_, err = BlendWeighted([]Color{Red, Blue}, []float64{1.0, -1.0})
	test.That(t, err != nil)
	_, err = BlendWeighted([]Color{Red, Blue}, []float64{0.0, 0.0})
	test.That(t, err != nil)
}

func TestLighterDarker(t *testing.T) {
	c := Lighter(Black, 1.0/3.0)
	test.Float(t, c.Components[0], 1.0/3.0)
	test.Float(t, c.Components[1], 1.0/3.0)
	test.Float(t, c.Components[2], 1.0/3.0)

	c = Darker(White, 0.5)
	test.Float(t, c.Components[0], 0.5)
}

func TestColorCSS(t *testing.T) {
	css, a := Red.CSS()
	test.String(t, css, "rgb(100%, 0%, 0%)")
	test.Float(t, a, 1.0)

	half := mustColor(t, RGB, 1.0, 0.0, 0.0, 0.5)
	_, a = half.CSS()
	test.Float(t, a, 0.5)
}
