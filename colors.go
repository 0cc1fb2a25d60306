package figure

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorSpace tags the variant of a Color.
type ColorSpace int

const (
	RGB ColorSpace = iota
	LAB
	LCH
	LUV
	XYZ
	CMYK
	Grayscale
	HSB
)

type colorSpaceInfo struct {
	head     string
	sizes    []int     // accepted input component counts
	defaults []float64 // default tail, also fixes the full component count
}

// LAB, LUV and LCH components follow the host convention of being stored
// pre-divided by 100; the LCH hue is stored as a fraction of a full turn.
var colorSpaceTable = map[ColorSpace]colorSpaceInfo{
	RGB:       {"RGBColor", []int{3, 4}, []float64{0, 0, 0, 1}},
	LAB:       {"LABColor", []int{3, 4}, []float64{0, 0, 0, 1}},
	LCH:       {"LCHColor", []int{3, 4}, []float64{0, 0, 0, 1}},
	LUV:       {"LUVColor", []int{3, 4}, []float64{0, 0, 0, 1}},
	XYZ:       {"XYZColor", []int{3, 4}, []float64{0, 0, 0, 1}},
	CMYK:      {"CMYKColor", []int{3, 4, 5}, []float64{0, 0, 0, 0, 1}},
	Grayscale: {"GrayLevel", []int{1, 2}, []float64{0, 1}},
	HSB:       {"Hue", []int{1, 2, 3, 4}, []float64{0, 1, 1, 1}},
}

var colorSpaceByHead = map[string]ColorSpace{
	"RGBColor":  RGB,
	"LABColor":  LAB,
	"LCHColor":  LCH,
	"LUVColor":  LUV,
	"XYZColor":  XYZ,
	"CMYKColor": CMYK,
	"GrayLevel": Grayscale,
	"Hue":       HSB,
}

// Color is a tagged variant over color spaces. Components are stored
// unclipped (out-of-gamut values are preserved) and always carry the
// variant's full component count including the trailing alpha.
type Color struct {
	Space      ColorSpace
	Components []float64
}

// NewColor validates the component count against the variant's whitelist and
// pads missing trailing components from the variant's default tail. Existing
// values are never clipped.
func NewColor(space ColorSpace, components ...float64) (Color, error) {
	info, ok := colorSpaceTable[space]
	if !ok {
		return Color{}, ErrColor
	}
	accepted := false
	for _, n := range info.sizes {
		if len(components) == n {
			accepted = true
			break
		}
	}
	if !accepted {
		return Color{}, ErrColor
	}
	comps := make([]float64, len(info.defaults))
	copy(comps, components)
	copy(comps[len(components):], info.defaults[len(components):])
	return Color{space, comps}, nil
}

// ColorFromNode creates a Color from its canonical expression form, e.g.
// RGBColor[1, 0, 0] or Hue[0.5, 1, 1, 0.8]. A single List argument is
// flattened, and named color symbols are resolved.
func ColorFromNode(n *Node) (Color, error) {
	if n == nil {
		return Color{}, ErrColor
	}
	if c, ok := namedColors[n.Head]; ok && len(n.Leaves) == 0 {
		return c, nil
	}
	space, ok := colorSpaceByHead[n.Head]
	if !ok {
		return Color{}, ErrColor
	}
	leaves := n.Leaves
	if len(leaves) == 1 && leaves[0].HasForm("List") {
		leaves = leaves[0].Leaves
	}
	components := make([]float64, len(leaves))
	for i, leaf := range leaves {
		v, ok := leaf.IsNum()
		if !ok {
			return Color{}, ErrColor
		}
		components[i] = v
	}
	return NewColor(space, components...)
}

// ToNode returns the canonical expression form of the color.
func (c Color) ToNode() *Node {
	leaves := make([]*Node, len(c.Components))
	for i, v := range c.Components {
		leaves[i] = Num(v)
	}
	return NewNode(colorSpaceTable[c.Space].head, leaves...)
}

// Alpha returns the opacity channel.
func (c Color) Alpha() float64 {
	return c.Components[len(c.Components)-1]
}

// ToRGBA converts to the RGB pivot and returns the four r, g, b, a components.
func (c Color) ToRGBA() []float64 {
	a := c.Alpha()
	var r, g, b float64
	switch c.Space {
	case RGB:
		r, g, b = c.Components[0], c.Components[1], c.Components[2]
	case HSB:
		r, g, b = hsbToRGB(c.Components[0], c.Components[1], c.Components[2])
	case Grayscale:
		r, g, b = c.Components[0], c.Components[0], c.Components[0]
	case CMYK:
		cy, m, y, k := c.Components[0], c.Components[1], c.Components[2], c.Components[3]
		r, g, b = (1-cy)*(1-k), (1-m)*(1-k), (1-y)*(1-k)
	case XYZ:
		col := colorful.Xyz(c.Components[0], c.Components[1], c.Components[2])
		r, g, b = col.R, col.G, col.B
	case LAB:
		col := colorful.Lab(c.Components[0], c.Components[1], c.Components[2])
		r, g, b = col.R, col.G, col.B
	case LUV:
		col := colorful.Luv(c.Components[0], c.Components[1], c.Components[2])
		r, g, b = col.R, col.G, col.B
	case LCH:
		col := colorful.Hcl(c.Components[2]*360.0, c.Components[1], c.Components[0])
		r, g, b = col.R, col.G, col.B
	}
	return []float64{r, g, b, a}
}

// Convert converts the color to another color space. Conversions between two
// non-RGB spaces pass through the RGB pivot.
func (c Color) Convert(space ColorSpace) (Color, error) {
	if space == c.Space {
		comps := make([]float64, len(c.Components))
		copy(comps, c.Components)
		return Color{c.Space, comps}, nil
	}
	rgba := c.ToRGBA()
	r, g, b, a := rgba[0], rgba[1], rgba[2], rgba[3]
	col := colorful.Color{R: r, G: g, B: b}
	switch space {
	case RGB:
		return Color{RGB, []float64{r, g, b, a}}, nil
	case HSB:
		h, s, v := rgbToHSB(r, g, b)
		return Color{HSB, []float64{h, s, v, a}}, nil
	case Grayscale:
		_, y, _ := col.Xyz()
		return Color{Grayscale, []float64{y, a}}, nil
	case CMYK:
		cy, m, y, k := rgbToCMYK(r, g, b)
		return Color{CMYK, []float64{cy, m, y, k, a}}, nil
	case XYZ:
		x, y, z := col.Xyz()
		return Color{XYZ, []float64{x, y, z, a}}, nil
	case LAB:
		l, la, lb := col.Lab()
		return Color{LAB, []float64{l, la, lb, a}}, nil
	case LUV:
		l, u, v := col.Luv()
		return Color{LUV, []float64{l, u, v, a}}, nil
	case LCH:
		h, ch, l := col.Hcl()
		return Color{LCH, []float64{l, ch, h / 360.0, a}}, nil
	}
	return Color{}, ErrColor
}

// CSS returns the CSS color function and the separate opacity value.
func (c Color) CSS() (string, float64) {
	rgba := c.ToRGBA()
	return "rgb(" + percent(rgba[0]) + "%, " + percent(rgba[1]) + "%, " + percent(rgba[2]) + "%)", rgba[3]
}

// hsbToRGB converts hue (wrapping fraction of a turn), saturation and
// brightness to RGB. This is the direct analytic path; it does not pass
// through the pivot.
func hsbToRGB(h, s, v float64) (float64, float64, float64) {
	h = h - math.Floor(h)
	i := math.Floor(h * 6.0)
	f := h*6.0 - i
	p := v * (1.0 - s)
	q := v * (1.0 - s*f)
	t := v * (1.0 - s*(1.0-f))
	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

func rgbToHSB(r, g, b float64) (float64, float64, float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v := max
	d := max - min
	if d == 0.0 || max == 0.0 {
		return 0.0, 0.0, v
	}
	s := d / max
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
	case g:
		h = (b-r)/d + 2.0
	default:
		h = (r-g)/d + 4.0
	}
	return h / 6.0, s, v
}

func rgbToCMYK(r, g, b float64) (float64, float64, float64, float64) {
	k := 1.0 - math.Max(r, math.Max(g, b))
	if 1.0-k < Epsilon {
		return 0.0, 0.0, 0.0, k
	}
	return (1.0 - r - k) / (1.0 - k), (1.0 - g - k) / (1.0 - k), (1.0 - b - k) / (1.0 - k), k
}

////////////////////////////////////////////////////////////////

// Blend interpolates over colors at a fraction x in [0,1]: the adjacent pair
// at bin floor(x·(N-1)) is linearly interpolated, and x=1 returns the last
// color exactly. If the colors do not share one variant they are converted to
// RGB first.
func Blend(colors []Color, x float64) (Color, error) {
	if len(colors) == 0 {
		return Color{}, ErrColor
	}
	if x < 0.0 {
		x = 0.0
	} else if x > 1.0 {
		x = 1.0
	}
	n := len(colors)
	if n == 1 {
		return colors[0], nil
	}
	pos := int(math.Floor(x * float64(n-1)))
	if pos == n-1 {
		return colors[n-1], nil
	}
	x = (x - float64(pos)/float64(n-1)) * float64(n-1)
	return blendWeighted(colors[pos:pos+2], []float64{1.0 - x, x})
}

// BlendWeighted averages all colors with the given non-negative weights,
// normalized by their sum. The weights list must match the colors in length.
func BlendWeighted(colors []Color, weights []float64) (Color, error) {
	if len(colors) == 0 {
		return Color{}, ErrColor
	}
	if len(weights) != len(colors) {
		return Color{}, ErrArgumentMismatch
	}
	for _, w := range weights {
		if w < 0.0 {
			return Color{}, ErrArgumentMismatch
		}
	}
	return blendWeighted(colors, weights)
}

func blendWeighted(colors []Color, weights []float64) (Color, error) {
	space := colors[0].Space
	homogeneous := true
	for _, c := range colors[1:] {
		if c.Space != space {
			homogeneous = false
			break
		}
	}
	if !homogeneous {
		converted := make([]Color, len(colors))
		for i, c := range colors {
			converted[i] = Color{RGB, c.ToRGBA()}
		}
		colors = converted
		space = RGB
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0.0 {
		return Color{}, ErrArgumentMismatch
	}
	result := make([]float64, len(colors[0].Components))
	for i, c := range colors {
		frac := weights[i] / total
		for j, comp := range c.Components {
			result[j] += comp * frac
		}
	}
	return Color{space, result}, nil
}

// Lighter blends c towards white by fraction f.
func Lighter(c Color, f float64) Color {
	blended, _ := Blend([]Color{c, White}, f)
	return blended
}

// Darker blends c towards black by fraction f.
func Darker(c Color, f float64) Color {
	blended, _ := Blend([]Color{c, Black}, f)
	return blended
}

////////////////////////////////////////////////////////////////

var (
	Black       = Color{RGB, []float64{0, 0, 0, 1}}
	White       = Color{RGB, []float64{1, 1, 1, 1}}
	Red         = Color{RGB, []float64{1, 0, 0, 1}}
	Green       = Color{RGB, []float64{0, 1, 0, 1}}
	Blue        = Color{RGB, []float64{0, 0, 1, 1}}
	Cyan        = Color{RGB, []float64{0, 1, 1, 1}}
	Magenta     = Color{RGB, []float64{1, 0, 1, 1}}
	Yellow      = Color{RGB, []float64{1, 1, 0, 1}}
	Orange      = Color{RGB, []float64{1, 0.5, 0, 1}}
	Pink        = Color{RGB, []float64{1, 0.5, 0.5, 1}}
	Purple      = Color{RGB, []float64{0.5, 0, 0.5, 1}}
	Brown       = Color{RGB, []float64{0.6, 0.4, 0.2, 1}}
	Gray        = Color{Grayscale, []float64{0.5, 1}}
	LightGray   = Color{Grayscale, []float64{0.85, 1}}
	Transparent = Color{RGB, []float64{0, 0, 0, 0}}
)

// namedColors resolves color symbols appearing in scene trees.
var namedColors = map[string]Color{
	"Black":       Black,
	"White":       White,
	"Red":         Red,
	"Green":       Green,
	"Blue":        Blue,
	"Cyan":        Cyan,
	"Magenta":     Magenta,
	"Yellow":      Yellow,
	"Orange":      Orange,
	"Pink":        Pink,
	"Purple":      Purple,
	"Brown":       Brown,
	"Gray":        Gray,
	"LightGray":   LightGray,
	"Transparent": Transparent,
}
