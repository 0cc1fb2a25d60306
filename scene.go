package figure

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Sizing defaults.
const defaultImageWidth = 350.0

// imageSizeTokens are named image widths in device pixels.
var imageSizeTokens = map[string]float64{
	"Tiny":   100.0,
	"Small":  180.0,
	"Medium": 350.0,
	"Large":  600.0,
}

// elementCtor builds a primitive element from its positional data and Rule
// options, under a cloned style snapshot.
type elementCtor func(st *Style, data []*Node, options map[string]*Node) (*Element, error)

// Registry maps primitive heads to element constructors. It is built once,
// optionally extended by the host, and passed explicitly into Build.
type Registry struct {
	ctors map[string]elementCtor
}

// NewRegistry returns a registry covering the built-in primitives.
func NewRegistry() *Registry {
	return &Registry{ctors: map[string]elementCtor{
		"Point":          newPointElement,
		"Line":           newLineElement,
		"Polygon":        newPolygonElement,
		"RegularPolygon": newRegularPolygonElement,
		"Rectangle":      newRectangleElement,
		"Disk":           newDiskElement,
		"Circle":         newCircleElement,
		"Text":           newTextElement,
		"Inset":          newTextElement,
		"BezierCurve":    newBezierElement,
		"FilledCurve":    newFilledCurveElement,
		"Arrow":          newArrowElement,
	}}
}

// Register binds an additional primitive head to a constructor.
func (reg *Registry) Register(head string, ctor elementCtor) {
	reg.ctors[head] = ctor
}

////////////////////////////////////////////////////////////////

// Options are the resolved scene options supplied by the host evaluator.
// Nil fields mean Automatic.
type Options struct {
	ImageSize        *Node // Automatic, a size token, a number, {w, h} or a dimension string
	PlotRange        *Node // Automatic or {{xmin, xmax}, {ymin, ymax}}
	PlotRangePadding *Node // Automatic or None, a number, or {px, py} in logical units
	AspectRatio      *Node // Automatic or a number (height over width)
	Background       *Node // a color node, or nil for no background
}

// Scene is a built scene tree: elements in draw order sharing one viewport.
// It is built once, sized once, rendered, then discarded.
type Scene struct {
	Elements   []*Element
	Viewport   *Viewport
	Background *Color

	reg  *Registry
	opts Options
}

// Build walks the input tree and instantiates an element per primitive node,
// each with an independent style snapshot. negY selects device coordinates
// with an inverted y axis (SVG-style).
func Build(reg *Registry, tree *Node, opts Options, negY bool) (*Scene, error) {
	sc := &Scene{
		Viewport: &Viewport{NegY: negY},
		reg:      reg,
		opts:     opts,
	}
	if opts.Background != nil && !opts.Background.IsSym("Automatic") && !opts.Background.IsSym("None") {
		background, err := ColorFromNode(opts.Background)
		if err != nil {
			return nil, err
		}
		sc.Background = &background
	}
	if err := sc.walk(tree, newStyle(sc.Viewport)); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scene) walk(n *Node, st *Style) error {
	if n.HasForm("List") {
		// directives inside a list do not leak out of it
		inner := st.Clone()
		for _, leaf := range n.Leaves {
			if isStyleNode(leaf) {
				if err := inner.Append(leaf); err != nil {
					return err
				}
			} else if err := sc.walk(leaf, inner); err != nil {
				return err
			}
		}
		return nil
	}
	if n.HasForm("Style") || n.HasForm("StyleBox") {
		if len(n.Leaves) == 0 {
			return fmt.Errorf("%w: %s", ErrStyle, n)
		}
		inner := st.Clone()
		for _, leaf := range n.Leaves[1:] {
			if leaf.HasForm("Rule", 2) {
				inner.SetOption(leaf.Leaves[0].Head, leaf.Leaves[1])
			} else if err := inner.Append(leaf); err != nil {
				return err
			}
		}
		return sc.walk(n.Leaves[0], inner)
	}
	if ctor, ok := sc.reg.ctors[n.Head]; ok && !n.isNum && !n.isStr {
		data, options, err := dataAndOptions(n.Leaves)
		if err != nil {
			return err
		}
		e, err := ctor(st.Clone(), data, options)
		if err != nil {
			return err
		}
		sc.Elements = append(sc.Elements, e)
		return nil
	}
	if isStyleNode(n) {
		return st.Append(n)
	}
	return fmt.Errorf("%w: %s", ErrUnrecognizedPrimitive, n.Head)
}

////////////////////////////////////////////////////////////////

// Extent returns the union of all element extents. With visibleOnly only
// elements flagged completely visible participate, so decorations do not
// influence auto-sizing.
func (sc *Scene) Extent(visibleOnly bool) Extent {
	var ext Extent
	for _, e := range sc.Elements {
		if visibleOnly && !e.CompletelyVisible {
			continue
		}
		ext = ext.Add(e.Extent())
	}
	return expandDegenerate(ext)
}

// expandDegenerate grows a zero span to a symmetric unit span so a zero-area
// scene still produces a sizeable viewport.
func expandDegenerate(ext Extent) Extent {
	if ext.IsEmpty() {
		return Extent{-1.0, 1.0, -1.0, 1.0, true}
	}
	if ext.Width() == 0.0 {
		ext.XMin -= 1.0
		ext.XMax += 1.0
	}
	if ext.Height() == 0.0 {
		ext.YMin -= 1.0
		ext.YMax += 1.0
	}
	return ext
}

// plotRange reads an explicit {{xmin, xmax}, {ymin, ymax}} plot range.
func plotRange(n *Node) (Extent, bool, error) {
	if n == nil || n.IsSym("Automatic") || n.IsSym("All") {
		return Extent{}, false, nil
	}
	if !n.HasForm("List", 2) {
		return Extent{}, false, fmt.Errorf("%w: PlotRange %s", ErrCoordinate, n)
	}
	xs, errx := numLeaves(n.Leaves[0])
	ys, erry := numLeaves(n.Leaves[1])
	if errx != nil || erry != nil || len(xs) != 2 || len(ys) != 2 {
		return Extent{}, false, fmt.Errorf("%w: PlotRange %s", ErrCoordinate, n)
	}
	return Extent{xs[0], xs[1], ys[0], ys[1], true}, true, nil
}

// padRange grows the logical box by the PlotRangePadding option, a single
// amount or an {px, py} pair in logical units.
func padRange(ext Extent, n *Node) (Extent, error) {
	if n == nil || n.IsSym("Automatic") || n.IsSym("None") {
		return ext, nil
	}
	px, py := 0.0, 0.0
	if v, ok := n.IsNum(); ok {
		px, py = v, v
	} else if n.HasForm("List", 2) {
		vals, err := numLeaves(n)
		if err != nil {
			return ext, fmt.Errorf("%w: PlotRangePadding %s", ErrCoordinate, n)
		}
		px, py = vals[0], vals[1]
	} else {
		return ext, fmt.Errorf("%w: PlotRangePadding %s", ErrCoordinate, n)
	}
	ext.XMin -= px
	ext.XMax += px
	ext.YMin -= py
	ext.YMax += py
	return ext, nil
}

// parseDimension reads a CSS-style dimension string into device pixels.
func parseDimension(v string) (float64, error) {
	nn, _ := parse.Dimension([]byte(v))
	value, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil {
		return 0.0, fmt.Errorf("%w: bad dimension %q", ErrCoordinate, v)
	}
	switch strings.ToLower(v[nn:]) {
	case "cm":
		return value * 10.0 * 96.0 / 25.4, nil
	case "mm":
		return value * 96.0 / 25.4, nil
	case "q":
		return value * 0.25 * 96.0 / 25.4, nil
	case "in":
		return value * 96.0, nil
	case "pc":
		return value * 96.0 / 6.0, nil
	case "pt":
		return value * 96.0 / 72.0, nil
	case "", "px":
		return value, nil
	}
	return 0.0, fmt.Errorf("%w: unknown dimension %q", ErrCoordinate, v)
}

// imageSize resolves the ImageSize option to a device width and an optional
// explicit height (0 when the height follows the aspect ratio).
func imageSize(n *Node) (w, h float64, err error) {
	if n == nil || n.IsSym("Automatic") {
		return defaultImageWidth, 0.0, nil
	}
	if w, ok := imageSizeTokens[n.Head]; ok && len(n.Leaves) == 0 {
		return w, 0.0, nil
	}
	if v, ok := n.IsNum(); ok {
		return v, 0.0, nil
	}
	if s, ok := n.IsStr(); ok {
		w, err := parseDimension(s)
		return w, 0.0, err
	}
	if n.HasForm("List", 2) {
		vals, err := numLeaves(n)
		if err != nil {
			return 0.0, 0.0, fmt.Errorf("%w: ImageSize %s", ErrCoordinate, n)
		}
		return vals[0], vals[1], nil
	}
	return 0.0, 0.0, fmt.Errorf("%w: ImageSize %s", ErrCoordinate, n)
}

// Size measures the scene and sizes its viewport: extents are computed with
// the unsized viewport, the logical box is fixed (PlotRange wins over the
// measured extent), then the device pixel size follows from ImageSize and
// AspectRatio. Must be called exactly once, before rendering.
func (sc *Scene) Size() error {
	ext := sc.Extent(false)
	if override, ok, err := plotRange(sc.opts.PlotRange); err != nil {
		return err
	} else if ok {
		ext = expandDegenerate(override)
	}
	ext, err := padRange(ext, sc.opts.PlotRangePadding)
	if err != nil {
		return err
	}

	w, h, err := imageSize(sc.opts.ImageSize)
	if err != nil {
		return err
	}
	if w <= 0.0 {
		return fmt.Errorf("%w: ImageSize %s", ErrCoordinate, sc.opts.ImageSize)
	}
	if h <= 0.0 {
		if ar := sc.opts.AspectRatio; ar != nil && !ar.IsSym("Automatic") {
			v, ok := ar.IsNum()
			if !ok || v <= 0.0 {
				return fmt.Errorf("%w: AspectRatio %s", ErrCoordinate, ar)
			}
			h = w * v
		} else {
			h = w * ext.Height() / ext.Width()
		}
	}

	sc.Viewport.SetSize(ext.XMin, ext.YMin, ext.Width(), ext.Height(), w, h)
	return nil
}

////////////////////////////////////////////////////////////////

// arrowheads resolves the arrowheads spec in effect for a style against the
// sized viewport. Custom glyphs are built as nested scenes.
func (sc *Scene) arrowheads(st *Style) ([]arrowHead, error) {
	return parseArrowheads(st.Arrowheads(), sc.Viewport, sc.Viewport.PixelWidth, sc.buildGlyph)
}

// buildGlyph builds the nested scene of a custom arrowhead glyph. Its
// viewport maps the glyph's logical extent one-to-one to device units, so
// backends can place it with a uniform translate/rotate/scale transform.
func (sc *Scene) buildGlyph(graphics *Node) (*Scene, error) {
	if len(graphics.Leaves) == 0 {
		return nil, fmt.Errorf("%w: empty glyph", ErrUnrecognizedPrimitive)
	}
	glyph, err := Build(sc.reg, graphics.Leaves[0], Options{}, false)
	if err != nil {
		return nil, err
	}
	ext := glyph.Extent(false)
	glyph.Viewport.SetSize(ext.XMin, ext.YMin, ext.Width(), ext.Height(), ext.Width(), ext.Height())
	return glyph, nil
}
