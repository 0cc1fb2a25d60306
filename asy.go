package figure

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Asy emits scene elements as Asymptote drawing statements, one or more
// statements per element. The scene must be built with y-up device
// coordinates (negY false).
type Asy struct {
	scene *Scene
}

// NewAsy returns an Asymptote emitter over a sized scene.
func NewAsy(sc *Scene) *Asy {
	return &Asy{sc}
}

// WriteAsy sizes the scene if needed and writes it as a complete Asymptote
// figure, sized in centimeters and clipped to the viewport box.
func WriteAsy(w io.Writer, sc *Scene) error {
	if !sc.Viewport.Sized() {
		if err := sc.Size(); err != nil {
			return err
		}
	}
	vp := sc.Viewport
	if _, err := fmt.Fprintf(w, "size(%vcm, %vcm);\n",
		dec(vp.PixelWidth/96.0*2.54), dec(vp.PixelHeight/96.0*2.54)); err != nil {
		return err
	}
	if sc.Background != nil {
		fmt.Fprintf(w, "filldraw(box((0,0),(%v,%v)), %s);\n",
			num(vp.PixelWidth), num(vp.PixelHeight), asyPen(sc.Background, 0.0, 1.0))
	}

	asy := NewAsy(sc)
	for _, e := range sc.Elements {
		statements, err := asy.Fragments(e)
		if err != nil {
			return err
		}
		for _, statement := range statements {
			if _, err := io.WriteString(w, statement+"\n"); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "clip(box((0,0),(%v,%v)));\n", num(vp.PixelWidth), num(vp.PixelHeight))
	return err
}

// WriteAsy writes the scene as a complete Asymptote figure.
func (sc *Scene) WriteAsy(w io.Writer) error {
	return WriteAsy(w, sc)
}

////////////////////////////////////////////////////////////////

var asyEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func asyPair(p Point) string {
	return fmt.Sprintf("(%v,%v)", num(p.X), num(p.Y))
}

func asyPen(c *Color, lw, opacity float64) string {
	rgba := c.ToRGBA()
	pen := fmt.Sprintf("rgb(%v, %v, %v)", num(rgba[0]), num(rgba[1]), num(rgba[2]))
	if lw != 0.0 {
		pen += fmt.Sprintf("+linewidth(%v)", num(lw))
	}
	if a := rgba[3] * opacity; a != 1.0 {
		pen += fmt.Sprintf("+opacity(%v)", num(a))
	}
	return pen
}

// pens resolves the edge and face pens of an element; either may be empty.
func (asy *Asy) pens(e *Element) (edgePen, facePen string) {
	edge, face := e.Style.ResolveColor(e.faceElement())
	if edge != nil {
		edgePen = asyPen(edge, e.Style.LineWidth(e.faceElement()), e.Opacity)
	}
	if face != nil {
		facePen = asyPen(face, 0.0, e.Opacity)
	}
	return edgePen, facePen
}

func (asy *Asy) resolve(group []Coord) []Point {
	pts := make([]Point, len(group))
	for i, c := range group {
		pts[i] = c.Resolve(asy.scene.Viewport)
	}
	return pts
}

func asyPolyline(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = asyPair(p)
	}
	return strings.Join(parts, "--")
}

// asyBezierPath joins one Bezier control group into a path expression, one
// cubic controls clause per consumed segment. Quadratic segments are elevated
// to cubics; linear segments join with --.
func asyBezierPath(pts []Point, degree int) string {
	var sb strings.Builder
	sb.WriteString(asyPair(pts[0]))
	cur := pts[0]
	i := 1
	for i < len(pts) {
		n := degree
		if len(pts)-i < n {
			n = len(pts) - i
		}
		group := pts[i : i+n]
		i += n
		switch n {
		case 1:
			sb.WriteString("--" + asyPair(group[0]))
		case 2:
			c1 := cur.Interpolate(group[0], 2.0/3.0)
			c2 := group[1].Interpolate(group[0], 2.0/3.0)
			sb.WriteString("..controls" + asyPair(c1) + " and " + asyPair(c2) + ".." + asyPair(group[1]))
		default:
			sb.WriteString("..controls" + asyPair(group[0]) + " and " + asyPair(group[1]) + ".." + asyPair(group[2]))
		}
		cur = group[n-1]
	}
	return sb.String()
}

// wrapPath applies a textual transform prefix to a path expression.
func wrapPath(tf, path string) string {
	if tf == "" {
		return path
	}
	return tf + "*(" + path + ")"
}

////////////////////////////////////////////////////////////////

// Fragments emits one element as a sequence of Asymptote statements.
func (asy *Asy) Fragments(e *Element) ([]string, error) {
	return asy.fragments(e, "")
}

// fragments emits an element, optionally under a transform prefix that is
// composed onto every emitted path (used for custom arrowhead glyphs).
func (asy *Asy) fragments(e *Element, tf string) ([]string, error) {
	vp := asy.scene.Viewport
	edgePen, facePen := asy.pens(e)
	switch e.Kind {
	case PointElement:
		pen := facePen
		if pen == "" {
			pen = edgePen
		}
		r := e.Style.PointSize() / 2.0
		var out []string
		for _, group := range e.Lines {
			for _, p := range asy.resolve(group) {
				path := fmt.Sprintf("circle(%s,%v)", asyPair(p), num(r))
				out = append(out, fmt.Sprintf("filldraw(%s, %s);", wrapPath(tf, path), pen))
			}
		}
		return out, nil

	case LineElement:
		var out []string
		for _, group := range e.Lines {
			out = append(out, fmt.Sprintf("draw(%s, %s);", wrapPath(tf, asyPolyline(asy.resolve(group))), edgePen))
		}
		return out, nil

	case PolygonElement:
		var out []string
		for _, group := range e.Lines {
			path := wrapPath(tf, asyPolyline(asy.resolve(group))+"--cycle")
			out = append(out, asyFillStatement(path, edgePen, facePen))
		}
		return out, nil

	case RectangleElement:
		c1 := e.Lines[0][0].Resolve(vp)
		c2 := e.Lines[0][1].Resolve(vp)
		path := wrapPath(tf, fmt.Sprintf("box(%s,%s)", asyPair(c1), asyPair(c2)))
		return []string{asyFillStatement(path, edgePen, facePen)}, nil

	case DiskElement, CircleElement:
		c := e.Center.Resolve(vp)
		rx, ry := vp.ScaleX(e.Rx), vp.ScaleY(e.Ry)
		if !e.hasAngles() {
			path := wrapPath(tf, fmt.Sprintf("ellipse(%s,%v,%v)", asyPair(c), num(rx), num(ry)))
			if e.Kind == CircleElement {
				return []string{fmt.Sprintf("draw(%s, %s);", path, edgePen)}, nil
			}
			return []string{asyFillStatement(path, edgePen, facePen)}, nil
		}
		a1 := e.Angle1 * 180.0 / math.Pi
		a2 := e.Angle2 * 180.0 / math.Pi
		arc := fmt.Sprintf("arc((0,0),1,%v,%v)", num(a1), num(a2))
		prefix := fmt.Sprintf("shift%s*scale(%v,%v)", asyPair(c), num(rx), num(ry))
		if e.Sector {
			path := wrapPath(tf, prefix+"*((0,0)--"+arc+"--cycle)")
			return []string{asyFillStatement(path, edgePen, facePen)}, nil
		}
		return []string{fmt.Sprintf("draw(%s, %s);", wrapPath(tf, prefix+"*"+arc), edgePen)}, nil

	case TextElement:
		p := e.Center.Resolve(vp)
		pos := asyPair(p)
		if tf != "" {
			pos = tf + "*" + pos
		}
		pen := edgePen
		if pen == "" {
			pen = "rgb(0, 0, 0)"
		}
		return []string{fmt.Sprintf(`label("%s", %s, %s);`, asyEscaper.Replace(e.Text), pos, pen)}, nil

	case BezierElement:
		var out []string
		for _, group := range e.Lines {
			pts := asy.resolve(group)
			for _, seg := range splitBezier(pts, e.Degree) {
				out = append(out, fmt.Sprintf("draw(%s, %s);", wrapPath(tf, asyBezierPath(seg, e.Degree)), edgePen))
			}
		}
		return out, nil

	case FilledCurveElement:
		paths := make([]string, len(e.Components))
		for i, component := range e.Components {
			var sb strings.Builder
			for j, seg := range component {
				pts := asy.resolve(seg.coords)
				path := asyBezierPath(pts, seg.degree)
				if j > 0 {
					sb.WriteString("--")
				}
				sb.WriteString(path)
			}
			sb.WriteString("--cycle")
			paths[i] = wrapPath(tf, sb.String())
		}
		return []string{asyFillStatement(strings.Join(paths, "^^"), edgePen, facePen)}, nil

	case ArrowElement:
		return asy.arrowFragments(e, tf)
	}
	return nil, fmt.Errorf("%w: element kind %d", ErrUnrecognizedPrimitive, e.Kind)
}

// asyFillStatement picks filldraw, fill or draw depending on which pens the
// style resolved.
func asyFillStatement(path, edgePen, facePen string) string {
	switch {
	case facePen != "" && edgePen != "":
		return fmt.Sprintf("filldraw(%s, %s, %s);", path, facePen, edgePen)
	case facePen != "":
		return fmt.Sprintf("fill(%s, %s);", path, facePen)
	default:
		return fmt.Sprintf("draw(%s, %s);", path, edgePen)
	}
}

func (asy *Asy) arrowFragments(e *Element, tf string) ([]string, error) {
	vp := asy.scene.Viewport
	heads, err := asy.scene.arrowheads(e.Style)
	if err != nil {
		return nil, err
	}
	edgePen, _ := asy.pens(e)

	var out []string
	var placements []ArrowPlacement
	if e.Curve != nil {
		pts := asy.resolve(e.Curve.Lines[0])
		segments := splitBezier(pts, e.Curve.Degree)
		for _, seg := range segments {
			out = append(out, fmt.Sprintf("draw(%s, %s);", wrapPath(tf, asyBezierPath(seg, e.Curve.Degree)), edgePen))
		}
		if placements, err = placeSplineArrows(segments, heads); err != nil {
			return nil, err
		}
	} else {
		for _, group := range e.Lines {
			pts := shortenPolyline(asy.resolve(group), vp.ScaleX(e.Setback[0]), vp.ScaleX(e.Setback[1]))
			if len(pts) < 2 {
				continue
			}
			out = append(out, fmt.Sprintf("draw(%s, %s);", wrapPath(tf, asyPolyline(pts)), edgePen))
			placements = append(placements, placePolylineArrows(pts, heads)...)
		}
	}

	for _, p := range placements {
		statements, err := asy.headFragments(e, p, tf)
		if err != nil {
			return nil, err
		}
		out = append(out, statements...)
	}
	return out, nil
}

func (asy *Asy) headFragments(e *Element, p ArrowPlacement, tf string) ([]string, error) {
	if p.Glyph == nil {
		pen := "rgb(0, 0, 0)"
		if edge, _ := e.Style.ResolveColor(false); edge != nil {
			pen = asyPen(edge, 0.0, e.Opacity)
		}
		path := wrapPath(tf, asyPolyline(arrowheadPolygon(p))+"--cycle")
		return []string{fmt.Sprintf("fill(%s, %s);", path, pen)}, nil
	}

	gvp := p.Glyph.Viewport
	scale := 1.0
	if gvp.PixelWidth > 0.0 {
		scale = p.Size / gvp.PixelWidth
	}
	angle := math.Atan2(p.Dir.Y, p.Dir.X) * 180.0 / math.Pi
	inner := fmt.Sprintf("shift(%v,%v)*rotate(%v)*scale(%v)*shift(%v,%v)",
		num(p.Pos.X), num(p.Pos.Y), num(angle), num(scale),
		num(-gvp.PixelWidth/2.0), num(-gvp.PixelHeight/2.0))
	if tf != "" {
		inner = tf + "*" + inner
	}

	var out []string
	glyph := NewAsy(p.Glyph)
	for _, ge := range p.Glyph.Elements {
		statements, err := glyph.fragments(ge, inner)
		if err != nil {
			return nil, err
		}
		out = append(out, statements...)
	}
	return out, nil
}
