package figure

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// SVG emits scene elements as SVG element fragments. Emission is a pure
// function of element, style and the sized viewport; re-invoking on the same
// element yields the same fragments.
type SVG struct {
	scene *Scene
}

// NewSVG returns an SVG emitter over a sized scene.
func NewSVG(sc *Scene) *SVG {
	return &SVG{sc}
}

// WriteSVG sizes the scene if needed and writes it as a complete SVG document.
func WriteSVG(w io.Writer, sc *Scene) error {
	if !sc.Viewport.Sized() {
		if err := sc.Size(); err != nil {
			return err
		}
	}
	vp := sc.Viewport
	if _, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%vpx" height="%vpx" viewBox="0 0 %v %v">`+"\n",
		num(vp.PixelWidth), num(vp.PixelHeight), num(vp.PixelWidth), num(vp.PixelHeight)); err != nil {
		return err
	}
	if sc.Background != nil {
		css, a := sc.Background.CSS()
		style := "fill:" + css
		if a != 1.0 {
			style += fmt.Sprintf(";fill-opacity:%v", num(a))
		}
		fmt.Fprintf(w, `<rect width="100%%" height="100%%" style="%s"/>`+"\n", style)
	}

	svg := NewSVG(sc)
	for _, e := range sc.Elements {
		fragments, err := svg.Fragments(e)
		if err != nil {
			return err
		}
		for _, fragment := range fragments {
			if _, err := io.WriteString(w, fragment+"\n"); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "</svg>\n")
	return err
}

// WriteSVG writes the scene as a complete SVG document.
func (sc *Scene) WriteSVG(w io.Writer) error {
	return WriteSVG(w, sc)
}

////////////////////////////////////////////////////////////////

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func svgPoint(p Point) string {
	return fmt.Sprintf("%v,%v", num(p.X), num(p.Y))
}

func svgPoints(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = svgPoint(p)
	}
	return strings.Join(parts, " ")
}

func (svg *SVG) resolve(group []Coord) []Point {
	pts := make([]Point, len(group))
	for i, c := range group {
		pts[i] = c.Resolve(svg.scene.Viewport)
	}
	return pts
}

// elementCSS builds the style attribute of an element; stroke and fill select
// which halves of the resolved style apply.
func elementCSS(e *Element, stroke, fill bool) string {
	var decl []string
	edge, face := e.Style.ResolveColor(e.faceElement())
	if stroke && edge != nil {
		css, a := edge.CSS()
		decl = append(decl, "stroke:"+css)
		if a != 1.0 {
			decl = append(decl, fmt.Sprintf("stroke-opacity:%v", num(a)))
		}
		if lw := e.Style.LineWidth(e.faceElement()); lw != 0.0 {
			decl = append(decl, fmt.Sprintf("stroke-width:%vpx", num(lw)))
		}
	} else {
		decl = append(decl, "stroke:none")
	}
	if fill && face != nil {
		css, a := face.CSS()
		decl = append(decl, "fill:"+css)
		if a != 1.0 {
			decl = append(decl, fmt.Sprintf("fill-opacity:%v", num(a)))
		}
	} else {
		decl = append(decl, "fill:none")
	}
	if e.Opacity != 1.0 {
		decl = append(decl, fmt.Sprintf("opacity:%v", num(e.Opacity)))
	}
	return strings.Join(decl, ";")
}

// svgPathData builds a path command stream over a control-point run, choosing
// the command letter per consumed group by degree. Leading zero-length groups
// are skipped so degenerate curves do not emit empty commands.
func svgPathData(pts []Point, degree int) string {
	var sb strings.Builder
	sb.WriteString("M" + svgPoint(pts[0]))
	cur := pts[0]
	started := false
	i := 1
	for i < len(pts) {
		n := degree
		if len(pts)-i < n {
			n = len(pts) - i
		}
		group := pts[i : i+n]
		i += n

		if !started {
			zero := true
			for _, p := range group {
				if !p.Equals(cur) {
					zero = false
					break
				}
			}
			if zero {
				continue
			}
			started = true
		}
		switch n {
		case 1:
			sb.WriteString("L" + svgPoint(group[0]))
		case 2:
			sb.WriteString("Q" + svgPoint(group[0]) + " " + svgPoint(group[1]))
		default:
			sb.WriteString("C" + svgPoint(group[0]) + " " + svgPoint(group[1]) + " " + svgPoint(group[2]))
		}
		cur = group[n-1]
	}
	return sb.String()
}

// arcPoint returns the device point on the ellipse rim at logical angle a.
func (svg *SVG) arcPoint(e *Element, c Point, a float64) Point {
	vp := svg.scene.Viewport
	dx := vp.ScaleX(e.Rx * math.Cos(a))
	dy := vp.ScaleY(e.Ry * math.Sin(a))
	if vp.NegY {
		dy = -dy
	}
	return Point{c.X + dx, c.Y + dy}
}

////////////////////////////////////////////////////////////////

// Fragments emits one element as a sequence of SVG fragments.
func (svg *SVG) Fragments(e *Element) ([]string, error) {
	vp := svg.scene.Viewport
	switch e.Kind {
	case PointElement:
		r := e.Style.PointSize() / 2.0
		style := elementCSS(e, false, true)
		var out []string
		for _, group := range e.Lines {
			for _, p := range svg.resolve(group) {
				out = append(out, fmt.Sprintf(`<circle cx="%v" cy="%v" r="%v" style="%s"/>`,
					num(p.X), num(p.Y), num(r), style))
			}
		}
		return out, nil

	case LineElement:
		style := elementCSS(e, true, false)
		var out []string
		for _, group := range e.Lines {
			out = append(out, fmt.Sprintf(`<polyline points="%s" style="%s"/>`,
				svgPoints(svg.resolve(group)), style))
		}
		return out, nil

	case PolygonElement:
		style := elementCSS(e, true, true)
		var out []string
		for _, group := range e.Lines {
			out = append(out, fmt.Sprintf(`<polygon points="%s" style="%s"/>`,
				svgPoints(svg.resolve(group)), style))
		}
		return out, nil

	case RectangleElement:
		c1 := e.Lines[0][0].Resolve(vp)
		c2 := e.Lines[0][1].Resolve(vp)
		x, y := math.Min(c1.X, c2.X), math.Min(c1.Y, c2.Y)
		return []string{fmt.Sprintf(`<rect x="%v" y="%v" width="%v" height="%v" style="%s"/>`,
			num(x), num(y), num(math.Abs(c2.X-c1.X)), num(math.Abs(c2.Y-c1.Y)), elementCSS(e, true, true))}, nil

	case DiskElement, CircleElement:
		c := e.Center.Resolve(vp)
		rx, ry := vp.ScaleX(e.Rx), vp.ScaleY(e.Ry)
		fill := e.Kind == DiskElement
		style := elementCSS(e, true, fill)
		if !e.hasAngles() {
			return []string{fmt.Sprintf(`<ellipse cx="%v" cy="%v" rx="%v" ry="%v" style="%s"/>`,
				num(c.X), num(c.Y), num(rx), num(ry), style)}, nil
		}
		start := svg.arcPoint(e, c, e.Angle1)
		end := svg.arcPoint(e, c, e.Angle2)
		span := e.Angle2 - e.Angle1
		large, sweep := 0, 0
		if math.Abs(span) > math.Pi {
			large = 1
		}
		// logical angles run counterclockwise, device y runs down
		if span < 0.0 {
			sweep = 1
		}
		arc := fmt.Sprintf("A%v %v 0 %d %d %s", num(rx), num(ry), large, sweep, svgPoint(end))
		if e.Sector {
			return []string{fmt.Sprintf(`<path d="M%s L%s %s Z" style="%s"/>`,
				svgPoint(c), svgPoint(start), arc, style)}, nil
		}
		return []string{fmt.Sprintf(`<path d="M%s %s" style="%s"/>`, svgPoint(start), arc, style)}, nil

	case TextElement:
		p := e.Center.Resolve(vp)
		style := "fill:rgb(0%, 0%, 0%)"
		if edge, _ := e.Style.ResolveColor(false); edge != nil {
			css, a := edge.CSS()
			style = "fill:" + css
			if a != 1.0 {
				style += fmt.Sprintf(";fill-opacity:%v", num(a))
			}
		}
		return []string{fmt.Sprintf(`<text x="%v" y="%v" text-anchor="middle" style="%s">%s</text>`,
			num(p.X), num(p.Y), style, xmlEscaper.Replace(e.Text))}, nil

	case BezierElement:
		style := elementCSS(e, true, false)
		var out []string
		for _, group := range e.Lines {
			out = append(out, fmt.Sprintf(`<path d="%s" style="%s"/>`,
				svgPathData(svg.resolve(group), e.Degree), style))
		}
		return out, nil

	case FilledCurveElement:
		var sb strings.Builder
		for _, component := range e.Components {
			for i, seg := range component {
				pts := svg.resolve(seg.coords)
				if i == 0 {
					sb.WriteString(svgPathData(pts, seg.degree))
				} else {
					// continuation segments re-anchor at their first point
					d := svgPathData(pts, seg.degree)
					sb.WriteString(" " + d)
				}
			}
			sb.WriteString("Z")
		}
		return []string{fmt.Sprintf(`<path d="%s" style="%s"/>`, sb.String(), elementCSS(e, true, true))}, nil

	case ArrowElement:
		return svg.arrowFragments(e)
	}
	return nil, fmt.Errorf("%w: element kind %d", ErrUnrecognizedPrimitive, e.Kind)
}

func (svg *SVG) arrowFragments(e *Element) ([]string, error) {
	vp := svg.scene.Viewport
	heads, err := svg.scene.arrowheads(e.Style)
	if err != nil {
		return nil, err
	}
	style := elementCSS(e, true, false)

	var out []string
	var placements []ArrowPlacement
	if e.Curve != nil {
		pts := svg.resolve(e.Curve.Lines[0])
		out = append(out, fmt.Sprintf(`<path d="%s" style="%s"/>`, svgPathData(pts, e.Curve.Degree), style))
		if placements, err = placeSplineArrows(splitBezier(pts, e.Curve.Degree), heads); err != nil {
			return nil, err
		}
	} else {
		for _, group := range e.Lines {
			pts := shortenPolyline(svg.resolve(group), vp.ScaleX(e.Setback[0]), vp.ScaleX(e.Setback[1]))
			if len(pts) < 2 {
				continue
			}
			out = append(out, fmt.Sprintf(`<polyline points="%s" style="%s"/>`, svgPoints(pts), style))
			placements = append(placements, placePolylineArrows(pts, heads)...)
		}
	}

	for _, p := range placements {
		fragments, err := svg.headFragments(e, p)
		if err != nil {
			return nil, err
		}
		out = append(out, fragments...)
	}
	return out, nil
}

func (svg *SVG) headFragments(e *Element, p ArrowPlacement) ([]string, error) {
	if p.Glyph == nil {
		style := "fill:rgb(0%, 0%, 0%)"
		if edge, _ := e.Style.ResolveColor(false); edge != nil {
			css, a := edge.CSS()
			style = "fill:" + css
			if a != 1.0 {
				style += fmt.Sprintf(";fill-opacity:%v", num(a))
			}
		}
		return []string{fmt.Sprintf(`<polygon points="%s" style="%s"/>`,
			svgPoints(arrowheadPolygon(p)), style)}, nil
	}

	gvp := p.Glyph.Viewport
	scale := 1.0
	if gvp.PixelWidth > 0.0 {
		scale = p.Size / gvp.PixelWidth
	}
	angle := math.Atan2(p.Dir.Y, p.Dir.X) * 180.0 / math.Pi
	// the glyph scene uses y-up device coordinates, flip into SVG space
	out := []string{fmt.Sprintf(`<g transform="translate(%v,%v) rotate(%v) scale(%v,%v) translate(%v,%v)">`,
		num(p.Pos.X), num(p.Pos.Y), num(angle), num(scale), num(-scale),
		num(-gvp.PixelWidth/2.0), num(-gvp.PixelHeight/2.0))}
	glyph := NewSVG(p.Glyph)
	for _, ge := range p.Glyph.Elements {
		fragments, err := glyph.Fragments(ge)
		if err != nil {
			return nil, err
		}
		out = append(out, fragments...)
	}
	return append(out, "</g>"), nil
}
