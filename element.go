package figure

import (
	"fmt"
	"math"
)

// ElementKind discriminates the primitive variants of Element.
type ElementKind int

const (
	PointElement ElementKind = iota
	LineElement
	PolygonElement
	DiskElement
	CircleElement
	RectangleElement
	TextElement
	BezierElement
	FilledCurveElement
	ArrowElement
)

// curveSegment is one piece of a filled curve: a run of control points with a
// spline degree.
type curveSegment struct {
	degree int
	coords []Coord
}

// Element is a graphics primitive with its resolved style snapshot. The
// geometric payload depends on Kind; unused fields stay zero.
type Element struct {
	Kind    ElementKind
	Style   *Style
	Opacity float64

	// CompletelyVisible excludes decorative elements from extent queries
	// that only consider the visible scene.
	CompletelyVisible bool

	Lines [][]Coord // point/line/polygon coordinate groups, bezier control groups, arrow path

	Center Coord // disk, circle
	Rx, Ry float64
	Angle1, Angle2 float64
	Sector bool // angled disks draw a pie sector, angled circles an open arc

	Degree     int              // bezier
	Components [][]curveSegment // filled curve

	Setback [2]float64 // arrow path shortening, logical units
	Curve   *Element   // arrow over a curve instead of a polyline

	Text string
}

func newElement(kind ElementKind, st *Style) *Element {
	return &Element{Kind: kind, Style: st, Opacity: st.Opacity()}
}

////////////////////////////////////////////////////////////////

// parseCoordList reads a list of coordinate nodes.
func parseCoordList(n *Node) ([]Coord, error) {
	if !n.HasForm("List") || len(n.Leaves) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCoordinate, n)
	}
	coords := make([]Coord, len(n.Leaves))
	for i, leaf := range n.Leaves {
		c, err := ParseCoord(leaf)
		if err != nil {
			return nil, err
		}
		coords[i] = c
	}
	return coords, nil
}

// parseCoordGroups reads either a single list of coordinates or a list of
// such lists, normalizing to the nested form.
func parseCoordGroups(n *Node) ([][]Coord, error) {
	if !n.HasForm("List") || len(n.Leaves) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCoordinate, n)
	}
	if _, err := ParseCoord(n.Leaves[0]); err == nil {
		group, err := parseCoordList(n)
		if err != nil {
			return nil, err
		}
		return [][]Coord{group}, nil
	}
	groups := make([][]Coord, len(n.Leaves))
	for i, leaf := range n.Leaves {
		group, err := parseCoordList(leaf)
		if err != nil {
			return nil, err
		}
		groups[i] = group
	}
	return groups, nil
}

////////////////////////////////////////////////////////////////

func newPointElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	if len(data) != 1 {
		return nil, fmt.Errorf("%w: Point", ErrCoordinate)
	}
	e := newElement(PointElement, st)

	// a single {x,y} is promoted to a one-point group
	if c, err := ParseCoord(data[0]); err == nil {
		e.Lines = [][]Coord{{c}}
		return e, nil
	}
	groups, err := parseCoordGroups(data[0])
	if err != nil {
		return nil, err
	}
	e.Lines = groups
	return e, nil
}

func newLineElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	if len(data) != 1 {
		return nil, fmt.Errorf("%w: Line", ErrCoordinate)
	}
	groups, err := parseCoordGroups(data[0])
	if err != nil {
		return nil, err
	}
	e := newElement(LineElement, st)
	e.Lines = groups
	return e, nil
}

func newPolygonElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	if len(data) != 1 {
		return nil, fmt.Errorf("%w: Polygon", ErrCoordinate)
	}
	groups, err := parseCoordGroups(data[0])
	if err != nil {
		return nil, err
	}
	e := newElement(PolygonElement, st)
	e.Lines = groups
	return e, nil
}

func newRectangleElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	if len(data) != 1 && len(data) != 2 {
		return nil, fmt.Errorf("%w: Rectangle", ErrCoordinate)
	}
	c1, err := ParseCoord(data[0])
	if err != nil {
		return nil, err
	}
	var c2 Coord
	if c1.P != nil {
		c2 = c1.Offset(1.0, 1.0) // unit square by default
	}
	if len(data) == 2 {
		if c2, err = ParseCoord(data[1]); err != nil {
			return nil, err
		}
	} else if c1.P == nil {
		return nil, fmt.Errorf("%w: Rectangle corner needs a base point", ErrCoordinate)
	}
	e := newElement(RectangleElement, st)
	e.Lines = [][]Coord{{c1, c2}}
	return e, nil
}

func parseRadii(n *Node) (rx, ry float64, err error) {
	if r, ok := n.IsNum(); ok {
		return r, r, nil
	}
	if n.HasForm("List", 2) {
		vals, err := numLeaves(n)
		if err != nil {
			return 0.0, 0.0, err
		}
		return vals[0], vals[1], nil
	}
	return 0.0, 0.0, fmt.Errorf("%w: %s", ErrCoordinate, n)
}

func newEllipseElement(kind ElementKind, st *Style, data []*Node) (*Element, error) {
	e := newElement(kind, st)
	e.Center = coordAt(Point{})
	e.Rx, e.Ry = 1.0, 1.0
	if len(data) > 3 {
		return nil, fmt.Errorf("%w: %d arguments", ErrCoordinate, len(data))
	}
	if len(data) > 0 {
		c, err := ParseCoord(data[0])
		if err != nil {
			return nil, err
		}
		e.Center = c
	}
	if len(data) > 1 {
		rx, ry, err := parseRadii(data[1])
		if err != nil {
			return nil, err
		}
		e.Rx, e.Ry = rx, ry
	}
	if len(data) > 2 {
		angles, err := numLeaves(data[2])
		if err != nil || len(angles) != 2 {
			return nil, fmt.Errorf("%w: %s", ErrCoordinate, data[2])
		}
		e.Angle1, e.Angle2 = angles[0], angles[1]
		e.Sector = kind == DiskElement
	}
	return e, nil
}

func newDiskElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	return newEllipseElement(DiskElement, st, data)
}

func newCircleElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	return newEllipseElement(CircleElement, st, data)
}

// hasAngles reports whether the ellipse covers less than the full turn.
func (e *Element) hasAngles() bool {
	return e.Angle1 != 0.0 || e.Angle2 != 0.0
}

func newRegularPolygonElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	center := Point{}
	r := 1.0
	phi0 := math.Pi / 2.0 // first vertex points up
	var nNode *Node
	switch len(data) {
	case 1:
		nNode = data[0]
	case 2:
		// either a radius or a {r, phi} pair
		if data[0].HasForm("List", 2) {
			vals, err := numLeaves(data[0])
			if err != nil {
				return nil, err
			}
			r, phi0 = vals[0], vals[1]
		} else if v, ok := data[0].IsNum(); ok {
			r = v
		} else {
			return nil, fmt.Errorf("%w: %s", ErrCoordinate, data[0])
		}
		nNode = data[1]
	case 3:
		c, err := coords(data[0])
		if err != nil {
			return nil, err
		}
		center = c
		if r, _, err = parseRadii(data[1]); err != nil {
			return nil, err
		}
		nNode = data[2]
	default:
		return nil, fmt.Errorf("%w: RegularPolygon", ErrCoordinate)
	}
	sides, ok := nNode.IsNum()
	if !ok || sides < 3.0 || sides != math.Trunc(sides) {
		return nil, fmt.Errorf("%w: %s sides", ErrCoordinate, nNode)
	}

	n := int(sides)
	group := make([]Coord, n)
	for i := 0; i < n; i++ {
		phi := phi0 + 2.0*math.Pi*float64(i)/float64(n)
		group[i] = coordAt(Point{center.X + r*math.Cos(phi), center.Y + r*math.Sin(phi)})
	}
	e := newElement(PolygonElement, st)
	e.Lines = [][]Coord{group}
	return e, nil
}

func newTextElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	if len(data) < 1 || len(data) > 3 {
		return nil, fmt.Errorf("%w: Text", ErrCoordinate)
	}
	e := newElement(TextElement, st)
	if s, ok := data[0].IsStr(); ok {
		e.Text = s
	} else {
		e.Text = data[0].String()
	}
	e.Center = coordAt(Point{})
	if len(data) > 1 {
		c, err := ParseCoord(data[1])
		if err != nil {
			return nil, err
		}
		e.Center = c
	}
	return e, nil
}

func splineDegree(options map[string]*Node, points int) (int, error) {
	degree := 3
	if opt := options["SplineDegree"]; opt != nil {
		v, ok := opt.IsNum()
		if !ok || v < 1.0 || v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: SplineDegree %s", ErrUnsupportedDegree, opt)
		}
		degree = int(v)
	}
	if degree > 3 {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedDegree, degree)
	}
	if points > 0 && points-1 < degree {
		degree = points - 1
	}
	return degree, nil
}

func newBezierElement(st *Style, data []*Node, options map[string]*Node) (*Element, error) {
	if len(data) != 1 {
		return nil, fmt.Errorf("%w: BezierCurve", ErrCoordinate)
	}
	groups, err := parseCoordGroups(data[0])
	if err != nil {
		return nil, err
	}
	e := newElement(BezierElement, st)
	e.Lines = groups
	if e.Degree, err = splineDegree(options, 0); err != nil {
		return nil, err
	}
	return e, nil
}

// parseCurveComponent reads one filled-curve component, a list of Line and
// BezierCurve segment heads.
func parseCurveComponent(n *Node) ([]curveSegment, error) {
	if !n.HasForm("List") || len(n.Leaves) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedPrimitive, n)
	}
	segments := make([]curveSegment, len(n.Leaves))
	for i, seg := range n.Leaves {
		var degree int
		switch {
		case seg.HasForm("Line", 1):
			degree = 1
		case seg.HasForm("BezierCurve", 1, 2):
			data, options, err := dataAndOptions(seg.Leaves)
			if err != nil || len(data) != 1 {
				return nil, fmt.Errorf("%w: %s", ErrUnrecognizedPrimitive, seg)
			}
			if degree, err = splineDegree(options, 0); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnrecognizedPrimitive, seg)
		}
		coords, err := parseCoordList(seg.Leaves[0])
		if err != nil {
			return nil, err
		}
		segments[i] = curveSegment{degree, coords}
	}
	return segments, nil
}

func newFilledCurveElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	if len(data) != 1 || !data[0].HasForm("List") || len(data[0].Leaves) == 0 {
		return nil, fmt.Errorf("%w: FilledCurve", ErrUnrecognizedPrimitive)
	}
	e := newElement(FilledCurveElement, st)

	// a single component may omit the outer list
	if !data[0].Leaves[0].HasForm("List") {
		component, err := parseCurveComponent(data[0])
		if err != nil {
			return nil, err
		}
		e.Components = [][]curveSegment{component}
		return e, nil
	}
	e.Components = make([][]curveSegment, len(data[0].Leaves))
	for i, comp := range data[0].Leaves {
		component, err := parseCurveComponent(comp)
		if err != nil {
			return nil, err
		}
		e.Components[i] = component
	}
	return e, nil
}

func newArrowElement(st *Style, data []*Node, _ map[string]*Node) (*Element, error) {
	if len(data) != 1 && len(data) != 2 {
		return nil, fmt.Errorf("%w: Arrow", ErrCoordinate)
	}
	e := newElement(ArrowElement, st)
	if data[0].HasForm("BezierCurve", 1, 2) {
		curveData, curveOptions, err := dataAndOptions(data[0].Leaves)
		if err != nil {
			return nil, err
		}
		if e.Curve, err = newBezierElement(st, curveData, curveOptions); err != nil {
			return nil, err
		}
		e.Lines = e.Curve.Lines
	} else {
		groups, err := parseCoordGroups(data[0])
		if err != nil {
			return nil, err
		}
		e.Lines = groups
	}
	if len(data) == 2 {
		if s, ok := data[1].IsNum(); ok {
			e.Setback = [2]float64{s, s}
		} else if vals, err := numLeaves(data[1]); err == nil && len(vals) == 2 {
			e.Setback = [2]float64{vals[0], vals[1]}
		} else {
			return nil, fmt.Errorf("%w: %s", ErrCoordinate, data[1])
		}
	}
	return e, nil
}

////////////////////////////////////////////////////////////////

// Extent returns the bounding box of the element, padded by half its resolved
// line width. While the viewport is unsized coordinates resolve to logical
// space and the line width is zero, so this is the logical bounding box.
func (e *Element) Extent() Extent {
	vp := e.Style.vp
	var ext Extent
	switch e.Kind {
	case DiskElement, CircleElement:
		c := e.Center.Resolve(vp)
		ext = ext.Union(Point{c.X - e.Rx, c.Y - e.Ry})
		ext = ext.Union(Point{c.X + e.Rx, c.Y + e.Ry})
	case TextElement:
		ext = ext.Union(e.Center.Resolve(vp))
	case FilledCurveElement:
		for _, component := range e.Components {
			for _, seg := range component {
				for _, c := range seg.coords {
					ext = ext.Union(c.Resolve(vp))
				}
			}
		}
	default:
		for _, group := range e.Lines {
			for _, c := range group {
				ext = ext.Union(c.Resolve(vp))
			}
		}
	}

	return ext.Pad(e.Style.LineWidth(e.faceElement()) / 2.0)
}

// faceElement reports whether the element resolves style in the face-biased
// role (filled primitives).
func (e *Element) faceElement() bool {
	switch e.Kind {
	case PolygonElement, DiskElement, RectangleElement, FilledCurveElement, PointElement:
		return true
	}
	return false
}
