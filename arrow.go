package figure

import (
	"fmt"
	"sort"
)

const defaultArrowheadSize = 0.04 // fraction of viewport width

// symbolicArrowheadSizes are named head sizes in absolute points.
var symbolicArrowheadSizes = map[string]float64{
	"Tiny":   3.0,
	"Small":  5.0,
	"Medium": 9.0,
	"Large":  18.0,
}

// arrowHead is one resolved head spec: a device size, a normalized position
// along the total path length, and an optional custom glyph scene.
type arrowHead struct {
	size  float64
	pos   float64
	glyph *Scene
}

// ArrowPlacement is a directional marker dropped on a path.
type ArrowPlacement struct {
	Pos   Point // device position
	Dir   Point // unit tangent
	Size  float64
	Glyph *Scene // nil draws the default head
}

func arrowSize(n *Node, vp *Viewport, extent float64) (float64, error) {
	if n.IsSym("Automatic") {
		return defaultArrowheadSize * extent, nil
	}
	if size, ok := symbolicArrowheadSizes[n.Head]; ok && len(n.Leaves) == 0 {
		return vp.TranslateAbsolute(Point{size, 0.0}).X, nil
	}
	if v, ok := n.IsNum(); ok {
		return v * extent, nil
	}
	return 0.0, fmt.Errorf("%w: %s", ErrStyle, n)
}

// parseArrowheads resolves an Arrowheads spec into an ordered list of head
// placements, sorted by ascending position. extent is the viewport pixel
// width that relative sizes scale against. customGlyph builds the nested
// glyph scene of a {size, pos, Graphics[...]} spec.
// See the Arrowheads reference for the accepted forms.
func parseArrowheads(spec *Node, vp *Viewport, extent float64, customGlyph func(*Node) (*Scene, error)) ([]arrowHead, error) {
	var heads []arrowHead
	if spec == nil {
		heads = []arrowHead{{size: defaultArrowheadSize * extent, pos: 1.0}}
	} else if spec.HasForm("List") {
		allLists := true
		for _, leaf := range spec.Leaves {
			if !leaf.HasForm("List") {
				allLists = false
				break
			}
		}
		if allLists {
			for _, head := range spec.Leaves {
				if len(head.Leaves) != 2 && len(head.Leaves) != 3 {
					return nil, fmt.Errorf("%w: %s", ErrStyle, head)
				}
				size, err := arrowSize(head.Leaves[0], vp, extent)
				if err != nil {
					return nil, err
				}
				pos, ok := head.Leaves[1].IsNum()
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrStyle, head)
				}
				h := arrowHead{size: size, pos: pos}
				if len(head.Leaves) == 3 && customGlyph != nil {
					glyphNode := head.Leaves[2]
					if !glyphNode.HasForm("Graphics") {
						return nil, fmt.Errorf("%w: %s", ErrStyle, glyphNode)
					}
					if h.glyph, err = customGlyph(glyphNode); err != nil {
						return nil, err
					}
				}
				heads = append(heads, h)
			}
		} else {
			n := float64(len(spec.Leaves) - 1)
			if n < 1.0 {
				n = 1.0
			}
			for i, leaf := range spec.Leaves {
				size, err := arrowSize(leaf, vp, extent)
				if err != nil {
					return nil, err
				}
				heads = append(heads, arrowHead{size: size, pos: float64(i) / n})
			}
		}
	} else {
		size, err := arrowSize(spec, vp, extent)
		if err != nil {
			return nil, err
		}
		heads = []arrowHead{{size: size, pos: 1.0}}
	}
	sort.SliceStable(heads, func(i, j int) bool { return heads[i].pos < heads[j].pos })
	return heads, nil
}

////////////////////////////////////////////////////////////////

type pathSegment struct {
	start  Point
	unit   Point
	length float64
}

// polylineSegments drops zero-length segments so tangents stay well defined.
func polylineSegments(points []Point) []pathSegment {
	var segs []pathSegment
	for i := 0; i+1 < len(points); i++ {
		d := points[i+1].Sub(points[i])
		length := d.Length()
		if length == 0.0 {
			continue
		}
		segs = append(segs, pathSegment{points[i], d.Mul(1.0 / length), length})
	}
	return segs
}

// placePolylineArrows walks the polyline once, in non-decreasing head
// position order, converting each normalized position into an arc-length
// offset. Heads past the end of the path are clamped to the final point;
// zero-sized heads are dropped.
func placePolylineArrows(points []Point, heads []arrowHead) []ArrowPlacement {
	segs := polylineSegments(points)
	if len(segs) == 0 {
		return nil
	}
	total := 0.0
	for _, seg := range segs {
		total += seg.length
	}

	var out []ArrowPlacement
	i := 0
	consumed := 0.0
	for _, h := range heads {
		if h.size == 0.0 {
			continue
		}
		t := h.pos*total - consumed
		for i < len(segs) && t > segs[i].length {
			t -= segs[i].length
			consumed += segs[i].length
			i++
		}
		var pos, dir Point
		if i == len(segs) {
			last := segs[len(segs)-1]
			pos = last.start.Add(last.unit.Mul(last.length))
			dir = last.unit
		} else {
			pos = segs[i].start.Add(segs[i].unit.Mul(t))
			dir = segs[i].unit
		}
		out = append(out, ArrowPlacement{pos, dir, h.size, h.glyph})
	}
	return out
}

// placeCurveArrows places heads directly at curve parameter t = position;
// the tangent is the normalized derivative at t.
func placeCurveArrows(ctrl []Point, heads []arrowHead) ([]ArrowPlacement, error) {
	if len(ctrl) < 2 {
		return nil, nil
	}
	deriv := bezierDerivative(ctrl)

	var out []ArrowPlacement
	for _, h := range heads {
		if h.size == 0.0 {
			continue
		}
		pos, err := bezierEvaluate(ctrl, h.pos)
		if err != nil {
			return nil, err
		}
		var tangent Point
		if len(deriv) == 1 {
			tangent = deriv[0]
		} else if tangent, err = bezierEvaluate(deriv, h.pos); err != nil {
			return nil, err
		}
		out = append(out, ArrowPlacement{pos, tangent.Norm(1.0), h.size, h.glyph})
	}
	return out, nil
}

// splitBezier chunks a control-point list into consecutive Bezier segments of
// the given degree, adjacent segments sharing their boundary point. A short
// trailing chunk becomes a lower-degree segment.
func splitBezier(pts []Point, degree int) [][]Point {
	var segs [][]Point
	for i := 0; i+1 < len(pts); i += degree {
		end := i + degree + 1
		if len(pts) < end {
			end = len(pts)
		}
		segs = append(segs, pts[i:end])
	}
	return segs
}

// placeSplineArrows places heads on a chain of Bezier segments, the parameter
// range split uniformly across the segments.
func placeSplineArrows(segments [][]Point, heads []arrowHead) ([]ArrowPlacement, error) {
	n := len(segments)
	if n == 0 {
		return nil, nil
	}
	var out []ArrowPlacement
	for _, h := range heads {
		u := h.pos * float64(n)
		i := int(u)
		if i >= n {
			i = n - 1
		}
		placed, err := placeCurveArrows(segments[i], []arrowHead{{size: h.size, pos: u - float64(i), glyph: h.glyph}})
		if err != nil {
			return nil, err
		}
		out = append(out, placed...)
	}
	return out, nil
}

// arrowheadPolygon returns the default triangular head glyph for a placement,
// tip at the placement point. A negative size flips the head direction.
func arrowheadPolygon(p ArrowPlacement) []Point {
	back := p.Pos.Sub(p.Dir.Mul(p.Size))
	side := p.Dir.Rot90CCW().Mul(p.Size / 3.0)
	return []Point{p.Pos, back.Add(side), back.Sub(side)}
}

////////////////////////////////////////////////////////////////

// shortenPolyline keeps a logical distance s1 from the path start and s2 from
// its end, consuming whole segments as needed. A setback longer than the path
// collapses it to its midpoint-most remainder (an empty slice).
func shortenPolyline(points []Point, s1, s2 float64) []Point {
	points = setbackFront(points, s1)
	if s2 > 0.0 && len(points) > 1 {
		reversed := make([]Point, len(points))
		for i, p := range points {
			reversed[len(points)-1-i] = p
		}
		reversed = setbackFront(reversed, s2)
		points = make([]Point, len(reversed))
		for i, p := range reversed {
			points[len(reversed)-1-i] = p
		}
	}
	return points
}

func setbackFront(points []Point, s float64) []Point {
	if s <= 0.0 {
		return points
	}
	for len(points) > 1 {
		d := points[1].Sub(points[0])
		length := d.Length()
		if s < length {
			out := make([]Point, len(points))
			copy(out, points)
			out[0] = points[0].Add(d.Mul(s / length))
			return out
		}
		s -= length
		points = points[1:]
	}
	return nil
}
