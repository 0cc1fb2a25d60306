package figure

import "fmt"

// Style directive defaults.
const (
	defaultEdgeThickness = 0.5   // absolute points, edge-biased roles only
	defaultPointFactor   = 0.005 // point diameter as fraction of viewport width
	defaultViewWidth     = 400.0 // assumed viewport width while unsized
)

type directiveKind int

const (
	colorDirective directiveKind = iota
	thicknessDirective
	pointSizeDirective
	arrowheadsDirective
	opacityDirective
	formDirective
)

// directive is one tagged style directive on the stack.
type directive struct {
	kind  directiveKind
	color Color   // colorDirective
	abs   bool    // thicknessDirective: absolute points vs fraction of viewport width
	value float64 // thickness, point size or opacity
	spec  *Node   // raw arrowheads spec
	form  *Style  // formDirective: nested EdgeForm/FaceForm sub-style
}

// Style is an ordered list of style directives plus named options, optionally
// tagged as an edge or face form, with a back-link to the enclosing viewport.
// Directives later in the stack override earlier ones of the same kind.
type Style struct {
	directives []directive
	options    map[string]*Node
	edge, face bool
	vp         *Viewport
}

func newStyle(vp *Viewport) *Style {
	return &Style{vp: vp}
}

// Clone returns an independent copy so that later sibling mutation cannot
// retroactively change an already-built element.
func (s *Style) Clone() *Style {
	clone := &Style{
		directives: make([]directive, len(s.directives)),
		edge:       s.edge,
		face:       s.face,
		vp:         s.vp,
	}
	copy(clone.directives, s.directives)
	if s.options != nil {
		clone.options = make(map[string]*Node, len(s.options))
		for k, v := range s.options {
			clone.options[k] = v
		}
	}
	return clone
}

// SetOption binds a named style option.
func (s *Style) SetOption(name string, value *Node) {
	if s.options == nil {
		s.options = map[string]*Node{}
	}
	s.options[name] = value
}

// Option returns a named style option or nil.
func (s *Style) Option(name string) *Node {
	return s.options[name]
}

// Append parses a style directive node and pushes it onto the stack.
func (s *Style) Append(n *Node) error {
	return s.append(n, true)
}

func (s *Style) append(n *Node, allowForms bool) error {
	if n.HasForm("List") || n.HasForm("Directive") {
		for _, leaf := range n.Leaves {
			if err := s.append(leaf, allowForms); err != nil {
				return err
			}
		}
		return nil
	}
	switch n.Head {
	case "EdgeForm", "FaceForm":
		if !allowForms {
			return fmt.Errorf("%w: %s inside form", ErrStyle, n.Head)
		}
		form := newStyle(s.vp)
		form.edge = n.Head == "EdgeForm"
		form.face = n.Head == "FaceForm"
		if len(n.Leaves) > 1 {
			return fmt.Errorf("%w: %s", ErrStyle, n)
		}
		if len(n.Leaves) == 1 {
			// forms influence one level only
			if err := form.append(n.Leaves[0], false); err != nil {
				return err
			}
		}
		s.directives = append(s.directives, directive{kind: formDirective, form: form})
		return nil
	case "Thickness", "AbsoluteThickness":
		v, err := sizeValue(n)
		if err != nil {
			return err
		}
		s.directives = append(s.directives, directive{
			kind:  thicknessDirective,
			abs:   n.Head == "AbsoluteThickness",
			value: v,
		})
		return nil
	case "Thick":
		s.directives = append(s.directives, directive{kind: thicknessDirective, abs: true, value: 2.0})
		return nil
	case "Thin":
		s.directives = append(s.directives, directive{kind: thicknessDirective, abs: true, value: 0.5})
		return nil
	case "PointSize":
		v, err := sizeValue(n)
		if err != nil {
			return err
		}
		s.directives = append(s.directives, directive{kind: pointSizeDirective, value: v})
		return nil
	case "Arrowheads":
		if len(n.Leaves) != 1 {
			return fmt.Errorf("%w: %s", ErrStyle, n)
		}
		s.directives = append(s.directives, directive{kind: arrowheadsDirective, spec: n.Leaves[0]})
		return nil
	case "Opacity":
		if len(n.Leaves) != 1 {
			return fmt.Errorf("%w: %s", ErrStyle, n)
		}
		v, ok := n.Leaves[0].IsNum()
		if !ok {
			return fmt.Errorf("%w: %s", ErrStyle, n)
		}
		s.directives = append(s.directives, directive{kind: opacityDirective, value: v})
		return nil
	}
	if c, err := ColorFromNode(n); err == nil {
		s.directives = append(s.directives, directive{kind: colorDirective, color: c})
		return nil
	}
	return fmt.Errorf("%w: %s", ErrStyle, n)
}

func sizeValue(n *Node) (float64, error) {
	if len(n.Leaves) != 1 {
		return 0.0, fmt.Errorf("%w: %s", ErrStyle, n)
	}
	v, ok := n.Leaves[0].IsNum()
	if !ok || v < 0.0 {
		return 0.0, fmt.Errorf("%w: %s", ErrStyle, n)
	}
	return v, nil
}

// get resolves the last directive of a kind into the edge and face slots.
// Plain directives fill the slot matching the caller's bias; EdgeForm and
// FaceForm sub-styles, when forms are considered, resolve into their own slot
// regardless of the bias. Forms nested inside forms are not considered.
func (s *Style) get(kind directiveKind, defaultToFaces, considerForms bool) (edge, face *directive) {
	if kind == colorDirective {
		black := directive{kind: colorDirective, color: Black}
		if defaultToFaces {
			face = &black
		} else {
			edge = &black
		}
	} else if kind == thicknessDirective && !defaultToFaces {
		edge = &directive{kind: thicknessDirective, abs: true, value: defaultEdgeThickness}
	}
	for i := range s.directives {
		d := &s.directives[i]
		if d.kind == kind {
			if defaultToFaces {
				face = d
			} else {
				edge = d
			}
		} else if d.kind == formDirective && considerForms {
			if d.form.edge {
				edge, _ = d.form.get(kind, false, false)
			} else if d.form.face {
				_, face = d.form.get(kind, true, false)
			}
		}
	}
	return edge, face
}

// ResolveColor returns the effective edge and face colors for an element.
// faceElement selects the face-biased role (filled primitives).
func (s *Style) ResolveColor(faceElement bool) (edge, face *Color) {
	de, df := s.get(colorDirective, faceElement, faceElement)
	if de != nil {
		edge = &de.color
	}
	if df != nil {
		face = &df.color
	}
	return edge, face
}

// LineWidth returns the effective stroke width in device units, 0 while the
// viewport is unsized.
func (s *Style) LineWidth(faceElement bool) float64 {
	if !s.vp.Sized() {
		return 0.0
	}
	edge, _ := s.get(thicknessDirective, faceElement, faceElement)
	if edge == nil {
		return 0.0
	}
	if edge.abs {
		return s.vp.TranslateAbsolute(Point{edge.value, 0.0}).X
	}
	return s.vp.TranslateRelative(edge.value)
}

// PointSize returns the effective point diameter in device units.
func (s *Style) PointSize() float64 {
	width := defaultViewWidth
	if s.vp.Sized() {
		width = s.vp.PixelWidth
	}
	factor := defaultPointFactor
	if edge, _ := s.get(pointSizeDirective, false, false); edge != nil {
		factor = edge.value
	}
	return width * factor
}

// Arrowheads returns the raw arrowheads spec in effect, or nil.
func (s *Style) Arrowheads() *Node {
	if edge, _ := s.get(arrowheadsDirective, false, false); edge != nil {
		return edge.spec
	}
	return nil
}

// Opacity returns the effective opacity, 1 when unspecified.
func (s *Style) Opacity() float64 {
	if edge, _ := s.get(opacityDirective, false, false); edge != nil {
		return edge.value
	}
	return 1.0
}

// isStyleNode reports whether n is a style or form directive recognized by
// Style.Append.
func isStyleNode(n *Node) bool {
	if n.isNum || n.isStr {
		return false
	}
	switch n.Head {
	case "EdgeForm", "FaceForm", "Directive",
		"Thickness", "AbsoluteThickness", "Thick", "Thin",
		"PointSize", "Arrowheads", "Opacity":
		return true
	}
	if _, ok := colorSpaceByHead[n.Head]; ok {
		return true
	}
	if _, ok := namedColors[n.Head]; ok && len(n.Leaves) == 0 {
		return true
	}
	return false
}
