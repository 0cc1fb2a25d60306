package figure

// Device units per absolute point (CSS pixels at 96dpi over PostScript points at 72dpi).
const pixelsPerPoint = 96.0 / 72.0

// cutBorder clamps device coordinates; renderer backends misbehave or
// overflow on larger magnitudes.
const cutBorder = 1e8

// cut clamps a device coordinate to ±cutBorder.
func cut(v float64) float64 {
	if v < -cutBorder {
		return -cutBorder
	} else if v > cutBorder {
		return cutBorder
	}
	return v
}

// Viewport maps logical plot coordinates to device pixel coordinates. It is
// created unsized, mutated exactly once by SetSize after the extent of the
// scene has been measured, and immutable thereafter. While unsized all
// translations degrade to identity or zero so that extent computation does
// not depend on it.
type Viewport struct {
	XMin, YMin                float64
	ExtentWidth, ExtentHeight float64
	PixelWidth, PixelHeight   float64

	// NegY flips the device y axis relative to logical space (SVG-style
	// device coordinates run downwards).
	NegY bool

	sized bool
}

// SetSize sizes the viewport. It must be called exactly once, after extent
// measurement and before any element is rendered.
func (vp *Viewport) SetSize(xmin, ymin, extentWidth, extentHeight, pixelWidth, pixelHeight float64) {
	if vp.sized {
		panic("viewport sized twice")
	}
	vp.XMin, vp.YMin = xmin, ymin
	vp.ExtentWidth, vp.ExtentHeight = extentWidth, extentHeight
	vp.PixelWidth, vp.PixelHeight = pixelWidth, pixelHeight
	vp.sized = true
}

// Sized returns true once SetSize has run.
func (vp *Viewport) Sized() bool {
	return vp.sized
}

// Translate maps a logical coordinate to device space. Zero extents are
// treated as 1 so degenerate single-point scenes do not divide by zero.
func (vp *Viewport) Translate(p Point) Point {
	if !vp.sized {
		return p
	}
	w, h := vp.ExtentWidth, vp.ExtentHeight
	if w <= 0.0 {
		w = 1.0
	}
	if h <= 0.0 {
		h = 1.0
	}
	x := (p.X - vp.XMin) * vp.PixelWidth / w
	y := (p.Y - vp.YMin) * vp.PixelHeight / h
	if vp.NegY {
		y = vp.PixelHeight - y
	}
	return Point{cut(x), cut(y)}
}

// ScaleX converts a logical x span to device units.
func (vp *Viewport) ScaleX(w float64) float64 {
	if !vp.sized {
		return w
	}
	ew := vp.ExtentWidth
	if ew <= 0.0 {
		ew = 1.0
	}
	return w * vp.PixelWidth / ew
}

// ScaleY converts a logical y span to device units.
func (vp *Viewport) ScaleY(h float64) float64 {
	if !vp.sized {
		return h
	}
	eh := vp.ExtentHeight
	if eh <= 0.0 {
		eh = 1.0
	}
	return h * vp.PixelHeight / eh
}

// TranslateAbsolute converts an offset in absolute points to a device delta,
// independent of the logical/device scale.
func (vp *Viewport) TranslateAbsolute(d Point) Point {
	if !vp.sized {
		return Point{}
	}
	y := d.Y * pixelsPerPoint
	if vp.NegY {
		y = -y
	}
	return Point{d.X * pixelsPerPoint, y}
}

// TranslateRelative scales a dimensionless fraction by the device pixel width.
func (vp *Viewport) TranslateRelative(x float64) float64 {
	if !vp.sized {
		return 0.0
	}
	return x * vp.PixelWidth
}

////////////////////////////////////////////////////////////////

// Coord is a logical coordinate plus an optional absolute offset in points.
// An offset-only coordinate (nil base) is legal only where the caller
// supplies an explicit base point.
type Coord struct {
	P *Point // logical position
	D *Point // absolute offset in points
}

// ParseCoord reads a coordinate node: either {x,y} or Offset[{dx,dy}] or
// Offset[{dx,dy},{x,y}].
func ParseCoord(n *Node) (Coord, error) {
	if n.HasForm("Offset", 1, 2) {
		d, err := coords(n.Leaves[0])
		if err != nil {
			return Coord{}, err
		}
		c := Coord{D: &d}
		if len(n.Leaves) > 1 {
			p, err := coords(n.Leaves[1])
			if err != nil {
				return Coord{}, err
			}
			c.P = &p
		}
		return c, nil
	}
	p, err := coords(n)
	if err != nil {
		return Coord{}, err
	}
	return Coord{P: &p}, nil
}

// Resolve maps the coordinate to device space through vp. The clamped base
// position is combined with the unscaled absolute offset.
func (c Coord) Resolve(vp *Viewport) Point {
	var p Point
	if c.P != nil {
		p = vp.Translate(*c.P)
	}
	if c.D != nil {
		p = p.Add(vp.TranslateAbsolute(*c.D))
	}
	return p
}

// Offset returns the coordinate moved by (x,y) in logical space.
func (c Coord) Offset(x, y float64) Coord {
	p := Point{c.P.X + x, c.P.Y + y}
	return Coord{P: &p, D: c.D}
}

func coordAt(p Point) Coord {
	return Coord{P: &p}
}
