package figure

import (
	"fmt"
	"math"
)

const Epsilon = 1e-10

// equal returns true if a and b are equal with tolerance Epsilon.
func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space.
type Point struct {
	X, Y float64
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Rot90CCW rotates the line OP by 90 degrees CCW.
func (p Point) Rot90CCW() Point {
	return Point{-p.Y, p.X}
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Norm normalizes OP to be of certain length.
func (p Point) Norm(length float64) Point {
	d := p.Length()
	if equal(d, 0.0) {
		return Point{}
	}
	return Point{p.X / d * length, p.Y / d * length}
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie. t=0 returns P and t=1 returns Q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("[%g; %g]", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Extent is the bounding box of a set of points. The zero value is empty.
type Extent struct {
	XMin, XMax, YMin, YMax float64
	set                    bool
}

// IsEmpty returns true if no point has been added.
func (e Extent) IsEmpty() bool {
	return !e.set
}

// Union extends the extent to contain p.
func (e Extent) Union(p Point) Extent {
	if !e.set {
		return Extent{p.X, p.X, p.Y, p.Y, true}
	}
	e.XMin = math.Min(e.XMin, p.X)
	e.XMax = math.Max(e.XMax, p.X)
	e.YMin = math.Min(e.YMin, p.Y)
	e.YMax = math.Max(e.YMax, p.Y)
	return e
}

// Add unions two extents.
func (e Extent) Add(q Extent) Extent {
	if !q.set {
		return e
	} else if !e.set {
		return q
	}
	e.XMin = math.Min(e.XMin, q.XMin)
	e.XMax = math.Max(e.XMax, q.XMax)
	e.YMin = math.Min(e.YMin, q.YMin)
	e.YMax = math.Max(e.YMax, q.YMax)
	return e
}

// Pad grows the extent symmetrically by d on all sides.
func (e Extent) Pad(d float64) Extent {
	if !e.set || d == 0.0 {
		return e
	}
	e.XMin -= d
	e.XMax += d
	e.YMin -= d
	e.YMax += d
	return e
}

// Width returns the horizontal span.
func (e Extent) Width() float64 {
	return e.XMax - e.XMin
}

// Height returns the vertical span.
func (e Extent) Height() float64 {
	return e.YMax - e.YMin
}

func (e Extent) String() string {
	return fmt.Sprintf("[%g; %g]--[%g; %g]", e.XMin, e.YMin, e.XMax, e.YMax)
}
