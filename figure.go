// Package figure renders declarative, symbolic descriptions of 2D scenes
// (shapes, colors, styling directives, arrows, curves) into vector drawing
// instructions for an SVG target and an Asymptote-like drawing language
// target. It is the geometry and styling kernel beneath a symbolic
// evaluation host: the host hands over already-parsed scene trees and
// resolved numeric option values, and receives back opaque text fragments
// plus the resolved viewport box.
package figure

import "errors"

// Error kinds reported during scene construction. Every error aborts the
// enclosing scene; the host converts it into a user-visible diagnostic.
var (
	ErrCoordinate            = errors.New("malformed point shape or non-numeric coordinate")
	ErrColor                 = errors.New("bad color component count or unknown color space")
	ErrStyle                 = errors.New("malformed style or form directive")
	ErrUnrecognizedPrimitive = errors.New("unrecognized graphics primitive")
	ErrUnsupportedDegree     = errors.New("unsupported spline degree")
	ErrArgumentMismatch      = errors.New("argument lists have mismatched lengths")
	ErrInvalidDistanceSpec   = errors.New("invalid distance function specification")
)

// Evaluator is the kernel's callback into the host's expression evaluator.
// It is used when a style option needs symbolic evaluation, e.g. a custom
// color-distance function. The kernel never evaluates expressions itself.
type Evaluator interface {
	// Apply applies fn to args and returns a terminal result.
	Apply(fn *Node, args []*Node) (*Node, error)
}
