package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Tolerance on the segment parameter so that hits exactly on a vertex are kept
const paramEps = 1e-9

// ErrNoIntersection is returned when two curves that must cross do not
var ErrNoIntersection = errors.New("no intersection")

// NoIntersectionError names the geometric entities that failed to cross
type NoIntersectionError struct {
	What string // e.g. "leading edge", "spar 1"
	Rib  int
}

func (e *NoIntersectionError) Error() string {
	return fmt.Sprintf("rib %d: %s: %v", e.Rib, e.What, ErrNoIntersection)
}

func (e *NoIntersectionError) Unwrap() error {
	return ErrNoIntersection
}

// Intersection is the outcome of an intersection test. Point is only
// meaningful when Found is true.
type Intersection struct {
	Point r2.Vec
	Found bool
}

// Segment is a straight line piece in the planform (X chordwise, Y spanwise)
type Segment struct {
	A, B r2.Vec
}

// Rotate turns the segment by angle (radians, counter-clockwise) about c
func (s Segment) Rotate(angle float64, c r2.Vec) Segment {
	return Segment{A: r2.Rotate(s.A, angle, c), B: r2.Rotate(s.B, angle, c)}
}

// Translate shifts both ends by d
func (s Segment) Translate(d r2.Vec) Segment {
	return Segment{A: r2.Add(s.A, d), B: r2.Add(s.B, d)}
}

// Direction returns the unit vector from A to B
func (s Segment) Direction() r2.Vec {
	return r2.Unit(r2.Sub(s.B, s.A))
}

// Length returns |B - A|
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.B, s.A))
}

// YAt returns the Y coordinate of the line through the segment at x.
// For a line parallel to Y it returns A.Y.
func (s Segment) YAt(x float64) float64 {
	dx := s.B.X - s.A.X
	if dx == 0 {
		return s.A.Y
	}
	return s.A.Y + (x-s.A.X)*(s.B.Y-s.A.Y)/dx
}

// Intersect finds the crossing point of two segments. Parallel and collinear
// segments never intersect.
func (s Segment) Intersect(o Segment) Intersection {
	r := r2.Sub(s.B, s.A)
	q := r2.Sub(o.B, o.A)
	denom := r2.Cross(r, q)
	if math.Abs(denom) <= 1e-14*r2.Norm(r)*r2.Norm(q) {
		return Intersection{}
	}

	ao := r2.Sub(o.A, s.A)
	t := r2.Cross(ao, q) / denom
	u := r2.Cross(ao, r) / denom
	if t < -paramEps || t > 1+paramEps || u < -paramEps || u > 1+paramEps {
		return Intersection{}
	}
	return Intersection{Point: r2.Add(s.A, r2.Scale(t, r)), Found: true}
}

// Polyline is an ordered list of vertices joined by straight segments
type Polyline []r2.Vec

// Segments returns the pieces of the polyline in order
func (p Polyline) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		segs = append(segs, Segment{A: p[i-1], B: p[i]})
	}
	return segs
}

// Intersect returns the first crossing of the polyline with s, walking the
// polyline from its first vertex.
func (p Polyline) Intersect(s Segment) Intersection {
	for _, seg := range p.Segments() {
		if hit := seg.Intersect(s); hit.Found {
			return hit
		}
	}
	return Intersection{}
}

// Extend returns a copy of the polyline with its first and last pieces
// continued straight by d.
func (p Polyline) Extend(d float64) Polyline {
	n := len(p)
	if n < 2 || d <= 0 {
		return append(Polyline(nil), p...)
	}
	out := make(Polyline, 0, n+2)
	head := Segment{A: p[1], B: p[0]}.Direction()
	tail := Segment{A: p[n-2], B: p[n-1]}.Direction()
	out = append(out, r2.Add(p[0], r2.Scale(d, head)))
	out = append(out, p...)
	out = append(out, r2.Add(p[n-1], r2.Scale(d, tail)))
	return out
}
