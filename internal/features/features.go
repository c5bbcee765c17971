// Package features solves where spars, spar caps and stringers cross each
// rib.
package features

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/alexiusacademia/wingbox/internal/geom"
	"github.com/alexiusacademia/wingbox/internal/topo"
)

// Kind of structural feature running along the span
type Kind int

const (
	Spar Kind = iota
	CapLeft
	CapRight
	Stringer
)

func (k Kind) String() string {
	switch k {
	case Spar:
		return "spar"
	case CapLeft:
		return "left cap"
	case CapRight:
		return "right cap"
	case Stringer:
		return "stringer"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Slot is a feature at one rib (of one variant)
type Slot struct {
	X       float64 // chordwise position before intersection
	Point   r2.Vec  // crossing with the rib line
	Present bool

	// Filled in by the embedder
	Upper, Lower   topo.NodeID
	UpperK, LowerK int // sample indices
}

// Line is one feature across all ribs
type Line struct {
	Kind  Kind
	Index int // spar or stringer number
	Bay   int // bay of a stringer (spar in front of it), spar number otherwise

	Polyline geom.Polyline // chordwise positions (X, rib Y) root to tip
	Slots    [][]Slot      // [variant][rib]
}

// Name returns a readable label, e.g. "spar 1" or "stringer 4"
func (l *Line) Name() string {
	return fmt.Sprintf("%s %d", l.Kind, l.Index)
}

// Present reports whether the feature exists at rib i
func (l *Line) Present(i int) bool {
	return l.Slots[0][i].Present
}

// Slot returns the slot at variant v, rib i
func (l *Line) Slot(v, i int) *Slot {
	return &l.Slots[v][i]
}

// Set holds every feature line of the wing box
type Set struct {
	Spars     []*Line
	CapsLeft  []*Line
	CapsRight []*Line
	Stringers []*Line

	perBay int
}

// BayStringers returns the stringers of bay b, front to rear
func (s *Set) BayStringers(b int) []*Line {
	if s.perBay == 0 {
		return nil
	}
	return s.Stringers[b*s.perBay : (b+1)*s.perBay]
}

// Ordered returns the features present at rib i from the leading edge to
// the trailing edge: left cap, spar and right cap of every spar with the
// stringers of each bay in between.
func (s *Set) Ordered(i int) []*Line {
	var out []*Line
	for sp := range s.Spars {
		out = append(out, s.CapsLeft[sp], s.Spars[sp], s.CapsRight[sp])
		if sp == len(s.Spars)-1 {
			break
		}
		for _, str := range s.BayStringers(sp) {
			if str.Present(i) {
				out = append(out, str)
			}
		}
	}
	return out
}

// All returns every line: spars, left caps, right caps, then stringers
func (s *Set) All() []*Line {
	out := make([]*Line, 0, 3*len(s.Spars)+len(s.Stringers))
	out = append(out, s.Spars...)
	out = append(out, s.CapsLeft...)
	out = append(out, s.CapsRight...)
	out = append(out, s.Stringers...)
	return out
}

// AbsentCount returns how many stringer slots are absent on the rib plane
func (s *Set) AbsentCount() int {
	n := 0
	for _, str := range s.Stringers {
		for _, sl := range str.Slots[0] {
			if !sl.Present {
				n++
			}
		}
	}
	return n
}
