package features

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/alexiusacademia/wingbox/internal/geom"
	"github.com/alexiusacademia/wingbox/internal/ribs"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

// Solve computes the chordwise position of every feature at every rib and
// crosses it with the committed rib lines. stations is indexed
// [variant][rib]; variant 0 is the rib plane. A stringer is present at a
// rib only when it fits its bay on every variant of that rib.
//
// Ribs inboard of the fuselage rib reuse the fuselage rib's chord and
// origin so spars run straight through the fuselage box.
func Solve(p *wing.Parameters, stations [][]*ribs.Station, fuselage int) (*Set, error) {
	if len(stations) == 0 || len(stations[0]) == 0 {
		return nil, fmt.Errorf("no rib stations to solve against")
	}
	base := stations[0]
	n := len(base)
	if fuselage < 0 || fuselage >= n {
		return nil, fmt.Errorf("fuselage rib %d outside 0..%d", fuselage, n-1)
	}

	ys := make([]float64, n)
	chord := make([]float64, n)
	origin := make([]float64, n)
	for j, st := range base {
		ys[j] = st.Y
		src := base[max(j, fuselage)]
		chord[j] = src.Chord
		origin[j] = src.Origin.X
	}
	at := func(pos float64) []float64 {
		xs := make([]float64, n)
		for j := range xs {
			xs[j] = pos*chord[j] + origin[j]
		}
		return xs
	}

	widths := p.CapWidths()
	ends := []float64{ys[0], ys[n-1]}
	set := &Set{perBay: p.Stringers}

	for s, pos := range p.SparPositions() {
		xs := at(pos)
		left := make([]float64, n)
		right := make([]float64, n)
		for j := range xs {
			left[j] = xs[j] - geom.Interp(ys[j], ends, []float64{widths[0][0], widths[1][0]})
			right[j] = xs[j] + geom.Interp(ys[j], ends, []float64{widths[0][1], widths[1][1]})
		}
		set.Spars = append(set.Spars, newLine(Spar, s, s, xs, ys, len(stations)))
		set.CapsLeft = append(set.CapsLeft, newLine(CapLeft, s, s, left, ys, len(stations)))
		set.CapsRight = append(set.CapsRight, newLine(CapRight, s, s, right, ys, len(stations)))
	}

	span := ys[n-1] - ys[0]
	ext := 0.05*span + 4*p.RibStiffenerWidth

	for _, group := range [][]*Line{set.Spars, set.CapsLeft, set.CapsRight} {
		for _, l := range group {
			if err := l.cross(stations, ext, true); err != nil {
				return nil, err
			}
		}
	}

	rear := set.Spars[len(set.Spars)-1].Polyline
	for k, pos := range p.StringerPositions() {
		var xs []float64
		if p.StringerLayout == wing.LayoutChordwise {
			xs = at(pos)
		} else {
			// Keep the root distance to the rear spar all along the span
			d := rear[0].X - (pos*chord[fuselage] + origin[fuselage])
			xs = make([]float64, n)
			for j := range xs {
				xs[j] = rear[j].X - d
			}
		}
		l := newLine(Stringer, k, p.StringerBay(k), xs, ys, len(stations))
		if err := l.cross(stations, ext, false); err != nil {
			return nil, err
		}
		set.Stringers = append(set.Stringers, l)
	}

	set.markStringers(p.StringerClearance)
	for _, l := range set.Stringers {
		if err := l.requireOnVariants(); err != nil {
			return nil, err
		}
	}
	if err := set.checkOrder(len(stations), n); err != nil {
		return nil, err
	}
	return set, nil
}

func newLine(kind Kind, index, bay int, xs, ys []float64, variants int) *Line {
	l := &Line{Kind: kind, Index: index, Bay: bay, Polyline: make(geom.Polyline, len(xs))}
	for j := range xs {
		l.Polyline[j] = r2.Vec{X: xs[j], Y: ys[j]}
	}
	l.Slots = make([][]Slot, variants)
	for v := range l.Slots {
		l.Slots[v] = make([]Slot, len(xs))
		for j := range xs {
			l.Slots[v][j].X = xs[j]
		}
	}
	return l
}

// cross intersects the feature polyline with every rib line. A required
// feature that misses a rib aborts; otherwise the slot is left absent.
func (l *Line) cross(stations [][]*ribs.Station, ext float64, required bool) error {
	pl := l.Polyline.Extend(ext)
	for v, row := range stations {
		for j, st := range row {
			hit := pl.Intersect(st.Line)
			if !hit.Found {
				if required {
					return &geom.NoIntersectionError{What: l.Name(), Rib: j}
				}
				continue
			}
			l.Slots[v][j].Point = hit.Point
			l.Slots[v][j].Present = true
		}
	}
	return nil
}

// markStringers drops stringers that do not sit strictly inside their bay,
// clear of the bounding caps by at least clearance. A stringer that fails on
// any variant of a rib is absent at that rib on every variant.
func (s *Set) markStringers(clearance float64) {
	for _, str := range s.Stringers {
		front := s.CapsRight[str.Bay]
		back := s.CapsLeft[str.Bay+1]
		for j := range str.Slots[0] {
			inside := true
			for v := range str.Slots {
				sl := str.Slots[v][j]
				lo := front.Slots[v][j].Point.X + clearance
				hi := back.Slots[v][j].Point.X - clearance
				if !sl.Present || !(sl.Point.X > lo && sl.Point.X < hi) {
					inside = false
					break
				}
			}
			if !inside {
				for v := range str.Slots {
					str.Slots[v][j].Present = false
				}
			}
		}
	}
}

// requireOnVariants makes the flange variants follow the rib plane
func (l *Line) requireOnVariants() error {
	for v := 1; v < len(l.Slots); v++ {
		for j := range l.Slots[v] {
			if !l.Slots[0][j].Present {
				l.Slots[v][j].Present = false
				continue
			}
			if !l.Slots[v][j].Present {
				return &geom.NoIntersectionError{What: fmt.Sprintf("%s (variant %d)", l.Name(), v), Rib: j}
			}
		}
	}
	return nil
}

// checkOrder verifies that the present features of every rib are strictly
// ordered from the leading edge to the trailing edge
func (s *Set) checkOrder(variants, ribCount int) error {
	for j := 0; j < ribCount; j++ {
		ordered := s.Ordered(j)
		for v := 0; v < variants; v++ {
			for k := 1; k < len(ordered); k++ {
				a := ordered[k-1].Slots[v][j].Point.X
				b := ordered[k].Slots[v][j].Point.X
				if !(b > a) {
					return fmt.Errorf("rib %d variant %d: %s (x=%.4f) is not behind %s (x=%.4f)",
						j, v, ordered[k].Name(), b, ordered[k-1].Name(), a)
				}
			}
		}
	}
	return nil
}
