package oml

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/alexiusacademia/wingbox/internal/geom"
)

// Surface is the placed OML: every station's section in absolute
// coordinates, interpolated linearly in Y between stations.
type Surface struct {
	Planform Planform
	Ys       []float64
	X, Z     [][]float64 // [station][point]

	chord, twist []float64
	half         int
}

// NewSurface reads the planform and every station's section from r
func NewSurface(r Reader) (*Surface, error) {
	pf, err := r.ReadOML()
	if err != nil {
		return nil, err
	}
	if len(pf.Stations) < 2 {
		return nil, fmt.Errorf("OML needs at least 2 stations, got %d", len(pf.Stations))
	}
	s := &Surface{Planform: pf, Ys: pf.Ys()}
	if !geom.Increasing(s.Ys) {
		return nil, fmt.Errorf("OML stations must be ordered root to tip")
	}

	for i, st := range pf.Stations {
		sec, err := r.ReadAirfoil(st.Percent)
		if err != nil {
			return nil, fmt.Errorf("station %.0f%%: %w", st.Percent, err)
		}
		if err := sec.Validate(); err != nil {
			return nil, fmt.Errorf("station %.0f%%: %w", st.Percent, err)
		}
		if i == 0 {
			s.half = sec.Half()
		} else if sec.Half() != s.half {
			return nil, fmt.Errorf("station %.0f%%: %d points, expected %d", st.Percent, len(sec.X), 2*s.half)
		}
		placed := sec.Place(st)
		s.X = append(s.X, placed.X)
		s.Z = append(s.Z, placed.Z)
		s.chord = append(s.chord, st.Chord)
		s.twist = append(s.twist, st.Twist)
	}
	return s, nil
}

// Half returns the number of points per surface of the tabulated sections
func (s *Surface) Half() int {
	return s.half
}

// Chord returns the interpolated chord at y
func (s *Surface) Chord(y float64) float64 {
	return geom.Interp(y, s.Ys, s.chord)
}

// Twist returns the interpolated twist at y
func (s *Surface) Twist(y float64) float64 {
	return geom.Interp(y, s.Ys, s.twist)
}

// TipChord returns the chord of the last station
func (s *Surface) TipChord() float64 {
	return s.chord[len(s.chord)-1]
}

// RootChord returns the chord of the first station
func (s *Surface) RootChord() float64 {
	return s.chord[0]
}

// LeadingEdge returns the leading edge in the planform, root to tip
func (s *Surface) LeadingEdge() geom.Polyline {
	return s.edge(s.half - 1)
}

// TrailingEdge returns the trailing edge in the planform, root to tip
func (s *Surface) TrailingEdge() geom.Polyline {
	return s.edge(0)
}

func (s *Surface) edge(point int) geom.Polyline {
	pl := make(geom.Polyline, len(s.Ys))
	for i, y := range s.Ys {
		pl[i] = r2.Vec{X: s.X[i][point], Y: y}
	}
	return pl
}

// SectionAt interpolates every section point at span position y
func (s *Surface) SectionAt(y float64) Section {
	n := 2 * s.half
	sec := Section{X: make([]float64, n), Z: make([]float64, n)}
	col := make([]float64, len(s.Ys))
	for p := 0; p < n; p++ {
		for i := range s.Ys {
			col[i] = s.X[i][p]
		}
		sec.X[p] = geom.Interp(y, s.Ys, col)
		for i := range s.Ys {
			col[i] = s.Z[i][p]
		}
		sec.Z[p] = geom.Interp(y, s.Ys, col)
	}
	return sec
}

// Profile is one surface of a section sorted by increasing X
type Profile struct {
	X, Z []float64
}

// ProfileAt returns the upper or lower surface at span position y
func (s *Surface) ProfileAt(y float64, upper bool) Profile {
	sec := s.SectionAt(y)
	lo, hi := s.half, 2*s.half
	if upper {
		lo, hi = 0, s.half
	}
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool { return sec.X[idx[a]] < sec.X[idx[b]] })

	pr := Profile{X: make([]float64, len(idx)), Z: make([]float64, len(idx))}
	for k, i := range idx {
		pr.X[k], pr.Z[k] = sec.X[i], sec.Z[i]
	}
	return pr
}

// ZAt returns the height of the profile at x, clamped to its ends
func (p Profile) ZAt(x float64) float64 {
	return geom.Interp(x, p.X, p.Z)
}

// ZAt returns the height of the upper or lower surface at planform point (x, y)
func (s *Surface) ZAt(x, y float64, upper bool) float64 {
	return s.ProfileAt(y, upper).ZAt(x)
}
