// Package embed moves rib section samples onto the solved feature
// positions and numbers the section nodes.
package embed

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/wingbox/internal/features"
	"github.com/alexiusacademia/wingbox/internal/geom"
	"github.com/alexiusacademia/wingbox/internal/ribs"
	"github.com/alexiusacademia/wingbox/internal/topo"
)

var (
	// ErrSampleCollision means every sample able to hold a feature is
	// already taken; the section resolution is too coarse.
	ErrSampleCollision = errors.New("no free sample for feature")
	// ErrOutsideSection means the position is not strictly inside the
	// section between its leading and trailing edge.
	ErrOutsideSection = errors.New("position outside the rib section")
)

// Layout numbers section samples: variant-major, then rib, then sample
// index, starting at 1.
type Layout struct {
	Ribs int // ribs per variant
	Half int // samples per surface, N
}

// PerVariant returns the node count of one variant
func (l Layout) PerVariant() int {
	return l.Ribs * 2 * l.Half
}

// NodeID returns the ID of sample k of rib in variant
func (l Layout) NodeID(variant, rib, k int) topo.NodeID {
	return topo.NodeID(variant*l.PerVariant() + rib*2*l.Half + k + 1)
}

// Locate inverts NodeID
func (l Layout) Locate(id topo.NodeID) (variant, rib, k int, ok bool) {
	i := int(id) - 1
	if i < 0 || l.Half <= 0 || l.Ribs <= 0 {
		return 0, 0, 0, false
	}
	variant = i / l.PerVariant()
	i %= l.PerVariant()
	return variant, i / (2 * l.Half), i % (2 * l.Half), true
}

type sampleKey struct {
	variant, rib, k int
}

// Embedder inserts feature positions into station samples and remembers
// which samples are taken
type Embedder struct {
	layout  Layout
	claimed map[sampleKey]string
}

// New returns an embedder numbering with layout
func New(layout Layout) *Embedder {
	return &Embedder{layout: layout, claimed: make(map[sampleKey]string)}
}

// Layout returns the node numbering in use
func (e *Embedder) Layout() Layout {
	return e.layout
}

// Insert moves one sample of the upper or lower surface of st onto x and
// interpolates its Y and Z from the neighbouring samples. It returns the
// sample index and node ID. The sample count never changes and the
// surface stays strictly ordered in X.
func (e *Embedder) Insert(st *ribs.Station, x float64, upper bool, name string) (int, topo.NodeID, error) {
	n := st.Half()
	lo, hi := n+1, 2*n-2
	if upper {
		lo, hi = 1, n-2
	}

	best, free, candidates := -1, math.Inf(1), 0
	for k := lo; k <= hi; k++ {
		prev, next := st.Samples[k-1].X, st.Samples[k+1].X
		inside := prev < x && x < next
		if upper {
			inside = prev > x && x > next
		}
		if !inside {
			continue
		}
		candidates++
		if _, taken := e.claimed[sampleKey{st.Variant, st.Index, k}]; taken {
			continue
		}
		if d := math.Abs(st.Samples[k].X - x); d < free {
			best, free = k, d
		}
	}

	surface := "lower"
	if upper {
		surface = "upper"
	}
	switch {
	case candidates == 0:
		return 0, 0, fmt.Errorf("rib %d variant %d %s surface: %s at x=%.4f: %w",
			st.Index, st.Variant, surface, name, x, ErrOutsideSection)
	case best < 0:
		return 0, 0, fmt.Errorf("rib %d variant %d %s surface: %s at x=%.4f: %w",
			st.Index, st.Variant, surface, name, x, ErrSampleCollision)
	}

	a, b := st.Samples[best-1], st.Samples[best+1]
	t := (x - a.X) / (b.X - a.X)
	st.Samples[best] = r3.Vec{X: x, Y: geom.Lerp(a.Y, b.Y, t), Z: geom.Lerp(a.Z, b.Z, t)}
	e.claimed[sampleKey{st.Variant, st.Index, best}] = name
	return best, e.layout.NodeID(st.Variant, st.Index, best), nil
}

// Embed inserts every present feature slot into the matching station, both
// surfaces, and records the node IDs on the slots. stations is indexed
// [variant][rib].
func Embed(set *features.Set, stations [][]*ribs.Station) (*Embedder, error) {
	if len(stations) == 0 || len(stations[0]) == 0 {
		return nil, fmt.Errorf("no stations to embed into")
	}
	e := New(Layout{Ribs: len(stations[0]), Half: stations[0][0].Half()})

	for v, row := range stations {
		for i, st := range row {
			if st.Half() != e.layout.Half {
				return nil, fmt.Errorf("rib %d variant %d has %d samples, expected %d",
					i, v, len(st.Samples), 2*e.layout.Half)
			}
			for _, l := range set.Ordered(i) {
				sl := l.Slot(v, i)
				if !sl.Present {
					continue
				}
				k, id, err := e.Insert(st, sl.Point.X, true, l.Name())
				if err != nil {
					return nil, err
				}
				sl.UpperK, sl.Upper = k, id
				if k, id, err = e.Insert(st, sl.Point.X, false, l.Name()); err != nil {
					return nil, err
				}
				sl.LowerK, sl.Lower = k, id
			}
		}
	}
	return e, nil
}

// Lookup returns the coordinates of the section node id
func Lookup(stations [][]*ribs.Station, layout Layout, id topo.NodeID) (r3.Vec, error) {
	v, rib, k, ok := layout.Locate(id)
	if !ok || v >= len(stations) || rib >= len(stations[v]) {
		return r3.Vec{}, fmt.Errorf("node %d is not a section node", id)
	}
	return stations[v][rib].Samples[k], nil
}
