package embed

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/wingbox/internal/features"
	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/ribs"
	"github.com/alexiusacademia/wingbox/internal/topo"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

// straight returns a flat section from x=0 to x=1 with n samples per surface
func straight(n int) *ribs.Station {
	st := &ribs.Station{Index: 0, Samples: make([]r3.Vec, 2*n)}
	for j := 0; j < n; j++ {
		x := float64(j) / float64(n-1)
		st.Samples[n-1-j] = r3.Vec{X: x, Y: 2 * x, Z: 0.1}
		st.Samples[n+j] = r3.Vec{X: x, Y: 2 * x, Z: -0.1}
	}
	return st
}

func TestLayoutRoundTrip(t *testing.T) {
	l := Layout{Ribs: 15, Half: 120}
	if got := l.NodeID(0, 0, 0); got != 1 {
		t.Errorf("first node = %d, want 1", got)
	}
	if got := l.NodeID(1, 0, 0); int(got) != l.PerVariant()+1 {
		t.Errorf("first node of variant 1 = %d", got)
	}
	for _, c := range [][3]int{{0, 0, 0}, {0, 3, 17}, {1, 14, 239}, {2, 7, 120}} {
		id := l.NodeID(c[0], c[1], c[2])
		v, rib, k, ok := l.Locate(id)
		if !ok || v != c[0] || rib != c[1] || k != c[2] {
			t.Errorf("Locate(%d) = %d %d %d %v, want %v", id, v, rib, k, ok, c)
		}
	}
	if _, _, _, ok := l.Locate(0); ok {
		t.Error("Locate(0) should fail")
	}
}

func TestInsertKeepsOrder(t *testing.T) {
	n := 11
	st := straight(n)
	e := New(Layout{Ribs: 1, Half: n})

	for _, x := range []float64{0.13, 0.52, 0.55, 0.9} {
		for _, upper := range []bool{true, false} {
			k, id, err := e.Insert(st, x, upper, "f")
			if err != nil {
				t.Fatalf("Insert(%v, %v): %v", x, upper, err)
			}
			if st.Samples[k].X != x {
				t.Errorf("sample %d at %v, want %v", k, st.Samples[k].X, x)
			}
			// Y follows the neighbours linearly
			if math.Abs(st.Samples[k].Y-2*x) > 1e-12 {
				t.Errorf("sample %d Y = %v, want %v", k, st.Samples[k].Y, 2*x)
			}
			if id != e.Layout().NodeID(0, 0, k) {
				t.Errorf("id %d does not match sample %d", id, k)
			}
			if upper && k >= n || !upper && k < n {
				t.Errorf("x=%v upper=%v landed on sample %d", x, upper, k)
			}
		}
	}

	if len(st.Samples) != 2*n {
		t.Fatalf("sample count changed to %d", len(st.Samples))
	}
	for k := 1; k < n; k++ {
		if !(st.Samples[k].X < st.Samples[k-1].X) {
			t.Errorf("upper not decreasing at %d", k)
		}
	}
	for k := n + 1; k < 2*n; k++ {
		if !(st.Samples[k].X > st.Samples[k-1].X) {
			t.Errorf("lower not increasing at %d", k)
		}
	}
}

func TestInsertErrors(t *testing.T) {
	n := 5
	tests := []struct {
		name string
		xs   []float64
		want error
	}{
		{"before leading edge", []float64{-0.1}, ErrOutsideSection},
		{"at trailing edge", []float64{1}, ErrOutsideSection},
		// Three lower samples bracket these, the fourth finds none free
		{"crowded", []float64{0.3, 0.31, 0.32, 0.33}, ErrSampleCollision},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			st := straight(n)
			e := New(Layout{Ribs: 1, Half: n})
			var err error
			for _, x := range tt.xs {
				if _, _, err = e.Insert(st, x, false, "f"); err != nil {
					break
				}
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEmbedWing(t *testing.T) {
	p := wing.Default()
	p.CentralRibs, p.YehudiRibs, p.SemiSpanRibs = 5, 5, 5
	surf, err := oml.NewSurface(oml.NewDemo(p.SemiSpan))
	if err != nil {
		t.Fatal(err)
	}
	lay, err := ribs.Derive(&p, surf.Planform)
	if err != nil {
		t.Fatal(err)
	}
	o, err := ribs.Orient(&p, lay, surf)
	if err != nil {
		t.Fatal(err)
	}
	vars, err := o.Flanges(p.RibStiffenerWidth)
	if err != nil {
		t.Fatal(err)
	}
	st := append([][]*ribs.Station{o.Stations}, vars...)
	set, err := features.Solve(&p, st, lay.Fuselage)
	if err != nil {
		t.Fatal(err)
	}

	e, err := Embed(set, st)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	seen := make(map[topo.NodeID]bool)
	for _, l := range set.All() {
		for v := range st {
			for i := range st[v] {
				sl := l.Slot(v, i)
				if !sl.Present {
					if sl.Upper != 0 || sl.Lower != 0 {
						t.Errorf("absent %s at rib %d has nodes", l.Name(), i)
					}
					continue
				}
				for _, id := range []topo.NodeID{sl.Upper, sl.Lower} {
					if seen[id] {
						t.Fatalf("node %d shared by two features", id)
					}
					seen[id] = true
					got, err := Lookup(st, e.Layout(), id)
					if err != nil {
						t.Fatal(err)
					}
					if math.Abs(got.X-sl.Point.X) > 1e-12 {
						t.Errorf("%s rib %d node X %v, want %v", l.Name(), i, got.X, sl.Point.X)
					}
				}
				if st[v][i].Samples[sl.UpperK].Z <= st[v][i].Samples[sl.LowerK].Z {
					t.Errorf("%s rib %d upper node below lower node", l.Name(), i)
				}
			}
		}
	}
	if _, err := Lookup(st, e.Layout(), topo.NodeID(len(st)*e.Layout().PerVariant()+1)); err == nil {
		t.Error("Lookup past the last section node should fail")
	}
}
