package ribs

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/wingbox/internal/geom"
	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

func fixture(t *testing.T) (*wing.Parameters, *Layout, *oml.Surface) {
	t.Helper()
	p := wing.Default()
	p.CentralRibs, p.YehudiRibs, p.SemiSpanRibs = 5, 5, 5
	surf, err := oml.NewSurface(oml.NewDemo(p.SemiSpan))
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	lay, err := Derive(&p, surf.Planform)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	return &p, lay, surf
}

func TestDeriveRegions(t *testing.T) {
	p, lay, _ := fixture(t)

	if lay.Len() != 15 {
		t.Fatalf("Len() = %d, want 15", lay.Len())
	}
	if lay.Fuselage != 4 || lay.Yehudi != 9 || lay.Tip != 14 {
		t.Errorf("boundaries = %d/%d/%d, want 4/9/14", lay.Fuselage, lay.Yehudi, lay.Tip)
	}
	if !geom.Increasing(lay.Ys) {
		t.Errorf("Ys not strictly increasing: %v", lay.Ys)
	}

	checks := []struct {
		rib  int
		want float64
	}{
		{0, 0},
		{4, p.FuselageSection * p.SemiSpan},
		{9, p.YehudiBreak * p.SemiSpan},
		{14, p.SemiSpan},
	}
	for _, c := range checks {
		if math.Abs(lay.Ys[c.rib]-c.want) > 1e-9 {
			t.Errorf("Y[%d] = %v, want %v", c.rib, lay.Ys[c.rib], c.want)
		}
	}

	if lay.Region(4) != Central || lay.Region(5) != Yehudi || lay.Region(10) != Outboard {
		t.Error("region lookup wrong")
	}
}

func TestDeriveCounts(t *testing.T) {
	surf, err := oml.NewSurface(oml.NewDemo(30))
	if err != nil {
		t.Fatal(err)
	}
	for _, counts := range [][3]int{{2, 1, 1}, {3, 5, 9}, {6, 2, 7}} {
		p := wing.Default()
		p.SemiSpan = 30
		p.CentralRibs, p.YehudiRibs, p.SemiSpanRibs = counts[0], counts[1], counts[2]
		lay, err := Derive(&p, surf.Planform)
		if err != nil {
			t.Fatalf("%v: %v", counts, err)
		}
		if lay.Len() != counts[0]+counts[1]+counts[2] {
			t.Errorf("%v: %d ribs", counts, lay.Len())
		}
		if !geom.Increasing(lay.Ys) {
			t.Errorf("%v: Ys not increasing", counts)
		}
	}

	p := wing.Default()
	p.CentralRibs = 1
	if _, err := Derive(&p, surf.Planform); err == nil {
		t.Error("expected error for a single central rib")
	}
}

func TestOrientInclination(t *testing.T) {
	p, lay, surf := fixture(t)
	o, err := Orient(p, lay, surf)
	if err != nil {
		t.Fatalf("Orient: %v", err)
	}

	for i, st := range o.Stations {
		if i <= lay.Yehudi || i == lay.Tip {
			if st.Inclination != 0 {
				t.Errorf("rib %d inclination = %v, want exactly 0", i, st.Inclination)
			}
		}
	}
	// The swept outboard ribs lean towards the tip
	if o.Stations[lay.Yehudi+2].Inclination == 0 {
		t.Error("outboard rib should be inclined")
	}
}

func TestOrientSamples(t *testing.T) {
	p, lay, surf := fixture(t)
	o, err := Orient(p, lay, surf)
	if err != nil {
		t.Fatalf("Orient: %v", err)
	}

	n := p.HalfSamples
	for _, st := range o.Stations {
		if len(st.Samples) != 2*n {
			t.Fatalf("rib %d has %d samples, want %d", st.Index, len(st.Samples), 2*n)
		}
		for k := 1; k < n; k++ {
			if !(st.Samples[k].X < st.Samples[k-1].X) {
				t.Fatalf("rib %d upper samples not decreasing at %d", st.Index, k)
			}
		}
		for k := n + 1; k < 2*n; k++ {
			if !(st.Samples[k].X > st.Samples[k-1].X) {
				t.Fatalf("rib %d lower samples not increasing at %d", st.Index, k)
			}
		}
		le := st.Samples[st.LeadingEdge()]
		if math.Abs(le.X-st.LE.X) > 1e-9 || math.Abs(le.Y-st.LE.Y) > 1e-9 {
			t.Errorf("rib %d LE sample %v, want %v", st.Index, le, st.LE)
		}
		if st.Samples[0].Z != st.Samples[2*n-1].Z {
			t.Errorf("rib %d trailing edge not sharp", st.Index)
		}
		// Straight ribs keep a constant Y
		if st.Inclination == 0 {
			for _, s := range st.Samples {
				if math.Abs(s.Y-st.Y) > 1e-9 {
					t.Fatalf("rib %d sample off the rib plane: %v", st.Index, s)
				}
			}
		}
	}
}

func TestOrientBlendWindow(t *testing.T) {
	p, lay, surf := fixture(t)
	p.KinkBlendOffset = 3
	o, err := Orient(p, lay, surf)
	if err != nil {
		t.Fatalf("Orient: %v", err)
	}
	if !o.Blended() {
		t.Skip("no rib cleared the kink rib for this planform")
	}
	if o.BlendFrom != lay.Yehudi || o.BlendTo > lay.Tip {
		t.Errorf("blend window [%d,%d)", o.BlendFrom, o.BlendTo)
	}
}

func TestFlanges(t *testing.T) {
	p, lay, surf := fixture(t)
	o, err := Orient(p, lay, surf)
	if err != nil {
		t.Fatalf("Orient: %v", err)
	}
	vars, err := o.Flanges(p.RibStiffenerWidth)
	if err != nil {
		t.Fatalf("Flanges: %v", err)
	}
	if len(vars) != 2 {
		t.Fatalf("got %d variants", len(vars))
	}
	for v, row := range vars {
		for i, st := range row {
			base := o.Stations[i]
			if st.Variant != v+1 {
				t.Errorf("variant tag %d, want %d", st.Variant, v+1)
			}
			// Offset perpendicular to the rib line by the flange width
			d := math.Abs(geom.Segment{A: base.LE, B: base.TE}.Direction().X*(st.LE.Y-base.LE.Y) -
				geom.Segment{A: base.LE, B: base.TE}.Direction().Y*(st.LE.X-base.LE.X))
			if math.Abs(d-p.RibStiffenerWidth) > 1e-6 {
				t.Errorf("variant %d rib %d offset %v, want %v", v+1, i, d, p.RibStiffenerWidth)
			}
			if len(st.Samples) != len(base.Samples) {
				t.Errorf("variant %d rib %d sample count differs", v+1, i)
			}
		}
	}
	// Outboard variant of a straight rib sits towards the tip
	if vars[0][0].Y <= o.Stations[0].Y || vars[1][0].Y >= o.Stations[0].Y {
		t.Error("flange variants on the wrong side")
	}
}

func TestOrientNoIntersection(t *testing.T) {
	p, lay, surf := fixture(t)
	// A rib line too short to reach the trailing edge
	p.RibLine = [2]float64{-10, 1}
	_, err := Orient(p, lay, surf)
	if !errors.Is(err, geom.ErrNoIntersection) {
		t.Fatalf("Orient error = %v, want ErrNoIntersection", err)
	}
}
