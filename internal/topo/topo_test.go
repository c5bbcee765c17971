package topo

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// seqEmitter numbers every kind from its start, optionally skipping one ID
type seqEmitter struct {
	next     Start
	skipNode bool
}

func (e *seqEmitter) CreateNode(r3.Vec) (NodeID, error) {
	if e.skipNode {
		e.next.Node++
	}
	e.next.Node++
	return NodeID(e.next.Node - 1), nil
}

func (e *seqEmitter) CreateCurve([]NodeID) (CurveID, error) {
	e.next.Curve++
	return CurveID(e.next.Curve - 1), nil
}

func (e *seqEmitter) CreateSurface([]CurveID) (SurfaceID, error) {
	e.next.Surface++
	return SurfaceID(e.next.Surface - 1), nil
}

func (e *seqEmitter) CreateComponent(string, []SurfaceID, float64) (ComponentID, error) {
	e.next.Component++
	return ComponentID(e.next.Component - 1), nil
}

func (e *seqEmitter) CreateAssembly(string, []ComponentID) (AssemblyID, error) {
	e.next.Assembly++
	return AssemblyID(e.next.Assembly - 1), nil
}

func nodes(t *testing.T, a *Allocator, n int) []NodeID {
	t.Helper()
	ids := make([]NodeID, n)
	for i := range ids {
		id, err := a.Node(r3.Vec{X: float64(i)})
		if err != nil {
			t.Fatalf("Node: %v", err)
		}
		ids[i] = id
	}
	return ids
}

func isMisuse(err error) bool {
	var me *MisuseError
	return errors.As(err, &me)
}

func TestAllocatorDenseIDs(t *testing.T) {
	start := Start{Node: 1, Curve: 1, Surface: 1, Component: 2, Assembly: 1}
	a := NewAllocator(&seqEmitter{next: start}, start)

	n := nodes(t, a, 4)
	for i, id := range n {
		if int(id) != i+1 {
			t.Errorf("node %d got ID %d", i, id)
		}
	}

	var curves []CurveID
	for i := 0; i < 4; i++ {
		c, err := a.Curve(n[i], n[(i+1)%4])
		if err != nil {
			t.Fatalf("Curve: %v", err)
		}
		curves = append(curves, c)
	}
	s, err := a.Surface(curves...)
	if err != nil || s != 1 {
		t.Fatalf("Surface = %d, %v", s, err)
	}
	c, err := a.Component("Ribs_1", []SurfaceID{s}, 0.2)
	if err != nil || c != 2 {
		t.Fatalf("Component = %d, %v; want 2 (configured start)", c, err)
	}
	as, err := a.Assembly("Main_Rib", []ComponentID{c})
	if err != nil || as != 1 {
		t.Fatalf("Assembly = %d, %v", as, err)
	}

	want := Counts{Nodes: 4, Curves: 4, Surfaces: 1, Components: 1, Assemblies: 1}
	if got := a.Counts(); got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
}

func TestAllocatorRejectsMisuse(t *testing.T) {
	a := NewAllocator(&seqEmitter{next: DefaultStart}, DefaultStart)
	n := nodes(t, a, 3)
	c1, _ := a.Curve(n[0], n[1])
	c2, _ := a.Curve(n[1], n[2])
	c3, _ := a.Curve(n[2], n[0])

	tests := []struct {
		name string
		call func() error
	}{
		{"single node curve", func() error { _, err := a.Curve(n[0]); return err }},
		{"unknown node", func() error { _, err := a.Curve(n[0], 99); return err }},
		{"repeated node", func() error { _, err := a.Curve(n[0], n[0]); return err }},
		{"two curve surface", func() error { _, err := a.Surface(c1, c2); return err }},
		{"five curve surface", func() error { _, err := a.Surface(c1, c2, c3, c1+3, c1+4); return err }},
		{"unknown curve", func() error { _, err := a.Surface(c1, c2, 42); return err }},
		{"duplicate curve", func() error { _, err := a.Surface(c1, c2, c2); return err }},
		{"empty component", func() error { _, err := a.Component("x", nil, 1); return err }},
		{"unknown surface", func() error { _, err := a.Component("x", []SurfaceID{7}, 1); return err }},
		{"empty assembly", func() error { _, err := a.Assembly("x", nil); return err }},
		{"unknown component", func() error { _, err := a.Assembly("x", []ComponentID{3}); return err }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !isMisuse(err) {
				t.Errorf("got %v, want *MisuseError", err)
			}
		})
	}

	// Refused requests consume nothing
	if got := a.Counts(); got.Curves != 3 || got.Surfaces != 0 || got.Components != 0 {
		t.Errorf("counts changed by refused requests: %+v", got)
	}
}

func TestAllocatorSurfaceOwnedOnce(t *testing.T) {
	a := NewAllocator(&seqEmitter{next: DefaultStart}, DefaultStart)
	n := nodes(t, a, 3)
	c1, _ := a.Curve(n[0], n[1])
	c2, _ := a.Curve(n[1], n[2])
	c3, _ := a.Curve(n[2], n[0])
	s, _ := a.Surface(c1, c2, c3)

	if _, err := a.Component("A_1", []SurfaceID{s}, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Component("B_1", []SurfaceID{s}, 1); !isMisuse(err) {
		t.Errorf("second owner: got %v, want *MisuseError", err)
	}
	if u := a.Unowned(); len(u) != 0 {
		t.Errorf("Unowned() = %v", u)
	}
}

func TestAllocatorDetectsEmitterSkew(t *testing.T) {
	a := NewAllocator(&seqEmitter{next: DefaultStart, skipNode: true}, DefaultStart)
	if _, err := a.Node(r3.Vec{}); !isMisuse(err) {
		t.Fatalf("got %v, want *MisuseError for skipped ID", err)
	}
}

func TestBuildersSkipAbsentCells(t *testing.T) {
	a := NewAllocator(&seqEmitter{next: DefaultStart}, DefaultStart)
	n := nodes(t, a, 6)

	// 2 x 3 grid of curves with the middle of row 0 absent
	curves, err := a.Curves(2, 3, func(i, j int) ([]NodeID, bool) {
		if i == 0 && j == 1 {
			return nil, false
		}
		return []NodeID{n[i*3+j], n[(i*3+j+1)%6]}, true
	})
	if err != nil {
		t.Fatal(err)
	}
	if curves.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", curves.Len())
	}
	if _, ok := curves.Get(0, 1); ok {
		t.Error("absent cell reported present")
	}
	// Dense in row-major order despite the gap
	for k, id := range curves.Values() {
		if int(id) != k+1 {
			t.Errorf("curve %d has ID %d", k, id)
		}
	}
	if row := curves.Row(0); len(row) != 2 || row[0] != 1 || row[1] != 2 {
		t.Errorf("Row(0) = %v", row)
	}

	surfaces, err := a.Surfaces(1, 2, func(_, j int) ([]CurveID, bool) {
		if j == 1 {
			return nil, false
		}
		return curves.Values()[:3], true
	})
	if err != nil {
		t.Fatal(err)
	}
	if surfaces.Len() != 1 {
		t.Errorf("surfaces Len() = %d", surfaces.Len())
	}

	if _, ok, err := a.Group("Empty_1", nil, 1); ok || err != nil {
		t.Errorf("Group(empty) = %v, %v", ok, err)
	}
	if _, ok, err := a.Collect("Empty", nil); ok || err != nil {
		t.Errorf("Collect(empty) = %v, %v", ok, err)
	}
	if got := a.Counts(); got.Components != 0 || got.Assemblies != 0 {
		t.Errorf("empty groups consumed IDs: %+v", got)
	}
}
