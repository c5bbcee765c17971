// Package structure turns embedded rib sections and solved features into
// the wing box topology: nodes, curves, surfaces, components and
// assemblies, issued in a fixed order through a topo.Allocator.
package structure

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/wingbox/internal/embed"
	"github.com/alexiusacademia/wingbox/internal/features"
	"github.com/alexiusacademia/wingbox/internal/ribs"
	"github.com/alexiusacademia/wingbox/internal/topo"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

// Input is everything the topology is built from
type Input struct {
	Params   *wing.Parameters
	Stations [][]*ribs.Station // [variant][rib], embedded
	Features *features.Set
	Layout   embed.Layout

	RibMesh []float64 // element size per rib
	BayMesh []float64 // element size per bay
}

// Model summarises what was built
type Model struct {
	// Component groups in creation order and their components
	GroupOrder []string
	Groups     map[string][]topo.ComponentID

	AssemblyOrder []string
	Assemblies    map[string]topo.AssemblyID

	ProfileNodes int // stringer profile nodes
	RungCurves   int // skin curves joining stringers present at one rib only
	Counts       topo.Counts
}

type half int

const (
	upper half = iota
	lower
)

func (h half) String() string {
	if h == upper {
		return "Upper"
	}
	return "Lower"
}

var halves = [2]half{upper, lower}

type spanKey struct {
	kind features.Kind
	side half
}

type builder struct {
	a     *topo.Allocator
	in    Input
	set   *features.Set
	model *Model

	ribs, n, variants int

	ordered [][]*features.Line       // per rib, leading to trailing edge
	index   []map[*features.Line]int // position of each line in ordered
	maxSeg  int                      // most rib segments on one half of a rib

	// [rib] upper H, upper L, lower H, lower L
	profile map[*features.Line][][4]topo.NodeID

	seg       []*topo.Table[topo.CurveID] // per variant, row 2*rib+half, column segment
	le, te    *topo.Table[topo.CurveID]   // 1 x bay
	vertical  map[features.Kind]*topo.Table[topo.CurveID]
	span      map[spanKey]*topo.Table[topo.CurveID]
	profCurve *topo.Table[topo.CurveID]    // rib x 4*stringer
	profSpan  [4]*topo.Table[topo.CurveID] // stringer x bay
	connector []*topo.Table[topo.CurveID]  // per variant, rib x 2*position+half
	varVert   []*topo.Table[topo.CurveID]  // per variant, stringer x rib

	ribWeb    *topo.Table[topo.SurfaceID] // rib x cell
	sparWeb   *topo.Table[topo.SurfaceID] // spar x bay
	frontSkin [2]*topo.Table[topo.SurfaceID]
	rearSkin  [2]*topo.Table[topo.SurfaceID]
	capStrip  [2][2]*topo.Table[topo.SurfaceID] // [half][left, right], spar x bay
	skin      [2][][]topo.SurfaceID             // [half][bay]
	strWeb    [2]*topo.Table[topo.SurfaceID]    // stringer x bay
	strFlange [2]*topo.Table[topo.SurfaceID]
	ribCap    [][2]*topo.Table[topo.SurfaceID] // per variant, rib x segment
	stiffener []*topo.Table[topo.SurfaceID]    // per variant, stringer x rib

	err error
}

// Build issues the whole topology through a. Section nodes must be
// numbered by in.Layout, so a has to start nodes at 1.
func Build(a *topo.Allocator, in Input) (*Model, error) {
	if len(in.Stations) == 0 || len(in.Stations[0]) < 2 {
		return nil, fmt.Errorf("need at least two ribs")
	}
	if v := len(in.Stations); v != 1 && v != 3 {
		return nil, fmt.Errorf("%d station variants, expected 1 or 3", v)
	}
	b := &builder{
		a:        a,
		in:       in,
		set:      in.Features,
		ribs:     len(in.Stations[0]),
		n:        in.Layout.Half,
		variants: len(in.Stations),
		profile:  make(map[*features.Line][][4]topo.NodeID),
		vertical: make(map[features.Kind]*topo.Table[topo.CurveID]),
		span:     make(map[spanKey]*topo.Table[topo.CurveID]),
		model: &Model{
			Groups:     make(map[string][]topo.ComponentID),
			Assemblies: make(map[string]topo.AssemblyID),
		},
	}
	if len(in.RibMesh) != b.ribs || len(in.BayMesh) != b.ribs-1 {
		return nil, fmt.Errorf("mesh sizes for %d ribs and %d bays, expected %d and %d",
			len(in.RibMesh), len(in.BayMesh), b.ribs, b.ribs-1)
	}

	b.ordered = make([][]*features.Line, b.ribs)
	b.index = make([]map[*features.Line]int, b.ribs)
	for i := range b.ordered {
		b.ordered[i] = b.set.Ordered(i)
		b.index[i] = make(map[*features.Line]int, len(b.ordered[i]))
		for p, l := range b.ordered[i] {
			b.index[i][l] = p
		}
		b.maxSeg = max(b.maxSeg, len(b.ordered[i])+1)
	}

	for _, step := range []func() error{b.nodes, b.curves, b.surfaces, b.components, b.assemblies} {
		if err := step(); err != nil {
			return nil, err
		}
		if b.err != nil {
			return nil, b.err
		}
	}
	b.model.Counts = a.Counts()
	if u := a.Unowned(); len(u) > 0 {
		return nil, fmt.Errorf("%d surfaces belong to no component, first %d", len(u), u[0])
	}
	return b.model, nil
}

// node returns the ID of sample k of rib i in variant v
func (b *builder) node(v, i, k int) topo.NodeID {
	return b.in.Layout.NodeID(v, i, k)
}

// featureNode returns the section node of l at rib i
func (b *builder) featureNode(v, i int, l *features.Line, h half) topo.NodeID {
	sl := l.Slot(v, i)
	if h == upper {
		return sl.Upper
	}
	return sl.Lower
}

// Connection c of rib i: 0 is the leading edge, 1..len(ordered) the
// features, len(ordered)+1 the trailing edge. Returns the sample index.
func (b *builder) connection(v, i, c int, h half) int {
	ord := b.ordered[i]
	switch c {
	case 0:
		return b.n - 1
	case len(ord) + 1:
		return 0
	}
	sl := ord[c-1].Slot(v, i)
	if h == upper {
		return sl.UpperK
	}
	return sl.LowerK
}

// along maps a sample index to its position on the half walking from the
// leading edge (0) to the trailing edge (N-1). Both halves share the
// leading edge sample N-1 and the trailing edge sample 0.
func (b *builder) along(k int, h half) int {
	if h == upper {
		return b.n - 1 - k
	}
	switch k {
	case b.n - 1:
		return 0
	case 0:
		return b.n - 1
	}
	return k - b.n
}

// sampleAt inverts along
func (b *builder) sampleAt(p int, h half) int {
	if h == upper {
		return b.n - 1 - p
	}
	switch p {
	case 0:
		return b.n - 1
	case b.n - 1:
		return 0
	}
	return p + b.n
}

// segmentNodes returns the section nodes from connection c to c+1
func (b *builder) segmentNodes(v, i, c int, h half) []topo.NodeID {
	from := b.along(b.connection(v, i, c, h), h)
	to := b.along(b.connection(v, i, c+1, h), h)
	nodes := make([]topo.NodeID, 0, to-from+1)
	for p := from; p <= to; p++ {
		nodes = append(nodes, b.node(v, i, b.sampleAt(p, h)))
	}
	return nodes
}

// ribRange returns the ribs that carry flange variant v
func (b *builder) ribRange(v int) (from, to int) {
	if v == 1 {
		return 0, b.ribs - 1
	}
	return 1, b.ribs
}

// get reads a table cell that must exist; the first miss is kept in b.err
func get[T any](b *builder, t *topo.Table[T], i, j int, what string) T {
	v, ok := t.Get(i, j)
	if !ok && b.err == nil {
		b.err = fmt.Errorf("missing %s at (%d, %d)", what, i, j)
	}
	return v
}

// nodes creates every section sample, variant-major, then the stringer
// profile nodes rib by rib
func (b *builder) nodes() error {
	for v, row := range b.in.Stations {
		for i, st := range row {
			for k, p := range st.Samples {
				id, err := b.a.Node(p)
				if err != nil {
					return err
				}
				if id != b.node(v, i, k) {
					return fmt.Errorf("section node %d of rib %d variant %d got ID %d, expected %d",
						k, i, v, id, b.node(v, i, k))
				}
			}
		}
	}

	h, l := b.in.Params.StringerHeight, b.in.Params.StringerFlange
	for _, str := range b.set.Stringers {
		b.profile[str] = make([][4]topo.NodeID, b.ribs)
	}
	for i := 0; i < b.ribs; i++ {
		samples := b.in.Stations[0][i].Samples
		for _, str := range b.set.Stringers {
			if !str.Present(i) {
				continue
			}
			sl := str.Slot(0, i)
			up, lo := samples[sl.UpperK], samples[sl.LowerK]
			pts := [4]r3.Vec{
				{X: up.X, Y: up.Y, Z: up.Z - h},
				{X: up.X + l, Y: up.Y, Z: up.Z - h},
				{X: lo.X, Y: lo.Y, Z: lo.Z + h},
				{X: lo.X + l, Y: lo.Y, Z: lo.Z + h},
			}
			for m, p := range pts {
				id, err := b.a.Node(p)
				if err != nil {
					return err
				}
				b.profile[str][i][m] = id
			}
			b.model.ProfileNodes += len(pts)
		}
	}
	return nil
}
