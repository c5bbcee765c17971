package topo

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// counter tracks one ID kind: IDs in [first, next) have been issued
type counter struct {
	first, next int
}

func (c *counter) issued(id int) bool {
	return id >= c.first && id < c.next
}

func (c *counter) count() int {
	return c.next - c.first
}

// Allocator is the single owner of the ID counters of a run. Every request
// is validated, forwarded to the emitter, and the ID the emitter returns
// must be the next one in sequence.
type Allocator struct {
	em Emitter

	nodes, curves, surfaces, components, assemblies counter

	// Component that owns each surface
	owner map[SurfaceID]ComponentID
}

// NewAllocator returns an allocator numbering from start
func NewAllocator(em Emitter, start Start) *Allocator {
	return &Allocator{
		em:         em,
		nodes:      counter{start.Node, start.Node},
		curves:     counter{start.Curve, start.Curve},
		surfaces:   counter{start.Surface, start.Surface},
		components: counter{start.Component, start.Component},
		assemblies: counter{start.Assembly, start.Assembly},
		owner:      make(map[SurfaceID]ComponentID),
	}
}

// Counts returns how many elements of each kind have been issued
func (a *Allocator) Counts() Counts {
	return Counts{
		Nodes:      a.nodes.count(),
		Curves:     a.curves.count(),
		Surfaces:   a.surfaces.count(),
		Components: a.components.count(),
		Assemblies: a.assemblies.count(),
	}
}

// Node creates a node at p
func (a *Allocator) Node(p r3.Vec) (NodeID, error) {
	id, err := a.em.CreateNode(p)
	if err != nil {
		return 0, err
	}
	if int(id) != a.nodes.next {
		return 0, misuse("node", "emitter issued %d, expected %d", id, a.nodes.next)
	}
	a.nodes.next++
	return id, nil
}

// Curve creates a curve through the given nodes, in order
func (a *Allocator) Curve(nodes ...NodeID) (CurveID, error) {
	if len(nodes) < 2 {
		return 0, misuse("curve", "needs at least 2 nodes, got %d", len(nodes))
	}
	for i, n := range nodes {
		if !a.nodes.issued(int(n)) {
			return 0, misuse("curve", "node %d has not been created", n)
		}
		if i > 0 && nodes[i-1] == n {
			return 0, misuse("curve", "node %d repeated", n)
		}
	}
	id, err := a.em.CreateCurve(nodes)
	if err != nil {
		return 0, err
	}
	if int(id) != a.curves.next {
		return 0, misuse("curve", "emitter issued %d, expected %d", id, a.curves.next)
	}
	a.curves.next++
	return id, nil
}

// Surface creates a surface bounded by a closed loop of 3 or 4 curves
func (a *Allocator) Surface(curves ...CurveID) (SurfaceID, error) {
	if len(curves) < 3 || len(curves) > 4 {
		return 0, misuse("surface", "needs 3 or 4 curves, got %d", len(curves))
	}
	seen := make(map[CurveID]bool, len(curves))
	for _, c := range curves {
		if !a.curves.issued(int(c)) {
			return 0, misuse("surface", "curve %d has not been created", c)
		}
		if seen[c] {
			return 0, misuse("surface", "curve %d used twice", c)
		}
		seen[c] = true
	}
	id, err := a.em.CreateSurface(curves)
	if err != nil {
		return 0, err
	}
	if int(id) != a.surfaces.next {
		return 0, misuse("surface", "emitter issued %d, expected %d", id, a.surfaces.next)
	}
	a.surfaces.next++
	return id, nil
}

// Component groups surfaces under a name. A surface belongs to at most
// one component.
func (a *Allocator) Component(name string, surfaces []SurfaceID, meshSize float64) (ComponentID, error) {
	if len(surfaces) == 0 {
		return 0, misuse("component", "%q has no surfaces", name)
	}
	for _, s := range surfaces {
		if !a.surfaces.issued(int(s)) {
			return 0, misuse("component", "%q: surface %d has not been created", name, s)
		}
		if c, ok := a.owner[s]; ok {
			return 0, misuse("component", "%q: surface %d already in component %d", name, s, c)
		}
	}
	id, err := a.em.CreateComponent(name, surfaces, meshSize)
	if err != nil {
		return 0, err
	}
	if int(id) != a.components.next {
		return 0, misuse("component", "emitter issued %d, expected %d", id, a.components.next)
	}
	a.components.next++
	for _, s := range surfaces {
		a.owner[s] = id
	}
	return id, nil
}

// Assembly groups components under a name
func (a *Allocator) Assembly(name string, components []ComponentID) (AssemblyID, error) {
	if len(components) == 0 {
		return 0, misuse("assembly", "%q has no components", name)
	}
	for _, c := range components {
		if !a.components.issued(int(c)) {
			return 0, misuse("assembly", "%q: component %d has not been created", name, c)
		}
	}
	id, err := a.em.CreateAssembly(name, components)
	if err != nil {
		return 0, err
	}
	if int(id) != a.assemblies.next {
		return 0, misuse("assembly", "emitter issued %d, expected %d", id, a.assemblies.next)
	}
	a.assemblies.next++
	return id, nil
}

// Unowned returns the surfaces not placed in any component, in ID order
func (a *Allocator) Unowned() []SurfaceID {
	var out []SurfaceID
	for id := a.surfaces.first; id < a.surfaces.next; id++ {
		if _, ok := a.owner[SurfaceID(id)]; !ok {
			out = append(out, SurfaceID(id))
		}
	}
	return out
}
