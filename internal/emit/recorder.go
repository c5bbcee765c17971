// Package emit holds the emitters the topology is written to: an in-memory
// recorder, a line based command stream, and the node table.
package emit

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/wingbox/internal/topo"
)

// Component as recorded
type Component struct {
	Name     string
	Surfaces []topo.SurfaceID
	MeshSize float64
}

// Assembly as recorded
type Assembly struct {
	Name       string
	Components []topo.ComponentID
}

// Recorder keeps every created element in memory. Element i of a kind has
// ID start+i.
type Recorder struct {
	Start topo.Start

	Nodes      []r3.Vec
	Curves     [][]topo.NodeID
	Surfaces   [][]topo.CurveID
	Components []Component
	Assemblies []Assembly
}

// NewRecorder returns an empty recorder numbering from start
func NewRecorder(start topo.Start) *Recorder {
	return &Recorder{Start: start}
}

func (r *Recorder) CreateNode(p r3.Vec) (topo.NodeID, error) {
	r.Nodes = append(r.Nodes, p)
	return topo.NodeID(r.Start.Node + len(r.Nodes) - 1), nil
}

func (r *Recorder) CreateCurve(nodes []topo.NodeID) (topo.CurveID, error) {
	r.Curves = append(r.Curves, append([]topo.NodeID(nil), nodes...))
	return topo.CurveID(r.Start.Curve + len(r.Curves) - 1), nil
}

func (r *Recorder) CreateSurface(curves []topo.CurveID) (topo.SurfaceID, error) {
	r.Surfaces = append(r.Surfaces, append([]topo.CurveID(nil), curves...))
	return topo.SurfaceID(r.Start.Surface + len(r.Surfaces) - 1), nil
}

func (r *Recorder) CreateComponent(name string, surfaces []topo.SurfaceID, meshSize float64) (topo.ComponentID, error) {
	r.Components = append(r.Components, Component{
		Name:     name,
		Surfaces: append([]topo.SurfaceID(nil), surfaces...),
		MeshSize: meshSize,
	})
	return topo.ComponentID(r.Start.Component + len(r.Components) - 1), nil
}

func (r *Recorder) CreateAssembly(name string, components []topo.ComponentID) (topo.AssemblyID, error) {
	r.Assemblies = append(r.Assemblies, Assembly{
		Name:       name,
		Components: append([]topo.ComponentID(nil), components...),
	})
	return topo.AssemblyID(r.Start.Assembly + len(r.Assemblies) - 1), nil
}

// Node returns the coordinates of node id
func (r *Recorder) Node(id topo.NodeID) (r3.Vec, bool) {
	i := int(id) - r.Start.Node
	if i < 0 || i >= len(r.Nodes) {
		return r3.Vec{}, false
	}
	return r.Nodes[i], true
}

// Curve returns the nodes of curve id
func (r *Recorder) Curve(id topo.CurveID) ([]topo.NodeID, bool) {
	i := int(id) - r.Start.Curve
	if i < 0 || i >= len(r.Curves) {
		return nil, false
	}
	return r.Curves[i], true
}

// Surface returns the boundary curves of surface id
func (r *Recorder) Surface(id topo.SurfaceID) ([]topo.CurveID, bool) {
	i := int(id) - r.Start.Surface
	if i < 0 || i >= len(r.Surfaces) {
		return nil, false
	}
	return r.Surfaces[i], true
}

// ComponentByName returns the first component called name
func (r *Recorder) ComponentByName(name string) (Component, bool) {
	for _, c := range r.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// NodeTable returns every recorded node by ID
func (r *Recorder) NodeTable() NodeTable {
	t := make(NodeTable, len(r.Nodes))
	for i, p := range r.Nodes {
		t[topo.NodeID(r.Start.Node+i)] = p
	}
	return t
}

// Counts returns how many elements of each kind were recorded
func (r *Recorder) Counts() topo.Counts {
	return topo.Counts{
		Nodes:      len(r.Nodes),
		Curves:     len(r.Curves),
		Surfaces:   len(r.Surfaces),
		Components: len(r.Components),
		Assemblies: len(r.Assemblies),
	}
}

// Tee forwards every request to all emitters. The first one issues the IDs;
// the others must agree with it.
type Tee []topo.Emitter

func (t Tee) CreateNode(p r3.Vec) (topo.NodeID, error) {
	return fanOut(t, "node", func(em topo.Emitter) (topo.NodeID, error) { return em.CreateNode(p) })
}

func (t Tee) CreateCurve(nodes []topo.NodeID) (topo.CurveID, error) {
	return fanOut(t, "curve", func(em topo.Emitter) (topo.CurveID, error) { return em.CreateCurve(nodes) })
}

func (t Tee) CreateSurface(curves []topo.CurveID) (topo.SurfaceID, error) {
	return fanOut(t, "surface", func(em topo.Emitter) (topo.SurfaceID, error) { return em.CreateSurface(curves) })
}

func (t Tee) CreateComponent(name string, surfaces []topo.SurfaceID, meshSize float64) (topo.ComponentID, error) {
	return fanOut(t, "component", func(em topo.Emitter) (topo.ComponentID, error) {
		return em.CreateComponent(name, surfaces, meshSize)
	})
}

func (t Tee) CreateAssembly(name string, components []topo.ComponentID) (topo.AssemblyID, error) {
	return fanOut(t, "assembly", func(em topo.Emitter) (topo.AssemblyID, error) {
		return em.CreateAssembly(name, components)
	})
}

func fanOut[ID comparable](t Tee, kind string, create func(topo.Emitter) (ID, error)) (ID, error) {
	var first ID
	for i, em := range t {
		id, err := create(em)
		if err != nil {
			return first, err
		}
		if i == 0 {
			first = id
		} else if id != first {
			return first, fmt.Errorf("%s: emitter %d issued %v, expected %v", kind, i, id, first)
		}
	}
	return first, nil
}
