// Package topo issues the identifiers of the generated topology and checks
// that they stay dense and ordered.
package topo

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Element identifiers. Each kind is numbered independently, densely, in
// the order elements are requested.
type (
	NodeID      int
	CurveID     int
	SurfaceID   int
	ComponentID int
	AssemblyID  int
)

// Emitter receives the topology in creation order and issues the ID of
// every element it creates
type Emitter interface {
	CreateNode(p r3.Vec) (NodeID, error)
	CreateCurve(nodes []NodeID) (CurveID, error)
	CreateSurface(curves []CurveID) (SurfaceID, error)
	CreateComponent(name string, surfaces []SurfaceID, meshSize float64) (ComponentID, error)
	CreateAssembly(name string, components []ComponentID) (AssemblyID, error)
}

// Start holds the first ID of each kind
type Start struct {
	Node      int
	Curve     int
	Surface   int
	Component int
	Assembly  int
}

// DefaultStart numbers every kind from 1
var DefaultStart = Start{Node: 1, Curve: 1, Surface: 1, Component: 1, Assembly: 1}

// Counts is the number of elements issued per kind
type Counts struct {
	Nodes      int
	Curves     int
	Surfaces   int
	Components int
	Assemblies int
}

// MisuseError reports a request the allocator refused or an emitter that
// broke the numbering
type MisuseError struct {
	Op  string
	msg string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.msg)
}

func misuse(op, format string, args ...interface{}) error {
	return &MisuseError{Op: op, msg: fmt.Sprintf(format, args...)}
}
