package emit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/wingbox/internal/topo"
)

// StreamWriter writes one line per created element:
//
//	# wingbox run <uuid>
//	node <id> <x> <y> <z>
//	curve <id> <node>...
//	surface <id> <curve>...
//	component <id> <name> <mesh size> <surface>...
//	assembly <id> <name> <component>...
//
// It numbers every kind itself from the start values. The first write
// error is kept and returned by every later call and by Flush.
type StreamWriter struct {
	w    *bufio.Writer
	next topo.Start
	err  error
}

// NewStreamWriter writes the run header to w and returns the writer
func NewStreamWriter(w io.Writer, run uuid.UUID, start topo.Start) *StreamWriter {
	s := &StreamWriter{w: bufio.NewWriter(w), next: start}
	s.printf("# wingbox run %s\n", run)
	return s
}

func (s *StreamWriter) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *StreamWriter) CreateNode(p r3.Vec) (topo.NodeID, error) {
	id := s.next.Node
	s.printf("node %d %s %s %s\n", id, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	if s.err != nil {
		return 0, s.err
	}
	s.next.Node++
	return topo.NodeID(id), nil
}

func (s *StreamWriter) CreateCurve(nodes []topo.NodeID) (topo.CurveID, error) {
	id := s.next.Curve
	s.printf("curve %d %s\n", id, joinIDs(nodes))
	if s.err != nil {
		return 0, s.err
	}
	s.next.Curve++
	return topo.CurveID(id), nil
}

func (s *StreamWriter) CreateSurface(curves []topo.CurveID) (topo.SurfaceID, error) {
	id := s.next.Surface
	s.printf("surface %d %s\n", id, joinIDs(curves))
	if s.err != nil {
		return 0, s.err
	}
	s.next.Surface++
	return topo.SurfaceID(id), nil
}

func (s *StreamWriter) CreateComponent(name string, surfaces []topo.SurfaceID, meshSize float64) (topo.ComponentID, error) {
	id := s.next.Component
	s.printf("component %d %s %s %s\n", id, name, formatFloat(meshSize), joinIDs(surfaces))
	if s.err != nil {
		return 0, s.err
	}
	s.next.Component++
	return topo.ComponentID(id), nil
}

func (s *StreamWriter) CreateAssembly(name string, components []topo.ComponentID) (topo.AssemblyID, error) {
	id := s.next.Assembly
	s.printf("assembly %d %s %s\n", id, name, joinIDs(components))
	if s.err != nil {
		return 0, s.err
	}
	s.next.Assembly++
	return topo.AssemblyID(id), nil
}

// Flush writes any buffered lines
func (s *StreamWriter) Flush() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinIDs[ID ~int](ids []ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, " ")
}
