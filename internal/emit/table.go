package emit

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/wingbox/internal/topo"
)

// NodeTable maps node IDs to coordinates
type NodeTable map[topo.NodeID]r3.Vec

// IDs returns the node IDs in ascending order
func (t NodeTable) IDs() []topo.NodeID {
	ids := make([]topo.NodeID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// WriteNodeTable writes "node_id x y z" lines sorted by ID
func WriteNodeTable(w io.Writer, t NodeTable) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "# node_id x y z"); err != nil {
		return err
	}
	for _, id := range t.IDs() {
		p := t[id]
		if _, err := fmt.Fprintf(bw, "%d %s %s %s\n", id, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadNodeTable parses a table written by WriteNodeTable. Blank lines and
// lines starting with '#' are skipped.
func ReadNodeTable(r io.Reader) (NodeTable, error) {
	t := make(NodeTable)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 fields, got %d", line, len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: node id: %w", line, err)
		}
		var xyz [3]float64
		for i := range xyz {
			if xyz[i], err = strconv.ParseFloat(fields[i+1], 64); err != nil {
				return nil, fmt.Errorf("line %d: coordinate %d: %w", line, i, err)
			}
		}
		if _, dup := t[topo.NodeID(id)]; dup {
			return nil, fmt.Errorf("line %d: node %d listed twice", line, id)
		}
		t[topo.NodeID(id)] = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Mismatch is a node that differs between two tables
type Mismatch struct {
	ID        topo.NodeID
	Want, Got r3.Vec
	Missing   bool // absent from got
	Extra     bool // absent from want
}

// Diff compares got against want. Coordinates match when every component
// differs by at most tol, an absolute distance in metres.
func Diff(want, got NodeTable, tol float64) []Mismatch {
	var out []Mismatch
	for _, id := range want.IDs() {
		w := want[id]
		g, ok := got[id]
		switch {
		case !ok:
			out = append(out, Mismatch{ID: id, Want: w, Missing: true})
		case !scalar.EqualWithinAbs(w.X, g.X, tol) ||
			!scalar.EqualWithinAbs(w.Y, g.Y, tol) ||
			!scalar.EqualWithinAbs(w.Z, g.Z, tol):
			out = append(out, Mismatch{ID: id, Want: w, Got: g})
		}
	}
	for _, id := range got.IDs() {
		if _, ok := want[id]; !ok {
			out = append(out, Mismatch{ID: id, Got: got[id], Extra: true})
		}
	}
	return out
}
