package topo

// Table is a rows x cols grid of IDs where every cell is explicitly present
// or absent. Builders skip absent cells without consuming an ID.
type Table[T any] struct {
	rows, cols int
	cells      []T
	present    []bool
}

// NewTable returns an empty table
func NewTable[T any](rows, cols int) *Table[T] {
	return &Table[T]{
		rows:    rows,
		cols:    cols,
		cells:   make([]T, rows*cols),
		present: make([]bool, rows*cols),
	}
}

// Set stores v at (i, j) and marks it present
func (t *Table[T]) Set(i, j int, v T) {
	t.cells[i*t.cols+j] = v
	t.present[i*t.cols+j] = true
}

// Get returns the value at (i, j) and whether it is present
func (t *Table[T]) Get(i, j int) (T, bool) {
	if i < 0 || i >= t.rows || j < 0 || j >= t.cols {
		var zero T
		return zero, false
	}
	k := i*t.cols + j
	return t.cells[k], t.present[k]
}

// Row returns the present values of row i in column order
func (t *Table[T]) Row(i int) []T {
	var out []T
	for j := 0; j < t.cols; j++ {
		if v, ok := t.Get(i, j); ok {
			out = append(out, v)
		}
	}
	return out
}

// Column returns the present values of column j in row order
func (t *Table[T]) Column(j int) []T {
	var out []T
	for i := 0; i < t.rows; i++ {
		if v, ok := t.Get(i, j); ok {
			out = append(out, v)
		}
	}
	return out
}

// Values returns every present value in row-major order
func (t *Table[T]) Values() []T {
	var out []T
	for k, ok := range t.present {
		if ok {
			out = append(out, t.cells[k])
		}
	}
	return out
}

// Len returns the number of present cells
func (t *Table[T]) Len() int {
	n := 0
	for _, ok := range t.present {
		if ok {
			n++
		}
	}
	return n
}

// CurveBoundary returns the nodes of the curve at (i, j), or false when
// there is no curve there
type CurveBoundary func(i, j int) ([]NodeID, bool)

// SurfaceBoundary returns the curve loop of the surface at (i, j), or false
// when there is no surface there
type SurfaceBoundary func(i, j int) ([]CurveID, bool)

// Curves creates one curve per present cell, row by row
func (a *Allocator) Curves(rows, cols int, boundary CurveBoundary) (*Table[CurveID], error) {
	t := NewTable[CurveID](rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			nodes, ok := boundary(i, j)
			if !ok {
				continue
			}
			id, err := a.Curve(nodes...)
			if err != nil {
				return nil, err
			}
			t.Set(i, j, id)
		}
	}
	return t, nil
}

// Surfaces creates one surface per present cell, row by row
func (a *Allocator) Surfaces(rows, cols int, boundary SurfaceBoundary) (*Table[SurfaceID], error) {
	t := NewTable[SurfaceID](rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			curves, ok := boundary(i, j)
			if !ok {
				continue
			}
			id, err := a.Surface(curves...)
			if err != nil {
				return nil, err
			}
			t.Set(i, j, id)
		}
	}
	return t, nil
}

// Group creates a component from the surfaces, or nothing when there are
// none
func (a *Allocator) Group(name string, surfaces []SurfaceID, meshSize float64) (ComponentID, bool, error) {
	if len(surfaces) == 0 {
		return 0, false, nil
	}
	id, err := a.Component(name, surfaces, meshSize)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// Collect creates an assembly from the components, or nothing when there
// are none
func (a *Allocator) Collect(name string, components []ComponentID) (AssemblyID, bool, error) {
	if len(components) == 0 {
		return 0, false, nil
	}
	id, err := a.Assembly(name, components)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
