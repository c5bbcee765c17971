// Package ribs places the ribs along the span and orients them.
package ribs

import (
	"fmt"

	"github.com/alexiusacademia/wingbox/internal/geom"
	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

// Region is the spanwise region a rib belongs to
type Region int

const (
	Central  Region = iota // root up to the fuselage rib
	Yehudi                 // fuselage rib to the Yehudi break
	Outboard               // Yehudi break to the tip
)

func (r Region) String() string {
	switch r {
	case Central:
		return "central"
	case Yehudi:
		return "yehudi"
	case Outboard:
		return "outboard"
	}
	return fmt.Sprintf("Region(%d)", int(r))
}

// Layout holds the spanwise rib positions and region boundaries
type Layout struct {
	Ys []float64

	// Boundary rib indices
	Fuselage int // last central rib
	Yehudi   int // rib at the Yehudi break
	Tip      int

	// Rib origins interpolated from the OML stations
	OriginX []float64
	OriginZ []float64
}

// Len returns the number of ribs
func (l *Layout) Len() int {
	return len(l.Ys)
}

// Region returns the region of rib i
func (l *Layout) Region(i int) Region {
	switch {
	case i <= l.Fuselage:
		return Central
	case i <= l.Yehudi:
		return Yehudi
	}
	return Outboard
}

// Derive computes the rib Y positions from the region rib counts. The
// central region spans the fuselage section with its first rib at the
// root; the other two regions start one spacing past the previous boundary.
func Derive(p *wing.Parameters, pf oml.Planform) (*Layout, error) {
	c, y, s := p.CentralRibs, p.YehudiRibs, p.SemiSpanRibs
	if c < 2 || y < 1 || s < 1 {
		return nil, fmt.Errorf("rib counts central=%d yehudi=%d semispan=%d: need at least 2, 1 and 1", c, y, s)
	}

	fsl := p.FuselageSection * p.SemiSpan
	yb := p.YehudiBreak * p.SemiSpan

	spacingCentral := fsl / float64(c-1)
	spacingYehudi := (yb - fsl) / float64(y)
	spacingOutboard := (p.SemiSpan - yb) / float64(s)

	ys := make([]float64, 0, c+y+s)
	for i := 0; i < c; i++ {
		ys = append(ys, float64(i)*spacingCentral)
	}
	for i := 0; i < y; i++ {
		ys = append(ys, ys[c-1]+float64(i+1)*spacingYehudi)
	}
	for i := 0; i < s; i++ {
		ys = append(ys, ys[c+y-1]+float64(i+1)*spacingOutboard)
	}

	stationYs := pf.Ys()
	return &Layout{
		Ys:       ys,
		Fuselage: c - 1,
		Yehudi:   c + y - 1,
		Tip:      c + y + s - 1,
		OriginX:  geom.InterpAll(ys, stationYs, pf.OriginXs()),
		OriginZ:  geom.InterpAll(ys, stationYs, pf.OriginZs()),
	}, nil
}
