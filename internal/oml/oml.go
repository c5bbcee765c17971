// Package oml supplies the outer mould line of the wing: the spanwise
// stations with their origin, chord and twist, and the airfoil section at
// each station.
package oml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// StationPercents are the spanwise stations (percent of semi-span) the
// data set is tabulated at
var StationPercents = []float64{0, 10, 15, 20, 25, 30, 35, 37, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100}

// Station is one tabulated spanwise station
type Station struct {
	Percent float64
	Origin  r3.Vec  // airfoil origin, X and Z relative to the root station
	Twist   float64 // rad, positive raises the trailing edge
	Chord   float64 // m
}

// Planform is the ordered set of stations, root first
type Planform struct {
	Stations []Station
}

// Ys returns the spanwise coordinate of every station
func (p Planform) Ys() []float64 {
	ys := make([]float64, len(p.Stations))
	for i, s := range p.Stations {
		ys[i] = s.Origin.Y
	}
	return ys
}

// OriginXs returns the origin X of every station
func (p Planform) OriginXs() []float64 {
	xs := make([]float64, len(p.Stations))
	for i, s := range p.Stations {
		xs[i] = s.Origin.X
	}
	return xs
}

// OriginZs returns the origin Z of every station
func (p Planform) OriginZs() []float64 {
	zs := make([]float64, len(p.Stations))
	for i, s := range p.Stations {
		zs[i] = s.Origin.Z
	}
	return zs
}

// Section is a normalised airfoil: 2M points, the upper surface from the
// trailing edge to the leading edge followed by the lower surface from the
// leading edge back to the trailing edge.
type Section struct {
	X, Z []float64
}

// Half returns M, the number of points per surface
func (s Section) Half() int {
	return len(s.X) / 2
}

// Validate checks the section layout
func (s Section) Validate() error {
	if len(s.X) != len(s.Z) {
		return fmt.Errorf("section has %d x and %d z values", len(s.X), len(s.Z))
	}
	if len(s.X) < 8 || len(s.X)%2 != 0 {
		return fmt.Errorf("section needs an even number of at least 8 points, got %d", len(s.X))
	}
	return nil
}

// Place closes the trailing edge, twists the section about its origin,
// scales it by the chord and moves it to the station origin. The result
// holds absolute coordinates.
func (s Section) Place(st Station) Section {
	n := len(s.X)
	out := Section{X: make([]float64, n), Z: make([]float64, n)}
	for i := 0; i < n; i++ {
		x, z := s.X[i], s.Z[i]
		if i == n-1 {
			x, z = s.X[0], s.Z[0]
		}
		p := r2.Rotate(r2.Vec{X: x, Y: z}, st.Twist, r2.Vec{})
		out.X[i] = p.X*st.Chord + st.Origin.X
		out.Z[i] = p.Y*st.Chord + st.Origin.Z
	}
	return out
}

// Reader provides the OML data set
type Reader interface {
	ReadOML() (Planform, error)
	ReadAirfoil(percent float64) (Section, error)
}

// FromEdges derives a station from its leading and trailing edge points.
// The origin is the quarter chord corrected leading edge so that twisting
// the section about it reproduces both edges.
func FromEdges(percent float64, front, rear r3.Vec) Station {
	chord := math.Hypot(front.Z-rear.Z, front.X-rear.X)
	twist := -math.Atan(-(front.Z - rear.Z) / (front.X - rear.X))

	d := chord * 0.25 * math.Cos(twist)
	dx := chord*0.25 - d
	dz := chord * 0.25 * math.Sin(twist)
	return Station{
		Percent: percent,
		Origin:  r3.Vec{X: front.X + dx, Y: front.Y, Z: front.Z - dz},
		Twist:   twist,
		Chord:   chord,
	}
}
