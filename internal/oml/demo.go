package oml

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Demo is an analytic transport wing shaped like the uCRM-9: swept leading
// edge, unswept inboard trailing edge up to the Yehudi break, linear twist
// and a NACA 4-digit thickness form. It stands in for the data files in
// tests and demo runs.
type Demo struct {
	SemiSpan  float64 // m
	RootChord float64 // m
	TipChord  float64 // m
	Kink      float64 // Yehudi break, fraction of semi-span
	Sweep     float64 // leading edge sweep, rad
	RootTwist float64 // rad
	TipTwist  float64 // rad
	Thickness float64 // thickness to chord ratio
	Camber    float64 // maximum camber to chord ratio
	Half      int     // points per surface
}

// NewDemo returns a uCRM-9 like wing scaled to the given semi-span
func NewDemo(semiSpan float64) *Demo {
	return &Demo{
		SemiSpan:  semiSpan,
		RootChord: 0.463 * semiSpan,
		TipChord:  0.092 * semiSpan,
		Kink:      0.37,
		Sweep:     35 * math.Pi / 180,
		RootTwist: -0.07,
		TipTwist:  0.035,
		Thickness: 0.12,
		Camber:    0.01,
		Half:      120,
	}
}

// ReadOML returns the stations of the analytic planform
func (d *Demo) ReadOML() (Planform, error) {
	stations := make([]Station, len(StationPercents))
	tanSweep := math.Tan(d.Sweep)
	yKink := d.Kink * d.SemiSpan
	kinkChord := d.RootChord - yKink*tanSweep

	for i, pct := range StationPercents {
		y := pct / 100 * d.SemiSpan
		le := y * tanSweep

		var chord float64
		if y <= yKink {
			chord = d.RootChord - y*tanSweep
		} else {
			t := (y - yKink) / (d.SemiSpan - yKink)
			chord = kinkChord + t*(d.TipChord-kinkChord)
		}
		stations[i] = Station{
			Percent: pct,
			Origin:  r3.Vec{X: le, Y: y},
			Twist:   d.RootTwist + pct/100*(d.TipTwist-d.RootTwist),
			Chord:   chord,
		}
	}
	return Planform{Stations: stations}, nil
}

// ReadAirfoil returns the same cambered section at every station
func (d *Demo) ReadAirfoil(percent float64) (Section, error) {
	m := d.Half
	s := Section{X: make([]float64, 2*m), Z: make([]float64, 2*m)}
	for j := 0; j < m; j++ {
		// Cosine spacing, LE to TE
		x := 0.5 * (1 - math.Cos(math.Pi*float64(j)/float64(m-1)))
		yt := 5 * d.Thickness * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1036*x*x*x*x)
		zc := 4 * d.Camber * x * (1 - x)

		// Upper surface runs TE to LE
		s.X[m-1-j], s.Z[m-1-j] = x, zc+yt
		s.X[m+j], s.Z[m+j] = x, zc-yt
	}
	return s, nil
}
