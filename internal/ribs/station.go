package ribs

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/wingbox/internal/geom"
)

// Station is one rib (or one flange variant of a rib) with its committed
// line and sampled cross-section.
//
// Samples holds 2N points: the upper surface from the trailing edge to the
// leading edge (X decreasing) followed by the lower surface from the leading
// edge to the trailing edge (X increasing). The count never changes after
// the station is built; embedding only moves existing samples.
type Station struct {
	Index   int
	Variant int
	Region  Region

	Y           float64 // spanwise position of the rib reference point
	Origin      r3.Vec
	Chord       float64
	Twist       float64
	Inclination float64 // rad, 0 means the rib is parallel to X
	ElasticAxis r2.Vec  // pivot of the rib line

	Line   geom.Segment // rotated rib line
	LE, TE r2.Vec       // rib line crossings with the leading and trailing edge

	Samples []r3.Vec
}

// Half returns N, the number of samples per surface
func (s *Station) Half() int {
	return len(s.Samples) / 2
}

// LeadingEdge returns the sample index of the leading edge node shared by
// both surfaces
func (s *Station) LeadingEdge() int {
	return s.Half() - 1
}

// TrailingEdge returns the sample index of the trailing edge node shared by
// both surfaces
func (s *Station) TrailingEdge() int {
	return 0
}

// Upper reports whether sample k lies on the upper surface
func (s *Station) Upper(k int) bool {
	return k < s.Half()
}

// LogValue implements slog.LogValuer
func (s *Station) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("rib", s.Index),
		slog.Int("variant", s.Variant),
		slog.String("region", s.Region.String()),
		slog.Float64("y", s.Y),
		slog.Float64("chord", s.Chord),
		slog.Float64("inclination", s.Inclination),
	)
}
