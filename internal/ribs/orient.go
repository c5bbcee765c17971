package ribs

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/alexiusacademia/wingbox/internal/geom"
	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

// Fraction of the span the leading and trailing edges are continued past
// the root and tip so that offset rib lines still cross them
const edgeExtension = 0.05

// Orientation is the committed set of rib stations
type Orientation struct {
	Stations []*Station

	// Kink blending window [BlendFrom, BlendTo), empty when no rib past the
	// kink cleared the kink rib
	BlendFrom, BlendTo int

	params *wing.Parameters
	layout *Layout
	surf   *oml.Surface
	le, te geom.Polyline
}

// Blended reports whether the kink blending was applied
func (o *Orientation) Blended() bool {
	return o.BlendTo > o.BlendFrom
}

// Edges returns the extended leading and trailing edge polylines
func (o *Orientation) Edges() (le, te geom.Polyline) {
	return o.le, o.te
}

// Orient computes the inclination of every rib, blends it across the kink,
// and commits each rib line and its resampled section.
//
// Ribs are normal to the elastic axis, the midpoint of the front and rear
// spar, except up to and including the Yehudi rib and at the tip where
// they stay parallel to X.
func Orient(p *wing.Parameters, lay *Layout, surf *oml.Surface) (*Orientation, error) {
	n := lay.Len()
	span := lay.Ys[n-1] - lay.Ys[0]
	ext := edgeExtension*span + 4*p.RibStiffenerWidth

	o := &Orientation{
		Stations: make([]*Station, n),
		params:   p,
		layout:   lay,
		surf:     surf,
		le:       surf.LeadingEdge().Extend(ext),
		te:       surf.TrailingEdge().Extend(ext),
	}

	spars := p.SparPositions()
	mid := (spars[0] + spars[len(spars)-1]) / 2

	elastic := make([]float64, n)
	for i, y := range lay.Ys {
		st := &Station{
			Index:  i,
			Region: lay.Region(i),
			Y:      y,
			Origin: r3.Vec{X: lay.OriginX[i], Y: y, Z: lay.OriginZ[i]},
			Chord:  surf.Chord(y),
			Twist:  surf.Twist(y),
		}
		elastic[i] = mid*st.Chord + st.Origin.X
		st.ElasticAxis = r2.Vec{X: elastic[i], Y: y}
		o.Stations[i] = st
	}

	incl := geom.Gradient(elastic, lay.Ys)
	for i := range incl {
		incl[i] = -incl[i]
		if i <= lay.Yehudi || i == lay.Tip {
			incl[i] = 0
		}
	}

	// First pass: chordwise extent of every rib with the raw inclinations
	for i, st := range o.Stations {
		st.Inclination = incl[i]
		if err := o.cut(st); err != nil {
			return nil, err
		}
	}

	o.blendKink(incl)
	if n >= 2 {
		incl[n-2] /= 2
	}

	for i, st := range o.Stations {
		st.Inclination = incl[i]
		if err := o.cut(st); err != nil {
			return nil, err
		}
		o.resample(st)
	}
	return o, nil
}

// blendKink finds the first rib past the kink whose chordwise extent no
// longer crosses the kink rib and spreads the inclination linearly from the
// kink rib to KinkBlendOffset ribs beyond it.
func (o *Orientation) blendKink(incl []float64) {
	kink := o.layout.Yehudi
	last := len(incl) - 1
	kinkSeg := geom.Segment{A: o.Stations[kink].LE, B: o.Stations[kink].TE}

	idx := -1
	for i := kink + 1; i <= last; i++ {
		seg := geom.Segment{A: o.Stations[i].LE, B: o.Stations[i].TE}
		if !seg.Intersect(kinkSeg).Found {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	end := idx + o.params.KinkBlendOffset
	if end > last {
		end = last
	}
	if end <= kink {
		return
	}
	vals := geom.Linspace(incl[kink], incl[end], end-kink)
	copy(incl[kink:end], vals)
	o.BlendFrom, o.BlendTo = kink, end
}

// cut rotates the unrotated rib line about the elastic axis and crosses it
// with both edges
func (o *Orientation) cut(st *Station) error {
	base := geom.Segment{
		A: r2.Vec{X: o.params.RibLine[0], Y: st.Y},
		B: r2.Vec{X: o.params.RibLine[1], Y: st.Y},
	}
	return o.commitLine(st, base.Rotate(st.Inclination, st.ElasticAxis))
}

func (o *Orientation) commitLine(st *Station, line geom.Segment) error {
	le := o.le.Intersect(line)
	if !le.Found {
		return &geom.NoIntersectionError{What: "leading edge", Rib: st.Index}
	}
	te := o.te.Intersect(line)
	if !te.Found {
		return &geom.NoIntersectionError{What: "trailing edge", Rib: st.Index}
	}
	st.Line, st.LE, st.TE = line, le.Point, te.Point
	return nil
}

// resample lays N evenly spaced samples from LE to TE on each surface
func (o *Orientation) resample(st *Station) {
	n := o.params.HalfSamples
	xs := geom.Linspace(st.LE.X, st.TE.X, n)
	chordwise := geom.Segment{A: st.LE, B: st.TE}

	st.Samples = make([]r3.Vec, 2*n)
	var upper, lower oml.Profile
	lastY := 0.0
	for j, x := range xs {
		y := chordwise.YAt(x)
		if j == 0 || y != lastY {
			upper = o.surf.ProfileAt(y, true)
			lower = o.surf.ProfileAt(y, false)
			lastY = y
		}
		st.Samples[n-1-j] = r3.Vec{X: x, Y: y, Z: upper.ZAt(x)}
		st.Samples[n+j] = r3.Vec{X: x, Y: y, Z: lower.ZAt(x)}
	}
	// Sharp trailing edge
	st.Samples[0].Z = st.Samples[2*n-1].Z
}

// Flanges builds the two flange variants of every rib: variant 1 offset
// by width along the rib normal towards the tip, variant 2 towards the root.
func (o *Orientation) Flanges(width float64) ([][]*Station, error) {
	out := make([][]*Station, 2)
	for v, sign := range []float64{1, -1} {
		out[v] = make([]*Station, len(o.Stations))
		for i, base := range o.Stations {
			shift := r2.Rotate(r2.Vec{Y: sign * width}, base.Inclination, r2.Vec{})
			st := &Station{
				Index:       base.Index,
				Variant:     v + 1,
				Region:      base.Region,
				Y:           base.Y + shift.Y,
				Origin:      r3.Add(base.Origin, r3.Vec{X: shift.X, Y: shift.Y}),
				Chord:       base.Chord,
				Twist:       base.Twist,
				Inclination: base.Inclination,
				ElasticAxis: r2.Add(base.ElasticAxis, shift),
			}
			if err := o.commitLine(st, base.Line.Translate(shift)); err != nil {
				return nil, fmt.Errorf("flange variant %d: %w", v+1, err)
			}
			o.resample(st)
			out[v][i] = st
		}
	}
	return out, nil
}
