package wing

import (
	"fmt"

	"github.com/alexiusacademia/wingbox/internal/geom"
)

// CapWidthFactor scales the nominal spar cap widths to the modelled strip width
const CapWidthFactor = 0.6

// Stringer layouts
const (
	LayoutParallel  = "parallel"  // stringers keep their distance to the rear spar
	LayoutChordwise = "chordwise" // stringers sit at a fixed chord fraction
)

// Parameters describes the planform and internal layout of one wing box.
// All chordwise positions are fractions of the local chord, all spanwise
// fractions are of the semi-span.
type Parameters struct {
	SemiSpan        float64 `json:"semi_span"`         // m
	YehudiBreak     float64 `json:"yehudi_break"`      // fraction of semi-span
	FuselageSection float64 `json:"fuselage_section"`  // fraction of semi-span

	// Rib counts per spanwise region
	CentralRibs  int `json:"central_ribs"`  // root up to and including the fuselage rib
	YehudiRibs   int `json:"yehudi_ribs"`   // fuselage rib to Yehudi break
	SemiSpanRibs int `json:"semispan_ribs"` // Yehudi break to tip

	// Spars
	Spars     int     `json:"spars"`
	FrontSpar float64 `json:"front_spar"` // chord fraction
	RearSpar  float64 `json:"rear_spar"`  // chord fraction

	// Spar cap widths before CapWidthFactor is applied (m)
	RootCapLeft  float64 `json:"root_cap_left"`
	RootCapRight float64 `json:"root_cap_right"`
	TipCapLeft   float64 `json:"tip_cap_left"`
	TipCapRight  float64 `json:"tip_cap_right"`

	// Stringers
	Stringers         int     `json:"stringers"`           // per bay
	StringerTolerance float64 `json:"stringer_tolerance"`  // chord fraction kept clear of each spar
	StringerClearance float64 `json:"stringer_clearance"`  // m kept clear of the bay's caps, else absent
	StringerLayout    string  `json:"stringer_layout"`     // "parallel" or "chordwise"
	StringerHeight    float64 `json:"stringer_height"`     // m, web depth of the stringer profile
	StringerFlange    float64 `json:"stringer_flange"`     // m, flange length of the stringer profile

	// Offset of the rib flange variants from the rib plane (m), 0 disables them
	RibStiffenerWidth float64 `json:"rib_stiffener_width"`

	// Rib orientation
	KinkBlendOffset int        `json:"kink_blend_offset"` // extra ribs blended past the first clear rib
	RibLine         [2]float64 `json:"rib_line"`          // chordwise extent of the unrotated rib line (m)

	// Section sampling: points per half (upper or lower)
	HalfSamples int `json:"half_samples"`

	Mesh MeshParameters `json:"mesh"`
	IDs  IDStart        `json:"ids"`
}

// MeshParameters are passed through to the downstream mesher
type MeshParameters struct {
	GlobalSize float64 `json:"global_size"` // element size (m)
	Refinement int     `json:"refinement"`  // 1 tapers the size spanwise with the chord, 0 keeps it constant
}

// IDStart holds the first ID issued for each element kind
type IDStart struct {
	Curve     int `json:"curve"`
	Surface   int `json:"surface"`
	Component int `json:"component"`
	Assembly  int `json:"assembly"`
}

// Default returns the uCRM-9 configuration
func Default() Parameters {
	return Parameters{
		SemiSpan:          29.38,
		YehudiBreak:       0.37,
		FuselageSection:   0.1,
		CentralRibs:       3,
		YehudiRibs:        5,
		SemiSpanRibs:      9,
		Spars:             2,
		FrontSpar:         0.15,
		RearSpar:          0.75,
		RootCapLeft:       0.3,
		RootCapRight:      0.3,
		TipCapLeft:        0.1,
		TipCapRight:       0.1,
		Stringers:         6,
		StringerTolerance: 0.05,
		StringerLayout:    LayoutParallel,
		StringerHeight:    0.08,
		StringerFlange:    0.05,
		RibStiffenerWidth: 0.05,
		KinkBlendOffset:   1,
		RibLine:           [2]float64{-10, 30},
		HalfSamples:       120,
		Mesh: MeshParameters{
			GlobalSize: 0.2,
			Refinement: 0,
		},
		IDs: IDStart{Curve: 1, Surface: 1, Component: 1, Assembly: 1},
	}
}

// Validate checks if the parameter set describes a buildable wing box
func (p *Parameters) Validate() error {
	if p.SemiSpan <= 0 {
		return &ValidationError{"semi-span must be positive"}
	}
	if p.CentralRibs < 2 {
		return &ValidationError{fmt.Sprintf("central ribs must be at least 2, got %d", p.CentralRibs)}
	}
	if p.YehudiRibs < 1 || p.SemiSpanRibs < 1 {
		return &ValidationError{"yehudi and semi-span rib counts must be at least 1"}
	}
	if !(p.FuselageSection > 0 && p.FuselageSection < p.YehudiBreak && p.YehudiBreak < 1) {
		return &ValidationError{fmt.Sprintf("span fractions must satisfy 0 < fuselage (%.3f) < yehudi (%.3f) < 1",
			p.FuselageSection, p.YehudiBreak)}
	}
	if p.Spars < 2 {
		return &ValidationError{"wing box needs at least 2 spars"}
	}
	if !(p.FrontSpar >= 0 && p.FrontSpar < p.RearSpar && p.RearSpar <= 1) {
		return &ValidationError{fmt.Sprintf("spar positions must satisfy 0 <= front (%.3f) < rear (%.3f) <= 1",
			p.FrontSpar, p.RearSpar)}
	}
	for _, w := range []float64{p.RootCapLeft, p.RootCapRight, p.TipCapLeft, p.TipCapRight} {
		if w < 0 {
			return &ValidationError{"spar cap widths cannot be negative"}
		}
	}
	if p.Stringers < 0 {
		return &ValidationError{"stringer count cannot be negative"}
	}
	if p.StringerTolerance < 0 || p.StringerClearance < 0 {
		return &ValidationError{"stringer tolerance and clearance cannot be negative"}
	}
	if p.Stringers > 0 {
		bay := (p.RearSpar - p.FrontSpar) / float64(p.Spars-1)
		if 2*p.StringerTolerance >= bay {
			return &ValidationError{fmt.Sprintf("stringer tolerance %.3f leaves no room in a %.3f bay",
				p.StringerTolerance, bay)}
		}
	}
	if p.StringerLayout != LayoutParallel && p.StringerLayout != LayoutChordwise {
		return &ValidationError{fmt.Sprintf("unknown stringer layout %q", p.StringerLayout)}
	}
	if p.StringerHeight < 0 || p.StringerFlange < 0 {
		return &ValidationError{"stringer profile dimensions cannot be negative"}
	}
	if p.RibStiffenerWidth < 0 {
		return &ValidationError{"rib stiffener width cannot be negative"}
	}
	if p.KinkBlendOffset < 0 {
		return &ValidationError{"kink blend offset cannot be negative"}
	}
	if p.RibLine[0] >= p.RibLine[1] {
		return &ValidationError{"rib line extent must be increasing"}
	}
	if p.HalfSamples < 8 {
		return &ValidationError{fmt.Sprintf("half samples must be at least 8, got %d", p.HalfSamples)}
	}
	if err := p.Mesh.Validate(); err != nil {
		return err
	}
	for _, start := range []int{p.IDs.Curve, p.IDs.Surface, p.IDs.Component, p.IDs.Assembly} {
		if start < 1 {
			return &ValidationError{"ID start values must be at least 1"}
		}
	}
	return nil
}

// Validate checks the mesh settings
func (m *MeshParameters) Validate() error {
	if m.GlobalSize <= 0 {
		return &ValidationError{"global mesh size must be positive"}
	}
	if m.Refinement != 0 && m.Refinement != 1 {
		return &ValidationError{fmt.Sprintf("mesh refinement must be 0 or 1, got %d", m.Refinement)}
	}
	return nil
}

// Ribs returns the total rib count
func (p *Parameters) Ribs() int {
	return p.CentralRibs + p.YehudiRibs + p.SemiSpanRibs
}

// SparPositions returns the chord fraction of every spar, front to rear
func (p *Parameters) SparPositions() []float64 {
	return geom.Linspace(p.FrontSpar, p.RearSpar, p.Spars)
}

// CapWidths returns the modelled cap widths as [root, tip] x [left, right]
func (p *Parameters) CapWidths() [2][2]float64 {
	return [2][2]float64{
		{p.RootCapLeft * CapWidthFactor, p.RootCapRight * CapWidthFactor},
		{p.TipCapLeft * CapWidthFactor, p.TipCapRight * CapWidthFactor},
	}
}

// StringerPositions returns the chord fraction of every stringer, bay by bay
func (p *Parameters) StringerPositions() []float64 {
	spars := p.SparPositions()
	var pos []float64
	for b := 0; b+1 < len(spars); b++ {
		pos = append(pos, geom.Linspace(spars[b]+p.StringerTolerance, spars[b+1]-p.StringerTolerance, p.Stringers)...)
	}
	return pos
}

// StringerBay returns the bay (index of the spar in front of it) of stringer s
func (p *Parameters) StringerBay(s int) int {
	if p.Stringers == 0 {
		return 0
	}
	return s / p.Stringers
}

// ValidationError represents a parameter validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
