// Package pipeline runs the wing box generation stages in order and
// forwards the topology to an emitter.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alexiusacademia/wingbox/internal/embed"
	"github.com/alexiusacademia/wingbox/internal/features"
	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/ribs"
	"github.com/alexiusacademia/wingbox/internal/structure"
	"github.com/alexiusacademia/wingbox/internal/topo"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

// Options for a run
type Options struct {
	RunID  uuid.UUID    // generated when nil
	Logger *slog.Logger // slog.Default() when nil
}

// Geometry is everything computed before any element is emitted
type Geometry struct {
	RunID uuid.UUID

	Surface     *oml.Surface
	Layout      *ribs.Layout
	Orientation *ribs.Orientation
	Stations    [][]*ribs.Station // [variant][rib], embedded
	Features    *features.Set
	Embedder    *embed.Embedder
}

// Result of a full run
type Result struct {
	*Geometry
	Model *structure.Model
}

// Start returns the initial IDs of a run. Nodes always start at 1 so that
// section node IDs follow the embedding layout.
func Start(p *wing.Parameters) topo.Start {
	return topo.Start{
		Node:      1,
		Curve:     p.IDs.Curve,
		Surface:   p.IDs.Surface,
		Component: p.IDs.Component,
		Assembly:  p.IDs.Assembly,
	}
}

func (o *Options) defaults() {
	if o.RunID == uuid.Nil {
		o.RunID = uuid.New()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Prepare validates the parameters, reads the outer mould line, and derives,
// orients, solves and embeds every rib
func Prepare(p *wing.Parameters, r oml.Reader, opts Options) (*Geometry, error) {
	opts.defaults()
	log := opts.Logger.With("run", opts.RunID.String())

	if err := p.Validate(); err != nil {
		return nil, err
	}

	surf, err := oml.NewSurface(r)
	if err != nil {
		return nil, fmt.Errorf("reading outer mould line: %w", err)
	}
	log.Debug("outer mould line loaded",
		"stations", len(surf.Ys),
		"root_chord", surf.RootChord(),
		"tip_chord", surf.TipChord())

	lay, err := ribs.Derive(p, surf.Planform)
	if err != nil {
		return nil, err
	}
	log.Info("rib stations derived",
		"ribs", lay.Len(),
		"fuselage", lay.Fuselage,
		"yehudi", lay.Yehudi,
		"tip", lay.Tip)

	o, err := ribs.Orient(p, lay, surf)
	if err != nil {
		return nil, err
	}
	if o.Blended() {
		log.Debug("kink blended", "from", o.BlendFrom, "to", o.BlendTo)
	} else {
		log.Warn("no rib clears the kink rib, inclination not blended")
	}
	for _, st := range o.Stations {
		log.Debug("rib oriented", "station", st)
	}

	stations := [][]*ribs.Station{o.Stations}
	if p.RibStiffenerWidth > 0 {
		vars, err := o.Flanges(p.RibStiffenerWidth)
		if err != nil {
			return nil, err
		}
		stations = append(stations, vars...)
		log.Debug("flange variants built", "width", p.RibStiffenerWidth)
	}

	set, err := features.Solve(p, stations, lay.Fuselage)
	if err != nil {
		return nil, err
	}
	log.Info("features solved",
		"spars", len(set.Spars),
		"stringers", len(set.Stringers),
		"absent_stringer_slots", set.AbsentCount())

	e, err := embed.Embed(set, stations)
	if err != nil {
		return nil, err
	}
	log.Debug("features embedded", "section_nodes", len(stations)*e.Layout().PerVariant())

	return &Geometry{
		RunID:       opts.RunID,
		Surface:     surf,
		Layout:      lay,
		Orientation: o,
		Stations:    stations,
		Features:    set,
		Embedder:    e,
	}, nil
}

// Generate prepares the geometry and emits the whole topology to em
func Generate(p *wing.Parameters, r oml.Reader, em topo.Emitter, opts Options) (*Result, error) {
	opts.defaults()
	log := opts.Logger.With("run", opts.RunID.String())

	g, err := Prepare(p, r, opts)
	if err != nil {
		return nil, err
	}

	ribMesh, bayMesh := p.Mesh.Sizes(g.Layout.Len(), g.Surface.TipChord()/g.Surface.RootChord())
	a := topo.NewAllocator(em, Start(p))
	m, err := structure.Build(a, structure.Input{
		Params:   p,
		Stations: g.Stations,
		Features: g.Features,
		Layout:   g.Embedder.Layout(),
		RibMesh:  ribMesh,
		BayMesh:  bayMesh,
	})
	if err != nil {
		return nil, fmt.Errorf("building topology: %w", err)
	}
	log.Info("topology emitted",
		"nodes", m.Counts.Nodes,
		"curves", m.Counts.Curves,
		"surfaces", m.Counts.Surfaces,
		"components", m.Counts.Components,
		"assemblies", m.Counts.Assemblies)

	return &Result{Geometry: g, Model: m}, nil
}
