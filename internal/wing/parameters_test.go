package wing

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := p.Ribs(); got != 17 {
		t.Errorf("Ribs() = %d, want 17", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Parameters)
		errSub string
	}{
		{"single central rib", func(p *Parameters) { p.CentralRibs = 1 }, "central ribs"},
		{"no yehudi ribs", func(p *Parameters) { p.YehudiRibs = 0 }, "yehudi"},
		{"fuselage past yehudi", func(p *Parameters) { p.FuselageSection = 0.5 }, "span fractions"},
		{"one spar", func(p *Parameters) { p.Spars = 1 }, "2 spars"},
		{"rear before front", func(p *Parameters) { p.RearSpar = 0.1 }, "spar positions"},
		{"negative cap", func(p *Parameters) { p.TipCapLeft = -0.1 }, "cap widths"},
		{"tolerance fills bay", func(p *Parameters) { p.StringerTolerance = 0.4 }, "no room"},
		{"bad layout", func(p *Parameters) { p.StringerLayout = "diagonal" }, "layout"},
		{"refinement flag", func(p *Parameters) { p.Mesh.Refinement = 2 }, "refinement"},
		{"zero mesh size", func(p *Parameters) { p.Mesh.GlobalSize = 0 }, "mesh size"},
		{"coarse sampling", func(p *Parameters) { p.HalfSamples = 4 }, "half samples"},
		{"zero id start", func(p *Parameters) { p.IDs.Curve = 0 }, "ID start"},
		{"reversed rib line", func(p *Parameters) { p.RibLine = [2]float64{5, -5} }, "rib line"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.modify(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("error %q does not mention %q", err, tt.errSub)
			}
		})
	}
}

func TestDerivedPositions(t *testing.T) {
	p := Default()
	p.Spars = 3
	p.FrontSpar, p.RearSpar = 0.1, 0.7
	p.Stringers = 2
	p.StringerTolerance = 0.05

	spars := p.SparPositions()
	wantSpars := []float64{0.1, 0.4, 0.7}
	for i := range wantSpars {
		if math.Abs(spars[i]-wantSpars[i]) > 1e-12 {
			t.Errorf("spar %d at %v, want %v", i, spars[i], wantSpars[i])
		}
	}

	str := p.StringerPositions()
	wantStr := []float64{0.15, 0.35, 0.45, 0.65}
	if len(str) != len(wantStr) {
		t.Fatalf("got %d stringers, want %d", len(str), len(wantStr))
	}
	for i := range wantStr {
		if math.Abs(str[i]-wantStr[i]) > 1e-12 {
			t.Errorf("stringer %d at %v, want %v", i, str[i], wantStr[i])
		}
	}
	if b := p.StringerBay(3); b != 1 {
		t.Errorf("StringerBay(3) = %d, want 1", b)
	}

	w := p.CapWidths()
	if math.Abs(w[0][0]-0.18) > 1e-12 || math.Abs(w[1][1]-0.06) > 1e-12 {
		t.Errorf("CapWidths() = %v", w)
	}
}

func TestMeshSizes(t *testing.T) {
	m := MeshParameters{GlobalSize: 0.2}
	rib, bay := m.Sizes(4, 0.5)
	if len(rib) != 4 || len(bay) != 3 {
		t.Fatalf("got %d rib and %d bay sizes", len(rib), len(bay))
	}
	for _, s := range append(rib, bay...) {
		if s != 0.2 {
			t.Errorf("unrefined size %v, want 0.2", s)
		}
	}

	m.Refinement = 1
	rib, bay = m.Sizes(4, 0.5)
	// step = (0.2 - 0.1) / 4
	if math.Abs(rib[3]-0.125) > 1e-12 {
		t.Errorf("rib[3] = %v, want 0.125", rib[3])
	}
	// step = (0.2 - 0.1) / 3
	if math.Abs(bay[2]-(0.2-2*0.1/3)) > 1e-12 {
		t.Errorf("bay[2] = %v", bay[2])
	}
}

const sampleFile = `{
	// uCRM-9 with a 3 spar box
	semi_span: 29.38,
	yehudi_break: 0.37,
	fuselage_section: 0.1,
	central_ribs: 5, yehudi_ribs: 5, semispan_ribs: 5,
	spars: 3, front_spar: 0.1, rear_spar: 0.7,
	root_cap_left: 0.3, root_cap_right: 0.3,
	tip_cap_left: 0.1, tip_cap_right: 0.1,
	stringers: 4, stringer_tolerance: 0.02,
	rib_stiffener_width: 0,
	stringer_layout: 'chordwise',
	mesh: { global_size: 0.15, refinement: 1 },
}`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wing.json5")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if p.Spars != 3 || p.Ribs() != 15 {
		t.Errorf("spars = %d, ribs = %d", p.Spars, p.Ribs())
	}
	if p.StringerLayout != LayoutChordwise {
		t.Errorf("layout = %q", p.StringerLayout)
	}
	if p.Mesh.Refinement != 1 || p.Mesh.GlobalSize != 0.15 {
		t.Errorf("mesh = %+v", p.Mesh)
	}
	// Optional knobs keep their defaults
	if p.HalfSamples != 120 || p.KinkBlendOffset != 1 {
		t.Errorf("defaults lost: half samples %d, kink offset %d", p.HalfSamples, p.KinkBlendOffset)
	}
}

func TestParseMissingKeys(t *testing.T) {
	_, err := Parse([]byte(`{semi_span: 10}`))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Parse error = %v, want *ValidationError", err)
	}
	if !strings.Contains(err.Error(), "central_ribs") {
		t.Errorf("error %q should list missing keys", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json5")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
