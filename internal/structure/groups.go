package structure

import (
	"fmt"

	"github.com/alexiusacademia/wingbox/internal/topo"
)

// group creates one component per rib or bay named <name>_<index+1>.
// Indices without surfaces are skipped.
func (b *builder) group(name string, mesh []float64, surfaces func(i int) []topo.SurfaceID) error {
	b.model.GroupOrder = append(b.model.GroupOrder, name)
	for i := range mesh {
		id, ok, err := b.a.Group(fmt.Sprintf("%s_%d", name, i+1), surfaces(i), mesh[i])
		if err != nil {
			return err
		}
		if ok {
			b.model.Groups[name] = append(b.model.Groups[name], id)
		}
	}
	return nil
}

// column collects column i of the tables that exist
func column(i int, tables ...*topo.Table[topo.SurfaceID]) []topo.SurfaceID {
	var out []topo.SurfaceID
	for _, t := range tables {
		if t != nil {
			out = append(out, t.Column(i)...)
		}
	}
	return out
}

func row(i int, tables ...*topo.Table[topo.SurfaceID]) []topo.SurfaceID {
	var out []topo.SurfaceID
	for _, t := range tables {
		if t != nil {
			out = append(out, t.Row(i)...)
		}
	}
	return out
}

type groupDef struct {
	name     string
	mesh     []float64
	surfaces func(i int) []topo.SurfaceID
}

func (b *builder) components() error {
	rib, bay := b.in.RibMesh, b.in.BayMesh

	var stiffeners, capsUp, capsLo []*topo.Table[topo.SurfaceID]
	for v := 1; v < b.variants; v++ {
		stiffeners = append(stiffeners, b.stiffener[v])
		capsUp = append(capsUp, b.ribCap[v][upper])
		capsLo = append(capsLo, b.ribCap[v][lower])
	}

	ribCell := func(i int, pick func(last int) (from, to int)) []topo.SurfaceID {
		from, to := pick(len(b.ordered[i]))
		var out []topo.SurfaceID
		for j := from; j <= to; j++ {
			if id, ok := b.ribWeb.Get(i, j); ok {
				out = append(out, id)
			}
		}
		return out
	}

	steps := []groupDef{
		{"Rib_Stiffeners", rib, func(i int) []topo.SurfaceID { return column(i, stiffeners...) }},
		{"Rib_Caps_Upper", rib, func(i int) []topo.SurfaceID { return row(i, capsUp...) }},
		{"Rib_Caps_Lower", rib, func(i int) []topo.SurfaceID { return row(i, capsLo...) }},
		{"Ribs", rib, func(i int) []topo.SurfaceID {
			return ribCell(i, func(last int) (int, int) { return 1, last - 1 })
		}},
		{"Upper_Skin", bay, func(i int) []topo.SurfaceID { return b.skin[upper][i] }},
		{"Lower_Skin", bay, func(i int) []topo.SurfaceID { return b.skin[lower][i] }},
	}
	for s := range b.set.Spars {
		s := s
		steps = append(steps, groupDef{fmt.Sprintf("Spar_No_%d", s+1), bay, func(i int) []topo.SurfaceID {
			return cell(b.sparWeb, s, i)
		}})
	}
	for _, h := range halves {
		h := h
		for s := range b.set.Spars {
			s := s
			steps = append(steps, groupDef{fmt.Sprintf("%s_Spar_Cap_No_%d", h, s+1), bay, func(i int) []topo.SurfaceID {
				return append(cell(b.capStrip[h][0], s, i), cell(b.capStrip[h][1], s, i)...)
			}})
		}
	}
	steps = append(steps, []groupDef{
		{"Upper_Stringers_Z", bay, func(i int) []topo.SurfaceID { return column(i, b.strWeb[upper]) }},
		{"Upper_Stringers_X", bay, func(i int) []topo.SurfaceID { return column(i, b.strFlange[upper]) }},
		{"Lower_Stringers_Z", bay, func(i int) []topo.SurfaceID { return column(i, b.strWeb[lower]) }},
		{"Lower_Stringers_X", bay, func(i int) []topo.SurfaceID { return column(i, b.strFlange[lower]) }},
		{"Front_Rib", rib, func(i int) []topo.SurfaceID {
			return ribCell(i, func(int) (int, int) { return 0, 0 })
		}},
		{"Rear_Rib", rib, func(i int) []topo.SurfaceID {
			return ribCell(i, func(last int) (int, int) { return last, last })
		}},
		{"Front_Upper_Skin", bay, func(i int) []topo.SurfaceID { return column(i, b.frontSkin[upper]) }},
		{"Front_Lower_Skin", bay, func(i int) []topo.SurfaceID { return column(i, b.frontSkin[lower]) }},
		{"Rear_Upper_Skin", bay, func(i int) []topo.SurfaceID { return column(i, b.rearSkin[upper]) }},
		{"Rear_Lower_Skin", bay, func(i int) []topo.SurfaceID { return column(i, b.rearSkin[lower]) }},
	}...)

	for _, st := range steps {
		if err := b.group(st.name, st.mesh, st.surfaces); err != nil {
			return err
		}
	}
	return nil
}

func cell(t *topo.Table[topo.SurfaceID], i, j int) []topo.SurfaceID {
	if id, ok := t.Get(i, j); ok {
		return []topo.SurfaceID{id}
	}
	return nil
}

func (b *builder) assemblies() error {
	g := b.model.Groups
	join := func(names ...string) []topo.ComponentID {
		var out []topo.ComponentID
		for _, n := range names {
			out = append(out, g[n]...)
		}
		return out
	}

	type assembly struct {
		name  string
		parts []topo.ComponentID
	}
	list := []assembly{
		{"Rib_Stiffeners", join("Rib_Stiffeners")},
		{"Rib_Caps", join("Rib_Caps_Upper", "Rib_Caps_Lower")},
		{"Upper_Stringers", join("Upper_Stringers_Z", "Upper_Stringers_X")},
		{"Lower_Stringers", join("Lower_Stringers_Z", "Lower_Stringers_X")},
		{"Upper_Skin", join("Upper_Skin")},
		{"Lower_Skin", join("Lower_Skin")},
		{"Main_Rib", join("Ribs")},
		{"Front_Rib", join("Front_Rib")},
		{"Rear_Rib", join("Rear_Rib")},
		{"Rear_Upper_Skin", join("Rear_Upper_Skin")},
		{"Rear_Lower_Skin", join("Rear_Lower_Skin")},
		{"Front_Upper_Skin", join("Front_Upper_Skin")},
		{"Front_Lower_Skin", join("Front_Lower_Skin")},
	}
	for s := range b.set.Spars {
		n := s + 1
		list = append(list,
			assembly{fmt.Sprintf("Spars_No_%d", n), join(fmt.Sprintf("Spar_No_%d", n))},
			assembly{fmt.Sprintf("Spar_Caps_No_%d", n),
				join(fmt.Sprintf("Upper_Spar_Cap_No_%d", n), fmt.Sprintf("Lower_Spar_Cap_No_%d", n))},
		)
	}

	for _, as := range list {
		id, ok, err := b.a.Collect(as.name, as.parts)
		if err != nil {
			return err
		}
		if ok {
			b.model.AssemblyOrder = append(b.model.AssemblyOrder, as.name)
			b.model.Assemblies[as.name] = id
		}
	}
	return nil
}
