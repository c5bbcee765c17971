package structure

import (
	"github.com/alexiusacademia/wingbox/internal/features"
	"github.com/alexiusacademia/wingbox/internal/topo"
)

func (b *builder) curves() error {
	var err error

	// Rib segments of the rib plane, upper then lower per rib
	seg0, err := b.segments(0, 0, b.ribs, false)
	if err != nil {
		return err
	}
	b.seg = make([]*topo.Table[topo.CurveID], b.variants)
	b.seg[0] = seg0

	edge := func(k int) topo.CurveBoundary {
		return func(_, bay int) ([]topo.NodeID, bool) {
			return []topo.NodeID{b.node(0, bay, k), b.node(0, bay+1, k)}, true
		}
	}
	if b.le, err = b.a.Curves(1, b.ribs-1, edge(b.n-1)); err != nil {
		return err
	}
	if b.te, err = b.a.Curves(1, b.ribs-1, edge(0)); err != nil {
		return err
	}

	boxed := []struct {
		kind  features.Kind
		lines []*features.Line
	}{
		{features.Spar, b.set.Spars},
		{features.CapLeft, b.set.CapsLeft},
		{features.CapRight, b.set.CapsRight},
	}
	for _, g := range boxed {
		if b.vertical[g.kind], err = b.verticals(0, g.lines, 0, b.ribs); err != nil {
			return err
		}
	}
	for _, g := range boxed {
		for _, h := range halves {
			if b.span[spanKey{g.kind, h}], err = b.spanwise(g.lines, h); err != nil {
				return err
			}
		}
	}

	if err := b.stringerCurves(); err != nil {
		return err
	}
	if b.variants > 1 {
		return b.variantCurves()
	}
	return nil
}

// segments creates the rib segment curves of variant v for ribs in
// [from, to). With interior set the leading and trailing edge segments are
// left out.
func (b *builder) segments(v, from, to int, interior bool) (*topo.Table[topo.CurveID], error) {
	return b.a.Curves(2*b.ribs, b.maxSeg, func(r, j int) ([]topo.NodeID, bool) {
		i, h := r/2, half(r%2)
		last := len(b.ordered[i])
		if i < from || i >= to || j > last {
			return nil, false
		}
		if interior && (j == 0 || j == last) {
			return nil, false
		}
		return b.segmentNodes(v, i, j, h), true
	})
}

// verticals joins the upper and lower node of every present line at ribs
// in [from, to)
func (b *builder) verticals(v int, lines []*features.Line, from, to int) (*topo.Table[topo.CurveID], error) {
	return b.a.Curves(len(lines), b.ribs, func(s, i int) ([]topo.NodeID, bool) {
		l := lines[s]
		if i < from || i >= to || !l.Present(i) {
			return nil, false
		}
		return []topo.NodeID{b.featureNode(v, i, l, upper), b.featureNode(v, i, l, lower)}, true
	})
}

// spanwise joins each line between adjacent ribs where it is present at both
func (b *builder) spanwise(lines []*features.Line, h half) (*topo.Table[topo.CurveID], error) {
	return b.a.Curves(len(lines), b.ribs-1, func(s, bay int) ([]topo.NodeID, bool) {
		l := lines[s]
		if !l.Present(bay) || !l.Present(bay+1) {
			return nil, false
		}
		return []topo.NodeID{b.featureNode(0, bay, l, h), b.featureNode(0, bay+1, l, h)}, true
	})
}

func (b *builder) stringerCurves() error {
	var err error
	strs := b.set.Stringers
	for _, h := range halves {
		if b.span[spanKey{features.Stringer, h}], err = b.spanwise(strs, h); err != nil {
			return err
		}
	}
	if b.vertical[features.Stringer], err = b.verticals(0, strs, 0, b.ribs); err != nil {
		return err
	}

	// Web (skin node to H) and flange (H to L), upper then lower
	b.profCurve, err = b.a.Curves(b.ribs, 4*len(strs), func(i, c int) ([]topo.NodeID, bool) {
		l := strs[c/4]
		if !l.Present(i) {
			return nil, false
		}
		p := b.profile[l][i]
		switch c % 4 {
		case 0:
			return []topo.NodeID{b.featureNode(0, i, l, upper), p[0]}, true
		case 1:
			return []topo.NodeID{p[0], p[1]}, true
		case 2:
			return []topo.NodeID{b.featureNode(0, i, l, lower), p[2]}, true
		default:
			return []topo.NodeID{p[2], p[3]}, true
		}
	})
	if err != nil {
		return err
	}

	for m := range b.profSpan {
		m := m
		b.profSpan[m], err = b.a.Curves(len(strs), b.ribs-1, func(s, bay int) ([]topo.NodeID, bool) {
			l := strs[s]
			if !l.Present(bay) || !l.Present(bay+1) {
				return nil, false
			}
			return []topo.NodeID{b.profile[l][bay][m], b.profile[l][bay+1][m]}, true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// variantCurves creates, per flange variant, the connectors from the rib
// plane to the variant, the interior variant rib segments and the variant
// stringer verticals
func (b *builder) variantCurves() error {
	b.connector = make([]*topo.Table[topo.CurveID], b.variants)
	b.varVert = make([]*topo.Table[topo.CurveID], b.variants)
	maxOrd := b.maxSeg - 1

	for v := 1; v < b.variants; v++ {
		v := v
		from, to := b.ribRange(v)
		var err error
		b.connector[v], err = b.a.Curves(b.ribs, 2*maxOrd, func(i, c int) ([]topo.NodeID, bool) {
			p, h := c/2, half(c%2)
			if i < from || i >= to || p >= len(b.ordered[i]) {
				return nil, false
			}
			l := b.ordered[i][p]
			return []topo.NodeID{b.featureNode(0, i, l, h), b.featureNode(v, i, l, h)}, true
		})
		if err != nil {
			return err
		}
		if b.seg[v], err = b.segments(v, from, to, true); err != nil {
			return err
		}
		if b.varVert[v], err = b.verticals(v, b.set.Stringers, from, to); err != nil {
			return err
		}
	}
	return nil
}

// Lookups into the curve tables

func (b *builder) vert(l *features.Line, i int) topo.CurveID {
	return get(b, b.vertical[l.Kind], l.Index, i, l.Name()+" vertical")
}

func (b *builder) spanCurve(l *features.Line, h half, bay int) topo.CurveID {
	return get(b, b.span[spanKey{l.Kind, h}], l.Index, bay, l.Name()+" spanwise curve")
}

// segment returns rib segment j of variant v at rib i
func (b *builder) segment(v, i, j int, h half) topo.CurveID {
	return get(b, b.seg[v], 2*i+int(h), j, "rib segment")
}

// segmentTo returns the rib plane segment of rib i ending at l
func (b *builder) segmentTo(i int, l *features.Line, h half) topo.CurveID {
	return b.segment(0, i, b.index[i][l], h)
}

func (b *builder) connectorAt(v, i, p int, h half) topo.CurveID {
	return get(b, b.connector[v], i, 2*p+int(h), "flange connector")
}
