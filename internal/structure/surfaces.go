package structure

import (
	"github.com/alexiusacademia/wingbox/internal/features"
	"github.com/alexiusacademia/wingbox/internal/topo"
)

func (b *builder) surfaces() error {
	var err error
	if err = b.ribWebs(); err != nil {
		return err
	}

	spars := b.set.Spars
	b.sparWeb, err = b.a.Surfaces(len(spars), b.ribs-1, func(s, bay int) ([]topo.CurveID, bool) {
		l := spars[s]
		return []topo.CurveID{
			b.spanCurve(l, upper, bay),
			b.vert(l, bay+1),
			b.spanCurve(l, lower, bay),
			b.vert(l, bay),
		}, true
	})
	if err != nil {
		return err
	}

	first := b.set.CapsLeft[0]
	last := b.set.CapsRight[len(b.set.CapsRight)-1]
	for _, h := range halves {
		h := h
		b.frontSkin[h], err = b.a.Surfaces(1, b.ribs-1, func(_, bay int) ([]topo.CurveID, bool) {
			return []topo.CurveID{
				get(b, b.le, 0, bay, "leading edge curve"),
				b.segment(0, bay+1, 0, h),
				b.spanCurve(first, h, bay),
				b.segment(0, bay, 0, h),
			}, true
		})
		if err != nil {
			return err
		}
		b.rearSkin[h], err = b.a.Surfaces(1, b.ribs-1, func(_, bay int) ([]topo.CurveID, bool) {
			return []topo.CurveID{
				b.spanCurve(last, h, bay),
				b.segment(0, bay+1, len(b.ordered[bay+1]), h),
				get(b, b.te, 0, bay, "trailing edge curve"),
				b.segment(0, bay, len(b.ordered[bay]), h),
			}, true
		})
		if err != nil {
			return err
		}
	}

	// Cap strips: left cap to spar and spar to right cap
	for _, h := range halves {
		h := h
		for side, bounds := range [2]func(s int) (a, z *features.Line){
			func(s int) (a, z *features.Line) { return b.set.CapsLeft[s], spars[s] },
			func(s int) (a, z *features.Line) { return spars[s], b.set.CapsRight[s] },
		} {
			bounds := bounds
			b.capStrip[h][side], err = b.a.Surfaces(len(spars), b.ribs-1, func(s, bay int) ([]topo.CurveID, bool) {
				fa, fz := bounds(s)
				return []topo.CurveID{
					b.spanCurve(fa, h, bay),
					b.segmentTo(bay+1, fz, h),
					b.spanCurve(fz, h, bay),
					b.segmentTo(bay, fz, h),
				}, true
			})
			if err != nil {
				return err
			}
		}
	}

	for _, h := range halves {
		b.skin[h] = make([][]topo.SurfaceID, b.ribs-1)
		for bay := 0; bay < b.ribs-1; bay++ {
			for s := 0; s+1 < len(spars); s++ {
				cells, err := b.skinBox(bay, s, h)
				if err != nil {
					return err
				}
				b.skin[h][bay] = append(b.skin[h][bay], cells...)
			}
		}
	}

	if err := b.stringerSurfaces(); err != nil {
		return err
	}
	if b.variants > 1 {
		return b.variantSurfaces()
	}
	return nil
}

// ribWebs fills each rib between consecutive verticals. The first cell
// closes at the leading edge and the last at the trailing edge, so both
// are triangles.
func (b *builder) ribWebs() error {
	var err error
	b.ribWeb, err = b.a.Surfaces(b.ribs, b.maxSeg, func(i, j int) ([]topo.CurveID, bool) {
		ord := b.ordered[i]
		last := len(ord)
		if j > last {
			return nil, false
		}
		up, lo := b.segment(0, i, j, upper), b.segment(0, i, j, lower)
		switch j {
		case 0:
			return []topo.CurveID{up, b.vert(ord[0], i), lo}, true
		case last:
			return []topo.CurveID{up, b.vert(ord[last-1], i), lo}, true
		}
		return []topo.CurveID{up, b.vert(ord[j], i), lo, b.vert(ord[j-1], i)}, true
	})
	return err
}

// skinBox covers the skin of one half between the right cap of spar s and
// the left cap of spar s+1 over one bay. Features present at both ribs
// bound the cells; stringers present at one rib only are joined to the
// other rib by rung curves so every cell is a triangle or a quad.
func (b *builder) skinBox(bay, s int, h half) ([]topo.SurfaceID, error) {
	front, back := b.set.CapsRight[s], b.set.CapsLeft[s+1]
	chain := func(rib int) []*features.Line {
		out := []*features.Line{front}
		for _, str := range b.set.BayStringers(s) {
			if str.Present(rib) {
				out = append(out, str)
			}
		}
		return append(out, back)
	}
	both := func(l *features.Line) bool {
		return l.Present(bay) && l.Present(bay+1)
	}

	ca, cb := chain(bay), chain(bay+1)
	var cells []topo.SurfaceID
	ia, ib := 0, 0
	for ia < len(ca)-1 {
		na := ia + 1
		for !both(ca[na]) {
			na++
		}
		nb := ib + 1
		for cb[nb] != ca[na] {
			nb++
		}
		zipped, err := b.zip(bay, ca[ia:na+1], cb[ib:nb+1], h)
		if err != nil {
			return nil, err
		}
		cells = append(cells, zipped...)
		ia, ib = na, nb
	}
	return cells, nil
}

// zip walks two chains of features that start and end on the same
// spanwise curves, chain a on rib bay and chain z on rib bay+1
func (b *builder) zip(bay int, a, z []*features.Line, h half) ([]topo.SurfaceID, error) {
	var cells []topo.SurfaceID
	rung := b.spanCurve(a[0], h, bay)
	pa, pz := 0, 0
	for pa < len(a)-1 || pz < len(z)-1 {
		advA, advZ := pa < len(a)-1, pz < len(z)-1
		na, nz := pa, pz
		if advA {
			na++
		}
		if advZ {
			nz++
		}

		var next topo.CurveID
		if na == len(a)-1 && nz == len(z)-1 {
			next = b.spanCurve(a[na], h, bay)
		} else {
			var err error
			next, err = b.a.Curve(b.featureNode(0, bay, a[na], h), b.featureNode(0, bay+1, z[nz], h))
			if err != nil {
				return nil, err
			}
			b.model.RungCurves++
		}

		loop := []topo.CurveID{rung}
		if advZ {
			loop = append(loop, b.segmentTo(bay+1, z[nz], h))
		}
		loop = append(loop, next)
		if advA {
			loop = append(loop, b.segmentTo(bay, a[na], h))
		}
		if b.err != nil {
			return nil, b.err
		}
		id, err := b.a.Surface(loop...)
		if err != nil {
			return nil, err
		}
		cells = append(cells, id)
		rung, pa, pz = next, na, nz
	}
	return cells, nil
}

// stringerSurfaces builds the web and flange strips of every stringer
// present at both ribs of a bay, upper web, upper flange, lower web, lower
// flange
func (b *builder) stringerSurfaces() error {
	strs := b.set.Stringers
	for _, h := range halves {
		h := h
		web, flange := 2*int(h), 2*int(h)+1
		var err error
		b.strWeb[h], err = b.a.Surfaces(len(strs), b.ribs-1, func(k, bay int) ([]topo.CurveID, bool) {
			l := strs[k]
			if !l.Present(bay) || !l.Present(bay+1) {
				return nil, false
			}
			return []topo.CurveID{
				b.spanCurve(l, h, bay),
				get(b, b.profCurve, bay+1, 4*k+web, "stringer web curve"),
				get(b, b.profSpan[web], k, bay, "stringer H line"),
				get(b, b.profCurve, bay, 4*k+web, "stringer web curve"),
			}, true
		})
		if err != nil {
			return err
		}
		b.strFlange[h], err = b.a.Surfaces(len(strs), b.ribs-1, func(k, bay int) ([]topo.CurveID, bool) {
			l := strs[k]
			if !l.Present(bay) || !l.Present(bay+1) {
				return nil, false
			}
			return []topo.CurveID{
				get(b, b.profSpan[web], k, bay, "stringer H line"),
				get(b, b.profCurve, bay+1, 4*k+flange, "stringer flange curve"),
				get(b, b.profSpan[flange], k, bay, "stringer L line"),
				get(b, b.profCurve, bay, 4*k+flange, "stringer flange curve"),
			}, true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// variantSurfaces builds the rib cap strips between the rib plane and each
// flange variant and the rib stiffeners at every present stringer
func (b *builder) variantSurfaces() error {
	b.ribCap = make([][2]*topo.Table[topo.SurfaceID], b.variants)
	b.stiffener = make([]*topo.Table[topo.SurfaceID], b.variants)

	for v := 1; v < b.variants; v++ {
		v := v
		from, to := b.ribRange(v)
		var err error
		for _, h := range halves {
			h := h
			b.ribCap[v][h], err = b.a.Surfaces(b.ribs, b.maxSeg, func(i, j int) ([]topo.CurveID, bool) {
				if i < from || i >= to || j == 0 || j >= len(b.ordered[i]) {
					return nil, false
				}
				return []topo.CurveID{
					b.segment(0, i, j, h),
					b.connectorAt(v, i, j, h),
					b.segment(v, i, j, h),
					b.connectorAt(v, i, j-1, h),
				}, true
			})
			if err != nil {
				return err
			}
		}

		strs := b.set.Stringers
		b.stiffener[v], err = b.a.Surfaces(len(strs), b.ribs, func(k, i int) ([]topo.CurveID, bool) {
			l := strs[k]
			if i < from || i >= to || !l.Present(i) {
				return nil, false
			}
			p := b.index[i][l]
			return []topo.CurveID{
				b.vert(l, i),
				b.connectorAt(v, i, p, lower),
				get(b, b.varVert[v], k, i, "variant stringer vertical"),
				b.connectorAt(v, i, p, upper),
			}, true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
