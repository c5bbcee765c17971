package geom

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced samples over [a, b], endpoints included
func Linspace(a, b float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{a}
	}
	return floats.Span(make([]float64, n), a, b)
}

// Interp evaluates the piecewise linear function through (xp, fp) at x.
// xp must be increasing. Values outside the table are clamped to the end values.
func Interp(x float64, xp, fp []float64) float64 {
	n := len(xp)
	if n == 0 {
		return 0
	}
	if x <= xp[0] {
		return fp[0]
	}
	if x >= xp[n-1] {
		return fp[n-1]
	}

	// First index with xp[i] > x; x lies in [xp[i-1], xp[i])
	i := sort.SearchFloat64s(xp, x)
	if xp[i] == x {
		return fp[i]
	}
	x0, x1 := xp[i-1], xp[i]
	t := (x - x0) / (x1 - x0)
	return fp[i-1] + t*(fp[i]-fp[i-1])
}

// InterpAll evaluates Interp at every x
func InterpAll(xs, xp, fp []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Interp(x, xp, fp)
	}
	return out
}

// Lerp interpolates between a and b at parameter t
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Gradient returns df/dx on a non-uniform grid using second order central
// differences in the interior and one-sided first order differences at the ends.
func Gradient(f, x []float64) []float64 {
	n := len(f)
	g := make([]float64, n)
	if n < 2 {
		return g
	}

	g[0] = (f[1] - f[0]) / (x[1] - x[0])
	g[n-1] = (f[n-1] - f[n-2]) / (x[n-1] - x[n-2])

	for i := 1; i < n-1; i++ {
		hs := x[i] - x[i-1]
		hd := x[i+1] - x[i]
		g[i] = (hs*hs*f[i+1] + (hd*hd-hs*hs)*f[i] - hd*hd*f[i-1]) / (hs * hd * (hd + hs))
	}
	return g
}

// Increasing reports whether xs is strictly increasing
func Increasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}
