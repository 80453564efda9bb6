/*package interpolate implements lookup and inversion over thermodynamic
fields tabulated on a uniform grid. The interpolators are pure and hold no
caches, so a single instance can be evaluated concurrently from any number
of threads.
*/
package interpolate

import (
	"fmt"
)

// MinValue is the floor applied to every interpolated value. Pressure and
// temperature are strictly positive in the regime the tables model, so a
// lookup never reports zero or a small negative value caused by floating
// point noise.
const MinValue = 1e-15

// Interpolator is a 1D interpolator over a uniform grid.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// Invert solves Eval(x) == y for fields whose samples increase
	// monotonically.
	Invert(y float64) float64
}

var _ Interpolator = &Linear{ }

// Linear is a piecewise-linear interpolator over samples y placed on the
// grid x0 + i*dx. Queries below the grid clamp flat to y[0]: fields near
// vacuum are not guaranteed to be linear, so extrapolating a slope there
// would be wrong more often than it would be right. Queries above the grid
// extrapolate linearly with the last segment's slope, since a simulation
// can transiently push energy densities past the tabulated maximum and a
// hard failure there would kill otherwise-healthy runs.
type Linear struct {
	x0, dx float64
	y      []float64
}

// NewLinear creates a linear interpolator over the samples y on the uniform
// grid starting at x0 with spacing dx.
func NewLinear(x0, dx float64, y []float64) *Linear {
	if len(y) < 2 {
		panic(fmt.Sprintf("Internal error: a Linear interpolator needs at "+
			"least two samples, but was given %d.", len(y)))
	} else if dx <= 0 {
		panic(fmt.Sprintf("Internal error: a Linear interpolator needs a "+
			"positive grid spacing, but was given %g.", dx))
	}
	return &Linear{ x0, dx, y }
}

// Eval evaluates the interpolator at x with the clamp/extrapolate policy
// described on the Linear type. The result is floored at MinValue.
func (in *Linear) Eval(x float64) float64 {
	n := len(in.y)
	idx := (x - in.x0) / in.dx

	var f float64
	if idx < 0 {
		f = in.y[0]
	} else {
		// The index is clamped to the last segment before converting to
		// int, so frac > 1 extrapolates it linearly.
		i := n - 2
		if idx < float64(n-2) {
			i = int(idx)
		}
		frac := idx - float64(i)
		f = in.y[i]*(1-frac) + in.y[i+1]*frac
	}

	if f < MinValue {
		f = MinValue
	}
	return f
}

// Invert solves Eval(x) == y, assuming the samples increase monotonically.
// It binary searches for the bracketing cell, then inverts the linear
// interpolation inside it. The edge policy mirrors Eval's: targets below
// the first sample return x0 and targets above the last sample extrapolate
// with the last segment's slope, so Eval(Invert(y)) round trips within one
// cell's interpolation error over the whole domain, extrapolated regions
// included.
func (in *Linear) Invert(y float64) float64 {
	n := len(in.y)

	if y <= in.y[0] {
		return in.x0
	} else if y >= in.y[n-1] {
		slope := (in.y[n-1] - in.y[n-2]) / in.dx
		if slope <= 0 {
			return in.x0 + in.dx*float64(n-1)
		}
		return in.x0 + in.dx*float64(n-1) + (y-in.y[n-1])/slope
	}

	// Narrow to the cell [lo, lo+1] with y[lo] <= y < y[lo+1].
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if in.y[mid] <= y {
			lo = mid
		} else {
			hi = mid
		}
	}

	dy := in.y[lo+1] - in.y[lo]
	if dy <= 0 {
		return in.x0 + in.dx*float64(lo)
	}
	frac := (y - in.y[lo]) / dy
	return in.x0 + in.dx*(float64(lo)+frac)
}
