package interpolate

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestLinearEval(t *testing.T) {
	// Grid at x = 1.0, 1.5, 2.0, 2.5. The last segment's slope is 8 per
	// unit x, which the above-range cases must follow.
	in := NewLinear(1.0, 0.5, []float64{2, 3, 5, 9})

	tests := []struct {
		x, want float64
	}{
		{1.0, 2}, {1.5, 3}, {2.0, 5}, {2.5, 9},
		{1.25, 2.5}, {1.75, 4}, {2.25, 7},

		// Below range: flat clamp to the first sample.
		{0.999, 2}, {0.0, 2}, {-100, 2},

		// Above range: linear extrapolation, not a clamp.
		{3.0, 13}, {3.5, 17}, {25.0, 189},
	}

	for i := range tests {
		got := in.Eval(tests[i].x)
		if !floats.EqualWithinAbs(got, tests[i].want, 1e-10) {
			t.Errorf("%d) Expected Eval(%g) = %g, got %g.",
				i, tests[i].x, tests[i].want, got)
		}
	}
}

func TestLinearFloor(t *testing.T) {
	// Every sample is <= 0, so every query must come back floored, even
	// pathological ones far outside the grid.
	in := NewLinear(0, 1, []float64{0, -1, -2})

	xs := []float64{-1e10, -50, 0, 0.5, 1, 2, 10, 1e10}
	for i, x := range xs {
		if got := in.Eval(x); got != MinValue {
			t.Errorf("%d) Expected Eval(%g) to floor at %g, got %g.",
				i, x, MinValue, got)
		}
	}
}

func TestLinearInvert(t *testing.T) {
	// Strictly increasing with slopes that change every cell.
	in := NewLinear(-1.0, 0.5, []float64{1, 2, 4, 8, 16})

	tests := []struct {
		y, want float64
	}{
		{1, -1}, {2, -0.5}, {4, 0}, {8, 0.5}, {16, 1},
		{1.5, -0.75}, {3, -0.25}, {6, 0.25}, {12, 0.75},

		// Below the first sample: clamp to the grid's start.
		{0.5, -1}, {-3, -1},

		// Above the last sample: extrapolate with the last segment's
		// slope, (16-8)/0.5 = 16.
		{20, 1.25}, {32, 2},
	}

	for i := range tests {
		got := in.Invert(tests[i].y)
		if !floats.EqualWithinAbs(got, tests[i].want, 1e-10) {
			t.Errorf("%d) Expected Invert(%g) = %g, got %g.",
				i, tests[i].y, tests[i].want, got)
		}
	}
}

func TestLinearRoundTrip(t *testing.T) {
	// A smooth monotonic field: the Eval -> Invert -> Eval round trip has
	// to close over the whole domain, extrapolated regions included.
	y := make([]float64, 64)
	for i := range y {
		y[i] = math.Pow(0.1*float64(i+1), 2)
	}
	in := NewLinear(0.0, 0.25, y)

	for x := -1.0; x <= 20.0; x += 0.0917 {
		v := in.Eval(x)
		x2 := in.Invert(v)
		v2 := in.Eval(x2)
		if !floats.EqualWithinAbsOrRel(v2, v, 1e-10, 1e-10) {
			t.Errorf("Round trip at x = %g: Eval = %g, but "+
				"Eval(Invert(Eval)) = %g.", x, v, v2)
		}
	}

	// On-grid values invert to their grid points exactly (within floating
	// point error), including the extrapolation branch.
	for i := range y {
		x := 0.25 * float64(i)
		if got := in.Invert(y[i]); !floats.EqualWithinAbs(got, x, 1e-10) {
			t.Errorf("Expected Invert(y[%d]) = %g, got %g.", i, x, got)
		}
	}
}

func TestLinearInvertFlatField(t *testing.T) {
	// A degenerate (flat) field can't be inverted meaningfully, but Invert
	// must still return a bounded, in-range coordinate instead of dividing
	// by zero.
	in := NewLinear(0, 1, []float64{3, 3, 3})

	for i, y := range []float64{2, 3, 4} {
		got := in.Invert(y)
		if math.IsNaN(got) || math.IsInf(got, 0) || got < 0 || got > 2 {
			t.Errorf("%d) Invert(%g) on a flat field returned %g.",
				i, y, got)
		}
	}
}
