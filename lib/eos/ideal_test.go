package eos

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/andrewgordeev/music-eos/lib/interpolate"
)

func TestIdealGasLifecycle(t *testing.T) {
	e := NewIdealGas()

	_, err1 := e.Pressure(1, Charges{ }, 0)
	_, err2 := e.Temperature(1, Charges{ }, 0)
	_, err3 := e.EnergyFromEntropy(1, Charges{ }, 0)
	_, err4 := e.EnergyFromTemperature(1, Charges{ }, 0)
	for i, err := range []error{err1, err2, err3, err4} {
		if !errors.Is(err, ErrInvalidTableState) {
			t.Errorf("%d) Expected a lookup before Initialize to fail "+
				"with ErrInvalidTableState, got %v.", i, err)
		}
	}

	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %s", err.Error())
	}
	if err := e.Initialize(); !errors.Is(err, ErrInvalidTableState) {
		t.Errorf("Expected a second Initialize to fail with "+
			"ErrInvalidTableState, got %v.", err)
	}
}

func TestIdealGasClosedForm(t *testing.T) {
	e := NewIdealGas()
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %s", err.Error())
	}

	for i, en := range []float64{1e-3, 0.1, 1, 10, 500} {
		p, err := e.Pressure(en, Charges{ }, 0)
		if err != nil {
			t.Fatalf("%d) Pressure failed: %s", i, err.Error())
		}
		if !floats.EqualWithinAbsOrRel(p, en/3, 1e-12, 1e-12) {
			t.Errorf("%d) Expected Pressure(%g) = e/3 = %g, got %g.",
				i, en, en/3, p)
		}

		// The conformal relations invert exactly.
		T, err := e.Temperature(en, Charges{ }, 0)
		if err != nil {
			t.Fatalf("%d) Temperature failed: %s", i, err.Error())
		}
		eT, err := e.EnergyFromTemperature(T, Charges{ }, 0)
		if err != nil {
			t.Fatalf("%d) EnergyFromTemperature failed: %s", i, err.Error())
		}
		if !floats.EqualWithinAbsOrRel(eT, en, 1e-10, 1e-10) {
			t.Errorf("%d) Temperature round trip: e = %g came back as %g.",
				i, en, eT)
		}

		s := (en + p) / T
		eS, err := e.EnergyFromEntropy(s, Charges{ }, 0)
		if err != nil {
			t.Fatalf("%d) EnergyFromEntropy failed: %s", i, err.Error())
		}
		if !floats.EqualWithinAbsOrRel(eS, en, 1e-10, 1e-10) {
			t.Errorf("%d) Entropy round trip: e = %g came back as %g.",
				i, en, eS)
		}
	}

	// Pathological inputs floor rather than going negative or NaN.
	for i, en := range []float64{-1e6, -1, 0} {
		p, err := e.Pressure(en, Charges{ }, 0)
		if err != nil {
			t.Fatalf("%d) Pressure failed: %s", i, err.Error())
		}
		T, err := e.Temperature(en, Charges{ }, 0)
		if err != nil {
			t.Fatalf("%d) Temperature failed: %s", i, err.Error())
		}
		if p < interpolate.MinValue || T < interpolate.MinValue {
			t.Errorf("%d) Pressure(%g) = %g, Temperature(%g) = %g; both "+
				"must floor at %g.", i, en, p, en, T, interpolate.MinValue)
		}
	}
}
