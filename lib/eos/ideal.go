package eos

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/andrewgordeev/music-eos/lib/interpolate"
)

// IdealGasID is the configuration id of the conformal ideal-gas family.
const IdealGasID = 0

// idealGasCoeff is the degeneracy prefactor of a massless quark-gluon gas
// with Nc = 3 and Nf = 2.5, in e = idealGasCoeff * T^4.
const idealGasCoeff = 3.0 * (169.0 / 18.0) * math.Pi * math.Pi / 90.0

// IdealGas is the conformal massless-parton EOS family: p = e/3 with
// closed-form temperature and entropy relations, so every operation inverts
// exactly. It has no tables and reads no files; Initialize only drives the
// shared lifecycle contract. Mostly useful as a fast stand-in when the
// tabulated families' physics is not needed.
type IdealGas struct {
	family Family
	state  int32
}

// NewIdealGas creates an uninitialized ideal-gas EOS.
func NewIdealGas() *IdealGas {
	return &IdealGas{ family: Family{ ID: IdealGasID, EpsMax: defaultEpsMax } }
}

// ID returns the family's configuration id.
func (eos *IdealGas) ID() int { return eos.family.ID }

// EpsMax returns the largest representable energy density in 1/fm^4.
func (eos *IdealGas) EpsMax() float64 { return eos.family.EpsMax }

// Initialize transitions the engine to Ready. There is nothing to load, but
// the lifecycle contract is the same as the tabulated families'.
func (eos *IdealGas) Initialize() error {
	if !atomic.CompareAndSwapInt32(&eos.state, stateUninit, stateReady) {
		return fmt.Errorf("%w: Initialize was called twice on the "+
			"ideal-gas EOS", ErrInvalidTableState)
	}
	return nil
}

func (eos *IdealGas) ready() error {
	if atomic.LoadInt32(&eos.state) != stateReady {
		return fmt.Errorf("%w: the ideal-gas EOS was evaluated before "+
			"Initialize", ErrInvalidTableState)
	}
	return nil
}

// Pressure returns e/3, the conformal pressure, floored like the tabulated
// families' lookups.
func (eos *IdealGas) Pressure(e float64, ch Charges, tau float64) (float64, error) {
	if err := eos.ready(); err != nil {
		return 0, err
	}
	return math.Max(interpolate.MinValue, e/3.0), nil
}

// Temperature returns (e / idealGasCoeff)^(1/4) in 1/fm.
func (eos *IdealGas) Temperature(e float64, ch Charges, tau float64) (float64, error) {
	if err := eos.ready(); err != nil {
		return 0, err
	}
	if e < 0 {
		e = 0
	}
	return math.Max(interpolate.MinValue,
		math.Pow(e/idealGasCoeff, 0.25)), nil
}

// EnergyFromEntropy inverts s = (e + p)/T = (4/3) e / T analytically.
func (eos *IdealGas) EnergyFromEntropy(s float64, ch Charges, tau float64) (float64, error) {
	if err := eos.ready(); err != nil {
		return 0, err
	}
	if s < 0 {
		s = 0
	}
	// s = (4/3) idealGasCoeff^(1/4) e^(3/4)
	return math.Pow(3.0*s/4.0, 4.0/3.0) /
		math.Cbrt(idealGasCoeff), nil
}

// EnergyFromTemperature returns idealGasCoeff * T^4.
func (eos *IdealGas) EnergyFromTemperature(T float64, ch Charges, tau float64) (float64, error) {
	if err := eos.ready(); err != nil {
		return 0, err
	}
	if T < 0 {
		T = 0
	}
	return idealGasCoeff * T * T * T * T, nil
}
