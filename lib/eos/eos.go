/*package eos implements the equation-of-state engines consulted by the
hydrodynamic evolution. An EOS maps a local energy density (and, for
charge-dependent families, conserved-charge densities) to thermodynamic
observables, and inverts the monotonic ones back to energy density. All
quantities are in natural units: energy densities in 1/fm^4, temperatures
in 1/fm, entropy densities in 1/fm^3. Table files store GeV-based physical
units on disk and are converted once at load time.

Families are selected by an integer id, mirroring the configuration keys of
the hydro code these tables come from. After a successful Initialize, every
lookup is pure and safe to call concurrently from the per-cell workers of
the evolution loop.
*/
package eos

import (
	"errors"
	"fmt"

	"github.com/andrewgordeev/music-eos/lib/table"
)

// HbarC is hbar*c in GeV*fm. Dividing a GeV-based quantity by the matching
// power of HbarC converts it to natural units; the loaders do this once at
// ingestion so nothing downstream ever re-converts.
const HbarC = 0.19733

// ErrInvalidTableState is returned when an EOS operation is invoked outside
// its required lifecycle state, e.g. a lookup before Initialize. See
// table.ErrInvalidTableState.
var ErrInvalidTableState = table.ErrInvalidTableState

// ErrUnsupported is returned when an inversion is requested against a field
// that the selected table family does not retain. The caller can recover by
// choosing a supported operation or a different family.
var ErrUnsupported = errors.New("unsupported operation")

// Charges carries the conserved-charge densities of one query point in
// 1/fm^3. It is part of the shared call signature so that callers are
// uniform across families; the families implemented here are
// charge-independent and ignore it.
type Charges struct {
	B, S, C float64
}

// EOS is the capability set shared by every table family. Each operation
// also takes the local charge densities and the proper time tau so that the
// hydrodynamic stepper can treat all families interchangeably; families
// that do not depend on them ignore them.
type EOS interface {
	// ID returns the family's configuration id.
	ID() int
	// Initialize loads the family's tables. It must be called exactly once,
	// before any other operation and before any concurrent use. A failed
	// Initialize is terminal: later calls re-raise the same error.
	Initialize() error
	// EpsMax returns the largest representable energy density in 1/fm^4.
	EpsMax() float64
	// Pressure returns the local pressure in 1/fm^4 given the local energy
	// density in 1/fm^4.
	Pressure(e float64, ch Charges, tau float64) (float64, error)
	// Temperature returns the local temperature in 1/fm given the local
	// energy density in 1/fm^4.
	Temperature(e float64, ch Charges, tau float64) (float64, error)
	// EnergyFromEntropy returns the energy density at which the entropy
	// density equals s.
	EnergyFromEntropy(s float64, ch Charges, tau float64) (float64, error)
	// EnergyFromTemperature returns the energy density at which the
	// temperature equals T.
	EnergyFromTemperature(T float64, ch Charges, tau float64) (float64, error)
}

// Family identifies one concrete EOS implementation: its configuration id,
// the largest energy density it can represent, and which conserved charges
// its chemical potentials cover. A Family is immutable after construction,
// with one exception: EpsMax is refined exactly once by the loader's
// finalize step, when the last tabulated sample becomes known.
type Family struct {
	ID            int
	EpsMax        float64
	MuB, MuS, MuC bool
}

// Engine lifecycle states. The transitions are Uninitialized -> Loading ->
// Ready, or Loading -> Failed terminally if the tables cannot be read. The
// state word is read and written atomically, so the store of stateReady
// publishes every table write that preceded it.
const (
	stateUninit int32 = iota
	stateLoading
	stateReady
	stateFailed
)

// defaultEpsMax is the EpsMax a family reports before its loader has seen
// the table's last sample.
const defaultEpsMax = 1e5

// New returns the EOS family selected by id. dir is the base data directory
// under which table families look for their files (the hotQCD family reads
// <dir>/EOS/hotQCD); families without tables ignore it.
func New(id int, dir string) (EOS, error) {
	switch id {
	case IdealGasID:
		return NewIdealGas(), nil
	case HotQCDID:
		return NewHotQCD(dir), nil
	}
	return nil, fmt.Errorf("There is no EOS family with id %d. The valid "+
		"ids are %d (ideal gas) and %d (hotQCD).", id, IdealGasID, HotQCDID)
}

// Type checking
var (
	_ EOS = &IdealGas{ }
	_ EOS = &HotQCD{ }
)
