package eos

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/DataDog/zstd"
	log "github.com/sirupsen/logrus"

	"github.com/andrewgordeev/music-eos/lib/interpolate"
	"github.com/andrewgordeev/music-eos/lib/table"
)

const (
	// HotQCDID is the configuration id of the hotQCD table family.
	HotQCDID = 9

	// hotQCDFile holds the lattice-QCD equation of state matched to a
	// hadron resonance gas at low temperature. Records are four
	// little-endian float64s in the order (e, p, s, T), in GeV-based units.
	hotQCDFile = "hrg_hotqcd_eos_binary.dat"

	hotQCDRecordSize = 4 * 8
)

// Field names registered in the hotQCD family's table store.
const (
	pressureField    = "pressure"
	entropyField     = "entropy"
	temperatureField = "temperature"
)

// HotQCD is the tabulated lattice-QCD EOS family. Its tables depend on
// energy density only, so the charge densities and proper time in the
// shared call signature are ignored.
type HotQCD struct {
	family  Family
	dir     string
	state   int32
	loadErr error

	store   *table.Store
	p, T, s *interpolate.Linear
	sOK     bool
}

// NewHotQCD creates an uninitialized hotQCD EOS which will read its table
// from <dir>/EOS/hotQCD. Initialize must be called before any lookup.
func NewHotQCD(dir string) *HotQCD {
	return &HotQCD{
		family: Family{ ID: HotQCDID, EpsMax: defaultEpsMax },
		dir:    dir,
		store:  table.NewStore(),
	}
}

// ID returns the family's configuration id.
func (eos *HotQCD) ID() int { return eos.family.ID }

// EpsMax returns the largest tabulated energy density in 1/fm^4.
func (eos *HotQCD) EpsMax() float64 { return eos.family.EpsMax }

// Store returns the family's table store for diagnostics. Only valid after
// a successful Initialize.
func (eos *HotQCD) Store() *table.Store { return eos.store }

// Initialize reads the binary table and transitions the engine to Ready.
// It is not a retry point: a missing or truncated table is a terminal
// failure, since the simulation has no thermodynamic closure without it,
// and later calls re-raise the same error. Calling Initialize on an engine
// that is already Ready is rejected rather than silently reloading.
func (eos *HotQCD) Initialize() error {
	switch atomic.LoadInt32(&eos.state) {
	case stateReady, stateLoading:
		return fmt.Errorf("%w: Initialize was called twice on the hotQCD "+
			"EOS", ErrInvalidTableState)
	case stateFailed:
		return eos.loadErr
	}
	atomic.StoreInt32(&eos.state, stateLoading)

	if err := eos.load(); err != nil {
		eos.loadErr = err
		atomic.StoreInt32(&eos.state, stateFailed)
		return err
	}
	atomic.StoreInt32(&eos.state, stateReady)
	return nil
}

func (eos *HotQCD) load() error {
	path := filepath.Join(eos.dir, "EOS", "hotQCD", hotQCDFile)
	log.WithField("path", path).Info("reading EOS hotQCD")

	raw, err := readTableFile(path)
	if err != nil {
		return err
	}

	if len(raw) < 2*hotQCDRecordSize || len(raw)%hotQCDRecordSize != 0 {
		return fmt.Errorf("The EOS table %s is truncated: it holds %d "+
			"bytes, which is not a whole number of %d-byte (e, p, s, T) "+
			"records, or fewer than two of them.",
			path, len(raw), hotQCDRecordSize)
	}
	n := len(raw) / hotQCDRecordSize

	vals := make([]float64, 4*n)
	err = binary.Read(bytes.NewReader(raw), binary.LittleEndian, vals)
	if err != nil {
		return fmt.Errorf("The EOS table %s cannot be decoded. The "+
			"underlying error is: %s", path, err.Error())
	}

	fields := []string{ pressureField, entropyField, temperatureField }
	if err := eos.store.Allocate(fields, n, 1); err != nil {
		return err
	}

	// Everything on disk is GeV-based; one division by hbar*c per value
	// converts to natural units for good.
	var eBound, eSpacing, eLast float64
	for i := 0; i < n; i++ {
		e := vals[4*i] / HbarC // 1/fm^4
		switch i {
		case 0:
			eBound = e
		case 1:
			eSpacing = e - eBound
		}
		if i == n-1 {
			eLast = e
		}

		// 1/fm^4, 1/fm^3, 1/fm
		if err := eos.store.SetSample(pressureField, 0, i,
			vals[4*i+1]/HbarC); err != nil {
			return err
		}
		if err := eos.store.SetSample(entropyField, 0, i,
			vals[4*i+2]/HbarC); err != nil {
			return err
		}
		if err := eos.store.SetSample(temperatureField, 0, i,
			vals[4*i+3]/HbarC); err != nil {
			return err
		}
	}

	if eSpacing <= 0 {
		return fmt.Errorf("The EOS table %s has a non-positive "+
			"energy-density spacing, %g. Its records must be sorted by "+
			"increasing energy density.", path, eSpacing)
	}
	if err := eos.store.SetAxis(eBound, eSpacing); err != nil {
		return err
	}
	if err := eos.store.Seal(); err != nil {
		return err
	}

	// Finalize: refine EpsMax now that the last tabulated sample is known.
	eos.family.EpsMax = eLast

	pRow, err := eos.store.FieldRow(pressureField, 0)
	if err != nil {
		return err
	}
	TRow, err := eos.store.FieldRow(temperatureField, 0)
	if err != nil {
		return err
	}
	sRow, err := eos.store.FieldRow(entropyField, 0)
	if err != nil {
		return err
	}

	eos.p = interpolate.NewLinear(eBound, eSpacing, pRow)
	eos.T = interpolate.NewLinear(eBound, eSpacing, TRow)

	// Entropy inversion needs a strictly increasing column. Some table
	// files ship a zeroed entropy column for format compatibility, in which
	// case EnergyFromEntropy reports ErrUnsupported instead of inverting
	// garbage.
	eos.sOK = increasing(sRow)
	if eos.sOK {
		eos.s = interpolate.NewLinear(eBound, eSpacing, sRow)
	}

	log.WithFields(log.Fields{
		"samples": n, "eBound": eBound, "eSpacing": eSpacing,
		"epsMax": eLast, "entropy": eos.sOK,
	}).Info("done reading EOS hotQCD")
	return nil
}

// readTableFile reads path, falling back to a zstd-compressed copy at
// path + ".zst" if the plain file does not exist.
func readTableFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		return raw, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("The EOS table %s cannot be read. The "+
			"system error is: \"%s\"", path, err.Error())
	}

	fp, zerr := os.Open(path + ".zst")
	if zerr != nil {
		return nil, fmt.Errorf("Can not find the EOS file: neither %s nor "+
			"%s.zst exists. Check that the configured table path points at "+
			"the directory containing EOS/.", path, path)
	}
	defer fp.Close()

	rd := zstd.NewReader(fp)
	defer rd.Close()

	raw, err = io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("The compressed EOS table %s.zst cannot be "+
			"decompressed. The underlying error is: %s", path, err.Error())
	}
	return raw, nil
}

func increasing(y []float64) bool {
	for i := 1; i < len(y); i++ {
		if y[i] <= y[i-1] {
			return false
		}
	}
	return true
}

// ready returns nil once the engine is Ready. Before Initialize it reports
// the contract violation; after a failed Initialize it re-raises the load
// error.
func (eos *HotQCD) ready() error {
	switch atomic.LoadInt32(&eos.state) {
	case stateReady:
		return nil
	case stateFailed:
		return eos.loadErr
	}
	return fmt.Errorf("%w: the hotQCD EOS was evaluated before Initialize",
		ErrInvalidTableState)
}

// Pressure returns the local pressure in 1/fm^4 given the local energy
// density in 1/fm^4.
func (eos *HotQCD) Pressure(e float64, ch Charges, tau float64) (float64, error) {
	if err := eos.ready(); err != nil {
		return 0, err
	}
	return eos.p.Eval(e), nil
}

// Temperature returns the local temperature in 1/fm given the local energy
// density in 1/fm^4.
func (eos *HotQCD) Temperature(e float64, ch Charges, tau float64) (float64, error) {
	if err := eos.ready(); err != nil {
		return 0, err
	}
	return eos.T.Eval(e), nil
}

// EnergyFromEntropy returns the energy density at which the tabulated
// entropy density equals s. If this table shipped a degenerate entropy
// column, the operation reports ErrUnsupported.
func (eos *HotQCD) EnergyFromEntropy(s float64, ch Charges, tau float64) (float64, error) {
	if err := eos.ready(); err != nil {
		return 0, err
	}
	if !eos.sOK {
		return 0, fmt.Errorf("%w: this hotQCD table's entropy column is "+
			"not monotonic, so it cannot be inverted", ErrUnsupported)
	}
	return eos.s.Invert(s), nil
}

// EnergyFromTemperature returns the energy density at which the tabulated
// temperature equals T.
func (eos *HotQCD) EnergyFromTemperature(T float64, ch Charges, tau float64) (float64, error) {
	if err := eos.ready(); err != nil {
		return 0, err
	}
	return eos.T.Invert(T), nil
}
