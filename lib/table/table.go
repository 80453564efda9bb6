/*package table owns the raw tabulated arrays of an equation of state: one
contiguous sample buffer per thermodynamic field, all sharing a single
discretized energy-density axis. A Store is populated exactly once by a
loader and then sealed; after sealing it is read-only and safe to use from
any number of threads at once.
*/
package table

import (
	"errors"
	"fmt"
)

// ErrInvalidTableState reports an operation performed outside its required
// lifecycle state: a write after the store was sealed, a read of an
// unregistered field, or an evaluation before loading finished. These are
// contract violations by the caller, not runtime conditions, so callers
// should surface them immediately instead of recovering.
var ErrInvalidTableState = errors.New("invalid table state")

// Store holds the sample buffers of one EOS table family. Each field is a
// single flat []float64 with logical dimensions (nbLength, eLength) and is
// indexed through a computed offset; nbLength is 1 for families without
// active charge axes, but the layout generalizes to charge-dependent tables
// without changing any reader code.
type Store struct {
	eBound, eSpacing  float64
	eLength, nbLength int
	index             map[string]int
	names             []string
	data              [][]float64
	sealed            bool
}

// NewStore creates an empty, unsealed Store.
func NewStore() *Store {
	return &Store{ index: map[string]int{ } }
}

// Allocate registers the named fields and allocates an eLength x nbLength
// sample buffer for each of them. It may only be called once, before the
// store is sealed.
func (st *Store) Allocate(fields []string, eLength, nbLength int) error {
	if st.sealed {
		return fmt.Errorf("%w: Allocate was called on a sealed store",
			ErrInvalidTableState)
	} else if len(st.names) > 0 {
		return fmt.Errorf("%w: Allocate was called twice on the same store",
			ErrInvalidTableState)
	} else if eLength <= 0 || nbLength <= 0 {
		return fmt.Errorf("%w: a table cannot be allocated with %d x %d "+
			"samples", ErrInvalidTableState, eLength, nbLength)
	} else if len(fields) == 0 {
		return fmt.Errorf("%w: a table cannot be allocated with zero fields",
			ErrInvalidTableState)
	}

	for _, name := range fields {
		if _, ok := st.index[name]; ok {
			return fmt.Errorf("%w: the field '%s' is registered twice",
				ErrInvalidTableState, name)
		}
		st.index[name] = len(st.names)
		st.names = append(st.names, name)
		st.data = append(st.data, make([]float64, eLength*nbLength))
	}

	st.eLength, st.nbLength = eLength, nbLength
	return nil
}

// SetAxis sets the lower bound and uniform spacing of the energy-density
// axis. Like SetSample, it is only legal before the store is sealed.
func (st *Store) SetAxis(eBound, eSpacing float64) error {
	if st.sealed {
		return fmt.Errorf("%w: SetAxis was called on a sealed store",
			ErrInvalidTableState)
	}
	st.eBound, st.eSpacing = eBound, eSpacing
	return nil
}

// SetSample writes sample ie of the named field at charge index inb.
func (st *Store) SetSample(field string, inb, ie int, v float64) error {
	if st.sealed {
		return fmt.Errorf("%w: SetSample was called on a sealed store",
			ErrInvalidTableState)
	}
	j, ok := st.index[field]
	if !ok {
		return fmt.Errorf("%w: the field '%s' is not registered",
			ErrInvalidTableState, field)
	}
	if inb < 0 || inb >= st.nbLength || ie < 0 || ie >= st.eLength {
		return fmt.Errorf("%w: sample (%d, %d) is outside the %d x %d table",
			ErrInvalidTableState, inb, ie, st.nbLength, st.eLength)
	}
	st.data[j][st.flat(inb, ie)] = v
	return nil
}

// Seal freezes the store. Sealing twice is rejected: a loader that wants to
// reuse a store must build a new one instead.
func (st *Store) Seal() error {
	if st.sealed {
		return fmt.Errorf("%w: the store is already sealed",
			ErrInvalidTableState)
	}
	st.sealed = true
	return nil
}

// Sealed returns true once the store has been sealed.
func (st *Store) Sealed() bool { return st.sealed }

// Bound returns the energy density of the first sample.
func (st *Store) Bound() float64 { return st.eBound }

// Spacing returns the uniform energy-density spacing between samples.
func (st *Store) Spacing() float64 { return st.eSpacing }

// Len returns the number of samples along the energy-density axis.
func (st *Store) Len() int { return st.eLength }

// Fields returns the registered field names in registration order.
func (st *Store) Fields() []string { return st.names }

// HasField returns true if the named field is registered.
func (st *Store) HasField(field string) bool {
	_, ok := st.index[field]
	return ok
}

// Sample returns sample ie of the named field at charge index inb.
func (st *Store) Sample(field string, inb, ie int) (float64, error) {
	j, ok := st.index[field]
	if !ok {
		return 0, fmt.Errorf("%w: the field '%s' is not registered",
			ErrInvalidTableState, field)
	}
	if inb < 0 || inb >= st.nbLength || ie < 0 || ie >= st.eLength {
		return 0, fmt.Errorf("%w: sample (%d, %d) is outside the %d x %d "+
			"table", ErrInvalidTableState, inb, ie, st.nbLength, st.eLength)
	}
	return st.data[j][st.flat(inb, ie)], nil
}

// FieldRow returns the contiguous samples of the named field at charge
// index inb. The slice aliases the store's buffer, which is why FieldRow is
// only legal after the store has been sealed.
func (st *Store) FieldRow(field string, inb int) ([]float64, error) {
	if !st.sealed {
		return nil, fmt.Errorf("%w: FieldRow was called before the store "+
			"was sealed", ErrInvalidTableState)
	}
	j, ok := st.index[field]
	if !ok {
		return nil, fmt.Errorf("%w: the field '%s' is not registered",
			ErrInvalidTableState, field)
	}
	if inb < 0 || inb >= st.nbLength {
		return nil, fmt.Errorf("%w: charge index %d is outside the table's "+
			"%d rows", ErrInvalidTableState, inb, st.nbLength)
	}
	return st.data[j][st.flat(inb, 0):st.flat(inb, st.eLength)], nil
}

func (st *Store) flat(inb, ie int) int { return inb*st.eLength + ie }
