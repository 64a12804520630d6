package montecarlo

import (
	"errors"
	"fmt"
)

// Sentinel errors; check them with errors.Is.
var (
	// ErrNegativeBeta indicates a negative inverse temperature.
	ErrNegativeBeta = errors.New("montecarlo: inverse temperature must be >= 0")
	// ErrBadBeta indicates a NaN or infinite inverse temperature.
	ErrBadBeta = errors.New("montecarlo: inverse temperature must be finite")
	// ErrBadCoupling indicates a NaN or infinite coupling constant.
	ErrBadCoupling = errors.New("montecarlo: coupling must be finite")
	// ErrCouplingCount indicates the coupling slice does not match the shells.
	ErrCouplingCount = errors.New("montecarlo: wrong number of couplings")
	// ErrBadSteps indicates a negative phase length or a non-positive move count.
	ErrBadSteps = errors.New("montecarlo: invalid step count")
	// ErrEmptyScan indicates Scan was called without values.
	ErrEmptyScan = errors.New("montecarlo: no scan values")
)

// Method names used as error context.
const (
	methodSweep   = "Sweep"
	methodCluster = "Cluster"
	methodIterate = "Iterate"
	methodLoop    = "Loop"
	methodScan    = "Scan"
)

func wrap(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}

func wrapf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
