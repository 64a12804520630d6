package lattice

import (
	"errors"
	"fmt"
)

// Sentinel errors for lattice construction and validation.
var (
	// ErrUnknownGeometry indicates a geometry name that is not registered.
	ErrUnknownGeometry = errors.New("lattice: unknown geometry")
	// ErrBadExtents indicates a non-positive extent or Z≠1 for a 2D geometry.
	ErrBadExtents = errors.New("lattice: invalid extents")
	// ErrBadSpin indicates a spin value other than +1 or -1.
	ErrBadSpin = errors.New("lattice: spin must be +1 or -1")
	// ErrShapeMismatch indicates that lattice, table or field shapes disagree.
	ErrShapeMismatch = errors.New("lattice: shape mismatch")
	// ErrUnknownCoupling indicates a coupling name the geometry does not define.
	ErrUnknownCoupling = errors.New("lattice: unknown coupling")
)

// wrapf attaches method context to a sentinel, keeping it visible to errors.Is.
func wrapf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
