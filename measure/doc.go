// Package measure computes static observables of a spin configuration:
// per-sublattice magnetization, the half-counted bond energy, and the
// connected same-sign domains.
//
// None of these functions mutate the lattice. They are the bookkeeping half of
// the Monte Carlo drivers and the reference the kernels are tested against.
package measure
