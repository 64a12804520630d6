package measure

import (
	"github.com/katalvlaran/isinglat/lattice"
)

// Average returns the arithmetic mean of a slice of ±1 spins.
// An empty slice averages to 0.
// Complexity: O(n).
func Average(spins []int32) float64 {
	if len(spins) == 0 {
		return 0
	}
	var sum int64
	for _, v := range spins {
		sum += int64(v)
	}
	return float64(sum) / float64(len(spins))
}

// Magnetization returns the Average of every sublattice, in sublattice order.
func Magnetization(l *lattice.Lattice) []float64 {
	n := l.Geometry().Sublattices()
	m := make([]float64, n)
	for s := 0; s < n; s++ {
		m[s] = Average(l.Sublattice(s))
	}
	return m
}

// Total returns the Average over the whole lattice.
func Total(l *lattice.Lattice) float64 {
	return Average(l.Spins())
}

// SiteEnergy is spin_i · (−Σ J[shell]·spin_j) over the neighbors j of i:
// the energy site i holds in its current orientation. Flipping the site
// changes the total energy by −2·SiteEnergy.
func SiteEnergy(t *lattice.Table, spins []int32, J []float64, i int) float64 {
	idx, shell := t.Neighbors(i)
	var h float64
	for n, j := range idx {
		h -= J[shell[n]] * float64(spins[j])
	}
	return float64(spins[i]) * h
}

// Energy returns the total bond energy of l, counting each bond once
// (half of the sum of SiteEnergy over all sites).
// Returns ErrShapeMismatch from the lattice package if t and l disagree.
// Complexity: O(N·d).
func Energy(t *lattice.Table, l *lattice.Lattice, J []float64) (float64, error) {
	if err := t.Matches(l); err != nil {
		return 0, err
	}
	spins := l.Spins()
	var e float64
	for i := range spins {
		e += SiteEnergy(t, spins, J, i)
	}
	return e / 2, nil
}
