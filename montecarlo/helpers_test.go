package montecarlo_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isinglat/lattice"
)

// setup builds a lattice and its table for the named geometry.
func setup(t testing.TB, name string, ext lattice.Extents) (*lattice.Table, *lattice.Lattice) {
	t.Helper()
	g, err := lattice.NewGeometry(name)
	require.NoError(t, err)
	if g.Spatial == 2 {
		ext.Z = 1
	}
	l, err := lattice.New(g, ext)
	require.NoError(t, err)
	tb, err := lattice.NewTable(g, ext)
	require.NoError(t, err)
	return tb, l
}

// uniform returns n draws from a seeded stream.
func uniform(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	f := make([]float64, n)
	for i := range f {
		f[i] = r.Float64()
	}
	return f
}

// constant returns n copies of v.
func constant(n int, v float64) []float64 {
	f := make([]float64, n)
	for i := range f {
		f[i] = v
	}
	return f
}

// ferro returns one coupling of value v per shell of g.
func ferro(g *lattice.Geometry, v float64) []float64 {
	J := make([]float64, len(g.Shells))
	for k := range J {
		J[k] = v
	}
	return J
}
