package measure_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isinglat/lattice"
	"github.com/katalvlaran/isinglat/measure"
)

// bruteEnergy recomputes the bond energy straight from the geometry
// definition, walking the unfolded grid instead of the neighbor table.
func bruteEnergy(l *lattice.Lattice, J []float64) float64 {
	g := l.Geometry()
	ext := l.Extents()
	dims := [3]int{ext.X, ext.Y, ext.Z}
	basis := make(map[[3]int]int, len(g.Basis))
	for s, b := range g.Basis {
		basis[b] = s
	}
	var e float64
	for i := 0; i < l.Len(); i++ {
		s, x, y, z := l.Coordinate(i)
		cell := [3]int{x, y, z}
		for k, sh := range g.Shells {
			for _, d := range sh.Displacements {
				var tc, tp [3]int
				for a := 0; a < 3; a++ {
					span := dims[a] * g.Period[a]
					p := ((cell[a]*g.Period[a]+g.Basis[s][a]+d[a])%span + span) % span
					tc[a], tp[a] = p/g.Period[a], p%g.Period[a]
				}
				ts, ok := basis[tp]
				if !ok {
					continue
				}
				j := l.Index(ts, tc[0], tc[1], tc[2])
				if j == i {
					continue
				}
				e -= J[k] * float64(l.Spin(i)) * float64(l.Spin(j))
			}
		}
	}
	return e / 2
}

// TestAverage covers the all-up, all-down, balanced and empty cases.
func TestAverage(t *testing.T) {
	cases := []struct {
		name  string
		spins []int32
		want  float64
	}{
		{"AllUp", []int32{1, 1, 1, 1}, 1},
		{"AllDown", []int32{-1, -1, -1}, -1},
		{"Balanced", []int32{1, -1, -1, 1}, 0},
		{"Empty", nil, 0},
		{"Quarter", []int32{1, 1, 1, -1}, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, measure.Average(tc.spins))
		})
	}
}

// TestMagnetization_PerSublattice flips one whole sublattice of a kagome lattice.
func TestMagnetization_PerSublattice(t *testing.T) {
	l, err := lattice.New(lattice.Kagome(), lattice.Extents{X: 3, Y: 3, Z: 1})
	require.NoError(t, err)
	for i := range l.Sublattice(2) {
		l.Sublattice(2)[i] = lattice.Down
	}
	require.Equal(t, []float64{1, 1, -1}, measure.Magnetization(l))
	require.InDelta(t, 1.0/3.0, measure.Total(l), 1e-12)
}

// TestEnergy_FerromagneticGroundState checks the closed form −z·J·N/2.
func TestEnergy_FerromagneticGroundState(t *testing.T) {
	g := lattice.Kagome()
	ext := lattice.Extents{X: 4, Y: 4, Z: 1}
	l, err := lattice.New(g, ext)
	require.NoError(t, err)
	tb, err := lattice.NewTable(g, ext)
	require.NoError(t, err)

	e, err := measure.Energy(tb, l, []float64{1, 0})
	require.NoError(t, err)
	require.InDelta(t, -2*float64(l.Len()), e, 1e-9)
}

// TestEnergy_MatchesBruteForce compares Energy with an independent walk of
// the unfolded grid on random states of every geometry.
func TestEnergy_MatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for _, name := range lattice.Geometries() {
		g, err := lattice.NewGeometry(name)
		require.NoError(t, err)
		for _, ext := range []lattice.Extents{{X: 1, Y: 1, Z: 1}, {X: 3, Y: 2, Z: 1}} {
			if g.Spatial == 3 {
				ext.Z = 2
			}
			l, err := lattice.New(g, ext)
			require.NoError(t, err)
			tb, err := lattice.NewTable(g, ext)
			require.NoError(t, err)
			l.Randomize(r)

			J := make([]float64, len(g.Shells))
			for k := range J {
				J[k] = r.Float64()*2 - 1
			}
			e, err := measure.Energy(tb, l, J)
			require.NoError(t, err)
			require.InDelta(t, bruteEnergy(l, J), e, 1e-9, "%s %v", name, ext)
		}
	}
}

// TestSiteEnergy_FlipDelta checks that flipping a site changes the total
// energy by exactly −2·SiteEnergy.
func TestSiteEnergy_FlipDelta(t *testing.T) {
	g := lattice.P6mm()
	ext := lattice.Extents{X: 3, Y: 3, Z: 1}
	l, err := lattice.New(g, ext)
	require.NoError(t, err)
	tb, err := lattice.NewTable(g, ext)
	require.NoError(t, err)
	l.Randomize(rand.New(rand.NewSource(3)))
	J := []float64{0.7, -1.3}

	for _, i := range []int{0, 17, l.Len() - 1} {
		before, err := measure.Energy(tb, l, J)
		require.NoError(t, err)
		se := measure.SiteEnergy(tb, l.Spins(), J, i)
		l.Flip(i)
		after, err := measure.Energy(tb, l, J)
		require.NoError(t, err)
		require.InDelta(t, -2*se, after-before, 1e-9)
	}
}

// TestEnergy_ShapeMismatch rejects a table built for other extents.
func TestEnergy_ShapeMismatch(t *testing.T) {
	l, err := lattice.New(lattice.Kagome(), lattice.Extents{X: 2, Y: 2, Z: 1})
	require.NoError(t, err)
	tb, err := lattice.NewTable(lattice.Kagome(), lattice.Extents{X: 3, Y: 3, Z: 1})
	require.NoError(t, err)
	_, err = measure.Energy(tb, l, []float64{1, 0})
	require.ErrorIs(t, err, lattice.ErrShapeMismatch)
}
