package lattice_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/isinglat/lattice"
)

// shellCounts returns, for site i, how many neighbors fall in each shell.
func shellCounts(tb *lattice.Table, i, shells int) []int {
	counts := make([]int, shells)
	_, sh := tb.Neighbors(i)
	for _, k := range sh {
		counts[k]++
	}
	return counts
}

// TestTable_ShellSizes pins the coordination number of every shell.
func TestTable_ShellSizes(t *testing.T) {
	cases := []struct {
		g    *lattice.Geometry
		ext  lattice.Extents
		want []int
	}{
		{lattice.Cubic(), lattice.Extents{X: 2, Y: 2, Z: 2}, []int{6, 12, 8}},
		{lattice.Kagome(), lattice.Extents{X: 4, Y: 4, Z: 1}, []int{4, 4}},
		{lattice.CenteredRectangular(), lattice.Extents{X: 3, Y: 3, Z: 1}, []int{4, 2, 2}},
		{lattice.P6mm(), lattice.Extents{X: 3, Y: 3, Z: 1}, []int{6, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.g.Name, func(t *testing.T) {
			tb, err := lattice.NewTable(tc.g, tc.ext)
			require.NoError(t, err)
			require.Equal(t, tc.g.Sublattices()*tc.ext.Cells(), tb.Len())
			for i := 0; i < tb.Len(); i++ {
				require.Equal(t, tc.want, shellCounts(tb, i, len(tc.want)), "site %d", i)
			}
		})
	}
}

// TestTable_Symmetric checks that j is a shell-k neighbor of i exactly as
// often as i is a shell-k neighbor of j, on every geometry, including tiny
// extents where periodic images coincide.
func TestTable_Symmetric(t *testing.T) {
	for _, name := range lattice.Geometries() {
		g, err := lattice.NewGeometry(name)
		require.NoError(t, err)
		exts := []lattice.Extents{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 3, Z: 1}}
		if g.Spatial == 3 {
			exts = append(exts, lattice.Extents{X: 2, Y: 1, Z: 3})
		}
		for _, ext := range exts {
			tb, err := lattice.NewTable(g, ext)
			require.NoError(t, err)
			type key struct{ i, j, k int }
			count := map[key]int{}
			for i := 0; i < tb.Len(); i++ {
				idx, sh := tb.Neighbors(i)
				for n, j := range idx {
					require.NotEqual(t, i, int(j), "%s %v: self bond at %d", name, ext, i)
					count[key{i, int(j), int(sh[n])}]++
				}
			}
			for k, c := range count {
				require.Equal(t, c, count[key{k.j, k.i, k.k}], "%s %v: %v", name, ext, k)
			}
		}
	}
}

// TestTable_KagomeNearest pins the four nearest neighbors of an A site.
//
// In half-Bravais units A(1,1) touches B(1,1), B(0,1), C(1,1) and C(1,0).
func TestTable_KagomeNearest(t *testing.T) {
	ext := lattice.Extents{X: 4, Y: 4, Z: 1}
	l, err := lattice.New(lattice.Kagome(), ext)
	require.NoError(t, err)
	tb, err := lattice.NewTable(lattice.Kagome(), ext)
	require.NoError(t, err)

	a := l.Index(0, 1, 1, 0)
	var got []int
	for k := 0; ; k++ {
		j := tb.Neighbor(a, 0, k)
		if j < 0 {
			break
		}
		got = append(got, j)
	}
	want := []int{l.Index(1, 1, 1, 0), l.Index(1, 0, 1, 0), l.Index(2, 1, 1, 0), l.Index(2, 1, 0, 0)}
	sort.Ints(got)
	sort.Ints(want)
	require.Equal(t, want, got)
	require.Equal(t, -1, tb.Neighbor(a, 0, 4))
}

// TestTable_SingleCellDropsSelfBonds checks the 1×1 centered-rectangular cell:
// the Jc bonds along b wrap onto the site itself and are dropped.
func TestTable_SingleCellDropsSelfBonds(t *testing.T) {
	g := lattice.CenteredRectangular()
	tb, err := lattice.NewTable(g, lattice.Extents{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	for i := 0; i < tb.Len(); i++ {
		require.Equal(t, []int{4, 2, 0}, shellCounts(tb, i, 3))
		require.Equal(t, 6, tb.Degree(i))
	}
}

// TestTable_Matches rejects a lattice of another shape.
func TestTable_Matches(t *testing.T) {
	tb, err := lattice.NewTable(lattice.Kagome(), lattice.Extents{X: 2, Y: 2, Z: 1})
	require.NoError(t, err)
	l, err := lattice.New(lattice.Kagome(), lattice.Extents{X: 3, Y: 2, Z: 1})
	require.NoError(t, err)
	require.ErrorIs(t, tb.Matches(l), lattice.ErrShapeMismatch)

	_, err = lattice.NewTable(lattice.Kagome(), lattice.Extents{X: 2, Y: 2, Z: 3})
	require.ErrorIs(t, err, lattice.ErrBadExtents)
}
