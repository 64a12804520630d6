package lattice

// Table is the periodic neighbor list of a (Geometry, Extents) pair.
//
// Neighbors of site i occupy idx[start[i]:start[i+1]], with shell[k] naming
// the shell (and so the coupling) of idx[k]. The layout is compressed sparse
// rows: two flat slices, no per-site allocation.
//
// A bond that would map a site onto itself (possible when an extent is 1) is
// dropped. Plain modulo indexing would instead list the site as its own
// neighbor and shift its energy by −2·J·spin² = −2J for that shell, which
// changes flip decisions on such degenerate lattices; here a 1-wide axis
// contributes no bonds along it. When small extents make two displacements
// reach the same site, both entries are kept, so every bond of the infinite
// lattice stays represented and the list remains symmetric.
type Table struct {
	geom  *Geometry
	ext   Extents
	start []int32
	idx   []int32
	shell []uint8
}

// NewTable builds the neighbor table.
// Returns ErrBadExtents if ext does not suit g.
// Complexity: O(N·d) time and memory.
func NewTable(g *Geometry, ext Extents) (*Table, error) {
	if err := g.CheckExtents(ext); err != nil {
		return nil, err
	}
	n := g.Sublattices() * ext.Cells()
	t := &Table{
		geom:  g,
		ext:   ext,
		start: make([]int32, n+1),
	}
	dims := [3]int{ext.X, ext.Y, ext.Z}
	for i := 0; i < n; i++ {
		s, x, y, z := coordinate(ext, i)
		at := [3]int{x, y, z}
		t.start[i] = int32(len(t.idx))
		for _, b := range g.bonds[s] {
			var c [3]int
			for a := 0; a < 3; a++ {
				c[a] = mod(at[a]+b.cell[a], dims[a])
			}
			j := index(ext, b.to, c[0], c[1], c[2])
			if j == i {
				continue
			}
			t.idx = append(t.idx, int32(j))
			t.shell = append(t.shell, uint8(b.shell))
		}
	}
	t.start[n] = int32(len(t.idx))
	return t, nil
}

// Geometry returns the table's geometry.
func (t *Table) Geometry() *Geometry { return t.geom }

// Extents returns the table's extents.
func (t *Table) Extents() Extents { return t.ext }

// Len returns the number of sites.
func (t *Table) Len() int { return len(t.start) - 1 }

// Neighbors returns the neighbor indices of site i and their shells.
// The slices alias the table and must not be modified.
func (t *Table) Neighbors(i int) (idx []int32, shell []uint8) {
	a, b := t.start[i], t.start[i+1]
	return t.idx[a:b], t.shell[a:b]
}

// Degree returns the number of neighbors of site i across all shells.
func (t *Table) Degree(i int) int {
	return int(t.start[i+1] - t.start[i])
}

// Neighbor returns the k-th neighbor of site i within shell, or -1 if there
// are not that many.
func (t *Table) Neighbor(i, shell, k int) int {
	idx, sh := t.Neighbors(i)
	for n, j := range idx {
		if int(sh[n]) != shell {
			continue
		}
		if k == 0 {
			return int(j)
		}
		k--
	}
	return -1
}

// Matches reports whether l was laid out for the same geometry and extents.
func (t *Table) Matches(l *Lattice) error {
	if l.geom.Name != t.geom.Name || l.ext != t.ext {
		return wrapf("Table.Matches", ErrShapeMismatch, "table %s %v, lattice %s %v",
			t.geom.Name, t.ext, l.geom.Name, l.ext)
	}
	return nil
}
