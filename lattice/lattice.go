package lattice

import (
	"math/rand"
)

// Lattice stores one spin per site of a Geometry repeated over Extents.
//
// Site i of sublattice s at cell (x, y, z) lives at
//
//	i = ((s·Z + z)·Y + y)·X + x
//
// so every sublattice is a contiguous block; Sublattice(s) returns it without
// copying. The sublattice-offset axis is the partition axis of the parallel
// sweep.
type Lattice struct {
	geom  *Geometry
	ext   Extents
	spins []int32
}

// New allocates a lattice with every spin Up.
// Returns ErrBadExtents if ext does not suit g.
// Complexity: O(N).
func New(g *Geometry, ext Extents) (*Lattice, error) {
	if err := g.CheckExtents(ext); err != nil {
		return nil, err
	}
	l := &Lattice{
		geom:  g,
		ext:   ext,
		spins: make([]int32, g.Sublattices()*ext.Cells()),
	}
	for i := range l.spins {
		l.spins[i] = Up
	}
	return l, nil
}

// FromSpins builds a lattice around a copy of spins.
// Returns ErrShapeMismatch on a wrong length and ErrBadSpin on a value other than ±1.
func FromSpins(g *Geometry, ext Extents, spins []int32) (*Lattice, error) {
	l, err := New(g, ext)
	if err != nil {
		return nil, err
	}
	if len(spins) != len(l.spins) {
		return nil, wrapf("FromSpins", ErrShapeMismatch, "got %d spins, want %d", len(spins), len(l.spins))
	}
	copy(l.spins, spins)
	if err = l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Geometry returns the lattice geometry.
func (l *Lattice) Geometry() *Geometry { return l.geom }

// Extents returns the lattice extents.
func (l *Lattice) Extents() Extents { return l.ext }

// Len returns the number of sites.
func (l *Lattice) Len() int { return len(l.spins) }

// SitesPerSublattice returns X·Y·Z.
func (l *Lattice) SitesPerSublattice() int { return l.ext.Cells() }

// Spins exposes the backing slice. Kernels mutate it in place; callers must
// keep every value ±1.
func (l *Lattice) Spins() []int32 { return l.spins }

// Spin returns the spin at site i.
func (l *Lattice) Spin(i int) int32 { return l.spins[i] }

// Set assigns v to site i.
func (l *Lattice) Set(i int, v int32) error {
	if v != Up && v != Down {
		return wrapf("Set", ErrBadSpin, "site %d value %d", i, v)
	}
	l.spins[i] = v
	return nil
}

// Flip negates site i.
func (l *Lattice) Flip(i int) { l.spins[i] = -l.spins[i] }

// Fill sets every spin to v.
func (l *Lattice) Fill(v int32) error {
	if v != Up && v != Down {
		return wrapf("Fill", ErrBadSpin, "value %d", v)
	}
	for i := range l.spins {
		l.spins[i] = v
	}
	return nil
}

// Randomize draws every spin independently with P(Up) = 1/2.
// Complexity: O(N).
func (l *Lattice) Randomize(r *rand.Rand) {
	for i := range l.spins {
		if r.Intn(2) == 0 {
			l.spins[i] = Down
		} else {
			l.spins[i] = Up
		}
	}
}

// Sublattice returns the contiguous block of sublattice s.
func (l *Lattice) Sublattice(s int) []int32 {
	n := l.ext.Cells()
	return l.spins[s*n : (s+1)*n]
}

// Index maps (s, x, y, z) to a flat site index.
func (l *Lattice) Index(s, x, y, z int) int {
	return index(l.ext, s, x, y, z)
}

// Coordinate converts a flat site index back to (s, x, y, z).
func (l *Lattice) Coordinate(i int) (s, x, y, z int) {
	return coordinate(l.ext, i)
}

// Clone returns a deep copy sharing the (immutable) geometry.
func (l *Lattice) Clone() *Lattice {
	spins := make([]int32, len(l.spins))
	copy(spins, l.spins)
	return &Lattice{geom: l.geom, ext: l.ext, spins: spins}
}

// Validate reports ErrBadSpin for the first site whose value is not ±1.
func (l *Lattice) Validate() error {
	for i, v := range l.spins {
		if v != Up && v != Down {
			return wrapf("Validate", ErrBadSpin, "site %d value %d", i, v)
		}
	}
	return nil
}

func index(e Extents, s, x, y, z int) int {
	return ((s*e.Z+z)*e.Y+y)*e.X + x
}

func coordinate(e Extents, i int) (s, x, y, z int) {
	x = i % e.X
	i /= e.X
	y = i % e.Y
	i /= e.Y
	z = i % e.Z
	s = i / e.Z
	return s, x, y, z
}
