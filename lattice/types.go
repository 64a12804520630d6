package lattice

// Spin values. Spins are stored as int32 so the parallel sweep can use
// sync/atomic on them.
const (
	Up   int32 = 1
	Down int32 = -1
)

// Axis indices into the [3]int vectors used for periods, basis points and
// displacements.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// Extents is the number of unit cells along each spatial axis.
// 2D geometries require Z == 1.
type Extents struct {
	X, Y, Z int
}

// Cells returns X·Y·Z.
func (e Extents) Cells() int {
	return e.X * e.Y * e.Z
}

// Shell is one neighbor shell of a geometry: a symmetric set of displacements
// on the unfolded grid, all weighted by the coupling named Coupling.
type Shell struct {
	Coupling      string
	Displacements [][3]int
}

// Geometry is a decorated unit cell.
//
// Sublattice s sits at Basis[s] on the unfolded integer grid; the grid repeats
// every Period[a] points along axis a. A displacement d of a shell links
// sublattice s to whichever basis point Basis[s]+d lands on (mod Period),
// shifted by the corresponding number of cells. Displacements that land on no
// basis point contribute nothing, which is how holes (kagome) and
// checkerboards (centered-rectangular) are expressed.
//
// A Geometry is immutable once built.
type Geometry struct {
	Name            string
	SublatticeShape []int
	Period          [3]int
	Basis           [][3]int
	Shells          []Shell
	// Spatial is 2 for planar geometries (Extents.Z must be 1) and 3 otherwise.
	Spatial int

	bonds [][]bond // bonds[s] lists the outgoing bonds of sublattice s
}

// bond links a sublattice to sublattice `to` in the cell shifted by `cell`.
type bond struct {
	to    int
	cell  [3]int
	shell int
}

// Sublattices returns the number of sublattices (product of SublatticeShape).
func (g *Geometry) Sublattices() int {
	return len(g.Basis)
}

// CouplingNames returns the coupling bound to each shell, in shell order.
func (g *Geometry) CouplingNames() []string {
	names := make([]string, len(g.Shells))
	for k, sh := range g.Shells {
		names[k] = sh.Coupling
	}
	return names
}

// Couplings resolves a named coupling map into the per-shell slice the
// kernels take. Missing names default to 0; unknown names are an error.
func (g *Geometry) Couplings(named map[string]float64) ([]float64, error) {
	J := make([]float64, len(g.Shells))
	known := make(map[string]int, len(g.Shells))
	for k, sh := range g.Shells {
		known[sh.Coupling] = k
	}
	for name, v := range named {
		k, ok := known[name]
		if !ok {
			return nil, wrapf("Couplings", ErrUnknownCoupling, "%q for %s", name, g.Name)
		}
		J[k] = v
	}
	return J, nil
}

// CheckExtents validates e against the geometry.
func (g *Geometry) CheckExtents(e Extents) error {
	if e.X < 1 || e.Y < 1 || e.Z < 1 {
		return wrapf("CheckExtents", ErrBadExtents, "%dx%dx%d", e.X, e.Y, e.Z)
	}
	if g.Spatial == 2 && e.Z != 1 {
		return wrapf("CheckExtents", ErrBadExtents, "%s is planar, Z=%d", g.Name, e.Z)
	}
	return nil
}
