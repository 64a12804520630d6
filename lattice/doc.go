// Package lattice describes decorated periodic lattices for Ising-model
// Monte Carlo and stores their spins.
//
// What:
//
//   - Geometry is a named unit cell: a basis of sublattice sites laid out on an
//     integer "unfolded" grid with a per-cell Period, plus ordered neighbor
//     shells, each bound to one coupling constant (Ja, Jb, J0, ...).
//   - Extents gives the number of unit cells along X, Y and Z.
//   - Lattice holds one ±1 spin per site, sublattice-offset axis outermost.
//   - Table precomputes every site's periodic neighbors, grouped by shell.
//
// Geometries:
//
//   - cubic                — 2×2×2 doubled simple-cubic cell; Ja, Jb, Jc.
//   - kagome               — 3 sublattices; Ja (4 NN), Jb (4 NNN).
//   - centered-rectangular — 4 sublattices; Ja (diagonal), Jb (along a), Jc (along b).
//   - p6mm                 — 3×4 sublattices: three stacked triangular layers
//     with a 2×2 in-plane cell; J1 in-plane, J0 between layers.
//
// Periodic boundaries:
//
//	Every neighbor index is wrapped modulo the extent of its axis once, when the
//	Table is built. Kernels never repeat the modulo arithmetic.
//
// Complexity:
//
//   - NewTable: O(N·d) time and memory (N sites, d neighbors per site).
//   - Lattice.Randomize / Fill / Validate: O(N).
//
// Errors:
//
//   - ErrUnknownGeometry: name not registered.
//   - ErrBadExtents: non-positive extent, or Z≠1 on a 2D geometry.
//   - ErrBadSpin: a value other than +1 or −1.
//   - ErrShapeMismatch: lattice, table or field disagree on geometry/extents/length.
//   - ErrUnknownCoupling: a coupling name the geometry does not define.
package lattice
