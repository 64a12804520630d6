// Package montecarlo runs Ising-model Monte Carlo on the lattices of package
// lattice.
//
// What:
//
//   - Sweep: one pass over every site. Each site computes
//     energy = spin·(−Σ J[shell]·neighbor) from the current neighbor values and
//     flips when energy ≥ 0; when energy < 0 it flips only if val ≠ 0 and the
//     site's random field value is below exp(2·val·energy). val == 0 is the
//     greedy, zero-temperature limit. The pre-flip energies are summed and
//     returned.
//   - Cluster: one Wolff move over the first neighbor shell, grown with an
//     explicit stack from a random seed site.
//   - Iterate: nequilibrium discarded sweeps, then nworks recorded sweeps
//     (half the sweep energy plus per-sublattice magnetization).
//   - Loop: the same phases built from Wolff moves.
//   - Scan: Iterate (or Loop) over a list of val values.
//
// Concurrency:
//
//	The outer sublattice axis is split into partitions that run concurrently
//	on an errgroup, up to WithWorkers at a time. There is no barrier between
//	partitions inside a sweep: a partition may read spins another partition
//	has already flipped in the same sweep. Spins are read and written with
//	sync/atomic, so those reads are stale at worst, never torn. Each site is
//	written by exactly one partition. WithWorkers(1) makes a sweep strictly
//	sequential in site order and therefore reproducible.
//
//	Random fields are drawn by the drivers, from one stream, before each sweep,
//	so they never depend on scheduling.
//
// Options:
//
//   - WithWorkers(n)      — concurrent partitions (Sweep) or scan points (Scan).
//   - WithSeed / WithRand — RNG policy; seed 0 selects a fixed default seed.
//   - WithLogger          — *zap.Logger for phase and sweep logging.
//   - WithOnPush          — observe every site pushed by a cluster move.
//   - WithClusterMoves(n) — make Scan use Loop with n moves per step.
//
// Errors:
//
//   - ErrNegativeBeta, ErrBadBeta: val < 0, or NaN/Inf.
//   - ErrBadCoupling, ErrCouplingCount: NaN/Inf coupling or wrong count.
//   - ErrBadSteps: negative phase lengths, or cluster moves < 1.
//   - ErrEmptyScan: Scan without values.
//   - lattice.ErrShapeMismatch: table, lattice and field disagree.
package montecarlo
