package montecarlo

import (
	"context"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/isinglat/lattice"
)

// Sweep performs one update pass over every site of l and returns the sum of
// the pre-flip site energies. field must hold one uniform draw per site.
//
// Steps, per site i in its sublattice partition:
//  1. energy = spin_i · (−Σ J[shell]·spin_j) over the table neighbors j,
//     reading their current values (earlier flips of this sweep included).
//  2. energy ≥ 0 → flip. energy < 0 → flip only if val ≠ 0 and
//     field[i] < exp(2·val·energy).
//  3. Add energy to the running sum.
//
// Returns lattice.ErrShapeMismatch, ErrCouplingCount, ErrBadCoupling,
// ErrBadBeta, ErrNegativeBeta or the context error. A partition that has
// started always finishes.
//
// Complexity: O(N·d) time, O(S) extra memory for S partitions.
func Sweep(
	ctx context.Context,
	t *lattice.Table,
	l *lattice.Lattice,
	field []float64,
	J []float64,
	val float64,
	opts ...Option,
) (float64, error) {
	if err := checkRun(methodSweep, t, l, J, val); err != nil {
		return 0, err
	}
	if len(field) != l.Len() {
		return 0, wrapf(methodSweep, lattice.ErrShapeMismatch, "field has %d values, lattice %d sites", len(field), l.Len())
	}
	cfg := newConfig(opts)
	e, err := sweep(ctx, t, l, field, J, val, cfg.workers)
	if err != nil {
		return 0, wrap(methodSweep, err)
	}
	return e, nil
}

// sweep runs the partitions; inputs are already validated.
func sweep(
	ctx context.Context,
	t *lattice.Table,
	l *lattice.Lattice,
	field []float64,
	J []float64,
	val float64,
	workers int,
) (float64, error) {
	spins := l.Spins()
	parts := l.Geometry().Sublattices()
	per := l.SitesPerSublattice()
	partial := make([]float64, parts)

	if workers == 1 || parts == 1 {
		for s := 0; s < parts; s++ {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			partial[s] = sweepRange(t, spins, field, J, val, s*per, (s+1)*per)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for s := 0; s < parts; s++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				partial[s] = sweepRange(t, spins, field, J, val, s*per, (s+1)*per)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return 0, err
		}
	}

	var sum float64
	for _, p := range partial {
		sum += p
	}
	return sum, nil
}

// sweepRange updates sites [lo, hi). Other partitions may be writing spins
// concurrently, hence the atomic accesses.
func sweepRange(t *lattice.Table, spins []int32, field, J []float64, val float64, lo, hi int) float64 {
	var sum float64
	for i := lo; i < hi; i++ {
		idx, shell := t.Neighbors(i)
		var h float64
		for n, j := range idx {
			h -= J[shell[n]] * float64(atomic.LoadInt32(&spins[j]))
		}
		s := atomic.LoadInt32(&spins[i])
		energy := float64(s) * h
		if accept(energy, val, field[i]) {
			atomic.StoreInt32(&spins[i], -s)
		}
		sum += energy
	}
	return sum
}

// accept decides a single flip. energy is the cost of the current
// orientation; energy < 0 means the site is already favorable.
func accept(energy, val, u float64) bool {
	if energy >= 0 {
		return true
	}
	if val == 0 {
		return false
	}
	return u < math.Exp(2*val*energy)
}
