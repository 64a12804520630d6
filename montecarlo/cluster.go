package montecarlo

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/isinglat/lattice"
)

// Cluster performs one Wolff move over the first neighbor shell of l and
// returns the number of flipped sites. J[0] is the shell's coupling (Ja on
// kagome); the other couplings are validated but not used.
//
// Behavior:
//  1. Pick a uniformly random seed site.
//  2. P_add = 1 − exp(−2·val·|J[0]|).
//  3. Mark the seed visited and push it.
//  4. Pop a site, flip it, and push every unvisited shell-0 neighbor whose
//     spin equals the seed's original spin (J[0] > 0) or its negation
//     (J[0] < 0), each with probability P_add.
//
// A site is pushed at most once and every pushed site is flipped exactly
// once. With val == 0 or J[0] == 0 only the seed flips. No energy or
// magnetization bookkeeping happens here.
//
// Complexity: O(C·d) for a cluster of C sites, plus O(N) for the first move's
// scratch allocation.
func Cluster(t *lattice.Table, l *lattice.Lattice, J []float64, val float64, opts ...Option) (int, error) {
	if err := checkRun(methodCluster, t, l, J, val); err != nil {
		return 0, err
	}
	cfg := newConfig(opts)
	c := newClusterer(l.Len())
	return c.move(t, l.Spins(), J[0], val, cfg.rng, cfg.onPush), nil
}

// clusterer keeps the scratch space of repeated moves on one lattice.
type clusterer struct {
	unvisited []bool
	stack     []int32
	touched   []int32
}

func newClusterer(n int) *clusterer {
	c := &clusterer{unvisited: make([]bool, n)}
	for i := range c.unvisited {
		c.unvisited[i] = true
	}
	return c
}

func (c *clusterer) move(t *lattice.Table, spins []int32, j0, val float64, r *rand.Rand, onPush func(int)) int {
	seed := int32(r.Intn(len(spins)))
	pAdd := 1 - math.Exp(-2*val*math.Abs(j0))
	want := spins[seed]
	if j0 < 0 {
		want = -want
	}

	c.stack = c.stack[:0]
	c.touched = c.touched[:0]
	push := func(i int32) {
		c.unvisited[i] = false
		c.touched = append(c.touched, i)
		c.stack = append(c.stack, i)
		if onPush != nil {
			onPush(int(i))
		}
	}
	push(seed)

	flipped := 0
	for len(c.stack) > 0 {
		u := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		spins[u] = -spins[u]
		flipped++

		idx, shell := t.Neighbors(int(u))
		for n, j := range idx {
			if shell[n] != 0 || spins[j] != want || !c.unvisited[j] {
				continue
			}
			if r.Float64() < pAdd {
				push(j)
			}
		}
	}

	for _, i := range c.touched {
		c.unvisited[i] = true
	}
	return flipped
}
