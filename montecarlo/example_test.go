package montecarlo_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/isinglat/lattice"
	"github.com/katalvlaran/isinglat/montecarlo"
)

// ExampleIterate runs a zero-temperature kagome ferromagnet from its ground
// state. Nothing flips, so every work step records the ground-state energy
// −2·N·Ja (N = 12 sites) and full magnetization on all three sublattices.
func ExampleIterate() {
	g := lattice.Kagome()
	ext := lattice.Extents{X: 2, Y: 2, Z: 1}
	l, _ := lattice.New(g, ext)
	tb, _ := lattice.NewTable(g, ext)
	J, _ := g.Couplings(map[string]float64{"Ja": 1})

	res, _ := montecarlo.Iterate(context.Background(), tb, l, J, 0, 3, 2)
	for k := range res.Energy {
		fmt.Printf("step %d: E=%g M=%v\n", k, res.Energy[k], res.Magnetization[k])
	}

	// Output:
	// step 0: E=-24 M=[1 1 1]
	// step 1: E=-24 M=[1 1 1]
}

// ExampleCluster flips a fully aligned lattice in a single Wolff move: at
// large val every aligned nearest neighbor joins the cluster.
func ExampleCluster() {
	g := lattice.Kagome()
	ext := lattice.Extents{X: 3, Y: 3, Z: 1}
	l, _ := lattice.New(g, ext)
	tb, _ := lattice.NewTable(g, ext)

	n, _ := montecarlo.Cluster(tb, l, []float64{1, 0}, 50, montecarlo.WithSeed(42))
	fmt.Println("flipped:", n, "of", l.Len())

	// Output:
	// flipped: 27 of 27
}
