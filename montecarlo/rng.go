package montecarlo

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0, so the zero Option set
// still gives a reproducible run.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 uses defaultRNGSeed.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id into a child seed.
//
// Scan points need streams that are independent of each other and of the
// parent, and stable for a given (parent, point) pair. Neighboring stream ids
// must not yield neighboring seeds, since math/rand sources seeded with
// close values start out correlated; the SplitMix64 finalizer spreads every
// input bit over the whole output.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG creates the stream for point `stream` of a scan.
// base.Int63() is consumed once, so two scans sharing one base get different
// children. Call during setup, never in a sweep.
//
// Complexity: O(1) plus the rand.Source seeding cost.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultRNGSeed
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// fillUniform overwrites field with fresh uniform draws in [0,1), one per
// site in flat index order. The order is fixed so a seed pins the whole run.
//
// Complexity: O(len(field)).
func fillUniform(field []float64, r *rand.Rand) {
	for i := range field {
		field[i] = r.Float64()
	}
}
