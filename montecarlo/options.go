package montecarlo

import (
	"math/rand"
	"runtime"

	"go.uber.org/zap"
)

// Option customizes a Monte Carlo call by mutating its config.
// Option constructors panic on meaningless input; the algorithms themselves
// return errors and never panic.
type Option func(*config)

type config struct {
	workers      int
	rng          *rand.Rand
	logger       *zap.Logger
	onPush       func(site int)
	clusterMoves int
	pointFields  func(point int) []zap.Field
}

// newConfig applies opts over the defaults: GOMAXPROCS workers, the default
// seed, a no-op logger.
func newConfig(opts []Option) *config {
	c := &config{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rngFromSeed(0)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// WithWorkers bounds how many partitions (Sweep) or scan points (Scan) run at
// once. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("montecarlo: WithWorkers(n<1)")
	}
	return func(c *config) {
		c.workers = n
	}
}

// WithRand supplies the random stream. The stream is not goroutine-safe and
// must not be shared with a concurrent call. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("montecarlo: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithSeed creates a deterministic stream; seed 0 selects the default seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rngFromSeed(seed)
	}
}

// WithLogger routes phase and sweep logs to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("montecarlo: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithOnPush installs a hook called with every site a cluster move pushes.
// Scan may call it from several goroutines. Panics on nil.
func WithOnPush(fn func(site int)) Option {
	if fn == nil {
		panic("montecarlo: WithOnPush(nil)")
	}
	return func(c *config) {
		c.onPush = fn
	}
}

// WithClusterMoves makes Scan run Loop with n Wolff moves per step instead of
// Iterate. Panics if n < 1.
func WithClusterMoves(n int) Option {
	if n < 1 {
		panic("montecarlo: WithClusterMoves(n<1)")
	}
	return func(c *config) {
		c.clusterMoves = n
	}
}

// WithPointFields adds fn(k) to the logger of Scan point k, e.g. a per-point
// run id. fn is called once per point before any point starts. Panics on nil.
func WithPointFields(fn func(point int) []zap.Field) Option {
	if fn == nil {
		panic("montecarlo: WithPointFields(nil)")
	}
	return func(c *config) {
		c.pointFields = fn
	}
}
