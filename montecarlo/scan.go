package montecarlo

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/isinglat/lattice"
)

// Point is the outcome of one scan value.
type Point struct {
	Val               float64
	MeanEnergy        float64
	MeanMagnetization []float64
	Result            Result
}

// Scan runs one independent simulation per value in vals, each on its own
// clone of l (which is left untouched) with its own derived random stream.
// Points run concurrently, up to WithWorkers at a time; the sweeps inside a
// point are sequential, so a scan is reproducible for a given seed whatever
// the worker count. With WithClusterMoves(n) each point runs Loop instead of
// Iterate.
//
// WithPointFields tags each point's logs. Results are returned in the order
// of vals.
func Scan(
	ctx context.Context,
	t *lattice.Table,
	l *lattice.Lattice,
	J []float64,
	vals []float64,
	nequilibrium, nworks int,
	opts ...Option,
) ([]Point, error) {
	if len(vals) == 0 {
		return nil, wrap(methodScan, ErrEmptyScan)
	}
	for _, v := range vals {
		if err := checkRun(methodScan, t, l, J, v); err != nil {
			return nil, err
		}
	}
	if err := checkSteps(methodScan, nequilibrium, nworks); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)

	// Derive every stream before launching so the mapping value→stream does
	// not depend on scheduling.
	cfgs := make([]*config, len(vals))
	for k := range vals {
		logger := cfg.logger.With(zap.Int("point", k))
		if cfg.pointFields != nil {
			logger = logger.With(cfg.pointFields(k)...)
		}
		cfgs[k] = &config{
			workers:      1,
			rng:          deriveRNG(cfg.rng, uint64(k)),
			logger:       logger,
			onPush:       cfg.onPush,
			clusterMoves: cfg.clusterMoves,
		}
	}

	points := make([]Point, len(vals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for k, v := range vals {
		g.Go(func() error {
			lk := l.Clone()
			var (
				res Result
				err error
			)
			if cfgs[k].clusterMoves > 0 {
				res, err = loop(gctx, t, lk, J, v, nequilibrium, nworks, cfgs[k].clusterMoves, cfgs[k])
			} else {
				res, err = iterate(gctx, t, lk, J, v, nequilibrium, nworks, cfgs[k])
			}
			if err != nil {
				return err
			}
			points[k] = Point{
				Val:               v,
				MeanEnergy:        res.MeanEnergy(),
				MeanMagnetization: res.MeanMagnetization(),
				Result:            res,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, wrap(methodScan, err)
	}
	return points, nil
}
