package montecarlo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/isinglat/lattice"
	"github.com/katalvlaran/isinglat/measure"
)

// Result holds the measurement phase of a run.
type Result struct {
	// Elapsed is the wall time of both phases.
	Elapsed time.Duration
	// Magnetization[k][s] is the average spin of sublattice s after work step k.
	Magnetization [][]float64
	// Energy[k] is the bond energy of work step k, each bond counted once.
	Energy []float64
}

// MeanEnergy averages Energy; 0 for an empty result.
func (r Result) MeanEnergy() float64 {
	if len(r.Energy) == 0 {
		return 0
	}
	var sum float64
	for _, e := range r.Energy {
		sum += e
	}
	return sum / float64(len(r.Energy))
}

// MeanMagnetization averages Magnetization per sublattice; nil for an empty result.
func (r Result) MeanMagnetization() []float64 {
	if len(r.Magnetization) == 0 {
		return nil
	}
	mean := make([]float64, len(r.Magnetization[0]))
	for _, row := range r.Magnetization {
		for s, m := range row {
			mean[s] += m
		}
	}
	for s := range mean {
		mean[s] /= float64(len(r.Magnetization))
	}
	return mean
}

// Iterate runs nequilibrium discarded sweeps, then nworks recorded sweeps.
// Every sweep draws a fresh random field. A work step records half the sweep's
// accumulated energy (each bond is seen from both ends) and
// measure.Magnetization of the lattice after the sweep.
//
// The lattice is mutated in place. Options: WithWorkers, WithSeed/WithRand,
// WithLogger.
func Iterate(
	ctx context.Context,
	t *lattice.Table,
	l *lattice.Lattice,
	J []float64,
	val float64,
	nequilibrium, nworks int,
	opts ...Option,
) (Result, error) {
	if err := checkRun(methodIterate, t, l, J, val); err != nil {
		return Result{}, err
	}
	if err := checkSteps(methodIterate, nequilibrium, nworks); err != nil {
		return Result{}, err
	}
	cfg := newConfig(opts)
	return iterate(ctx, t, l, J, val, nequilibrium, nworks, cfg)
}

func iterate(
	ctx context.Context,
	t *lattice.Table,
	l *lattice.Lattice,
	J []float64,
	val float64,
	nequilibrium, nworks int,
	cfg *config,
) (Result, error) {
	log := cfg.logger.With(zap.String("geometry", l.Geometry().Name), zap.Float64("val", val))
	start := time.Now()
	field := make([]float64, l.Len())

	log.Info("equilibration", zap.Int("sweeps", nequilibrium), zap.Int("workers", cfg.workers))
	for step := 0; step < nequilibrium; step++ {
		fillUniform(field, cfg.rng)
		e, err := sweep(ctx, t, l, field, J, val, cfg.workers)
		if err != nil {
			return Result{}, wrap(methodIterate, err)
		}
		log.Debug("sweep", zap.String("phase", "equilibrium"), zap.Int("step", step), zap.Float64("energy", e/2))
	}

	res := Result{
		Magnetization: make([][]float64, 0, nworks),
		Energy:        make([]float64, 0, nworks),
	}
	log.Info("measurement", zap.Int("sweeps", nworks))
	for step := 0; step < nworks; step++ {
		fillUniform(field, cfg.rng)
		e, err := sweep(ctx, t, l, field, J, val, cfg.workers)
		if err != nil {
			return Result{}, wrap(methodIterate, err)
		}
		res.Energy = append(res.Energy, e/2)
		res.Magnetization = append(res.Magnetization, measure.Magnetization(l))
		log.Debug("sweep", zap.String("phase", "work"), zap.Int("step", step), zap.Float64("energy", e/2))
	}
	res.Elapsed = time.Since(start)
	log.Info("done", zap.Duration("elapsed", res.Elapsed), zap.Float64("mean_energy", res.MeanEnergy()))
	return res, nil
}

// Loop is the cluster counterpart of Iterate: every step performs `moves`
// Wolff moves (see Cluster). Equilibration steps are discarded; each work step
// records measure.Magnetization and measure.Energy of the lattice.
//
// Options: WithSeed/WithRand, WithLogger, WithOnPush.
func Loop(
	ctx context.Context,
	t *lattice.Table,
	l *lattice.Lattice,
	J []float64,
	val float64,
	nequilibrium, nworks, moves int,
	opts ...Option,
) (Result, error) {
	if err := checkRun(methodLoop, t, l, J, val); err != nil {
		return Result{}, err
	}
	if err := checkSteps(methodLoop, nequilibrium, nworks); err != nil {
		return Result{}, err
	}
	if moves < 1 {
		return Result{}, wrapf(methodLoop, ErrBadSteps, "moves=%d", moves)
	}
	cfg := newConfig(opts)
	return loop(ctx, t, l, J, val, nequilibrium, nworks, moves, cfg)
}

func loop(
	ctx context.Context,
	t *lattice.Table,
	l *lattice.Lattice,
	J []float64,
	val float64,
	nequilibrium, nworks, moves int,
	cfg *config,
) (Result, error) {
	log := cfg.logger.With(zap.String("geometry", l.Geometry().Name), zap.Float64("val", val))
	start := time.Now()
	c := newClusterer(l.Len())
	spins := l.Spins()

	step := func() (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, wrap(methodLoop, err)
		}
		var flipped int
		for m := 0; m < moves; m++ {
			flipped += c.move(t, spins, J[0], val, cfg.rng, cfg.onPush)
		}
		return flipped, nil
	}

	log.Info("equilibration", zap.Int("steps", nequilibrium), zap.Int("moves", moves))
	for k := 0; k < nequilibrium; k++ {
		if _, err := step(); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Magnetization: make([][]float64, 0, nworks),
		Energy:        make([]float64, 0, nworks),
	}
	log.Info("measurement", zap.Int("steps", nworks))
	for k := 0; k < nworks; k++ {
		flipped, err := step()
		if err != nil {
			return Result{}, err
		}
		e, err := measure.Energy(t, l, J)
		if err != nil {
			return Result{}, wrap(methodLoop, err)
		}
		res.Energy = append(res.Energy, e)
		res.Magnetization = append(res.Magnetization, measure.Magnetization(l))
		log.Debug("cluster step", zap.Int("step", k), zap.Int("flipped", flipped), zap.Float64("energy", e))
	}
	res.Elapsed = time.Since(start)
	log.Info("done", zap.Duration("elapsed", res.Elapsed), zap.Float64("mean_energy", res.MeanEnergy()))
	return res, nil
}
