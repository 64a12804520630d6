package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/isinglat/config"
	"github.com/katalvlaran/isinglat/lattice"
	"github.com/katalvlaran/isinglat/measure"
	"github.com/katalvlaran/isinglat/montecarlo"
	"github.com/katalvlaran/isinglat/store"
)

// overrides are the flags that replace config file values when set.
type overrides struct {
	geometry     string
	x, y, z      int
	couplings    map[string]string
	val          float64
	vals         []float64
	nequilibrium int
	nworks       int
	clusterMoves int
	workers      int
	seed         int64
	init         string
	db           string
}

func (o *overrides) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.geometry, "geometry", "g", "", "lattice geometry (see `isinglat geometries`)")
	f.IntVar(&o.x, "x", 0, "unit cells along x")
	f.IntVar(&o.y, "y", 0, "unit cells along y")
	f.IntVar(&o.z, "z", 0, "unit cells along z")
	f.StringToStringVarP(&o.couplings, "coupling", "J", nil, "couplings, e.g. Ja=1,Jb=-0.5 (replaces the file map)")
	f.Float64Var(&o.val, "val", 0, "inverse temperature")
	f.IntVar(&o.nequilibrium, "nequilibrium", 0, "discarded equilibration steps")
	f.IntVar(&o.nworks, "nworks", 0, "recorded steps")
	f.IntVar(&o.clusterMoves, "cluster-moves", 0, "Wolff moves per step; >0 replaces sweeps")
	f.IntVar(&o.workers, "workers", 0, "concurrency bound; 0 means GOMAXPROCS")
	f.Int64Var(&o.seed, "seed", 0, "random seed")
	f.StringVar(&o.init, "init", "", "initial state: random, up or down")
	f.StringVar(&o.db, "db", "", "SQLite file to store results in")
}

// apply copies every explicitly set flag onto cfg.
func (o *overrides) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("geometry") {
		cfg.Geometry = o.geometry
	}
	if f.Changed("x") {
		cfg.Extents.X = o.x
	}
	if f.Changed("y") {
		cfg.Extents.Y = o.y
	}
	if f.Changed("z") {
		cfg.Extents.Z = o.z
	}
	if f.Changed("coupling") {
		cfg.Couplings = make(map[string]float64, len(o.couplings))
		for name, raw := range o.couplings {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("coupling %s: %w", name, err)
			}
			cfg.Couplings[name] = v
		}
	}
	if f.Changed("val") {
		cfg.Val = o.val
	}
	if f.Changed("vals") {
		cfg.Scan = o.vals
	}
	if f.Changed("nequilibrium") {
		cfg.NEquilibrium = o.nequilibrium
	}
	if f.Changed("nworks") {
		cfg.NWorks = o.nworks
	}
	if f.Changed("cluster-moves") {
		cfg.ClusterMoves = o.clusterMoves
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
	if f.Changed("seed") {
		cfg.Seed = o.seed
	}
	if f.Changed("init") {
		cfg.Init = o.init
	}
	if f.Changed("db") {
		cfg.DB = o.db
	}
	return nil
}

// setup is everything a run needs after the config is validated.
type setup struct {
	cfg     *config.Config
	table   *lattice.Table
	lattice *lattice.Lattice
	J       []float64
	rng     *rand.Rand
}

func (a *app) load(cmd *cobra.Command, o *overrides) (*setup, error) {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return nil, err
		}
	}
	if err := o.apply(cmd, cfg); err != nil {
		return nil, err
	}
	cfg.FillCouplings()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := lattice.NewGeometry(cfg.Geometry)
	if err != nil {
		return nil, err
	}
	J, err := g.Couplings(cfg.Couplings)
	if err != nil {
		return nil, err
	}
	ext := cfg.Extents.Lattice()
	t, err := lattice.NewTable(g, ext)
	if err != nil {
		return nil, err
	}
	l, err := lattice.New(g, ext)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	r := rand.New(rand.NewSource(seed))
	switch cfg.Init {
	case config.InitRandom:
		l.Randomize(r)
	case config.InitDown:
		if err := l.Fill(lattice.Down); err != nil {
			return nil, err
		}
	}
	return &setup{cfg: cfg, table: t, lattice: l, J: J, rng: r}, nil
}

func (s *setup) options(logger *zap.Logger) []montecarlo.Option {
	opts := []montecarlo.Option{montecarlo.WithRand(s.rng), montecarlo.WithLogger(logger)}
	if s.cfg.Workers > 0 {
		opts = append(opts, montecarlo.WithWorkers(s.cfg.Workers))
	}
	return opts
}

func (s *setup) storedRun(id string, val float64, res montecarlo.Result) store.Run {
	return store.Run{
		ID:           id,
		Geometry:     s.cfg.Geometry,
		Extents:      s.cfg.Extents.Lattice(),
		Val:          val,
		NEquilibrium: s.cfg.NEquilibrium,
		NWorks:       s.cfg.NWorks,
		Couplings:    s.cfg.Couplings,
		Result:       res,
	}
}

// runSummary is the YAML document printed by `run`.
type runSummary struct {
	RunID             string               `yaml:"run_id"`
	Geometry          string               `yaml:"geometry"`
	Extents           config.ExtentsConfig `yaml:"extents"`
	Couplings         map[string]float64   `yaml:"couplings"`
	Val               float64              `yaml:"val"`
	Steps             int                  `yaml:"steps"`
	MeanEnergy        float64              `yaml:"mean_energy"`
	MeanMagnetization []float64            `yaml:"mean_magnetization"`
	FinalEnergy       float64              `yaml:"final_energy"`
	Domains           int                  `yaml:"domains"`
	LargestDomain     int                  `yaml:"largest_domain"`
	Elapsed           string               `yaml:"elapsed"`
	DB                string               `yaml:"db,omitempty"`
}

func (a *app) newRunCmd() *cobra.Command {
	o := &overrides{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Equilibrate, measure and print one simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd, o)
		},
	}
	o.bind(cmd)
	return cmd
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, o *overrides) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := a.load(cmd, o)
	if err != nil {
		return err
	}
	runID := uuid.New().String()
	logger := a.logger.With(zap.String("run_id", runID))
	cfg := s.cfg

	var res montecarlo.Result
	if cfg.ClusterMoves > 0 {
		res, err = montecarlo.Loop(ctx, s.table, s.lattice, s.J, cfg.Val,
			cfg.NEquilibrium, cfg.NWorks, cfg.ClusterMoves, s.options(logger)...)
	} else {
		res, err = montecarlo.Iterate(ctx, s.table, s.lattice, s.J, cfg.Val,
			cfg.NEquilibrium, cfg.NWorks, s.options(logger)...)
	}
	if err != nil {
		return err
	}

	final, err := measure.Energy(s.table, s.lattice, s.J)
	if err != nil {
		return err
	}
	domains, err := measure.Domains(s.table, s.lattice, 0)
	if err != nil {
		return err
	}

	if cfg.DB != "" {
		if err := saveRuns(ctx, cfg.DB, s.storedRun(runID, cfg.Val, res)); err != nil {
			return err
		}
		logger.Info("stored", zap.String("db", cfg.DB))
	}

	return writeYAML(cmd.OutOrStdout(), runSummary{
		RunID:             runID,
		Geometry:          cfg.Geometry,
		Extents:           cfg.Extents,
		Couplings:         cfg.Couplings,
		Val:               cfg.Val,
		Steps:             len(res.Energy),
		MeanEnergy:        res.MeanEnergy(),
		MeanMagnetization: res.MeanMagnetization(),
		FinalEnergy:       final,
		Domains:           len(domains),
		LargestDomain:     measure.LargestDomain(domains),
		Elapsed:           res.Elapsed.String(),
		DB:                cfg.DB,
	})
}

// scanPoint is one entry of the `scan` summary.
type scanPoint struct {
	RunID             string    `yaml:"run_id"`
	Val               float64   `yaml:"val"`
	MeanEnergy        float64   `yaml:"mean_energy"`
	MeanMagnetization []float64 `yaml:"mean_magnetization"`
}

type scanSummary struct {
	Geometry  string               `yaml:"geometry"`
	Extents   config.ExtentsConfig `yaml:"extents"`
	Couplings map[string]float64   `yaml:"couplings"`
	Points    []scanPoint          `yaml:"points"`
	DB        string               `yaml:"db,omitempty"`
}

func (a *app) newScanCmd() *cobra.Command {
	o := &overrides{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one independent simulation per inverse temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scan(cmd.Context(), cmd, o)
		},
	}
	o.bind(cmd)
	cmd.Flags().Float64SliceVar(&o.vals, "vals", nil, "inverse temperatures, e.g. 0.1,0.2,0.3 (default: the single --val)")
	return cmd
}

func (a *app) scan(ctx context.Context, cmd *cobra.Command, o *overrides) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := a.load(cmd, o)
	if err != nil {
		return err
	}
	cfg := s.cfg
	vals := cfg.Scan
	if len(vals) == 0 {
		vals = []float64{cfg.Val}
	}
	ids := make([]string, len(vals))
	for k := range ids {
		ids[k] = uuid.New().String()
	}

	opts := append(s.options(a.logger), montecarlo.WithPointFields(func(point int) []zap.Field {
		return []zap.Field{zap.String("run_id", ids[point])}
	}))
	if cfg.ClusterMoves > 0 {
		opts = append(opts, montecarlo.WithClusterMoves(cfg.ClusterMoves))
	}
	points, err := montecarlo.Scan(ctx, s.table, s.lattice, s.J, vals, cfg.NEquilibrium, cfg.NWorks, opts...)
	if err != nil {
		return err
	}

	out := scanSummary{Geometry: cfg.Geometry, Extents: cfg.Extents, Couplings: cfg.Couplings, DB: cfg.DB}
	runs := make([]store.Run, len(points))
	for k, p := range points {
		runs[k] = s.storedRun(ids[k], p.Val, p.Result)
		out.Points = append(out.Points, scanPoint{
			RunID:             ids[k],
			Val:               p.Val,
			MeanEnergy:        p.MeanEnergy,
			MeanMagnetization: p.MeanMagnetization,
		})
	}
	if cfg.DB != "" {
		if err := saveRuns(ctx, cfg.DB, runs...); err != nil {
			return err
		}
		a.logger.Info("stored", zap.String("db", cfg.DB), zap.Int("runs", len(runs)))
	}
	return writeYAML(cmd.OutOrStdout(), out)
}

func saveRuns(ctx context.Context, path string, runs ...store.Run) error {
	st, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()
	for _, r := range runs {
		if _, err := st.SaveRun(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return enc.Close()
}
