// Package config loads and validates the YAML run file of the isinglat CLI.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/isinglat/lattice"
)

// Initial-state policies.
const (
	InitRandom = "random"
	InitUp     = "up"
	InitDown   = "down"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid run configuration")

// Config describes one simulation run or temperature scan.
type Config struct {
	// Geometry is a lattice.Geometries() name.
	Geometry string `yaml:"geometry"`
	// Extents counts unit cells per axis; Z must be 1 for planar geometries.
	Extents ExtentsConfig `yaml:"extents"`
	// Couplings maps coupling names (Ja, Jb, J0, ...) to values; missing = 0.
	// Empty means "first shell 1, rest 0" once FillCouplings has run.
	Couplings map[string]float64 `yaml:"couplings,omitempty"`
	// Val is the inverse temperature; 0 runs greedy sweeps.
	Val float64 `yaml:"val"`
	// Scan lists inverse temperatures for the scan command.
	Scan []float64 `yaml:"scan,omitempty"`

	NEquilibrium int `yaml:"nequilibrium"`
	NWorks       int `yaml:"nworks"`
	// ClusterMoves > 0 selects the Wolff driver with that many moves per step.
	ClusterMoves int `yaml:"cluster_moves"`
	// Workers bounds concurrency; 0 means GOMAXPROCS.
	Workers int   `yaml:"workers"`
	Seed    int64 `yaml:"seed"`
	// Init is random, up or down.
	Init string `yaml:"init"`
	// DB is an optional SQLite path for persisting results.
	DB string `yaml:"db,omitempty"`
}

// ExtentsConfig is the YAML form of lattice.Extents.
type ExtentsConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// Lattice converts to lattice.Extents.
func (e ExtentsConfig) Lattice() lattice.Extents {
	return lattice.Extents{X: e.X, Y: e.Y, Z: e.Z}
}

// Default returns a small kagome run. Couplings is left empty so that a
// later geometry change picks its own default; see FillCouplings.
func Default() *Config {
	return &Config{
		Geometry:     lattice.NameKagome,
		Extents:      ExtentsConfig{X: 16, Y: 16, Z: 1},
		Val:          0.5,
		NEquilibrium: 1000,
		NWorks:       1000,
		Init:         InitRandom,
	}
}

// Load reads path over Default(). A missing file is an error.
// Maps and lists in the file replace the defaults; yaml.v3 would merge a
// map into a non-nil one, so Default must keep them nil.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// FillCouplings gives an empty Couplings map the geometry's default: the
// first shell's coupling set to 1 (a nearest-neighbor ferromagnet). A
// non-empty map or an unknown geometry is left alone; Validate reports the
// latter.
func (c *Config) FillCouplings() {
	if len(c.Couplings) > 0 {
		return
	}
	g, err := lattice.NewGeometry(c.Geometry)
	if err != nil {
		return
	}
	names := g.CouplingNames()
	if len(names) == 0 {
		return
	}
	c.Couplings = map[string]float64{names[0]: 1}
}

// Save writes c as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks everything the drivers would reject, so the CLI can fail
// before allocating a lattice.
func (c *Config) Validate() error {
	g, err := lattice.NewGeometry(c.Geometry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := g.CheckExtents(c.Extents.Lattice()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := g.Couplings(c.Couplings); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for name, v := range c.Couplings {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: coupling %s=%v", ErrInvalid, name, v)
		}
	}
	for _, v := range append([]float64{c.Val}, c.Scan...) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: val %v must be finite and >= 0", ErrInvalid, v)
		}
	}
	if c.NEquilibrium < 0 || c.NWorks < 0 || c.ClusterMoves < 0 || c.Workers < 0 {
		return fmt.Errorf("%w: counts must be >= 0", ErrInvalid)
	}
	switch c.Init {
	case InitRandom, InitUp, InitDown:
	default:
		return fmt.Errorf("%w: init %q", ErrInvalid, c.Init)
	}
	return nil
}
