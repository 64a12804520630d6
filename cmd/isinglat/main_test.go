package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/isinglat/config"
	"github.com/katalvlaran/isinglat/store"
)

// execute runs the root command quietly and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--quiet"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestGeometries(t *testing.T) {
	out, err := execute(t, "geometries")
	require.NoError(t, err)
	var got []geometryInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 4)
	require.Equal(t, "centered-rectangular", got[0].Name)
	require.Equal(t, []string{"Ja", "Jb", "Jc"}, got[1].Couplings)
	require.Equal(t, 2, got[2].Spatial)
}

// TestRun_AlignedGreedy: an aligned ferromagnet at val 0 never flips, so the
// summary is exact.
func TestRun_AlignedGreedy(t *testing.T) {
	out, err := execute(t, "run",
		"--geometry", "kagome", "--x", "3", "--y", "3", "--z", "1",
		"-J", "Ja=1", "--val", "0", "--init", "up",
		"--nequilibrium", "2", "--nworks", "4", "--workers", "1")
	require.NoError(t, err)

	var sum runSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	require.NotEmpty(t, sum.RunID)
	require.Equal(t, 4, sum.Steps)
	// 27 sites, 4 Ja bonds each, 54 bonds.
	require.Equal(t, -54.0, sum.MeanEnergy)
	require.Equal(t, -54.0, sum.FinalEnergy)
	require.Equal(t, []float64{1, 1, 1}, sum.MeanMagnetization)
	require.Equal(t, 1, sum.Domains)
	require.Equal(t, 27, sum.LargestDomain)
}

// TestRun_ConfigFileAndDB reads a YAML file, lets flags override it and
// stores the run.
func TestRun_ConfigFileAndDB(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")
	cfg := config.Default()
	cfg.Geometry = "cubic"
	cfg.Extents = config.ExtentsConfig{X: 2, Y: 2, Z: 2}
	cfg.Couplings = map[string]float64{"Ja": 1}
	cfg.NEquilibrium = 3
	cfg.NWorks = 5
	require.NoError(t, cfg.Save(cfgPath))

	dbPath := filepath.Join(dir, "runs.db")
	out, err := execute(t, "run", "--config", cfgPath, "--nworks", "2", "--cluster-moves", "3", "--db", dbPath)
	require.NoError(t, err)
	var sum runSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	require.Equal(t, "cubic", sum.Geometry)
	require.Equal(t, 2, sum.Steps)
	require.Len(t, sum.MeanMagnetization, 8)

	st, err := store.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer st.Close()
	r, err := st.LoadRun(context.Background(), sum.RunID)
	require.NoError(t, err)
	require.Equal(t, 3, r.NEquilibrium)
	require.Len(t, r.Result.Energy, 2)
}

// TestRun_DefaultCouplingsPerGeometry: without -J each geometry runs as a
// nearest-neighbor ferromagnet on its own first shell.
func TestRun_DefaultCouplingsPerGeometry(t *testing.T) {
	want := map[string]map[string]float64{
		"cubic":                {"Ja": 1},
		"kagome":               {"Ja": 1},
		"centered-rectangular": {"Ja": 1},
		"p6mm":                 {"J1": 1},
	}
	for name, couplings := range want {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, "run", "--geometry", name, "--x", "2", "--y", "2", "--z", "1",
				"--nequilibrium", "1", "--nworks", "1")
			require.NoError(t, err)
			var sum runSummary
			require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
			require.Equal(t, name, sum.Geometry)
			require.Equal(t, couplings, sum.Couplings)
			require.Equal(t, 1, sum.Steps)
		})
	}
}

// TestRun_ConfigCouplingsExact: a file naming only Jb runs with exactly Jb.
func TestRun_ConfigCouplingsExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := config.Default()
	cfg.Geometry = "cubic"
	cfg.Extents = config.ExtentsConfig{X: 2, Y: 2, Z: 2}
	cfg.Couplings = map[string]float64{"Jb": 1}
	cfg.NEquilibrium = 1
	cfg.NWorks = 1
	require.NoError(t, cfg.Save(path))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	var sum runSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	require.Equal(t, map[string]float64{"Jb": 1}, sum.Couplings)
}

// TestScan_SingleVal falls back to --val when no scan list is given.
func TestScan_SingleVal(t *testing.T) {
	out, err := execute(t, "scan", "--geometry", "p6mm", "--x", "2", "--y", "2",
		"--val", "0.3", "--nequilibrium", "1", "--nworks", "2")
	require.NoError(t, err)
	var sum scanSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	require.Len(t, sum.Points, 1)
	require.Equal(t, 0.3, sum.Points[0].Val)
	require.NotEmpty(t, sum.Points[0].RunID)
}

func TestScan(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scan.db")
	out, err := execute(t, "scan",
		"--geometry", "centered-rectangular", "--x", "3", "--y", "3", "--z", "1",
		"--vals", "0.1,0.5,0.9", "--nequilibrium", "2", "--nworks", "3", "--db", dbPath)
	require.NoError(t, err)
	var sum scanSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sum))
	require.Len(t, sum.Points, 3)
	require.Equal(t, 0.5, sum.Points[1].Val)

	st, err := store.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

func TestErrors(t *testing.T) {
	cases := [][]string{
		{"run", "--geometry", "hex"},
		{"run", "--val", "-1"},
		{"run", "-J", "Ja=abc"},
		{"run", "--config", filepath.Join(t.TempDir(), "missing.yaml")},
		{"scan", "--vals", "0.1,-0.2"},
		{"run", "extra"},
	}
	for _, args := range cases {
		_, err := execute(t, args...)
		require.Error(t, err, "%v", args)
	}
}
