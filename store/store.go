// Package store persists simulation runs and their samples to SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/isinglat/lattice"
	"github.com/katalvlaran/isinglat/montecarlo"
)

// ErrNotFound is returned by LoadRun for an unknown id.
var ErrNotFound = errors.New("store: run not found")

// Run is one persisted Iterate/Loop outcome.
type Run struct {
	ID           string
	Geometry     string
	Extents      lattice.Extents
	Val          float64
	NEquilibrium int
	NWorks       int
	Couplings    map[string]float64
	CreatedAt    time.Time
	Result       montecarlo.Result
}

// Summary is a run row without its samples.
type Summary struct {
	ID        string
	Geometry  string
	Val       float64
	Samples   int
	CreatedAt time.Time
}

// Store wraps a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the database at path and ensures the schema.
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path given to Open.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		geometry TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		z INTEGER NOT NULL,
		val REAL NOT NULL,
		nequilibrium INTEGER NOT NULL,
		nworks INTEGER NOT NULL,
		couplings TEXT NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		step INTEGER NOT NULL,
		energy REAL NOT NULL,
		magnetization TEXT NOT NULL,
		PRIMARY KEY (run_id, step)
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts r and its samples in one transaction. An empty ID is
// replaced by a fresh UUID and a zero CreatedAt by the current time; the
// stored id is returned.
func (s *Store) SaveRun(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if len(r.Result.Energy) != len(r.Result.Magnetization) {
		return "", fmt.Errorf("store: SaveRun: %d energies but %d magnetization rows",
			len(r.Result.Energy), len(r.Result.Magnetization))
	}
	couplings, err := json.Marshal(r.Couplings)
	if err != nil {
		return "", fmt.Errorf("failed to marshal couplings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, geometry, x, y, z, val, nequilibrium, nworks, couplings, elapsed_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Geometry, r.Extents.X, r.Extents.Y, r.Extents.Z, r.Val,
		r.NEquilibrium, r.NWorks, string(couplings), int64(r.Result.Elapsed), r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (run_id, step, energy, magnetization) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare samples: %w", err)
	}
	defer stmt.Close()
	for k, e := range r.Result.Energy {
		if _, err := stmt.ExecContext(ctx, r.ID, k, e, formatFloats(r.Result.Magnetization[k])); err != nil {
			return "", fmt.Errorf("failed to insert sample %d: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return r.ID, nil
}

// LoadRun reads a run and its samples ordered by step.
func (s *Store) LoadRun(ctx context.Context, id string) (Run, error) {
	var (
		r         Run
		couplings string
		elapsed   int64
		created   int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, geometry, x, y, z, val, nequilibrium, nworks, couplings, elapsed_ns, created_at
		FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.Geometry, &r.Extents.X, &r.Extents.Y, &r.Extents.Z, &r.Val,
		&r.NEquilibrium, &r.NWorks, &couplings, &elapsed, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query run: %w", err)
	}
	if err := json.Unmarshal([]byte(couplings), &r.Couplings); err != nil {
		return Run{}, fmt.Errorf("failed to decode couplings: %w", err)
	}
	r.Result.Elapsed = time.Duration(elapsed)
	r.CreatedAt = time.Unix(0, created)

	rows, err := s.db.QueryContext(ctx,
		`SELECT energy, magnetization FROM samples WHERE run_id = ? ORDER BY step`, id)
	if err != nil {
		return Run{}, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			e float64
			m string
		)
		if err := rows.Scan(&e, &m); err != nil {
			return Run{}, fmt.Errorf("failed to scan sample: %w", err)
		}
		mag, err := parseFloats(m)
		if err != nil {
			return Run{}, fmt.Errorf("failed to decode magnetization: %w", err)
		}
		r.Result.Energy = append(r.Result.Energy, e)
		r.Result.Magnetization = append(r.Result.Magnetization, mag)
	}
	return r, rows.Err()
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.geometry, r.val, r.created_at, COUNT(sm.step)
		FROM runs r LEFT JOIN samples sm ON sm.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			created int64
		)
		if err := rows.Scan(&sum.ID, &sum.Geometry, &sum.Val, &created, &sum.Samples); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		sum.CreatedAt = time.Unix(0, created)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func parseFloats(s string) ([]float64, error) {
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
