// Package storage persists a log of served calculations in a local SQLite
// database. The engine itself is stateless; history exists so users can
// review past prescriptions from the dashboard or over MCP.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Calculation kinds recorded in the history table.
const (
	KindWarmup  = "warmup"
	KindMaxReps = "max_reps"
)

// Calculation is one served calculation: the inputs plus the JSON-encoded
// result that was returned to the caller.
type Calculation struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	RPE       float64         `json:"rpe"`
	Weight    float64         `json:"weight"`
	Reps      *int            `json:"reps,omitempty"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store wraps the SQLite history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the given path and
// applies pending migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// runMigrations applies embedded migrations to the database at path.
func runMigrations(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordCalculation inserts a history row. The caller supplies everything
// except ID and CreatedAt, which are assigned here.
func (s *Store) RecordCalculation(ctx context.Context, kind string, rpe, weight float64, reps *int, result any) (uuid.UUID, error) {
	encoded, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding result: %w", err)
	}

	id := uuid.New()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO calculations (id, kind, rpe, weight, reps, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), kind, rpe, weight, reps, string(encoded), time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting calculation: %w", err)
	}
	return id, nil
}

// QueryHistory returns the most recent calculations, newest first.
// An empty kind matches all kinds. limit <= 0 defaults to 50.
func (s *Store) QueryHistory(ctx context.Context, kind string, limit int) ([]Calculation, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, kind, rpe, weight, reps, result, created_at
	          FROM calculations`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	results := []Calculation{}
	for rows.Next() {
		var (
			c      Calculation
			idStr  string
			result string
		)
		if err := rows.Scan(&idStr, &c.Kind, &c.RPE, &c.Weight, &c.Reps, &result, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning calculation: %w", err)
		}
		if c.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("parsing calculation id %q: %w", idStr, err)
		}
		c.Result = json.RawMessage(result)
		results = append(results, c)
	}
	return results, rows.Err()
}

// CountByKind returns the number of recorded calculations per kind.
func (s *Store) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM calculations GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting calculations: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
