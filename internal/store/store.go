// Package store persists device counter samples in SQLite.
//
// One table, keyed by (timestamp, name): re-ingesting the same report
// line updates the row instead of duplicating it.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/crimson-sun/kidcon/internal/model"
)

const schema = `
	CREATE TABLE IF NOT EXISTS samples (
		timestamp  TEXT NOT NULL,
		name       TEXT NOT NULL,
		bytes_up   REAL NOT NULL,
		bytes_down REAL NOT NULL,
		PRIMARY KEY (timestamp, name)
	);
	CREATE INDEX IF NOT EXISTS idx_samples_name ON samples(name, timestamp);
`

// Store is a SQLite-backed sample store. Safe for concurrent use;
// each call borrows a pooled connection.
type Store struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// Open opens (creating if needed) the sample database at path. The
// parent directory must exist. The caller must Close the store when
// done.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    2,
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}

	logger.Info("sample store opened", "path", path)
	return &Store{pool: pool, logger: logger, path: path}, nil
}

// prepareConn applies pragmas and the schema to each pooled
// connection on first use.
func prepareConn(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the connection pool, blocking until borrowed
// connections are returned.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return fmt.Errorf("store: closing %s: %w", s.path, err)
	}
	s.logger.Info("sample store closed", "path", s.path)
	return nil
}

// Upsert inserts a sample, replacing any existing row with the same
// timestamp and device name.
func (s *Store) Upsert(ctx context.Context, sample model.Sample) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("store: upsert: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO samples (timestamp, name, bytes_up, bytes_down)
		VALUES (:timestamp, :name, :bytes_up, :bytes_down)
		ON CONFLICT (timestamp, name) DO UPDATE SET
			bytes_up = excluded.bytes_up,
			bytes_down = excluded.bytes_down`,
		&sqlitex.ExecOptions{
			Named: map[string]any{
				":timestamp":  sample.Time.UTC().Format(time.RFC3339),
				":name":       sample.Name,
				":bytes_up":   sample.BytesUp,
				":bytes_down": sample.BytesDown,
			},
		})
	if err != nil {
		return fmt.Errorf("store: upsert %s: %w", sample.Name, err)
	}
	return nil
}

// History returns every stored sample for a device, oldest first.
func (s *Store) History(ctx context.Context, name string) ([]model.Sample, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: history: %w", err)
	}
	defer s.pool.Put(conn)

	var samples []model.Sample
	err = sqlitex.Execute(conn, `
		SELECT timestamp, bytes_up, bytes_down
		FROM samples WHERE name = :name ORDER BY timestamp`,
		&sqlitex.ExecOptions{
			Named: map[string]any{":name": name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				ts, err := time.Parse(time.RFC3339, stmt.ColumnText(0))
				if err != nil {
					return fmt.Errorf("bad timestamp %q: %w", stmt.ColumnText(0), err)
				}
				samples = append(samples, model.Sample{
					Time:      ts,
					Name:      name,
					BytesUp:   stmt.ColumnFloat(1),
					BytesDown: stmt.ColumnFloat(2),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("store: history %s: %w", name, err)
	}
	return samples, nil
}
