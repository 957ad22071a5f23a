package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS dedup (
	key   TEXT PRIMARY KEY,
	until INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dedup_until ON dedup(until);
`

// SQLite is the durable ledger: delivered identifiers survive process
// restarts and are pruned once their retention window passes.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration

	opCount    atomic.Uint64
	pruneEvery uint64
}

func OpenSQLite(path string, ttl time.Duration) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")
	_, _ = db.Exec("PRAGMA busy_timeout = 5000")

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db, ttl: ttl, pruneEvery: 500}, nil
}

func (s *SQLite) Seen(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}

	var until int64
	err := s.db.QueryRowContext(ctx, `SELECT until FROM dedup WHERE key = ?`, id).Scan(&until)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		slog.Warn("Ledger lookup failed, treating as not seen", "id", id, "error", err)
		return false
	}

	return time.Now().UnixMilli() < until
}

func (s *SQLite) Mark(ctx context.Context, id string) {
	if id == "" {
		return
	}

	until := time.Now().Add(s.ttl).UnixMilli()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dedup(key, until) VALUES(?,?)
		 ON CONFLICT(key) DO UPDATE SET until=excluded.until`,
		id, until,
	)
	if err != nil {
		slog.Warn("Ledger mark failed", "id", id, "error", err)
		return
	}

	if s.opCount.Add(1)%s.pruneEvery == 0 {
		pctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		s.pruneExpired(pctx)
		cancel()
	}
}

func (s *SQLite) pruneExpired(ctx context.Context) {
	now := time.Now().UnixMilli()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dedup WHERE until < ?`, now); err != nil {
		slog.Debug("Ledger prune failed", "error", err)
	}
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
