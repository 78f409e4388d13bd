// Package store persists best scores.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultKey is the best-score key for local play.
const DefaultKey = "bestScore"

// KeyFor returns the best-score key for a named player. An empty name
// falls back to DefaultKey.
func KeyFor(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + user
}

// Scores reads and writes best scores by key.
type Scores interface {
	// Best returns the stored score, 0 if missing or unparseable.
	Best(ctx context.Context, key string) (int, error)
	// SaveBest stores score if it is higher than the current value.
	SaveBest(ctx context.Context, key string, score int) error
}

// parseScore converts a stored value. Anything that is not a
// non-negative integer reads as 0.
func parseScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// --------- SQLite ---------

// Store keeps scores in a SQLite database.
type Store struct {
	db *sql.DB
}

var _ Scores = (*Store)(nil)

// Open opens/creates a SQLite database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		// Values are text so that hand-edited or corrupt entries read back as 0
		// instead of failing.
		`CREATE TABLE IF NOT EXISTS scores (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Best returns the stored score for key.
func (s *Store) Best(ctx context.Context, key string) (int, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM scores WHERE name = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read best %q: %w", key, err)
	}
	return parseScore(raw), nil
}

// SaveBest stores score for key unless the stored value is already at least as high.
func (s *Store) SaveBest(ctx context.Context, key string, score int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scores (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		WHERE CAST(scores.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		key, strconv.Itoa(score), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save best %q: %w", key, err)
	}
	return nil
}

// --------- Memory ---------

// Memory keeps scores in process memory. Used when no database is configured.
type Memory struct {
	mu     sync.Mutex
	scores map[string]string
}

var _ Scores = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{scores: make(map[string]string)}
}

func (m *Memory) Best(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return parseScore(m.scores[key]), nil
}

func (m *Memory) SaveBest(_ context.Context, key string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if parseScore(m.scores[key]) < score {
		m.scores[key] = strconv.Itoa(score)
	}
	return nil
}

// Set stores a raw value, bypassing the higher-only rule.
func (m *Memory) Set(key, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[key] = raw
}
