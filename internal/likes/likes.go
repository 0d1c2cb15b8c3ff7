// Package likes persists the listener's liked songs in an embedded SQLite
// key/value table.
package likes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// StorageKey is the key the liked set is stored under.
const StorageKey = "arion_liked_songs"

// Store keeps an insertion-ordered set of liked song ids.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create likes directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open likes database: %w", err)
	}
	// one connection keeps an in-memory database alive and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS local_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create local_storage: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns liked song ids in the order they were liked.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Liked reports whether songID is in the set.
func (s *Store) Liked(ctx context.Context, songID string) (bool, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(ids, songID) >= 0, nil
}

// Toggle flips membership of songID and returns whether it is now liked.
func (s *Store) Toggle(ctx context.Context, songID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	liked := false
	if i := indexOf(ids, songID); i >= 0 {
		ids = append(ids[:i], ids[i+1:]...)
	} else {
		ids = append(ids, songID)
		liked = true
	}

	if err := s.save(ctx, ids); err != nil {
		return false, err
	}
	return liked, nil
}

func (s *Store) load(ctx context.Context) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, StorageKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read liked songs: %w", err)
	}

	ids := []string{}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode liked songs: %w", err)
	}
	return ids, nil
}

func (s *Store) save(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode liked songs: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO local_storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("write liked songs: %w", err)
	}
	return nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
