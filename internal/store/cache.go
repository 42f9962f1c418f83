// Package store provides a SQLite-backed cache for advisor answers.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed answer caching.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// DefaultPath returns the cache database location, honoring XDG_CACHE_HOME.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ada", "answers.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "ada", "answers.db")
}

// Open opens or creates the cache database at the given path. Entries older
// than ttl are treated as missing; a ttl of zero keeps entries forever.
func Open(dbPath string, ttl time.Duration) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetAnswer returns the cached answer for key. ok is false when the key is
// unknown or its entry has expired.
func (c *Cache) GetAnswer(key string) (string, bool, error) {
	var answer string
	var createdAt int64
	err := c.db.QueryRow("SELECT answer, created_at FROM answers WHERE request_key = ?", key).
		Scan(&answer, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if c.expired(createdAt) {
		return "", false, nil
	}

	_, _ = c.db.Exec("UPDATE answers SET hits = hits + 1 WHERE request_key = ?", key)
	return answer, true, nil
}

// PutAnswer stores answer under key, replacing any previous entry.
func (c *Cache) PutAnswer(key, answer string) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO answers (request_key, answer, created_at, hits)
		VALUES (?, ?, ?, 0)`, key, answer, c.now().Unix())
	return err
}

// Prune deletes expired entries and returns how many were removed.
func (c *Cache) Prune() (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).Unix()
	res, err := c.db.Exec("DELETE FROM answers WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int
	Hits    int
}

// Stats returns the entry count and total hits recorded.
func (c *Cache) Stats() (Stats, error) {
	var s Stats
	err := c.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(hits), 0) FROM answers").Scan(&s.Entries, &s.Hits)
	return s, err
}

func (c *Cache) expired(createdAt int64) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(time.Unix(createdAt, 0)) > c.ttl
}
