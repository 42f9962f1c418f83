package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "answers.db"), ttl)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutGetAnswer(t *testing.T) {
	c := openTestCache(t, 0)

	if _, ok, err := c.GetAnswer("missing"); err != nil || ok {
		t.Fatalf("GetAnswer(missing) = ok %v err %v, want miss", ok, err)
	}

	if err := c.PutAnswer("k1", "first"); err != nil {
		t.Fatalf("PutAnswer() error: %v", err)
	}
	if err := c.PutAnswer("k1", "second"); err != nil {
		t.Fatalf("PutAnswer() replace error: %v", err)
	}
	got, ok, err := c.GetAnswer("k1")
	if err != nil || !ok || got != "second" {
		t.Fatalf("GetAnswer(k1) = %q, %v, %v; want second", got, ok, err)
	}

	st, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if st.Entries != 1 || st.Hits != 1 {
		t.Fatalf("Stats() = %+v, want 1 entry 1 hit", st)
	}
}

func TestExpiryAndPrune(t *testing.T) {
	c := openTestCache(t, time.Hour)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	if err := c.PutAnswer("old", "stale"); err != nil {
		t.Fatalf("PutAnswer() error: %v", err)
	}
	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	if err := c.PutAnswer("new", "fresh"); err != nil {
		t.Fatalf("PutAnswer() error: %v", err)
	}

	c.now = func() time.Time { return base.Add(61 * time.Minute) }
	if _, ok, _ := c.GetAnswer("old"); ok {
		t.Fatal("GetAnswer(old) hit after TTL")
	}
	if _, ok, _ := c.GetAnswer("new"); !ok {
		t.Fatal("GetAnswer(new) missed inside TTL")
	}

	n, err := c.Prune()
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if n != 1 {
		t.Fatalf("Prune() = %d, want 1", n)
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	if got := DefaultPath(); got != filepath.Join("/tmp/xdg-cache", "ada", "answers.db") {
		t.Fatalf("DefaultPath() = %q", got)
	}
}
