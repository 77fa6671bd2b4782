package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielschneider22/bookreports/internal/review"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpenCreatesFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "bookreports-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "test.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestReplaceAndLoad(t *testing.T) {
	c := newTestCache(t)

	reviews := []review.Review{
		{
			Username:   "alice",
			Title:      "Dune",
			TypedTitle: "dune",
			Author:     "Frank Herbert",
			Genre:      "Scifi",
			Rating:     "4.5",
			Image:      "https://example.com/dune.jpg",
			Date:       1700000000000,
			Body:       "A classic.",
		},
		{
			Username: "bob",
			Title:    "Emma",
			Author:   "Jane Austen",
			Genre:    "Romance",
			Rating:   "abc",
			Date:     1710000000000,
		},
	}

	if err := c.Replace(reviews); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	loaded, err := c.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(loaded))
	}

	byKey := make(map[string]review.Review)
	for _, r := range loaded {
		byKey[r.Username+"/"+r.Title] = r
	}

	got := byKey["alice/Dune"]
	if got.Author != "Frank Herbert" || got.Genre != "Scifi" || got.Body != "A classic." {
		t.Errorf("fields not preserved: %+v", got)
	}
	if got.Date != 1700000000000 {
		t.Errorf("date not preserved: %d", got.Date)
	}

	// The raw rating text survives the roundtrip, malformed or not.
	if byKey["alice/Dune"].Rating != "4.5" {
		t.Errorf("rating not preserved: %q", byKey["alice/Dune"].Rating)
	}
	if byKey["bob/Emma"].Rating != "abc" {
		t.Errorf("malformed rating not preserved: %q", byKey["bob/Emma"].Rating)
	}
}

func TestReplaceIsFullReplace(t *testing.T) {
	c := newTestCache(t)

	first := []review.Review{
		{Username: "alice", Title: "Dune"},
		{Username: "alice", Title: "Emma"},
	}
	if err := c.Replace(first); err != nil {
		t.Fatalf("first Replace failed: %v", err)
	}

	second := []review.Review{
		{Username: "bob", Title: "Foundation"},
	}
	if err := c.Replace(second); err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}

	loaded, err := c.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected old snapshot discarded, got %d reviews", len(loaded))
	}
	if loaded[0].Username != "bob" || loaded[0].Title != "Foundation" {
		t.Errorf("unexpected review: %+v", loaded[0])
	}
}

func TestReplaceEmptySnapshot(t *testing.T) {
	c := newTestCache(t)

	if err := c.Replace([]review.Review{{Username: "alice", Title: "Dune"}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := c.Replace(nil); err != nil {
		t.Fatalf("Replace with empty snapshot failed: %v", err)
	}

	count, err := c.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty cache, got %d reviews", count)
	}
}
