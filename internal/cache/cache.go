// Package cache mirrors the most recent review snapshot into a local
// SQLite database so the UI can render immediately on startup, before
// the first live snapshot arrives.
//
// The cache holds exactly one snapshot. Replace swaps the whole
// contents in a single transaction; there is no incremental update,
// matching the full-replace semantics of the subscription.
package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/danielschneider22/bookreports/internal/review"
)

// Cache is the local snapshot mirror. Concrete type, not an interface;
// callers treat it as optional and fall back to an empty view when it
// is unavailable.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at path. Tables are created
// if missing. ":memory:" is supported for tests.
func Open(path string) (*Cache, error) {
	connStr := path
	if path == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}

	return c, nil
}

func (c *Cache) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reviews (
		username    TEXT NOT NULL,
		title       TEXT NOT NULL,
		typed_title TEXT,
		author      TEXT,
		genre       TEXT,
		rating      TEXT,
		image       TEXT,
		date        INTEGER,
		body        TEXT,
		PRIMARY KEY (username, title)
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_date ON reviews(date DESC);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Replace swaps the cached snapshot for the given reviews in one
// transaction. The previous contents are discarded entirely.
func (c *Cache) Replace(reviews []review.Review) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback is a no-op after commit.
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM reviews"); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO reviews (username, title, typed_title, author, genre, rating, image, date, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(username, title) DO UPDATE SET
			typed_title = excluded.typed_title,
			author = excluded.author,
			genre = excluded.genre,
			rating = excluded.rating,
			image = excluded.image,
			date = excluded.date,
			body = excluded.body
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range reviews {
		if _, err := stmt.Exec(
			r.Username,
			r.Title,
			r.TypedTitle,
			r.Author,
			r.Genre,
			string(r.Rating),
			r.Image,
			r.Date,
			r.Body,
		); err != nil {
			return fmt.Errorf("insert review %q/%q: %w", r.Username, r.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load returns the cached snapshot. Order carries no meaning; callers
// sort for display like any other snapshot.
func (c *Cache) Load() ([]review.Review, error) {
	rows, err := c.db.Query(`
		SELECT username, title, typed_title, author, genre, rating, image, date, body
		FROM reviews
	`)
	if err != nil {
		return nil, fmt.Errorf("query cache: %w", err)
	}
	defer rows.Close()

	var reviews []review.Review
	for rows.Next() {
		var r review.Review
		var rating string
		if err := rows.Scan(
			&r.Username,
			&r.Title,
			&r.TypedTitle,
			&r.Author,
			&r.Genre,
			&rating,
			&r.Image,
			&r.Date,
			&r.Body,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		r.Rating = review.Rating(rating)
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return reviews, nil
}

// Count returns the number of cached reviews.
func (c *Cache) Count() (int, error) {
	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM reviews").Scan(&count); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
