// Package ui provides the Bubble Tea terminal interface for browsing
// book reviews.
package ui

import "github.com/danielschneider22/bookreports/internal/review"

// SnapshotMsg is sent when the realtime database delivers a new full
// snapshot of the review collection. It entirely replaces the previous
// one.
type SnapshotMsg struct {
	Reviews []review.Review
}

// CacheLoaded is sent once at startup with the last locally cached
// snapshot. It is ignored if a live snapshot already arrived.
type CacheLoaded struct {
	Reviews []review.Review
	Err     error
}
