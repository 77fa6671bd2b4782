package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielschneider22/bookreports/internal/review"
)

// SortMode selects which comparator orders the derived view.
type SortMode int

const (
	SortDate SortMode = iota // most recent first (default)
	SortRating
	SortAuthor
	SortGenre
)

// String returns the mode name shown in the UI.
func (m SortMode) String() string {
	switch m {
	case SortDate:
		return "date"
	case SortRating:
		return "rating"
	case SortAuthor:
		return "author"
	case SortGenre:
		return "genre"
	}
	return "unknown"
}

// Next cycles to the following sort mode, wrapping after genre.
func (m SortMode) Next() SortMode {
	switch m {
	case SortDate:
		return SortRating
	case SortRating:
		return SortAuthor
	case SortAuthor:
		return SortGenre
	default:
		return SortDate
	}
}

// Sort returns a copy of reviews ordered by the selected mode. The
// sort is stable; ties keep their incoming relative order. An unknown
// mode returns the copy unsorted.
func Sort(reviews []review.Review, mode SortMode) []review.Review {
	out := make([]review.Review, len(reviews))
	copy(out, reviews)

	switch mode {
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date > out[j].Date
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating.Value() > out[j].Rating.Value()
		})
	case SortAuthor:
		// Collators carry internal buffers, so each sort gets its own.
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return compareAuthors(c, out[i].Author, out[j].Author) < 0
		})
	case SortGenre:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Genre, out[j].Genre) < 0
		})
	}

	return out
}

// compareAuthors orders "First [Middle ...] Last" names by last name,
// then first name. The first whitespace-separated token is the first
// name; the remaining tokens, rejoined, form the last name. That keeps
// multi-part surnames together and degrades a single-token or empty
// author to an empty last name rather than failing.
func compareAuthors(c *collate.Collator, a, b string) int {
	aFirst, aLast := splitAuthor(a)
	bFirst, bLast := splitAuthor(b)

	if n := c.CompareString(aLast, bLast); n != 0 {
		return n
	}
	return c.CompareString(aFirst, bFirst)
}

func splitAuthor(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
