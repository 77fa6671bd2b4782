// Package query implements the pure pipeline that derives the
// on-screen review list: text search, facet filters, and sorting.
// All functions are simple: []review.Review in, []review.Review out.
// No side effects, and no stage mutates its input.
package query

import (
	"strings"

	"github.com/danielschneider22/bookreports/internal/review"
)

// Filters holds the three independent facet selections. A review
// passes a facet when the facet's list is empty (no restriction) or
// the review's field value is a member. Facets combine with AND.
type Filters struct {
	Genre    []string
	Author   []string
	Username []string
}

// Params are the inputs to one derivation of the view.
type Params struct {
	Term    string
	Filters Filters
	Sort    SortMode
}

// Apply runs the full pipeline: search, facet filters, then sort.
// The result is a new slice; the input is left untouched.
func Apply(reviews []review.Review, p Params) []review.Review {
	out := Search(reviews, p.Term)
	out = ByGenre(out, p.Filters.Genre)
	out = ByAuthor(out, p.Filters.Author)
	out = ByReviewer(out, p.Filters.Username)
	return Sort(out, p.Sort)
}

// Search keeps reviews whose title, author, or genre contains the
// trimmed term as a case-insensitive substring. An empty or
// whitespace-only term keeps everything.
func Search(reviews []review.Review, term string) []review.Review {
	if strings.TrimSpace(term) == "" {
		return reviews
	}
	needle := strings.ToLower(term)
	result := make([]review.Review, 0, len(reviews))
	for _, r := range reviews {
		if strings.Contains(strings.ToLower(r.Title), needle) ||
			strings.Contains(strings.ToLower(r.Author), needle) ||
			strings.Contains(strings.ToLower(r.Genre), needle) {
			result = append(result, r)
		}
	}
	return result
}

// ByGenre keeps reviews whose genre is in genres. Empty genres keeps
// everything.
func ByGenre(reviews []review.Review, genres []string) []review.Review {
	return byMember(reviews, genres, func(r review.Review) string { return r.Genre })
}

// ByAuthor keeps reviews whose author is in authors. Empty authors
// keeps everything.
func ByAuthor(reviews []review.Review, authors []string) []review.Review {
	return byMember(reviews, authors, func(r review.Review) string { return r.Author })
}

// ByReviewer keeps reviews whose username is in usernames. Empty
// usernames keeps everything.
func ByReviewer(reviews []review.Review, usernames []string) []review.Review {
	return byMember(reviews, usernames, func(r review.Review) string { return r.Username })
}

func byMember(reviews []review.Review, vals []string, field func(review.Review) string) []review.Review {
	if len(vals) == 0 {
		return reviews
	}

	allowed := make(map[string]bool, len(vals))
	for _, v := range vals {
		allowed[v] = true
	}

	result := make([]review.Review, 0, len(reviews))
	for _, r := range reviews {
		if allowed[field(r)] {
			result = append(result, r)
		}
	}
	return result
}
