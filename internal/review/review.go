// Package review defines the book review data model and the
// transformations from the nested per-user wire format into the flat
// sequence the rest of the application consumes.
//
// The hosted database stores reviews as username -> book title -> review.
// Everything downstream (filtering, sorting, rendering) works on a flat
// []Review, so Flatten is the first stage of every refresh.
//
// # Error philosophy
//
// Review fields arrive from a shared database that performs no write
// validation. Malformed values degrade silently (a rating that isn't a
// number sorts last, an author without a surname compares as an empty
// surname) - nothing in this package returns an error or panics on bad
// field data.
package review

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Review is a single book review as stored in the shared collection.
// Immutable once read; a (Username, Title) pair identifies a review
// within one snapshot.
type Review struct {
	Title      string `json:"title"`
	TypedTitle string `json:"typedTitle"`
	Author     string `json:"author"`
	Genre      string `json:"genre"`
	Rating     Rating `json:"rating"`
	Image      string `json:"image"`
	Date       int64  `json:"date"`
	Username   string `json:"username"`
	Body       string `json:"review"`
}

// Time returns the review timestamp. Date is milliseconds since epoch.
func (r Review) Time() time.Time {
	return time.UnixMilli(r.Date)
}

// Rating holds the raw rating value as entered. The wire format stores
// it as either a JSON number or a quoted string, so it is kept as text
// and coerced on demand.
type Rating string

// UnmarshalJSON accepts both `4.5` and `"4.5"`.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Rating(s)
		return nil
	}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	*r = Rating(data)
	return nil
}

// MarshalJSON writes the rating back out as a string, preserving the
// raw value.
func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// Value coerces the rating to a float for comparison and display.
// A value that fails coercion yields negative infinity so malformed
// ratings sort below every real one instead of aborting the sort.
func (r Rating) Value() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(r)), 64)
	if err != nil {
		return math.Inf(-1)
	}
	return f
}

// Collection is the nested wire structure: username -> book title -> Review.
// Iteration order of either level carries no meaning; ordering is always
// applied downstream by an explicit sort.
type Collection map[string]map[string]Review

// Flatten turns the nested collection into a flat sequence with exactly
// one entry per (username, title) pair, fields untouched. A nil or
// empty collection yields an empty slice. Output order follows map
// iteration and must never be relied on.
func Flatten(c Collection) []Review {
	reviews := make([]Review, 0, len(c))
	for _, books := range c {
		for _, r := range books {
			reviews = append(reviews, r)
		}
	}
	return reviews
}

// FormatDate renders a review timestamp as a long-form date,
// e.g. "March 9, 2024".
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).Format("January 2, 2006")
}
