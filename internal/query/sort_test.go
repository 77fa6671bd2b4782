package query

import (
	"math"
	"testing"

	"github.com/danielschneider22/bookreports/internal/review"
)

func TestSortDateNewestFirst(t *testing.T) {
	reviews := []review.Review{
		{Title: "a", Date: 100},
		{Title: "b", Date: 300},
		{Title: "c", Date: 200},
	}

	result := Sort(reviews, SortDate)

	want := []int64{300, 200, 100}
	for i, w := range want {
		if result[i].Date != w {
			t.Errorf("position %d: expected date %d, got %d", i, w, result[i].Date)
		}
	}
}

func TestSortRatingDescending(t *testing.T) {
	reviews := []review.Review{
		{Title: "three", Rating: "3"},
		{Title: "fourhalf", Rating: "4.5"},
		{Title: "junk", Rating: "abc"},
	}

	result := Sort(reviews, SortRating)

	if result[0].Title != "fourhalf" || result[1].Title != "three" || result[2].Title != "junk" {
		t.Errorf("expected [fourhalf three junk], got %v", titles(result))
	}
	// The malformed rating sorted last via the sentinel, not by luck.
	if !math.IsInf(result[2].Rating.Value(), -1) {
		t.Errorf("expected sentinel minimum for malformed rating")
	}
}

func TestSortAuthorByLastNameThenFirst(t *testing.T) {
	reviews := []review.Review{
		{Author: "Jane Mary Doe"},
		{Author: "Alice Doe"},
	}

	result := Sort(reviews, SortAuthor)

	// Last names tie ("Mary Doe" vs "Doe" do not - but "Doe" < "Mary Doe"),
	// so Alice Doe sorts first.
	if result[0].Author != "Alice Doe" || result[1].Author != "Jane Mary Doe" {
		t.Errorf("expected [Alice Doe, Jane Mary Doe], got [%s, %s]", result[0].Author, result[1].Author)
	}
}

func TestSortAuthorTieBreaksOnFirstName(t *testing.T) {
	reviews := []review.Review{
		{Author: "Jane Doe"},
		{Author: "Alice Doe"},
	}

	result := Sort(reviews, SortAuthor)

	if result[0].Author != "Alice Doe" || result[1].Author != "Jane Doe" {
		t.Errorf("expected first-name tie break, got [%s, %s]", result[0].Author, result[1].Author)
	}
}

func TestSortAuthorMultiPartSurname(t *testing.T) {
	reviews := []review.Review{
		{Author: "Gabriel Garcia Marquez"},
		{Author: "Isabel Allende"},
	}

	result := Sort(reviews, SortAuthor)

	// "Allende" < "Garcia Marquez" by last name.
	if result[0].Author != "Isabel Allende" {
		t.Errorf("expected Isabel Allende first, got %s", result[0].Author)
	}
}

func TestSortAuthorDegenerateNames(t *testing.T) {
	reviews := []review.Review{
		{Author: "Plato"},
		{Author: ""},
		{Author: "Jane Austen"},
	}

	// Must not panic; single-token and empty authors compare with an
	// empty last name.
	result := Sort(reviews, SortAuthor)

	if len(result) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(result))
	}
	// Empty last names sort before "Austen".
	if result[2].Author != "Jane Austen" {
		t.Errorf("expected Jane Austen last, got %v", result[2].Author)
	}
}

func TestSortGenreAscending(t *testing.T) {
	reviews := []review.Review{
		{Genre: "Scifi"},
		{Genre: "Romance"},
		{Genre: "Fantasy"},
	}

	result := Sort(reviews, SortGenre)

	if result[0].Genre != "Fantasy" || result[1].Genre != "Romance" || result[2].Genre != "Scifi" {
		t.Errorf("expected ascending genres, got %v", []string{result[0].Genre, result[1].Genre, result[2].Genre})
	}
}

func TestSortStable(t *testing.T) {
	reviews := []review.Review{
		{Title: "first", Date: 100},
		{Title: "second", Date: 100},
		{Title: "third", Date: 100},
	}

	result := Sort(reviews, SortDate)

	// Equal keys keep their incoming order.
	if result[0].Title != "first" || result[1].Title != "second" || result[2].Title != "third" {
		t.Errorf("stable sort violated: got %v", titles(result))
	}
}

func TestSortModeString(t *testing.T) {
	tests := []struct {
		mode SortMode
		want string
	}{
		{SortDate, "date"},
		{SortRating, "rating"},
		{SortAuthor, "author"},
		{SortGenre, "genre"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("SortMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestSortModeNextCycles(t *testing.T) {
	m := SortDate
	seen := map[SortMode]bool{m: true}
	for i := 0; i < 3; i++ {
		m = m.Next()
		if seen[m] {
			t.Fatalf("mode %v repeated before cycle completed", m)
		}
		seen[m] = true
	}
	if m.Next() != SortDate {
		t.Errorf("expected cycle back to date, got %v", m.Next())
	}
}
