package review

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestFlatten(t *testing.T) {
	col := Collection{
		"alice": {
			"Dune": {Title: "Dune", Author: "Frank Herbert", Username: "alice"},
			"Emma": {Title: "Emma", Author: "Jane Austen", Username: "alice"},
		},
		"bob": {
			"Dune": {Title: "Dune", Author: "Frank Herbert", Username: "bob"},
		},
	}

	reviews := Flatten(col)

	if len(reviews) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(reviews))
	}

	// Every (username, title) pair appears exactly once, fields untouched.
	seen := make(map[string]Review)
	for _, r := range reviews {
		seen[r.Username+"/"+r.Title] = r
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct (username, title) pairs, got %d", len(seen))
	}
	if r := seen["alice/Emma"]; r.Author != "Jane Austen" {
		t.Errorf("expected Jane Austen, got %q", r.Author)
	}
}

func TestFlattenEmpty(t *testing.T) {
	if got := Flatten(nil); got == nil || len(got) != 0 {
		t.Errorf("nil collection: expected empty slice, got %v", got)
	}
	if got := Flatten(Collection{}); got == nil || len(got) != 0 {
		t.Errorf("empty collection: expected empty slice, got %v", got)
	}
	if got := Flatten(Collection{"alice": {}}); len(got) != 0 {
		t.Errorf("user with no books: expected empty slice, got %v", got)
	}
}

func TestRatingValue(t *testing.T) {
	tests := []struct {
		rating Rating
		want   float64
	}{
		{"3", 3},
		{"4.5", 4.5},
		{" 2 ", 2},
		{"0", 0},
	}
	for _, tt := range tests {
		if got := tt.rating.Value(); got != tt.want {
			t.Errorf("Rating(%q).Value() = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestRatingValueMalformed(t *testing.T) {
	for _, r := range []Rating{"abc", "", "4.5 stars"} {
		got := r.Value()
		if !math.IsInf(got, -1) {
			t.Errorf("Rating(%q).Value() = %v, want -Inf", r, got)
		}
	}
}

func TestRatingUnmarshal(t *testing.T) {
	var r struct {
		Rating Rating `json:"rating"`
	}

	if err := json.Unmarshal([]byte(`{"rating": "4.5"}`), &r); err != nil {
		t.Fatalf("unmarshal string rating: %v", err)
	}
	if r.Rating != "4.5" {
		t.Errorf("string rating: got %q, want %q", r.Rating, "4.5")
	}

	if err := json.Unmarshal([]byte(`{"rating": 3}`), &r); err != nil {
		t.Fatalf("unmarshal numeric rating: %v", err)
	}
	if r.Rating.Value() != 3 {
		t.Errorf("numeric rating: got %v, want 3", r.Rating.Value())
	}

	if err := json.Unmarshal([]byte(`{"rating": null}`), &r); err != nil {
		t.Fatalf("unmarshal null rating: %v", err)
	}
	if r.Rating != "" {
		t.Errorf("null rating: got %q, want empty", r.Rating)
	}
}

func TestUniqueValues(t *testing.T) {
	reviews := []Review{
		{Username: "Alice"},
		{Username: "alice"},
		{Username: "Bob"},
	}

	got := UniqueValues(reviews, FieldUsername)

	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %d: %v", len(got), got)
	}
	if got[0] != "alice" || got[1] != "bob" {
		t.Errorf("expected [alice bob] in first-seen order, got %v", got)
	}
}

func TestUniqueValuesFields(t *testing.T) {
	reviews := []Review{
		{Title: "Dune", Author: "Frank Herbert", Genre: "Scifi"},
		{Title: "Emma", Author: "Jane Austen", Genre: "Romance"},
		{Title: "dune", Author: "Frank Herbert", Genre: "scifi"},
	}

	if got := UniqueValues(reviews, FieldGenre); len(got) != 2 {
		t.Errorf("genre: expected 2 values, got %v", got)
	}
	if got := UniqueValues(reviews, FieldAuthor); len(got) != 2 {
		t.Errorf("author: expected 2 values, got %v", got)
	}
	if got := UniqueValues(reviews, FieldTitle); len(got) != 2 {
		t.Errorf("title: expected 2 values, got %v", got)
	}
}

func TestUniqueValuesEmpty(t *testing.T) {
	if got := UniqueValues(nil, FieldUsername); got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestFormatDate(t *testing.T) {
	ms := time.Date(2024, time.March, 9, 12, 0, 0, 0, time.Local).UnixMilli()
	got := FormatDate(ms)
	want := "March 9, 2024"
	if got != want {
		t.Errorf("FormatDate(%d) = %q, want %q", ms, got, want)
	}
}
