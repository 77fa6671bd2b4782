package review

import "strings"

// Field selects one of the string-valued review fields for value
// extraction. A closed enum of accessors instead of reflection keeps
// the lookup type safe.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
	FieldGenre
	FieldUsername
)

func (f Field) value(r Review) string {
	switch f {
	case FieldTitle:
		return r.Title
	case FieldAuthor:
		return r.Author
	case FieldGenre:
		return r.Genre
	case FieldUsername:
		return r.Username
	}
	return ""
}

// UniqueValues returns the distinct values of a field across reviews,
// lowercased before dedup, in first-seen order. Used to build the
// reviewer filter menu; deterministic given a deterministic input order.
func UniqueValues(reviews []Review, f Field) []string {
	seen := make(map[string]bool, len(reviews))
	vals := make([]string, 0, len(reviews))
	for _, r := range reviews {
		v := strings.ToLower(f.value(r))
		if seen[v] {
			continue
		}
		seen[v] = true
		vals = append(vals, v)
	}
	return vals
}
