// Package state owns the interactive view state: the search term, the
// sort mode, and the facet filter selections. The controller is plain
// data mutated only from the UI event loop; every mutation is followed
// by a recomputation of the derived view from the current snapshot.
package state

import "github.com/danielschneider22/bookreports/internal/query"

// Facet names one independently toggleable filter dimension.
type Facet int

const (
	FacetGenre Facet = iota
	FacetAuthor
	FacetUsername
)

// Controller holds the three pieces of view state.
type Controller struct {
	term    string
	sort    query.SortMode
	filters query.Filters
	seeded  bool
}

// New returns a controller with the default state: no search term, no
// filters, sorted by date.
func New() *Controller {
	return &Controller{sort: query.SortDate}
}

// SearchTerm returns the current search text.
func (c *Controller) SearchTerm() string {
	return c.term
}

// SetSearchTerm replaces the search text unconditionally.
func (c *Controller) SetSearchTerm(term string) {
	c.term = term
}

// SortMode returns the current sort mode.
func (c *Controller) SortMode() query.SortMode {
	return c.sort
}

// SetSortMode replaces the sort mode unconditionally.
func (c *Controller) SetSortMode(mode query.SortMode) {
	c.sort = mode
}

// Filters returns a copy of the current facet selections. The copy
// keeps the engine's inputs stable while the controller mutates.
func (c *Controller) Filters() query.Filters {
	return query.Filters{
		Genre:    append([]string(nil), c.filters.Genre...),
		Author:   append([]string(nil), c.filters.Author...),
		Username: append([]string(nil), c.filters.Username...),
	}
}

// Toggle flips membership of value in the facet's selection: removes
// it when present, adds it when absent. Toggling twice restores the
// original membership.
func (c *Controller) Toggle(facet Facet, value string) {
	switch facet {
	case FacetGenre:
		c.filters.Genre = toggleValue(c.filters.Genre, value)
	case FacetAuthor:
		c.filters.Author = toggleValue(c.filters.Author, value)
	case FacetUsername:
		c.filters.Username = toggleValue(c.filters.Username, value)
	}
}

// SeedReviewer restricts the initial view to one reviewer. Applied at
// most once per session, before any user interaction; later calls and
// empty usernames are no-ops, so arriving snapshots never re-seed.
func (c *Controller) SeedReviewer(username string) {
	if username == "" || c.seeded {
		return
	}
	c.filters.Username = []string{username}
	c.seeded = true
}

// Params bundles the current state for one derivation of the view.
func (c *Controller) Params() query.Params {
	return query.Params{
		Term:    c.term,
		Filters: c.Filters(),
		Sort:    c.sort,
	}
}

func toggleValue(vals []string, v string) []string {
	for i, existing := range vals {
		if existing == v {
			return append(vals[:i:i], vals[i+1:]...)
		}
	}
	return append(vals, v)
}
