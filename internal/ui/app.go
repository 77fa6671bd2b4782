package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielschneider22/bookreports/internal/query"
	"github.com/danielschneider22/bookreports/internal/review"
	"github.com/danielschneider22/bookreports/internal/state"
)

// Input modes.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeFilter
)

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT talk to the database or the cache. It
// receives snapshots via messages and recomputes the derived view
// from them plus the controller's state.
type App struct {
	ctrl      *state.Controller
	loadCache func() tea.Cmd
	limit     int // max reviews kept in the derived view, 0 = unlimited

	reviews   []review.Review // flat current snapshot
	derived   []review.Review // filtered + sorted view
	reviewers []string        // distinct usernames for the filter menu

	searchInput  textinput.Model
	mode         inputMode
	cursor       int
	filterCursor int
	width        int
	height       int
	ready        bool
	live         bool // a live snapshot has arrived; cache is stale
	err          error
}

// New creates the app. loadCache returns a Cmd that loads the last
// cached snapshot (nil to skip). limit caps the derived view length;
// 0 means unlimited.
func New(ctrl *state.Controller, loadCache func() tea.Cmd, limit int) App {
	ti := textinput.New()
	ti.Placeholder = "Search books..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.SetValue(ctrl.SearchTerm())

	return App{
		ctrl:        ctrl,
		loadCache:   loadCache,
		limit:       limit,
		searchInput: ti,
	}
}

// Init loads the cached snapshot for an instant first render.
func (a App) Init() tea.Cmd {
	if a.loadCache != nil {
		return a.loadCache()
	}
	return nil
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case SnapshotMsg:
		a.reviews = msg.Reviews
		a.live = true
		a.err = nil
		a.refresh()
		return a, nil

	case CacheLoaded:
		if msg.Err != nil {
			// Cache is best-effort; the live subscription still works.
			return a, nil
		}
		if !a.live {
			a.reviews = msg.Reviews
			a.refresh()
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	}
	return a.handleBrowseKey(msg)
}

func (a App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.ctrl.SearchTerm())
		a.searchInput.Focus()
		return a, textinput.Blink

	case "s":
		a.ctrl.SetSortMode(a.ctrl.SortMode().Next())
		a.refresh()

	case "f":
		if len(a.reviewers) > 0 {
			a.mode = modeFilter
			if a.filterCursor >= len(a.reviewers) {
				a.filterCursor = len(a.reviewers) - 1
			}
		}

	case "esc":
		if a.ctrl.SearchTerm() != "" {
			a.ctrl.SetSearchTerm("")
			a.searchInput.SetValue("")
			a.refresh()
		}

	case "j", "down":
		if a.cursor < len(a.derived)-1 {
			a.cursor++
		}

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}

	case "g", "home":
		a.cursor = 0

	case "G", "end":
		if len(a.derived) > 0 {
			a.cursor = len(a.derived) - 1
		}
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.mode = modeBrowse
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.ctrl.SetSearchTerm(a.searchInput.Value())
	a.refresh()
	return a, cmd
}

func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f", "q":
		a.mode = modeBrowse

	case "j", "down":
		if a.filterCursor < len(a.reviewers)-1 {
			a.filterCursor++
		}

	case "k", "up":
		if a.filterCursor > 0 {
			a.filterCursor--
		}

	case " ", "enter":
		if a.filterCursor < len(a.reviewers) {
			a.ctrl.Toggle(state.FacetUsername, a.reviewers[a.filterCursor])
			a.refresh()
		}
	}

	return a, nil
}

// refresh recomputes the derived view and filter menu from the current
// snapshot and controller state. Called after every state or snapshot
// change; the derivation is pure and cheap, so there is no memoization
// or debouncing.
func (a *App) refresh() {
	a.derived = query.Apply(a.reviews, a.ctrl.Params())
	if a.limit > 0 && len(a.derived) > a.limit {
		a.derived = a.derived[:a.limit]
	}
	a.reviewers = review.UniqueValues(a.reviews, review.FieldUsername)

	if a.cursor >= len(a.derived) {
		a.cursor = len(a.derived) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.filterCursor >= len(a.reviewers) && len(a.reviewers) > 0 {
		a.filterCursor = len(a.reviewers) - 1
	}
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render(a.headerText()) + "\n")
	b.WriteString(TaglineStyle.Render("Discover the best books and share your thoughts.") + "\n")

	if a.mode == modeSearch {
		b.WriteString(SearchBar.Width(a.width).Render(a.searchInput.View()) + "\n")
	} else if term := a.ctrl.SearchTerm(); term != "" {
		b.WriteString(SearchBar.Width(a.width).Render("search: "+term+"  (esc to clear)") + "\n")
	}

	if a.mode == modeFilter {
		b.WriteString(a.renderFilterMenu())
	} else {
		b.WriteString(a.renderShelf())
	}

	if a.err != nil {
		b.WriteString(ErrorStyle.Width(a.width).Render("Error: "+a.err.Error()) + "\n")
	}

	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a App) headerText() string {
	filters := a.ctrl.Filters()
	if len(filters.Username) == 1 {
		return filters.Username[0] + "'s Book Reviews"
	}
	return "Book Reviews"
}

// renderShelf renders the visible window of review cards around the
// cursor.
func (a App) renderShelf() string {
	if len(a.derived) == 0 {
		if a.mode == modeSearch || a.ctrl.SearchTerm() != "" {
			return BodyStyle.Render("  No books match.") + "\n"
		}
		return BodyStyle.Render("  No reviews yet.") + "\n"
	}

	contentHeight := a.height - 5 // header, tagline, status, margins
	visible := contentHeight / cardHeight
	if visible < 1 {
		visible = 1
	}

	offset := 0
	if a.cursor >= visible {
		offset = a.cursor - visible + 1
	}
	end := offset + visible
	if end > len(a.derived) {
		end = len(a.derived)
	}

	hideReviewer := len(a.ctrl.Filters().Username) == 1

	var b strings.Builder
	for i := offset; i < end; i++ {
		b.WriteString(renderCard(a.derived[i], i == a.cursor, hideReviewer, a.width))
	}
	return b.String()
}

func (a App) renderFilterMenu() string {
	selected := make(map[string]bool)
	for _, u := range a.ctrl.Filters().Username {
		selected[u] = true
	}

	var b strings.Builder
	b.WriteString(MenuTitle.Render("Reviewer") + "\n")
	for i, name := range a.reviewers {
		checkbox := "[ ]"
		if selected[name] {
			checkbox = "[✓]"
		}
		line := checkbox + " " + name
		if i == a.filterCursor {
			b.WriteString(MenuSelected.Render(line) + "\n")
		} else {
			b.WriteString(MenuItem.Render(line) + "\n")
		}
	}
	b.WriteString(AttributionStyle.Render("  [space] toggle  [esc] close") + "\n")
	return b.String()
}

func (a App) renderStatusBar() string {
	var hint string
	switch a.mode {
	case modeSearch:
		hint = "[enter] done  [esc] close"
	case modeFilter:
		hint = "[space] toggle  [esc] close"
	default:
		hint = "[/] search  [s] sort  [f] filters  [↑↓] navigate  [q] quit"
	}

	status := fmt.Sprintf("  %d/%d books  ·  sort: %s  ·  %s",
		len(a.derived), len(a.reviews), a.ctrl.SortMode(), hint)
	return StatusBar.Width(a.width).Render(status)
}

// Derived returns the current derived view (for testing).
func (a App) Derived() []review.Review {
	return a.derived
}

// Reviewers returns the filter menu values (for testing).
func (a App) Reviewers() []string {
	return a.reviewers
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}
