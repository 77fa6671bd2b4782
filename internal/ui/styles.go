package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorStar      = lipgloss.Color("220") // Gold
)

// HeaderStyle for the title line.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// TaglineStyle for the subtitle under the header.
var TaglineStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// SelectedCard style for the highlighted review.
var SelectedCard = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalCard style for unselected reviews.
var NormalCard = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// StarStyle for rating glyphs.
var StarStyle = lipgloss.NewStyle().
	Foreground(colorStar)

// TitleStyle for book titles.
var TitleStyle = lipgloss.NewStyle().
	Bold(true)

// AuthorStyle for author names.
var AuthorStyle = lipgloss.NewStyle().
	Foreground(colorSecondary)

// BodyStyle for review text.
var BodyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252"))

// AttributionStyle for the reviewer and date lines.
var AttributionStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// MenuTitle style for the filter menu heading.
var MenuTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// MenuItem style for filter menu entries.
var MenuItem = lipgloss.NewStyle().
	Padding(0, 1)

// MenuSelected style for the highlighted filter menu entry.
var MenuSelected = lipgloss.NewStyle().
	Bold(true).
	Background(colorPrimary).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// SearchBar style for the search input line.
var SearchBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)
