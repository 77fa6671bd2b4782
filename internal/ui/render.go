package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/danielschneider22/bookreports/internal/review"
)

// cardHeight is the fixed number of lines one rendered review card
// occupies, including its trailing blank line.
const cardHeight = 7

// renderStars builds the star glyph row for a rating. Whole stars,
// plus a half star for a fractional part, plus the numeric value.
// A rating that fails coercion is shown as its raw text.
func renderStars(r review.Rating) string {
	v := r.Value()
	if math.IsInf(v, -1) {
		if strings.TrimSpace(string(r)) == "" {
			return "unrated"
		}
		return string(r)
	}

	full := int(v)
	if full < 0 {
		full = 0
	}
	if full > 10 {
		full = 10
	}

	stars := strings.Repeat("★", full)
	if v-float64(full) >= 0.5 {
		stars += "⯪"
	}
	return StarStyle.Render(stars) + fmt.Sprintf(" %.1f", v)
}

// renderCard renders one review as a fixed-height card.
func renderCard(r review.Review, selected, hideReviewer bool, width int) string {
	title := TitleStyle.Render(truncate(r.Title, width-4))
	author := AuthorStyle.Render(truncate(r.Author, width-4))

	bodyLines := wrapBody(r.Body, width-4, 2)

	attribution := review.FormatDate(r.Date)
	if !hideReviewer {
		attribution = "-- " + r.Username + "  ·  " + attribution
	}

	lines := []string{
		renderStars(r.Rating),
		title,
		author,
		bodyLines[0],
		bodyLines[1],
		AttributionStyle.Render(attribution),
	}

	style := NormalCard
	if selected {
		style = SelectedCard
	}
	return style.Width(width).Render(strings.Join(lines, "\n")) + "\n"
}

// wrapBody word-wraps text into exactly maxLines lines of at most
// width characters, padding with empty lines and ellipsizing overflow.
func wrapBody(text string, width, maxLines int) []string {
	if width < 8 {
		width = 8
	}

	words := strings.Fields(text)
	lines := make([]string, 0, maxLines)
	var line strings.Builder

	for _, w := range words {
		if line.Len() > 0 && line.Len()+1+len(w) > width {
			lines = append(lines, line.String())
			line.Reset()
			if len(lines) == maxLines {
				break
			}
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	if len(lines) < maxLines && line.Len() > 0 {
		lines = append(lines, line.String())
	}

	if len(lines) == maxLines && line.Len() > 0 {
		// Content was cut off.
		last := lines[maxLines-1]
		lines[maxLines-1] = truncate(last+"...", width)
	}

	for len(lines) < maxLines {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = BodyStyle.Render(lines[i])
	}
	return lines
}

func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		maxLen = 3
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
