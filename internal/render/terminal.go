// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/figshare-search/internal/results"
	"github.com/pdiddy/figshare-search/pkg/types"
)

// Styles contains the lipgloss styles for terminal cards.
type Styles struct {
	Card        lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	Date        lipgloss.Style
	Link        lipgloss.Style
	Placeholder lipgloss.Style
}

// NewStyles returns the default terminal card styles.
func NewStyles() Styles {
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Description: lipgloss.NewStyle(),
		Date:        lipgloss.NewStyle().Faint(true),
		Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Placeholder: lipgloss.NewStyle().Faint(true).Italic(true),
	}
}

// Terminal renders set as bordered cards. width is the card width
// including the border; 0 leaves cards unwrapped.
func Terminal(set []types.SearchResult, cfg types.RenderConfig, styles Styles, width int) string {
	if len(set) == 0 {
		return styles.Placeholder.Render(results.NoResults)
	}

	card := styles.Card
	if width > 2 {
		card = card.Width(width - 2)
	}

	blocks := make([]string, 0, len(set))
	for _, c := range results.Cards(set, limit(cfg)) {
		body := lipgloss.JoinVertical(lipgloss.Left,
			styles.Title.Render(c.Title),
			styles.Description.Render(c.Description),
			styles.Date.Render("Published: "+c.Published),
			styles.Link.Render(c.URL),
		)
		blocks = append(blocks, card.Render(body))
	}
	return strings.Join(blocks, "\n")
}
