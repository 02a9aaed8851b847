// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results holds the pure operations over a fetched result set:
// local substring filtering and conversion of records to display cards.
// Nothing here mutates the input slice.
package results

import (
	"strings"

	"github.com/pdiddy/figshare-search/pkg/types"
)

// Placeholder texts shown by every renderer.
const (
	NoResults     = "No results found."
	NoDescription = "No description available."
	UnknownDate   = "Unknown"
	Ellipsis      = "..."
)

// Haystack returns the lower-cased "title description" text a filter term
// is matched against. An absent description contributes "".
func Haystack(r types.SearchResult) string {
	return strings.ToLower(r.Title + " " + r.Description)
}

// Filter returns the records whose haystack contains term as a contiguous,
// case-insensitive substring, in their original order. An empty term
// returns a copy of the full set: it resets the view, it does not match
// nothing. The result is always a fresh slice.
func Filter(set []types.SearchResult, term string) []types.SearchResult {
	term = strings.ToLower(term)
	out := make([]types.SearchResult, 0, len(set))
	if term == "" {
		return append(out, set...)
	}
	for _, r := range set {
		if strings.Contains(Haystack(r), term) {
			out = append(out, r)
		}
	}
	return out
}

// Card is the display form of one record.
type Card struct {
	Title       string
	Description string
	Published   string
	URL         string
}

// Truncate returns the first limit runes of s followed by the ellipsis
// marker. The marker is appended even when s is shorter than limit. There
// is no word-boundary or grapheme handling.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + Ellipsis
}

// NewCard converts r to a card, applying the description and date
// placeholders and truncating the description to limit runes.
func NewCard(r types.SearchResult, limit int) Card {
	c := Card{
		Title:       r.Title,
		Description: NoDescription,
		Published:   UnknownDate,
		URL:         r.URL,
	}
	if r.Description != "" {
		c.Description = Truncate(r.Description, limit)
	}
	if r.PublishedDate != "" {
		c.Published = r.PublishedDate
	}
	return c
}

// Cards converts set to cards in order.
func Cards(set []types.SearchResult, limit int) []Card {
	cards := make([]Card, 0, len(set))
	for _, r := range set {
		cards = append(cards, NewCard(r, limit))
	}
	return cards
}
