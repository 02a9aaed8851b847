// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a result sequence into output. Every function is a
// pure function of its input: it draws from scratch, preserves order, and
// shows the "No results found." placeholder for an empty sequence.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/figshare-search/internal/results"
	"github.com/pdiddy/figshare-search/pkg/types"
)

// Format names an output format accepted by Write.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSL  Format = "csl"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatHTML, FormatJSON, FormatYAML, FormatCSL:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q: want text, html, json, yaml, or csl", s)
	}
}

// Write renders set to w in format f. title labels the HTML document.
func Write(w io.Writer, f Format, set []types.SearchResult, cfg types.RenderConfig, title string) error {
	switch f {
	case FormatHTML:
		return HTMLDocument(w, set, cfg, title)
	case FormatJSON:
		return JSON(w, set)
	case FormatYAML:
		return YAML(w, set)
	case FormatCSL:
		return CSL(w, set)
	default:
		Text(w, set, cfg)
		return nil
	}
}

func limit(cfg types.RenderConfig) int {
	if cfg.DescriptionLimit <= 0 {
		return types.DefaultDescriptionLimit
	}
	return cfg.DescriptionLimit
}

// Text writes set as plain-text cards separated by blank lines.
func Text(w io.Writer, set []types.SearchResult, cfg types.RenderConfig) {
	if len(set) == 0 {
		fmt.Fprintln(w, results.NoResults)
		return
	}
	for i, c := range results.Cards(set, limit(cfg)) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", c.Title)
		fmt.Fprintf(w, "  %s\n", c.Description)
		fmt.Fprintf(w, "  Published: %s\n", c.Published)
		fmt.Fprintf(w, "  %s\n", c.URL)
	}
}

// JSON writes set as an indented JSON array. An empty set is "[]".
func JSON(w io.Writer, set []types.SearchResult) error {
	if set == nil {
		set = []types.SearchResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(set)
}

// YAML writes set as a YAML sequence.
func YAML(w io.Writer, set []types.SearchResult) error {
	if set == nil {
		set = []types.SearchResult{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
