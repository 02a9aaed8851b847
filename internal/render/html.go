// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pdiddy/figshare-search/internal/results"
	"github.com/pdiddy/figshare-search/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds the parsed card templates. Record text is always
// inserted through html/template, so markup in titles or descriptions is
// escaped rather than interpreted.
var Templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type resultsView struct {
	Cards     []results.Card
	NoResults string
}

type documentView struct {
	Title   string
	Results template.HTML
}

// HTMLFragment renders the results container for set.
func HTMLFragment(set []types.SearchResult, cfg types.RenderConfig) (template.HTML, error) {
	var buf bytes.Buffer
	view := resultsView{Cards: results.Cards(set, limit(cfg)), NoResults: results.NoResults}
	if err := Templates.ExecuteTemplate(&buf, "results", view); err != nil {
		return "", fmt.Errorf("rendering results: %w", err)
	}
	// Safe: produced by html/template above.
	return template.HTML(buf.String()), nil
}

// HTMLDocument writes a standalone HTML page listing set.
func HTMLDocument(w io.Writer, set []types.SearchResult, cfg types.RenderConfig, title string) error {
	frag, err := HTMLFragment(set, cfg)
	if err != nil {
		return err
	}
	if err := Templates.ExecuteTemplate(w, "document", documentView{Title: title, Results: frag}); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return nil
}
