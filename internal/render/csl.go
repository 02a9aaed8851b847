package render

import (
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/figshare-search/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language)
// format. Field names follow the CSL-YAML schema so that output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID       string   `yaml:"id"`
	Type     string   `yaml:"type"`
	Title    string   `yaml:"title"`
	Abstract string   `yaml:"abstract,omitempty"`
	Issued   *CSLDate `yaml:"issued,omitempty"`
	DOI      string   `yaml:"DOI,omitempty"`
	URL      string   `yaml:"URL,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps figshare item types to CSL types. Anything else is an
// "article".
var cslTypes = map[string]string{
	"dataset":  "dataset",
	"figure":   "figure",
	"software": "software",
	"poster":   "speech",
	"thesis":   "thesis",
	"preprint": "article",
	"book":     "book",
	"report":   "report",
}

// CSL writes set as a CSL-YAML list, in order.
func CSL(w io.Writer, set []types.SearchResult) error {
	items := make([]CSLItem, len(set))
	for i, r := range set {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding CSL: %w", err)
	}
	return enc.Close()
}

func toCSLItem(r types.SearchResult) CSLItem {
	item := CSLItem{
		Type:     "article",
		Title:    r.Title,
		Abstract: r.Description,
		DOI:      r.DOI,
		URL:      r.URL,
	}
	if t, ok := cslTypes[r.DefinedTypeName]; ok {
		item.Type = t
	}

	switch {
	case r.DOI != "":
		item.ID = r.DOI
	case r.ID != 0:
		item.ID = fmt.Sprintf("figshare-%d", r.ID)
	default:
		item.ID = r.URL
	}

	if d, ok := parsePublished(r.PublishedDate); ok {
		item.Issued = &CSLDate{DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}}}
	}
	return item
}

// parsePublished reads the date part of a figshare timestamp
// ("2020-01-01T00:00:00Z" or "2020-01-01").
func parsePublished(s string) (time.Time, bool) {
	if len(s) < len("2006-01-02") {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
