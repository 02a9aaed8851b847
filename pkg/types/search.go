// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for figshare-search.
// SearchResult mirrors one element of the figshare article search response;
// the config structs group the settings each component reads.
package types

// SearchResult is one record returned by the figshare article search API.
// Any field may be absent in the response; absent fields decode to "".
// Records are treated as immutable once decoded.
type SearchResult struct {
	// ID is the figshare article identifier. Not required to be unique
	// within a result set.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is the article title as returned by the API.
	Title string `json:"title" yaml:"title"`

	// Description is the article abstract or description, often HTML.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// PublishedDate is the publication timestamp, kept verbatim.
	PublishedDate string `json:"published_date,omitempty" yaml:"published_date,omitempty"`

	// URL is the link target for the record.
	URL string `json:"url" yaml:"url"`

	// DOI is the article DOI, when figshare returns one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// DefinedTypeName is the figshare item type (dataset, figure, ...).
	DefinedTypeName string `json:"defined_type_name,omitempty" yaml:"defined_type_name,omitempty"`
}
