// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records and configuration structs shared across
// the catalog, selector, and fetch stages.
package types

import "encoding/json"

// Book is one catalog record as returned by the Gutendex API. The remote
// schema is owned by the service; decoding ignores fields we do not use
// and tolerates records missing optional fields such as authors.
type Book struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Authors       []Author          `json:"authors"`
	Languages     []string          `json:"languages"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`

	// Raw holds the record bytes exactly as received, so the metadata
	// sidecar can preserve fields this struct does not model.
	Raw json.RawMessage `json:"-"`
}

// FirstAuthor returns the name of the first listed author, or "" when the
// record has none.
func (b Book) FirstAuthor() string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0].Name
}

// Author is one contributor entry on a catalog record.
type Author struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}
