package job

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// fileExport mirrors the shape produced by the scraping side: either a bare
// array of postings or an object with an "items" key.
type fileExport struct {
	Items []map[string]any `json:"items"`
}

// FromFile loads postings from a JSON export file.
func FromFile(path string) (*Postings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading postings file: %w", err)
	}

	var items []map[string]any

	// Try the bare-array layout first, then the wrapped one.
	if err := json.Unmarshal(data, &items); err != nil {
		var export fileExport
		if wrapErr := json.Unmarshal(data, &export); wrapErr != nil {
			return nil, fmt.Errorf("decoding postings file %q: %w", path, err)
		}
		items = export.Items
	}

	var postings []*Posting
	if err := mapstructure.Decode(items, &postings); err != nil {
		return nil, fmt.Errorf("decoding postings: %w", err)
	}

	result := &Postings{Items: postings}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("postings file %q: %w", path, err)
	}

	return result, nil
}
