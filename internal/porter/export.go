// Package porter moves vocabulary in and out of the store: a versioned
// JSON document for backup and transfer, plus xlsx/csv ingestion for
// externally curated word lists.
package porter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/wortlab/wortschatz/internal/store"
	"github.com/wortlab/wortschatz/internal/vocab"
)

// FormatVersion is the current export document version.
const FormatVersion = 1

// Document is the export envelope. Items carry their full review state so
// a backup restores mastery and scheduling, not just content.
type Document struct {
	Version    int          `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Items      []vocab.Item `json:"items"`
}

// Porter reads and writes vocabulary through the item repository.
type Porter struct {
	items *store.ItemRepo
}

// New creates a Porter over the given item repository.
func New(items *store.ItemRepo) *Porter {
	return &Porter{items: items}
}

// ExportJSON writes every item visible to the scope as an indented JSON
// document and returns the number of items written.
func (p *Porter) ExportJSON(ctx context.Context, w io.Writer, scope string) (int, error) {
	items, err := p.items.GetAll(ctx, scope)
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	doc := Document{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC(),
		Items:      items,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("export: encode: %w", err)
	}
	return len(items), nil
}
