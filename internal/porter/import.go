package porter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/wortlab/wortschatz/internal/vocab"
)

// Result summarizes an import. Errors holds one message per record that
// could not be used; the rest of the file is still processed.
type Result struct {
	ImportedCount int
	SkippedCount  int
	Errors        []string
}

// envelopeSchema validates the document shape before any record work.
// Per-record problems are collected individually, so the items here are
// only required to be objects.
const envelopeSchema = `{
	"type": "object",
	"properties": {
		"version":    {"type": "integer"},
		"exportedAt": {"type": "string"},
		"items":      {"type": "array", "items": {"type": "object"}}
	},
	"required": ["version", "items"]
}`

var (
	envelopeOnce     sync.Once
	envelopeCompiled *jsonschema.Schema
	envelopeErr      error
)

func compiledEnvelope() (*jsonschema.Schema, error) {
	envelopeOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(envelopeSchema))
		if err != nil {
			envelopeErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://export-envelope.json", doc); err != nil {
			envelopeErr = err
			return
		}
		envelopeCompiled, envelopeErr = c.Compile("schema://export-envelope.json")
	})
	return envelopeCompiled, envelopeErr
}

// ImportJSON reads an export document and restores its items into the
// given scope. Keys already visible in scope are skipped, malformed
// records are reported per index, and a canceled context stops the run
// while keeping everything imported so far.
func (p *Porter) ImportJSON(ctx context.Context, r io.Reader, scope string) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("import: read: %w", err)
	}

	schema, err := compiledEnvelope()
	if err != nil {
		return nil, fmt.Errorf("import: envelope schema: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("import: not valid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("import: not an export document: %w", err)
	}

	// Records are decoded one at a time so a single malformed entry can't
	// sink the rest of the file.
	var doc struct {
		Version int               `json:"version"`
		Items   []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("import: decode: %w", err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("import: unsupported format version %d (have %d)", doc.Version, FormatVersion)
	}

	res := &Result{}
	for i, rec := range doc.Items {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		var it vocab.Item
		if err := json.Unmarshal(rec, &it); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("item %d: %v", i, err))
			continue
		}
		if strings.TrimSpace(it.Key) == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("item %d: empty key", i))
			continue
		}
		if it.Origin == "" {
			it.Origin = vocab.OriginSeed
		}
		ok, err := p.items.Restore(ctx, it, scope)
		if err != nil {
			return res, fmt.Errorf("import item %q: %w", it.Key, err)
		}
		if ok {
			res.ImportedCount++
		} else {
			res.SkippedCount++
		}
	}
	return res, nil
}
