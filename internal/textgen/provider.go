// Package textgen talks to LLM providers to generate German vocabulary,
// example sentences, and translations as schema-validated JSON.
package textgen

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction over the model vendors. Callers hand
// it a Request and get structured JSON back.
type Provider interface {
	// Generate sends one prompt. When the request carries a Schema the
	// provider uses its native structured-output mechanism and the
	// returned Content is JSON already validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Generation here is single turn, so
	// this is normally one user message.
	Messages []Message

	// Schema, when set, constrains the response to the given JSON
	// Schema. When nil the Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]. Zero means deterministic.
	Temperature float64
}

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name is kebab-case, e.g. "word-list". Doubles as the tool or
	// schema name on providers that want one.
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	// Content is validated JSON when the request had a Schema, raw text
	// otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
