package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wortlab/wortschatz/internal/vocab"
)

const (
	generateMaxTokens  = 4096
	translateMaxTokens = 512
)

// GeneratedItem is one vocabulary entry produced by the model.
type GeneratedItem struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
	Example     string `json:"example"`
}

// Translation is the model's rendering of a single term.
type Translation struct {
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

// Service wraps a Provider with the two vocabulary prompts the rest of
// the app needs.
type Service struct {
	provider Provider
	timeout  time.Duration
}

// NewService creates a Service. A zero timeout falls back to the config
// default.
func NewService(provider Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Service{provider: provider, timeout: timeout}
}

// GenerateItems asks the model for count new vocabulary entries at the
// given difficulty, optionally steered toward themes. The whole batch is
// one structured-output call; a malformed response fails the batch rather
// than yielding a partial list.
func (s *Service) GenerateItems(ctx context.Context, count int, level vocab.Level, themes []string) ([]GeneratedItem, error) {
	if count <= 0 {
		return []GeneratedItem{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Generate %d German vocabulary entries at CEFR level %s.", count, level)
	if len(themes) > 0 {
		prompt += fmt.Sprintf(" Focus on these themes: %s.", strings.Join(themes, ", "))
	}
	prompt += " Include the article for nouns. Do not repeat terms."

	resp, err := s.provider.Generate(ctx, Request{
		System: "You are a German language tutor creating vocabulary lists for English-speaking learners. " +
			"Return well-formed entries with accurate translations and natural example sentences.",
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    wordListSchema,
		MaxTokens: generateMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate items: %w", err)
	}

	var out struct {
		Words []GeneratedItem `json:"words"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return out.Words, nil
}

// Translate asks the model for the English meaning of one German term
// plus an example sentence.
func (s *Service) Translate(ctx context.Context, term string) (Translation, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Translation{}, fmt.Errorf("translate: empty term")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.provider.Generate(ctx, Request{
		System: "You are a German-English dictionary. Translate the given German term " +
			"and provide one natural German example sentence.",
		Messages:  []Message{{Role: RoleUser, Content: fmt.Sprintf("Translate: %s", term)}},
		Schema:    translationSchema,
		MaxTokens: translateMaxTokens,
	})
	if err != nil {
		return Translation{}, fmt.Errorf("translate %q: %w", term, err)
	}

	var out Translation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Translation{}, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return out, nil
}
