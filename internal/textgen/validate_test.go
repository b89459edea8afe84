package textgen

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponseNoSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Errorf("nil schema must accept anything, got %v", err)
	}
}

func TestValidateResponseWordList(t *testing.T) {
	good := json.RawMessage(`{"words":[{"term":"das Haus","translation":"the house","example":"Das Haus ist alt."}]}`)
	if err := validateResponse(wordListSchema, good); err != nil {
		t.Fatalf("valid word list rejected: %v", err)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"words": [`},
		{"missing field", `{"words":[{"term":"das Haus","translation":"the house"}]}`},
		{"wrong type", `{"words":"das Haus"}`},
		{"extra field", `{"words":[],"extra":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(wordListSchema, json.RawMessage(tt.raw))
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Errorf("err = %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateResponseTranslation(t *testing.T) {
	good := json.RawMessage(`{"meaning":"the train station","example":"Der Bahnhof ist groß."}`)
	if err := validateResponse(translationSchema, good); err != nil {
		t.Fatalf("valid translation rejected: %v", err)
	}

	err := validateResponse(translationSchema, json.RawMessage(`{"meaning":"x"}`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponseCachesCompiledSchema(t *testing.T) {
	raw := json.RawMessage(`{"meaning":"a","example":"b"}`)
	for i := 0; i < 3; i++ {
		if err := validateResponse(translationSchema, raw); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	if _, ok := schemaCache.Load(translationSchema.Name); !ok {
		t.Error("compiled schema not cached")
	}
}
