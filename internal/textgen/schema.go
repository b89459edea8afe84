package textgen

// wordListSchema constrains bulk vocabulary generation. Every entry must
// carry a German term, an English translation, and one example sentence.
var wordListSchema = &Schema{
	Name:        "word-list",
	Description: "A list of German vocabulary entries with translations and example sentences",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type":        "array",
				"description": "Generated vocabulary entries",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "The German word or short phrase, with article for nouns",
						},
						"translation": map[string]any{
							"type":        "string",
							"description": "The English translation",
						},
						"example": map[string]any{
							"type":        "string",
							"description": "One natural German example sentence using the term",
						},
					},
					"required":             []any{"term", "translation", "example"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"words"},
		"additionalProperties": false,
	},
}

// translationSchema constrains single-term translation.
var translationSchema = &Schema{
	Name:        "translation",
	Description: "An English translation of a German term with an example sentence",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meaning": map[string]any{
				"type":        "string",
				"description": "The English translation of the term",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "One natural German example sentence using the term",
			},
		},
		"required":             []any{"meaning", "example"},
		"additionalProperties": false,
	},
}
