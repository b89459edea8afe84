package vocab

import (
	"strings"
	"unicode/utf8"
)

// Suffixes that signal derived or abstract nouns, which tend to appear in
// higher CEFR bands than their base words.
var abstractSuffixes = []string{
	"ung", "heit", "keit", "schaft", "tät", "nis", "tum", "ismus",
}

// learnedPrefixes appear on verbs and nouns that are rarely part of the
// beginner corpus.
var learnedPrefixes = []string{
	"ver", "zer", "ent", "miss", "wider",
}

// InferLevel estimates a CEFR tier for a German term from its surface form.
// The estimate is structural only: rune length buckets adjusted by
// morphological markers. It is deterministic for a given input, which is
// the only property callers may rely on.
func InferLevel(term string) Level {
	t := strings.TrimSpace(term)
	if t == "" {
		return LevelA1
	}

	// Multi-word entries (separable verbs with particles, fixed phrases)
	// are scored on their longest component.
	if strings.ContainsRune(t, ' ') {
		longest := ""
		for _, part := range strings.Fields(t) {
			if utf8.RuneCountInString(part) > utf8.RuneCountInString(longest) {
				longest = part
			}
		}
		t = longest
	}

	length := utf8.RuneCountInString(t)
	var base Level
	switch {
	case length <= 4:
		base = LevelA1
	case length <= 6:
		base = LevelA2
	case length <= 9:
		base = LevelB1
	case length <= 12:
		base = LevelB2
	case length <= 16:
		base = LevelC1
	default:
		base = LevelC2
	}

	lower := strings.ToLower(t)
	for _, suf := range abstractSuffixes {
		if strings.HasSuffix(lower, suf) && length > len(suf)+2 {
			base = bumpLevel(base)
			break
		}
	}
	for _, pre := range learnedPrefixes {
		if strings.HasPrefix(lower, pre) && length > len(pre)+3 {
			base = bumpLevel(base)
			break
		}
	}

	return base
}

func bumpLevel(l Level) Level {
	if l >= LevelC2 {
		return LevelC2
	}
	return l + 1
}
