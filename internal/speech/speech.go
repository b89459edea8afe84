// Package speech defines the pronunciation side channel. Playback is
// best effort: a speech failure must never disturb vocabulary state, so
// implementations report errors for logging and nothing else.
package speech

import (
	"context"
	"log"
)

// Options tune one utterance.
type Options struct {
	// Lang is a BCP 47 tag, "de-DE" when empty.
	Lang string
	// Rate is the speaking rate multiplier, 1.0 when zero.
	Rate float64
}

// Speaker voices a piece of German text.
type Speaker interface {
	Speak(ctx context.Context, text string, opts Options) error
}

// LogSpeaker is the default Speaker: it records what would have been
// spoken. Real synthesis is an embedder concern.
type LogSpeaker struct {
	Logger *log.Logger
}

func (s *LogSpeaker) Speak(_ context.Context, text string, opts Options) error {
	lang := opts.Lang
	if lang == "" {
		lang = "de-DE"
	}
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("speak [%s]: %s", lang, text)
	return nil
}
