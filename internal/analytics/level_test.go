package analytics

import (
	"testing"

	"github.com/wortlab/wortschatz/internal/vocab"
)

func TestEstimateLevel(t *testing.T) {
	tests := []struct {
		mastered     int
		wantLevel    vocab.Level
		wantProgress int
	}{
		{0, vocab.LevelA1, 0},
		{25, vocab.LevelA1, 50},
		{49, vocab.LevelA1, 98},
		{50, vocab.LevelA2, 0},
		{100, vocab.LevelA2, 50},
		{150, vocab.LevelB1, 0},
		{300, vocab.LevelB2, 0},
		{400, vocab.LevelB2, 50},
		{500, vocab.LevelC1, 0},
		{749, vocab.LevelC1, 99},
		{750, vocab.LevelC2, 100},
		{2000, vocab.LevelC2, 100},
	}

	for _, tt := range tests {
		got := EstimateLevel(tt.mastered)
		if got.Level != tt.wantLevel {
			t.Errorf("EstimateLevel(%d).Level = %s, want %s", tt.mastered, got.Level, tt.wantLevel)
		}
		if got.NextLevelProgress != tt.wantProgress {
			t.Errorf("EstimateLevel(%d).NextLevelProgress = %d, want %d",
				tt.mastered, got.NextLevelProgress, tt.wantProgress)
		}
	}
}

func TestEstimateLevelMonotonic(t *testing.T) {
	prev := EstimateLevel(0).Level
	for n := 1; n <= 800; n++ {
		cur := EstimateLevel(n).Level
		if cur < prev {
			t.Fatalf("level dropped from %s to %s at mastered=%d", prev, cur, n)
		}
		prev = cur
	}
}
