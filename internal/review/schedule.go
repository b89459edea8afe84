package review

// Config holds the interval-adjustment parameters.
type Config struct {
	// GrowthFactor multiplies the interval after a correct review and
	// divides it after an incorrect one.
	GrowthFactor int

	// MinIntervalDays is the floor applied after halving.
	MinIntervalDays int

	// MaxIntervalDays is the ceiling applied after doubling.
	MaxIntervalDays int

	// MasteredShare is the default fraction of a sampled working set
	// drawn from already-mastered items.
	MasteredShare float64
}

// DefaultConfig returns the production scheduling parameters.
func DefaultConfig() Config {
	return Config{
		GrowthFactor:    2,
		MinIntervalDays: 1,
		MaxIntervalDays: 90,
		MasteredShare:   0.05,
	}
}

// clampInterval forces days into [MinIntervalDays, MaxIntervalDays].
// Applied on every transition so the bounds hold regardless of what
// state a stored item arrives in.
func (c Config) clampInterval(days int) int {
	if days < c.MinIntervalDays {
		return c.MinIntervalDays
	}
	if days > c.MaxIntervalDays {
		return c.MaxIntervalDays
	}
	return days
}
