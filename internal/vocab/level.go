package vocab

// Level is a CEFR proficiency tier. The zero value is A1.
type Level int

const (
	LevelA1 Level = iota
	LevelA2
	LevelB1
	LevelB2
	LevelC1
	LevelC2
)

// AllLevels returns the six tiers in ascending order.
func AllLevels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}
}

func (l Level) String() string {
	switch l {
	case LevelA1:
		return "A1"
	case LevelA2:
		return "A2"
	case LevelB1:
		return "B1"
	case LevelB2:
		return "B2"
	case LevelC1:
		return "C1"
	case LevelC2:
		return "C2"
	default:
		return "A1"
	}
}

// ParseLevel maps a CEFR label back to a Level. Unknown labels fall back
// to A1 rather than erroring, matching how imports treat missing columns.
func ParseLevel(s string) Level {
	switch s {
	case "A2":
		return LevelA2
	case "B1":
		return LevelB1
	case "B2":
		return LevelB2
	case "C1":
		return LevelC1
	case "C2":
		return LevelC2
	default:
		return LevelA1
	}
}
