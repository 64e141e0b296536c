package models

import "strings"

// Level is the grading track a subject was assessed at.
type Level string

const (
	// LevelHigher is the higher-level paper.
	LevelHigher Level = "Higher"
	// LevelOrdinary is the ordinary-level paper.
	LevelOrdinary Level = "Ordinary"
	// LevelLCVP is the vocational link-modules track.
	LevelLCVP Level = "LCVP"
	// LevelUnknown marks a level that could not be parsed.
	LevelUnknown Level = ""
)

// ParseLevel normalises the spellings used across entry flows ("Higher", "H",
// "ordinary", "O", "LCVP") to a canonical Level. The bool is false when the
// input is not recognised.
func ParseLevel(raw string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "higher", "h":
		return LevelHigher, true
	case "ordinary", "o":
		return LevelOrdinary, true
	case "lcvp":
		return LevelLCVP, true
	default:
		return LevelUnknown, false
	}
}

// Normalize returns the canonical form of l, or LevelUnknown.
func (l Level) Normalize() Level {
	level, _ := ParseLevel(string(l))
	return level
}
