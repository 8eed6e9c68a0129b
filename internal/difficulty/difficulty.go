package difficulty

import (
	"math"
	"strconv"
	"strings"
)

// Level is the difficulty tier used when asking screening questions.
type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Advanced     Level = "advanced"
)

const (
	advancedYears     = 5
	intermediateYears = 2
)

// Classify maps a free-form "years of experience" value to a Level.
// Empty or unparsable input is treated as no experience.
func Classify(yearsExp string) Level {
	years, err := strconv.ParseFloat(strings.TrimSpace(yearsExp), 64)
	if err != nil || math.IsNaN(years) || math.IsInf(years, 0) {
		return Beginner
	}

	switch {
	case years >= advancedYears:
		return Advanced
	case years >= intermediateYears:
		return Intermediate
	default:
		return Beginner
	}
}

func (l Level) String() string {
	return string(l)
}
