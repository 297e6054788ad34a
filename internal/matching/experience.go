package matching

import (
	"regexp"
	"strconv"
)

var yearsPattern = regexp.MustCompile(`\d+`)

// ParseMinimumYears extracts the years threshold from a free-form requirement
// such as "3+ years", "5 years", or "at least 2 years of experience". It
// returns the first integer found, or 0 when none is present.
func ParseMinimumYears(requirement string) int {
	m := yearsPattern.FindString(requirement)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// scoreExperience rates the candidate's years against the requirement. A
// requirement with no parsable threshold (or a zero threshold) is treated as
// met. Otherwise meeting the threshold scores 1.0 and falling short scores
// the fraction of the threshold reached.
func scoreExperience(years int, requirement string) float64 {
	threshold := ParseMinimumYears(requirement)
	if threshold <= 0 {
		return 1.0
	}
	if years >= threshold {
		return 1.0
	}
	if years <= 0 {
		return 0.0
	}
	return float64(years) / float64(threshold)
}
