package matching

import "strings"

// EducationScale is an ordered ranking of education levels, lowest first.
// Aliases map alternative spellings ("phd", "bs") onto a canonical level.
type EducationScale struct {
	Levels  []string
	Aliases map[string]string
}

// DefaultEducationScale returns the standard six-level scale from no formal
// education through doctorate.
func DefaultEducationScale() EducationScale {
	return EducationScale{
		Levels: []string{"none", "high school", "associate", "bachelor", "master", "doctorate"},
		Aliases: map[string]string{
			"highschool":  "high school",
			"high-school": "high school",
			"ged":         "high school",
			"diploma":     "high school",
			"associates":  "associate",
			"bachelors":   "bachelor",
			"bs":          "bachelor",
			"ba":          "bachelor",
			"bsc":         "bachelor",
			"undergrad":   "bachelor",
			"masters":     "master",
			"ms":          "master",
			"msc":         "master",
			"mba":         "master",
			"phd":         "doctorate",
			"ph.d":        "doctorate",
			"doctoral":    "doctorate",
		},
	}
}

// Score rates the candidate's education level against the required one. An
// empty or unrecognized requirement counts as met. A candidate at or above
// the required rank scores 1.0; below it the score degrades linearly with
// the rank distance, bottoming out at 0.
func (e EducationScale) Score(candidate, required string) float64 {
	reqRank, ok := e.rank(required)
	if !ok {
		return 1.0
	}
	candRank, ok := e.rank(candidate)
	if !ok {
		candRank = 0
	}
	if candRank >= reqRank {
		return 1.0
	}
	distance := float64(reqRank - candRank)
	score := 1.0 - distance/float64(len(e.Levels))
	if score < 0 {
		return 0
	}
	return score
}

// rank resolves a free-form level to its position on the scale. Matching is
// case-insensitive and tolerant of surrounding words ("Bachelor of Science",
// "Master's degree in CS").
func (e EducationScale) rank(level string) (int, bool) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "" {
		return 0, false
	}
	if canonical, ok := e.Aliases[normalized]; ok {
		normalized = canonical
	}
	for i, l := range e.Levels {
		if normalized == l {
			return i, true
		}
	}
	// Word-boundary pass: highest level wins so "master" in "master of
	// science" is preferred over an accidental shorter hit. Boundaries keep
	// short aliases like "ba" from matching inside unrelated words.
	for i := len(e.Levels) - 1; i >= 0; i-- {
		if containsWord(normalized, e.Levels[i]) {
			return i, true
		}
	}
	best, found := 0, false
	for alias, canonical := range e.Aliases {
		if !containsWord(normalized, alias) {
			continue
		}
		if r := e.rankOf(canonical); !found || r > best {
			best, found = r, true
		}
	}
	return best, found
}

// containsWord reports whether needle occurs in haystack with non-word
// characters (or the string edges) on both sides.
func containsWord(haystack, needle string) bool {
	for start := 0; ; start++ {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		start += idx
		end := start + len(needle)
		leftOK := start == 0 || !isWordChar(haystack[start-1])
		rightOK := end == len(haystack) || !isWordChar(haystack[end])
		if leftOK && rightOK {
			return true
		}
	}
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func (e EducationScale) rankOf(canonical string) int {
	for i, l := range e.Levels {
		if l == canonical {
			return i
		}
	}
	return 0
}
