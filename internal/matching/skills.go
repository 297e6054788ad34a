package matching

import "strings"

// scoreSkills partitions the required skills into matched and missing against
// the candidate's skills and returns the fraction matched. Comparison is
// case-insensitive and whitespace-trimmed; both output slices preserve the
// order of the required list, and every required skill lands in exactly one
// of them. An empty requirement list yields a perfect score.
func scoreSkills(candidate, required []string) (matched, missing []string, score float64) {
	matched = []string{}
	missing = []string{}

	reqSet := normalizeSkills(required)
	if len(reqSet) == 0 {
		return matched, missing, 1.0
	}

	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		if key := normalizeSkill(s); key != "" {
			have[key] = struct{}{}
		}
	}

	for _, skill := range reqSet {
		if _, ok := have[normalizeSkill(skill)]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing, float64(len(matched)) / float64(len(reqSet))
}

// normalizeSkills trims and dedupes a skill list, keeping the first spelling
// of each skill and the original order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		trimmed := strings.TrimSpace(s)
		key := normalizeSkill(trimmed)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
