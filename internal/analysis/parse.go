package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parsedResponse holds the coerced fields of the model's JSON payload.
type parsedResponse struct {
	Skills          []string
	ExperienceYears int
	EducationLevel  string
	Summary         string
	KeyAchievements []string
	MatchedSkills   []string
	MissingSkills   []string
}

// parseResponse defensively parses the model's completion. The JSON object is
// located even when wrapped in explanatory prose or markdown fences, its shape
// is schema-validated, and individual fields are coerced: missing numeric
// fields become zero, missing list fields become empty.
func parseResponse(raw string) (*parsedResponse, error) {
	cleaned := CleanJSONBlock(raw)
	cleaned = extractJSONObject(cleaned)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	if err := validateResponseShape(cleaned); err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	education := coerceString(data["education_level"])
	if education == "" {
		education = "Unknown"
	}

	return &parsedResponse{
		Skills:          coerceStringSlice(data["skills"]),
		ExperienceYears: coerceInt(data["experience_years"]),
		EducationLevel:  education,
		Summary:         coerceString(data["summary"]),
		KeyAchievements: coerceStringSlice(data["key_achievements"]),
		MatchedSkills:   coerceStringSlice(data["matched_skills"]),
		MissingSkills:   coerceStringSlice(data["missing_skills"]),
	}, nil
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}
	return strings.TrimSpace(text)
}

// extractJSONObject locates the outermost JSON object in text that may carry
// leading or trailing prose. Returns "" when no object is present.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || val < 0 {
			return 0
		}
		return int(val)
	case int:
		if val < 0 {
			return 0
		}
		return val
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
