package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

var horizontalWhitespace = regexp.MustCompile(`[ \t]+`)

// CleanText normalizes raw extracted text: control characters are stripped,
// runs of horizontal whitespace collapse to a single space, each line is
// trimmed, runs of blank lines collapse to one, and leading/trailing blank
// lines are removed.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = stripControlChars(text)

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(horizontalWhitespace.ReplaceAllString(line, " "))
		if line == "" {
			blank = true
			continue
		}
		if blank && len(cleaned) > 0 {
			cleaned = append(cleaned, "")
		}
		blank = false
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}

// stripControlChars removes control characters other than newline and tab.
func stripControlChars(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
