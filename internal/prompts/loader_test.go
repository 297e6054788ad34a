package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPrompt(t *testing.T) {
	template, err := Get("analysis.json", "resume-analysis")
	require.NoError(t, err)
	assert.Contains(t, template, "{{.ResumeText}}")
	assert.Contains(t, template, "{{.RequiredSkills}}")
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("analysis.json", "no-such-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-key")
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("nonexistent.json", "anything")
	assert.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("analysis.json", "no-such-key") })
	assert.NotPanics(t, func() { MustGet("analysis.json", "resume-analysis") })
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, you applied for {{.Job}}.", map[string]string{
		"Name": "Ada",
		"Job":  "Engineer",
	})
	assert.Equal(t, "Hello Ada, you applied for Engineer.", out)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	out := Format("{{.Known}} {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x {{.Unknown}}", out)
}
