package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(AssistFile, "summary")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "write a professional and compelling summary of 2-3 sentences")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(AssistFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet(AssistFile, "resume-draft")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	template := "A={{.A}} B={{.B}}"
	data := map[string]string{
		"A": "{{.B}}",
		"B": "b",
	}

	assert.Equal(t, "A={{.B}} B=b", Format(template, data))
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render(AssistFile, "suggest-skills", map[string]string{"JobTitle": "Data Engineer"})
	require.NoError(t, err)
	assert.Equal(t,
		`Suggest 5-7 relevant technical and soft skills for a resume targeting a "Data Engineer" position. Provide the skills as a single comma-separated string.`,
		prompt)
}

func TestAssistPrompts_Placeholders(t *testing.T) {
	ClearCache()

	tests := []struct {
		key          string
		placeholders []string
	}{
		{"summary", []string{"{{.ResumeText}}"}},
		{"enhance-bullet", []string{"{{.Context}}", "{{.Bullet}}"}},
		{"suggest-skills", []string{"{{.JobTitle}}"}},
		{"cover-letter", []string{"{{.Resume}}", "{{.JobDescription}}"}},
		{"ats-keywords", []string{"{{.ResumeText}}", "{{.JobDescription}}"}},
		{"resume-draft", []string{"{{.JobTitle}}"}},
		{"draft-summary-field", []string{"{{.JobTitle}}"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			prompt, err := Get(AssistFile, tt.key)
			require.NoError(t, err)
			for _, p := range tt.placeholders {
				assert.Contains(t, prompt, p)
			}
		})
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(AssistFile)
	require.NoError(t, err)
	assert.Contains(t, keys, "cover-letter")
	assert.IsNonDecreasing(t, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	prompt1, err := Get(AssistFile, "summary")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get(AssistFile, "summary")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
