package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBullets(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    []string
	}{
		{
			name:        "markers and blank line",
			description: "- A\n- B\n\n- C",
			expected:    []string{"A", "B", "C"},
		},
		{
			name:        "no markers",
			description: "Shipped the thing\nFixed the other thing",
			expected:    []string{"Shipped the thing", "Fixed the other thing"},
		},
		{
			name:        "only one marker stripped",
			description: "- - nested",
			expected:    []string{"- nested"},
		},
		{
			name:        "marker without space kept",
			description: "-dash",
			expected:    []string{"-dash"},
		},
		{
			name:        "crlf line endings",
			description: "- A\r\n- B\r\n",
			expected:    []string{"A", "B"},
		},
		{
			name:        "whitespace only lines dropped",
			description: "- A\n   \n- B",
			expected:    []string{"A", "B"},
		},
		{
			name:        "empty",
			description: "",
			expected:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Bullets(tt.description))
		})
	}
}

func TestSkillList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Rust", "C++"}, SkillList("Go, Rust , C++"))
	assert.Equal(t, []string{"Go"}, SkillList("Go,, ,"))
	assert.Equal(t, []string{}, SkillList(""))
}

func TestDefaultResume_FreshIDs(t *testing.T) {
	a := DefaultResume()
	b := DefaultResume()

	require.Len(t, a.Experience, 1)
	require.Len(t, a.Education, 1)
	require.Len(t, a.Projects, 1)
	assert.NotEmpty(t, a.Experience[0].ID)
	assert.NotEqual(t, a.Experience[0].ID, b.Experience[0].ID)
	assert.Equal(t, "Your Name", a.Name)
	assert.Equal(t, "Present", a.Experience[0].EndDate)
}

func TestNormalize_EncodesEmptyArrays(t *testing.T) {
	var r ResumeData
	r.Normalize()

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"education":[]`)
	assert.Contains(t, string(data), `"experience":[]`)
	assert.Contains(t, string(data), `"projects":[]`)
}

func TestClone_DoesNotAlias(t *testing.T) {
	original := DefaultResume()
	clone := original.Clone()
	clone.Experience[0].Title = "Changed"

	assert.Equal(t, "Software Engineer", original.Experience[0].Title)
}

func TestAssignIDs_ReplacesExisting(t *testing.T) {
	r := ResumeData{
		Experience: []Experience{{ID: "dup"}, {ID: "dup"}},
		Projects:   []Project{{}},
	}
	r.AssignIDs()

	assert.NotEqual(t, "dup", r.Experience[0].ID)
	assert.NotEqual(t, r.Experience[0].ID, r.Experience[1].ID)
	assert.NotEmpty(t, r.Projects[0].ID)
}

func TestJSONKeys(t *testing.T) {
	r := ResumeData{
		Experience: []Experience{{ID: "1", StartDate: "2020", EndDate: "Present"}},
		Projects:   []Project{{ID: "2", Name: "p"}},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"startDate":"2020"`)
	assert.Contains(t, string(data), `"endDate":"Present"`)
	assert.NotContains(t, string(data), `"url"`)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("summary")
	require.NoError(t, err)
	assert.Equal(t, FieldSummary, f)

	_, err = ParseField("education")
	assert.Error(t, err)
}

func TestParseListName(t *testing.T) {
	l, err := ParseListName("projects")
	require.NoError(t, err)
	assert.Equal(t, ListProjects, l)

	_, err = ParseListName("skills")
	assert.Error(t, err)
}

func TestFieldAccessors(t *testing.T) {
	var r ResumeData
	for _, f := range Fields {
		r.SetField(f, "v-"+string(f))
	}
	for _, f := range Fields {
		assert.Equal(t, "v-"+string(f), r.Field(f))
	}
}

func TestTemplateID_Valid(t *testing.T) {
	assert.True(t, TemplateStartup.Valid())
	assert.False(t, TemplateID("bogus-id").Valid())
	assert.Len(t, Templates, 9)
}

func TestParseTheme(t *testing.T) {
	theme, ok := ParseTheme("light")
	assert.True(t, ok)
	assert.Equal(t, ThemeLight, theme)

	theme, ok = ParseTheme("sepia")
	assert.False(t, ok)
	assert.Equal(t, ThemeDark, theme)
}

func TestDraftRequest_Validate(t *testing.T) {
	req := DraftRequest{JobTitle: "  "}
	assert.Error(t, req.Validate())

	req = DraftRequest{JobTitle: " Data Engineer "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Data Engineer", req.JobTitle)
}

func TestThemeRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ThemeRequest{Theme: "dark"}).Validate())
	assert.Error(t, (&ThemeRequest{Theme: "blue"}).Validate())
}
