package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// View is the data every template executes against. It is derived from
// ResumeData only; layouts never see anything else.
type View struct {
	Name      string
	Email     string
	Phone     string
	Website   string
	Summary   string
	Skills    string
	SkillList []string

	Education  []types.Education
	Experience []ExperienceView
	Projects   []types.Project
}

// ExperienceView is an experience entry with its description split into bullets
type ExperienceView struct {
	types.Experience
	Bullets []string
}

// NewView builds the template view for data.
func NewView(data types.ResumeData) View {
	data.Normalize()

	experience := make([]ExperienceView, len(data.Experience))
	for i, exp := range data.Experience {
		experience[i] = ExperienceView{Experience: exp, Bullets: types.Bullets(exp.Description)}
	}

	return View{
		Name:       data.Name,
		Email:      data.Email,
		Phone:      data.Phone,
		Website:    data.Website,
		Summary:    data.Summary,
		Skills:     data.Skills,
		SkillList:  types.SkillList(data.Skills),
		Education:  data.Education,
		Experience: experience,
		Projects:   data.Projects,
	}
}

// Initials returns the first letters of the first and last name, or the
// first two letters of a single name, upper-cased.
func (v View) Initials() string {
	parts := strings.Fields(v.Name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(firstRunes(parts[0], 2))
	}
	return strings.ToUpper(firstRunes(parts[0], 1) + firstRunes(parts[len(parts)-1], 1))
}

// Initial returns the first letter of the name.
func (v View) Initial() string {
	return firstRunes(strings.TrimSpace(v.Name), 1)
}

// HeadlineOr returns the most recent job title, or fallback when there is none.
func (v View) HeadlineOr(fallback string) string {
	if len(v.Experience) > 0 && v.Experience[0].Title != "" {
		return v.Experience[0].Title
	}
	return fallback
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
