package assist

import (
	"encoding/json"

	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

// draftResume is the shape the model is asked to produce. It has no ids:
// ids are always assigned locally.
type draftResume struct {
	Name       string            `json:"name" jsonschema:"required"`
	Email      string            `json:"email" jsonschema:"required"`
	Phone      string            `json:"phone" jsonschema:"required"`
	Website    string            `json:"website" jsonschema:"required"`
	Summary    string            `json:"summary" jsonschema:"required"`
	Skills     string            `json:"skills" jsonschema:"required"`
	Education  []draftEducation  `json:"education" jsonschema:"required"`
	Experience []draftExperience `json:"experience" jsonschema:"required"`
	Projects   []draftProject    `json:"projects" jsonschema:"required"`
}

type draftEducation struct {
	University string `json:"university" jsonschema:"required"`
	Degree     string `json:"degree" jsonschema:"required"`
	StartDate  string `json:"startDate" jsonschema:"required"`
	EndDate    string `json:"endDate" jsonschema:"required"`
}

type draftExperience struct {
	Company     string `json:"company" jsonschema:"required"`
	Title       string `json:"title" jsonschema:"required"`
	StartDate   string `json:"startDate" jsonschema:"required"`
	EndDate     string `json:"endDate" jsonschema:"required"`
	Description string `json:"description" jsonschema:"required"`
}

type draftProject struct {
	Name        string `json:"name" jsonschema:"required"`
	Description string `json:"description" jsonschema:"required"`
	URL         string `json:"url,omitempty"`
}

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func objectSchema(properties map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: properties, Required: required}
}

func arraySchema(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

// draftSchema is the response schema sent with a draft request.
func draftSchema(jobTitle string) (*genai.Schema, error) {
	summary, err := prompts.Render(prompts.AssistFile, "draft-summary-field", map[string]string{"JobTitle": jobTitle})
	if err != nil {
		return nil, err
	}
	skills, err := prompts.Get(prompts.AssistFile, "draft-skills-field")
	if err != nil {
		return nil, err
	}
	description, err := prompts.Get(prompts.AssistFile, "draft-experience-description-field")
	if err != nil {
		return nil, err
	}

	education := objectSchema(map[string]*genai.Schema{
		"university": stringSchema(""),
		"degree":     stringSchema(""),
		"startDate":  stringSchema(""),
		"endDate":    stringSchema(""),
	}, "university", "degree", "startDate", "endDate")

	experience := objectSchema(map[string]*genai.Schema{
		"company":     stringSchema(""),
		"title":       stringSchema(""),
		"startDate":   stringSchema(""),
		"endDate":     stringSchema(""),
		"description": stringSchema(description),
	}, "company", "title", "startDate", "endDate", "description")

	project := objectSchema(map[string]*genai.Schema{
		"name":        stringSchema(""),
		"description": stringSchema(""),
		"url":         stringSchema(""),
	}, "name", "description")

	return objectSchema(map[string]*genai.Schema{
		"name":       stringSchema(""),
		"email":      stringSchema(""),
		"phone":      stringSchema(""),
		"website":    stringSchema(""),
		"summary":    stringSchema(summary),
		"skills":     stringSchema(skills),
		"education":  arraySchema(education),
		"experience": arraySchema(experience),
		"projects":   arraySchema(project),
	}, "name", "email", "phone", "website", "summary", "skills", "education", "experience", "projects"), nil
}

// toResume converts a decoded draft into a document with fresh ids.
func (d draftResume) toResume() types.ResumeData {
	doc := types.ResumeData{
		Name:       cleanText(d.Name),
		Email:      cleanText(d.Email),
		Phone:      cleanText(d.Phone),
		Website:    cleanText(d.Website),
		Summary:    cleanText(d.Summary),
		Skills:     cleanText(d.Skills),
		Education:  make([]types.Education, 0, len(d.Education)),
		Experience: make([]types.Experience, 0, len(d.Experience)),
		Projects:   make([]types.Project, 0, len(d.Projects)),
	}
	for _, e := range d.Education {
		doc.Education = append(doc.Education, types.Education{
			University: cleanText(e.University),
			Degree:     cleanText(e.Degree),
			StartDate:  cleanText(e.StartDate),
			EndDate:    cleanText(e.EndDate),
		})
	}
	for _, e := range d.Experience {
		doc.Experience = append(doc.Experience, types.Experience{
			Company:     cleanText(e.Company),
			Title:       cleanText(e.Title),
			StartDate:   cleanText(e.StartDate),
			EndDate:     cleanText(e.EndDate),
			Description: cleanText(e.Description),
		})
	}
	for _, p := range d.Projects {
		doc.Projects = append(doc.Projects, types.Project{
			Name:        cleanText(p.Name),
			Description: cleanText(p.Description),
			URL:         cleanText(p.URL),
		})
	}
	doc.AssignIDs()
	return doc
}

func decodeDraft(text string) (draftResume, error) {
	var d draftResume
	err := json.Unmarshal([]byte(text), &d)
	return d, err
}
