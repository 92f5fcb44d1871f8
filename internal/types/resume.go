// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// ResumeData is the single document edited by the builder.
// Skills is kept as one comma-separated string; use SkillList to iterate it.
type ResumeData struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Website    string       `json:"website"`
	Summary    string       `json:"summary"`
	Skills     string       `json:"skills"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
}

// Education is one entry of the education list
type Education struct {
	ID         string `json:"id"`
	University string `json:"university"`
	Degree     string `json:"degree"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// Experience is one entry of the experience list.
// Description holds one bullet per line.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Project is one entry of the projects list
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

// NewID returns a fresh identifier for a list element.
func NewID() string {
	return uuid.NewString()
}

// DefaultResume returns the placeholder document used when no draft exists.
// Every call produces fresh element ids.
func DefaultResume() ResumeData {
	return ResumeData{
		Name:    "Your Name",
		Email:   "youremail@example.com",
		Phone:   "123-456-7890",
		Website: "yourportfolio.com",
		Summary: "A brief professional summary about yourself.",
		Skills:  "React, TypeScript, Node.js, Tailwind CSS",
		Education: []Education{
			{ID: NewID(), University: "University of Example", Degree: "B.S. in Computer Science", StartDate: "2018", EndDate: "2022"},
		},
		Experience: []Experience{
			{ID: NewID(), Company: "Tech Corp", Title: "Software Engineer", StartDate: "2022", EndDate: "Present", Description: "- Developed and maintained web applications.\n- Collaborated with cross-functional teams."},
		},
		Projects: []Project{
			{ID: NewID(), Name: "Project A", Description: "A cool project I built.", URL: "github.com/yourname/project-a"},
		},
	}
}

// Normalize replaces nil lists with empty ones so the document always
// serializes its three lists as arrays.
func (r *ResumeData) Normalize() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
}

// Clone returns a deep copy of the document.
func (r ResumeData) Clone() ResumeData {
	out := r
	out.Education = append([]Education{}, r.Education...)
	out.Experience = append([]Experience{}, r.Experience...)
	out.Projects = append([]Project{}, r.Projects...)
	return out
}

// AssignIDs gives every list element a fresh id, discarding any existing one.
func (r *ResumeData) AssignIDs() {
	for i := range r.Education {
		r.Education[i].ID = NewID()
	}
	for i := range r.Experience {
		r.Experience[i].ID = NewID()
	}
	for i := range r.Projects {
		r.Projects[i].ID = NewID()
	}
}

// FindExperience returns the experience entry with the given id.
func (r ResumeData) FindExperience(id string) (Experience, bool) {
	for _, exp := range r.Experience {
		if exp.ID == id {
			return exp, true
		}
	}
	return Experience{}, false
}

// Field returns the value of a scalar field.
func (r ResumeData) Field(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldWebsite:
		return r.Website
	case FieldSummary:
		return r.Summary
	case FieldSkills:
		return r.Skills
	}
	return ""
}

// SetField replaces the value of a scalar field. Unknown fields are ignored.
func (r *ResumeData) SetField(f Field, value string) {
	switch f {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldWebsite:
		r.Website = value
	case FieldSummary:
		r.Summary = value
	case FieldSkills:
		r.Skills = value
	}
}
