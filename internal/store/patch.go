package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// ItemPatch is a partial update for one element of a specific list.
// Nil fields are left untouched.
type ItemPatch interface {
	list() types.ListName
}

// EducationPatch updates fields of an Education element
type EducationPatch struct {
	University *string `json:"university,omitempty"`
	Degree     *string `json:"degree,omitempty"`
	StartDate  *string `json:"startDate,omitempty"`
	EndDate    *string `json:"endDate,omitempty"`
}

// ExperiencePatch updates fields of an Experience element
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Title       *string `json:"title,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProjectPatch updates fields of a Project element
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
}

func (EducationPatch) list() types.ListName  { return types.ListEducation }
func (ExperiencePatch) list() types.ListName { return types.ListExperience }
func (ProjectPatch) list() types.ListName    { return types.ListProjects }

func (p EducationPatch) applyTo(e *types.Education) {
	set(&e.University, p.University)
	set(&e.Degree, p.Degree)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
}

func (p ExperiencePatch) applyTo(e *types.Experience) {
	set(&e.Company, p.Company)
	set(&e.Title, p.Title)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
	set(&e.Description, p.Description)
}

func (p ProjectPatch) applyTo(e *types.Project) {
	set(&e.Name, p.Name)
	set(&e.Description, p.Description)
	set(&e.URL, p.URL)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Str returns a pointer to s, for building patches inline.
func Str(s string) *string {
	return &s
}

// DecodePatch decodes a JSON object into the patch type for list.
// Keys that are not editable fields of that list (including "id") are rejected.
func DecodePatch(list types.ListName, data []byte) (ItemPatch, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	switch list {
	case types.ListEducation:
		var p EducationPatch
		if err := dec.Decode(&p); err != nil {
			return nil, &PatchFieldError{List: list, Cause: err}
		}
		return p, nil
	case types.ListExperience:
		var p ExperiencePatch
		if err := dec.Decode(&p); err != nil {
			return nil, &PatchFieldError{List: list, Cause: err}
		}
		return p, nil
	case types.ListProjects:
		var p ProjectPatch
		if err := dec.Decode(&p); err != nil {
			return nil, &PatchFieldError{List: list, Cause: err}
		}
		return p, nil
	}
	return nil, &UnknownListError{List: list}
}

// ParsePatch builds a patch from field=value pairs (as given on the command line).
func ParsePatch(list types.ListName, fields map[string]string) (ItemPatch, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch fields: %w", err)
	}
	return DecodePatch(list, data)
}
