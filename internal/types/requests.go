package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DraftRequest asks for a generated full resume draft.
type DraftRequest struct {
	JobTitle string `json:"job_title" validate:"required,max=200"`
}

// JobDescriptionRequest carries a pasted job description for keyword analysis or a cover letter.
type JobDescriptionRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

// FieldValueRequest carries one scalar field value.
type FieldValueRequest struct {
	Value string `json:"value"`
}

// ThemeRequest sets the theme preference.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// Validate validates the DraftRequest using the validator.
func (r *DraftRequest) Validate() error {
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	return validate.Struct(r)
}

// Validate validates the JobDescriptionRequest using the validator.
func (r *JobDescriptionRequest) Validate() error {
	r.JobDescription = strings.TrimSpace(r.JobDescription)
	return validate.Struct(r)
}

// Validate validates the ThemeRequest using the validator.
func (r *ThemeRequest) Validate() error {
	return validate.Struct(r)
}
