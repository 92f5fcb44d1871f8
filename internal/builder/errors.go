// Package builder composes the document store, the assist gateway, the
// renderer and the exporter into the flows the editor offers.
package builder

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Messages returned when a request is missing its input
const (
	MissingJobDescriptionForKeywords = "Please paste a job description to analyze."
	MissingJobDescriptionForLetter   = "Please paste a job description first."
	MissingJobTitle                  = "Please enter a job title."
)

var errNoExporter = errors.New("no PDF exporter configured")

// NotFoundError is returned when an operation names a list element that does not exist.
type NotFoundError struct {
	List types.ListName
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s entry with id %q", e.List, e.ID)
}

// InputError is returned when a request is missing required input.
// Message is safe to show to the user.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
