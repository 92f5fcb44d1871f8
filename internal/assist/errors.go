// Package assist builds prompts for the AI writing features and turns model
// output into values the document store can accept.
package assist

import "fmt"

// Operation names used in errors and logs
const (
	OpSummary     = "summary"
	OpEnhance     = "enhance"
	OpSkills      = "skills"
	OpKeywords    = "keywords"
	OpDraft       = "draft"
	OpCoverLetter = "cover-letter"
)

// GenerationError is the single error kind returned by the gateway.
// It covers transport failures, empty output and unparseable output.
type GenerationError struct {
	Op      string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s generation failed: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s generation failed: %s", e.Op, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
