// Package contact submits the contact form to a hosted form endpoint.
package contact

import "fmt"

// User-facing outcome messages
const (
	SuccessMessage      = "Thank you! Your message has been sent successfully."
	GenericErrorMessage = "Oops! There was a problem submitting your form."
	NetworkErrorMessage = "Oops! There was a network error. Please try again later."
)

// InputError is returned when the message fails validation before sending.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// SubmissionError is returned when the endpoint rejects the form.
// Message is safe to show to the user.
type SubmissionError struct {
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	return e.Message
}

// NetworkError is returned when the endpoint could not be reached or its
// reply could not be read.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%v)", NetworkErrorMessage, e.Cause)
	}
	return NetworkErrorMessage
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}
