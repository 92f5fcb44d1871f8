// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/assist"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/contact"
	"github.com/jonathan/resume-builder/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr   *ErrValidation
		inputErr        *builder.InputError
		notFoundErr     *builder.NotFoundError
		mismatchErr     *store.PatchMismatchError
		patchFieldErr   *store.PatchFieldError
		unknownListErr  *store.UnknownListError
		decodeErr       *store.DecodeError
		contactInputErr *contact.InputError
		submissionErr   *contact.SubmissionError
		networkErr      *contact.NetworkError
		generationErr   *assist.GenerationError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &inputErr),
		errors.As(err, &mismatchErr),
		errors.As(err, &patchFieldErr),
		errors.As(err, &unknownListErr),
		errors.As(err, &decodeErr),
		errors.As(err, &contactInputErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &submissionErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &generationErr), errors.As(err, &networkErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
