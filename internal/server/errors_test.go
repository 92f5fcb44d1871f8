package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/assist"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/contact"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "field", Message: "unknown field \"age\""}
	assert.Equal(t, "validation error: field - unknown field \"age\"", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&builder.InputError{Message: builder.MissingJobTitle}, http.StatusBadRequest},
		{&store.PatchMismatchError{List: types.ListProjects}, http.StatusBadRequest},
		{&store.UnknownListError{List: "hobbies"}, http.StatusBadRequest},
		{&store.DecodeError{Message: "bad"}, http.StatusBadRequest},
		{&contact.InputError{Message: "bad"}, http.StatusBadRequest},
		{&builder.NotFoundError{List: types.ListExperience, ID: "x"}, http.StatusNotFound},
		{&contact.SubmissionError{Message: "nope"}, http.StatusUnprocessableEntity},
		{&contact.NetworkError{}, http.StatusBadGateway},
		{&assist.GenerationError{Op: assist.OpDraft}, http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", &assist.GenerationError{Op: assist.OpSummary}), http.StatusBadGateway},
		{&export.ExportError{Message: "no chrome"}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "%T", tt.err)
	}
}
