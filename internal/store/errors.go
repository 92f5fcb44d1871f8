// Package store holds the single resume document and persists every change.
package store

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// PatchMismatchError is returned when an UpdateItem patch targets a different list
type PatchMismatchError struct {
	List  types.ListName
	Patch string
}

func (e *PatchMismatchError) Error() string {
	return fmt.Sprintf("patch for %q cannot update list %q", e.Patch, e.List)
}

// PatchFieldError is returned when a patch names a field the list does not have
type PatchFieldError struct {
	List  types.ListName
	Cause error
}

func (e *PatchFieldError) Error() string {
	return fmt.Sprintf("invalid %s patch: %v", e.List, e.Cause)
}

func (e *PatchFieldError) Unwrap() error {
	return e.Cause
}

// UnknownListError is returned for a list name outside the closed set
type UnknownListError struct {
	List types.ListName
}

func (e *UnknownListError) Error() string {
	return fmt.Sprintf("unknown list %q", e.List)
}

// DecodeError describes why a persisted draft could not be used
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode draft: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode draft: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
