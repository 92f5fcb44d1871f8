// Package export turns a rendered resume into a one-page A4 PDF and stores it.
package export

import "fmt"

// ExportError is returned when capture, printing or storing a PDF fails.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export failed: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
