package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCaseNotFound and ErrPropertyNotFound signal a lookup against an id that
// is not in the registry.
var (
	ErrCaseNotFound     = errors.New("case not found")
	ErrPropertyNotFound = errors.New("property not found")

	// ErrDeleteNotConfirmed is returned when a hard delete is requested
	// without the explicit confirmation flag.
	ErrDeleteNotConfirmed = errors.New("delete requires explicit confirmation")
)

// ValidationError reports the required case fields missing at save time. It
// is caught at the form boundary and never mutates stored state.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ExternalServiceError wraps a failure from a collaborator (persistence,
// object storage, email, PDF rendering). These surface to the user as a
// message but are never fatal; the in-memory state stays usable.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
