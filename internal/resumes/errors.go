package resumes

import "errors"

var (
	// ErrNotFound covers both a missing draft and a draft owned by
	// someone else; callers cannot tell the two apart.
	ErrNotFound = errors.New("resume not found")

	// ErrStoreUnavailable marks backing-store failures, distinct from
	// not-found so clients can tell "try later" from "gone".
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError carries field-level messages for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
