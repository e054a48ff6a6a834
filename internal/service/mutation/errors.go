package mutation

import (
	"errors"
	"strings"
)

// ErrUnauthenticated is returned when a mutation has no requester identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// Issue is one field-level validation failure.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports input that failed validation before any store
// call was made.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = is.Field + ": " + is.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
