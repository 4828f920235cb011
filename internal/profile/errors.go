// Package profile owns the versioned user profile and its completeness score.
package profile

import "fmt"

// ErrNotFound indicates no profile has been saved for the identity.
type ErrNotFound struct{}

func (e *ErrNotFound) Error() string {
	return "profile not found"
}

// ValidationError indicates a malformed profile payload, fixable by the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
