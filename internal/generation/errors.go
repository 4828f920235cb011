// Package generation orchestrates asynchronous document generation runs.
package generation

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError indicates a malformed submission, fixable by the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRunNotFound indicates an unknown run id.
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}
