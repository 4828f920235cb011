// Package history persists terminal generation runs, offers paginated
// listing and supports regeneration from a past run's recorded inputs.
package history

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound indicates the run id does not exist in the ledger.
type ErrNotFound struct {
	RunID uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("history entry not found: %s", e.RunID)
}

// ValidationError indicates invalid pagination parameters.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
