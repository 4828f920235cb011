package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// Store persists history entries. Entries are append-only at the head:
// listing returns newest first and an offset window never omits entries that
// existed at request time. Find returns (nil, nil) for an unknown run.
type Store interface {
	Record(ctx context.Context, entry *types.HistoryEntry) error
	Find(ctx context.Context, userID, runID uuid.UUID) (*types.HistoryEntry, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]types.HistoryEntry, error)
}

// Submitter starts a new generation run; satisfied by the orchestrator.
type Submitter interface {
	Submit(ctx context.Context, userID uuid.UUID, snapshot *types.VersionedProfile, jobs []types.JobDescription, prefs types.Preferences) (*types.GenerationRun, error)
}

// ProfileSource resolves the current profile for an identity.
type ProfileSource interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.VersionedProfile, error)
}

// Ledger is the history service over a Store.
type Ledger struct {
	store     Store
	submitter Submitter
	profiles  ProfileSource
}

// NewLedger creates a Ledger. The submitter and profile source are only
// needed for Regenerate and may be nil in read-only contexts.
func NewLedger(store Store, submitter Submitter, profiles ProfileSource) *Ledger {
	return &Ledger{store: store, submitter: submitter, profiles: profiles}
}

// Record persists a terminal run. It implements the orchestrator's Recorder.
func (l *Ledger) Record(ctx context.Context, entry *types.HistoryEntry) error {
	if entry == nil || !entry.Run.State.Terminal() {
		return fmt.Errorf("only terminal runs are recorded in history")
	}
	return l.store.Record(ctx, entry)
}

// Find returns one history entry by run id.
func (l *Ledger) Find(ctx context.Context, userID, runID uuid.UUID) (*types.HistoryEntry, error) {
	entry, err := l.store.Find(ctx, userID, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up history entry: %w", err)
	}
	if entry == nil {
		return nil, &ErrNotFound{RunID: runID}
	}
	return entry, nil
}

// List returns one page of history entries ordered by creation time
// descending. Pages past the end yield an empty sequence, not an error.
func (l *Ledger) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]types.HistoryEntry, error) {
	if page < 1 {
		return nil, &ValidationError{Field: "page", Message: "page must be >= 1"}
	}
	if pageSize < 1 {
		return nil, &ValidationError{Field: "page_size", Message: "page_size must be >= 1"}
	}

	entries, err := l.store.List(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	return entries, nil
}

// Regenerate assembles a fresh submission from a past run's recorded job set
// and the identity's current profile, and submits it as a brand-new run. The
// old run is never mutated or resubmitted.
func (l *Ledger) Regenerate(ctx context.Context, userID, runID uuid.UUID) (*types.GenerationRun, error) {
	entry, err := l.Find(ctx, userID, runID)
	if err != nil {
		return nil, err
	}

	snapshot, err := l.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs := append([]types.JobDescription(nil), entry.Jobs...)
	return l.submitter.Submit(ctx, userID, snapshot, jobs, entry.Prefs)
}
