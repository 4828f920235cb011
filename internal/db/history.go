package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// Record persists a terminal run with the inputs needed for regeneration.
func (db *DB) Record(ctx context.Context, entry *types.HistoryEntry) error {
	jobIDsJSON, err := json.Marshal(entry.Run.JobIDs)
	if err != nil {
		return fmt.Errorf("failed to encode job ids: %w", err)
	}
	jobsJSON, err := json.Marshal(entry.Jobs)
	if err != nil {
		return fmt.Errorf("failed to encode jobs: %w", err)
	}
	prefsJSON, err := json.Marshal(entry.Prefs)
	if err != nil {
		return fmt.Errorf("failed to encode prefs: %w", err)
	}
	artifactsJSON, err := json.Marshal(entry.Run.Artifacts)
	if err != nil {
		return fmt.Errorf("failed to encode artifacts: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO generation_runs
		 (run_id, user_id, profile_version, state, failure_cause, job_ids, jobs, prefs, artifacts, bundle_url, created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (run_id) DO NOTHING`,
		entry.Run.ID, entry.Run.UserID, entry.Run.ProfileVersion, string(entry.Run.State),
		entry.Run.FailureCause, jobIDsJSON, jobsJSON, prefsJSON, artifactsJSON,
		entry.Run.BundleURL, entry.Run.CreatedAt, entry.Run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", entry.Run.ID, err)
	}
	return nil
}

// Find returns one history entry by run id, or nil when absent.
func (db *DB) Find(ctx context.Context, userID, runID uuid.UUID) (*types.HistoryEntry, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT run_id, user_id, profile_version, state, failure_cause, job_ids, jobs, prefs, artifacts, bundle_url, created_at, completed_at
		 FROM generation_runs
		 WHERE user_id = $1 AND run_id = $2`,
		userID, runID,
	)

	entry, err := scanHistoryEntry(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find run %s: %w", runID, err)
	}
	return entry, nil
}

// List returns a window of history entries ordered by creation time
// descending; ties break on run id so pagination is deterministic.
func (db *DB) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]types.HistoryEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT run_id, user_id, profile_version, state, failure_cause, job_ids, jobs, prefs, artifacts, bundle_url, created_at, completed_at
		 FROM generation_runs
		 WHERE user_id = $1
		 ORDER BY created_at DESC, run_id DESC
		 OFFSET $2 LIMIT $3`,
		userID, offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := []types.HistoryEntry{}
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(row rowScanner) (*types.HistoryEntry, error) {
	var entry types.HistoryEntry
	var state string
	var jobIDsJSON, jobsJSON, prefsJSON, artifactsJSON []byte

	err := row.Scan(
		&entry.Run.ID, &entry.Run.UserID, &entry.Run.ProfileVersion, &state,
		&entry.Run.FailureCause, &jobIDsJSON, &jobsJSON, &prefsJSON, &artifactsJSON,
		&entry.Run.BundleURL, &entry.Run.CreatedAt, &entry.Run.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Run.State = types.RunState(state)
	if err := json.Unmarshal(jobIDsJSON, &entry.Run.JobIDs); err != nil {
		return nil, fmt.Errorf("failed to decode job ids: %w", err)
	}
	if err := json.Unmarshal(jobsJSON, &entry.Jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	if len(prefsJSON) > 0 {
		if err := json.Unmarshal(prefsJSON, &entry.Prefs); err != nil {
			return nil, fmt.Errorf("failed to decode prefs: %w", err)
		}
	}
	if len(artifactsJSON) > 0 {
		if err := json.Unmarshal(artifactsJSON, &entry.Run.Artifacts); err != nil {
			return nil, fmt.Errorf("failed to decode artifacts: %w", err)
		}
	}
	return &entry, nil
}
