package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// GetCurrent returns the latest profile version for the identity, or nil when
// the identity has never saved a profile. Prior versions stay in the table
// for audit but are not addressable here.
func (db *DB) GetCurrent(ctx context.Context, userID uuid.UUID) (*types.VersionedProfile, error) {
	var vp types.VersionedProfile
	var profileJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT profile, version, completeness, updated_at
		 FROM profile_versions
		 WHERE user_id = $1
		 ORDER BY version DESC
		 LIMIT 1`,
		userID,
	).Scan(&profileJSON, &vp.Version, &vp.Completeness, &vp.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current profile: %w", err)
	}

	if err := json.Unmarshal(profileJSON, &vp.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &vp, nil
}

// InsertVersion appends a new profile version. The (user_id, version) primary
// key rejects duplicate versions, so racing writers cannot silently clobber
// each other even without the store-level lock.
func (db *DB) InsertVersion(ctx context.Context, userID uuid.UUID, vp *types.VersionedProfile) error {
	profileJSON, err := json.Marshal(vp.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profile_versions (user_id, version, profile, completeness, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, vp.Version, profileJSON, vp.Completeness, vp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile version %d: %w", vp.Version, err)
	}
	return nil
}
