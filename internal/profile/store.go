package profile

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// Repo persists profile versions. GetCurrent returns (nil, nil) when the
// identity has no saved profile yet. Implementations must retain prior
// versions for audit; only the current version is addressable here.
type Repo interface {
	GetCurrent(ctx context.Context, userID uuid.UUID) (*types.VersionedProfile, error)
	InsertVersion(ctx context.Context, userID uuid.UUID, vp *types.VersionedProfile) error
}

// Store owns the versioned profile for each identity. Writes for the same
// identity serialize on a per-identity mutex so concurrent updates cannot
// lose versions; unrelated identities never contend.
type Store struct {
	repo Repo

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewStore creates a Store backed by the given repository.
func NewStore(repo Repo) *Store {
	return &Store{
		repo:  repo,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// identityLock returns the mutex for one identity, creating it on first use.
func (s *Store) identityLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Get returns the current profile version for the identity.
func (s *Store) Get(ctx context.Context, userID uuid.UUID) (*types.VersionedProfile, error) {
	vp, err := s.repo.GetCurrent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if vp == nil {
		return nil, &ErrNotFound{}
	}
	return vp, nil
}

// Update validates the profile, increments the version, recomputes the
// completeness score and persists the new version. The first save creates
// version 1.
func (s *Store) Update(ctx context.Context, userID uuid.UUID, p types.Profile) (*types.VersionedProfile, error) {
	if err := validateProfile(p); err != nil {
		return nil, err
	}

	lock := s.identityLock(userID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.repo.GetCurrent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current profile: %w", err)
	}

	version := 1
	if current != nil {
		version = current.Version + 1
	}

	vp := &types.VersionedProfile{
		Profile:      p,
		Version:      version,
		Completeness: Completeness(p),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.repo.InsertVersion(ctx, userID, vp); err != nil {
		return nil, fmt.Errorf("failed to persist profile version %d: %w", version, err)
	}
	return vp, nil
}

// SaveLegacy is the deprecated bulk-save path retained for backward
// compatibility. It funnels through Update so versioning and validation are
// never bypassed.
//
// Deprecated: callers should use Update.
func (s *Store) SaveLegacy(ctx context.Context, userID uuid.UUID, p types.Profile) (*types.VersionedProfile, error) {
	return s.Update(ctx, userID, p)
}

// Completeness returns the completeness score of the current profile.
func (s *Store) Completeness(ctx context.Context, userID uuid.UUID) (int, error) {
	vp, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return Completeness(vp.Profile), nil
}

// validateProfile checks that required fields are well-formed. Rules are
// region-agnostic: a name is required, and any experience entry must carry a
// title and company.
func validateProfile(p types.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	for i, role := range p.Experience {
		if strings.TrimSpace(role.Title) == "" {
			return &ValidationError{Field: fmt.Sprintf("experience[%d].title", i), Message: "title is required"}
		}
		if strings.TrimSpace(role.Company) == "" {
			return &ValidationError{Field: fmt.Sprintf("experience[%d].company", i), Message: "company is required"}
		}
	}
	for i, edu := range p.Education {
		if strings.TrimSpace(edu.School) == "" {
			return &ValidationError{Field: fmt.Sprintf("education[%d].school", i), Message: "school is required"}
		}
	}
	return nil
}
