// Package memstore provides in-memory persistence for local development and
// tests: users, profile versions and the history ledger, with the same
// contracts the PostgreSQL layer implements.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/types"
)

type userRecord struct {
	user         types.User
	passwordHash string
}

// Store holds all in-memory state. The zero value is not usable; use New.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]userRecord
	byEmail  map[string]uuid.UUID
	profiles map[uuid.UUID][]types.VersionedProfile
	history  map[uuid.UUID][]types.HistoryEntry
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]userRecord),
		byEmail:  make(map[string]uuid.UUID),
		profiles: make(map[uuid.UUID][]types.VersionedProfile),
		history:  make(map[uuid.UUID][]types.HistoryEntry),
	}
}

// CreateUser stores a new user and returns its id.
func (s *Store) CreateUser(_ context.Context, email, passwordHash string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.users[id] = userRecord{
		user:         types.User{ID: id, Email: email, CreatedAt: time.Now().UTC()},
		passwordHash: passwordHash,
	}
	s.byEmail[email] = id
	return id, nil
}

// GetUserByEmail returns the user and password hash for an email, or nils.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*types.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, "", nil
	}
	rec := s.users[id]
	user := rec.user
	return &user, rec.passwordHash, nil
}

// EmailExists reports whether an account with the email exists.
func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[email]
	return ok, nil
}

// GetCurrent returns the latest profile version for the identity, or nil.
func (s *Store) GetCurrent(_ context.Context, userID uuid.UUID) (*types.VersionedProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.profiles[userID]
	if len(versions) == 0 {
		return nil, nil
	}
	vp := versions[len(versions)-1]
	return &vp, nil
}

// InsertVersion appends a profile version. Prior versions are retained.
func (s *Store) InsertVersion(_ context.Context, userID uuid.UUID, vp *types.VersionedProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = append(s.profiles[userID], *vp)
	return nil
}

// Record appends a history entry at the head of the identity's ledger.
func (s *Store) Record(_ context.Context, entry *types.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := entry.Run.UserID
	s.history[userID] = append(s.history[userID], *entry)
	return nil
}

// Find returns one history entry by run id, or nil if absent.
func (s *Store) Find(_ context.Context, userID, runID uuid.UUID) (*types.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.history[userID] {
		if entry.Run.ID == runID {
			found := entry
			return &found, nil
		}
	}
	return nil, nil
}

// List returns a window of history entries sorted by creation time
// descending. The sort is stable so entries created in the same instant keep
// insertion order, and a window never omits entries present at request time.
func (s *Store) List(_ context.Context, userID uuid.UUID, offset, limit int) ([]types.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.history[userID]
	all := make([]types.HistoryEntry, len(entries))
	for i, entry := range entries {
		all[len(entries)-1-i] = entry
	}
	// Reversed insertion order already puts the newest first; the stable sort
	// keeps that order for entries sharing a timestamp.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Run.CreatedAt.After(all[j].Run.CreatedAt)
	})

	if offset >= len(all) {
		return []types.HistoryEntry{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
