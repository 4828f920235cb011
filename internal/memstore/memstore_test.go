package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umukozihr/resume-tailor/internal/types"
)

func TestUsers(t *testing.T) {
	s := New()
	ctx := context.Background()

	exists, err := s.EmailExists(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	id, err := s.CreateUser(ctx, "ada@example.com", "hashed")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	exists, err = s.EmailExists(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	user, hash, err := s.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hashed", hash)

	user, hash, err = s.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Empty(t, hash)
}

func TestProfileVersions(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	vp, err := s.GetCurrent(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, vp)

	for v := 1; v <= 3; v++ {
		require.NoError(t, s.InsertVersion(ctx, userID, &types.VersionedProfile{
			Profile: types.Profile{Name: "Ada Lovelace"},
			Version: v,
		}))
	}

	vp, err = s.GetCurrent(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, vp)
	assert.Equal(t, 3, vp.Version)
}

func TestHistoryListNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().UTC().Add(-time.Hour)
	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, s.Record(ctx, &types.HistoryEntry{
			Run: types.GenerationRun{
				ID:        ids[i],
				UserID:    userID,
				State:     types.RunCompleted,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			},
		}))
	}

	entries, err := s.List(ctx, userID, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ids[2], entries[0].Run.ID)
	assert.Equal(t, ids[0], entries[2].Run.ID)
}

func TestHistoryListTimestampTiesKeepInsertionRecency(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	at := time.Now().UTC()
	first := uuid.New()
	second := uuid.New()
	for _, id := range []uuid.UUID{first, second} {
		require.NoError(t, s.Record(ctx, &types.HistoryEntry{
			Run: types.GenerationRun{ID: id, UserID: userID, State: types.RunCompleted, CreatedAt: at},
		}))
	}

	entries, err := s.List(ctx, userID, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second, entries[0].Run.ID, "later insertion wins the tie")
}

func TestHistoryListWindow(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, &types.HistoryEntry{
			Run: types.GenerationRun{
				ID:        uuid.New(),
				UserID:    userID,
				State:     types.RunCompleted,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			},
		}))
	}

	window, err := s.List(ctx, userID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, window, 2)

	tail, err := s.List(ctx, userID, 4, 2)
	require.NoError(t, err)
	assert.Len(t, tail, 1)

	past, err := s.List(ctx, userID, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestHistoryFind(t *testing.T) {
	s := New()
	ctx := context.Background()
	userID := uuid.New()
	runID := uuid.New()

	require.NoError(t, s.Record(ctx, &types.HistoryEntry{
		Run: types.GenerationRun{ID: runID, UserID: userID, State: types.RunFailed, CreatedAt: time.Now()},
	}))

	entry, err := s.Find(ctx, userID, runID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, runID, entry.Run.ID)

	// Scoped to the owning identity.
	entry, err = s.Find(ctx, uuid.New(), runID)
	require.NoError(t, err)
	assert.Nil(t, entry)
}
