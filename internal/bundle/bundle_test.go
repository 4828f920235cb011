package bundle

import (
	"archive/zip"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umukozihr/resume-tailor/internal/artifacts"
	"github.com/umukozihr/resume-tailor/internal/types"
)

func newTestStore(t *testing.T) *artifacts.Store {
	t.Helper()
	store, err := artifacts.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func completedRun(t *testing.T, store *artifacts.Store) *types.GenerationRun {
	t.Helper()
	resumeURL, err := store.Write("job1_resume.tex", []byte(`\documentclass{article}`))
	require.NoError(t, err)
	coverURL, err := store.Write("job1_cover_letter.tex", []byte(`Dear team,`))
	require.NoError(t, err)

	now := time.Now().UTC()
	return &types.GenerationRun{
		ID:     uuid.New(),
		UserID: uuid.New(),
		JobIDs: []string{"job1"},
		State:  types.RunCompleted,
		Artifacts: []types.Artifact{{
			JobID:             "job1",
			Region:            types.RegionUS,
			ResumeSourceURL:   resumeURL,
			CoverLetterSrcURL: coverURL,
			CreatedAt:         now,
			UpdatedAt:         now,
		}},
		CreatedAt:   now,
		CompletedAt: &now,
	}
}

func TestBundle_PackagesAllArtifactFiles(t *testing.T) {
	store := newTestStore(t)
	run := completedRun(t, store)

	url, err := New(store).Bundle(run)
	require.NoError(t, err)
	assert.Equal(t, "/artifacts/run_"+run.ID.String()+".zip", url)

	zr, err := zip.OpenReader(store.Path("run_" + run.ID.String() + ".zip"))
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"job1_resume.tex", "job1_cover_letter.tex"}, names)
}

func TestBundle_IsIdempotent(t *testing.T) {
	store := newTestStore(t)
	run := completedRun(t, store)
	bundler := New(store)

	first, err := bundler.Bundle(run)
	require.NoError(t, err)
	second, err := bundler.Bundle(run)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBundle_RejectsNonCompletedRuns(t *testing.T) {
	store := newTestStore(t)
	bundler := New(store)

	for _, state := range []types.RunState{types.RunQueued, types.RunProcessing, types.RunFailed} {
		t.Run(string(state), func(t *testing.T) {
			run := &types.GenerationRun{ID: uuid.New(), State: state}
			_, err := bundler.Bundle(run)

			var berr *Error
			assert.ErrorAs(t, err, &berr)
		})
	}
}

func TestBundle_RejectsRunWithoutArtifacts(t *testing.T) {
	store := newTestStore(t)
	run := &types.GenerationRun{ID: uuid.New(), State: types.RunCompleted}

	_, err := New(store).Bundle(run)

	var berr *Error
	assert.ErrorAs(t, err, &berr)
}

func TestBundle_MissingArtifactFileFails(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()
	run := &types.GenerationRun{
		ID:    uuid.New(),
		State: types.RunCompleted,
		Artifacts: []types.Artifact{{
			JobID:           "job1",
			ResumeSourceURL: "/artifacts/never_written.tex",
			CreatedAt:       now,
		}},
	}

	_, err := New(store).Bundle(run)
	assert.Error(t, err)
}
