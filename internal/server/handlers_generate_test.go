package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umukozihr/resume-tailor/internal/types"
)

func TestGenerate_WithStoredProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ada@example.com")
	env.saveProfile(t, token)

	w := env.do(t, http.MethodPost, "/generate/generate", token, types.GenerateRequest{
		Jobs: []types.JobDescription{testJob("j1"), testJob("j2")},
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var run types.GenerationRun
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, types.RunQueued, run.State)
	assert.Equal(t, 1, run.ProfileVersion)
	assert.Equal(t, []string{"j1", "j2"}, run.JobIDs)

	done := env.waitTerminal(t, token, run.ID.String())
	assert.Equal(t, types.RunCompleted, done.State)
	require.Len(t, done.Artifacts, 2)
	assert.Equal(t, "j1", done.Artifacts[0].JobID)
	assert.Equal(t, "j2", done.Artifacts[1].JobID)
	assert.NotNil(t, done.CompletedAt)
}

func TestGenerate_WithInlineProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ada@example.com")

	p := testProfile()
	w := env.do(t, http.MethodPost, "/generate/generate", token, types.GenerateRequest{
		Profile: &p,
		Jobs:    []types.JobDescription{testJob("j1")},
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var run types.GenerationRun
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))
	// An inline profile is a one-off snapshot, not a stored version.
	assert.Equal(t, 0, run.ProfileVersion)

	done := env.waitTerminal(t, token, run.ID.String())
	assert.Equal(t, types.RunCompleted, done.State)
}

func TestGenerate_NoProfileAnywhere(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ada@example.com")

	w := env.do(t, http.MethodPost, "/generate/generate", token, types.GenerateRequest{
		Jobs: []types.JobDescription{testJob("j1")},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no profile on file")
}

func TestGenerate_RequestValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ada@example.com")
	env.saveProfile(t, token)

	t.Run("no jobs", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/generate/generate", token, types.GenerateRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("job without text", func(t *testing.T) {
		job := testJob("j1")
		job.RawText = ""
		w := env.do(t, http.MethodPost, "/generate/generate", token, types.GenerateRequest{
			Jobs: []types.JobDescription{job},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad region", func(t *testing.T) {
		job := testJob("j1")
		job.Region = "XX"
		w := env.do(t, http.MethodPost, "/generate/generate", token, types.GenerateRequest{
			Jobs: []types.JobDescription{job},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGenerate_FailedJobFailsRun(t *testing.T) {
	env := newTestEnv(t)
	env.gen.failJobs["j2"] = true
	token := env.signup(t, "ada@example.com")
	env.saveProfile(t, token)

	w := env.do(t, http.MethodPost, "/generate/generate", token, types.GenerateRequest{
		Jobs: []types.JobDescription{testJob("j1"), testJob("j2")},
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var run types.GenerationRun
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))

	done := env.waitTerminal(t, token, run.ID.String())
	assert.Equal(t, types.RunFailed, done.State)
	assert.NotEmpty(t, done.FailureCause)
	assert.Empty(t, done.Artifacts, "failed runs expose no partial artifacts")
}

func TestRunStatus_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ada@example.com")

	w := env.do(t, http.MethodGet, "/generate/status/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunStatus_Unknown(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ada@example.com")

	w := env.do(t, http.MethodGet, "/generate/status/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunStatus_ScopedToSubmitter(t *testing.T) {
	env := newTestEnv(t)
	ada := env.signup(t, "ada@example.com")
	bob := env.signup(t, "bob@example.com")
	env.saveProfile(t, ada)

	w := env.do(t, http.MethodPost, "/generate/generate", ada, types.GenerateRequest{
		Jobs: []types.JobDescription{testJob("j1")},
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var run types.GenerationRun
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))

	got := env.do(t, http.MethodGet, "/generate/status/"+run.ID.String(), bob, nil)
	assert.Equal(t, http.StatusNotFound, got.Code, "another identity cannot see the run")
}
