package generation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// fakeGenerator produces artifacts after an optional per-job delay, and fails
// the jobs listed in failIDs.
type fakeGenerator struct {
	delays  map[string]time.Duration
	failIDs map[string]bool
}

func (f *fakeGenerator) Generate(ctx context.Context, _ uuid.UUID, _ types.Profile, job types.JobDescription, _ types.Preferences) (*types.Artifact, error) {
	if d, ok := f.delays[job.ID]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failIDs[job.ID] {
		return nil, fmt.Errorf("generation blew up")
	}
	return &types.Artifact{JobID: job.ID, Region: job.Region}, nil
}

// captureRecorder remembers recorded entries.
type captureRecorder struct {
	mu      sync.Mutex
	entries []*types.HistoryEntry
}

func (r *captureRecorder) Record(_ context.Context, entry *types.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *captureRecorder) all() []*types.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*types.HistoryEntry(nil), r.entries...)
}

type fakeBundler struct{ url string }

func (b *fakeBundler) Bundle(_ *types.GenerationRun) (string, error) {
	return b.url, nil
}

func snapshot(version int) *types.VersionedProfile {
	return &types.VersionedProfile{
		Profile: types.Profile{Name: "Ada Lovelace"},
		Version: version,
	}
}

func jobSet(ids ...string) []types.JobDescription {
	jobs := make([]types.JobDescription, len(ids))
	for i, id := range ids {
		jobs[i] = types.JobDescription{
			ID:      id,
			Company: "Acme",
			Title:   "Engineer",
			Region:  types.RegionUS,
			RawText: "posting text",
		}
	}
	return jobs
}

func waitTerminal(t *testing.T, o *Orchestrator, runID uuid.UUID) *types.GenerationRun {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		run, err := o.Status(runID)
		require.NoError(t, err)
		if run.State.Terminal() {
			return run
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("run never reached a terminal state")
	return nil
}

func TestSubmit_ReturnsQueuedRunImmediately(t *testing.T) {
	gen := &fakeGenerator{delays: map[string]time.Duration{"a": 200 * time.Millisecond}}
	o := NewOrchestrator(gen, nil, nil, Options{})

	start := time.Now()
	run, err := o.Submit(context.Background(), uuid.New(), snapshot(3), jobSet("a"), nil)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 100*time.Millisecond, "submit must not wait for generation")
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, 3, run.ProfileVersion)
	assert.Equal(t, []string{"a"}, run.JobIDs)
	assert.Empty(t, run.Artifacts, "queued runs expose no artifacts")

	waitTerminal(t, o, run.ID)
}

func TestSubmit_Validation(t *testing.T) {
	o := NewOrchestrator(&fakeGenerator{}, nil, nil, Options{})
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name     string
		snapshot *types.VersionedProfile
		jobs     []types.JobDescription
	}{
		{"nil snapshot", nil, jobSet("a")},
		{"unnamed profile", &types.VersionedProfile{}, jobSet("a")},
		{"no jobs", snapshot(1), nil},
		{"job without text", snapshot(1), []types.JobDescription{{ID: "a", Region: types.RegionUS}}},
		{"job with bad region", snapshot(1), []types.JobDescription{{ID: "a", Region: "XX", RawText: "text"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.Submit(ctx, userID, tt.snapshot, tt.jobs, nil)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestSubmit_AssignsMissingJobIDs(t *testing.T) {
	o := NewOrchestrator(&fakeGenerator{}, nil, nil, Options{})

	jobs := jobSet("", "")
	jobs[0].ID = ""
	jobs[1].ID = ""

	run, err := o.Submit(context.Background(), uuid.New(), snapshot(1), jobs, nil)
	require.NoError(t, err)
	require.Len(t, run.JobIDs, 2)
	assert.NotEmpty(t, run.JobIDs[0])
	assert.NotEmpty(t, run.JobIDs[1])
	assert.NotEqual(t, run.JobIDs[0], run.JobIDs[1])

	waitTerminal(t, o, run.ID)
}

func TestProcess_ArtifactsKeepSubmissionOrder(t *testing.T) {
	// The first job finishes last; artifact order must still match job order.
	gen := &fakeGenerator{delays: map[string]time.Duration{
		"a": 60 * time.Millisecond,
		"b": 20 * time.Millisecond,
		"c": 1 * time.Millisecond,
	}}
	o := NewOrchestrator(gen, nil, nil, Options{Concurrency: 3})

	run, err := o.Submit(context.Background(), uuid.New(), snapshot(1), jobSet("a", "b", "c"), nil)
	require.NoError(t, err)

	final := waitTerminal(t, o, run.ID)
	assert.Equal(t, types.RunCompleted, final.State)
	require.Len(t, final.Artifacts, 3)
	assert.Equal(t, "a", final.Artifacts[0].JobID)
	assert.Equal(t, "b", final.Artifacts[1].JobID)
	assert.Equal(t, "c", final.Artifacts[2].JobID)
	assert.NotNil(t, final.CompletedAt)
}

func TestProcess_OneFailureFailsTheRun(t *testing.T) {
	gen := &fakeGenerator{failIDs: map[string]bool{"b": true}}
	recorder := &captureRecorder{}
	o := NewOrchestrator(gen, nil, recorder, Options{})

	run, err := o.Submit(context.Background(), uuid.New(), snapshot(1), jobSet("a", "b", "c"), nil)
	require.NoError(t, err)

	final := waitTerminal(t, o, run.ID)
	assert.Equal(t, types.RunFailed, final.State)
	assert.Empty(t, final.Artifacts, "failed runs expose no partial artifacts")
	assert.Contains(t, final.FailureCause, "b")
	assert.NotNil(t, final.CompletedAt)

	require.Len(t, recorder.all(), 1)
	assert.Equal(t, types.RunFailed, recorder.all()[0].Run.State)
}

func TestProcess_CompletedRunIsBundledAndRecorded(t *testing.T) {
	recorder := &captureRecorder{}
	bundler := &fakeBundler{url: "/artifacts/run.zip"}
	o := NewOrchestrator(&fakeGenerator{}, bundler, recorder, Options{})

	run, err := o.Submit(context.Background(), uuid.New(), snapshot(2), jobSet("a"), types.Preferences{"tone": "direct"})
	require.NoError(t, err)

	final := waitTerminal(t, o, run.ID)
	assert.Equal(t, types.RunCompleted, final.State)
	assert.Equal(t, "/artifacts/run.zip", final.BundleURL)

	entries := recorder.all()
	require.Len(t, entries, 1)
	assert.Equal(t, run.ID, entries[0].Run.ID)
	assert.Equal(t, "direct", entries[0].Prefs["tone"])
	require.Len(t, entries[0].Jobs, 1)
	assert.Equal(t, "a", entries[0].Jobs[0].ID)
}

// observingBundler polls the orchestrator while the bundle is being built, so
// the test can see what state the registry exposes mid-bundling.
type observingBundler struct {
	orch     *Orchestrator
	observed types.RunState
	staged   types.GenerationRun
}

func (b *observingBundler) Bundle(run *types.GenerationRun) (string, error) {
	b.staged = *run
	if live, err := b.orch.Status(run.ID); err == nil {
		b.observed = live.State
	}
	return "/artifacts/run_" + run.ID.String() + ".zip", nil
}

func TestProcess_BundleAttachesWithCompletion(t *testing.T) {
	bundler := &observingBundler{}
	o := NewOrchestrator(&fakeGenerator{}, bundler, nil, Options{})
	bundler.orch = o

	run, err := o.Submit(context.Background(), uuid.New(), snapshot(1), jobSet("a", "b"), nil)
	require.NoError(t, err)

	final := waitTerminal(t, o, run.ID)
	assert.Equal(t, types.RunCompleted, final.State)
	assert.NotEmpty(t, final.BundleURL)

	// Bundling runs against a staged copy before the run turns terminal: the
	// registry still reports processing, so a poll can never observe a
	// completed run that is missing its zip, and the terminal run is never
	// mutated after the fact.
	assert.Equal(t, types.RunProcessing, bundler.observed)
	assert.Equal(t, types.RunCompleted, bundler.staged.State)
	assert.Len(t, bundler.staged.Artifacts, 2)
}

func TestStatus_UnknownRun(t *testing.T) {
	o := NewOrchestrator(&fakeGenerator{}, nil, nil, Options{})

	_, err := o.Status(uuid.New())
	var notFound *ErrRunNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestStatus_IsIdempotentOnTerminalRuns(t *testing.T) {
	o := NewOrchestrator(&fakeGenerator{}, nil, nil, Options{})

	run, err := o.Submit(context.Background(), uuid.New(), snapshot(1), jobSet("a"), nil)
	require.NoError(t, err)
	final := waitTerminal(t, o, run.ID)

	again, err := o.Status(run.ID)
	require.NoError(t, err)
	assert.Equal(t, final.State, again.State)
	assert.Equal(t, final.Artifacts, again.Artifacts)
	assert.Equal(t, final.CompletedAt, again.CompletedAt)
}

func TestStatus_ReturnsACopy(t *testing.T) {
	o := NewOrchestrator(&fakeGenerator{}, nil, nil, Options{})

	run, err := o.Submit(context.Background(), uuid.New(), snapshot(1), jobSet("a", "b"), nil)
	require.NoError(t, err)
	waitTerminal(t, o, run.ID)

	got, err := o.Status(run.ID)
	require.NoError(t, err)
	got.JobIDs[0] = "tampered"
	got.Artifacts[0].JobID = "tampered"

	fresh, err := o.Status(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", fresh.JobIDs[0])
	assert.Equal(t, "a", fresh.Artifacts[0].JobID)
}
