package generation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/types"
	"golang.org/x/sync/errgroup"
)

// DocumentGenerator is the external document generation collaborator. It is
// called once per job within a run.
type DocumentGenerator interface {
	Generate(ctx context.Context, runID uuid.UUID, profile types.Profile, job types.JobDescription, prefs types.Preferences) (*types.Artifact, error)
}

// Bundler packages a completed run's artifacts into a downloadable bundle.
type Bundler interface {
	Bundle(run *types.GenerationRun) (string, error)
}

// Recorder persists terminal runs so they appear in history.
type Recorder interface {
	Record(ctx context.Context, entry *types.HistoryEntry) error
}

// Options bound the orchestrator's concurrency and per-job patience.
type Options struct {
	// Concurrency caps in-flight generation calls within one run, to respect
	// upstream rate limits. Zero means DefaultConcurrency.
	Concurrency int
	// JobTimeout bounds each per-job generation call. Exceeding it counts as
	// that job's failure. Zero means DefaultJobTimeout.
	JobTimeout time.Duration
}

// DefaultConcurrency is the per-run generation concurrency cap.
const DefaultConcurrency = 3

// DefaultJobTimeout is the per-job generation deadline.
const DefaultJobTimeout = 2 * time.Minute

// Orchestrator accepts a profile snapshot plus a set of job records, creates
// a generation run, and drives it through queued -> processing ->
// {completed|failed}. Submit is non-blocking; callers learn the outcome by
// polling Status. Terminal runs are read-only.
type Orchestrator struct {
	gen      DocumentGenerator
	bundler  Bundler
	recorder Recorder
	opts     Options

	mu   sync.RWMutex
	runs map[uuid.UUID]*types.GenerationRun
}

// NewOrchestrator creates an Orchestrator. The bundler and recorder may be
// nil, in which case completed runs carry no bundle and terminal runs are not
// persisted to history.
func NewOrchestrator(gen DocumentGenerator, bundler Bundler, recorder Recorder, opts Options) *Orchestrator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = DefaultJobTimeout
	}
	return &Orchestrator{
		gen:      gen,
		bundler:  bundler,
		recorder: recorder,
		opts:     opts,
		runs:     make(map[uuid.UUID]*types.GenerationRun),
	}
}

// Submit validates the inputs, persists a run in the queued state and hands
// it off to asynchronous processing. It returns immediately; a later profile
// update does not alter the in-flight run because the snapshot is fixed here.
func (o *Orchestrator) Submit(ctx context.Context, userID uuid.UUID, snapshot *types.VersionedProfile, jobs []types.JobDescription, prefs types.Preferences) (*types.GenerationRun, error) {
	if snapshot == nil || strings.TrimSpace(snapshot.Profile.Name) == "" {
		return nil, &ValidationError{Field: "profile", Message: "a profile snapshot with a name is required"}
	}
	if len(jobs) == 0 {
		return nil, &ValidationError{Field: "jobs", Message: "at least one job is required"}
	}

	jobSet := make([]types.JobDescription, len(jobs))
	jobIDs := make([]string, len(jobs))
	for i, job := range jobs {
		if strings.TrimSpace(job.RawText) == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("jobs[%d].jd_text", i), Message: "job description text is required"}
		}
		if !types.ValidRegion(job.Region) {
			return nil, &ValidationError{Field: fmt.Sprintf("jobs[%d].region", i), Message: "region must be one of US, EU, GL"}
		}
		if job.ID == "" {
			job.ID = uuid.New().String()
		}
		jobSet[i] = job
		jobIDs[i] = job.ID
	}

	run := &types.GenerationRun{
		ID:             uuid.New(),
		UserID:         userID,
		ProfileVersion: snapshot.Version,
		JobIDs:         jobIDs,
		State:          types.RunQueued,
		CreatedAt:      time.Now().UTC(),
	}

	o.mu.Lock()
	o.runs[run.ID] = run
	o.mu.Unlock()

	profileCopy := snapshot.Profile
	// The run outlives the submitting request; processing must not inherit
	// its cancellation.
	go o.process(context.Background(), run.ID, profileCopy, jobSet, prefs)

	log.Printf("[RUN %s] queued with %d job(s)", run.ID, len(jobSet))
	return o.snapshotRun(run.ID)
}

// Status returns the current state of a run and, when terminal, its artifact
// list and bundle reference. It is idempotent and safe to poll.
func (o *Orchestrator) Status(runID uuid.UUID) (*types.GenerationRun, error) {
	run, err := o.snapshotRun(runID)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// process drives one run to a terminal state. Per-job generation calls run
// concurrently up to the configured limit; results land in an indexed buffer
// so artifacts are exposed in submission order regardless of completion order.
func (o *Orchestrator) process(ctx context.Context, runID uuid.UUID, profile types.Profile, jobs []types.JobDescription, prefs types.Preferences) {
	o.transition(runID, types.RunProcessing, nil, "", "")

	results := make([]*types.Artifact, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			jobCtx, cancel := context.WithTimeout(gCtx, o.opts.JobTimeout)
			defer cancel()

			artifact, err := o.gen.Generate(jobCtx, runID, profile, job, prefs)
			if err != nil {
				return fmt.Errorf("job %s (%s at %s): %w", job.ID, job.Title, job.Company, err)
			}
			results[i] = artifact
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// One failed job fails the whole run; no partial artifact set is
		// ever published as completed.
		log.Printf("[RUN %s] failed: %v", runID, err)
		o.transition(runID, types.RunFailed, nil, err.Error(), "")
		o.record(ctx, runID, jobs, prefs)
		return
	}

	ordered := make([]types.Artifact, len(results))
	for i, artifact := range results {
		ordered[i] = *artifact
	}

	// Bundle against a staged copy first so the run becomes terminal with its
	// bundle reference already attached; a poll never sees a completed run
	// without its zip, and the terminal run is never mutated afterwards.
	var bundleURL string
	if o.bundler != nil {
		if staged, err := o.snapshotRun(runID); err == nil {
			staged.State = types.RunCompleted
			staged.Artifacts = ordered
			if url, bundleErr := o.bundler.Bundle(staged); bundleErr != nil {
				log.Printf("[RUN %s] bundling failed: %v", runID, bundleErr)
			} else {
				bundleURL = url
			}
		}
	}

	o.transition(runID, types.RunCompleted, ordered, "", bundleURL)

	log.Printf("[RUN %s] completed with %d artifact(s)", runID, len(ordered))
	o.record(ctx, runID, jobs, prefs)
}

// transition applies a state change. Terminal states are never left, and a
// terminal transition carries everything the run will ever expose.
func (o *Orchestrator) transition(runID uuid.UUID, state types.RunState, artifacts []types.Artifact, cause, bundleURL string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	run, ok := o.runs[runID]
	if !ok || run.State.Terminal() {
		return
	}

	run.State = state
	if artifacts != nil {
		run.Artifacts = artifacts
	}
	if cause != "" {
		run.FailureCause = cause
	}
	if bundleURL != "" {
		run.BundleURL = bundleURL
	}
	if state.Terminal() {
		now := time.Now().UTC()
		run.CompletedAt = &now
	}
}

// record hands a terminal run to the history recorder.
func (o *Orchestrator) record(ctx context.Context, runID uuid.UUID, jobs []types.JobDescription, prefs types.Preferences) {
	if o.recorder == nil {
		return
	}
	run, err := o.snapshotRun(runID)
	if err != nil {
		return
	}
	entry := &types.HistoryEntry{Run: *run, Jobs: jobs, Prefs: prefs}
	if err := o.recorder.Record(ctx, entry); err != nil {
		log.Printf("[RUN %s] failed to record history entry: %v", runID, err)
	}
}

// snapshotRun returns a copy of the run safe to hand to callers.
func (o *Orchestrator) snapshotRun(runID uuid.UUID) (*types.GenerationRun, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	run, ok := o.runs[runID]
	if !ok {
		return nil, &ErrRunNotFound{RunID: runID}
	}

	copied := *run
	copied.JobIDs = append([]string(nil), run.JobIDs...)
	copied.Artifacts = append([]types.Artifact(nil), run.Artifacts...)
	return &copied, nil
}
