package types

import (
	"time"

	"github.com/google/uuid"
)

// RunState is the lifecycle state of a generation run.
type RunState string

const (
	// RunQueued means the run is accepted but processing has not started.
	RunQueued RunState = "queued"
	// RunProcessing means per-job generation is in flight.
	RunProcessing RunState = "processing"
	// RunCompleted means every job produced an artifact.
	RunCompleted RunState = "completed"
	// RunFailed means at least one job failed irrecoverably; no artifacts are exposed.
	RunFailed RunState = "failed"
)

// Terminal reports whether s is a terminal state.
func (s RunState) Terminal() bool {
	return s == RunCompleted || s == RunFailed
}

// Artifact is the generated document pair for one job within one run.
// Immutable once produced.
type Artifact struct {
	JobID             string    `json:"job_id"`
	Region            Region    `json:"region"`
	ResumePDFURL      string    `json:"resume_pdf,omitempty"`
	CoverLetterPDFURL string    `json:"cover_letter_pdf,omitempty"`
	ResumeSourceURL   string    `json:"resume_tex"`
	CoverLetterSrcURL string    `json:"cover_letter_tex"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// GenerationRun tracks one end-to-end document generation invocation for a
// fixed profile snapshot and job set. The job ID sequence is fixed at
// creation; artifacts are exposed in the same order.
type GenerationRun struct {
	ID             uuid.UUID  `json:"run_id"`
	UserID         uuid.UUID  `json:"-"`
	ProfileVersion int        `json:"profile_version"`
	JobIDs         []string   `json:"job_ids"`
	State          RunState   `json:"state"`
	FailureCause   string     `json:"failure_cause,omitempty"`
	Artifacts      []Artifact `json:"artifacts,omitempty"`
	BundleURL      string     `json:"zip,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// HistoryEntry is a terminal run plus the inputs needed to regenerate it.
type HistoryEntry struct {
	Run   GenerationRun    `json:"run"`
	Jobs  []JobDescription `json:"jobs"`
	Prefs Preferences      `json:"prefs,omitempty"`
}
