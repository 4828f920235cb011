package ingestion

import (
	"strings"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// Ingester validates and normalizes job descriptions.
type Ingester struct {
	// FetchOptions overrides the default HTTP fetch behavior. Nil uses defaults.
	FetchOptions *FetchOptions
}

// New creates an Ingester with default fetch behavior.
func New() *Ingester {
	return &Ingester{}
}

// IngestDirect validates a client-supplied job description, assigns an id if
// absent and returns the normalized record. The input is not mutated.
func (ing *Ingester) IngestDirect(job types.JobDescription) (*types.JobDescription, error) {
	normalized := job
	normalized.Company = strings.TrimSpace(job.Company)
	normalized.Title = strings.TrimSpace(job.Title)
	normalized.RawText = strings.TrimSpace(job.RawText)

	if normalized.Company == "" {
		return nil, &ValidationError{Field: "company", Message: "company is required"}
	}
	if normalized.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if normalized.RawText == "" {
		return nil, &ValidationError{Field: "jd_text", Message: "job description text is required"}
	}
	if !types.ValidRegion(normalized.Region) {
		return nil, &ValidationError{Field: "region", Message: "region must be one of US, EU, GL"}
	}

	if normalized.ID == "" {
		normalized.ID = uuid.New().String()
	}
	return &normalized, nil
}
