package tailoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/artifacts"
	"github.com/umukozihr/resume-tailor/internal/llm"
	"github.com/umukozihr/resume-tailor/internal/rendering"
	"github.com/umukozihr/resume-tailor/internal/types"
	"github.com/umukozihr/resume-tailor/internal/validation"
)

// Generator produces one artifact per job by tailoring the profile against
// the job description through the LLM.
type Generator struct {
	client llm.Client
	store  *artifacts.Store
}

// NewGenerator creates a Generator.
func NewGenerator(client llm.Client, store *artifacts.Store) *Generator {
	return &Generator{client: client, store: store}
}

// Generate runs the tailoring pipeline for a single job: pre-select bullets,
// prompt, validate against the output schema, check grounding, render and
// store the document sources. The returned artifact carries source URLs
// always; PDF URLs only when a compiled PDF already exists alongside them.
func (g *Generator) Generate(ctx context.Context, runID uuid.UUID, profile types.Profile, job types.JobDescription, prefs types.Preferences) (*types.Artifact, error) {
	selected := SelectTopBullets(profile, job.RawText, bulletBudget(prefs))

	prompt, err := BuildPrompt(profile, job, selected)
	if err != nil {
		return nil, err
	}

	raw, err := g.client.GenerateJSON(ctx, prompt, modelTier(prefs))
	if err != nil {
		return nil, err
	}

	if err := ValidateOutput(raw); err != nil {
		return nil, fmt.Errorf("job %s: %w", job.ID, err)
	}

	var docs types.TailoredDocuments
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, fmt.Errorf("job %s: failed to decode output: %w", job.ID, err)
	}

	if err := CheckGrounded(&docs, profile); err != nil {
		return nil, fmt.Errorf("job %s: %w", job.ID, err)
	}

	renderCtx := rendering.Context{Profile: profile, Job: job, Docs: &docs}
	resumeTex, err := rendering.RenderResume(renderCtx)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", job.ID, err)
	}
	coverTex, err := rendering.RenderCoverLetter(renderCtx)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", job.ID, err)
	}

	// Reject sources that would not compile or still carry template filler.
	if v := validation.CheckSource(resumeTex); validation.HasErrors(v) {
		return nil, fmt.Errorf("job %s: resume source rejected: %s", job.ID, validation.Summary(v))
	}
	if v := validation.CheckSource(coverTex); validation.HasErrors(v) {
		return nil, fmt.Errorf("job %s: cover letter source rejected: %s", job.ID, validation.Summary(v))
	}

	base := artifacts.SafeName(fmt.Sprintf("%s_%s", runID, job.ID))
	resumeURL, err := g.store.Write(base+"_resume.tex", []byte(resumeTex))
	if err != nil {
		return nil, err
	}
	coverURL, err := g.store.Write(base+"_cover_letter.tex", []byte(coverTex))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	artifact := &types.Artifact{
		JobID:             job.ID,
		Region:            job.Region,
		ResumeSourceURL:   resumeURL,
		CoverLetterSrcURL: coverURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// An external compiler may drop PDFs next to the sources; link them only
	// when they exist.
	if pdf := base + "_resume.pdf"; g.store.Exists(pdf) {
		artifact.ResumePDFURL = artifacts.BasePath + "/" + pdf
	}
	if pdf := base + "_cover_letter.pdf"; g.store.Exists(pdf) {
		artifact.CoverLetterPDFURL = artifacts.BasePath + "/" + pdf
	}

	return artifact, nil
}

// modelTier reads the optional model_tier preference. Callers may opt into
// the lite model for cheaper drafts; anything else gets the standard tier.
func modelTier(prefs types.Preferences) llm.ModelTier {
	if v, ok := prefs["model_tier"].(string); ok && v == string(llm.TierLite) {
		return llm.TierLite
	}
	return llm.TierStandard
}

// bulletBudget reads the optional max_bullets preference.
func bulletBudget(prefs types.Preferences) int {
	if prefs == nil {
		return DefaultBulletBudget
	}
	switch v := prefs["max_bullets"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return DefaultBulletBudget
		}
	}
	return DefaultBulletBudget
}
