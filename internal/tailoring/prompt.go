package tailoring

import (
	"encoding/json"
	"fmt"

	"github.com/umukozihr/resume-tailor/internal/types"
)

// systemPrompt frames the tailoring task. The output contract is enforced
// separately by the JSON schema.
const systemPrompt = "You are an expert ATS resume & cover-letter tailor. " +
	"Return ONLY valid JSON for the given schema. " +
	"Never invent companies, schools, or dates. " +
	"Use exact JD keywords only when truthful. " +
	"Respect region style rules. Keep concise, metric-first quantitative bullets, " +
	"each bullet flowing in the order <action -> impactful result>."

// BuildPrompt assembles the full generation prompt for one job.
func BuildPrompt(p types.Profile, job types.JobDescription, selected []SelectedBullet) (string, error) {
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	rulesJSON, err := json.Marshal(RulesFor(job.Region))
	if err != nil {
		return "", fmt.Errorf("failed to marshal region rules: %w", err)
	}
	selectedJSON, err := json.Marshal(selected)
	if err != nil {
		return "", fmt.Errorf("failed to marshal selected bullets: %w", err)
	}

	return fmt.Sprintf(
		"%s\n\nREGION_RULES:\n%s\n\nPROFILE_MIN:\n%s\n\nJD_TEXT:\n%s\n\nPRESELECTED_PROFILE_BULLETS:\n%s\n\nSCHEMA (immutable):\n%s\n\nReturn JSON only.",
		systemPrompt, rulesJSON, profileJSON, job.RawText, selectedJSON, OutputSchema,
	), nil
}
