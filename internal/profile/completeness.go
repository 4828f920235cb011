package profile

import (
	"strings"

	"github.com/umukozihr/resume-tailor/internal/types"
)

// RecognizedFieldCount is the number of profile fields counted toward the
// completeness score: name, contact email, summary, skills, experience,
// education. Projects are optional enrichment and do not count.
const RecognizedFieldCount = 6

// Completeness derives the completeness score (0-100) from the field set of p.
// It is a pure function: the score is floor(populated/recognized * 100) and is
// re-derivable at any time without replaying updates.
func Completeness(p types.Profile) int {
	populated := 0
	if strings.TrimSpace(p.Name) != "" {
		populated++
	}
	if strings.TrimSpace(p.Contacts.Email) != "" {
		populated++
	}
	if strings.TrimSpace(p.Summary) != "" {
		populated++
	}
	if len(p.Skills) > 0 {
		populated++
	}
	if len(p.Experience) > 0 {
		populated++
	}
	if len(p.Education) > 0 {
		populated++
	}
	return populated * 100 / RecognizedFieldCount
}
