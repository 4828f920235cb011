package tailoring

import (
	"fmt"
	"strings"

	"github.com/umukozihr/resume-tailor/internal/types"
)

// CheckGrounded verifies the tailored output only references companies and
// schools that exist in the source profile. The LLM is instructed not to
// invent facts; this is the enforcement side of that instruction.
func CheckGrounded(docs *types.TailoredDocuments, p types.Profile) error {
	companies := make(map[string]struct{}, len(p.Experience))
	for _, role := range p.Experience {
		companies[normalizeName(role.Company)] = struct{}{}
	}
	schools := make(map[string]struct{}, len(p.Education))
	for _, edu := range p.Education {
		schools[normalizeName(edu.School)] = struct{}{}
	}

	for _, role := range docs.Resume.Experience {
		if _, ok := companies[normalizeName(role.Company)]; !ok {
			return fmt.Errorf("output references company %q not present in profile", role.Company)
		}
	}
	for _, edu := range docs.Resume.Education {
		if _, ok := schools[normalizeName(edu.School)]; !ok {
			return fmt.Errorf("output references school %q not present in profile", edu.School)
		}
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
