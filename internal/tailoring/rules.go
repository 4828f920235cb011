package tailoring

import "github.com/umukozihr/resume-tailor/internal/types"

// RegionRules captures regional resume conventions passed to the LLM.
type RegionRules struct {
	Pages      int    `json:"pages"`
	Style      string `json:"style"`
	DateFormat string `json:"date_format"`
}

// RulesFor returns the style rules for a region.
func RulesFor(region types.Region) RegionRules {
	switch region {
	case types.RegionUS:
		return RegionRules{Pages: 1, Style: "no photo; concise; one-page", DateFormat: "YYYY-MM"}
	case types.RegionEU:
		return RegionRules{Pages: 2, Style: "two-page allowed; simple", DateFormat: "YYYY-MM"}
	case types.RegionGlobal:
		return RegionRules{Pages: 1, Style: "one-page allowed; simple", DateFormat: "YYYY-MM"}
	default:
		return RegionRules{Pages: 2, Style: "no photo; refs on request ok", DateFormat: "YYYY-MM"}
	}
}
