package types

// Region identifies the regional resume conventions a job posting targets.
type Region string

const (
	// RegionUS targets United States conventions (one page, no photo).
	RegionUS Region = "US"
	// RegionEU targets European conventions (two pages allowed).
	RegionEU Region = "EU"
	// RegionGlobal targets region-neutral conventions.
	RegionGlobal Region = "GL"
)

// ValidRegion reports whether r is a recognized region code.
func ValidRegion(r Region) bool {
	switch r {
	case RegionUS, RegionEU, RegionGlobal:
		return true
	}
	return false
}

// JobDescription is a normalized job posting. Immutable once attached to a
// generation run; the server assigns an ID when the client omits one.
type JobDescription struct {
	ID      string `json:"id,omitempty"`
	Company string `json:"company"`
	Title   string `json:"title"`
	Region  Region `json:"region"`
	RawText string `json:"jd_text"`
	URL     string `json:"url,omitempty"`
}

// Preferences carries optional generation preferences supplied at submit time.
// The set of keys is open-ended; unknown keys are passed through to the
// document generation collaborator untouched.
type Preferences map[string]any
