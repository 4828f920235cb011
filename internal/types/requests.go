package types

import "github.com/go-playground/validator/v10"

// UpdateProfileRequest wraps the profile payload for the canonical update path.
// The deprecated legacy save path posts the bare Profile instead; both shapes
// are preserved at the boundary.
type UpdateProfileRequest struct {
	Profile Profile `json:"profile" validate:"required"`
}

// GenerateRequest represents the request to start a generation run.
type GenerateRequest struct {
	Profile *Profile         `json:"profile,omitempty"`
	Jobs    []JobDescription `json:"jobs" validate:"required,min=1"`
	Prefs   Preferences      `json:"prefs,omitempty"`
}

// FetchJDRequest represents the request to ingest a job description from a URL.
type FetchJDRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the FetchJDRequest using the validator.
func (r *FetchJDRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
