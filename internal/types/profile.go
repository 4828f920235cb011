// Package types provides type definitions for structured data used throughout the resume-tailor system.
package types

import "time"

// Contact holds contact details for a profile.
type Contact struct {
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// Role represents one employment entry in a profile.
type Role struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Start   string   `json:"start,omitempty"`
	End     string   `json:"end,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// Project represents a personal or professional project entry.
type Project struct {
	Name    string   `json:"name"`
	Stack   []string `json:"stack,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// Education represents an education entry.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree,omitempty"`
	Period string `json:"period,omitempty"`
}

// Profile is the structured career profile submitted by a user.
type Profile struct {
	Name       string      `json:"name"`
	Contacts   Contact     `json:"contacts"`
	Summary    string      `json:"summary,omitempty"`
	Skills     []string    `json:"skills,omitempty"`
	Experience []Role      `json:"experience,omitempty"`
	Education  []Education `json:"education,omitempty"`
	Projects   []Project   `json:"projects,omitempty"`
}

// VersionedProfile is a stored profile version for one identity.
// Version strictly increases with every successful update; Completeness is
// recomputed from the field set at that version, never carried over.
type VersionedProfile struct {
	Profile      Profile   `json:"profile"`
	Version      int       `json:"version"`
	Completeness int       `json:"completeness"`
	UpdatedAt    time.Time `json:"updated_at"`
}
