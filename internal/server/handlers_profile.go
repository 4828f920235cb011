package server

import (
	"encoding/json"
	"net/http"

	"github.com/umukozihr/resume-tailor/internal/server/middleware"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// handleGetProfile returns the caller's current profile version.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vp, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, vp)
}

// handleUpdateProfile replaces the caller's profile with a new version.
// The payload wraps the profile: {"profile": {...}}.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	vp, err := s.profiles.Update(r.Context(), userID, req.Profile)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, vp)
}

// handleSaveProfileLegacy is the deprecated bulk-save alias. Unlike the
// canonical update it takes the bare profile as the payload. It funnels into
// the same versioned write path.
func (s *Server) handleSaveProfileLegacy(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var p types.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	vp, err := s.profiles.SaveLegacy(r.Context(), userID, p)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Deprecation", "true")
	s.jsonResponse(w, http.StatusOK, vp)
}

// handleCompleteness returns the completeness score of the caller's profile.
func (s *Server) handleCompleteness(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	score, err := s.profiles.Completeness(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]int{"completeness": score})
}
