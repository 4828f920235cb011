package server

import (
	"encoding/json"
	"net/http"

	"github.com/umukozihr/resume-tailor/internal/types"
)

// handleFetchJD fetches a job posting URL, extracts the posting text and
// returns a normalized job record the client can include in a generate call.
func (s *Server) handleFetchJD(w http.ResponseWriter, r *http.Request) {
	var req types.FetchJDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.ingester.IngestFromURL(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}
