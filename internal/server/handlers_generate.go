package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/generation"
	"github.com/umukozihr/resume-tailor/internal/profile"
	"github.com/umukozihr/resume-tailor/internal/server/middleware"
	"github.com/umukozihr/resume-tailor/internal/types"
)

// handleGenerate accepts a set of job descriptions plus an optional inline
// profile and starts an asynchronous generation run. The response carries the
// run id to poll; artifacts appear on the run once it completes.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// An inline profile is used as-is for this run only; otherwise the run
	// snapshots the caller's stored profile at its current version.
	var snapshot *types.VersionedProfile
	if req.Profile != nil {
		snapshot = &types.VersionedProfile{Profile: *req.Profile}
	} else {
		snapshot, err = s.profiles.Get(r.Context(), userID)
		if err != nil {
			var notFound *profile.ErrNotFound
			if errors.As(err, &notFound) {
				s.errorResponse(w, http.StatusBadRequest, "no profile on file; save one or supply it inline")
				return
			}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}

	jobs := make([]types.JobDescription, 0, len(req.Jobs))
	for _, raw := range req.Jobs {
		job, err := s.ingester.IngestDirect(raw)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		jobs = append(jobs, *job)
	}

	run, err := s.orchestrator.Submit(r.Context(), userID, snapshot, jobs, req.Prefs)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusAccepted, run)
}

// handleRunStatus returns the current state of a run. Runs that finished
// before a server restart are no longer in the orchestrator's registry, so
// lookups fall back to the history ledger.
func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	runID, err := uuid.Parse(r.PathValue("run_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	run, err := s.orchestrator.Status(runID)
	if err != nil {
		var notFound *generation.ErrRunNotFound
		if !errors.As(err, &notFound) {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		entry, ledgerErr := s.ledger.Find(r.Context(), userID, runID)
		if ledgerErr != nil {
			s.errorResponse(w, HTTPStatus(ledgerErr), ledgerErr.Error())
			return
		}
		run = &entry.Run
	}

	// Runs are private to the identity that submitted them.
	if run.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, (&generation.ErrRunNotFound{RunID: runID}).Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}
