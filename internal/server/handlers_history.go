package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/umukozihr/resume-tailor/internal/server/middleware"
	"github.com/umukozihr/resume-tailor/internal/types"
)

const (
	defaultHistoryPageSize = 10
	maxHistoryPageSize     = 100
)

// HistoryPage is the paginated response for /history.
type HistoryPage struct {
	Items    []types.HistoryEntry `json:"items"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// handleListHistory returns one page of the caller's terminal runs, newest
// first. Pages past the end yield an empty item list.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	pageSize, err := queryInt(r, "page_size", defaultHistoryPageSize)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "page_size must be an integer")
		return
	}
	if pageSize > maxHistoryPageSize {
		pageSize = maxHistoryPageSize
	}

	entries, err := s.ledger.List(r.Context(), userID, page, pageSize)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, HistoryPage{
		Items:    entries,
		Page:     page,
		PageSize: pageSize,
	})
}

// handleRegenerate starts a brand-new run from a past run's recorded job set
// and the caller's current profile. The past run is left untouched.
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
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

	run, err := s.ledger.Regenerate(r.Context(), userID, runID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusAccepted, run)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
