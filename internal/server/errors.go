// Package server provides the HTTP REST API for the resume tailor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/umukozihr/resume-tailor/internal/bundle"
	"github.com/umukozihr/resume-tailor/internal/generation"
	"github.com/umukozihr/resume-tailor/internal/history"
	"github.com/umukozihr/resume-tailor/internal/ingestion"
	"github.com/umukozihr/resume-tailor/internal/llm"
	"github.com/umukozihr/resume-tailor/internal/profile"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Validation failures are the caller's fault (400), unreachable posting URLs
// are an upstream fault (502), and pages with no extractable posting text are
// unprocessable (422).
func HTTPStatus(err error) int {
	var (
		emailExists    *ErrEmailAlreadyExists
		badCreds       *ErrInvalidCredentials
		validation     *ErrValidation
		profileMissing *profile.ErrNotFound
		profileBad     *profile.ValidationError
		ingestBad      *ingestion.ValidationError
		fetchFailed    *ingestion.FetchError
		parseFailed    *ingestion.ParseError
		runBad         *generation.ValidationError
		runMissing     *generation.ErrRunNotFound
		historyMissing *history.ErrNotFound
		historyBad     *history.ValidationError
		bundleFailed   *bundle.Error
		upstreamAuth   *llm.AuthError
	)

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &validation),
		errors.As(err, &profileBad),
		errors.As(err, &ingestBad),
		errors.As(err, &runBad),
		errors.As(err, &historyBad):
		return http.StatusBadRequest
	case errors.As(err, &profileMissing),
		errors.As(err, &runMissing),
		errors.As(err, &historyMissing):
		return http.StatusNotFound
	case errors.As(err, &fetchFailed):
		return http.StatusBadGateway
	case errors.As(err, &parseFailed):
		return http.StatusUnprocessableEntity
	case errors.As(err, &bundleFailed):
		return http.StatusConflict
	case errors.As(err, &upstreamAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
