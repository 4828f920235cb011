// Package ingestion normalizes job postings into structured job records,
// either supplied directly or fetched from a URL.
package ingestion

import "fmt"

// ValidationError indicates a missing or malformed job field, fixable by the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// FetchError indicates the posting URL was unreachable (network, timeout, 4xx/5xx).
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ParseError indicates fetched content yielded no extractable posting text.
type ParseError struct {
	URL     string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %s", e.URL, e.Message)
}
