package omdb

import (
	"errors"
	"fmt"
)

const (
	defaultNotFound = "Movie not found. Please try another search."
	fetchFailed     = "An error occurred while fetching movie data. Please try again."
)

var (
	// ErrEmptyQuery is returned before any request is made for a blank term.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrMalformed reports a response with none of the expected shapes.
	ErrMalformed = errors.New("malformed omdb response")
)

// APIError is an explicit failure reported by the service (Response "False").
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "omdb: " + e.Message
}

// StatusError is a non-2xx transport status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("omdb returned status %d", e.StatusCode)
}

// Notice returns the user-facing message for err, or "" when err is nil.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return defaultNotFound
		}
		return apiErr.Message
	}
	return fetchFailed
}
