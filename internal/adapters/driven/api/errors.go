package api

import "fmt"

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d for %s", e.StatusCode, e.URL)
}
