package resolver

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the resolver client.
var (
	// ErrNotFound indicates the DOI is not registered with doi.org.
	ErrNotFound = errors.New("DOI not registered")

	// ErrRateLimited indicates doi.org has started rejecting our requests.
	ErrRateLimited = errors.New("doi.org rate limit exceeded")

	// ErrServerError indicates a server-side failure at doi.org.
	ErrServerError = errors.New("doi.org server error")

	// ErrNetwork indicates a network connectivity issue.
	ErrNetwork = errors.New("network error contacting doi.org")

	// ErrInvalidResponse indicates an unexpected handle API response.
	ErrInvalidResponse = errors.New("invalid response from doi.org")
)

// ResolveError represents an error reported by the handle API itself.
type ResolveError struct {
	DOI        string
	StatusCode int // HTTP status of the response
	Code       int // handle API response code (2 system error, 100 not found)
	Message    string
}

func (e *ResolveError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("resolving %s: %s (status %d, response code %d)", e.DOI, e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("resolving %s: %s (status %d)", e.DOI, e.Message, e.StatusCode)
}

// IsNotFound returns true if the error indicates an unregistered DOI.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Code == handleNotFound || re.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var re *ResolveError
	if errors.As(err, &re) {
		return re.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsServerError returns true if the error indicates a failure on the
// doi.org side, worth retrying later.
func IsServerError(err error) bool {
	if errors.Is(err, ErrServerError) {
		return true
	}
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Code == handleSystemError || re.StatusCode >= 500
	}
	return false
}
