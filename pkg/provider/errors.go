package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorClass classifies a failed provider attempt.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx responses.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 responses.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents transport failures: timeouts, connection
	// errors, and unreadable or malformed response bodies.
	ErrorClassNetwork ErrorClass = "network"
)

// ErrNotConfigured is returned when an adapter is invoked without its
// credentials or endpoint configured. The resolver treats this as a skip,
// not a failure.
var ErrNotConfigured = errors.New("provider not configured")

// Error represents a failed provider attempt with enough context for logging
// and metrics.
type Error struct {
	Provider   string
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider %s error (status %d): %s: %v",
			e.Provider, e.Class, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider %s error (status %d): %s",
		e.Provider, e.Class, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// classifyStatus categorizes a non-2xx HTTP status.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}
