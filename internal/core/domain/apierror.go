package domain

import (
	"fmt"
	"time"
)

// ErrorKind is the taxonomy of failures surfaced to callers.
type ErrorKind string

const (
	ErrorValidation     ErrorKind = "VALIDATION"
	ErrorAuthentication ErrorKind = "AUTHENTICATION"
	ErrorAuthorization  ErrorKind = "AUTHORIZATION"
	ErrorNotFound       ErrorKind = "NOT_FOUND"
	ErrorRateLimited    ErrorKind = "RATE_LIMITED"
	ErrorServer         ErrorKind = "SERVER"
)

// ErrorDetail is one structured sub-error reported by the ads platform.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIError is the structured error every provisioning failure surfaces:
// a classification, an HTTP-equivalent status, the platform sub-errors when
// present and the platform correlation id when one was supplied.
type APIError struct {
	Kind      ErrorKind     `json:"kind"`
	Status    int           `json:"status"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (request %s)", e.Kind, e.Message, e.RequestID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NotFoundError builds a not-found APIError for a missing local entity.
func NotFoundError(what, id string) *APIError {
	return &APIError{
		Kind:      ErrorNotFound,
		Status:    404,
		Message:   fmt.Sprintf("%s %q not found", what, id),
		Timestamp: time.Now().UTC(),
	}
}
