package usecase

import (
	"errors"
	"time"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// Error-code categories reported by the ads platform, in classification
// precedence order: validation outranks authentication, which outranks
// authorization, then not-found, then quota, then platform-internal
// failures. Anything unmatched is treated as a client-input error, which
// is what the platform overwhelmingly reports in this domain.
var classificationOrder = []struct {
	codes  []string
	kind   domain.ErrorKind
	status int
}{
	{
		codes:  []string{"INVALID_ARGUMENT", "REQUEST_ERROR", "DUPLICATE_NAME", "OUT_OF_RANGE", "STRING_LENGTH_ERROR", "FIELD_ERROR", "DATE_ERROR", "URL_FIELD_ERROR"},
		kind:   domain.ErrorValidation,
		status: 400,
	},
	{
		codes:  []string{"AUTHENTICATION_ERROR", "UNAUTHENTICATED", "OAUTH_TOKEN_ERROR"},
		kind:   domain.ErrorAuthentication,
		status: 401,
	},
	{
		codes:  []string{"AUTHORIZATION_ERROR", "PERMISSION_DENIED", "CUSTOMER_NOT_ALLOWED"},
		kind:   domain.ErrorAuthorization,
		status: 403,
	},
	{
		codes:  []string{"NOT_FOUND", "RESOURCE_NOT_FOUND"},
		kind:   domain.ErrorNotFound,
		status: 404,
	},
	{
		codes:  []string{"QUOTA_ERROR", "RESOURCE_EXHAUSTED", "RATE_EXCEEDED"},
		kind:   domain.ErrorRateLimited,
		status: 429,
	},
	{
		codes:  []string{"INTERNAL_ERROR", "INTERNAL", "UNAVAILABLE", "DEADLINE_EXCEEDED"},
		kind:   domain.ErrorServer,
		status: 500,
	},
}

// Classify maps a platform failure onto the error taxonomy. It never
// panics: a payload with no recognizable details, or any non-platform
// error, degrades to the generic 400-equivalent classification. When the
// payload carries a correlation id or a field path they are preserved.
func Classify(err error) *domain.APIError {
	out := &domain.APIError{
		Kind:      domain.ErrorValidation,
		Status:    400,
		Message:   "platform request failed",
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		out.Message = err.Error()
	}

	var perr *port.PlatformError
	if !errors.As(err, &perr) || perr == nil {
		return out
	}
	out.RequestID = perr.RequestID
	out.Details = perr.Details

	for _, class := range classificationOrder {
		for _, detail := range perr.Details {
			if !matchesCode(detail.Code, class.codes) {
				continue
			}
			out.Kind = class.kind
			out.Status = class.status
			if detail.Message != "" {
				out.Message = detail.Message
			}
			return out
		}
	}
	if len(perr.Details) > 0 && perr.Details[0].Message != "" {
		out.Message = perr.Details[0].Message
	}
	return out
}

func matchesCode(code string, candidates []string) bool {
	for _, c := range candidates {
		if code == c {
			return true
		}
	}
	return false
}
