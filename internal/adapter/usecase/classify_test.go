package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		codes  []string
		kind   domain.ErrorKind
		status int
	}{
		{"validation outranks auth", []string{"AUTHENTICATION_ERROR", "DUPLICATE_NAME"}, domain.ErrorValidation, 400},
		{"auth outranks authz", []string{"AUTHORIZATION_ERROR", "AUTHENTICATION_ERROR"}, domain.ErrorAuthentication, 401},
		{"authz outranks not-found", []string{"NOT_FOUND", "PERMISSION_DENIED"}, domain.ErrorAuthorization, 403},
		{"not-found outranks quota", []string{"QUOTA_ERROR", "NOT_FOUND"}, domain.ErrorNotFound, 404},
		{"quota alone", []string{"QUOTA_ERROR"}, domain.ErrorRateLimited, 429},
		{"quota outranks server", []string{"INTERNAL_ERROR", "QUOTA_ERROR"}, domain.ErrorRateLimited, 429},
		{"server alone", []string{"INTERNAL_ERROR"}, domain.ErrorServer, 500},
		{"unknown code is generic", []string{"SOMETHING_ODD"}, domain.ErrorValidation, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := &port.PlatformError{}
			for _, code := range tt.codes {
				perr.Details = append(perr.Details, domain.ErrorDetail{Code: code, Message: code + " happened"})
			}
			got := Classify(perr)
			require.Equal(t, tt.kind, got.Kind)
			require.Equal(t, tt.status, got.Status)
		})
	}
}

func TestClassifyPreservesContext(t *testing.T) {
	perr := &port.PlatformError{
		RequestID: "req-123",
		Details: []domain.ErrorDetail{
			{Code: "DUPLICATE_NAME", Message: "campaign name already exists", Field: "campaign.name"},
		},
	}
	got := Classify(perr)
	require.Equal(t, "req-123", got.RequestID)
	require.Equal(t, "campaign name already exists", got.Message)
	require.Len(t, got.Details, 1)
	require.Equal(t, "campaign.name", got.Details[0].Field)
	require.False(t, got.Timestamp.IsZero())
}

func TestClassifyWrappedError(t *testing.T) {
	perr := &port.PlatformError{Details: []domain.ErrorDetail{{Code: "QUOTA_ERROR"}}}
	wrapped := fmt.Errorf("create budget: %w", perr)
	require.Equal(t, domain.ErrorRateLimited, Classify(wrapped).Kind)
}

// TestClassifyMalformedIdempotent: malformed or empty payloads degrade to
// the generic classification and do so consistently.
func TestClassifyMalformedIdempotent(t *testing.T) {
	inputs := []error{
		nil,
		errors.New("connection reset"),
		&port.PlatformError{},
		&port.PlatformError{Details: []domain.ErrorDetail{{}}},
	}
	for _, in := range inputs {
		first := Classify(in)
		second := Classify(in)
		require.Equal(t, domain.ErrorValidation, first.Kind)
		require.Equal(t, 400, first.Status)
		require.Equal(t, first.Kind, second.Kind)
		require.Equal(t, first.Status, second.Status)
	}
}
