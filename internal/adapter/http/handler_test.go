package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trendads/internal/adapter/memory"
	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// stubUseCase is a canned CampaignUseCase for handler tests.
type stubUseCase struct {
	result  *domain.CampaignResult
	stored  *domain.StoredCampaign
	err     error
	cleaned int
	paused  []string
}

func (s *stubUseCase) CreateCampaign(_ context.Context, spec domain.CampaignSpec, _, _ string) (*domain.CampaignResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return s.result, s.err
}

func (s *stubUseCase) CreateExpressCampaign(context.Context, port.ExpressCampaignRequest) (*domain.CampaignResult, error) {
	return s.result, s.err
}

func (s *stubUseCase) AutoCreateFromTrends(context.Context, string, int) ([]domain.CampaignResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.result == nil {
		return nil, nil
	}
	return []domain.CampaignResult{*s.result}, nil
}

func (s *stubUseCase) MatchTrends(context.Context, string) ([]domain.TrendMatch, error) {
	return nil, s.err
}

func (s *stubUseCase) GetCampaign(_ context.Context, id string) (*domain.StoredCampaign, error) {
	if s.stored == nil {
		return nil, domain.NotFoundError("campaign", id)
	}
	return s.stored, nil
}

func (s *stubUseCase) ListCampaigns(context.Context) ([]domain.StoredCampaign, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []domain.StoredCampaign{*s.stored}, nil
}

func (s *stubUseCase) CampaignStats(context.Context, string) (*port.CampaignStats, error) {
	return &port.CampaignStats{}, s.err
}

func (s *stubUseCase) PauseCampaign(_ context.Context, id string) error {
	s.paused = append(s.paused, id)
	return s.err
}

func (s *stubUseCase) EnableCampaign(context.Context, string) error { return s.err }
func (s *stubUseCase) RemoveCampaign(context.Context, string) error { return s.err }

func (s *stubUseCase) CleanupExpired(context.Context) (int, error) {
	return s.cleaned, s.err
}

func newTestHandler(svc port.CampaignUseCase) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(svc, memory.NewArticleStore(), logger)
}

func TestCreateCampaignRejectsInvalidSpec(t *testing.T) {
	h := newTestHandler(&stubUseCase{})

	body, _ := json.Marshal(map[string]any{
		"name":                "x",
		"daily_budget_micros": 100, // below the platform floor
		"start_date":          time.Now(),
		"end_date":            time.Now().AddDate(0, 0, 7),
		"keywords":            []string{"k"},
		"final_url":           "https://x",
		"headlines":           []string{"a", "b", "c"},
		"descriptions":        []string{"a", "b"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, domain.ErrorValidation, apiErr.Kind)
}

func TestCreateCampaignSuccess(t *testing.T) {
	h := newTestHandler(&stubUseCase{result: &domain.CampaignResult{
		CampaignID:   "20",
		AdGroupID:    "30",
		Status:       domain.CampaignPaused,
		ResourceName: "customers/1/campaigns/20",
	}})

	now := time.Now()
	body, _ := json.Marshal(map[string]any{
		"name":                "Trend elecciones",
		"daily_budget_micros": 2_000_000,
		"start_date":          now,
		"end_date":            now.AddDate(0, 0, 7),
		"keywords":            []string{"elecciones"},
		"final_url":           "https://news.example.com/nota",
		"headlines":           []string{"a", "b", "c"},
		"descriptions":        []string{"a", "b"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var result domain.CampaignResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, "20", result.CampaignID)
}

func TestGetCampaignNotFound(t *testing.T) {
	h := newTestHandler(&stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/99", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCleanupReturnsCount(t *testing.T) {
	h := newTestHandler(&stubUseCase{cleaned: 2})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/cleanup", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp["cleaned"])
}

func TestPauseCampaign(t *testing.T) {
	stub := &stubUseCase{}
	h := newTestHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/20/pause", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{"20"}, stub.paused)
}

func TestArticleCRUD(t *testing.T) {
	h := newTestHandler(&stubUseCase{})

	body, _ := json.Marshal(map[string]any{
		"title":    "Elecciones 2025",
		"url":      "https://news.example.com/nota",
		"keywords": []string{"elecciones"},
		"category": "política",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/articles/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/articles/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/articles/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArticleValidation(t *testing.T) {
	h := newTestHandler(&stubUseCase{})

	body, _ := json.Marshal(map[string]any{"title": "", "url": "https://x"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
