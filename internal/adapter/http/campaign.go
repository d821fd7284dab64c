package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

type createCampaignRequest struct {
	Name              string    `json:"name"`
	DailyBudgetMicros int64     `json:"daily_budget_micros"`
	CPCBidMicros      int64     `json:"cpc_bid_micros,omitempty"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Keywords          []string  `json:"keywords"`
	FinalURL          string    `json:"final_url"`
	Headlines         []string  `json:"headlines"`
	Descriptions      []string  `json:"descriptions"`
	ArticleID         string    `json:"article_id,omitempty"`
	TrendKeyword      string    `json:"trend_keyword,omitempty"`
}

// handleCreateCampaign provisions a campaign from an explicit spec. Spec
// violations return the structured 400 produced by validation; platform
// failures return their classified status.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	spec := domain.CampaignSpec{
		Name:              req.Name,
		DailyBudgetMicros: req.DailyBudgetMicros,
		CPCBidMicros:      req.CPCBidMicros,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Keywords:          req.Keywords,
		FinalURL:          req.FinalURL,
		Headlines:         req.Headlines,
		Descriptions:      req.Descriptions,
	}
	result, err := h.svc.CreateCampaign(r.Context(), spec, req.ArticleID, req.TrendKeyword)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

type expressCampaignRequest struct {
	ArticleID         string `json:"article_id"`
	TrendKeyword      string `json:"trend_keyword"`
	DailyBudgetMicros int64  `json:"daily_budget_micros,omitempty"`
	DurationDays      int    `json:"duration_days,omitempty"`
}

func (h *Handler) handleExpressCampaign(w http.ResponseWriter, r *http.Request) {
	var req expressCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CreateExpressCampaign(r.Context(), port.ExpressCampaignRequest{
		ArticleID:         req.ArticleID,
		TrendKeyword:      req.TrendKeyword,
		DailyBudgetMicros: req.DailyBudgetMicros,
		DurationDays:      req.DurationDays,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

type autoCreateRequest struct {
	Region       string `json:"region"`
	MaxCampaigns int    `json:"max_campaigns,omitempty"`
}

// handleAutoCreate provisions campaigns for the top trend/article matches.
// Individual match failures are skipped inside the use case; the response
// carries whatever succeeded.
func (h *Handler) handleAutoCreate(w http.ResponseWriter, r *http.Request) {
	var req autoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	results, err := h.svc.AutoCreateFromTrends(r.Context(), req.Region, req.MaxCampaigns)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"created":   len(results),
		"campaigns": results,
	})
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, campaigns)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.CampaignStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handlePauseCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.PauseCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleEnableCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EnableCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCleanup(w http.ResponseWriter, r *http.Request) {
	cleaned, err := h.svc.CleanupExpired(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"cleaned": cleaned})
}

func (h *Handler) handleTrendMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.svc.MatchTrends(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, matches)
}
