package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// Handler is the inbound HTTP adapter. It holds the campaign use case, the
// article store and the trends source, and registers all routes on a chi
// router.
type Handler struct {
	svc      port.CampaignUseCase
	articles port.ArticleStore
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.CampaignUseCase, articles port.ArticleStore, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, articles: articles, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Post("/express", h.handleExpressCampaign)
			r.Post("/auto", h.handleAutoCreate)
			r.Post("/cleanup", h.handleCleanup)
			r.Get("/", h.handleListCampaigns)
			r.Get("/{id}", h.handleGetCampaign)
			r.Get("/{id}/stats", h.handleCampaignStats)
			r.Post("/{id}/pause", h.handlePauseCampaign)
			r.Post("/{id}/enable", h.handleEnableCampaign)
			r.Delete("/{id}", h.handleRemoveCampaign)
		})
		r.Route("/articles", func(r chi.Router) {
			r.Post("/", h.handleCreateArticle)
			r.Get("/", h.handleListArticles)
			r.Get("/{id}", h.handleGetArticle)
			r.Put("/{id}", h.handleUpdateArticle)
			r.Delete("/{id}", h.handleDeleteArticle)
		})
		r.Get("/trends/matches", h.handleTrendMatches)
	})
	r.Handle("/metrics", promhttp.Handler())

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps classified errors onto their HTTP-equivalent status and
// serializes the structured payload. Unclassified errors become 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		h.writeJSON(w, apiErr.Status, apiErr)
		return
	}
	h.logger.Error("internal error", slog.Any("error", err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
