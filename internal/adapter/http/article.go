package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

type articleRequest struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Keywords    []string  `json:"keywords"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

func (r articleRequest) validate() string {
	switch {
	case r.Title == "":
		return "title is required"
	case r.URL == "":
		return "url is required"
	case len(r.Keywords) == 0:
		return "at least one keyword is required"
	case len(r.Description) > domain.MaxDescriptionLen:
		return "description exceeds 90 characters"
	}
	return ""
}

// handleCreateArticle adds an article to the catalog. The id is generated
// server side.
func (h *Handler) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	publishedAt := req.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}
	article := domain.Article{
		ID:          uuid.NewString(),
		Title:       req.Title,
		URL:         req.URL,
		Keywords:    req.Keywords,
		Category:    req.Category,
		Description: req.Description,
		PublishedAt: publishedAt,
	}
	if err := h.articles.Put(r.Context(), article); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, article)
}

func (h *Handler) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, articles)
}

func (h *Handler) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.articles.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, port.ErrArticleNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, article)
}

// handleUpdateArticle is a full-article replace; partial updates are not
// supported.
func (h *Handler) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.articles.Get(r.Context(), id); errors.Is(err, port.ErrArticleNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		h.writeError(w, err)
		return
	}
	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	article := domain.Article{
		ID:          id,
		Title:       req.Title,
		URL:         req.URL,
		Keywords:    req.Keywords,
		Category:    req.Category,
		Description: req.Description,
		PublishedAt: req.PublishedAt,
	}
	if err := h.articles.Put(r.Context(), article); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, article)
}

func (h *Handler) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	err := h.articles.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, port.ErrArticleNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
