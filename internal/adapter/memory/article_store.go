package memory

import (
	"context"
	"sync"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// ArticleStore is the in-memory article catalog. A RWMutex guards every
// read-modify-write sequence; the Go runtime schedules preemptively, so the
// map cannot rely on cooperative-scheduling atomicity.
type ArticleStore struct {
	mu    sync.RWMutex
	items map[string]domain.Article
}

func NewArticleStore() *ArticleStore {
	return &ArticleStore{items: make(map[string]domain.Article)}
}

func (s *ArticleStore) Get(_ context.Context, id string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.items[id]
	if !ok {
		return nil, port.ErrArticleNotFound
	}
	return &a, nil
}

func (s *ArticleStore) List(_ context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Article, 0, len(s.items))
	for _, a := range s.items {
		out = append(out, a)
	}
	return out, nil
}

func (s *ArticleStore) Put(_ context.Context, article domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[article.ID] = article
	return nil
}

func (s *ArticleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return port.ErrArticleNotFound
	}
	delete(s.items, id)
	return nil
}
