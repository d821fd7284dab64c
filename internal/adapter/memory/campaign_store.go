package memory

import (
	"context"
	"sync"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// CampaignStore is the in-memory backing store of the campaign registry.
type CampaignStore struct {
	mu    sync.RWMutex
	items map[string]domain.StoredCampaign
}

func NewCampaignStore() *CampaignStore {
	return &CampaignStore{items: make(map[string]domain.StoredCampaign)}
}

func (s *CampaignStore) Insert(_ context.Context, c domain.StoredCampaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.ID] = c
	return nil
}

func (s *CampaignStore) Get(_ context.Context, id string) (*domain.StoredCampaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[id]
	if !ok {
		return nil, port.ErrCampaignNotFound
	}
	return &c, nil
}

func (s *CampaignStore) List(_ context.Context) ([]domain.StoredCampaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StoredCampaign, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	return out, nil
}

func (s *CampaignStore) SetStatus(_ context.Context, id string, status domain.CampaignStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return port.ErrCampaignNotFound
	}
	c.Status = status
	s.items[id] = c
	return nil
}

func (s *CampaignStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return port.ErrCampaignNotFound
	}
	delete(s.items, id)
	return nil
}
