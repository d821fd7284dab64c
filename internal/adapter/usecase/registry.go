package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
	"trendads/internal/metrics"
)

// Registry is the campaign lifecycle registry. It owns the StoredCampaign
// records: insert on provisioning success, pause/enable status flips,
// removal and the expiry sweep. Platform state changes are keyed off the
// campaign's durable resource name, never the short id.
type Registry struct {
	store    port.CampaignStore
	platform port.AdsPlatform
	logger   *slog.Logger
}

func NewRegistry(store port.CampaignStore, platform port.AdsPlatform, logger *slog.Logger) *Registry {
	return &Registry{store: store, platform: platform, logger: logger}
}

// Track records a freshly provisioned campaign.
func (r *Registry) Track(ctx context.Context, c domain.StoredCampaign) error {
	return r.store.Insert(ctx, c)
}

// Get returns the stored campaign or a not-found APIError.
func (r *Registry) Get(ctx context.Context, id string) (*domain.StoredCampaign, error) {
	c, err := r.store.Get(ctx, id)
	if errors.Is(err, port.ErrCampaignNotFound) {
		return nil, domain.NotFoundError("campaign", id)
	}
	return c, err
}

// List returns all stored campaigns.
func (r *Registry) List(ctx context.Context) ([]domain.StoredCampaign, error) {
	return r.store.List(ctx)
}

// Pause pauses the campaign on the platform and flips the local status.
// Unknown ids are a no-op, never an error.
func (r *Registry) Pause(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, domain.ResourcePaused, domain.CampaignPaused)
}

// Enable re-enables a paused campaign. Unknown ids are a no-op.
func (r *Registry) Enable(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, domain.ResourceEnabled, domain.CampaignActive)
}

func (r *Registry) setStatus(ctx context.Context, id string, platformStatus domain.ResourceStatus, localStatus domain.CampaignStatus) error {
	c, err := r.store.Get(ctx, id)
	if errors.Is(err, port.ErrCampaignNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err = r.platform.UpdateCampaignStatus(ctx, c.Result.ResourceName, platformStatus); err != nil {
		return Classify(err)
	}
	return r.store.SetStatus(ctx, id, localStatus)
}

// Remove removes the campaign on the platform, then deletes the local
// entry. Unknown ids return a not-found APIError.
func (r *Registry) Remove(ctx context.Context, id string) error {
	c, err := r.store.Get(ctx, id)
	if errors.Is(err, port.ErrCampaignNotFound) {
		return domain.NotFoundError("campaign", id)
	}
	if err != nil {
		return err
	}
	if err = r.platform.RemoveCampaign(ctx, c.Result.ResourceName); err != nil {
		return Classify(err)
	}
	return r.store.Delete(ctx, id)
}

// Sweep removes every ACTIVE campaign whose expiry has passed and returns
// how many were cleaned. One entry's failure is logged and skipped; it
// never aborts the sweep of the remaining entries.
func (r *Registry) Sweep(ctx context.Context) (int, error) {
	campaigns, err := r.store.List(ctx)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	cleaned := 0
	for _, c := range campaigns {
		if c.Status != domain.CampaignActive || !c.ExpiresAt.Before(now) {
			continue
		}
		// Mark expired first so a failed removal is visible in the registry.
		if err := r.store.SetStatus(ctx, c.ID, domain.CampaignExpired); err != nil {
			r.logger.Error("sweep failed to mark campaign expired",
				slog.String("campaign", c.ID), slog.Any("error", err))
			continue
		}
		if err := r.platform.RemoveCampaign(ctx, c.Result.ResourceName); err != nil {
			r.logger.Error("sweep failed to remove campaign",
				slog.String("campaign", c.ID), slog.Any("error", err))
			continue
		}
		if err := r.store.Delete(ctx, c.ID); err != nil {
			r.logger.Error("sweep failed to delete campaign entry",
				slog.String("campaign", c.ID), slog.Any("error", err))
			continue
		}
		metrics.CampaignsSwept.Inc()
		cleaned++
	}
	return cleaned, nil
}
