package usecase

import (
	"context"
	"log/slog"
	"time"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
	"trendads/internal/metrics"
)

// Resource kinds a saga can accumulate compensations for.
const (
	resourceBudget   = "budget"
	resourceCampaign = "campaign"
)

// compensation is one pending undo: remove the resource identified by its
// durable platform handle.
type compensation struct {
	kind         string
	resourceName string
}

// RollbackCoordinator undoes the resources a failed saga left behind. It is
// strictly best effort: it never returns an error, so the original
// provisioning failure is always what reaches the caller.
type RollbackCoordinator struct {
	platform port.AdsPlatform
	logger   *slog.Logger

	// propagationDelay is how long to wait between a successful campaign
	// removal and the budget removal; platform removals are eventually
	// consistent and the budget stays referenced for a short while.
	propagationDelay time.Duration
}

func NewRollbackCoordinator(platform port.AdsPlatform, logger *slog.Logger, propagationDelay time.Duration) *RollbackCoordinator {
	return &RollbackCoordinator{platform: platform, logger: logger, propagationDelay: propagationDelay}
}

// Rollback executes the accumulated compensations in reverse order, so the
// campaign is removed before the budget it references. Partial failure is
// tolerated: an orphaned budget is logged and left behind, never retried.
func (r *RollbackCoordinator) Rollback(ctx context.Context, compensations []compensation) {
	if len(compensations) == 0 {
		return
	}
	metrics.RollbacksRun.Inc()
	campaignRemoved := false
	for i := len(compensations) - 1; i >= 0; i-- {
		comp := compensations[i]
		switch comp.kind {
		case resourceCampaign:
			campaignRemoved = r.removeCampaign(ctx, comp.resourceName)
		case resourceBudget:
			if campaignRemoved && r.propagationDelay > 0 {
				time.Sleep(r.propagationDelay)
			}
			r.removeBudget(ctx, comp.resourceName)
		}
	}
}

// removeCampaign tries a direct remove first and falls back to flipping the
// campaign status to REMOVED when the platform rejects the remove call.
// Either success counts as removed.
func (r *RollbackCoordinator) removeCampaign(ctx context.Context, resourceName string) bool {
	if err := r.platform.RemoveCampaign(ctx, resourceName); err == nil {
		r.logger.Info("rollback removed campaign", slog.String("resource", resourceName))
		return true
	} else {
		r.logger.Warn("campaign remove rejected, trying status update",
			slog.String("resource", resourceName), slog.Any("error", err))
	}
	if err := r.platform.UpdateCampaignStatus(ctx, resourceName, domain.ResourceRemoved); err != nil {
		r.logger.Error("rollback failed to remove campaign",
			slog.String("resource", resourceName), slog.Any("error", err))
		return false
	}
	r.logger.Info("rollback removed campaign via status update", slog.String("resource", resourceName))
	return true
}

// removeBudget attempts the budget removal once. A failure usually means
// the budget is still referenced by the (eventually consistent) removed
// campaign; that orphan is expected and non-fatal.
func (r *RollbackCoordinator) removeBudget(ctx context.Context, resourceName string) {
	if err := r.platform.RemoveBudget(ctx, resourceName); err != nil {
		metrics.OrphanedBudgets.Inc()
		r.logger.Warn("rollback left orphaned budget",
			slog.String("resource", resourceName), slog.Any("error", err))
		return
	}
	r.logger.Info("rollback removed budget", slog.String("resource", resourceName))
}
