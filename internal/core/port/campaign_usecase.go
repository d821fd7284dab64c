package port

import (
	"context"

	"trendads/internal/core/domain"
)

// ExpressCampaignRequest provisions a campaign for one article and trend
// keyword with sensible defaults. Budget and duration may be overridden.
type ExpressCampaignRequest struct {
	ArticleID         string
	TrendKeyword      string
	DailyBudgetMicros int64 // 0 means configured default
	DurationDays      int   // 0 means configured default
}

// CampaignStats aggregates reported metrics for one campaign.
type CampaignStats struct {
	CampaignID  string
	Impressions int64
	Clicks      int64
	CostMicros  int64
}

// CampaignUseCase is the primary port into the provisioning domain. All
// operations look synchronous to the caller even though they suspend on
// network I/O internally.
type CampaignUseCase interface {
	// CreateCampaign runs the full provisioning saga for an explicit spec
	// and registers the result. ArticleID and trendKeyword are recorded
	// for provenance and may be empty for manual campaigns.
	CreateCampaign(ctx context.Context, spec domain.CampaignSpec, articleID, trendKeyword string) (*domain.CampaignResult, error)

	// CreateExpressCampaign synthesizes a spec from the referenced article
	// and the trend keyword, then provisions it.
	CreateExpressCampaign(ctx context.Context, req ExpressCampaignRequest) (*domain.CampaignResult, error)

	// AutoCreateFromTrends matches current trends against the article
	// catalog and provisions campaigns for the top ranked matches. One
	// match's failure is logged and skipped, never aborting the batch.
	AutoCreateFromTrends(ctx context.Context, region string, maxCampaigns int) ([]domain.CampaignResult, error)

	// MatchTrends returns the ranked trend/article matches for a region
	// without provisioning anything.
	MatchTrends(ctx context.Context, region string) ([]domain.TrendMatch, error)

	GetCampaign(ctx context.Context, id string) (*domain.StoredCampaign, error)
	ListCampaigns(ctx context.Context) ([]domain.StoredCampaign, error)
	CampaignStats(ctx context.Context, id string) (*CampaignStats, error)
	PauseCampaign(ctx context.Context, id string) error
	EnableCampaign(ctx context.Context, id string) error
	RemoveCampaign(ctx context.Context, id string) error

	// CleanupExpired removes every expired ACTIVE campaign and returns how
	// many were actually cleaned.
	CleanupExpired(ctx context.Context) (int, error)
}
