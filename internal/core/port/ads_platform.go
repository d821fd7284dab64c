package port

import (
	"context"
	"fmt"

	"trendads/internal/core/domain"
)

// BudgetRequest creates a campaign budget. Name must be unique on the
// platform; the provisioner de-duplicates it against retries.
type BudgetRequest struct {
	Name         string
	AmountMicros int64
}

// CampaignRequest creates a search campaign. Dates are compact platform
// date strings (yyyymmdd, no separators). The channel is fixed to
// search-network-only with manual CPC bidding.
type CampaignRequest struct {
	Name                 string
	BudgetResourceName   string
	Status               domain.ResourceStatus
	StartDate            string
	EndDate              string
	TargetSearchNetwork  bool
	TargetContentNetwork bool
	ManualCPC            bool
	EUPoliticalAdsStatus string
}

// AdGroupRequest creates one ad group under a campaign.
type AdGroupRequest struct {
	CampaignResourceName string
	Name                 string
	Type                 string
	CPCBidMicros         int64
	Status               domain.ResourceStatus
}

// KeywordsRequest adds keyword criteria to an ad group in a single batched
// call. MatchType applies to every keyword in the batch.
type KeywordsRequest struct {
	AdGroupResourceName string
	Keywords            []string
	MatchType           string
	Status              domain.ResourceStatus
}

// AdRequest creates a responsive search ad. Headlines and descriptions must
// already fit the platform ceilings; the provisioner truncates them.
type AdRequest struct {
	AdGroupResourceName string
	Headlines           []string
	Descriptions        []string
	FinalURL            string
}

// CampaignInfo identifies a created campaign.
type CampaignInfo struct {
	ID           string
	ResourceName string
}

// AdsPlatform wraps the remote advertising platform. Each call creates,
// mutates or removes exactly one resource kind and reports success or
// failure for that call alone; there is no multi-resource transaction.
// Failures carry a *PlatformError when the platform returned a structured
// payload.
type AdsPlatform interface {
	CreateBudget(ctx context.Context, req BudgetRequest) (resourceName string, err error)
	CreateCampaign(ctx context.Context, req CampaignRequest) (CampaignInfo, error)
	CreateAdGroup(ctx context.Context, req AdGroupRequest) (resourceName string, err error)
	AddKeywords(ctx context.Context, req KeywordsRequest) (resourceNames []string, err error)
	CreateAd(ctx context.Context, req AdRequest) (resourceName string, err error)

	UpdateCampaignStatus(ctx context.Context, campaignResourceName string, status domain.ResourceStatus) error
	RemoveCampaign(ctx context.Context, campaignResourceName string) error
	RemoveBudget(ctx context.Context, budgetResourceName string) error

	// Search runs a parameterized read query and returns tabular rows keyed
	// by field path, e.g. "metrics.impressions".
	Search(ctx context.Context, query string) ([]map[string]string, error)
}

// PlatformError is the structured failure payload reported by the ads
// platform. Details may be empty or partially populated; consumers must
// degrade gracefully.
type PlatformError struct {
	Details   []domain.ErrorDetail
	RequestID string
}

func (e *PlatformError) Error() string {
	if len(e.Details) == 0 {
		return "platform error"
	}
	return fmt.Sprintf("platform error: %s: %s", e.Details[0].Code, e.Details[0].Message)
}
