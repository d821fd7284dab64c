package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
	"trendads/internal/metrics"
)

// Compact date layout required by the platform (no separators).
const platformDateLayout = "20060102"

// Regulatory disclosure sent with every campaign this service creates.
const euPoliticalAdsStatus = "DOES_NOT_CONTAIN_EU_POLITICAL_ADVERTISING"

// Fixed resource attributes for the saga's child resources.
const (
	adGroupTypeSearchStandard = "SEARCH_STANDARD"
	keywordMatchBroad         = "BROAD"
)

// Saga step names, used for logs and metrics.
const (
	stepBudget   = "budget"
	stepCampaign = "campaign"
	stepAdGroup  = "ad_group"
	stepKeywords = "keywords"
	stepAd       = "ad"
)

// Provisioner executes the five-step campaign creation saga: budget,
// campaign, ad group, keyword criteria, responsive ad. The platform offers
// no multi-resource transaction, so the saga accumulates a compensation per
// created resource and hands them to the rollback coordinator when a step
// fails. Steps are strictly sequential; each step's output feeds the next.
type Provisioner struct {
	platform port.AdsPlatform
	rollback *RollbackCoordinator
	logger   *slog.Logger

	defaultCPCBidMicros int64
	initialStatus       domain.ResourceStatus
}

func NewProvisioner(platform port.AdsPlatform, rollback *RollbackCoordinator, logger *slog.Logger, defaultCPCBidMicros int64, initialStatus domain.ResourceStatus) *Provisioner {
	return &Provisioner{
		platform:            platform,
		rollback:            rollback,
		logger:              logger,
		defaultCPCBidMicros: defaultCPCBidMicros,
		initialStatus:       initialStatus,
	}
}

// Provision runs one saga attempt for the given spec. At most one attempt
// per call; retries are the caller's decision. On any step failure the
// accumulated compensations run before the classified error is returned.
func (p *Provisioner) Provision(ctx context.Context, spec domain.CampaignSpec) (*domain.CampaignResult, error) {
	// Input validation happens before any platform call, so a rejection
	// here creates nothing and needs no rollback.
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	cpcBid := spec.CPCBidMicros
	if cpcBid == 0 {
		cpcBid = p.defaultCPCBidMicros
	}

	var compensations []compensation

	// The budget name carries a creation timestamp so a caller-initiated
	// retry of the same logical request cannot collide with leftover state
	// from a prior partially-rolled-back attempt.
	budgetName := fmt.Sprintf("%s Budget %d", spec.Name, time.Now().Unix())
	budgetRN, err := p.platform.CreateBudget(ctx, port.BudgetRequest{
		Name:         budgetName,
		AmountMicros: spec.DailyBudgetMicros,
	})
	if err != nil {
		return nil, p.fail(ctx, stepBudget, spec.Name, compensations, err)
	}
	compensations = append(compensations, compensation{kind: resourceBudget, resourceName: budgetRN})

	campaign, err := p.platform.CreateCampaign(ctx, port.CampaignRequest{
		Name:                 spec.Name,
		BudgetResourceName:   budgetRN,
		Status:               p.initialStatus,
		StartDate:            spec.StartDate.Format(platformDateLayout),
		EndDate:              spec.EndDate.Format(platformDateLayout),
		TargetSearchNetwork:  true,
		TargetContentNetwork: false,
		ManualCPC:            true,
		EUPoliticalAdsStatus: euPoliticalAdsStatus,
	})
	if err != nil {
		return nil, p.fail(ctx, stepCampaign, spec.Name, compensations, err)
	}
	compensations = append(compensations, compensation{kind: resourceCampaign, resourceName: campaign.ResourceName})

	// Failures past this point roll back only the campaign and the budget:
	// the platform removes ad groups, criteria and ads transitively with
	// their campaign.
	adGroupRN, err := p.platform.CreateAdGroup(ctx, port.AdGroupRequest{
		CampaignResourceName: campaign.ResourceName,
		Name:                 spec.Name + " Ad Group",
		Type:                 adGroupTypeSearchStandard,
		CPCBidMicros:         cpcBid,
		Status:               domain.ResourceEnabled,
	})
	if err != nil {
		return nil, p.fail(ctx, stepAdGroup, spec.Name, compensations, err)
	}

	if _, err = p.platform.AddKeywords(ctx, port.KeywordsRequest{
		AdGroupResourceName: adGroupRN,
		Keywords:            spec.Keywords,
		MatchType:           keywordMatchBroad,
		Status:              domain.ResourceEnabled,
	}); err != nil {
		return nil, p.fail(ctx, stepKeywords, spec.Name, compensations, err)
	}

	if _, err = p.platform.CreateAd(ctx, port.AdRequest{
		AdGroupResourceName: adGroupRN,
		Headlines:           truncateAll(spec.Headlines, domain.MaxHeadlineLen),
		Descriptions:        truncateAll(spec.Descriptions, domain.MaxDescriptionLen),
		FinalURL:            spec.FinalURL,
	}); err != nil {
		return nil, p.fail(ctx, stepAd, spec.Name, compensations, err)
	}

	metrics.CampaignsProvisioned.Inc()
	p.logger.Info("campaign provisioned",
		slog.String("campaign", spec.Name),
		slog.String("resource", campaign.ResourceName))

	return &domain.CampaignResult{
		CampaignID:   campaign.ID,
		AdGroupID:    trailingSegment(adGroupRN),
		Status:       campaignStatus(p.initialStatus),
		ResourceName: campaign.ResourceName,
	}, nil
}

// fail runs rollback for whatever was created and returns the classified
// platform error. Rollback outcome never masks the original failure.
func (p *Provisioner) fail(ctx context.Context, step, name string, compensations []compensation, err error) error {
	metrics.ProvisioningFailures.WithLabelValues(step).Inc()
	p.logger.Error("provisioning step failed",
		slog.String("campaign", name),
		slog.String("step", step),
		slog.Any("error", err))
	p.rollback.Rollback(ctx, compensations)
	return Classify(err)
}

func campaignStatus(status domain.ResourceStatus) domain.CampaignStatus {
	if status == domain.ResourceEnabled {
		return domain.CampaignActive
	}
	return domain.CampaignPaused
}

// trailingSegment extracts the final path segment of a platform resource
// name, e.g. "customers/1/adGroups/42" -> "42".
func trailingSegment(resourceName string) string {
	if i := strings.LastIndexByte(resourceName, '/'); i >= 0 {
		return resourceName[i+1:]
	}
	return resourceName
}

func truncateAll(values []string, max int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if r := []rune(v); len(r) > max {
			v = string(r[:max])
		}
		out[i] = v
	}
	return out
}
