package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// CampaignStatus is the lifecycle state of a campaign tracked by this
// service. Transitions: ACTIVE <-> PAUSED via pause/enable, ACTIVE ->
// EXPIRED by the cleanup sweep just before the entry is removed.
type CampaignStatus string

const (
	CampaignActive  CampaignStatus = "ACTIVE"
	CampaignPaused  CampaignStatus = "PAUSED"
	CampaignExpired CampaignStatus = "EXPIRED"
)

// ResourceStatus is the administrative state of a resource on the ads
// platform. The platform accepts no other values.
type ResourceStatus string

const (
	ResourceEnabled ResourceStatus = "ENABLED"
	ResourcePaused  ResourceStatus = "PAUSED"
	ResourceRemoved ResourceStatus = "REMOVED"
)

// Platform character ceilings for responsive ad assets. Longer strings are
// truncated before submission, never rejected locally.
const (
	MaxHeadlineLen    = 30
	MaxDescriptionLen = 90
	MaxCampaignName   = 100
)

// Budget floors enforced by the platform, in micro currency units.
const (
	MinDailyBudgetMicros = 1_000_000
	MinCPCBidMicros      = 10_000
)

// CampaignSpec is the full input for one provisioning attempt. Name must be
// unique per attempt; callers that retry a logical request are expected to
// synthesize a fresh name.
type CampaignSpec struct {
	Name              string
	DailyBudgetMicros int64
	CPCBidMicros      int64 // 0 means use the configured default
	StartDate         time.Time
	EndDate           time.Time
	Keywords          []string
	FinalURL          string
	Headlines         []string
	Descriptions      []string
}

// Validate reports the first constraint the spec violates. It runs before
// any platform call, so a failure here never needs rollback.
func (s CampaignSpec) Validate() error {
	switch {
	case s.Name == "":
		return validationError("name is required")
	case utf8.RuneCountInString(s.Name) > MaxCampaignName:
		return validationError(fmt.Sprintf("name exceeds %d characters", MaxCampaignName))
	case s.DailyBudgetMicros < MinDailyBudgetMicros:
		return validationError(fmt.Sprintf("daily budget must be at least %d micros", MinDailyBudgetMicros))
	case s.CPCBidMicros != 0 && s.CPCBidMicros < MinCPCBidMicros:
		return validationError(fmt.Sprintf("cpc bid must be at least %d micros", MinCPCBidMicros))
	case !s.EndDate.After(s.StartDate):
		return validationError("end date must be after start date")
	case len(s.Keywords) == 0:
		return validationError("at least one keyword is required")
	case s.FinalURL == "":
		return validationError("final url is required")
	case len(s.Headlines) < 3:
		return validationError("at least 3 headlines are required")
	case len(s.Descriptions) < 2:
		return validationError("at least 2 descriptions are required")
	}
	return nil
}

func validationError(msg string) *APIError {
	return &APIError{
		Kind:      ErrorValidation,
		Status:    400,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	}
}

// CampaignResult is what a successful provisioning attempt yields.
// ResourceName is the durable platform handle; every subsequent platform
// call (pause, enable, remove) must be keyed off it, not off the short id.
type CampaignResult struct {
	CampaignID   string
	AdGroupID    string
	Status       CampaignStatus
	ResourceName string
}

// StoredCampaign is the registry record for a campaign this service
// created. Owned exclusively by the lifecycle registry.
type StoredCampaign struct {
	ID           string // platform-assigned campaign id
	ArticleID    string
	TrendKeyword string
	Result       CampaignResult
	CreatedAt    time.Time
	ExpiresAt    time.Time
	Status       CampaignStatus
}
