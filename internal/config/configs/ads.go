package configs

import (
	"net/url"
	"strings"
	"time"

	"trendads/internal/core/domain"
)

// Ads configures provisioning defaults and the two external collaborators:
// the ads-platform API and the trends source. All money amounts are in
// micro currency units.
type Ads struct {
	// PlatformURL is the base URL of the ads-platform API.
	PlatformURL url.URL `env:"PLATFORM_URL" envDefault:"https://ads.example.com/api"`
	// PlatformToken authenticates calls to the ads platform.
	PlatformToken string `env:"PLATFORM_TOKEN"`
	// TrendsURL is the base URL of the trends source.
	TrendsURL url.URL `env:"TRENDS_URL" envDefault:"https://trends.example.com/api"`

	// DefaultDailyBudgetMicros is used by express campaigns when no budget
	// override is given.
	DefaultDailyBudgetMicros int64 `env:"DEFAULT_DAILY_BUDGET_MICROS" envDefault:"1000000"`
	// DefaultCPCBidMicros is applied when a spec leaves the bid unset.
	DefaultCPCBidMicros int64 `env:"DEFAULT_CPC_BID_MICROS" envDefault:"50000"`
	// DefaultDurationDays bounds the lifetime of express campaigns.
	DefaultDurationDays int `env:"DEFAULT_DURATION_DAYS" envDefault:"7"`
	// DefaultRegion is used by trend matching when the caller gives none.
	DefaultRegion string `env:"DEFAULT_REGION" envDefault:"AR"`
	// MaxAutoCampaigns caps how many campaigns one auto-create pass may
	// provision when the caller gives no limit.
	MaxAutoCampaigns int `env:"MAX_AUTO_CAMPAIGNS" envDefault:"3"`

	// InitialStatus is the administrative state newly created campaigns
	// get on the platform: "PAUSED" (default, lets keyword/ad setup finish
	// before the campaign can serve) or "ENABLED".
	InitialStatus string `env:"INITIAL_STATUS" envDefault:"PAUSED"`

	// PacingDelay is inserted between successive platform-touching
	// operations in one batch to respect the platform's rate limits.
	PacingDelay time.Duration `env:"PACING_DELAY" envDefault:"1s"`
	// PropagationDelay is how long rollback waits after removing a
	// campaign before attempting to remove its budget; the platform's
	// removal is not immediately consistent.
	PropagationDelay time.Duration `env:"PROPAGATION_DELAY" envDefault:"2s"`
}

// InitialResourceStatus maps the configured initial status onto the
// platform enum. Anything other than "ENABLED" means paused.
func (c Ads) InitialResourceStatus() domain.ResourceStatus {
	if strings.EqualFold(c.InitialStatus, string(domain.ResourceEnabled)) {
		return domain.ResourceEnabled
	}
	return domain.ResourcePaused
}
