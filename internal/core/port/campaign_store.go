package port

import (
	"context"
	"errors"

	"trendads/internal/core/domain"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// CampaignStore is the keyed storage behind the campaign lifecycle
// registry. Only the registry mutates it. Implementations must be safe for
// concurrent use.
type CampaignStore interface {
	// Insert stores a newly provisioned campaign keyed by its platform id.
	Insert(ctx context.Context, c domain.StoredCampaign) error
	// Get returns the stored campaign or ErrCampaignNotFound.
	Get(ctx context.Context, id string) (*domain.StoredCampaign, error)
	// List returns all stored campaigns.
	List(ctx context.Context) ([]domain.StoredCampaign, error)
	// SetStatus flips the lifecycle status of an existing entry.
	SetStatus(ctx context.Context, id string, status domain.CampaignStatus) error
	// Delete removes the entry. Unknown ids return ErrCampaignNotFound.
	Delete(ctx context.Context, id string) error
}
