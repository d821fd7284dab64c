package port

import (
	"context"

	"trendads/internal/core/domain"
)

// TrendsSource supplies normalized trending-search records. The adapter is
// responsible for whatever upstream protocol and normalization is needed;
// the core only consumes the records.
type TrendsSource interface {
	// TrendingSearches returns the currently trending queries for a region.
	TrendingSearches(ctx context.Context, region string) ([]domain.TrendingSearch, error)
	// RelatedQueries returns query strings related to a keyword.
	RelatedQueries(ctx context.Context, keyword string) ([]string, error)
}
