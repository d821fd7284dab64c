package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"trendads/internal/config/configs"
	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// CampaignService implements port.CampaignUseCase. It composes the matcher,
// the provisioner and the lifecycle registry, and synthesizes campaign
// specs from articles for the express and auto-create paths.
type CampaignService struct {
	articles port.ArticleStore
	trends   port.TrendsSource
	platform port.AdsPlatform

	provisioner *Provisioner
	registry    *Registry
	logger      *slog.Logger
	cfg         configs.Ads

	// sleep is replaceable in tests; production uses time.Sleep.
	sleep func(time.Duration)
}

func NewCampaignService(
	articles port.ArticleStore,
	trends port.TrendsSource,
	platform port.AdsPlatform,
	provisioner *Provisioner,
	registry *Registry,
	logger *slog.Logger,
	cfg configs.Ads,
) *CampaignService {
	return &CampaignService{
		articles:    articles,
		trends:      trends,
		platform:    platform,
		provisioner: provisioner,
		registry:    registry,
		logger:      logger,
		cfg:         cfg,
		sleep:       time.Sleep,
	}
}

// CreateCampaign provisions an explicit spec and registers the result. The
// stored campaign expires at the spec's end date.
func (s *CampaignService) CreateCampaign(ctx context.Context, spec domain.CampaignSpec, articleID, trendKeyword string) (*domain.CampaignResult, error) {
	result, err := s.provisioner.Provision(ctx, spec)
	if err != nil {
		return nil, err
	}
	stored := domain.StoredCampaign{
		ID:           result.CampaignID,
		ArticleID:    articleID,
		TrendKeyword: trendKeyword,
		Result:       *result,
		CreatedAt:    time.Now().UTC(),
		ExpiresAt:    spec.EndDate,
		Status:       result.Status,
	}
	if err = s.registry.Track(ctx, stored); err != nil {
		// The platform campaign exists; losing the registry entry is worse
		// than surfacing it, so report the tracking failure.
		return nil, fmt.Errorf("track campaign %s: %w", result.CampaignID, err)
	}
	return result, nil
}

// CreateExpressCampaign builds a spec from the referenced article and the
// trend keyword, then provisions it. The article lookup happens before any
// platform call, so a missing article needs no rollback.
func (s *CampaignService) CreateExpressCampaign(ctx context.Context, req port.ExpressCampaignRequest) (*domain.CampaignResult, error) {
	article, err := s.articles.Get(ctx, req.ArticleID)
	if errors.Is(err, port.ErrArticleNotFound) {
		return nil, domain.NotFoundError("article", req.ArticleID)
	}
	if err != nil {
		return nil, err
	}
	spec := s.buildSpec(*article, req)
	return s.CreateCampaign(ctx, spec, article.ID, req.TrendKeyword)
}

// AutoCreateFromTrends ranks trend/article matches and provisions campaigns
// for the top ones. A pacing delay separates successive provisioning
// attempts so the batch never bursts platform-mutating calls, and each
// match's failure is logged and skipped.
func (s *CampaignService) AutoCreateFromTrends(ctx context.Context, region string, maxCampaigns int) ([]domain.CampaignResult, error) {
	if maxCampaigns <= 0 {
		maxCampaigns = s.cfg.MaxAutoCampaigns
	}
	matches, err := s.MatchTrends(ctx, region)
	if err != nil {
		return nil, err
	}
	if len(matches) > maxCampaigns {
		matches = matches[:maxCampaigns]
	}

	results := make([]domain.CampaignResult, 0, len(matches))
	for i, m := range matches {
		if i > 0 && s.cfg.PacingDelay > 0 {
			s.sleep(s.cfg.PacingDelay)
		}
		result, err := s.CreateExpressCampaign(ctx, port.ExpressCampaignRequest{
			ArticleID:    m.Article.ID,
			TrendKeyword: m.Trend.Keyword,
		})
		if err != nil {
			s.logger.Warn("auto-create skipped match",
				slog.String("trend", m.Trend.Keyword),
				slog.String("article", m.Article.ID),
				slog.Any("error", err))
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

// MatchTrends returns the ranked matches of current trends against the
// article catalog.
func (s *CampaignService) MatchTrends(ctx context.Context, region string) ([]domain.TrendMatch, error) {
	if region == "" {
		region = s.cfg.DefaultRegion
	}
	trends, err := s.trends.TrendingSearches(ctx, region)
	if err != nil {
		return nil, err
	}
	// Some providers return trends without related queries; backfill them
	// so the scorer's related-query term has something to work with. A
	// lookup failure just leaves the trend as delivered.
	for i, trend := range trends {
		if len(trend.RelatedQueries) > 0 {
			continue
		}
		related, err := s.trends.RelatedQueries(ctx, trend.Keyword)
		if err != nil {
			s.logger.Debug("related-query lookup failed",
				slog.String("keyword", trend.Keyword), slog.Any("error", err))
			continue
		}
		trends[i].RelatedQueries = related
	}
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, err
	}
	return Match(trends, articles), nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*domain.StoredCampaign, error) {
	return s.registry.Get(ctx, id)
}

func (s *CampaignService) ListCampaigns(ctx context.Context) ([]domain.StoredCampaign, error) {
	return s.registry.List(ctx)
}

// CampaignStats reads reported metrics for one campaign via the platform's
// tabular query interface.
func (s *CampaignService) CampaignStats(ctx context.Context, id string) (*port.CampaignStats, error) {
	c, err := s.registry.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT metrics.impressions, metrics.clicks, metrics.cost_micros FROM campaign WHERE campaign.id = %s",
		c.ID,
	)
	rows, err := s.platform.Search(ctx, query)
	if err != nil {
		return nil, Classify(err)
	}
	stats := &port.CampaignStats{CampaignID: c.ID}
	for _, row := range rows {
		stats.Impressions += parseMetric(row["metrics.impressions"])
		stats.Clicks += parseMetric(row["metrics.clicks"])
		stats.CostMicros += parseMetric(row["metrics.cost_micros"])
	}
	return stats, nil
}

func (s *CampaignService) PauseCampaign(ctx context.Context, id string) error {
	return s.registry.Pause(ctx, id)
}

func (s *CampaignService) EnableCampaign(ctx context.Context, id string) error {
	return s.registry.Enable(ctx, id)
}

func (s *CampaignService) RemoveCampaign(ctx context.Context, id string) error {
	return s.registry.Remove(ctx, id)
}

func (s *CampaignService) CleanupExpired(ctx context.Context) (int, error) {
	return s.registry.Sweep(ctx)
}

// buildSpec synthesizes a campaign spec from an article and a trend
// keyword. The name carries a timestamp so every attempt is unique on the
// platform; headlines and descriptions are derived from the article and
// truncated by the provisioner before submission.
func (s *CampaignService) buildSpec(article domain.Article, req port.ExpressCampaignRequest) domain.CampaignSpec {
	budget := req.DailyBudgetMicros
	if budget == 0 {
		budget = s.cfg.DefaultDailyBudgetMicros
	}
	duration := req.DurationDays
	if duration == 0 {
		duration = s.cfg.DefaultDurationDays
	}
	now := time.Now()

	// The timestamp suffix is what keeps retried attempts unique on the
	// platform, so truncation may only ever eat into the base.
	suffix := fmt.Sprintf(" - %d", now.Unix())
	base := fmt.Sprintf("Trend %s - %s", req.TrendKeyword, article.Title)
	if r := []rune(base); len(r) > domain.MaxCampaignName-utf8.RuneCountInString(suffix) {
		base = string(r[:domain.MaxCampaignName-utf8.RuneCountInString(suffix)])
	}
	name := base + suffix

	keywords := make([]string, 0, len(article.Keywords)+1)
	if req.TrendKeyword != "" {
		keywords = append(keywords, req.TrendKeyword)
	}
	keywords = append(keywords, article.Keywords...)

	headlines := []string{
		article.Title,
		req.TrendKeyword,
		"Noticias de " + article.Category,
	}
	description := article.Description
	if description == "" {
		description = article.Title
	}
	descriptions := []string{
		description,
		"Lo último sobre " + article.Category,
	}

	return domain.CampaignSpec{
		Name:              name,
		DailyBudgetMicros: budget,
		StartDate:         now,
		EndDate:           now.AddDate(0, 0, duration),
		Keywords:          keywords,
		FinalURL:          article.URL,
		Headlines:         headlines,
		Descriptions:      descriptions,
	}
}

func parseMetric(v string) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
