package usecase

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trendads/internal/adapter/memory"
	"trendads/internal/config/configs"
	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// stubTrends is a canned TrendsSource for facade tests.
type stubTrends struct {
	trends  []domain.TrendingSearch
	related map[string][]string
}

func (s *stubTrends) TrendingSearches(context.Context, string) ([]domain.TrendingSearch, error) {
	return s.trends, nil
}

func (s *stubTrends) RelatedQueries(_ context.Context, keyword string) ([]string, error) {
	return s.related[keyword], nil
}

func newTestService(t *testing.T, platform *mockPlatform, trends port.TrendsSource, articles ...domain.Article) (*CampaignService, *memory.CampaignStore) {
	t.Helper()
	articleStore := memory.NewArticleStore()
	for _, a := range articles {
		require.NoError(t, articleStore.Put(context.Background(), a))
	}
	campaignStore := memory.NewCampaignStore()

	logger := testLogger()
	cfg := configs.Ads{
		DefaultDailyBudgetMicros: 1_000_000,
		DefaultCPCBidMicros:      50_000,
		DefaultDurationDays:      7,
		DefaultRegion:            "AR",
		MaxAutoCampaigns:         3,
	}
	rollback := NewRollbackCoordinator(platform, logger, 0)
	provisioner := NewProvisioner(platform, rollback, logger, cfg.DefaultCPCBidMicros, domain.ResourcePaused)
	registry := NewRegistry(campaignStore, platform, logger)

	svc := NewCampaignService(articleStore, trends, platform, provisioner, registry, logger, cfg)
	svc.sleep = func(time.Duration) {}
	return svc, campaignStore
}

func successfulSaga(platform *mockPlatform, campaignID string) {
	rn := "customers/1/campaigns/" + campaignID
	platform.On("CreateBudget", mock.Anything, mock.Anything).Return("customers/1/campaignBudgets/"+campaignID, nil).Once()
	platform.On("CreateCampaign", mock.Anything, mock.Anything).Return(port.CampaignInfo{ID: campaignID, ResourceName: rn}, nil).Once()
	platform.On("CreateAdGroup", mock.Anything, mock.Anything).Return("customers/1/adGroups/"+campaignID, nil).Once()
	platform.On("AddKeywords", mock.Anything, mock.Anything).Return([]string{"customers/1/adGroupCriteria/" + campaignID}, nil).Once()
	platform.On("CreateAd", mock.Anything, mock.Anything).Return("customers/1/ads/"+campaignID, nil).Once()
}

// TestBuildSpecLongAccentedName: a multi-byte title long enough to hit the
// name ceiling still yields a spec that passes its own validation, and the
// truncation never eats the timestamp suffix that keeps retries unique.
func TestBuildSpecLongAccentedName(t *testing.T) {
	platform := &mockPlatform{}
	article := domain.Article{
		ID:    "a1",
		Title: strings.Repeat("Elección reñida en la región ", 5),
		URL:   "https://news.example.com/eleccion",
	}
	svc, _ := newTestService(t, platform, &stubTrends{}, article)

	spec := svc.buildSpec(article, port.ExpressCampaignRequest{
		ArticleID:    "a1",
		TrendKeyword: "elección 2025",
	})

	require.LessOrEqual(t, utf8.RuneCountInString(spec.Name), domain.MaxCampaignName)

	suffix := spec.Name[strings.LastIndex(spec.Name, " - ")+len(" - "):]
	ts, err := strconv.ParseInt(suffix, 10, 64)
	require.NoError(t, err)
	require.InDelta(t, time.Now().Unix(), ts, 5)

	require.NoError(t, spec.Validate())
}

func TestExpressCampaignUnknownArticle(t *testing.T) {
	platform := &mockPlatform{}
	svc, _ := newTestService(t, platform, &stubTrends{})

	_, err := svc.CreateExpressCampaign(context.Background(), port.ExpressCampaignRequest{
		ArticleID:    "missing",
		TrendKeyword: "algo",
	})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, domain.ErrorNotFound, apiErr.Kind)
	// the missing article is detected before any platform call
	platform.AssertNotCalled(t, "CreateBudget", mock.Anything, mock.Anything)
}

// TestExpressCampaignComposition checks that the synthesized spec combines
// the trend keyword with the article's own keywords and lands the final URL
// on the article.
func TestExpressCampaignComposition(t *testing.T) {
	platform := &mockPlatform{}
	article := domain.Article{
		ID:          "a1",
		Title:       "Elecciones 2025: Resultados preliminares",
		URL:         "https://news.example.com/elecciones",
		Keywords:    []string{"elecciones", "resultados"},
		Category:    "política",
		Description: "Todos los resultados de las elecciones",
		PublishedAt: time.Now().Add(-time.Hour),
	}
	svc, store := newTestService(t, platform, &stubTrends{}, article)

	var keywordsSeen []string
	platform.On("CreateBudget", mock.Anything, mock.Anything).Return("customers/1/campaignBudgets/10", nil)
	platform.On("CreateCampaign", mock.Anything, mock.Anything).
		Return(port.CampaignInfo{ID: "20", ResourceName: "customers/1/campaigns/20"}, nil)
	platform.On("CreateAdGroup", mock.Anything, mock.Anything).Return("customers/1/adGroups/30", nil)
	platform.On("AddKeywords", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			keywordsSeen = args.Get(1).(port.KeywordsRequest).Keywords
		}).
		Return([]string{"customers/1/adGroupCriteria/1"}, nil)
	platform.On("CreateAd", mock.Anything, mock.MatchedBy(func(req port.AdRequest) bool {
		return req.FinalURL == article.URL
	})).Return("customers/1/ads/40", nil)

	result, err := svc.CreateExpressCampaign(context.Background(), port.ExpressCampaignRequest{
		ArticleID:    "a1",
		TrendKeyword: "elecciones 2025",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"elecciones 2025", "elecciones", "resultados"}, keywordsSeen)

	// provisioning success registers the campaign
	stored, err := store.Get(context.Background(), result.CampaignID)
	require.NoError(t, err)
	require.Equal(t, "a1", stored.ArticleID)
	require.Equal(t, "elecciones 2025", stored.TrendKeyword)
	platform.AssertExpectations(t)
}

// TestAutoCreateIsolatesFailures: one match failing its saga is skipped and
// the remaining matches still provision.
func TestAutoCreateIsolatesFailures(t *testing.T) {
	platform := &mockPlatform{}
	now := time.Now()
	articles := []domain.Article{
		{ID: "a1", Title: "Elecciones 2025 en vivo", URL: "https://n.example.com/1",
			Keywords: []string{"elecciones"}, Category: "política", PublishedAt: now.Add(-time.Hour)},
		{ID: "a2", Title: "La final del fútbol", URL: "https://n.example.com/2",
			Keywords: []string{"fútbol"}, Category: "deportes", PublishedAt: now.Add(-200 * time.Hour)},
	}
	trends := &stubTrends{trends: []domain.TrendingSearch{
		{Keyword: "elecciones 2025"},
		{Keyword: "fútbol"},
	}}
	svc, store := newTestService(t, platform, trends, articles...)

	// the top-ranked match (a1, fresher and stronger) fails its saga at the
	// first step; the second match succeeds
	platform.On("CreateBudget", mock.Anything, mock.Anything).Return("", &port.PlatformError{
		Details: []domain.ErrorDetail{{Code: "QUOTA_ERROR"}},
	}).Once()
	successfulSaga(platform, "20")

	results, err := svc.AutoCreateFromTrends(context.Background(), "AR", 2)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "20", results[0].CampaignID)

	stored, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	platform.AssertExpectations(t)
}

// TestAutoCreatePacing: the pacing delay runs between successive
// provisioning attempts, not before the first one.
func TestAutoCreatePacing(t *testing.T) {
	platform := &mockPlatform{}
	now := time.Now()
	articles := []domain.Article{
		{ID: "a1", Title: "Elecciones 2025 en vivo", URL: "https://n.example.com/1",
			Keywords: []string{"elecciones"}, Category: "política", PublishedAt: now.Add(-time.Hour)},
		{ID: "a2", Title: "La final del fútbol", URL: "https://n.example.com/2",
			Keywords: []string{"fútbol"}, Category: "deportes", PublishedAt: now.Add(-time.Hour)},
	}
	trends := &stubTrends{trends: []domain.TrendingSearch{
		{Keyword: "elecciones 2025"},
		{Keyword: "fútbol"},
	}}
	svc, _ := newTestService(t, platform, trends, articles...)
	svc.cfg.PacingDelay = time.Second

	var sleeps []time.Duration
	svc.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	successfulSaga(platform, "20")
	successfulSaga(platform, "21")

	results, err := svc.AutoCreateFromTrends(context.Background(), "AR", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, []time.Duration{time.Second}, sleeps)
}

func TestAutoCreateRespectsMax(t *testing.T) {
	platform := &mockPlatform{}
	now := time.Now()
	articles := []domain.Article{
		{ID: "a1", Title: "Elecciones 2025 en vivo", URL: "https://n.example.com/1",
			Keywords: []string{"elecciones"}, Category: "política", PublishedAt: now.Add(-time.Hour)},
		{ID: "a2", Title: "Elecciones: el análisis", URL: "https://n.example.com/2",
			Keywords: []string{"elecciones"}, Category: "política", PublishedAt: now.Add(-time.Hour)},
	}
	trends := &stubTrends{trends: []domain.TrendingSearch{{Keyword: "elecciones"}}}
	svc, _ := newTestService(t, platform, trends, articles...)

	successfulSaga(platform, "20")

	results, err := svc.AutoCreateFromTrends(context.Background(), "AR", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	platform.AssertExpectations(t)
}

// TestMatchTrendsBackfillsRelatedQueries: trends delivered without related
// queries get them looked up before scoring, which can lift a match above
// zero.
func TestMatchTrendsBackfillsRelatedQueries(t *testing.T) {
	platform := &mockPlatform{}
	article := domain.Article{
		ID: "a1", Title: "Sin coincidencia directa", URL: "https://n.example.com/1",
		Keywords: []string{"balotaje"}, PublishedAt: time.Now().Add(-200 * time.Hour),
	}
	trends := &stubTrends{
		trends:  []domain.TrendingSearch{{Keyword: "elecciones"}},
		related: map[string][]string{"elecciones": {"balotaje 2025"}},
	}
	svc, _ := newTestService(t, platform, trends, article)

	matches, err := svc.MatchTrends(context.Background(), "AR")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, 1, matches[0].Score) // related-query containment only
}

func TestCampaignStats(t *testing.T) {
	platform := &mockPlatform{}
	svc, store := newTestService(t, platform, &stubTrends{})

	require.NoError(t, store.Insert(context.Background(),
		storedCampaign("20", time.Now().Add(time.Hour), domain.CampaignActive)))

	platform.On("Search", mock.Anything, mock.MatchedBy(func(q string) bool {
		return len(q) > 0
	})).Return([]map[string]string{
		{"metrics.impressions": "120", "metrics.clicks": "7", "metrics.cost_micros": "350000"},
	}, nil)

	stats, err := svc.CampaignStats(context.Background(), "20")
	require.NoError(t, err)
	require.Equal(t, int64(120), stats.Impressions)
	require.Equal(t, int64(7), stats.Clicks)
	require.Equal(t, int64(350000), stats.CostMicros)
}
