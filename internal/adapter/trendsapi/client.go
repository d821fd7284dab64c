// Package trendsapi is the outbound adapter for the trends data source. It
// only normalizes trend records; matching and ranking live in the core.
package trendsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trendads/internal/core/domain"
)

// Client implements port.TrendsSource over the trends provider's JSON API.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL url.URL) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL.String(), "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type trendRecord struct {
	Keyword        string   `json:"keyword"`
	Traffic        string   `json:"traffic"`
	RelatedQueries []string `json:"relatedQueries"`
	Articles       []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Source  string `json:"source"`
		Snippet string `json:"snippet"`
	} `json:"articles"`
}

func (c *Client) TrendingSearches(ctx context.Context, region string) ([]domain.TrendingSearch, error) {
	endpoint := fmt.Sprintf("%s/v1/trending?region=%s", c.baseURL, url.QueryEscape(region))
	var records []trendRecord
	if err := c.get(ctx, endpoint, &records); err != nil {
		return nil, err
	}
	out := make([]domain.TrendingSearch, 0, len(records))
	for _, rec := range records {
		trend := domain.TrendingSearch{
			Keyword:        rec.Keyword,
			Traffic:        rec.Traffic,
			RelatedQueries: rec.RelatedQueries,
		}
		for _, a := range rec.Articles {
			trend.Articles = append(trend.Articles, domain.TrendArticle{
				Title:   a.Title,
				URL:     a.URL,
				Source:  a.Source,
				Snippet: a.Snippet,
			})
		}
		out = append(out, trend)
	}
	return out, nil
}

func (c *Client) RelatedQueries(ctx context.Context, keyword string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/v1/related?keyword=%s", c.baseURL, url.QueryEscape(keyword))
	var queries []string
	if err := c.get(ctx, endpoint, &queries); err != nil {
		return nil, err
	}
	return queries, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trends source returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
