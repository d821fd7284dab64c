// Package adsapi is the outbound adapter for the advertising platform's
// JSON API. Each method executes exactly one resource call; transactional
// behavior across resources is the provisioning saga's job, not this
// client's.
package adsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// Client implements port.AdsPlatform over HTTP. Timeouts come from the
// embedded http.Client; the saga treats them as ordinary step failures.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL url.URL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL.String(), "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type resourceResponse struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
}

type batchResponse struct {
	ResourceNames []string `json:"resourceNames"`
}

type errorResponse struct {
	Error struct {
		RequestID string               `json:"requestId"`
		Details   []domain.ErrorDetail `json:"details"`
	} `json:"error"`
}

func (c *Client) CreateBudget(ctx context.Context, req port.BudgetRequest) (string, error) {
	var resp resourceResponse
	if err := c.do(ctx, http.MethodPost, "/v1/budgets", req, &resp); err != nil {
		return "", err
	}
	return resp.ResourceName, nil
}

func (c *Client) CreateCampaign(ctx context.Context, req port.CampaignRequest) (port.CampaignInfo, error) {
	var resp resourceResponse
	if err := c.do(ctx, http.MethodPost, "/v1/campaigns", req, &resp); err != nil {
		return port.CampaignInfo{}, err
	}
	return port.CampaignInfo{ID: resp.ID, ResourceName: resp.ResourceName}, nil
}

func (c *Client) CreateAdGroup(ctx context.Context, req port.AdGroupRequest) (string, error) {
	var resp resourceResponse
	if err := c.do(ctx, http.MethodPost, "/v1/adGroups", req, &resp); err != nil {
		return "", err
	}
	return resp.ResourceName, nil
}

// AddKeywords creates all criteria in one batched call.
func (c *Client) AddKeywords(ctx context.Context, req port.KeywordsRequest) ([]string, error) {
	var resp batchResponse
	if err := c.do(ctx, http.MethodPost, "/v1/adGroupCriteria:batchCreate", req, &resp); err != nil {
		return nil, err
	}
	return resp.ResourceNames, nil
}

func (c *Client) CreateAd(ctx context.Context, req port.AdRequest) (string, error) {
	var resp resourceResponse
	if err := c.do(ctx, http.MethodPost, "/v1/ads", req, &resp); err != nil {
		return "", err
	}
	return resp.ResourceName, nil
}

func (c *Client) UpdateCampaignStatus(ctx context.Context, campaignResourceName string, status domain.ResourceStatus) error {
	body := struct {
		ResourceName string                `json:"resourceName"`
		Status       domain.ResourceStatus `json:"status"`
	}{campaignResourceName, status}
	return c.do(ctx, http.MethodPost, "/v1/campaigns:updateStatus", body, nil)
}

func (c *Client) RemoveCampaign(ctx context.Context, campaignResourceName string) error {
	body := struct {
		ResourceName string `json:"resourceName"`
	}{campaignResourceName}
	return c.do(ctx, http.MethodPost, "/v1/campaigns:remove", body, nil)
}

func (c *Client) RemoveBudget(ctx context.Context, budgetResourceName string) error {
	body := struct {
		ResourceName string `json:"resourceName"`
	}{budgetResourceName}
	return c.do(ctx, http.MethodPost, "/v1/budgets:remove", body, nil)
}

func (c *Client) Search(ctx context.Context, query string) ([]map[string]string, error) {
	body := struct {
		Query string `json:"query"`
	}{query}
	var resp struct {
		Rows []map[string]string `json:"rows"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/search", body, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// do sends one JSON request and decodes the response into out when given.
// Non-2xx responses are decoded into the platform's structured error
// payload; a body that fails to decode yields a PlatformError with no
// details, which the classifier degrades to the generic classification.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &port.PlatformError{
			Details:   errResp.Error.Details,
			RequestID: errResp.Error.RequestID,
		}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
