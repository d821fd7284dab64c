package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trendads/internal/core/domain"
	"trendads/internal/core/port"
)

// mockPlatform is a testify mock of port.AdsPlatform shared by the saga,
// rollback and registry tests.
type mockPlatform struct {
	mock.Mock
}

func (m *mockPlatform) CreateBudget(ctx context.Context, req port.BudgetRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockPlatform) CreateCampaign(ctx context.Context, req port.CampaignRequest) (port.CampaignInfo, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(port.CampaignInfo), args.Error(1)
}

func (m *mockPlatform) CreateAdGroup(ctx context.Context, req port.AdGroupRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockPlatform) AddKeywords(ctx context.Context, req port.KeywordsRequest) ([]string, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlatform) CreateAd(ctx context.Context, req port.AdRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockPlatform) UpdateCampaignStatus(ctx context.Context, campaignResourceName string, status domain.ResourceStatus) error {
	args := m.Called(ctx, campaignResourceName, status)
	return args.Error(0)
}

func (m *mockPlatform) RemoveCampaign(ctx context.Context, campaignResourceName string) error {
	args := m.Called(ctx, campaignResourceName)
	return args.Error(0)
}

func (m *mockPlatform) RemoveBudget(ctx context.Context, budgetResourceName string) error {
	args := m.Called(ctx, budgetResourceName)
	return args.Error(0)
}

func (m *mockPlatform) Search(ctx context.Context, query string) ([]map[string]string, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.([]map[string]string), args.Error(1)
	}
	return nil, args.Error(1)
}
