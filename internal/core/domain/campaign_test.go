package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validSpec() CampaignSpec {
	now := time.Now()
	return CampaignSpec{
		Name:              "Trend elecciones - Resultados",
		DailyBudgetMicros: MinDailyBudgetMicros,
		StartDate:         now,
		EndDate:           now.AddDate(0, 0, 7),
		Keywords:          []string{"elecciones"},
		FinalURL:          "https://news.example.com/elecciones",
		Headlines:         []string{"h1", "h2", "h3"},
		Descriptions:      []string{"d1", "d2"},
	}
}

// The name ceiling is counted in characters, not bytes: a 100-rune accented
// name is valid even though it is well over 100 bytes.
func TestValidateNameLimitInRunes(t *testing.T) {
	spec := validSpec()
	spec.Name = strings.Repeat("ñ", MaxCampaignName)
	require.Greater(t, len(spec.Name), MaxCampaignName)
	require.NoError(t, spec.Validate())

	spec.Name = strings.Repeat("ñ", MaxCampaignName+1)
	var apiErr *APIError
	require.ErrorAs(t, spec.Validate(), &apiErr)
	require.Equal(t, ErrorValidation, apiErr.Kind)
}

func TestValidateBudgetFloor(t *testing.T) {
	spec := validSpec()
	spec.DailyBudgetMicros = MinDailyBudgetMicros - 1
	require.Error(t, spec.Validate())

	spec = validSpec()
	spec.CPCBidMicros = MinCPCBidMicros - 1
	require.Error(t, spec.Validate())
}
