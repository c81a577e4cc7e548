package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFromPrice(t *testing.T) {
	assert.Equal(t, TierStartup, TierFromPrice("price_startup_monthly"))
	assert.Equal(t, TierStartup, TierFromPrice("price_startup_annual"))
	assert.Equal(t, TierScaleup, TierFromPrice("price_scaleup_monthly"))
	assert.Equal(t, TierScaleup, TierFromPrice("price_unrecognized"))
}

func TestDeriveTier(t *testing.T) {
	tests := []struct {
		name     string
		priceID  string
		status   string
		expected string
	}{
		{"active startup", "price_startup_monthly", "active", TierStartup},
		{"active scaleup", "price_scaleup_monthly", "active", TierScaleup},
		{"canceled drops to free", "price_scaleup_monthly", "canceled", TierFree},
		{"past due drops to free", "price_startup_monthly", "past_due", TierFree},
		{"trialing is not active", "price_startup_monthly", "trialing", TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveTier(tt.priceID, tt.status))
		})
	}
}
