// Package billing relays payment-processor events onto account records and
// creates checkout sessions.
package billing

import "strings"

// Subscription tiers. Price identifiers are matched by substring, so new
// price points within a tier need no code change.
const (
	TierFree    = "free"
	TierStartup = "startup"
	TierScaleup = "scaleup"
)

// TierFromPrice maps a price identifier to a paid tier.
func TierFromPrice(priceID string) string {
	if strings.Contains(priceID, "startup") {
		return TierStartup
	}
	return TierScaleup
}

// DeriveTier maps a subscription's price and status to a tier. Any
// non-active status drops the account to free regardless of price.
func DeriveTier(priceID, status string) string {
	if status != "active" {
		return TierFree
	}
	return TierFromPrice(priceID)
}
