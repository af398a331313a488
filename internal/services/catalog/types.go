package catalog

import (
	"context"
	"time"

	"beezio/internal/services/pricing"
)

// Cache keys and durations
const (
	ListingCachePrefix = "listing:"
	ListingCacheTTL    = 5 * time.Minute
)

// Legacy-row ask recovery: flat commissions make the implied affiliate
// percent depend on the ask itself, so recovery iterates to a fixed
// point. A handful of rounds is far more than the contraction needs.
const legacyAskIterations = 6

// Listing is a product priced for display. FinalPrice is recomputed
// from the ask and the active fee configuration on every cache miss,
// never trusted from storage.
type Listing struct {
	ProductID         uint    `json:"product_id"`
	SellerID          uint    `json:"seller_id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	AskPrice          float64 `json:"ask_price"`
	FinalPrice        float64 `json:"final_price"`
	CommissionType    string  `json:"commission_type"`
	CommissionValue   float64 `json:"commission_value"`
	AffiliatePercent  float64 `json:"affiliate_percent"`
	AffiliateEarnings float64 `json:"affiliate_earnings"`
	FundraiserPercent float64 `json:"fundraiser_percent"`
	ShippingPrice     float64 `json:"shipping_price"`
	Currency          string  `json:"currency"`
}

// QuoteRequest is an ad-hoc pricing calculation, used by the seller
// pricing calculator before a product exists.
type QuoteRequest struct {
	AskPrice          float64            `json:"ask_price"`
	Commission        pricing.Commission `json:"commission"`
	FundraiserPercent float64            `json:"fundraiser_percent"`
}

// QuoteResponse carries the computed price, the full split, and rate
// guidance for the seller.
type QuoteResponse struct {
	AskPrice         float64           `json:"ask_price"`
	FinalPrice       float64           `json:"final_price"`
	Breakdown        pricing.Breakdown `json:"breakdown"`
	RecommendedRates RecommendedRates  `json:"recommended_rates"`
}

// RecommendedRates suggests affiliate commission percentages for the
// seller's price bracket.
type RecommendedRates struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Cache is the subset of the cache service the catalog needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
