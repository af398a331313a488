package checkout

import (
	"beezio/internal/models"
	"beezio/internal/services/pricing"
)

// CartLine is one product the buyer wants, by quantity.
type CartLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Attribution records who gets credited for the sale. All three are
// optional; a direct sale carries none of them.
type Attribution struct {
	// AffiliateID is the affiliate whose link or storefront produced
	// the sale.
	AffiliateID *uint `json:"affiliate_id"`

	// ReferralAffiliateID is the affiliate who recruited AffiliateID,
	// if any. Its presence activates the referral override.
	ReferralAffiliateID *uint `json:"referral_affiliate_id"`

	// FundraiserID is the cause the sale was attributed to. A
	// product's fundraiser percent only applies when this is set.
	FundraiserID *uint `json:"fundraiser_id"`
}

// ReferralOverrideEnabled reports whether the recruiting affiliate is
// owed a slice of the platform fee for this sale.
func (a Attribution) ReferralOverrideEnabled() bool {
	return a.ReferralAffiliateID != nil
}

// LineQuote is one cart line priced through the engine. Breakdown is
// per unit; LineTotal is (final price + shipping) times quantity.
type LineQuote struct {
	ProductID         uint              `json:"product_id"`
	Title             string            `json:"title"`
	Quantity          int               `json:"quantity"`
	AskPricePerUnit   float64           `json:"ask_price_per_unit"`
	FinalPricePerUnit float64           `json:"final_price_per_unit"`
	ShippingPerUnit   float64           `json:"shipping_per_unit"`
	LineTotal         float64           `json:"line_total"`
	Breakdown         pricing.Breakdown `json:"breakdown"`

	product  *models.Product
	settings pricing.PayoutSettings
}

// CartQuote is the buyer's full cart priced for display or submission.
type CartQuote struct {
	Lines    []LineQuote `json:"lines"`
	Subtotal float64     `json:"subtotal"`
	Shipping float64     `json:"shipping"`
	Total    float64     `json:"total"`
	Currency string      `json:"currency"`
}

// OrderResult is what the client needs after submission: the persisted
// order and the processor secret to complete payment.
type OrderResult struct {
	Order        *models.Order `json:"order"`
	ClientSecret string        `json:"client_secret"`
}
