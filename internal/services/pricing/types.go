package pricing

// PayoutSettings carries the percentage-based fee rates for a single
// product or sale. Rates are percentages (15 means 15%), never
// fractions, and are configuration values: they are not rounded until
// multiplied by a price.
//
// Flat-rate affiliate commissions are resolved to an equivalent
// percentage upstream (see Commission.ResolvePercent); the engine only
// ever sees percentages.
type PayoutSettings struct {
	AffiliatePercent  float64 `json:"affiliate_percent"`
	PlatformPercent   float64 `json:"platform_percent"`
	FundraiserPercent float64 `json:"fundraiser_percent"`
}

// FeeConfig holds the process-wide fee constants. It is loaded once at
// startup and never mutated at runtime; display-time and
// order-submission-time computations for the same sale must use the
// same config or their breakdowns will diverge.
type FeeConfig struct {
	// PlatformFeePercent is the default platform rate used when a
	// product carries no explicit platform percent.
	PlatformFeePercent float64

	// StripePercent is the payment processor's percentage fee, applied
	// to the final buyer-facing price.
	StripePercent float64

	// StripeFixedFee is the processor's fixed per-transaction fee in
	// currency units, applied once per charge.
	StripeFixedFee float64

	// SurchargeThreshold is the ask-price ceiling at or below which the
	// fixed platform surcharge applies (ask must also be > 0).
	SurchargeThreshold float64

	// SurchargeAmount is the fixed amount added to the platform's take
	// for low-priced items.
	SurchargeAmount float64

	// ReferralOverridePercent is the share of the platform's gross fee
	// diverted to the recruiting affiliate when a referral override is
	// active. It is carved out of the platform's take, never added on
	// top of the buyer's price.
	ReferralOverridePercent float64
}

// DefaultFeeConfig returns the production fee constants.
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		PlatformFeePercent:      15,
		StripePercent:           2.9,
		StripeFixedFee:          0.30,
		SurchargeThreshold:      20,
		SurchargeAmount:         1.00,
		ReferralOverridePercent: 5,
	}
}

// BreakdownOptions controls optional payout behavior. The zero value
// is the default: no referral override.
type BreakdownOptions struct {
	// ReferralOverrideEnabled is true only when the attributed
	// affiliate was themselves recruited by another affiliate,
	// entitling the recruiter to a slice of the platform's fee.
	ReferralOverrideEnabled bool
}

// Breakdown is the full decomposition of one sale. Every currency
// field is rounded to cents at the point of computation. A Breakdown
// is recomputed deterministically on every display and every checkout;
// callers persist a snapshot if they need a durable record.
//
// When FinalPrice and SellerAmount were produced together by
// CalculateFinalPrice, the sum of SellerAmount + AffiliateAmount +
// PlatformGrossAmount + FundraiserAmount + StripePercentAmount +
// StripeFixedFee equals FinalPrice to within the rounding slack of its
// independently rounded terms. For legacy pairs that were not produced
// together the identity is approximate, which is expected.
type Breakdown struct {
	FinalPrice              float64 `json:"final_price"`
	SellerAmount            float64 `json:"seller_amount"`
	AffiliateAmount         float64 `json:"affiliate_amount"`
	PlatformGrossAmount     float64 `json:"platform_gross_amount"`
	ReferralAffiliateAmount float64 `json:"referral_affiliate_amount"`
	BeezioNetAmount         float64 `json:"beezio_net_amount"`
	FundraiserAmount        float64 `json:"fundraiser_amount"`
	StripePercentAmount     float64 `json:"stripe_percent_amount"`
	StripeFixedFee          float64 `json:"stripe_fixed_fee"`
}
