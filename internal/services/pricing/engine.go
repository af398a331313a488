package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Engine evaluates the pricing formulas against one immutable fee
// configuration. Construct it once at startup and share it.
type Engine struct {
	cfg FeeConfig

	stripeRate decimal.Decimal // StripePercent as a fraction
	stripeNet  decimal.Decimal // 1 - stripeRate
	fixedFee   decimal.Decimal
	threshold  decimal.Decimal
	surcharge  decimal.Decimal
	referral   decimal.Decimal // ReferralOverridePercent as a fraction
}

// NewEngine validates cfg and returns a ready engine. A processor
// percentage at or above 100% leaves nothing to cover the seller's ask
// and makes the gross-up division undefined, so it is rejected here,
// eagerly, instead of surfacing as a bad price later.
func NewEngine(cfg FeeConfig) (*Engine, error) {
	if cfg.StripePercent >= 100 {
		return nil, fmt.Errorf("%w: stripe percent %.2f leaves non-positive net", ErrInvalidFeeConfig, cfg.StripePercent)
	}
	if cfg.StripePercent < 0 || cfg.StripeFixedFee < 0 {
		return nil, fmt.Errorf("%w: negative processor fee", ErrInvalidFeeConfig)
	}
	if cfg.PlatformFeePercent < 0 {
		return nil, fmt.Errorf("%w: negative platform percent", ErrInvalidFeeConfig)
	}
	if cfg.SurchargeThreshold < 0 || cfg.SurchargeAmount < 0 {
		return nil, fmt.Errorf("%w: negative surcharge rule", ErrInvalidFeeConfig)
	}
	if cfg.ReferralOverridePercent < 0 || cfg.ReferralOverridePercent > 100 {
		return nil, fmt.Errorf("%w: referral override percent %.2f out of range", ErrInvalidFeeConfig, cfg.ReferralOverridePercent)
	}

	stripeRate := asFraction(cfg.StripePercent)
	return &Engine{
		cfg:        cfg,
		stripeRate: stripeRate,
		stripeNet:  decimal.NewFromInt(1).Sub(stripeRate),
		fixedFee:   decimal.NewFromFloat(cfg.StripeFixedFee),
		threshold:  decimal.NewFromFloat(cfg.SurchargeThreshold),
		surcharge:  decimal.NewFromFloat(cfg.SurchargeAmount),
		referral:   asFraction(cfg.ReferralOverridePercent),
	}, nil
}

// Config returns the fee constants the engine was built with.
func (e *Engine) Config() FeeConfig {
	return e.cfg
}

// Settings builds PayoutSettings for a product using the configured
// default platform percent.
func (e *Engine) Settings(affiliatePercent, fundraiserPercent float64) PayoutSettings {
	return PayoutSettings{
		AffiliatePercent:  affiliatePercent,
		PlatformPercent:   e.cfg.PlatformFeePercent,
		FundraiserPercent: fundraiserPercent,
	}
}

// CalculateFinalPrice computes the buyer-facing price for a seller's
// ask: the price such that, after the processor takes its percentage
// and fixed fee off the gross, what remains exactly covers the ask,
// every ask-based percentage fee, and the low-price surcharge when it
// applies.
func (e *Engine) CalculateFinalPrice(askPrice float64, payout PayoutSettings) float64 {
	ask := decimal.NewFromFloat(askPrice)

	askFees := ask.Mul(e.askFeeRate(payout))
	netTarget := ask.Add(askFees).Add(e.surchargeFor(ask))

	// Solve finalPrice * (1 - pStripe) - fixedFee == netTarget.
	finalPrice := netTarget.Add(e.fixedFee).Div(e.stripeNet)
	return roundToTwo(finalPrice)
}

// DeriveAskPriceFromFinalPrice recovers the implied seller ask from an
// already-fixed final price, for legacy rows where only the buyer
// price was stored.
//
// The low-price surcharge is conditional on the ask, which is unknown
// here, so the inverse is piecewise: both candidates are computed and
// the with-surcharge one is used only when it is self-consistent
// (positive and at or under the threshold). At the exact threshold
// boundary both branches can be self-consistent; the with-surcharge
// candidate wins there, which is the long-standing behavior and is
// pinned by tests rather than second-guessed.
func (e *Engine) DeriveAskPriceFromFinalPrice(finalPrice float64, payout PayoutSettings) float64 {
	k := decimal.NewFromInt(1).Add(e.askFeeRate(payout))
	if k.Sign() <= 0 {
		return 0
	}

	base := decimal.NewFromFloat(finalPrice).Mul(e.stripeNet).Sub(e.fixedFee)

	askWithSurcharge := base.Sub(e.surcharge).Div(k)
	if askWithSurcharge.Sign() > 0 && askWithSurcharge.Cmp(e.threshold) <= 0 {
		return roundToTwo(askWithSurcharge)
	}
	return roundToTwo(base.Div(k))
}

// ComputePayoutBreakdown splits a known (finalPrice, askPrice) pair
// into each party's share. The pair is normally produced together by
// CalculateFinalPrice but is accepted independently so historical rows
// can still be broken down.
func (e *Engine) ComputePayoutBreakdown(finalPrice, askPrice float64, payout PayoutSettings, opts BreakdownOptions) Breakdown {
	final := decimal.NewFromFloat(finalPrice)
	ask := decimal.NewFromFloat(askPrice)

	affiliateAmount := ask.Mul(asFraction(payout.AffiliatePercent)).Round(2)
	platformGross := ask.Mul(asFraction(payout.PlatformPercent)).Add(e.surchargeFor(ask)).Round(2)

	// The referral override is carved out of the platform's own take;
	// the buyer-facing price is unaffected by whether it is active.
	referralAmount := decimal.Zero
	if opts.ReferralOverrideEnabled {
		referralAmount = platformGross.Mul(e.referral).Round(2)
	}
	beezioNet := platformGross.Sub(referralAmount).Round(2)

	fundraiserAmount := ask.Mul(asFraction(payout.FundraiserPercent)).Round(2)
	stripePercentAmount := final.Mul(e.stripeRate).Round(2)

	return Breakdown{
		FinalPrice:              roundToTwo(final),
		SellerAmount:            roundToTwo(ask),
		AffiliateAmount:         toFloat(affiliateAmount),
		PlatformGrossAmount:     toFloat(platformGross),
		ReferralAffiliateAmount: toFloat(referralAmount),
		BeezioNetAmount:         toFloat(beezioNet),
		FundraiserAmount:        toFloat(fundraiserAmount),
		StripePercentAmount:     toFloat(stripePercentAmount),
		StripeFixedFee:          e.cfg.StripeFixedFee,
	}
}

// askFeeRate is the combined fraction of the ask owed to ask-based
// percentage fees.
func (e *Engine) askFeeRate(payout PayoutSettings) decimal.Decimal {
	return asFraction(payout.AffiliatePercent).
		Add(asFraction(payout.PlatformPercent)).
		Add(asFraction(payout.FundraiserPercent))
}

// surchargeFor returns the fixed platform surcharge owed for an ask
// price: SurchargeAmount when 0 < ask <= SurchargeThreshold, else 0.
func (e *Engine) surchargeFor(ask decimal.Decimal) decimal.Decimal {
	if ask.Sign() > 0 && ask.Cmp(e.threshold) <= 0 {
		return e.surcharge
	}
	return decimal.Zero
}

func asFraction(percent float64) decimal.Decimal {
	return decimal.NewFromFloat(percent).Div(oneHundred)
}

func roundToTwo(d decimal.Decimal) float64 {
	return toFloat(d.Round(2))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
