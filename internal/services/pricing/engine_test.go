package pricing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultFeeConfig())
	require.NoError(t, err)
	return engine
}

func TestNewEngine_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FeeConfig)
		wantErr bool
	}{
		{name: "default config", mutate: func(*FeeConfig) {}, wantErr: false},
		{name: "stripe percent at 100", mutate: func(c *FeeConfig) { c.StripePercent = 100 }, wantErr: true},
		{name: "stripe percent above 100", mutate: func(c *FeeConfig) { c.StripePercent = 120 }, wantErr: true},
		{name: "negative stripe percent", mutate: func(c *FeeConfig) { c.StripePercent = -1 }, wantErr: true},
		{name: "negative fixed fee", mutate: func(c *FeeConfig) { c.StripeFixedFee = -0.30 }, wantErr: true},
		{name: "negative platform percent", mutate: func(c *FeeConfig) { c.PlatformFeePercent = -5 }, wantErr: true},
		{name: "negative surcharge", mutate: func(c *FeeConfig) { c.SurchargeAmount = -1 }, wantErr: true},
		{name: "referral percent above 100", mutate: func(c *FeeConfig) { c.ReferralOverridePercent = 101 }, wantErr: true},
		{name: "zero fees allowed", mutate: func(c *FeeConfig) {
			c.StripePercent = 0
			c.StripeFixedFee = 0
			c.SurchargeAmount = 0
		}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFeeConfig()
			tt.mutate(&cfg)

			engine, err := NewEngine(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFeeConfig)
				assert.Nil(t, engine)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, engine)
			}
		})
	}
}

func TestCalculateFinalPrice_ConcreteScenario(t *testing.T) {
	engine := newTestEngine(t)
	settings := PayoutSettings{AffiliatePercent: 10, PlatformPercent: 15, FundraiserPercent: 0}

	// askFees = 50 * 0.25 = 12.50, no surcharge above $20,
	// finalPrice = (62.50 + 0.30) / 0.971.
	finalPrice := engine.CalculateFinalPrice(50, settings)
	assert.InDelta(t, 64.68, finalPrice, 1e-9)

	breakdown := engine.ComputePayoutBreakdown(finalPrice, 50, settings, BreakdownOptions{})
	assert.InDelta(t, 50.00, breakdown.SellerAmount, 1e-9)
	assert.InDelta(t, 5.00, breakdown.AffiliateAmount, 1e-9)
	assert.InDelta(t, 7.50, breakdown.PlatformGrossAmount, 1e-9)
	assert.InDelta(t, 0, breakdown.FundraiserAmount, 1e-9)
	assert.InDelta(t, 1.88, breakdown.StripePercentAmount, 1e-9)
	assert.InDelta(t, 0.30, breakdown.StripeFixedFee, 1e-9)
	assert.InDelta(t, 0, breakdown.ReferralAffiliateAmount, 1e-9)
	assert.InDelta(t, breakdown.PlatformGrossAmount, breakdown.BeezioNetAmount, 1e-9)
}

func TestCalculateFinalPrice_SurchargeUnderThreshold(t *testing.T) {
	engine := newTestEngine(t)
	settings := PayoutSettings{AffiliatePercent: 10, PlatformPercent: 15}

	// netTarget = 10 + 2.50 + 1.00 surcharge = 13.50.
	finalPrice := engine.CalculateFinalPrice(10, settings)
	assert.InDelta(t, 14.21, finalPrice, 1e-9)

	breakdown := engine.ComputePayoutBreakdown(finalPrice, 10, settings, BreakdownOptions{})
	assert.InDelta(t, 2.50, breakdown.PlatformGrossAmount, 1e-9)
}

func TestSurchargeBoundary(t *testing.T) {
	engine := newTestEngine(t)
	settings := PayoutSettings{AffiliatePercent: 10, PlatformPercent: 15}

	atThreshold := engine.CalculateFinalPrice(20.00, settings)
	justAbove := engine.CalculateFinalPrice(20.01, settings)

	// The surcharge drops off above $20, so the buyer price steps down
	// even though the ask went up a cent.
	assert.Greater(t, atThreshold, justAbove)

	bdAt := engine.ComputePayoutBreakdown(atThreshold, 20.00, settings, BreakdownOptions{})
	bdAbove := engine.ComputePayoutBreakdown(justAbove, 20.01, settings, BreakdownOptions{})

	// 20.00*0.15 + 1.00 = 4.00 vs round2(20.01*0.15) = 3.00: exactly
	// the surcharge apart.
	assert.InDelta(t, 4.00, bdAt.PlatformGrossAmount, 1e-9)
	assert.InDelta(t, 3.00, bdAbove.PlatformGrossAmount, 1e-9)
	assert.InDelta(t, engine.Config().SurchargeAmount, bdAt.PlatformGrossAmount-bdAbove.PlatformGrossAmount, 1e-9)
}

func TestRoundTrip_AskPriceRecovered(t *testing.T) {
	engine := newTestEngine(t)

	// Asks on both sides of the $20 surcharge threshold. The band just
	// above the threshold where the piecewise inverse is ambiguous
	// (documented in TestDeriveAskPrice_AmbiguousBand) is deliberately
	// not part of the round-trip grid.
	asks := []float64{
		0.01, 0.25, 1, 2.50, 5, 9.99, 10, 15, 19.99, 20,
		21.05, 25, 49.99, 50, 99.99, 100, 250.75, 999.99, 1000, 5000, 9999.99, 10000,
	}
	rates := []float64{0, 5, 10, 15, 20}

	for _, aff := range rates {
		for _, plat := range rates {
			for _, fund := range rates {
				settings := PayoutSettings{AffiliatePercent: aff, PlatformPercent: plat, FundraiserPercent: fund}
				for _, ask := range asks {
					finalPrice := engine.CalculateFinalPrice(ask, settings)
					derived := engine.DeriveAskPriceFromFinalPrice(finalPrice, settings)
					assert.InDelta(t, ask, derived, 0.01,
						"ask=%v aff=%v plat=%v fund=%v final=%v", ask, aff, plat, fund, finalPrice)
				}
			}
		}
	}
}

func TestDeriveAskPrice_AmbiguousBand(t *testing.T) {
	engine := newTestEngine(t)
	settings := PayoutSettings{}

	// For asks just above the threshold both inverse candidates look
	// self-consistent and the with-surcharge one wins. The recovered
	// ask is therefore lower than the true ask by the surcharge. This
	// pins the long-standing tie-break; it is not a bug to fix.
	finalPrice := engine.CalculateFinalPrice(20.50, settings)
	derived := engine.DeriveAskPriceFromFinalPrice(finalPrice, settings)
	assert.InDelta(t, 19.50, derived, 0.01)
}

func TestDeriveAskPrice_DegenerateMultiplier(t *testing.T) {
	engine := newTestEngine(t)

	// k <= 0 cannot happen with valid settings; the defensive branch
	// returns 0 instead of a nonsense negative ask.
	settings := PayoutSettings{AffiliatePercent: -250}
	assert.Zero(t, engine.DeriveAskPriceFromFinalPrice(100, settings))
}

func TestConservation_BreakdownSumsToFinalPrice(t *testing.T) {
	engine := newTestEngine(t)

	asks := []float64{0.01, 1, 5, 10, 19.99, 20, 20.01, 25, 50, 100, 999.99, 10000}
	rates := []float64{0, 5, 10, 15, 20}

	for _, referral := range []bool{false, true} {
		for _, aff := range rates {
			for _, fund := range rates {
				settings := PayoutSettings{AffiliatePercent: aff, PlatformPercent: 15, FundraiserPercent: fund}
				for _, ask := range asks {
					finalPrice := engine.CalculateFinalPrice(ask, settings)
					b := engine.ComputePayoutBreakdown(finalPrice, ask, settings, BreakdownOptions{ReferralOverrideEnabled: referral})

					sum := b.SellerAmount + b.AffiliateAmount + b.PlatformGrossAmount +
						b.FundraiserAmount + b.StripePercentAmount + b.StripeFixedFee
					assert.InDelta(t, finalPrice, sum, 0.03,
						"ask=%v aff=%v fund=%v referral=%v", ask, aff, fund, referral)

					// The referral slice always nets out of the platform share.
					assert.InDelta(t, b.PlatformGrossAmount, b.BeezioNetAmount+b.ReferralAffiliateAmount, 1e-9)
				}
			}
		}
	}
}

func TestReferralOverride_CarvedFromPlatformShare(t *testing.T) {
	engine := newTestEngine(t)
	settings := PayoutSettings{AffiliatePercent: 10, PlatformPercent: 15, FundraiserPercent: 5}
	finalPrice := engine.CalculateFinalPrice(50, settings)

	plain := engine.ComputePayoutBreakdown(finalPrice, 50, settings, BreakdownOptions{})
	overridden := engine.ComputePayoutBreakdown(finalPrice, 50, settings, BreakdownOptions{ReferralOverrideEnabled: true})

	assert.Zero(t, plain.ReferralAffiliateAmount)
	assert.Greater(t, overridden.ReferralAffiliateAmount, 0.0)
	assert.Less(t, overridden.BeezioNetAmount, plain.PlatformGrossAmount)
	assert.InDelta(t, overridden.PlatformGrossAmount-overridden.ReferralAffiliateAmount, overridden.BeezioNetAmount, 1e-9)

	// Everything outside the platform split is untouched by the flag.
	assert.Equal(t, plain.FinalPrice, overridden.FinalPrice)
	assert.Equal(t, plain.SellerAmount, overridden.SellerAmount)
	assert.Equal(t, plain.AffiliateAmount, overridden.AffiliateAmount)
	assert.Equal(t, plain.PlatformGrossAmount, overridden.PlatformGrossAmount)
	assert.Equal(t, plain.FundraiserAmount, overridden.FundraiserAmount)
	assert.Equal(t, plain.StripePercentAmount, overridden.StripePercentAmount)
	assert.Equal(t, plain.StripeFixedFee, overridden.StripeFixedFee)
}

func TestCalculateFinalPrice_MonotoneWithinSurchargeBands(t *testing.T) {
	engine := newTestEngine(t)
	settings := PayoutSettings{AffiliatePercent: 10, PlatformPercent: 15}

	bands := [][]float64{
		{0.50, 1, 2, 5, 7.77, 10, 12.34, 15, 18, 19.99, 20},
		{20.01, 21, 25, 33.33, 50, 75, 100, 500, 1000, 10000},
	}
	for i, band := range bands {
		t.Run(fmt.Sprintf("band_%d", i), func(t *testing.T) {
			prev := engine.CalculateFinalPrice(band[0], settings)
			for _, ask := range band[1:] {
				next := engine.CalculateFinalPrice(ask, settings)
				assert.Greater(t, next, prev, "ask=%v", ask)
				prev = next
			}
		})
	}
}

func TestSettings_UsesConfiguredPlatformDefault(t *testing.T) {
	engine := newTestEngine(t)

	settings := engine.Settings(20, 5)
	assert.Equal(t, 20.0, settings.AffiliatePercent)
	assert.Equal(t, engine.Config().PlatformFeePercent, settings.PlatformPercent)
	assert.Equal(t, 5.0, settings.FundraiserPercent)
}
