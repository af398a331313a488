package pricing

import "github.com/shopspring/decimal"

// CommissionType tags how a seller pays their affiliates.
type CommissionType string

const (
	CommissionPercent CommissionType = "percent"
	CommissionFlat    CommissionType = "flat"
)

// Commission is an affiliate commission as the seller configured it:
// either a percentage of the ask price or a flat amount per sale. The
// engine itself only accepts percentages, so flat commissions must be
// resolved through ResolvePercent at the call boundary before any
// pricing operation.
type Commission struct {
	Type  CommissionType `json:"type"`
	Value float64        `json:"value"`
}

// ResolvePercent converts the commission into an equivalent percentage
// of the given ask price. Percent commissions pass through unchanged;
// a flat commission on a non-positive ask resolves to 0 since there is
// nothing to take a share of. The result is a rate, not currency, and
// is deliberately not rounded.
func (c Commission) ResolvePercent(askPrice float64) float64 {
	switch c.Type {
	case CommissionFlat:
		if askPrice <= 0 || c.Value <= 0 {
			return 0
		}
		return c.Value / askPrice * 100
	default:
		if c.Value < 0 {
			return 0
		}
		return c.Value
	}
}

// Amount is the commission in currency units for the given ask price,
// rounded to cents.
func (c Commission) Amount(askPrice float64) float64 {
	ask := decimal.NewFromFloat(askPrice)
	return roundToTwo(ask.Mul(asFraction(c.ResolvePercent(askPrice))))
}
