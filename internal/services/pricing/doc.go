/*
Package pricing implements the marketplace pricing and payout engine.

The engine is the single source of truth for the relationship between
a seller's ask price (what the seller receives) and the customer-facing
final price (what the buyer pays), and for splitting a completed sale
across every party: seller, affiliate, platform, recruiting affiliate,
fundraiser, and the payment processor.

Usage:

	engine, err := pricing.NewEngine(pricing.DefaultFeeConfig())
	if err != nil {
	    log.Fatal(err)
	}

	settings := engine.Settings(20, 0) // 20% affiliate, no fundraiser
	finalPrice := engine.CalculateFinalPrice(49.99, settings)

	breakdown := engine.ComputePayoutBreakdown(finalPrice, 49.99, settings, pricing.BreakdownOptions{})

All operations are pure and side-effect free; an Engine is safe for use
from any number of goroutines. The only failure mode is an invalid fee
configuration, rejected eagerly by NewEngine so that no caller can ever
be handed an engine that would produce undefined prices.

Amounts cross the API as float64 currency units rounded to cents, like
the rest of the codebase. Internally all arithmetic runs on
shopspring/decimal so intermediate fee math never accumulates binary
floating point drift; rounding to cents happens exactly once per
output field, at the point of computation.
*/
package pricing
