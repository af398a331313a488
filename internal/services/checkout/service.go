package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"beezio/internal/models"
	"beezio/internal/repositories"
	"beezio/internal/services/payment"
	"beezio/internal/services/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	products ProductReader
	orders   repositories.OrderRepository
	pricer   Pricer
	engine   *pricing.Engine
	payments payment.Provider
	metrics  MetricsCollector
}

// NewService creates a new checkout service
func NewService(
	products ProductReader,
	orders repositories.OrderRepository,
	pricer Pricer,
	engine *pricing.Engine,
	payments payment.Provider,
	metrics MetricsCollector,
) Service {
	if products == nil || orders == nil || pricer == nil {
		panic("repositories are required")
	}
	if engine == nil {
		panic("pricing engine is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		products: products,
		orders:   orders,
		pricer:   pricer,
		engine:   engine,
		payments: payments,
		metrics:  metrics,
	}
}

func (s *service) QuoteCart(ctx context.Context, lines []CartLine, attribution Attribution) (*CartQuote, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	quote := &CartQuote{Currency: "USD"}
	subtotal := decimal.Zero
	shipping := decimal.Zero

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, line.ProductID)
		}

		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			if err == repositories.ErrProductNotFound {
				return nil, fmt.Errorf("%w: product %d", ErrProductUnavailable, line.ProductID)
			}
			return nil, fmt.Errorf("failed to load product %d: %w", line.ProductID, err)
		}
		if product.Status != models.ProductStatusActive {
			return nil, fmt.Errorf("%w: product %d", ErrProductUnavailable, line.ProductID)
		}

		ask, settings := s.pricer.Price(product, attribution.FundraiserID != nil)
		finalPrice := s.engine.CalculateFinalPrice(ask, settings)
		breakdown := s.engine.ComputePayoutBreakdown(finalPrice, ask, settings, pricing.BreakdownOptions{
			ReferralOverrideEnabled: attribution.ReferralOverrideEnabled(),
		})

		qty := decimal.NewFromInt(int64(line.Quantity))
		lineFinal := decimal.NewFromFloat(finalPrice).Mul(qty)
		lineShipping := decimal.NewFromFloat(product.ShippingPrice).Mul(qty)

		subtotal = subtotal.Add(lineFinal)
		shipping = shipping.Add(lineShipping)

		lineTotal, _ := lineFinal.Add(lineShipping).Round(2).Float64()
		quote.Lines = append(quote.Lines, LineQuote{
			ProductID:         product.ID,
			Title:             product.Title,
			Quantity:          line.Quantity,
			AskPricePerUnit:   ask,
			FinalPricePerUnit: finalPrice,
			ShippingPerUnit:   product.ShippingPrice,
			LineTotal:         lineTotal,
			Breakdown:         breakdown,

			product:  product,
			settings: settings,
		})
		if product.Currency != "" {
			quote.Currency = product.Currency
		}
	}

	quote.Subtotal, _ = subtotal.Round(2).Float64()
	quote.Shipping, _ = shipping.Round(2).Float64()
	quote.Total, _ = subtotal.Add(shipping).Round(2).Float64()
	return quote, nil
}

func (s *service) SubmitOrder(ctx context.Context, buyerID uint, lines []CartLine, attribution Attribution) (*OrderResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("submit_order", time.Since(start)) }()

	quote, err := s.QuoteCart(ctx, lines, attribution)
	if err != nil {
		s.metrics.RecordError("submit_order", "quote_failed")
		return nil, err
	}

	order := &models.Order{
		OrderNumber:         uuid.New().String(),
		BuyerID:             buyerID,
		AffiliateID:         attribution.AffiliateID,
		ReferralAffiliateID: attribution.ReferralAffiliateID,
		FundraiserID:        attribution.FundraiserID,

		SubtotalAmount: quote.Subtotal,
		ShippingAmount: quote.Shipping,
		TotalAmount:    quote.Total,

		PlatformPercentAtPurchase: s.engine.Config().PlatformFeePercent,

		Status:   models.OrderStatusPendingPayment,
		Currency: quote.Currency,
	}

	items := make([]models.OrderItem, 0, len(quote.Lines))
	var payouts []models.Payout
	for i := range quote.Lines {
		line := &quote.Lines[i]
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,

			FinalSalePricePerUnit: line.FinalPricePerUnit,
			SellerAskPricePerUnit: line.AskPricePerUnit,

			AffiliatePercentAtPurchase:  line.settings.AffiliatePercent,
			PlatformPercentAtPurchase:   line.settings.PlatformPercent,
			FundraiserPercentAtPurchase: line.settings.FundraiserPercent,

			PayoutSnapshot: breakdownSnapshot(line.Breakdown),
		})
		payouts = append(payouts, s.ledgerRows(line, attribution)...)
	}

	result := &OrderResult{Order: order}
	if s.payments != nil {
		intent, err := s.payments.CreatePaymentIntent(ctx, amountCents(quote.Total), currencyCode(quote.Currency), map[string]string{
			"order_number": order.OrderNumber,
			"buyer_id":     fmt.Sprintf("%d", buyerID),
		})
		if err != nil {
			s.metrics.RecordError("submit_order", "payment_intent")
			return nil, fmt.Errorf("failed to open payment intent: %w", err)
		}
		order.PaymentIntentID = intent.ID
		result.ClientSecret = intent.ClientSecret
	}

	if err := s.orders.CreateWithPayouts(ctx, order, items, payouts); err != nil {
		s.metrics.RecordError("submit_order", "persist")
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	s.metrics.RecordOperationResult("submit_order", "success")
	s.metrics.RecordOrderVolume(quote.Total)
	return result, nil
}

func (s *service) GetOrder(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, buyerID uint, page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.orders.ListByBuyer(ctx, buyerID, (page-1)*limit, limit)
}

func (s *service) ConfirmPayment(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusPaid {
		return order, nil
	}

	if s.payments != nil && order.PaymentIntentID != "" {
		intent, err := s.payments.GetPaymentIntent(ctx, order.PaymentIntentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check payment intent: %w", err)
		}
		if intent.Status != "succeeded" {
			s.metrics.RecordError("confirm_payment", "not_settled")
			return nil, fmt.Errorf("%w: intent status %s", ErrPaymentNotSettled, intent.Status)
		}
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, models.OrderStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	order.Status = models.OrderStatusPaid
	s.metrics.RecordOperationResult("confirm_payment", "success")
	return order, nil
}

// ledgerRows expands one priced line into payout rows, one per party
// owed money. Per-unit amounts come from the frozen breakdown and are
// multiplied by quantity here; rows whose amount is zero are skipped
// except the seller's, which is always written.
func (s *service) ledgerRows(line *LineQuote, attribution Attribution) []models.Payout {
	qty := int64(line.Quantity)
	rows := []models.Payout{{
		BeneficiaryID: &line.product.SellerID,
		Role:          models.PayoutRoleSeller,
		Amount:        perLine(line.Breakdown.SellerAmount, qty),
		Description:   fmt.Sprintf("Seller proceeds for %q x%d", line.Title, qty),
	}}

	if attribution.AffiliateID != nil && line.Breakdown.AffiliateAmount > 0 {
		rows = append(rows, models.Payout{
			BeneficiaryID: attribution.AffiliateID,
			Role:          models.PayoutRoleAffiliate,
			Amount:        perLine(line.Breakdown.AffiliateAmount, qty),
			Description:   fmt.Sprintf("Affiliate commission for %q x%d", line.Title, qty),
		})
	}
	if attribution.ReferralOverrideEnabled() && line.Breakdown.ReferralAffiliateAmount > 0 {
		rows = append(rows, models.Payout{
			BeneficiaryID: attribution.ReferralAffiliateID,
			Role:          models.PayoutRoleReferralAffiliate,
			Amount:        perLine(line.Breakdown.ReferralAffiliateAmount, qty),
			Description:   fmt.Sprintf("Referral override for %q x%d", line.Title, qty),
		})
	}
	if attribution.FundraiserID != nil && line.Breakdown.FundraiserAmount > 0 {
		rows = append(rows, models.Payout{
			BeneficiaryID: attribution.FundraiserID,
			Role:          models.PayoutRoleFundraiser,
			Amount:        perLine(line.Breakdown.FundraiserAmount, qty),
			Description:   fmt.Sprintf("Fundraiser share for %q x%d", line.Title, qty),
		})
	}

	// Platform and processor rows have no beneficiary user; they make
	// the ledger sum to the buyer's payment.
	rows = append(rows,
		models.Payout{
			Role:        models.PayoutRoleBeezio,
			Amount:      perLine(line.Breakdown.BeezioNetAmount, qty),
			Description: fmt.Sprintf("Platform fee for %q x%d", line.Title, qty),
		},
		models.Payout{
			Role:        models.PayoutRoleStripe,
			Amount:      perLine(line.Breakdown.StripePercentAmount+line.Breakdown.StripeFixedFee, qty),
			Description: fmt.Sprintf("Processing fees for %q x%d", line.Title, qty),
		},
	)
	return rows
}

// perLine multiplies a per-unit amount by quantity, in cents.
func perLine(perUnit float64, qty int64) float64 {
	v, _ := decimal.NewFromFloat(perUnit).Mul(decimal.NewFromInt(qty)).Round(2).Float64()
	return v
}

func amountCents(total float64) int64 {
	return decimal.NewFromFloat(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func currencyCode(currency string) string {
	if currency == "" {
		return "usd"
	}
	return strings.ToLower(currency)
}

func breakdownSnapshot(b pricing.Breakdown) models.JSON {
	return models.NewJSON(map[string]interface{}{
		"final_price":               b.FinalPrice,
		"seller_amount":             b.SellerAmount,
		"affiliate_amount":          b.AffiliateAmount,
		"platform_gross_amount":     b.PlatformGrossAmount,
		"referral_affiliate_amount": b.ReferralAffiliateAmount,
		"beezio_net_amount":         b.BeezioNetAmount,
		"fundraiser_amount":         b.FundraiserAmount,
		"stripe_percent_amount":     b.StripePercentAmount,
		"stripe_fixed_fee":          b.StripeFixedFee,
	})
}
