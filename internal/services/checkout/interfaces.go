package checkout

import (
	"context"

	"beezio/internal/models"
	"beezio/internal/services/pricing"
)

// Service defines the checkout operations.
type Service interface {
	// QuoteCart prices a cart without persisting anything.
	QuoteCart(ctx context.Context, lines []CartLine, attribution Attribution) (*CartQuote, error)

	// SubmitOrder prices the cart, opens a payment intent for the
	// total, and persists the order with its full payout ledger.
	SubmitOrder(ctx context.Context, buyerID uint, lines []CartLine, attribution Attribution) (*OrderResult, error)

	// GetOrder loads an order by its public order number.
	GetOrder(ctx context.Context, orderNumber string) (*models.Order, error)

	// ListOrders pages through a buyer's order history.
	ListOrders(ctx context.Context, buyerID uint, page, limit int) ([]models.Order, int64, error)

	// ConfirmPayment checks the processor and, if the intent
	// succeeded, marks the order paid.
	ConfirmPayment(ctx context.Context, orderNumber string) (*models.Order, error)
}

// ProductReader is the slice of the product repository checkout needs.
type ProductReader interface {
	GetByID(id uint) (*models.Product, error)
}

// Pricer resolves a product's ask price and payout settings. The
// catalog service satisfies it.
type Pricer interface {
	Price(product *models.Product, includeFundraiser bool) (askPrice float64, settings pricing.PayoutSettings)
}
