package repositories

import (
	"context"
	"errors"

	"beezio/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists orders and their payout ledger rows. An
// order, its items, and its payouts are only ever written together:
// a half-written ledger would split money inconsistently.
type OrderRepository interface {
	// CreateWithPayouts writes the order, its items, and its payout
	// rows in a single database transaction.
	CreateWithPayouts(ctx context.Context, order *models.Order, items []models.OrderItem, payouts []models.Payout) error

	// GetByID retrieves an order with its items and payouts
	GetByID(ctx context.Context, id uint) (*models.Order, error)

	// GetByOrderNumber retrieves an order by its public order number
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)

	// ListByBuyer retrieves a buyer's orders with pagination
	ListByBuyer(ctx context.Context, buyerID uint, offset, limit int) ([]models.Order, int64, error)

	// UpdateStatus transitions an order's status
	UpdateStatus(ctx context.Context, id uint, status string) error
}
