package models

import "time"

// Product statuses
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product is a seller's listing. AskPrice is what the seller receives
// per unit; the buyer-facing price is never stored for new rows, it is
// recomputed from the ask and the fee configuration on every display.
// Legacy rows imported from the old catalog may carry only ListedPrice
// (the buyer price), in which case the ask is recovered through the
// pricing engine's inverse.
type Product struct {
	ID          uint   `gorm:"primarykey"`
	SellerID    uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string

	AskPrice float64 `gorm:"default:0"`

	// Affiliate commission as the seller configured it: "percent" of
	// the ask, or a "flat" amount per sale.
	CommissionType  string  `gorm:"default:'percent'"`
	CommissionValue float64 `gorm:"default:0"`

	// Share of the ask pledged to a fundraiser cause. Only applied to
	// a sale when the attribution actually designates a fundraiser.
	FundraiserPercent float64 `gorm:"default:0"`

	// Legacy imports only: buyer price stored without an ask.
	ListedPrice float64 `gorm:"default:0"`

	ShippingPrice float64 `gorm:"default:0"`
	Currency      string  `gorm:"default:'USD'"`
	Status        string  `gorm:"default:'active'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
