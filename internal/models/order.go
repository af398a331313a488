package models

import "time"

// Order statuses
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCancelled      = "cancelled"
)

// Payout beneficiary roles. The beezio and stripe rows carry no
// beneficiary user; they exist so the ledger accounts for every cent
// of the buyer's payment.
const (
	PayoutRoleSeller            = "seller"
	PayoutRoleAffiliate         = "affiliate"
	PayoutRoleReferralAffiliate = "referral_affiliate"
	PayoutRoleFundraiser        = "fundraiser"
	PayoutRoleBeezio            = "beezio"
	PayoutRoleStripe            = "stripe"
)

// Payout statuses
const (
	PayoutStatusPending = "pending"
	PayoutStatusPaid    = "paid"
)

// Order is one checkout submission. The rates in force at purchase are
// frozen onto the order and its items so the ledger can always be
// re-derived even after the platform's fee configuration changes.
type Order struct {
	ID          uint   `gorm:"primarykey"`
	OrderNumber string `gorm:"uniqueIndex;not null"`
	BuyerID     uint   `gorm:"index;not null"`

	// Attribution captured at checkout.
	AffiliateID         *uint `gorm:"index"`
	ReferralAffiliateID *uint
	FundraiserID        *uint

	SubtotalAmount float64 `gorm:"not null"`
	ShippingAmount float64 `gorm:"default:0"`
	TotalAmount    float64 `gorm:"not null"`

	PlatformPercentAtPurchase float64

	Status          string `gorm:"not null;default:'pending_payment'"`
	PaymentIntentID string
	Currency        string `gorm:"default:'USD'"`

	Items   []OrderItem `gorm:"foreignKey:OrderID"`
	Payouts []Payout    `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is one product line. Prices are per unit; PayoutSnapshot
// holds the full per-unit breakdown that produced the ledger rows, as
// computed at submission time.
type OrderItem struct {
	ID        uint `gorm:"primarykey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`

	FinalSalePricePerUnit float64 `gorm:"not null"`
	SellerAskPricePerUnit float64 `gorm:"not null"`

	AffiliatePercentAtPurchase  float64
	PlatformPercentAtPurchase   float64
	FundraiserPercentAtPurchase float64

	PayoutSnapshot JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
}

// Payout is one ledger row for one order. BeneficiaryID is nil for
// the beezio and stripe rows.
type Payout struct {
	ID            uint    `gorm:"primarykey"`
	OrderID       uint    `gorm:"index;not null"`
	BeneficiaryID *uint   `gorm:"index"`
	Role          string  `gorm:"not null"`
	Amount        float64 `gorm:"not null"`
	Description   string
	Status        string `gorm:"not null;default:'pending'"`
	CreatedAt     time.Time
}
