package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleBuyer     = "buyer"
	RoleSeller    = "seller"
	RoleAffiliate = "affiliate"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"default:'buyer'"`
	Status       string `gorm:"default:'active'"`
	StoreName    string // sellers only
	LastLoginAt  time.Time
	TokenVersion int `gorm:"default:1"`

	// Affiliates only: the affiliate who recruited this one. When set,
	// sales attributed to this affiliate carry a referral override that
	// diverts a slice of the platform fee to the recruiter.
	RecruitedByID *uint
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	// Affiliates only: ID of the recruiting affiliate, if any.
	RecruitedByID *uint `json:"recruited_by_id"`
}
