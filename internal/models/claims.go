package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Catalog permissions
	PermissionProductRead  = "product:read"
	PermissionProductWrite = "product:write"

	// Checkout permissions
	PermissionCheckoutWrite = "checkout:write"
	PermissionOrderRead     = "order:read"

	// User management permissions
	PermissionUserRead       = "user:read"
	PermissionUserWrite      = "user:write"
	PermissionChangePassword = "user:change-password"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionProductRead,
			PermissionProductWrite,
			PermissionCheckoutWrite,
			PermissionOrderRead,
			PermissionUserRead,
			PermissionUserWrite,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleSeller:
		return []string{
			PermissionProductRead,
			PermissionProductWrite,
			PermissionCheckoutWrite,
			PermissionOrderRead,
			PermissionChangePassword,
		}
	case RoleAffiliate:
		return []string{
			PermissionProductRead,
			PermissionCheckoutWrite,
			PermissionOrderRead,
			PermissionChangePassword,
		}
	case RoleBuyer:
		return []string{
			PermissionProductRead,
			PermissionCheckoutWrite,
			PermissionOrderRead,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
