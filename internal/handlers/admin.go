package handlers

import (
	"beezio/internal/services/pricing"
	"beezio/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	engine *pricing.Engine
}

func NewAdminHandler(engine *pricing.Engine) *AdminHandler {
	return &AdminHandler{
		engine: engine,
	}
}

// GetFeeConfig exposes the fee constants the engine is running with,
// for operators checking what a deployment actually loaded.
func (h *AdminHandler) GetFeeConfig(c *fiber.Ctx) error {
	cfg := h.engine.Config()
	return utils.Success(c, fiber.Map{
		"platform_fee_percent":      cfg.PlatformFeePercent,
		"stripe_percent":            cfg.StripePercent,
		"stripe_fixed_fee":          cfg.StripeFixedFee,
		"surcharge_threshold":       cfg.SurchargeThreshold,
		"surcharge_amount":          cfg.SurchargeAmount,
		"referral_override_percent": cfg.ReferralOverridePercent,
	})
}
