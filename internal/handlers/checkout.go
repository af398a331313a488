package handlers

import (
	"errors"

	"beezio/internal/models"
	"beezio/internal/services/checkout"
	"beezio/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	checkoutService checkout.Service
}

func NewCheckoutHandler(checkoutService checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

type cartRequest struct {
	Lines       []checkout.CartLine  `json:"lines"`
	Attribution checkout.Attribution `json:"attribution"`
}

// QuoteCart prices a cart without creating an order
func (h *CheckoutHandler) QuoteCart(c *fiber.Ctx) error {
	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	quote, err := h.checkoutService.QuoteCart(c.Context(), req.Lines, req.Attribution)
	if err != nil {
		return h.checkoutError(c, err)
	}
	return utils.Success(c, quote)
}

// SubmitOrder creates the order, its ledger, and a payment intent
func (h *CheckoutHandler) SubmitOrder(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var req cartRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	result, err := h.checkoutService.SubmitOrder(c.Context(), claims.UserID, req.Lines, req.Attribution)
	if err != nil {
		return h.checkoutError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"order":         result.Order,
		"client_secret": result.ClientSecret,
	})
}

// GetOrder returns one of the buyer's orders by order number
func (h *CheckoutHandler) GetOrder(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	order, err := h.checkoutService.GetOrder(c.Context(), c.Params("number"))
	if err != nil {
		return h.checkoutError(c, err)
	}
	if order.BuyerID != claims.UserID && claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Not your order")
	}

	return utils.Success(c, fiber.Map{"order": order})
}

// ListOrders pages through the buyer's order history
func (h *CheckoutHandler) ListOrders(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	orders, total, err := h.checkoutService.ListOrders(c.Context(), claims.UserID, page, limit)
	if err != nil {
		return utils.InternalError(c, "Failed to list orders")
	}

	return utils.Success(c, fiber.Map{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// ConfirmPayment verifies the payment intent and marks the order paid
func (h *CheckoutHandler) ConfirmPayment(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	order, err := h.checkoutService.GetOrder(c.Context(), c.Params("number"))
	if err != nil {
		return h.checkoutError(c, err)
	}
	if order.BuyerID != claims.UserID && claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Not your order")
	}

	confirmed, err := h.checkoutService.ConfirmPayment(c.Context(), c.Params("number"))
	if err != nil {
		return h.checkoutError(c, err)
	}

	return utils.Success(c, fiber.Map{"order": confirmed})
}

func (h *CheckoutHandler) checkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrProductUnavailable):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, checkout.ErrOrderNotFound):
		return utils.NotFound(c, "Order not found")
	case errors.Is(err, checkout.ErrPaymentNotSettled):
		return utils.Respond(c, fiber.StatusPaymentRequired, fiber.Map{"error": err.Error()})
	default:
		return utils.InternalError(c, "Checkout failed")
	}
}
