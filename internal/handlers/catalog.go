package handlers

import (
	"errors"
	"strconv"

	"beezio/internal/models"
	"beezio/internal/services/catalog"
	"beezio/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GetListing returns one priced product listing
func (h *CatalogHandler) GetListing(c *fiber.Ctx) error {
	productID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid product ID")
	}

	listing, err := h.catalogService.GetListing(c.Context(), uint(productID))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return utils.NotFound(c, "Product not found")
		}
		return utils.InternalError(c, "Failed to load listing")
	}

	return utils.Success(c, fiber.Map{"listing": listing})
}

// ListListings returns a page of priced listings
func (h *CatalogHandler) ListListings(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	listings, total, err := h.catalogService.ListListings(c.Context(), page, limit)
	if err != nil {
		return utils.InternalError(c, "Failed to list products")
	}

	return utils.Success(c, fiber.Map{
		"listings": listings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// Quote runs the seller pricing calculator for a prospective listing
func (h *CatalogHandler) Quote(c *fiber.Ctx) error {
	var req catalog.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	quote, err := h.catalogService.Quote(req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidQuote) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Failed to compute quote")
	}

	return utils.Success(c, quote)
}

// CreateProduct creates a listing owned by the authenticated seller
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	product.ID = 0
	product.SellerID = claims.UserID
	if product.Status == "" {
		product.Status = models.ProductStatusActive
	}

	if err := h.catalogService.CreateProduct(c.Context(), &product); err != nil {
		if errors.Is(err, catalog.ErrInvalidProduct) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Failed to create product")
	}

	return utils.Created(c, fiber.Map{"product": product})
}

// UpdateProduct updates one of the authenticated seller's listings
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	productID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid product ID")
	}

	existing, err := h.catalogService.GetListing(c.Context(), uint(productID))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return utils.NotFound(c, "Product not found")
		}
		return utils.InternalError(c, "Failed to load product")
	}
	if existing.SellerID != claims.UserID && claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Not your listing")
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	product.ID = uint(productID)
	product.SellerID = existing.SellerID

	if err := h.catalogService.UpdateProduct(c.Context(), &product); err != nil {
		return utils.InternalError(c, "Failed to update product")
	}

	return utils.Success(c, fiber.Map{"product": product})
}
