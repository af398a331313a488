// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"log"

	"beezio/internal/handlers"
	"beezio/internal/middleware"
	"beezio/internal/models"
	"beezio/internal/repositories"
	"beezio/internal/services/auth"
	"beezio/internal/services/catalog"
	"beezio/internal/services/checkout"
	"beezio/internal/services/payment"
	"beezio/internal/services/pricing"
	"beezio/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB, engine *pricing.Engine) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	catalogService := catalog.NewService(productRepo, repositories.CacheService, engine)

	// Checkout still works without a processor; orders are created
	// unpaid and settled out of band. Loudly note the degraded mode.
	paymentProvider, err := payment.NewStripeProvider()
	if err != nil {
		log.Printf("Stripe disabled: %v", err)
	}

	checkoutService := checkout.NewService(
		productRepo,
		orderRepo,
		catalogService,
		engine,
		paymentProvider,
		&checkout.NoopMetricsCollector{},
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	adminHandler := handlers.NewAdminHandler(engine)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/health", handlers.HealthCheck)

	// Browsing and the pricing calculator are public: buyers see prices
	// before they have an account, sellers play with rates before signup.
	api.Get("/listings", catalogHandler.ListListings)
	api.Get("/listings/:id", catalogHandler.GetListing)
	api.Post("/pricing/quote", catalogHandler.Quote)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Beezio API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	authMiddleware := middleware.NewAuthMiddleware(userRepo)
	protected := api.Use(authMiddleware.Handler)

	setupAccountRoutes(protected, authHandler, userHandler)
	setupSellerRoutes(protected, catalogHandler)
	setupCheckoutRoutes(protected, checkoutHandler)
	setupAdminRoutes(app, authMiddleware, adminHandler)
}

func setupAccountRoutes(router fiber.Router, authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler) {
	router.Get("/me", userHandler.GetProfile)
	router.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)
	router.Post("/logout", authHandler.LogoutUser)
}

func setupSellerRoutes(router fiber.Router, catalogHandler *handlers.CatalogHandler) {
	products := router.Group("/products", middleware.HasPermission(models.PermissionProductWrite))

	products.Post("/", catalogHandler.CreateProduct)
	products.Put("/:id", catalogHandler.UpdateProduct)
}

func setupCheckoutRoutes(router fiber.Router, checkoutHandler *handlers.CheckoutHandler) {
	co := router.Group("/checkout", middleware.HasPermission(models.PermissionCheckoutWrite))
	co.Post("/quote", checkoutHandler.QuoteCart)
	co.Post("/orders", checkoutHandler.SubmitOrder)

	orders := router.Group("/orders", middleware.HasPermission(models.PermissionOrderRead))
	orders.Get("/", checkoutHandler.ListOrders)
	orders.Get("/:number", checkoutHandler.GetOrder)
	orders.Post("/:number/confirm", checkoutHandler.ConfirmPayment)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, adminHandler *handlers.AdminHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/fees", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetFeeConfig)
}
