package catalog

import (
	"context"
	"fmt"
	"log"

	"beezio/internal/models"
	"beezio/internal/repositories"
	"beezio/internal/services/pricing"
	"beezio/internal/validation"
)

// Service prices products for display. Every price it hands out comes
// from the shared pricing engine, so what a buyer sees on a listing is
// byte-for-byte what checkout will charge.
type Service interface {
	GetListing(ctx context.Context, productID uint) (*Listing, error)
	ListListings(ctx context.Context, page, limit int) ([]Listing, int64, error)
	Quote(req QuoteRequest) (*QuoteResponse, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error

	// Price resolves a product's ask price and payout settings. The
	// fundraiser share only enters the settings when the sale's
	// attribution actually designates a fundraiser.
	Price(product *models.Product, includeFundraiser bool) (askPrice float64, settings pricing.PayoutSettings)
}

type service struct {
	repo   repositories.ProductRepository
	cache  Cache
	engine *pricing.Engine
}

// NewService creates a new catalog service
func NewService(repo repositories.ProductRepository, cache Cache, engine *pricing.Engine) Service {
	if repo == nil {
		panic("repo is required")
	}
	if engine == nil {
		panic("pricing engine is required")
	}
	return &service{
		repo:   repo,
		cache:  cache,
		engine: engine,
	}
}

func (s *service) GetListing(ctx context.Context, productID uint) (*Listing, error) {
	key := listingKey(productID)

	if s.cache != nil {
		var cached Listing
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	product, err := s.repo.GetByID(productID)
	if err != nil {
		if err == repositories.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	listing := s.buildListing(product)

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, key, listing, ListingCacheTTL); err != nil {
			log.Printf("failed to cache listing %d: %v", productID, err)
		}
	}

	return listing, nil
}

func (s *service) ListListings(ctx context.Context, page, limit int) ([]Listing, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	products, total, err := s.repo.List((page-1)*limit, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	listings := make([]Listing, 0, len(products))
	for i := range products {
		listings = append(listings, *s.buildListing(&products[i]))
	}
	return listings, total, nil
}

func (s *service) Quote(req QuoteRequest) (*QuoteResponse, error) {
	if problems := validation.QuoteProblems(req.AskPrice, req.Commission, req.FundraiserPercent); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuote, problems[0])
	}

	settings := s.engine.Settings(req.Commission.ResolvePercent(req.AskPrice), req.FundraiserPercent)
	finalPrice := s.engine.CalculateFinalPrice(req.AskPrice, settings)
	breakdown := s.engine.ComputePayoutBreakdown(finalPrice, req.AskPrice, settings, pricing.BreakdownOptions{})

	return &QuoteResponse{
		AskPrice:         req.AskPrice,
		FinalPrice:       finalPrice,
		Breakdown:        breakdown,
		RecommendedRates: recommendedRates(req.AskPrice),
	}, nil
}

func (s *service) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Title == "" || product.SellerID == 0 {
		return ErrInvalidProduct
	}
	if product.AskPrice <= 0 && product.ListedPrice <= 0 {
		return ErrInvalidProduct
	}
	if product.CommissionType == "" {
		product.CommissionType = string(pricing.CommissionPercent)
	}
	return s.repo.Create(product)
}

func (s *service) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, listingKey(product.ID)); err != nil {
			log.Printf("failed to invalidate listing %d: %v", product.ID, err)
		}
	}
	return nil
}

func (s *service) Price(product *models.Product, includeFundraiser bool) (float64, pricing.PayoutSettings) {
	ask := product.AskPrice
	if ask <= 0 && product.ListedPrice > 0 {
		ask = s.recoverLegacyAsk(product)
	}

	fundraiserPercent := 0.0
	if includeFundraiser {
		fundraiserPercent = product.FundraiserPercent
	}

	commission := pricing.Commission{
		Type:  pricing.CommissionType(product.CommissionType),
		Value: product.CommissionValue,
	}
	return ask, s.engine.Settings(commission.ResolvePercent(ask), fundraiserPercent)
}

// recoverLegacyAsk derives the seller ask for imported rows that only
// stored the buyer price. Percent commissions invert in one step; flat
// commissions depend on the ask they are resolved against, so the
// resolution is iterated to a fixed point.
func (s *service) recoverLegacyAsk(product *models.Product) float64 {
	commission := pricing.Commission{
		Type:  pricing.CommissionType(product.CommissionType),
		Value: product.CommissionValue,
	}

	ask := s.engine.DeriveAskPriceFromFinalPrice(
		product.ListedPrice,
		s.engine.Settings(0, product.FundraiserPercent),
	)
	for i := 0; i < legacyAskIterations; i++ {
		settings := s.engine.Settings(commission.ResolvePercent(ask), product.FundraiserPercent)
		next := s.engine.DeriveAskPriceFromFinalPrice(product.ListedPrice, settings)
		if next == ask {
			break
		}
		ask = next
	}
	return ask
}

func (s *service) buildListing(product *models.Product) *Listing {
	ask, settings := s.Price(product, true)
	finalPrice := s.engine.CalculateFinalPrice(ask, settings)
	breakdown := s.engine.ComputePayoutBreakdown(finalPrice, ask, settings, pricing.BreakdownOptions{})

	return &Listing{
		ProductID:         product.ID,
		SellerID:          product.SellerID,
		Title:             product.Title,
		Description:       product.Description,
		AskPrice:          ask,
		FinalPrice:        finalPrice,
		CommissionType:    product.CommissionType,
		CommissionValue:   product.CommissionValue,
		AffiliatePercent:  settings.AffiliatePercent,
		AffiliateEarnings: breakdown.AffiliateAmount,
		FundraiserPercent: product.FundraiserPercent,
		ShippingPrice:     product.ShippingPrice,
		Currency:          product.Currency,
	}
}

// recommendedRates suggests commission brackets: cheaper items need a
// fatter cut to be worth an affiliate's promotion.
func recommendedRates(askPrice float64) RecommendedRates {
	switch {
	case askPrice < 50:
		return RecommendedRates{Low: 15, Medium: 25, High: 40}
	case askPrice < 200:
		return RecommendedRates{Low: 10, Medium: 20, High: 35}
	default:
		return RecommendedRates{Low: 5, Medium: 15, High: 25}
	}
}

func listingKey(productID uint) string {
	return fmt.Sprintf("%s%d", ListingCachePrefix, productID)
}
