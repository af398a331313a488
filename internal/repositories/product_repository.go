package repositories

import (
	"errors"

	"beezio/internal/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// ProductRepository defines the database operations behind the catalog.
type ProductRepository interface {
	// Create inserts a new product listing
	Create(product *models.Product) error

	// GetByID retrieves a product by its ID
	GetByID(id uint) (*models.Product, error)

	// GetBySellerID retrieves every product of one seller
	GetBySellerID(sellerID uint) ([]models.Product, error)

	// List retrieves active products with pagination
	List(offset, limit int) ([]models.Product, int64, error)

	// Update updates an existing product
	Update(product *models.Product) error

	// Delete removes a product
	Delete(id uint) error
}
