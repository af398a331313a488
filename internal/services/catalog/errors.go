package catalog

import "errors"

// Service errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuote    = errors.New("invalid quote request")
)
