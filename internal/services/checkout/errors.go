package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("cart has no lines")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrProductUnavailable = errors.New("product is not available")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPaymentNotSettled  = errors.New("payment has not settled")
)
