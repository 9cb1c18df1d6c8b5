package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidName     = errors.New("product name is required and must be at most 120 characters")
	ErrInvalidCategory = errors.New("unknown product category")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
	ErrInvalidStock    = errors.New("quantity in stock must not be negative")
	ErrIDMismatch      = errors.New("product id does not match the request path")
)
