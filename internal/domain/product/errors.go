package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product is inactive")
	ErrProductReferenced = errors.New("product is referenced by shipments")
	ErrInsufficientStock = errors.New("insufficient stock quantity")
	ErrNegativeStock     = errors.New("stock quantity cannot become negative")
)
