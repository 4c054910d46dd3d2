package product

import (
	"time"

	domainProduct "cargo-dispatch/internal/domain/product"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Price    float64 `json:"price" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"max=50"`
	StockQty int     `json:"stock_qty" validate:"gte=0"`
}

// UpdateProductRequest is a patch: nil fields are untouched. StockQty is
// deliberately absent; stock moves only through reservations and
// adjustments.
type UpdateProductRequest struct {
	Name  *string  `json:"name" validate:"omitempty,max=200"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
	Unit  *string  `json:"unit" validate:"omitempty,max=50"`
}

// AdjustStockRequest carries a signed correction to the on-hand count,
// e.g. a warehouse recount or a damaged-goods write-off.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type ProductResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit,omitempty"`
	StockQty  int       `json:"stock_qty"`
	IsActive  bool      `json:"is_active"`
	LowStock  bool      `json:"low_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToProductResponse(p *domainProduct.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Unit:      p.Unit,
		StockQty:  p.StockQty,
		IsActive:  p.IsActive,
		LowStock:  p.StockQty < domainProduct.LowStockThreshold,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
