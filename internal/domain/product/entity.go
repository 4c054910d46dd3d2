package product

import (
	"time"

	"github.com/google/uuid"
)

// LowStockThreshold is the on-hand quantity below which reservations log a
// restock warning.
const LowStockThreshold = 10

// Product represents a stocked good in the domain. StockQty is the single
// source of truth for the on-hand count and is mutated only through the
// stock ledger.
type Product struct {
	ID       uuid.UUID
	Name     string
	Price    float64
	Unit     string
	StockQty int
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
