package stock

import (
	"context"
	"errors"

	domainProduct "cargo-dispatch/internal/domain/product"
	"cargo-dispatch/internal/logger"
	appErrors "cargo-dispatch/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger owns atomic mutation of per-product on-hand stock. The repository
// primitives it calls are single conditional row updates, so a reserve is
// one indivisible read-verify-write per product.
type Ledger struct {
	productRepo domainProduct.Repository
}

// NewLedger creates a stock ledger over the product repository.
func NewLedger(productRepo domainProduct.Repository) *Ledger {
	return &Ledger{productRepo: productRepo}
}

// Reserve holds qty units of the product against stock, failing with
// ErrInsufficientStock when fewer than qty units are on hand. Non-positive
// quantities are a caller contract violation rejected up front.
func (l *Ledger) Reserve(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return appErrors.ErrInvalidQuantity
	}

	if err := l.productRepo.DecrementStock(ctx, productID, qty); err != nil {
		if errors.Is(err, domainProduct.ErrInsufficientStock) {
			return appErrors.ErrInsufficientStock
		}
		return err
	}

	l.warnLowStock(ctx, productID, qty)
	return nil
}

// Release returns qty units to stock. One release corresponds to exactly
// one prior reserve of matching quantity; the coordinator owns that
// pairing, not the ledger.
func (l *Ledger) Release(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return appErrors.ErrInvalidQuantity
	}
	return l.productRepo.IncrementStock(ctx, productID, qty)
}

// Adjust applies a signed stock correction outside the reserve/release
// pairing, e.g. a warehouse recount. A negative delta may not drive stock
// below zero.
func (l *Ledger) Adjust(ctx context.Context, productID uuid.UUID, delta int) error {
	switch {
	case delta == 0:
		return appErrors.ErrInvalidQuantity
	case delta > 0:
		return l.productRepo.IncrementStock(ctx, productID, delta)
	default:
		if err := l.productRepo.DecrementStock(ctx, productID, -delta); err != nil {
			if errors.Is(err, domainProduct.ErrInsufficientStock) {
				return domainProduct.ErrNegativeStock
			}
			return err
		}
		return nil
	}
}

func (l *Ledger) warnLowStock(ctx context.Context, productID uuid.UUID, qty int) {
	p, err := l.productRepo.GetByID(ctx, productID)
	if err != nil {
		return
	}
	if p.StockQty < domainProduct.LowStockThreshold {
		logger.Warn("Product stock is running low",
			zap.String("product_id", productID.String()),
			zap.Int("stock_qty", p.StockQty),
			zap.Int("reserved", qty),
		)
	}
}
