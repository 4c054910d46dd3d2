package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for product persistence.
//
// DecrementStock and IncrementStock are the ledger's atomicity primitives:
// each is a single conditional row update (read-verify-write as one step)
// so concurrent reservations against the same product cannot both succeed
// when only one could.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Deactivate(ctx context.Context, productID uuid.UUID) error
	Delete(ctx context.Context, productID uuid.UUID) error

	// DecrementStock subtracts qty from stock_qty if and only if
	// stock_qty >= qty, returning ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) error
	// IncrementStock adds qty back to stock_qty.
	IncrementStock(ctx context.Context, productID uuid.UUID, qty int) error
}
