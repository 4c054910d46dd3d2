package warehouse

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for warehouse persistence.
type Repository interface {
	Create(ctx context.Context, w *Warehouse) error
	GetByID(ctx context.Context, warehouseID uuid.UUID) (*Warehouse, error)
	List(ctx context.Context) ([]*Warehouse, error)
	Update(ctx context.Context, w *Warehouse) error
	Delete(ctx context.Context, warehouseID uuid.UUID) error

	// ExistsByNameLocation reports whether another warehouse with the same
	// name and location exists, excluding excludeID when non-nil.
	ExistsByNameLocation(ctx context.Context, name, location string, excludeID *uuid.UUID) (bool, error)
}
