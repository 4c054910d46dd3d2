package driver

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for driver persistence.
type Repository interface {
	Create(ctx context.Context, d *Driver) error
	GetByID(ctx context.Context, driverID uuid.UUID) (*Driver, error)
	List(ctx context.Context) ([]*Driver, error)
	Update(ctx context.Context, d *Driver) error
	Delete(ctx context.Context, driverID uuid.UUID) error

	// SetBusyIfAvailable flips is_active true -> false as one conditional
	// update, returning ErrDriverUnavailable when the driver is already
	// busy.
	SetBusyIfAvailable(ctx context.Context, driverID uuid.UUID) error
	// SetAvailable sets is_active = true. Idempotent.
	SetAvailable(ctx context.Context, driverID uuid.UUID) error
}
