package shipment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for shipment persistence.
type Repository interface {
	Create(ctx context.Context, s *Shipment) error
	GetByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)
	Update(ctx context.Context, s *Shipment) error
	Delete(ctx context.Context, shipmentID uuid.UUID) error
	UpdateStatus(ctx context.Context, shipmentID uuid.UUID, status Status) error
	List(ctx context.Context, filter *Filter) ([]*Shipment, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*Shipment, error)

	// ListActiveByDriver returns the driver's shipments that still hold the
	// driver (driver bound, not delivered). Used to recompute availability.
	ListActiveByDriver(ctx context.Context, driverID uuid.UUID) ([]*Shipment, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	AppendStatusUpdate(ctx context.Context, su *StatusUpdate) error
	ListStatusUpdates(ctx context.Context, shipmentID uuid.UUID) ([]*StatusUpdate, error)
}
