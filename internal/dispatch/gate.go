package dispatch

import (
	"context"
	"errors"

	domainDriver "cargo-dispatch/internal/domain/driver"
	appErrors "cargo-dispatch/pkg/errors"

	"github.com/google/uuid"
)

// Gate owns the driver busy/available flag. It has no memory of why it was
// called; the coordinator pairs MarkBusy/MarkAvailable with assignment
// changes.
type Gate struct {
	driverRepo domainDriver.Repository
}

// NewGate creates a driver availability gate over the driver repository.
func NewGate(driverRepo domainDriver.Repository) *Gate {
	return &Gate{driverRepo: driverRepo}
}

// MarkBusy flips an available driver to busy as one conditional update,
// failing with ErrDriverUnavailable when the driver is already busy on
// another shipment.
func (g *Gate) MarkBusy(ctx context.Context, driverID uuid.UUID) error {
	if err := g.driverRepo.SetBusyIfAvailable(ctx, driverID); err != nil {
		if errors.Is(err, domainDriver.ErrDriverUnavailable) {
			return appErrors.ErrDriverUnavailable
		}
		return err
	}
	return nil
}

// MarkAvailable sets the driver available. Idempotent: freeing an already
// available driver is a no-op.
func (g *Gate) MarkAvailable(ctx context.Context, driverID uuid.UUID) error {
	return g.driverRepo.SetAvailable(ctx, driverID)
}
