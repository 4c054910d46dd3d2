package driver

import (
	"time"

	"github.com/google/uuid"
)

// Driver represents a delivery driver. IsActive means available for
// assignment; false means busy on an active shipment. The flag is a derived
// fact the availability gate re-establishes on every assignment change.
type Driver struct {
	ID       uuid.UUID
	Name     string
	Phone    string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
