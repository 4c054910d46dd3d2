package warehouse

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse represents a stocking location shipments originate from.
type Warehouse struct {
	ID       uuid.UUID
	Name     string
	Location string

	CreatedAt time.Time
	UpdatedAt time.Time
}
