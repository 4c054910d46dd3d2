package driver

import (
	"time"

	domainDriver "cargo-dispatch/internal/domain/driver"

	"github.com/google/uuid"
)

type CreateDriverRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"required,max=30"`
}

type UpdateDriverRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=200"`
	Phone *string `json:"phone" validate:"omitempty,max=30"`
}

type DriverResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardEntry is one row of the dispatch board: the driver plus the
// availability recomputed from active shipments rather than read off the
// stored flag.
type BoardEntry struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Available       bool       `json:"available"`
	ActiveShipments int        `json:"active_shipments"`
	CurrentShipment *uuid.UUID `json:"current_shipment,omitempty"`
}

func ToDriverResponse(d *domainDriver.Driver) *DriverResponse {
	return &DriverResponse{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     d.Phone,
		Available: d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
