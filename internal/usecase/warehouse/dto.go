package warehouse

import (
	"time"

	domainWarehouse "cargo-dispatch/internal/domain/warehouse"

	"github.com/google/uuid"
)

type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Location string `json:"location" validate:"required,max=300"`
}

type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Location *string `json:"location" validate:"omitempty,max=300"`
}

type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToWarehouseResponse(w *domainWarehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
