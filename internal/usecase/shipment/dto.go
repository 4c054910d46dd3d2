package shipment

import (
	"time"

	domainShipment "cargo-dispatch/internal/domain/shipment"
	appErrors "cargo-dispatch/pkg/errors"

	"github.com/google/uuid"
)

// CreateShipmentRequest is the manager-facing payload for creating a
// shipment. Quantity defaults to 1 when omitted.
type CreateShipmentRequest struct {
	WarehouseID     uuid.UUID  `json:"warehouse_id" validate:"required"`
	ProductID       *uuid.UUID `json:"product_id"`
	CustomerID      *uuid.UUID `json:"customer_id"`
	DriverID        *uuid.UUID `json:"driver_id"`
	CustomerAddress *string    `json:"customer_address"`
	Quantity        *int       `json:"quantity"`
	Notes           string     `json:"notes"`
	AssignedAt      *time.Time `json:"assigned_at"`
}

// UpdateShipmentRequest is a patch: nil fields are untouched. RemoveDriver
// unassigns the driver explicitly since a nil DriverID cannot distinguish
// "absent" from "clear".
type UpdateShipmentRequest struct {
	WarehouseID     *uuid.UUID `json:"warehouse_id"`
	ProductID       *uuid.UUID `json:"product_id"`
	CustomerID      *uuid.UUID `json:"customer_id"`
	DriverID        *uuid.UUID `json:"driver_id"`
	RemoveDriver    bool       `json:"remove_driver"`
	CustomerAddress *string    `json:"customer_address"`
	Quantity        *int       `json:"quantity"`
	Notes           *string    `json:"notes"`
	AssignedAt      *time.Time `json:"assigned_at"`
	Status          *string    `json:"status"`
}

// PostStatusUpdateRequest is the driver-facing payload for reporting
// progress on a shipment.
type PostStatusUpdateRequest struct {
	Status    string   `json:"status" validate:"required"`
	Note      string   `json:"note"`
	PhotoURL  *string  `json:"photo_url"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	AccuracyM *int     `json:"location_accuracy_m"`
}

// ShipmentFilterRequest narrows the manager shipment list. IDs arrive as
// strings from the query and are parsed when building the domain filter.
type ShipmentFilterRequest struct {
	Status       string     `form:"status"`
	DriverID     string     `form:"driver_id"`
	ProductID    string     `form:"product_id"`
	CustomerID   string     `form:"customer_id"`
	UpdatedSince *time.Time `form:"updated_since" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ShipmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	WarehouseID     uuid.UUID  `json:"warehouse_id"`
	ProductID       *uuid.UUID `json:"product_id,omitempty"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	DriverID        *uuid.UUID `json:"driver_id,omitempty"`
	Quantity        int        `json:"quantity"`
	CustomerAddress *string    `json:"customer_address,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	AssignedAt      time.Time  `json:"assigned_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type StatusUpdateResponse struct {
	ID         uuid.UUID `json:"id"`
	ShipmentID uuid.UUID `json:"shipment_id"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Note       string    `json:"note,omitempty"`
	PhotoURL   *string   `json:"photo_url,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	AccuracyM  *int      `json:"location_accuracy_m,omitempty"`
}

func ToShipmentResponse(s *domainShipment.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:              s.ID,
		WarehouseID:     s.WarehouseID,
		ProductID:       s.ProductID,
		CustomerID:      s.CustomerID,
		DriverID:        s.DriverID,
		Quantity:        s.Quantity,
		CustomerAddress: s.CustomerAddress,
		Notes:           s.Notes,
		Status:          string(s.Status),
		AssignedAt:      s.AssignedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToStatusUpdateResponse(su *domainShipment.StatusUpdate) *StatusUpdateResponse {
	return &StatusUpdateResponse{
		ID:         su.ID,
		ShipmentID: su.ShipmentID,
		Status:     string(su.Status),
		Timestamp:  su.Timestamp,
		Note:       su.Note,
		PhotoURL:   su.PhotoURL,
		Latitude:   su.Latitude,
		Longitude:  su.Longitude,
		AccuracyM:  su.AccuracyM,
	}
}

func toDomainFilter(req *ShipmentFilterRequest) (*domainShipment.Filter, error) {
	filter := &domainShipment.Filter{
		UpdatedSince: req.UpdatedSince,
		Limit:        domainShipment.ListLimit,
	}
	if req.Status != "" {
		s := domainShipment.Status(req.Status)
		filter.Status = &s
	}
	for _, f := range []struct {
		raw  string
		dest **uuid.UUID
	}{
		{req.DriverID, &filter.DriverID},
		{req.ProductID, &filter.ProductID},
		{req.CustomerID, &filter.CustomerID},
	} {
		if f.raw == "" {
			continue
		}
		id, err := uuid.Parse(f.raw)
		if err != nil {
			return nil, appErrors.ErrInvalidInput
		}
		*f.dest = &id
	}
	return filter, nil
}
