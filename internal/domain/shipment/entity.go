package shipment

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the status of a shipment
type Status string

const (
	StatusNew       Status = "NEW"        // Created, not yet assigned
	StatusAssigned  Status = "ASSIGNED"   // Driver accepted the run
	StatusInTransit Status = "IN_TRANSIT" // Actively delivering
	StatusDelivered Status = "DELIVERED"  // Terminal, no escape
)

// DefaultQuantity is applied when a shipment is created without an
// explicit quantity.
const DefaultQuantity = 1

// ListLimit caps the manager shipment list.
const ListLimit = 500

// MaxGPSAccuracyMeters is the worst GPS accuracy accepted on a status
// update.
const MaxGPSAccuracyMeters = 30

// Shipment represents a customer-bound delivery drawn from warehouse stock.
type Shipment struct {
	ID uuid.UUID

	ProductID   *uuid.UUID
	WarehouseID uuid.UUID
	CustomerID  *uuid.UUID
	DriverID    *uuid.UUID

	Quantity        int
	CustomerAddress *string
	Notes           string
	Status          Status
	AssignedAt      time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasReservation reports whether quantity units of the product are held
// against stock: a reservation is active exactly while the shipment has
// both a driver and a product and is not yet delivered.
func (s *Shipment) HasReservation() bool {
	return s.DriverID != nil && s.ProductID != nil && s.Status != StatusDelivered
}

// IsActive reports whether the shipment still occupies its driver.
func (s *Shipment) IsActive() bool {
	return s.DriverID != nil && s.Status != StatusDelivered
}

// StatusUpdate is one append-only audit record; each accepted update moves
// the owning shipment's status through the state machine.
type StatusUpdate struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID
	Status     Status
	Timestamp  time.Time

	Note     string
	PhotoURL *string

	Latitude  *float64
	Longitude *float64
	AccuracyM *int
}

// Filter represents filtering options for listing shipments
type Filter struct {
	Status       *Status
	DriverID     *uuid.UUID
	ProductID    *uuid.UUID
	CustomerID   *uuid.UUID
	UpdatedSince *time.Time
	Limit        int
}
