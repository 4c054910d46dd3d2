package models

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel represents the database model for Shipments
type ShipmentModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`

	Quantity        int       `gorm:"type:integer;not null;default:1;check:quantity > 0"`
	CustomerAddress *string   `gorm:"type:text"`
	Notes           string    `gorm:"type:text"`
	Status          string    `gorm:"type:varchar(20);not null;default:'NEW';index"`
	AssignedAt      time.Time `gorm:"type:timestamptz;not null"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null;index"`

	// Relations
	Product   *ProductModel   `gorm:"foreignKey:ProductID"`
	Warehouse *WarehouseModel `gorm:"foreignKey:WarehouseID"`
	Customer  *CustomerModel  `gorm:"foreignKey:CustomerID"`
	Driver    *DriverModel    `gorm:"foreignKey:DriverID"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}

// StatusUpdateModel represents the database model for the append-only
// status update audit trail.
type StatusUpdateModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(20);not null"`
	Timestamp  time.Time `gorm:"type:timestamptz;not null;index"`

	Note     string  `gorm:"type:text"`
	PhotoURL *string `gorm:"type:text"`

	Latitude  *float64 `gorm:"type:decimal(9,6)"`
	Longitude *float64 `gorm:"type:decimal(9,6)"`
	AccuracyM *int     `gorm:"type:integer"`

	Shipment *ShipmentModel `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (StatusUpdateModel) TableName() string {
	return "status_updates"
}
