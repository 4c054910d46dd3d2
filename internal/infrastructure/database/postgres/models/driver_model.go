package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverModel represents the database model for Drivers. IsActive is the
// availability flag the gate mutates with conditional updates.
type DriverModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Phone    string    `gorm:"type:varchar(30);not null"`
	IsActive bool      `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (DriverModel) TableName() string {
	return "drivers"
}
