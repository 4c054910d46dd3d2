package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerModel represents the database model for Customers
type CustomerModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(200);not null;index"`
	Phone    string    `gorm:"type:varchar(30);not null;index"`
	Address  string    `gorm:"type:text;not null"`
	Address2 string    `gorm:"type:text"`
	Address3 string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CustomerModel) TableName() string {
	return "customers"
}
