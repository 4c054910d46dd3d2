package models

import (
	"time"

	"github.com/google/uuid"
)

// WarehouseModel represents the database model for Warehouses
type WarehouseModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_warehouses_name_location"`
	Location string    `gorm:"type:varchar(300);not null;uniqueIndex:idx_warehouses_name_location"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (WarehouseModel) TableName() string {
	return "warehouses"
}
