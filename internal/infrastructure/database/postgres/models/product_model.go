package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel represents the database model for Products
type ProductModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(200);not null;index"`
	Price    float64   `gorm:"type:decimal(12,2);not null;default:0"`
	Unit     string    `gorm:"type:varchar(50)"`
	StockQty int       `gorm:"type:integer;not null;default:0;check:stock_qty >= 0"`
	IsActive bool      `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ProductModel) TableName() string {
	return "products"
}
