package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for customer persistence.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, customerID uuid.UUID) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	Search(ctx context.Context, query string, limit int) ([]*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, customerID uuid.UUID) error
}
