package customer

import (
	"time"

	domainCustomer "cargo-dispatch/internal/domain/customer"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"required,max=30"`
	Address  string `json:"address" validate:"required,max=300"`
	Address2 string `json:"address2" validate:"max=300"`
	Address3 string `json:"address3" validate:"max=300"`
}

// UpdateCustomerRequest is a patch: nil fields are untouched. Setting an
// address to the empty string clears that slot.
type UpdateCustomerRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	Address2 *string `json:"address2" validate:"omitempty,max=300"`
	Address3 *string `json:"address3" validate:"omitempty,max=300"`
}

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Address2  string    `json:"address2,omitempty"`
	Address3  string    `json:"address3,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AddressListResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Addresses  []string  `json:"addresses"`
}

func ToCustomerResponse(c *domainCustomer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Address2:  c.Address2,
		Address3:  c.Address3,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
