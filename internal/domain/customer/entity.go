package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a shipment recipient with up to three saved
// delivery addresses.
type Customer struct {
	ID       uuid.UUID
	Name     string
	Phone    string
	Address  string
	Address2 string
	Address3 string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Addresses returns the customer's non-empty saved addresses in order.
func (c *Customer) Addresses() []string {
	addresses := make([]string, 0, 3)
	for _, a := range []string{c.Address, c.Address2, c.Address3} {
		if a != "" {
			addresses = append(addresses, a)
		}
	}
	return addresses
}

// HasAddress reports whether addr is one of the customer's saved addresses.
func (c *Customer) HasAddress(addr string) bool {
	for _, a := range c.Addresses() {
		if a == addr {
			return true
		}
	}
	return false
}
