package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNoAddresses      = errors.New("customer has no saved addresses")
)
