package warehouse

import "errors"

var (
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrDuplicate         = errors.New("a warehouse with the same name and location already exists")
)
