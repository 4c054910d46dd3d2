package shipment

import "errors"

var (
	ErrShipmentNotFound     = errors.New("shipment not found")
	ErrStatusUpdateNotFound = errors.New("status update not found")
	ErrShipmentDelivered    = errors.New("shipment is already delivered")
	ErrNotShipmentDriver    = errors.New("shipment belongs to another driver")
	ErrInvalidGPSAccuracy   = errors.New("gps accuracy exceeds the allowed maximum")
	ErrPartialCoordinates   = errors.New("latitude and longitude must be provided together")
	ErrAssignedAtInFuture   = errors.New("assigned_at must not be in the future")
)
