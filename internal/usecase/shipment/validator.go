package shipment

import (
	"context"
	"time"

	domainCustomer "cargo-dispatch/internal/domain/customer"
	domainShipment "cargo-dispatch/internal/domain/shipment"
	"cargo-dispatch/internal/shipment/lifecycle"
	appErrors "cargo-dispatch/pkg/errors"
	"cargo-dispatch/pkg/utils"

	"github.com/google/uuid"
)

// resolveQuantity applies the default and rejects non-positive values
// before anything reaches the ledger.
func resolveQuantity(requested *int) (int, error) {
	if requested == nil {
		return domainShipment.DefaultQuantity, nil
	}
	if *requested <= 0 {
		return 0, appErrors.ErrInvalidQuantity
	}
	return *requested, nil
}

// resolveAssignedAt defaults to now and rejects future timestamps.
func resolveAssignedAt(requested *time.Time) (time.Time, error) {
	if requested == nil {
		return time.Now(), nil
	}
	if requested.After(time.Now()) {
		return time.Time{}, domainShipment.ErrAssignedAtInFuture
	}
	return *requested, nil
}

// resolveCustomerAddress checks address membership against the customer's
// saved addresses. A shipment without a customer carries no address; a
// shipment with a customer must name one of the saved addresses.
func resolveCustomerAddress(ctx context.Context, repo domainCustomer.Repository, customerID *uuid.UUID, address *string) (*string, error) {
	if customerID == nil {
		return nil, nil
	}

	c, err := repo.GetByID(ctx, *customerID)
	if err != nil {
		return nil, err
	}

	allowed := c.Addresses()
	if len(allowed) == 0 {
		return nil, appErrors.NewAppError("INVALID_ADDRESS", "The customer has no saved addresses to use", appErrors.ErrInvalidAddress)
	}

	if address == nil {
		return nil, appErrors.NewAppError("INVALID_ADDRESS", "A customer has been selected; choose one of the customer's saved addresses", appErrors.ErrInvalidAddress)
	}

	cleaned := utils.SanitizeText(*address)
	if !c.HasAddress(cleaned) {
		return nil, appErrors.NewAppError("INVALID_ADDRESS", "The address must be one of the customer's saved addresses", appErrors.ErrInvalidAddress)
	}

	return &cleaned, nil
}

// validateStatusUpdate checks the driver-reported payload: a known status,
// GPS accuracy within bounds, and paired coordinates.
func validateStatusUpdate(req *PostStatusUpdateRequest) (domainShipment.Status, error) {
	status := domainShipment.Status(req.Status)
	if !lifecycle.IsValidStatus(status) {
		return "", appErrors.NewAppError("INVALID_STATUS", "Unknown shipment status: "+req.Status, nil)
	}

	if req.AccuracyM != nil && *req.AccuracyM > domainShipment.MaxGPSAccuracyMeters {
		return "", domainShipment.ErrInvalidGPSAccuracy
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return "", domainShipment.ErrPartialCoordinates
	}

	return status, nil
}
