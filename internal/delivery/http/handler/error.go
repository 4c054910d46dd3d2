package handler

import (
	"errors"
	"net/http"

	domainCustomer "cargo-dispatch/internal/domain/customer"
	domainDriver "cargo-dispatch/internal/domain/driver"
	domainProduct "cargo-dispatch/internal/domain/product"
	domainShipment "cargo-dispatch/internal/domain/shipment"
	domainWarehouse "cargo-dispatch/internal/domain/warehouse"
	appErrors "cargo-dispatch/pkg/errors"
	"cargo-dispatch/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps service errors onto HTTP statuses: missing resources
// to 404, business-rule conflicts to 409, everything invalid to 400 and
// the rest to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainShipment.ErrShipmentNotFound),
		errors.Is(err, domainProduct.ErrProductNotFound),
		errors.Is(err, domainDriver.ErrDriverNotFound),
		errors.Is(err, domainCustomer.ErrCustomerNotFound),
		errors.Is(err, domainWarehouse.ErrWarehouseNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())

	case errors.Is(err, appErrors.ErrInsufficientStock),
		errors.Is(err, appErrors.ErrDriverUnavailable),
		errors.Is(err, appErrors.ErrContention),
		errors.Is(err, domainShipment.ErrShipmentDelivered),
		errors.Is(err, domainProduct.ErrProductReferenced),
		errors.Is(err, domainProduct.ErrNegativeStock),
		errors.Is(err, domainWarehouse.ErrDuplicate),
		appErrors.IsTransitionError(err):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	case errors.Is(err, domainShipment.ErrNotShipmentDriver):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())

	case errors.Is(err, appErrors.ErrInvalidQuantity),
		errors.Is(err, appErrors.ErrInvalidAddress),
		errors.Is(err, appErrors.ErrInvalidInput),
		errors.Is(err, domainProduct.ErrProductInactive),
		errors.Is(err, domainShipment.ErrInvalidGPSAccuracy),
		errors.Is(err, domainShipment.ErrPartialCoordinates),
		errors.Is(err, domainShipment.ErrAssignedAtInFuture):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID parses the :id path parameter as a UUID, writing the error
// response itself on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ID in path")
		return uuid.Nil, false
	}
	return id, true
}

// contextUserID returns the authenticated caller's ID set by the auth
// middleware.
func contextUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}
