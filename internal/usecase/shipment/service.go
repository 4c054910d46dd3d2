package shipment

import (
	"context"
	"time"

	"cargo-dispatch/internal/dispatch"
	domainCustomer "cargo-dispatch/internal/domain/customer"
	domainDriver "cargo-dispatch/internal/domain/driver"
	domainProduct "cargo-dispatch/internal/domain/product"
	domainShipment "cargo-dispatch/internal/domain/shipment"
	"cargo-dispatch/internal/events"
	"cargo-dispatch/internal/logger"
	"cargo-dispatch/internal/shipment/lifecycle"
	"cargo-dispatch/internal/stock"
	appErrors "cargo-dispatch/pkg/errors"
	"cargo-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Atomic runs a composite mutation as one all-or-nothing unit. On any
// failure every partial mutation performed inside fn is rolled back before
// the error is returned.
type Atomic interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher receives status events after a transition commits.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, evt events.StatusChanged) error
}

// Service is the reservation coordinator: it owns the composite operations
// triggered by shipment create/update/delete and by status updates,
// consulting the state machine for transition legality, the availability
// gate for assignment legality, and the stock ledger for quantity legality.
type Service struct {
	shipmentRepo domainShipment.Repository
	customerRepo domainCustomer.Repository
	productRepo  domainProduct.Repository
	driverRepo   domainDriver.Repository
	ledger       *stock.Ledger
	gate         *dispatch.Gate
	atomic       Atomic
	publisher    EventPublisher
}

// NewService creates the reservation coordinator. publisher may be nil when
// event streaming is not configured.
func NewService(
	shipmentRepo domainShipment.Repository,
	customerRepo domainCustomer.Repository,
	productRepo domainProduct.Repository,
	driverRepo domainDriver.Repository,
	ledger *stock.Ledger,
	gate *dispatch.Gate,
	atomic Atomic,
	publisher EventPublisher,
) *Service {
	return &Service{
		shipmentRepo: shipmentRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		driverRepo:   driverRepo,
		ledger:       ledger,
		gate:         gate,
		atomic:       atomic,
		publisher:    publisher,
	}
}

// CreateShipment creates a shipment. When the shipment arrives with both a
// driver and a product, the driver is claimed first and the stock reserved
// second, all inside one transaction: a rejected assignment never partially
// reserves stock.
func (s *Service) CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	qty, err := resolveQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	assignedAt, err := resolveAssignedAt(req.AssignedAt)
	if err != nil {
		return nil, err
	}

	address, err := resolveCustomerAddress(ctx, s.customerRepo, req.CustomerID, req.CustomerAddress)
	if err != nil {
		return nil, err
	}

	if req.ProductID != nil {
		p, err := s.productRepo.GetByID(ctx, *req.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.IsActive {
			return nil, domainProduct.ErrProductInactive
		}
	}
	if req.DriverID != nil {
		if _, err := s.driverRepo.GetByID(ctx, *req.DriverID); err != nil {
			return nil, err
		}
	}

	sh := &domainShipment.Shipment{
		ProductID:       req.ProductID,
		WarehouseID:     req.WarehouseID,
		CustomerID:      req.CustomerID,
		DriverID:        req.DriverID,
		Quantity:        qty,
		CustomerAddress: address,
		Notes:           utils.SanitizeText(req.Notes),
		Status:          domainShipment.StatusNew,
		AssignedAt:      assignedAt,
	}

	err = s.atomic.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.shipmentRepo.Create(ctx, sh); err != nil {
			return err
		}
		// Gate before ledger: a busy driver must reject the whole
		// operation before any stock is touched.
		if sh.DriverID != nil {
			if err := s.gate.MarkBusy(ctx, *sh.DriverID); err != nil {
				return err
			}
		}
		if sh.DriverID != nil && sh.ProductID != nil {
			if err := s.ledger.Reserve(ctx, *sh.ProductID, sh.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Shipment created",
		zap.String("shipment_id", sh.ID.String()),
		zap.Int("quantity", sh.Quantity),
		zap.Bool("has_driver", sh.DriverID != nil),
		zap.String("event", "shipment_created"),
	)

	return ToShipmentResponse(sh), nil
}

// UpdateShipment applies a patch, computing the delta between old and new
// state along the quantity, product, driver and status axes and committing
// all resulting ledger/gate/status mutations as one unit.
func (s *Service) UpdateShipment(ctx context.Context, shipmentID uuid.UUID, req *UpdateShipmentRequest) (*ShipmentResponse, error) {
	var updated *domainShipment.Shipment

	err := s.atomic.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.shipmentRepo.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}

		// DELIVERED is terminal: nothing affecting stock, driver or
		// status may change afterwards.
		if existing.Status == domainShipment.StatusDelivered {
			return domainShipment.ErrShipmentDelivered
		}

		next := *existing

		if req.WarehouseID != nil {
			next.WarehouseID = *req.WarehouseID
		}
		if req.Notes != nil {
			next.Notes = utils.SanitizeText(*req.Notes)
		}
		if req.AssignedAt != nil {
			assignedAt, err := resolveAssignedAt(req.AssignedAt)
			if err != nil {
				return err
			}
			next.AssignedAt = assignedAt
		}
		if req.Quantity != nil {
			qty, err := resolveQuantity(req.Quantity)
			if err != nil {
				return err
			}
			next.Quantity = qty
		}
		if req.ProductID != nil {
			p, err := s.productRepo.GetByID(ctx, *req.ProductID)
			if err != nil {
				return err
			}
			if !p.IsActive {
				return domainProduct.ErrProductInactive
			}
			next.ProductID = req.ProductID
		}
		switch {
		case req.RemoveDriver:
			next.DriverID = nil
		case req.DriverID != nil:
			if _, err := s.driverRepo.GetByID(ctx, *req.DriverID); err != nil {
				return err
			}
			next.DriverID = req.DriverID
		}
		if req.CustomerID != nil || req.CustomerAddress != nil {
			customerID := existing.CustomerID
			if req.CustomerID != nil {
				customerID = req.CustomerID
			}
			addr := existing.CustomerAddress
			if req.CustomerAddress != nil {
				addr = req.CustomerAddress
			}
			resolved, err := resolveCustomerAddress(ctx, s.customerRepo, customerID, addr)
			if err != nil {
				return err
			}
			next.CustomerID = customerID
			next.CustomerAddress = resolved
		}

		if req.Status != nil {
			requested := domainShipment.Status(*req.Status)
			if err := lifecycle.ValidateTransition(existing.Status, requested); err != nil {
				return err
			}
			// A DELIVERED transition finalizes the shipment; mixing it
			// with stock or driver changes in one patch is rejected so
			// the finalized state is unambiguous.
			if requested == domainShipment.StatusDelivered &&
				(req.Quantity != nil || req.ProductID != nil || req.DriverID != nil || req.RemoveDriver) {
				return appErrors.NewAppError("INVALID_PATCH", "A delivery transition cannot be combined with stock or driver changes", nil)
			}
			next.Status = requested
		}

		if err := s.applyAssignmentDelta(ctx, existing, &next); err != nil {
			return err
		}

		if err := s.shipmentRepo.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		s.publishStatusChanged(ctx, updated, *req.Status)
	}

	logger.Info("Shipment updated",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("status", string(updated.Status)),
		zap.String("event", "shipment_updated"),
	)

	return ToShipmentResponse(updated), nil
}

// applyAssignmentDelta reconciles the gate and the ledger with the change
// from old to next. The gate is consulted before any ledger mutation.
func (s *Service) applyAssignmentDelta(ctx context.Context, old, next *domainShipment.Shipment) error {
	oldDriver := old.DriverID
	newDriver := next.DriverID
	driverChanged := !uuidPtrEqual(oldDriver, newDriver)

	if driverChanged && newDriver != nil {
		if err := s.gate.MarkBusy(ctx, *newDriver); err != nil {
			return err
		}
	}
	if driverChanged && oldDriver != nil {
		if err := s.gate.MarkAvailable(ctx, *oldDriver); err != nil {
			return err
		}
	}
	// Delivery finalization: the reservation is consumed, the driver freed.
	if next.Status == domainShipment.StatusDelivered {
		if newDriver != nil {
			if err := s.gate.MarkAvailable(ctx, *newDriver); err != nil {
				return err
			}
		}
		return nil
	}

	oldHeld := old.HasReservation()
	newHeld := next.DriverID != nil && next.ProductID != nil

	switch {
	case !oldHeld && newHeld:
		return s.ledger.Reserve(ctx, *next.ProductID, next.Quantity)

	case oldHeld && !newHeld:
		return s.ledger.Release(ctx, *old.ProductID, old.Quantity)

	case oldHeld && newHeld:
		if *old.ProductID != *next.ProductID {
			// Release then re-reserve. The surrounding transaction
			// restores the release if the reserve fails: net zero.
			if err := s.ledger.Release(ctx, *old.ProductID, old.Quantity); err != nil {
				return err
			}
			return s.ledger.Reserve(ctx, *next.ProductID, next.Quantity)
		}
		if delta := next.Quantity - old.Quantity; delta > 0 {
			return s.ledger.Reserve(ctx, *next.ProductID, delta)
		} else if delta < 0 {
			return s.ledger.Release(ctx, *next.ProductID, -delta)
		}
	}
	return nil
}

// DeleteShipment removes a shipment, returning any held stock and freeing
// the driver when the shipment was still active.
func (s *Service) DeleteShipment(ctx context.Context, shipmentID uuid.UUID) error {
	err := s.atomic.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.shipmentRepo.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}

		if existing.HasReservation() {
			if err := s.ledger.Release(ctx, *existing.ProductID, existing.Quantity); err != nil {
				return err
			}
		}
		if existing.IsActive() {
			if err := s.gate.MarkAvailable(ctx, *existing.DriverID); err != nil {
				return err
			}
		}

		return s.shipmentRepo.Delete(ctx, shipmentID)
	})
	if err != nil {
		return err
	}

	logger.Info("Shipment deleted",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("event", "shipment_deleted"),
	)
	return nil
}

// PostStatusUpdate appends a driver-reported status update and advances the
// owning shipment through the state machine in the same transaction. Only
// the shipment's own driver may post. A DELIVERED update finalizes the
// shipment and frees the driver; stock stays consumed.
func (s *Service) PostStatusUpdate(ctx context.Context, driverID, shipmentID uuid.UUID, req *PostStatusUpdateRequest) (*StatusUpdateResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	status, err := validateStatusUpdate(req)
	if err != nil {
		return nil, err
	}

	var (
		su   *domainShipment.StatusUpdate
		from domainShipment.Status
	)

	err = s.atomic.RunInTx(ctx, func(ctx context.Context) error {
		sh, err := s.shipmentRepo.GetByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		if sh.DriverID == nil || *sh.DriverID != driverID {
			return domainShipment.ErrNotShipmentDriver
		}

		if err := lifecycle.ValidateTransition(sh.Status, status); err != nil {
			return err
		}
		from = sh.Status

		su = &domainShipment.StatusUpdate{
			ShipmentID: shipmentID,
			Status:     status,
			Timestamp:  time.Now(),
			Note:       utils.SanitizeText(req.Note),
			PhotoURL:   req.PhotoURL,
			Latitude:   req.Latitude,
			Longitude:  req.Longitude,
			AccuracyM:  req.AccuracyM,
		}
		if err := s.shipmentRepo.AppendStatusUpdate(ctx, su); err != nil {
			return err
		}
		if err := s.shipmentRepo.UpdateStatus(ctx, shipmentID, status); err != nil {
			return err
		}

		if status == domainShipment.StatusDelivered {
			if err := s.gate.MarkAvailable(ctx, driverID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusChangedFrom(ctx, shipmentID, driverID, from, status)

	logger.Info("Status update posted",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("driver_id", driverID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
		zap.String("event", "status_update_posted"),
	)

	return ToStatusUpdateResponse(su), nil
}

func (s *Service) GetShipment(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	sh, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponse(sh), nil
}

// ListShipments returns the manager view, newest first, capped at the list
// limit. updated_since narrows to recently touched shipments.
func (s *Service) ListShipments(ctx context.Context, req *ShipmentFilterRequest) ([]ShipmentResponse, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		return nil, err
	}

	shipments, err := s.shipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ShipmentResponse, len(shipments))
	for i, sh := range shipments {
		responses[i] = *ToShipmentResponse(sh)
	}
	return responses, nil
}

// ListDriverShipments returns the shipments assigned to the calling driver.
func (s *Service) ListDriverShipments(ctx context.Context, driverID uuid.UUID) ([]ShipmentResponse, error) {
	shipments, err := s.shipmentRepo.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	responses := make([]ShipmentResponse, len(shipments))
	for i, sh := range shipments {
		responses[i] = *ToShipmentResponse(sh)
	}
	return responses, nil
}

// ListStatusUpdates returns the audit trail for a shipment, newest first.
func (s *Service) ListStatusUpdates(ctx context.Context, shipmentID uuid.UUID) ([]StatusUpdateResponse, error) {
	if _, err := s.shipmentRepo.GetByID(ctx, shipmentID); err != nil {
		return nil, err
	}
	updates, err := s.shipmentRepo.ListStatusUpdates(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]StatusUpdateResponse, len(updates))
	for i, su := range updates {
		responses[i] = *ToStatusUpdateResponse(su)
	}
	return responses, nil
}

func (s *Service) publishStatusChanged(ctx context.Context, sh *domainShipment.Shipment, to string) {
	if s.publisher == nil {
		return
	}
	evt := events.StatusChanged{
		ShipmentID: sh.ID.String(),
		To:         to,
		Timestamp:  time.Now(),
	}
	if sh.DriverID != nil {
		evt.DriverID = sh.DriverID.String()
	}
	_ = s.publisher.PublishStatusChanged(ctx, evt)
}

func (s *Service) publishStatusChangedFrom(ctx context.Context, shipmentID, driverID uuid.UUID, from, to domainShipment.Status) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.PublishStatusChanged(ctx, events.StatusChanged{
		ShipmentID: shipmentID.String(),
		DriverID:   driverID.String(),
		From:       string(from),
		To:         string(to),
		Timestamp:  time.Now(),
	})
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
