package driver

import (
	"context"

	domainDriver "cargo-dispatch/internal/domain/driver"
	domainShipment "cargo-dispatch/internal/domain/shipment"
	"cargo-dispatch/internal/logger"
	appErrors "cargo-dispatch/pkg/errors"
	"cargo-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns driver management and the dispatch board. The stored
// availability flag is a cache of "no active shipment holds this driver";
// the board recomputes it from shipments and repairs drift.
type Service struct {
	driverRepo   domainDriver.Repository
	shipmentRepo domainShipment.Repository
}

func NewService(driverRepo domainDriver.Repository, shipmentRepo domainShipment.Repository) *Service {
	return &Service{driverRepo: driverRepo, shipmentRepo: shipmentRepo}
}

func (s *Service) CreateDriver(ctx context.Context, req *CreateDriverRequest) (*DriverResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	d := &domainDriver.Driver{
		ID:       uuid.New(),
		Name:     utils.SanitizeText(req.Name),
		Phone:    utils.SanitizeText(req.Phone),
		IsActive: true,
	}
	if err := s.driverRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("Driver created",
		zap.String("driver_id", d.ID.String()),
		zap.String("name", d.Name),
	)
	return ToDriverResponse(d), nil
}

func (s *Service) GetDriver(ctx context.Context, driverID uuid.UUID) (*DriverResponse, error) {
	d, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return ToDriverResponse(d), nil
}

func (s *Service) ListDrivers(ctx context.Context) ([]DriverResponse, error) {
	drivers, err := s.driverRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		responses[i] = *ToDriverResponse(d)
	}
	return responses, nil
}

// Board builds the dispatch board. For each driver, availability is derived
// from active shipments; when the stored flag disagrees it is rewritten to
// the derived value.
func (s *Service) Board(ctx context.Context) ([]BoardEntry, error) {
	drivers, err := s.driverRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]BoardEntry, 0, len(drivers))
	for _, d := range drivers {
		active, err := s.shipmentRepo.ListActiveByDriver(ctx, d.ID)
		if err != nil {
			return nil, err
		}

		available := len(active) == 0
		if available != d.IsActive {
			logger.Warn("Driver availability flag out of sync, repairing",
				zap.String("driver_id", d.ID.String()),
				zap.Bool("stored", d.IsActive),
				zap.Bool("derived", available),
			)
			if available {
				err = s.driverRepo.SetAvailable(ctx, d.ID)
			} else {
				err = s.driverRepo.SetBusyIfAvailable(ctx, d.ID)
			}
			if err != nil {
				return nil, err
			}
		}

		entry := BoardEntry{
			ID:              d.ID,
			Name:            d.Name,
			Phone:           d.Phone,
			Available:       available,
			ActiveShipments: len(active),
		}
		if len(active) > 0 {
			entry.CurrentShipment = &active[0].ID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Service) UpdateDriver(ctx context.Context, driverID uuid.UUID, req *UpdateDriverRequest) (*DriverResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	d, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		d.Name = utils.SanitizeText(*req.Name)
	}
	if req.Phone != nil {
		d.Phone = utils.SanitizeText(*req.Phone)
	}

	if err := s.driverRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return ToDriverResponse(d), nil
}

// DeleteDriver removes a driver. Drivers bound to an active shipment
// cannot be deleted; unassign them first.
func (s *Service) DeleteDriver(ctx context.Context, driverID uuid.UUID) error {
	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return err
	}

	active, err := s.shipmentRepo.ListActiveByDriver(ctx, driverID)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return appErrors.ErrDriverUnavailable
	}

	if err := s.driverRepo.Delete(ctx, driverID); err != nil {
		return err
	}
	logger.Info("Driver deleted", zap.String("driver_id", driverID.String()))
	return nil
}
