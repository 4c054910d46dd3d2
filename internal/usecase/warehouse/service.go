package warehouse

import (
	"context"

	domainWarehouse "cargo-dispatch/internal/domain/warehouse"
	"cargo-dispatch/internal/logger"
	appErrors "cargo-dispatch/pkg/errors"
	"cargo-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns warehouse management. Name plus location must be unique.
type Service struct {
	warehouseRepo domainWarehouse.Repository
}

func NewService(warehouseRepo domainWarehouse.Repository) *Service {
	return &Service{warehouseRepo: warehouseRepo}
}

func (s *Service) CreateWarehouse(ctx context.Context, req *CreateWarehouseRequest) (*WarehouseResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	name := utils.SanitizeText(req.Name)
	location := utils.SanitizeText(req.Location)

	exists, err := s.warehouseRepo.ExistsByNameLocation(ctx, name, location, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainWarehouse.ErrDuplicate
	}

	w := &domainWarehouse.Warehouse{
		ID:       uuid.New(),
		Name:     name,
		Location: location,
	}
	if err := s.warehouseRepo.Create(ctx, w); err != nil {
		return nil, err
	}

	logger.Info("Warehouse created",
		zap.String("warehouse_id", w.ID.String()),
		zap.String("name", w.Name),
	)
	return ToWarehouseResponse(w), nil
}

func (s *Service) GetWarehouse(ctx context.Context, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return ToWarehouseResponse(w), nil
}

func (s *Service) ListWarehouses(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]WarehouseResponse, len(warehouses))
	for i, w := range warehouses {
		responses[i] = *ToWarehouseResponse(w)
	}
	return responses, nil
}

func (s *Service) UpdateWarehouse(ctx context.Context, warehouseID uuid.UUID, req *UpdateWarehouseRequest) (*WarehouseResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	w, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		w.Name = utils.SanitizeText(*req.Name)
	}
	if req.Location != nil {
		w.Location = utils.SanitizeText(*req.Location)
	}

	exists, err := s.warehouseRepo.ExistsByNameLocation(ctx, w.Name, w.Location, &warehouseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainWarehouse.ErrDuplicate
	}

	if err := s.warehouseRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return ToWarehouseResponse(w), nil
}

func (s *Service) DeleteWarehouse(ctx context.Context, warehouseID uuid.UUID) error {
	if _, err := s.warehouseRepo.GetByID(ctx, warehouseID); err != nil {
		return err
	}
	if err := s.warehouseRepo.Delete(ctx, warehouseID); err != nil {
		return err
	}
	logger.Info("Warehouse deleted", zap.String("warehouse_id", warehouseID.String()))
	return nil
}
