package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cargo-dispatch/internal/domain/shipment"
	"cargo-dispatch/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	if s.Status == "" {
		s.Status = shipment.StatusNew
	}

	dbModel := toShipmentModel(s)
	if err := r.db.conn(ctx).WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	s.CreatedAt = dbModel.CreatedAt
	s.UpdatedAt = dbModel.UpdatedAt
	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", shipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	s.UpdatedAt = time.Now()

	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"product_id":       s.ProductID,
			"warehouse_id":     s.WarehouseID,
			"customer_id":      s.CustomerID,
			"driver_id":        s.DriverID,
			"quantity":         s.Quantity,
			"customer_address": s.CustomerAddress,
			"notes":            s.Notes,
			"status":           string(s.Status),
			"assigned_at":      s.AssignedAt,
			"updated_at":       s.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}
	return nil
}

func (r *ShipmentRepository) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	// The audit trail goes with the shipment.
	if err := r.db.conn(ctx).WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Delete(&models.StatusUpdateModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete status updates: %w", err)
	}

	result := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", shipmentID).
		Delete(&models.ShipmentModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}
	return nil
}

func (r *ShipmentRepository) UpdateStatus(ctx context.Context, shipmentID uuid.UUID, status shipment.Status) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", shipmentID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update shipment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}
	return nil
}

func (r *ShipmentRepository) List(ctx context.Context, filter *shipment.Filter) ([]*shipment.Shipment, error) {
	query := r.db.conn(ctx).WithContext(ctx).Model(&models.ShipmentModel{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", string(*filter.Status))
		}
		if filter.DriverID != nil {
			query = query.Where("driver_id = ?", *filter.DriverID)
		}
		if filter.ProductID != nil {
			query = query.Where("product_id = ?", *filter.ProductID)
		}
		if filter.CustomerID != nil {
			query = query.Where("customer_id = ?", *filter.CustomerID)
		}
		if filter.UpdatedSince != nil {
			query = query.Where("updated_at >= ?", *filter.UpdatedSince)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
	}

	var dbModels []models.ShipmentModel
	if err := query.Order("updated_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, len(dbModels))
	for i := range dbModels {
		shipments[i] = toShipmentEntity(&dbModels[i])
	}
	return shipments, nil
}

func (r *ShipmentRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*shipment.Shipment, error) {
	var dbModels []models.ShipmentModel
	err := r.db.conn(ctx).WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("updated_at DESC").
		Limit(shipment.ListLimit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list driver shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, len(dbModels))
	for i := range dbModels {
		shipments[i] = toShipmentEntity(&dbModels[i])
	}
	return shipments, nil
}

func (r *ShipmentRepository) ListActiveByDriver(ctx context.Context, driverID uuid.UUID) ([]*shipment.Shipment, error) {
	var dbModels []models.ShipmentModel
	err := r.db.conn(ctx).WithContext(ctx).
		Where("driver_id = ? AND status <> ?", driverID, string(shipment.StatusDelivered)).
		Order("updated_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active driver shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, len(dbModels))
	for i := range dbModels {
		shipments[i] = toShipmentEntity(&dbModels[i])
	}
	return shipments, nil
}

func (r *ShipmentRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.conn(ctx).WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count shipments by product: %w", err)
	}
	return count, nil
}

func (r *ShipmentRepository) AppendStatusUpdate(ctx context.Context, su *shipment.StatusUpdate) error {
	if su.ID == uuid.Nil {
		su.ID = uuid.New()
	}

	dbModel := toStatusUpdateModel(su)
	if err := r.db.conn(ctx).WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to append status update: %w", err)
	}
	return nil
}

func (r *ShipmentRepository) ListStatusUpdates(ctx context.Context, shipmentID uuid.UUID) ([]*shipment.StatusUpdate, error) {
	var dbModels []models.StatusUpdateModel
	err := r.db.conn(ctx).WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("timestamp DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list status updates: %w", err)
	}

	updates := make([]*shipment.StatusUpdate, len(dbModels))
	for i := range dbModels {
		updates[i] = toStatusUpdateEntity(&dbModels[i])
	}
	return updates, nil
}

func toShipmentModel(s *shipment.Shipment) *models.ShipmentModel {
	return &models.ShipmentModel{
		ID:              s.ID,
		ProductID:       s.ProductID,
		WarehouseID:     s.WarehouseID,
		CustomerID:      s.CustomerID,
		DriverID:        s.DriverID,
		Quantity:        s.Quantity,
		CustomerAddress: s.CustomerAddress,
		Notes:           s.Notes,
		Status:          string(s.Status),
		AssignedAt:      s.AssignedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toShipmentEntity(m *models.ShipmentModel) *shipment.Shipment {
	return &shipment.Shipment{
		ID:              m.ID,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		CustomerID:      m.CustomerID,
		DriverID:        m.DriverID,
		Quantity:        m.Quantity,
		CustomerAddress: m.CustomerAddress,
		Notes:           m.Notes,
		Status:          shipment.Status(m.Status),
		AssignedAt:      m.AssignedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toStatusUpdateModel(su *shipment.StatusUpdate) *models.StatusUpdateModel {
	return &models.StatusUpdateModel{
		ID:         su.ID,
		ShipmentID: su.ShipmentID,
		Status:     string(su.Status),
		Timestamp:  su.Timestamp,
		Note:       su.Note,
		PhotoURL:   su.PhotoURL,
		Latitude:   su.Latitude,
		Longitude:  su.Longitude,
		AccuracyM:  su.AccuracyM,
	}
}

func toStatusUpdateEntity(m *models.StatusUpdateModel) *shipment.StatusUpdate {
	return &shipment.StatusUpdate{
		ID:         m.ID,
		ShipmentID: m.ShipmentID,
		Status:     shipment.Status(m.Status),
		Timestamp:  m.Timestamp,
		Note:       m.Note,
		PhotoURL:   m.PhotoURL,
		Latitude:   m.Latitude,
		Longitude:  m.Longitude,
		AccuracyM:  m.AccuracyM,
	}
}
