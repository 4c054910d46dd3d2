package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cargo-dispatch/internal/domain/warehouse"
	"cargo-dispatch/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarehouseRepository struct {
	db *DB
}

func NewWarehouseRepository(db *DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

func (r *WarehouseRepository) Create(ctx context.Context, w *warehouse.Warehouse) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	w.CreatedAt = time.Now()
	w.UpdatedAt = time.Now()

	dbModel := toWarehouseModel(w)
	if err := r.db.conn(ctx).WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepository) GetByID(ctx context.Context, warehouseID uuid.UUID) (*warehouse.Warehouse, error) {
	var dbModel models.WarehouseModel
	err := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", warehouseID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, warehouse.ErrWarehouseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}

	return toWarehouseEntity(&dbModel), nil
}

func (r *WarehouseRepository) List(ctx context.Context) ([]*warehouse.Warehouse, error) {
	var dbModels []models.WarehouseModel
	err := r.db.conn(ctx).WithContext(ctx).
		Order("name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}

	warehouses := make([]*warehouse.Warehouse, len(dbModels))
	for i := range dbModels {
		warehouses[i] = toWarehouseEntity(&dbModels[i])
	}
	return warehouses, nil
}

func (r *WarehouseRepository) Update(ctx context.Context, w *warehouse.Warehouse) error {
	w.UpdatedAt = time.Now()

	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.WarehouseModel{}).
		Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"name":       w.Name,
			"location":   w.Location,
			"updated_at": w.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update warehouse: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return warehouse.ErrWarehouseNotFound
	}
	return nil
}

func (r *WarehouseRepository) Delete(ctx context.Context, warehouseID uuid.UUID) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", warehouseID).
		Delete(&models.WarehouseModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete warehouse: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return warehouse.ErrWarehouseNotFound
	}
	return nil
}

func (r *WarehouseRepository) ExistsByNameLocation(ctx context.Context, name, location string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.conn(ctx).WithContext(ctx).
		Model(&models.WarehouseModel{}).
		Where("name = ? AND location = ?", name, location)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check warehouse uniqueness: %w", err)
	}
	return count > 0, nil
}

func toWarehouseModel(w *warehouse.Warehouse) *models.WarehouseModel {
	return &models.WarehouseModel{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toWarehouseEntity(m *models.WarehouseModel) *warehouse.Warehouse {
	return &warehouse.Warehouse{
		ID:        m.ID,
		Name:      m.Name,
		Location:  m.Location,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
