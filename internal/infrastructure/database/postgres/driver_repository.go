package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cargo-dispatch/internal/domain/driver"
	"cargo-dispatch/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DriverRepository struct {
	db *DB
}

func NewDriverRepository(db *DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, d *driver.Driver) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()

	dbModel := toDriverModel(d)
	if err := r.db.conn(ctx).WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID uuid.UUID) (*driver.Driver, error) {
	var dbModel models.DriverModel
	err := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", driverID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, driver.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return toDriverEntity(&dbModel), nil
}

func (r *DriverRepository) List(ctx context.Context) ([]*driver.Driver, error) {
	var dbModels []models.DriverModel
	err := r.db.conn(ctx).WithContext(ctx).
		Order("name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}

	drivers := make([]*driver.Driver, len(dbModels))
	for i := range dbModels {
		drivers[i] = toDriverEntity(&dbModels[i])
	}
	return drivers, nil
}

func (r *DriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	d.UpdatedAt = time.Now()

	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.DriverModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"name":       d.Name,
			"phone":      d.Phone,
			"updated_at": d.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, driverID uuid.UUID) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", driverID).
		Delete(&models.DriverModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

// SetBusyIfAvailable flips is_active true -> false in one conditional
// UPDATE. Zero rows affected means a missing driver or one already busy;
// a follow-up lookup disambiguates.
func (r *DriverRepository) SetBusyIfAvailable(ctx context.Context, driverID uuid.UUID) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.DriverModel{}).
		Where("id = ? AND is_active = ?", driverID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to claim driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, driverID); err != nil {
			return err
		}
		return driver.ErrDriverUnavailable
	}
	return nil
}

func (r *DriverRepository) SetAvailable(ctx context.Context, driverID uuid.UUID) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.DriverModel{}).
		Where("id = ?", driverID).
		Updates(map[string]interface{}{
			"is_active":  true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to free driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

func toDriverModel(d *driver.Driver) *models.DriverModel {
	return &models.DriverModel{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     d.Phone,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDriverEntity(m *models.DriverModel) *driver.Driver {
	return &driver.Driver{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
