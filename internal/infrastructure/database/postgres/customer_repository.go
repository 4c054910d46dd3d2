package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cargo-dispatch/internal/domain/customer"
	"cargo-dispatch/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	dbModel := toCustomerModel(c)
	if err := r.db.conn(ctx).WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID uuid.UUID) (*customer.Customer, error) {
	var dbModel models.CustomerModel
	err := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", customerID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, customer.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return toCustomerEntity(&dbModel), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	var dbModels []models.CustomerModel
	err := r.db.conn(ctx).WithContext(ctx).
		Order("name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*customer.Customer, len(dbModels))
	for i := range dbModels {
		customers[i] = toCustomerEntity(&dbModels[i])
	}
	return customers, nil
}

func (r *CustomerRepository) Search(ctx context.Context, query string, limit int) ([]*customer.Customer, error) {
	var dbModels []models.CustomerModel
	pattern := "%" + query + "%"
	err := r.db.conn(ctx).WithContext(ctx).
		Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	customers := make([]*customer.Customer, len(dbModels))
	for i := range dbModels {
		customers[i] = toCustomerEntity(&dbModels[i])
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now()

	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":       c.Name,
			"phone":      c.Phone,
			"address":    c.Address,
			"address2":   c.Address2,
			"address3":   c.Address3,
			"updated_at": c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", customerID).
		Delete(&models.CustomerModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func toCustomerModel(c *customer.Customer) *models.CustomerModel {
	return &models.CustomerModel{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Address2:  c.Address2,
		Address3:  c.Address3,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCustomerEntity(m *models.CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Address:   m.Address,
		Address2:  m.Address2,
		Address3:  m.Address3,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
