package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cargo-dispatch/internal/domain/product"
	"cargo-dispatch/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	dbModel := toProductModel(p)
	if err := r.db.conn(ctx).WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	var dbModel models.ProductModel
	err := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", productID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return toProductEntity(&dbModel), nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	var dbModels []models.ProductModel
	err := r.db.conn(ctx).WithContext(ctx).
		Order("name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*product.Product, len(dbModels))
	for i := range dbModels {
		products[i] = toProductEntity(&dbModels[i])
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now()

	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":       p.Name,
			"price":      p.Price,
			"unit":       p.Unit,
			"updated_at": p.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Deactivate(ctx context.Context, productID uuid.UUID) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Where("id = ?", productID).
		Delete(&models.ProductModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// DecrementStock subtracts qty in one conditional UPDATE guarded by
// stock_qty >= qty. Zero rows affected means either a missing product or
// not enough stock; a follow-up lookup disambiguates.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND stock_qty >= ?", productID, qty).
		Updates(map[string]interface{}{
			"stock_qty":  gorm.Expr("stock_qty - ?", qty),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, productID); err != nil {
			return err
		}
		return product.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, productID uuid.UUID, qty int) error {
	result := r.db.conn(ctx).WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock_qty":  gorm.Expr("stock_qty + ?", qty),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to increment stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func toProductModel(p *product.Product) *models.ProductModel {
	return &models.ProductModel{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Unit:      p.Unit,
		StockQty:  p.StockQty,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductEntity(m *models.ProductModel) *product.Product {
	return &product.Product{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Unit:      m.Unit,
		StockQty:  m.StockQty,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
