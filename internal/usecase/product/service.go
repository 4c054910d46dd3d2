package product

import (
	"context"

	domainProduct "cargo-dispatch/internal/domain/product"
	domainShipment "cargo-dispatch/internal/domain/shipment"
	"cargo-dispatch/internal/logger"
	"cargo-dispatch/internal/stock"
	appErrors "cargo-dispatch/pkg/errors"
	"cargo-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns product catalog management. Stock mutations go through the
// ledger; the catalog operations here never touch stock_qty directly.
type Service struct {
	productRepo  domainProduct.Repository
	shipmentRepo domainShipment.Repository
	ledger       *stock.Ledger
}

func NewService(productRepo domainProduct.Repository, shipmentRepo domainShipment.Repository, ledger *stock.Ledger) *Service {
	return &Service{
		productRepo:  productRepo,
		shipmentRepo: shipmentRepo,
		ledger:       ledger,
	}
}

func (s *Service) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	p := &domainProduct.Product{
		ID:       uuid.New(),
		Name:     utils.SanitizeText(req.Name),
		Price:    req.Price,
		Unit:     utils.SanitizeText(req.Unit),
		StockQty: req.StockQty,
		IsActive: true,
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Product created",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.Int("stock_qty", p.StockQty),
	)
	return ToProductResponse(p), nil
}

func (s *Service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

func (s *Service) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = *ToProductResponse(p)
	}
	return responses, nil
}

func (s *Service) UpdateProduct(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = utils.SanitizeText(*req.Name)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Unit != nil {
		p.Unit = utils.SanitizeText(*req.Unit)
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// AdjustStock applies a signed correction outside the reserve/release flow.
func (s *Service) AdjustStock(ctx context.Context, productID uuid.UUID, req *AdjustStockRequest) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.ledger.Adjust(ctx, productID, req.Delta); err != nil {
		return nil, err
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	logger.Info("Stock adjusted",
		zap.String("product_id", productID.String()),
		zap.Int("delta", req.Delta),
		zap.Int("stock_qty", p.StockQty),
	)
	return ToProductResponse(p), nil
}

// DeactivateProduct hides the product from new shipments without touching
// existing ones; their reservations stay valid until released.
func (s *Service) DeactivateProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Deactivate(ctx, productID)
}

// DeleteProduct removes a product. Products still referenced by shipments
// cannot be deleted; deactivate instead.
func (s *Service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}

	count, err := s.shipmentRepo.CountByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainProduct.ErrProductReferenced
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	logger.Info("Product deleted", zap.String("product_id", productID.String()))
	return nil
}
