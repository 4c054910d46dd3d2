package customer

import (
	"context"

	domainCustomer "cargo-dispatch/internal/domain/customer"
	"cargo-dispatch/internal/logger"
	appErrors "cargo-dispatch/pkg/errors"
	"cargo-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const searchLimit = 50

// Service owns customer management. Every customer keeps at least one
// saved address; shipments validate delivery addresses against them.
type Service struct {
	customerRepo domainCustomer.Repository
}

func NewService(customerRepo domainCustomer.Repository) *Service {
	return &Service{customerRepo: customerRepo}
}

func (s *Service) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*CustomerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	c := &domainCustomer.Customer{
		ID:       uuid.New(),
		Name:     utils.SanitizeText(req.Name),
		Phone:    utils.SanitizeText(req.Phone),
		Address:  utils.SanitizeText(req.Address),
		Address2: utils.SanitizeText(req.Address2),
		Address3: utils.SanitizeText(req.Address3),
	}
	if c.Address == "" {
		return nil, appErrors.NewAppError("INVALID_ADDRESS", "A customer requires at least one address", appErrors.ErrInvalidAddress)
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Customer created",
		zap.String("customer_id", c.ID.String()),
		zap.Int("address_count", len(c.Addresses())),
	)
	return ToCustomerResponse(c), nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

// ListCustomers returns all customers, or a name/phone search when query is
// non-empty.
func (s *Service) ListCustomers(ctx context.Context, query string) ([]CustomerResponse, error) {
	var (
		customers []*domainCustomer.Customer
		err       error
	)
	if query = utils.SanitizeText(query); query != "" {
		customers, err = s.customerRepo.Search(ctx, query, searchLimit)
	} else {
		customers, err = s.customerRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = *ToCustomerResponse(c)
	}
	return responses, nil
}

// ListAddresses returns the customer's saved addresses, the set a shipment
// delivery address must come from.
func (s *Service) ListAddresses(ctx context.Context, customerID uuid.UUID) (*AddressListResponse, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &AddressListResponse{CustomerID: c.ID, Addresses: c.Addresses()}, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, customerID uuid.UUID, req *UpdateCustomerRequest) (*CustomerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = utils.SanitizeText(*req.Name)
	}
	if req.Phone != nil {
		c.Phone = utils.SanitizeText(*req.Phone)
	}
	if req.Address != nil {
		c.Address = utils.SanitizeText(*req.Address)
	}
	if req.Address2 != nil {
		c.Address2 = utils.SanitizeText(*req.Address2)
	}
	if req.Address3 != nil {
		c.Address3 = utils.SanitizeText(*req.Address3)
	}
	if len(c.Addresses()) == 0 {
		return nil, appErrors.NewAppError("INVALID_ADDRESS", "A customer requires at least one address", appErrors.ErrInvalidAddress)
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return ToCustomerResponse(c), nil
}

func (s *Service) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return err
	}
	logger.Info("Customer deleted", zap.String("customer_id", customerID.String()))
	return nil
}
