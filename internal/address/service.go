package address

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"atelier/internal/domain"
	apperrors "atelier/internal/errors"
)

// coordinator owns the single-default-per-customer invariant. The flip
// itself happens in one conditional update at the repository, so the
// worst outcome of racing callers is "the other caller's choice won",
// never two defaults.
type coordinator struct {
	repo   Repository
	logger *zap.Logger
}

func NewCoordinator(repo Repository, logger *zap.Logger) Coordinator {
	return &coordinator{repo: repo, logger: logger}
}

func (c *coordinator) ListByCustomer(ctx context.Context, customerID string) ([]DeliveredAddressDTO, error) {
	addresses, err := c.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]DeliveredAddressDTO, 0, len(addresses))
	for _, addr := range addresses {
		dtos = append(dtos, toDTO(addr))
	}
	return dtos, nil
}

func (c *coordinator) DefaultForCustomer(ctx context.Context, customerID string) (*DeliveredAddressDTO, error) {
	addr, err := c.repo.FindDefaultByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, nil
	}

	dto := toDTO(*addr)
	return &dto, nil
}

func (c *coordinator) Create(ctx context.Context, customerID string, req CreateDeliveredAddressRequest) (*DeliveredAddressDTO, error) {
	if err := validateAddressFields(req.Zipcode, req.Street, req.Number, req.Neighborhood, req.City, req.Province); err != nil {
		return nil, err
	}

	addr := domain.DeliveredAddress{
		ID:           uuid.New().String(),
		CustomerID:   customerID,
		Zipcode:      req.Zipcode,
		Street:       req.Street,
		Number:       req.Number,
		Neighborhood: req.Neighborhood,
		Complement:   req.Complement,
		City:         req.City,
		Province:     req.Province,
	}

	if err := c.repo.Create(ctx, addr); err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := c.repo.SetDefault(ctx, customerID, addr.ID); err != nil {
			// The row exists but is not marked default. Surface it so the
			// caller knows the selection did not stick.
			return nil, err
		}
		addr.IsDefaultAddress = true
	}

	c.logger.Info("delivered address created",
		zap.String("customerId", customerID),
		zap.String("addressId", addr.ID),
		zap.Bool("isDefault", addr.IsDefaultAddress),
	)

	dto := toDTO(addr)
	return &dto, nil
}

func (c *coordinator) Update(ctx context.Context, addressID string, req UpdateDeliveredAddressRequest) error {
	if err := validateAddressFields(req.Zipcode, req.Street, req.Number, req.Neighborhood, req.City, req.Province); err != nil {
		return err
	}

	addr, err := c.repo.FindByID(ctx, addressID)
	if err != nil {
		return err
	}

	addr.Zipcode = req.Zipcode
	addr.Street = req.Street
	addr.Number = req.Number
	addr.Neighborhood = req.Neighborhood
	addr.Complement = req.Complement
	addr.City = req.City
	addr.Province = req.Province

	return c.repo.Update(ctx, *addr)
}

// SetDefaultAddress marks addressID as the customer's default. The
// address must exist and belong to the customer.
func (c *coordinator) SetDefaultAddress(ctx context.Context, customerID, addressID string) error {
	addr, err := c.repo.FindByID(ctx, addressID)
	if err != nil {
		return err
	}

	if addr.CustomerID != customerID {
		return apperrors.NewNotFoundError("delivered address not found for this customer")
	}

	if err := c.repo.SetDefault(ctx, customerID, addressID); err != nil {
		return err
	}

	c.logger.Info("default delivered address updated",
		zap.String("customerId", customerID),
		zap.String("addressId", addressID),
	)

	return nil
}

func toDTO(addr domain.DeliveredAddress) DeliveredAddressDTO {
	return DeliveredAddressDTO{
		ID:               addr.ID,
		CustomerID:       addr.CustomerID,
		Zipcode:          addr.Zipcode,
		Street:           addr.Street,
		Number:           addr.Number,
		Neighborhood:     addr.Neighborhood,
		Complement:       addr.Complement,
		City:             addr.City,
		Province:         addr.Province,
		IsDefaultAddress: addr.IsDefaultAddress,
	}
}

func validateAddressFields(zipcode, street string, number int, neighborhood, city, province string) error {
	var details []apperrors.ValidationDetail

	if zipcode == "" {
		details = append(details, apperrors.ValidationDetail{Field: "zipcode", Message: "zipcode is required"})
	}
	if street == "" {
		details = append(details, apperrors.ValidationDetail{Field: "street", Message: "street is required"})
	}
	if number <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "number", Message: "number must be a positive integer"})
	}
	if neighborhood == "" {
		details = append(details, apperrors.ValidationDetail{Field: "neighborhood", Message: "neighborhood is required"})
	}
	if city == "" {
		details = append(details, apperrors.ValidationDetail{Field: "city", Message: "city is required"})
	}
	if len(province) != 2 {
		details = append(details, apperrors.ValidationDetail{Field: "province", Message: "province must be a two-letter region code"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid address", details...)
	}
	return nil
}
