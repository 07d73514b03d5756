package address

import (
	"context"

	"atelier/internal/domain"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.DeliveredAddress, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.DeliveredAddress, error)
	FindDefaultByCustomer(ctx context.Context, customerID string) (*domain.DeliveredAddress, error)
	Create(ctx context.Context, addr domain.DeliveredAddress) error
	Update(ctx context.Context, addr domain.DeliveredAddress) error
	SetDefault(ctx context.Context, customerID, addressID string) error
}

type Coordinator interface {
	ListByCustomer(ctx context.Context, customerID string) ([]DeliveredAddressDTO, error)
	DefaultForCustomer(ctx context.Context, customerID string) (*DeliveredAddressDTO, error)
	Create(ctx context.Context, customerID string, req CreateDeliveredAddressRequest) (*DeliveredAddressDTO, error)
	Update(ctx context.Context, addressID string, req UpdateDeliveredAddressRequest) error
	SetDefaultAddress(ctx context.Context, customerID, addressID string) error
}
