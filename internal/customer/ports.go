package customer

import (
	"context"
	"time"

	"atelier/internal/domain"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByTaxID(ctx context.Context, cpf string) (*domain.Customer, error)
	List(ctx context.Context, search string, page, limit int) ([]domain.Customer, bool, error)
	Create(ctx context.Context, customer domain.Customer, addr domain.Address) error
	Update(ctx context.Context, customer domain.Customer, addr domain.Address) error
	InsertImage(ctx context.Context, image domain.Image) error
	SetAvatar(ctx context.Context, customerID, imageID string) error
}

type ObjectStorage interface {
	Upload(ctx context.Context, bucket, name string, data []byte) error
	SignedReadURL(ctx context.Context, bucket, name string, ttl time.Duration) (string, error)
	MoveToArchive(ctx context.Context, bucket, name string) error
}

type Service interface {
	Get(ctx context.Context, id string) (*CustomerDTO, error)
	List(ctx context.Context, search string, page, limit int) (*ListCustomersResponse, error)
	Create(ctx context.Context, req CreateCustomerRequest) (*CustomerDTO, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) error
	UpdateAvatar(ctx context.Context, id string, req UpdateAvatarRequest) error
}
