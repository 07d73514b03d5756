package item

import (
	"context"
	"time"

	"atelier/internal/domain"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, search string, activeOnly bool, page, limit int) ([]domain.Item, bool, error)
	Create(ctx context.Context, item domain.Item) error
	Update(ctx context.Context, item domain.Item) error
	InsertImage(ctx context.Context, image domain.Image) error
}

type ObjectStorage interface {
	Upload(ctx context.Context, bucket, name string, data []byte) error
	SignedReadURL(ctx context.Context, bucket, name string, ttl time.Duration) (string, error)
	MoveToArchive(ctx context.Context, bucket, name string) error
}

type Service interface {
	Get(ctx context.Context, id string) (*ItemDTO, error)
	List(ctx context.Context, search string, activeOnly bool, page, limit int) (*ListItemsResponse, error)
	Create(ctx context.Context, req CreateItemRequest) (*ItemDTO, error)
	Update(ctx context.Context, id string, req UpdateItemRequest) error
}
