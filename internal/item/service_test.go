package item

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier/internal/config"
	"atelier/internal/domain"
	apperrors "atelier/internal/errors"
)

type mockRepository struct {
	findByIDFunc    func(ctx context.Context, id string) (*domain.Item, error)
	listFunc        func(ctx context.Context, search string, activeOnly bool, page, limit int) ([]domain.Item, bool, error)
	createFunc      func(ctx context.Context, item domain.Item) error
	updateFunc      func(ctx context.Context, item domain.Item) error
	insertImageFunc func(ctx context.Context, image domain.Image) error
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockRepository) List(ctx context.Context, search string, activeOnly bool, page, limit int) ([]domain.Item, bool, error) {
	return m.listFunc(ctx, search, activeOnly, page, limit)
}

func (m *mockRepository) Create(ctx context.Context, item domain.Item) error {
	return m.createFunc(ctx, item)
}

func (m *mockRepository) Update(ctx context.Context, item domain.Item) error {
	return m.updateFunc(ctx, item)
}

func (m *mockRepository) InsertImage(ctx context.Context, image domain.Image) error {
	return m.insertImageFunc(ctx, image)
}

type mockStorage struct {
	uploadFunc        func(ctx context.Context, bucket, name string, data []byte) error
	signedReadURLFunc func(ctx context.Context, bucket, name string, ttl time.Duration) (string, error)
	moveToArchiveFunc func(ctx context.Context, bucket, name string) error
	archived          []string
}

func (m *mockStorage) Upload(ctx context.Context, bucket, name string, data []byte) error {
	if m.uploadFunc == nil {
		return nil
	}
	return m.uploadFunc(ctx, bucket, name, data)
}

func (m *mockStorage) SignedReadURL(ctx context.Context, bucket, name string, ttl time.Duration) (string, error) {
	if m.signedReadURLFunc == nil {
		return "https://signed.example/" + name, nil
	}
	return m.signedReadURLFunc(ctx, bucket, name, ttl)
}

func (m *mockStorage) MoveToArchive(ctx context.Context, bucket, name string) error {
	m.archived = append(m.archived, name)
	if m.moveToArchiveFunc == nil {
		return nil
	}
	return m.moveToArchiveFunc(ctx, bucket, name)
}

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		ItemsBucket:   "items",
		SignedURLTTL:  time.Minute,
		UploadTimeout: time.Second,
	}
}

func newTestService(repo Repository, store ObjectStorage) *itemService {
	svc := NewService(repo, store, testStorageConfig(), zap.NewNop()).(*itemService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestCreateItemParsesAmount(t *testing.T) {
	var created domain.Item
	repo := &mockRepository{
		createFunc: func(ctx context.Context, item domain.Item) error {
			created = item
			return nil
		},
	}

	svc := newTestService(repo, &mockStorage{})

	dto, err := svc.Create(context.Background(), CreateItemRequest{Name: "Vestido", Amount: "1.234,56"})

	require.NoError(t, err)
	assert.Equal(t, int64(123456), created.AmountInCents)
	assert.True(t, created.IsActive)
	assert.Equal(t, "R$ 1.234,56", dto.AmountDisplay)
}

func TestCreateItemRejectsZeroAmount(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockStorage{})

	_, err := svc.Create(context.Background(), CreateItemRequest{Name: "Vestido", Amount: "0,00"})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestCreateItemWithImage(t *testing.T) {
	var insertedImage domain.Image
	repo := &mockRepository{
		createFunc: func(ctx context.Context, item domain.Item) error {
			require.NotNil(t, item.ImageID)
			assert.Equal(t, insertedImage.ID, *item.ImageID)
			return nil
		},
		insertImageFunc: func(ctx context.Context, image domain.Image) error {
			insertedImage = image
			return nil
		},
	}

	var uploadedName string
	store := &mockStorage{
		uploadFunc: func(ctx context.Context, bucket, name string, data []byte) error {
			uploadedName = name
			assert.Equal(t, "items", bucket)
			return nil
		},
	}

	svc := newTestService(repo, store)

	_, err := svc.Create(context.Background(), CreateItemRequest{
		Name:   "Vestido",
		Amount: "10,00",
		Image:  base64.StdEncoding.EncodeToString([]byte("jpeg bytes")),
	})

	require.NoError(t, err)
	assert.Equal(t, uploadedName, insertedImage.Filename)
	assert.Contains(t, uploadedName, "1700000000000_")
}

func TestCreateItemUploadFailure(t *testing.T) {
	store := &mockStorage{
		uploadFunc: func(ctx context.Context, bucket, name string, data []byte) error {
			return errors.New("bucket unavailable")
		},
	}
	repo := &mockRepository{
		createFunc: func(ctx context.Context, item domain.Item) error {
			t.Fatal("item must not be created when its image upload fails")
			return nil
		},
	}

	svc := newTestService(repo, store)

	_, err := svc.Create(context.Background(), CreateItemRequest{
		Name:   "Vestido",
		Amount: "10,00",
		Image:  base64.StdEncoding.EncodeToString([]byte("jpeg bytes")),
	})

	_, ok := apperrors.IsAttachmentUploadError(err)
	assert.True(t, ok)
}

func TestUpdateItemArchivesReplacedImage(t *testing.T) {
	oldImageID := "image-old"
	repo := &mockRepository{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Item, error) {
			return &domain.Item{
				ID:            id,
				Name:          "Vestido",
				AmountInCents: 1000,
				IsActive:      true,
				ImageID:       &oldImageID,
				Image:         &domain.Image{ID: oldImageID, Filename: "old.jpg"},
			}, nil
		},
		updateFunc: func(ctx context.Context, item domain.Item) error {
			require.NotNil(t, item.ImageID)
			assert.NotEqual(t, oldImageID, *item.ImageID)
			return nil
		},
		insertImageFunc: func(ctx context.Context, image domain.Image) error {
			return nil
		},
	}
	store := &mockStorage{}

	svc := newTestService(repo, store)

	err := svc.Update(context.Background(), "item-1", UpdateItemRequest{
		Name:   "Vestido",
		Amount: "15,00",
		Image:  base64.StdEncoding.EncodeToString([]byte("new jpeg")),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"old.jpg"}, store.archived)
}

func TestUpdateItemWithoutImageKeepsCurrentOne(t *testing.T) {
	imageID := "image-1"
	repo := &mockRepository{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Item, error) {
			return &domain.Item{
				ID:       id,
				Name:     "Vestido",
				IsActive: true,
				ImageID:  &imageID,
				Image:    &domain.Image{ID: imageID, Filename: "current.jpg"},
			}, nil
		},
		updateFunc: func(ctx context.Context, item domain.Item) error {
			require.NotNil(t, item.ImageID)
			assert.Equal(t, imageID, *item.ImageID)
			return nil
		},
	}
	store := &mockStorage{}

	svc := newTestService(repo, store)

	inactive := false
	err := svc.Update(context.Background(), "item-1", UpdateItemRequest{
		Name:     "Vestido",
		Amount:   "15,00",
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.Empty(t, store.archived)
}

func TestGetItemSignsImageURL(t *testing.T) {
	imageID := "image-1"
	repo := &mockRepository{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Item, error) {
			return &domain.Item{
				ID:            id,
				Name:          "Vestido",
				AmountInCents: 1000,
				IsActive:      true,
				ImageID:       &imageID,
				Image:         &domain.Image{ID: imageID, Filename: "photo.jpg"},
			}, nil
		},
	}

	svc := newTestService(repo, &mockStorage{})

	dto, err := svc.Get(context.Background(), "item-1")

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/photo.jpg", dto.ImageURL)
}
