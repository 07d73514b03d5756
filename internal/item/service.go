package item

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"atelier/internal/config"
	"atelier/internal/domain"
	apperrors "atelier/internal/errors"
	"atelier/internal/money"
)

type itemService struct {
	repo    Repository
	storage ObjectStorage
	cfg     config.StorageConfig
	logger  *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, storage ObjectStorage, cfg config.StorageConfig, logger *zap.Logger) Service {
	return &itemService{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *itemService) Get(ctx context.Context, id string) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := s.toDTO(ctx, *item)
	return &dto, nil
}

func (s *itemService) List(ctx context.Context, search string, activeOnly bool, page, limit int) (*ListItemsResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 100
	}

	items, hasNext, err := s.repo.List(ctx, search, activeOnly, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, s.toDTO(ctx, it))
	}

	return &ListItemsResponse{
		Items:    dtos,
		Next:     hasNext,
		Previous: page > 1,
	}, nil
}

func (s *itemService) Create(ctx context.Context, req CreateItemRequest) (*ItemDTO, error) {
	amountInCents, err := validateItemFields(req.Name, req.Amount)
	if err != nil {
		return nil, err
	}

	item := domain.Item{
		ID:            uuid.New().String(),
		Name:          req.Name,
		AmountInCents: amountInCents,
		IsActive:      true,
	}

	if req.Image != "" {
		image, err := s.storeImage(ctx, item.ID, req.Image)
		if err != nil {
			return nil, err
		}
		item.ImageID = &image.ID
		item.Image = image
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.String("itemId", item.ID))

	dto := s.toDTO(ctx, item)
	return &dto, nil
}

func (s *itemService) Update(ctx context.Context, id string, req UpdateItemRequest) error {
	amountInCents, err := validateItemFields(req.Name, req.Amount)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	previousImage := item.Image

	item.Name = req.Name
	item.AmountInCents = amountInCents
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if req.Image != "" {
		image, err := s.storeImage(ctx, item.ID, req.Image)
		if err != nil {
			return err
		}
		item.ImageID = &image.ID
		item.Image = image
	}

	if err := s.repo.Update(ctx, *item); err != nil {
		return err
	}

	// The replaced picture stays reachable under the archive prefix; a
	// failure here never rolls back the update itself.
	if req.Image != "" && previousImage != nil {
		if err := s.storage.MoveToArchive(ctx, s.cfg.ItemsBucket, previousImage.Filename); err != nil {
			s.logger.Warn("failed to archive replaced item image",
				zap.String("itemId", item.ID),
				zap.String("filename", previousImage.Filename),
				zap.Error(err))
		}
	}

	return nil
}

func (s *itemService) storeImage(ctx context.Context, itemID, encoded string) (*domain.Image, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid item image",
			apperrors.ValidationDetail{Field: "image", Message: "image must be base64 encoded"})
	}

	filename := fmt.Sprintf("%d_%s.jpg", s.now().UnixMilli(), itemID)

	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	if err := s.storage.Upload(uploadCtx, s.cfg.ItemsBucket, filename, data); err != nil {
		return nil, apperrors.NewAttachmentUploadError("failed to upload item image", filename, err)
	}

	image := domain.Image{
		ID:       uuid.New().String(),
		Filename: filename,
	}
	if err := s.repo.InsertImage(ctx, image); err != nil {
		return nil, err
	}

	return &image, nil
}

func (s *itemService) toDTO(ctx context.Context, item domain.Item) ItemDTO {
	dto := ItemDTO{
		ID:            item.ID,
		Name:          item.Name,
		AmountInCents: item.AmountInCents,
		AmountDisplay: money.FormatCentsToDisplay(item.AmountInCents, money.BRL, true),
		IsActive:      item.IsActive,
	}

	if item.Image != nil {
		url, err := s.storage.SignedReadURL(ctx, s.cfg.ItemsBucket, item.Image.Filename, s.cfg.SignedURLTTL)
		if err != nil {
			s.logger.Warn("failed to sign item image url",
				zap.String("itemId", item.ID),
				zap.Error(err))
		} else {
			dto.ImageURL = url
		}
	}

	return dto
}

func validateItemFields(name, amount string) (int64, error) {
	var details []apperrors.ValidationDetail

	if name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}

	amountInCents := money.ParseDecimalToCents(amount, money.BRL)
	if amountInCents <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "amount", Message: "amount must be greater than zero"})
	}

	if len(details) > 0 {
		return 0, apperrors.NewValidationError("invalid item", details...)
	}

	return amountInCents, nil
}
