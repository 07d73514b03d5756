package customer

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
)

type customerService struct {
	repo    Repository
	storage ObjectStorage
	cfg     config.StorageConfig
	logger  *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, storage ObjectStorage, cfg config.StorageConfig, logger *zap.Logger) Service {
	return &customerService{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *customerService) Get(ctx context.Context, id string) (*CustomerDTO, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := s.toDTO(ctx, *customer)
	return &dto, nil
}

func (s *customerService) List(ctx context.Context, search string, page, limit int) (*ListCustomersResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 100
	}

	customers, hasNext, err := s.repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		dtos = append(dtos, s.toDTO(ctx, c))
	}

	return &ListCustomersResponse{
		Customers: dtos,
		Next:      hasNext,
		Previous:  page > 1,
	}, nil
}

func (s *customerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerDTO, error) {
	if err := validateCustomerFields(req.Name, req.Phone, req.CPF); err != nil {
		return nil, err
	}

	// Fast-path hint only; the unique constraint is the real guard.
	if existing, err := s.repo.FindByTaxID(ctx, req.CPF); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("a customer with this cpf already exists")
	}

	addr := domain.Address{
		ID:           uuid.New().String(),
		Zipcode:      req.Address.Zipcode,
		Street:       req.Address.Street,
		Number:       req.Address.Number,
		Neighborhood: req.Address.Neighborhood,
		Complement:   req.Address.Complement,
		City:         req.Address.City,
		Province:     req.Address.Province,
	}

	customer := domain.Customer{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		CPF:       req.CPF,
		AddressID: addr.ID,
	}

	if err := s.repo.Create(ctx, customer, addr); err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.String("customerId", customer.ID))

	customer.Address = &addr
	dto := s.toDTO(ctx, customer)
	return &dto, nil
}

func (s *customerService) Update(ctx context.Context, id string, req UpdateCustomerRequest) error {
	if err := validateCustomerFields(req.Name, req.Phone, req.CPF); err != nil {
		return err
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing, err := s.repo.FindByTaxID(ctx, req.CPF); err == nil && existing != nil && existing.ID != id {
		return apperrors.NewConflictError("a customer with this cpf already exists")
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.CPF = req.CPF

	addr := domain.Address{
		ID:           customer.AddressID,
		Zipcode:      req.Address.Zipcode,
		Street:       req.Address.Street,
		Number:       req.Address.Number,
		Neighborhood: req.Address.Neighborhood,
		Complement:   req.Address.Complement,
		City:         req.Address.City,
		Province:     req.Address.Province,
	}

	return s.repo.Update(ctx, *customer, addr)
}

func (s *customerService) UpdateAvatar(ctx context.Context, id string, req UpdateAvatarRequest) error {
	if req.Image == "" {
		return apperrors.NewValidationError("invalid avatar",
			apperrors.ValidationDetail{Field: "image", Message: "image is required"})
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return apperrors.NewValidationError("invalid avatar",
			apperrors.ValidationDetail{Field: "image", Message: "image must be base64 encoded"})
	}

	filename := fmt.Sprintf("%d_%s.jpg", s.now().UnixMilli(), customer.ID)

	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	if err := s.storage.Upload(uploadCtx, s.cfg.AvatarsBucket, filename, data); err != nil {
		return apperrors.NewAttachmentUploadError("failed to upload avatar", filename, err)
	}

	image := domain.Image{
		ID:       uuid.New().String(),
		Filename: filename,
	}
	if err := s.repo.InsertImage(ctx, image); err != nil {
		return err
	}
	if err := s.repo.SetAvatar(ctx, customer.ID, image.ID); err != nil {
		return err
	}

	// The replaced picture stays reachable under the archive prefix; a
	// failure here never rolls back the avatar change.
	if customer.Avatar != nil {
		if err := s.storage.MoveToArchive(ctx, s.cfg.AvatarsBucket, customer.Avatar.Filename); err != nil {
			s.logger.Warn("failed to archive replaced avatar",
				zap.String("customerId", customer.ID),
				zap.String("filename", customer.Avatar.Filename),
				zap.Error(err))
		}
	}

	s.logger.Info("customer avatar updated", zap.String("customerId", customer.ID))
	return nil
}

func (s *customerService) toDTO(ctx context.Context, customer domain.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:    customer.ID,
		Name:  customer.Name,
		Phone: customer.Phone,
		CPF:   customer.CPF,
	}

	if customer.Address != nil {
		dto.Address = &AddressDTO{
			Zipcode:      customer.Address.Zipcode,
			Street:       customer.Address.Street,
			Number:       customer.Address.Number,
			Neighborhood: customer.Address.Neighborhood,
			Complement:   customer.Address.Complement,
			City:         customer.Address.City,
			Province:     customer.Address.Province,
		}
	}

	if customer.Avatar != nil {
		url, err := s.storage.SignedReadURL(ctx, s.cfg.AvatarsBucket, customer.Avatar.Filename, s.cfg.SignedURLTTL)
		if err != nil {
			s.logger.Warn("failed to sign avatar url",
				zap.String("customerId", customer.ID),
				zap.Error(err))
		} else {
			dto.AvatarURL = url
		}
	}

	return dto
}

func validateCustomerFields(name, phone, cpf string) error {
	var details []apperrors.ValidationDetail

	if name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if phone == "" {
		details = append(details, apperrors.ValidationDetail{Field: "phone", Message: "phone is required"})
	}
	if cpf == "" {
		details = append(details, apperrors.ValidationDetail{Field: "cpf", Message: "cpf is required"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid customer", details...)
	}
	return nil
}
