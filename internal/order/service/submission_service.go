package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/dto"
	"atelier/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) error
}

type OrderLineRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, line domain.OrderLine) (string, error)
}

type OrderImageRepository interface {
	InsertImage(ctx context.Context, tx *sql.Tx, image domain.Image) error
	LinkToOrder(ctx context.Context, tx *sql.Tx, orderID, imageID string) error
}

type ObjectStorage interface {
	Upload(ctx context.Context, bucket, name string, data []byte) error
}

// SubmissionService turns a ready draft into a persisted order. Photos go
// to object storage first; the order row, its line snapshots and the
// image associations are then written in one transaction, so a failed
// upload leaves no order behind and a failed insert leaves only orphaned
// objects in the bucket.
type SubmissionService struct {
	db            TransactionManager
	orderRepo     OrderRepository
	lineRepo      OrderLineRepository
	imageRepo     OrderImageRepository
	storage       ObjectStorage
	ordersBucket  string
	logger        *zap.Logger
	txTimeout     time.Duration
	uploadTimeout time.Duration
	now           func() time.Time
}

func NewSubmissionService(
	db TransactionManager,
	orderRepo OrderRepository,
	lineRepo OrderLineRepository,
	imageRepo OrderImageRepository,
	storage ObjectStorage,
	ordersBucket string,
	logger *zap.Logger,
	txTimeout time.Duration,
	uploadTimeout time.Duration,
) *SubmissionService {
	return &SubmissionService{
		db:            db,
		orderRepo:     orderRepo,
		lineRepo:      lineRepo,
		imageRepo:     imageRepo,
		storage:       storage,
		ordersBucket:  ordersBucket,
		logger:        logger,
		txTimeout:     txTimeout,
		uploadTimeout: uploadTimeout,
		now:           time.Now,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
	orderID := uuid.New().String()

	// Bloque 1: subir las fotos antes de tocar la base de datos
	uploaded, err := s.uploadAttachments(ctx, orderID, draft.Attachments)
	if err != nil {
		return nil, err
	}

	// Bloque 2: transacción de creación con timeout
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// MySQL ignores rollback after a successful commit.
	defer tx.Rollback()

	order := domain.Order{
		ID:                 orderID,
		CustomerID:         draft.Customer.ID,
		DeliveryAddressID:  draft.DeliveryAddress.ID,
		TakenAt:            draft.TakenAt,
		CollectedAt:        draft.CollectedAt,
		TotalAmountInCents: draft.TotalAmountInCents(),
		Status:             domain.OrderStatusPending,
		IsCollected:        false,
	}

	if err := s.orderRepo.Insert(txCtx, tx, order); err != nil {
		s.logger.Error("failed to insert order", zap.String("orderId", orderID), zap.Error(err))
		return nil, err
	}

	for _, line := range draft.Lines {
		line.OrderID = orderID
		if _, err := s.lineRepo.Insert(txCtx, tx, line); err != nil {
			s.logger.Error("failed to insert order line", zap.String("orderId", orderID), zap.String("itemId", line.ItemID), zap.Error(err))
			return nil, err
		}
	}

	for _, filename := range uploaded {
		image := domain.Image{ID: uuid.New().String(), Filename: filename}
		if err := s.imageRepo.InsertImage(txCtx, tx, image); err != nil {
			s.logger.Error("failed to insert image row", zap.String("orderId", orderID), zap.String("filename", filename), zap.Error(err))
			return nil, err
		}
		if err := s.imageRepo.LinkToOrder(txCtx, tx, orderID, image.ID); err != nil {
			s.logger.Error("failed to link image to order", zap.String("orderId", orderID), zap.String("filename", filename), zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit order creation", zap.String("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("orderId", orderID),
		zap.Int("lineCount", len(draft.Lines)),
		zap.Int("imageCount", len(uploaded)),
		zap.Int64("totalAmountInCents", order.TotalAmountInCents),
	)

	results := make([]dto.AttachmentResult, 0, len(uploaded))
	for _, filename := range uploaded {
		results = append(results, dto.AttachmentResult{Filename: filename, Uploaded: true})
	}

	return &dto.OrderSubmissionResult{
		OrderID:            orderID,
		TotalAmountInCents: order.TotalAmountInCents,
		Attachments:        results,
	}, nil
}

// uploadAttachments writes each photo under a deterministic name. The
// first failure aborts the whole submission so no order is created with
// part of its images missing.
func (s *SubmissionService) uploadAttachments(ctx context.Context, orderID string, attachments [][]byte) ([]string, error) {
	epochMillis := s.now().UnixMilli()

	uploaded := make([]string, 0, len(attachments))
	for i, data := range attachments {
		filename := fmt.Sprintf("%d_%s_%d.jpg", epochMillis, orderID, i+1)

		uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
		err := s.storage.Upload(uploadCtx, s.ordersBucket, filename, data)
		cancel()
		if err != nil {
			s.logger.Error("attachment upload failed",
				zap.String("orderId", orderID),
				zap.String("filename", filename),
				zap.Int("uploadedSoFar", len(uploaded)),
				zap.Error(err),
			)
			return nil, errors.NewAttachmentUploadError("uploading order photo failed", filename, err)
		}

		uploaded = append(uploaded, filename)
	}

	return uploaded, nil
}
