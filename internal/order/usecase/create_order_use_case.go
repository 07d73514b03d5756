package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/dto"
	apperrors "atelier/internal/errors"
	"atelier/internal/money"
)

type CustomerFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

type DeliveredAddressFinder interface {
	FindByID(ctx context.Context, id string) (*domain.DeliveredAddress, error)
}

type ItemFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Item, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error)
}

type Notifier interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

type CreateOrderUseCase struct {
	customers        CustomerFinder
	addresses        DeliveredAddressFinder
	items            ItemFinder
	submission       SubmissionService
	notifier         Notifier
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewCreateOrderUseCase(
	customers CustomerFinder,
	addresses DeliveredAddressFinder,
	items ItemFinder,
	submission SubmissionService,
	notifier Notifier,
	logger *zap.Logger,
	maxRetryAttempts int,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		customers:        customers,
		addresses:        addresses,
		items:            items,
		submission:       submission,
		notifier:         notifier,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderSubmissionResult, error) {
	uc.logger.Info("order creation started",
		zap.String("customerId", req.CustomerID),
		zap.Int("itemCount", len(req.ItemIDs)),
		zap.Int("attachmentCount", len(req.Attachments)),
	)

	draft, err := uc.buildDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	if !draft.IsReady() {
		details := make([]apperrors.ValidationDetail, 0)
		for _, field := range draft.MissingFields() {
			details = append(details, apperrors.ValidationDetail{
				Field:   field,
				Message: fmt.Sprintf("%s is required", field),
			})
		}
		return nil, apperrors.NewValidationError("order draft is incomplete", details...)
	}

	result, err := uc.submitWithRetry(ctx, draft)
	if err != nil {
		return nil, err
	}

	uc.publishCreated(ctx, result)

	return result, nil
}

func (uc *CreateOrderUseCase) buildDraft(ctx context.Context, req dto.CreateOrderRequest) (*domain.OrderDraft, error) {
	draft := domain.NewOrderDraft()

	if req.CustomerID != "" {
		customer, err := uc.customers.FindByID(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}
		draft.SetCustomer(*customer)
	}

	if req.DeliveryAddressID != "" {
		address, err := uc.addresses.FindByID(ctx, req.DeliveryAddressID)
		if err != nil {
			return nil, err
		}
		if req.CustomerID != "" && address.CustomerID != req.CustomerID {
			return nil, apperrors.NewValidationError("delivery address does not belong to the customer",
				apperrors.ValidationDetail{Field: "deliveryAddressId", Message: "address belongs to another customer"})
		}
		draft.SetDeliveryAddress(*address)
	}

	if req.TakenAt != "" {
		takenAt, err := time.Parse(time.RFC3339, req.TakenAt)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid pickup date",
				apperrors.ValidationDetail{Field: "takenAt", Message: "takenAt must be an RFC3339 timestamp"})
		}
		draft.SetPickupDate(takenAt)
	}

	if req.CollectedAt != "" {
		collectedAt, err := time.Parse(time.RFC3339, req.CollectedAt)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid collection date",
				apperrors.ValidationDetail{Field: "collectedAt", Message: "collectedAt must be an RFC3339 timestamp"})
		}
		draft.SetCollectionDate(collectedAt)
	}

	if len(req.ItemIDs) > 0 {
		items, err := uc.items.FindByIDs(ctx, req.ItemIDs)
		if err != nil {
			return nil, err
		}

		found := make(map[string]domain.Item, len(items))
		for _, item := range items {
			found[item.ID] = item
		}

		for _, id := range req.ItemIDs {
			item, ok := found[id]
			if !ok {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("item with id %s not found", id))
			}
			if !item.IsActive {
				return nil, apperrors.NewValidationError("inactive item in order",
					apperrors.ValidationDetail{Field: "itemIds", Message: fmt.Sprintf("item %s is inactive", id)})
			}
			draft.AddItem(item)
		}
	}

	for i, encoded := range req.Attachments {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid attachment",
				apperrors.ValidationDetail{Field: "attachments", Message: fmt.Sprintf("attachment %d is not valid base64", i+1)})
		}
		draft.AttachImage(data)
	}

	if req.SubtotalOverride != "" {
		draft.OverrideSubtotal(req.SubtotalOverride, money.BRL)
	}

	return draft, nil
}

func (uc *CreateOrderUseCase) submitWithRetry(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
	maxAttempts := uc.maxRetryAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := uc.submission.Submit(ctx, draft)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isDeadlockError(err) {
			return nil, err
		}

		if attempt < maxAttempts {
			base := backoffs[(attempt-1)%len(backoffs)]
			jitter := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
			time.Sleep(jitter)
			uc.logger.Warn("deadlock detected, retrying order creation",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", maxAttempts),
			)
		}
	}

	return nil, apperrors.NewInternalError("order creation retries exhausted", lastErr)
}

func (uc *CreateOrderUseCase) publishCreated(ctx context.Context, result *dto.OrderSubmissionResult) {
	if uc.notifier == nil {
		return
	}

	payload := map[string]interface{}{
		"orderId":            result.OrderID,
		"totalAmountInCents": result.TotalAmountInCents,
	}
	if err := uc.notifier.Publish(ctx, "order.created", payload); err != nil {
		uc.logger.Warn("event publish failed", zap.String("event", "order.created"), zap.String("orderId", result.OrderID), zap.Error(err))
	}
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
