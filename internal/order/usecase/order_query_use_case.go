package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/dto"
	"atelier/internal/money"
)

type OrderQueryRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]domain.Order, bool, error)
}

type ImageURLResolver interface {
	SignedReadURL(ctx context.Context, bucket, name string, ttl time.Duration) (string, error)
}

type OrderQueryUseCase struct {
	orders       OrderQueryRepository
	urls         ImageURLResolver
	ordersBucket string
	urlTTL       time.Duration
	logger       *zap.Logger
}

func NewOrderQueryUseCase(
	orders OrderQueryRepository,
	urls ImageURLResolver,
	ordersBucket string,
	urlTTL time.Duration,
	logger *zap.Logger,
) *OrderQueryUseCase {
	return &OrderQueryUseCase{
		orders:       orders,
		urls:         urls,
		ordersBucket: ordersBucket,
		urlTTL:       urlTTL,
		logger:       logger,
	}
}

func (uc *OrderQueryUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toOrderResponse(*order)

	// A failed signing only drops the url, never the order itself.
	for i := range resp.Images {
		url, err := uc.urls.SignedReadURL(ctx, uc.ordersBucket, resp.Images[i].Filename, uc.urlTTL)
		if err != nil {
			uc.logger.Warn("signing image url failed",
				zap.String("orderId", order.ID),
				zap.String("filename", resp.Images[i].Filename),
				zap.Error(err),
			)
			continue
		}
		resp.Images[i].URL = url
	}

	return &resp, nil
}

func (uc *OrderQueryUseCase) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.ListOrdersResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	orders, hasNext, err := uc.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}

	return &dto.ListOrdersResponse{
		Orders:   responses,
		Next:     hasNext,
		Previous: filter.Page > 1,
	}, nil
}

func toOrderResponse(order domain.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:                 order.ID,
		CustomerID:         order.CustomerID,
		DeliveryAddressID:  order.DeliveryAddressID,
		TakenAt:            order.TakenAt.Format(time.RFC3339),
		CollectedAt:        order.CollectedAt.Format(time.RFC3339),
		TotalAmountInCents: order.TotalAmountInCents,
		TotalDisplay:       money.FormatCentsToDisplay(order.TotalAmountInCents, money.BRL, true),
		Status:             order.Status,
		IsCollected:        order.IsCollected,
		CreatedAt:          order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          order.UpdatedAt.Format(time.RFC3339),
	}

	if order.Customer != nil {
		resp.CustomerName = order.Customer.Name
	}

	if order.DeliveryAddress != nil {
		resp.DeliveryAddress = &dto.OrderAddressDTO{
			ID:           order.DeliveryAddress.ID,
			Zipcode:      order.DeliveryAddress.Zipcode,
			Street:       order.DeliveryAddress.Street,
			Number:       order.DeliveryAddress.Number,
			Neighborhood: order.DeliveryAddress.Neighborhood,
			Complement:   order.DeliveryAddress.Complement,
			City:         order.DeliveryAddress.City,
			Province:     order.DeliveryAddress.Province,
		}
	}

	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineDTO{
			ItemID:        line.ItemID,
			Name:          line.Name,
			AmountInCents: line.AmountInCents,
		})
	}

	for _, img := range order.Images {
		resp.Images = append(resp.Images, dto.OrderImageDTO{
			ID:       img.ID,
			Filename: img.Filename,
		})
	}

	return resp
}
