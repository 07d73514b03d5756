package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/errors"
)

type OrderReader interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}

type OrderStatusWriter interface {
	UpdateStatusFrom(ctx context.Context, id, from, to string) (int64, error)
	UpdateCollected(ctx context.Context, id string) error
}

type Notifier interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// LifecycleService guards the order status transitions. PAID and CANCELED
// are terminal; the collected flag moves independently of status and only
// ever from false to true.
type LifecycleService struct {
	orders   OrderReader
	writer   OrderStatusWriter
	notifier Notifier
	logger   *zap.Logger
}

func NewLifecycleService(orders OrderReader, writer OrderStatusWriter, notifier Notifier, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		orders:   orders,
		writer:   writer,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *LifecycleService) Pay(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, domain.OrderStatusPaid, "order.paid")
}

func (s *LifecycleService) Cancel(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, domain.OrderStatusCanceled, "order.canceled")
}

func (s *LifecycleService) transition(ctx context.Context, orderID, target, event string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.CanTransition() {
		return errors.NewConflictError(fmt.Sprintf("order is %s, only PENDING orders can change status", order.Status))
	}

	rowsAffected, err := s.writer.UpdateStatusFrom(ctx, orderID, domain.OrderStatusPending, target)
	if err != nil {
		return err
	}

	// The read above said PENDING; zero rows means someone else won the
	// race between the read and the update.
	if rowsAffected == 0 {
		return errors.NewConflictError("order status changed concurrently")
	}

	s.logger.Info("order status updated", zap.String("orderId", orderID), zap.String("status", target))
	s.publish(ctx, event, orderID)

	return nil
}

// MarkCollected is independent of status and idempotent: collecting an
// already-collected order is a no-op, not an error.
func (s *LifecycleService) MarkCollected(ctx context.Context, orderID string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.writer.UpdateCollected(ctx, orderID); err != nil {
		return err
	}

	if !order.IsCollected {
		s.logger.Info("order collected", zap.String("orderId", orderID))
		s.publish(ctx, "order.collected", orderID)
	}

	return nil
}

func (s *LifecycleService) publish(ctx context.Context, event, orderID string) {
	if s.notifier == nil {
		return
	}

	payload := map[string]string{"orderId": orderID}
	if err := s.notifier.Publish(ctx, event, payload); err != nil {
		s.logger.Warn("event publish failed", zap.String("event", event), zap.String("orderId", orderID), zap.Error(err))
	}
}
