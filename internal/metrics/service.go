// Package metrics assembles the dashboard counters shown on the home
// screen: how many customers, items and orders exist, plus the
// collection backlog.
package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"atelier/internal/domain"
)

type CustomerCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ItemCounter interface {
	Count(ctx context.Context) (int64, error)
}

type OrderCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	ListUncollected(ctx context.Context) ([]domain.Order, error)
}

type Summary struct {
	Customers          int64 `json:"customers"`
	Items              int64 `json:"items"`
	Orders             int64 `json:"orders"`
	PendingOrders      int64 `json:"pendingOrders"`
	Uncollected        int64 `json:"uncollected"`
	UncollectedOverdue int64 `json:"uncollectedOverdue"`
}

type Service struct {
	customers CustomerCounter
	items     ItemCounter
	orders    OrderCounter
	logger    *zap.Logger

	now func() time.Time
}

func NewService(customers CustomerCounter, items ItemCounter, orders OrderCounter, logger *zap.Logger) *Service {
	return &Service{
		customers: customers,
		items:     items,
		orders:    orders,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.items.Count(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.orders.CountByStatus(ctx, domain.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	uncollected, err := s.orders.ListUncollected(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Customers:     customers,
		Items:         items,
		Orders:        orders,
		PendingOrders: pending,
		Uncollected:   int64(len(uncollected)),
	}

	now := s.now()
	for _, order := range uncollected {
		if order.CollectionOverdue(now) {
			summary.UncollectedOverdue++
		}
	}

	return summary, nil
}
