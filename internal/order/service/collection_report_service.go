package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/dto"
)

type UncollectedLister interface {
	ListUncollected(ctx context.Context) ([]domain.Order, error)
}

// CollectionReportService partitions uncollected orders into those whose
// planned collection date already passed and those still ahead. The
// report feeds the notification feed; it never mutates an order.
type CollectionReportService struct {
	orders   UncollectedLister
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewCollectionReportService(orders UncollectedLister, notifier Notifier, logger *zap.Logger) *CollectionReportService {
	return &CollectionReportService{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CollectionReportService) Report(ctx context.Context) (*dto.CollectionReport, error) {
	orders, err := s.orders.ListUncollected(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := &dto.CollectionReport{UncollectedCount: int64(len(orders))}
	for _, order := range orders {
		if order.CollectionOverdue(now) {
			report.Overdue++
		} else {
			report.NotYetDue++
		}
	}

	if s.notifier != nil && report.Overdue > 0 {
		if err := s.notifier.Publish(ctx, "order.collection.overdue", report); err != nil {
			s.logger.Warn("collection report publish failed", zap.Error(err))
		}
	}

	return report, nil
}
