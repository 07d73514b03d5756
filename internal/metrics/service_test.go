package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

type staticCounter int64

func (c staticCounter) Count(ctx context.Context) (int64, error) {
	return int64(c), nil
}

type mockOrderCounter struct {
	total       int64
	pending     int64
	uncollected []domain.Order
}

func (m *mockOrderCounter) Count(ctx context.Context) (int64, error) {
	return m.total, nil
}

func (m *mockOrderCounter) CountByStatus(ctx context.Context, status string) (int64, error) {
	return m.pending, nil
}

func (m *mockOrderCounter) ListUncollected(ctx context.Context) ([]domain.Order, error) {
	return m.uncollected, nil
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)

	orders := &mockOrderCounter{
		total:   10,
		pending: 4,
		uncollected: []domain.Order{
			{ID: "order-1", CollectedAt: now.Add(-24 * time.Hour)},
			{ID: "order-2", CollectedAt: now.Add(24 * time.Hour)},
		},
	}

	svc := NewService(staticCounter(7), staticCounter(12), orders, zap.NewNop())
	svc.now = func() time.Time { return now }

	summary, err := svc.Summarize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.Customers)
	assert.Equal(t, int64(12), summary.Items)
	assert.Equal(t, int64(10), summary.Orders)
	assert.Equal(t, int64(4), summary.PendingOrders)
	assert.Equal(t, int64(2), summary.Uncollected)
	assert.Equal(t, int64(1), summary.UncollectedOverdue)
}
