package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/dto"
	apperrors "atelier/internal/errors"
)

type mockCustomerFinder struct {
	findByIDFunc func(ctx context.Context, id string) (*domain.Customer, error)
}

func (m *mockCustomerFinder) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return m.findByIDFunc(ctx, id)
}

type mockAddressFinder struct {
	findByIDFunc func(ctx context.Context, id string) (*domain.DeliveredAddress, error)
}

func (m *mockAddressFinder) FindByID(ctx context.Context, id string) (*domain.DeliveredAddress, error) {
	return m.findByIDFunc(ctx, id)
}

type mockItemFinder struct {
	findByIDsFunc func(ctx context.Context, ids []string) ([]domain.Item, error)
}

func (m *mockItemFinder) FindByIDs(ctx context.Context, ids []string) ([]domain.Item, error) {
	return m.findByIDsFunc(ctx, ids)
}

type mockSubmission struct {
	submitFunc func(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error)
	calls      int
}

func (m *mockSubmission) Submit(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
	m.calls++
	return m.submitFunc(ctx, draft)
}

type mockNotifier struct {
	published []string
}

func (m *mockNotifier) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	m.published = append(m.published, routingKey)
	return nil
}

func validRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerID:        "customer-1",
		DeliveryAddressID: "address-1",
		TakenAt:           "2025-03-10T09:00:00Z",
		CollectedAt:       "2025-03-17T09:00:00Z",
		ItemIDs:           []string{"item-1", "item-2"},
	}
}

func happyFinders() (*mockCustomerFinder, *mockAddressFinder, *mockItemFinder) {
	customers := &mockCustomerFinder{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return &domain.Customer{ID: id, Name: "Maria"}, nil
		},
	}
	addresses := &mockAddressFinder{
		findByIDFunc: func(ctx context.Context, id string) (*domain.DeliveredAddress, error) {
			return &domain.DeliveredAddress{ID: id, CustomerID: "customer-1"}, nil
		},
	}
	items := &mockItemFinder{
		findByIDsFunc: func(ctx context.Context, ids []string) ([]domain.Item, error) {
			return []domain.Item{
				{ID: "item-1", Name: "Vestido", AmountInCents: 1000, IsActive: true},
				{ID: "item-2", Name: "Calça", AmountInCents: 550, IsActive: true},
			}, nil
		},
	}
	return customers, addresses, items
}

func TestCreateOrderBuildsDraftAndPublishes(t *testing.T) {
	customers, addresses, items := happyFinders()

	var submitted *domain.OrderDraft
	submission := &mockSubmission{
		submitFunc: func(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
			submitted = draft
			return &dto.OrderSubmissionResult{OrderID: "order-1", TotalAmountInCents: draft.TotalAmountInCents()}, nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewCreateOrderUseCase(customers, addresses, items, submission, notifier, zap.NewNop(), 3)

	result, err := uc.CreateOrder(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "order-1", result.OrderID)
	assert.Equal(t, int64(1550), result.TotalAmountInCents)

	require.NotNil(t, submitted)
	require.Len(t, submitted.Lines, 2)
	assert.Equal(t, "Vestido", submitted.Lines[0].Name)
	assert.Equal(t, int64(1000), submitted.Lines[0].AmountInCents)

	assert.Equal(t, []string{"order.created"}, notifier.published)
}

func TestCreateOrderAppliesSubtotalOverride(t *testing.T) {
	customers, addresses, items := happyFinders()

	submission := &mockSubmission{
		submitFunc: func(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
			return &dto.OrderSubmissionResult{OrderID: "order-1", TotalAmountInCents: draft.TotalAmountInCents()}, nil
		},
	}

	uc := NewCreateOrderUseCase(customers, addresses, items, submission, nil, zap.NewNop(), 3)

	req := validRequest()
	req.SubtotalOverride = "20,00"

	result, err := uc.CreateOrder(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(2000), result.TotalAmountInCents)
}

func TestCreateOrderIncompleteDraft(t *testing.T) {
	customers, addresses, items := happyFinders()
	submission := &mockSubmission{
		submitFunc: func(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
			t.Fatal("incomplete drafts must not be submitted")
			return nil, nil
		},
	}

	uc := NewCreateOrderUseCase(customers, addresses, items, submission, nil, zap.NewNop(), 3)

	req := validRequest()
	req.ItemIDs = nil
	req.CollectedAt = ""

	_, err := uc.CreateOrder(context.Background(), req)

	verr, ok := apperrors.IsValidationError(err)
	require.True(t, ok)

	fields := make([]string, 0, len(verr.Details))
	for _, d := range verr.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"collectedAt", "items"}, fields)
}

func TestCreateOrderRejectsForeignAddress(t *testing.T) {
	customers, _, items := happyFinders()
	addresses := &mockAddressFinder{
		findByIDFunc: func(ctx context.Context, id string) (*domain.DeliveredAddress, error) {
			return &domain.DeliveredAddress{ID: id, CustomerID: "someone-else"}, nil
		},
	}

	uc := NewCreateOrderUseCase(customers, addresses, items, &mockSubmission{}, nil, zap.NewNop(), 3)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestCreateOrderUnknownItem(t *testing.T) {
	customers, addresses, _ := happyFinders()
	items := &mockItemFinder{
		findByIDsFunc: func(ctx context.Context, ids []string) ([]domain.Item, error) {
			return []domain.Item{{ID: "item-1", Name: "Vestido", AmountInCents: 1000, IsActive: true}}, nil
		},
	}

	uc := NewCreateOrderUseCase(customers, addresses, items, &mockSubmission{}, nil, zap.NewNop(), 3)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCreateOrderInactiveItem(t *testing.T) {
	customers, addresses, _ := happyFinders()
	items := &mockItemFinder{
		findByIDsFunc: func(ctx context.Context, ids []string) ([]domain.Item, error) {
			return []domain.Item{
				{ID: "item-1", Name: "Vestido", AmountInCents: 1000, IsActive: true},
				{ID: "item-2", Name: "Calça", AmountInCents: 550, IsActive: false},
			}, nil
		},
	}

	uc := NewCreateOrderUseCase(customers, addresses, items, &mockSubmission{}, nil, zap.NewNop(), 3)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestCreateOrderInvalidAttachment(t *testing.T) {
	customers, addresses, items := happyFinders()

	uc := NewCreateOrderUseCase(customers, addresses, items, &mockSubmission{}, nil, zap.NewNop(), 3)

	req := validRequest()
	req.Attachments = []string{base64.StdEncoding.EncodeToString([]byte("ok")), "not-base64!!"}

	_, err := uc.CreateOrder(context.Background(), req)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestCreateOrderRetriesDeadlocks(t *testing.T) {
	customers, addresses, items := happyFinders()

	submission := &mockSubmission{}
	submission.submitFunc = func(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
		if submission.calls < 3 {
			return nil, &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
		}
		return &dto.OrderSubmissionResult{OrderID: "order-1"}, nil
	}

	uc := NewCreateOrderUseCase(customers, addresses, items, submission, nil, zap.NewNop(), 3)

	result, err := uc.CreateOrder(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "order-1", result.OrderID)
	assert.Equal(t, 3, submission.calls)
}

func TestCreateOrderDoesNotRetryOtherErrors(t *testing.T) {
	customers, addresses, items := happyFinders()

	submission := &mockSubmission{
		submitFunc: func(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
			return nil, errors.New("constraint violated")
		},
	}

	uc := NewCreateOrderUseCase(customers, addresses, items, submission, nil, zap.NewNop(), 3)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	require.Error(t, err)
	assert.Equal(t, 1, submission.calls)
}

func TestCreateOrderRetriesExhausted(t *testing.T) {
	customers, addresses, items := happyFinders()

	submission := &mockSubmission{
		submitFunc: func(ctx context.Context, draft *domain.OrderDraft) (*dto.OrderSubmissionResult, error) {
			return nil, &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout"}
		},
	}

	uc := NewCreateOrderUseCase(customers, addresses, items, submission, nil, zap.NewNop(), 2)

	_, err := uc.CreateOrder(context.Background(), validRequest())

	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
	assert.Equal(t, 2, submission.calls)
}
