package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acmedash/acmedash/internal/invoice"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CountInvoices(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SumInvoicesByStatus(ctx context.Context, status invoice.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) ListRevenue(ctx context.Context) ([]Revenue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Revenue), args.Error(1)
}

func (m *MockStorage) ListLatestInvoices(ctx context.Context, limit int) ([]LatestInvoice, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LatestInvoice), args.Error(1)
}

func TestService_CardData(t *testing.T) {
	t.Parallel()

	t.Run("joins all four reads", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		storage.On("CountInvoices", mock.Anything).Return(int64(13), nil)
		storage.On("SumInvoicesByStatus", mock.Anything, invoice.StatusPaid).Return(int64(105000), nil)
		storage.On("SumInvoicesByStatus", mock.Anything, invoice.StatusPending).Return(int64(1050), nil)
		storage.On("CountCustomers", mock.Anything).Return(int64(6), nil)

		cards, err := svc.CardData(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 13, cards.NumberOfInvoices)
		assert.Equal(t, 6, cards.NumberOfCustomers)
		assert.Equal(t, "$1,050.00", cards.TotalPaidInvoices)
		assert.Equal(t, "$10.50", cards.TotalPendingInvoices)
	})

	t.Run("one failing read fails the whole aggregate", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		storage.On("CountInvoices", mock.Anything).Return(int64(13), nil)
		storage.On("SumInvoicesByStatus", mock.Anything, invoice.StatusPaid).Return(int64(0), assert.AnError)
		storage.On("SumInvoicesByStatus", mock.Anything, invoice.StatusPending).Return(int64(1050), nil)
		storage.On("CountCustomers", mock.Anything).Return(int64(6), nil)

		cards, err := svc.CardData(context.Background())
		assert.ErrorIs(t, err, ErrDatabase)
		assert.Nil(t, cards)
	})
}

func TestService_Revenue(t *testing.T) {
	t.Parallel()

	storage := &MockStorage{}
	svc := NewService(storage)

	storage.On("ListRevenue", mock.Anything).Return([]Revenue{
		{Month: "Dec", Revenue: 4800},
		{Month: "Jan", Revenue: 2000},
		{Month: "Jul", Revenue: 3500},
		{Month: "Feb", Revenue: 1800},
	}, nil)

	rows, err := svc.Revenue(context.Background())
	require.NoError(t, err)

	months := make([]string, len(rows))
	for i, r := range rows {
		months[i] = r.Month
	}
	assert.Equal(t, []string{"Jan", "Feb", "Jul", "Dec"}, months)
}

func TestService_LatestInvoices(t *testing.T) {
	t.Parallel()

	storage := &MockStorage{}
	svc := NewService(storage)

	storage.On("ListLatestInvoices", mock.Anything, 5).Return([]LatestInvoice{
		{ID: uuid.New(), Name: "Amy Burns", AmountCents: 4500},
	}, nil)

	rows, err := svc.LatestInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "$45.00", rows[0].Amount)
}
