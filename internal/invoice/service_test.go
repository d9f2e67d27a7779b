package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acmedash/acmedash/pkg/validator"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateInvoice(ctx context.Context, inv *Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockStorage) UpdateInvoice(ctx context.Context, inv *Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockStorage) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) GetInvoiceByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Invoice), args.Error(1)
}

func (m *MockStorage) SearchInvoices(ctx context.Context, query string, limit, offset int) ([]Row, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Row), args.Error(1)
}

func (m *MockStorage) CountInvoices(ctx context.Context, query string) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

func validInput(customerID uuid.UUID) Input {
	return Input{
		CustomerID: customerID.String(),
		Amount:     10.5,
		Status:     "pending",
	}
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	t.Run("persists the amount as integer cents", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)
		customerID := uuid.New()

		storage.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(inv *Invoice) bool {
			return inv.AmountCents == 1050 &&
				inv.CustomerID == customerID &&
				inv.Status == StatusPending
		})).Return(nil)

		inv, err := svc.Create(context.Background(), validInput(customerID))
		require.NoError(t, err)
		assert.EqualValues(t, 1050, inv.AmountCents)
		storage.AssertExpectations(t)
	})

	t.Run("validation failure skips the store", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			in    Input
			field string
			msg   string
		}{
			{
				name:  "missing customer",
				in:    Input{CustomerID: "", Amount: 10, Status: "paid"},
				field: "customerId",
				msg:   "Please select a customer.",
			},
			{
				name:  "zero amount",
				in:    Input{CustomerID: uuid.NewString(), Amount: 0, Status: "paid"},
				field: "amount",
				msg:   "Please enter an amount greater than $0.",
			},
			{
				name:  "negative amount",
				in:    Input{CustomerID: uuid.NewString(), Amount: -5, Status: "paid"},
				field: "amount",
				msg:   "Please enter an amount greater than $0.",
			},
			{
				name:  "unknown status",
				in:    Input{CustomerID: uuid.NewString(), Amount: 10, Status: "draft"},
				field: "status",
				msg:   "Please select an invoice status.",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				storage := &MockStorage{}
				svc := NewService(storage)

				_, err := svc.Create(context.Background(), tt.in)
				require.Error(t, err)

				ve := validator.Extract(err)
				require.NotNil(t, ve)
				assert.Contains(t, ve.Get(tt.field), tt.msg)
				storage.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("store failure surfaces as generic database error", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		storage.On("CreateInvoice", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := svc.Create(context.Background(), validInput(uuid.New()))
		assert.ErrorIs(t, err, ErrDatabase)
		assert.NotContains(t, err.Error(), assert.AnError.Error())
	})
}

func TestService_Update(t *testing.T) {
	t.Parallel()

	t.Run("rewrites customer, amount and status", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		id := uuid.New()
		newCustomer := uuid.New()
		existing := &Invoice{
			ID:          id,
			CustomerID:  uuid.New(),
			AmountCents: 500,
			Status:      StatusPending,
			Date:        time.Now(),
		}
		storage.On("GetInvoiceByID", mock.Anything, id).Return(existing, nil)
		storage.On("UpdateInvoice", mock.Anything, mock.MatchedBy(func(inv *Invoice) bool {
			return inv.ID == id &&
				inv.CustomerID == newCustomer &&
				inv.AmountCents == 2000 &&
				inv.Status == StatusPaid
		})).Return(nil)

		err := svc.Update(context.Background(), id, Input{
			CustomerID: newCustomer.String(),
			Amount:     20,
			Status:     "paid",
		})
		require.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("missing invoice is reported as not found", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		id := uuid.New()
		storage.On("GetInvoiceByID", mock.Anything, id).Return(nil, ErrNotFound)

		err := svc.Update(context.Background(), id, validInput(uuid.New()))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("converts cents back to dollars for prefill", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		id := uuid.New()
		storage.On("GetInvoiceByID", mock.Anything, id).Return(&Invoice{
			ID:          id,
			AmountCents: 1050,
			Status:      StatusPaid,
		}, nil)

		view, err := svc.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.InDelta(t, 10.5, view.Amount, 0.001)
	})

	t.Run("not found passes through", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		id := uuid.New()
		storage.On("GetInvoiceByID", mock.Anything, id).Return(nil, ErrNotFound)

		_, err := svc.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	t.Parallel()

	t.Run("pages map to fixed-size offsets", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		storage.On("SearchInvoices", mock.Anything, "lee", ItemsPerPage, 12).Return([]Row{}, nil)

		_, err := svc.List(context.Background(), "lee", 3)
		require.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("formats amounts for display", func(t *testing.T) {
		t.Parallel()

		storage := &MockStorage{}
		svc := NewService(storage)

		storage.On("SearchInvoices", mock.Anything, "", ItemsPerPage, 0).Return([]Row{
			{AmountCents: 1050},
			{AmountCents: 105000},
		}, nil)

		rows, err := svc.List(context.Background(), "", 1)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "$10.50", rows[0].Amount)
		assert.Equal(t, "$1,050.00", rows[1].Amount)
	})
}

func TestService_Pages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count int
		pages int
	}{
		{count: 0, pages: 0},
		{count: 1, pages: 1},
		{count: 6, pages: 1},
		{count: 7, pages: 2},
		{count: 13, pages: 3},
	}

	for _, tt := range tests {
		storage := &MockStorage{}
		svc := NewService(storage)
		storage.On("CountInvoices", mock.Anything, "q").Return(tt.count, nil)

		pages, err := svc.Pages(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, tt.pages, pages, "count %d", tt.count)
	}
}

func TestService_Delete(t *testing.T) {
	t.Parallel()

	storage := &MockStorage{}
	svc := NewService(storage)

	id := uuid.New()
	storage.On("DeleteInvoice", mock.Anything, id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
	storage.AssertExpectations(t)
}
