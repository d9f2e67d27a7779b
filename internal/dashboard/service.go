package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"

	"github.com/acmedash/acmedash/internal/invoice"
	"github.com/acmedash/acmedash/pkg/async"
	"github.com/acmedash/acmedash/pkg/currency"
	"github.com/acmedash/acmedash/pkg/logger"
)

// ErrDatabase is the generic store failure surfaced to callers; the
// underlying cause is logged, never returned.
var ErrDatabase = errors.New("dashboard: database error")

// latestInvoiceCount fixes the size of the newest-invoices panel.
const latestInvoiceCount = 5

var monthOrder = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Storage defines the aggregate reads behind the dashboard.
type Storage interface {
	CountInvoices(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	SumInvoicesByStatus(ctx context.Context, status invoice.Status) (int64, error)
	ListRevenue(ctx context.Context) ([]Revenue, error)
	ListLatestInvoices(ctx context.Context, limit int) ([]LatestInvoice, error)
}

// Service assembles the dashboard views.
type Service struct {
	storage Storage
	logger  *slog.Logger
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = log }
}

// NewService creates a dashboard service.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage: storage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CardData issues the four summary reads concurrently and joins them. Any
// single failure fails the whole aggregate; partial cards are never shown.
func (s *Service) CardData(ctx context.Context) (*CardData, error) {
	results, err := async.WaitAll(
		async.Async(ctx, s.storage.CountInvoices),
		async.Async(ctx, func(ctx context.Context) (int64, error) {
			return s.storage.SumInvoicesByStatus(ctx, invoice.StatusPaid)
		}),
		async.Async(ctx, func(ctx context.Context) (int64, error) {
			return s.storage.SumInvoicesByStatus(ctx, invoice.StatusPending)
		}),
		async.Async(ctx, s.storage.CountCustomers),
	)
	if err != nil {
		s.logger.Error("failed to fetch card data",
			logger.Error(err),
			logger.Component("dashboard"),
		)
		return nil, ErrDatabase
	}

	return &CardData{
		NumberOfInvoices:     int(results[0]),
		TotalPaidInvoices:    currency.FormatUSD(results[1]),
		TotalPendingInvoices: currency.FormatUSD(results[2]),
		NumberOfCustomers:    int(results[3]),
	}, nil
}

// Revenue returns the chart data sorted January through December.
func (s *Service) Revenue(ctx context.Context) ([]Revenue, error) {
	rows, err := s.storage.ListRevenue(ctx)
	if err != nil {
		s.logger.Error("failed to fetch revenue",
			logger.Error(err),
			logger.Component("dashboard"),
		)
		return nil, ErrDatabase
	}

	slices.SortFunc(rows, func(a, b Revenue) int {
		return slices.Index(monthOrder, a.Month) - slices.Index(monthOrder, b.Month)
	})

	return rows, nil
}

// LatestInvoices returns the five newest invoices with formatted amounts.
func (s *Service) LatestInvoices(ctx context.Context) ([]LatestInvoice, error) {
	rows, err := s.storage.ListLatestInvoices(ctx, latestInvoiceCount)
	if err != nil {
		s.logger.Error("failed to fetch latest invoices",
			logger.Error(err),
			logger.Component("dashboard"),
		)
		return nil, ErrDatabase
	}

	for i := range rows {
		rows[i].Amount = currency.FormatUSD(rows[i].AmountCents)
	}

	return rows, nil
}
