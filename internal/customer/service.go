package customer

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/acmedash/acmedash/pkg/currency"
	"github.com/acmedash/acmedash/pkg/logger"
)

// ErrDatabase is the generic store failure surfaced to callers; the
// underlying cause is logged, never returned.
var ErrDatabase = errors.New("customer: database error")

// Storage defines the persistence operations the service needs. Search is
// delegated to a stored procedure in the database.
type Storage interface {
	ListCustomers(ctx context.Context) ([]Field, error)
	SearchCustomers(ctx context.Context, query string) ([]TableRow, error)
}

// Service exposes read access to customers.
type Service struct {
	storage Storage
	logger  *slog.Logger
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = log }
}

// NewService creates a customer service.
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

// List returns all customers ordered by name, for form dropdowns.
func (s *Service) List(ctx context.Context) ([]Field, error) {
	fields, err := s.storage.ListCustomers(ctx)
	if err != nil {
		s.logger.Error("failed to fetch customers",
			logger.Error(err),
			logger.Component("customer"),
		)
		return nil, ErrDatabase
	}
	return fields, nil
}

// Search returns the filtered customer table with pending and paid totals
// formatted as currency.
func (s *Service) Search(ctx context.Context, query string) ([]TableRow, error) {
	rows, err := s.storage.SearchCustomers(ctx, query)
	if err != nil {
		s.logger.Error("failed to search customers",
			slog.String("query", query),
			logger.Error(err),
			logger.Component("customer"),
		)
		return nil, ErrDatabase
	}

	for i := range rows {
		rows[i].TotalPending = currency.FormatUSD(rows[i].TotalPendingCents)
		rows[i].TotalPaid = currency.FormatUSD(rows[i].TotalPaidCents)
	}

	return rows, nil
}
