package invoice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/acmedash/acmedash/pkg/currency"
	"github.com/acmedash/acmedash/pkg/logger"
	"github.com/acmedash/acmedash/pkg/validator"
)

// ItemsPerPage is the fixed page size of the invoice table.
const ItemsPerPage = 6

var (
	// ErrDatabase is the generic store failure surfaced to callers; the
	// underlying cause is logged, never returned.
	ErrDatabase = errors.New("invoice: database error")

	// ErrNotFound indicates the invoice does not exist.
	ErrNotFound = errors.New("invoice: not found")
)

// Storage defines the persistence operations the service needs. Search and
// counting are delegated to stored procedures in the database.
type Storage interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	GetInvoiceByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	SearchInvoices(ctx context.Context, query string, limit, offset int) ([]Row, error)
	CountInvoices(ctx context.Context, query string) (int, error)
}

// Input carries the validated-form fields for create and update. Amount is
// in dollars as typed by the user.
type Input struct {
	CustomerID string
	Amount     float64
	Status     string
}

// Service implements invoice CRUD with validation in front of every mutation.
type Service struct {
	storage Storage
	logger  *slog.Logger
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = log }
}

// NewService creates an invoice service.
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

func validateInput(in Input) error {
	return validator.Apply(
		validator.WithMessage(
			validator.ValidUUID("customerId", in.CustomerID),
			"Please select a customer.",
		),
		validator.WithMessage(
			validator.GreaterThan("amount", in.Amount, 0),
			"Please enter an amount greater than $0.",
		),
		validator.WithMessage(
			validator.OneOf("status", in.Status, Statuses),
			"Please select an invoice status.",
		),
	)
}

// Create validates the input and stores a new invoice dated today. The
// amount is persisted as integer cents.
func (s *Service) Create(ctx context.Context, in Input) (*Invoice, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	inv := &Invoice{
		ID:          uuid.New(),
		CustomerID:  uuid.MustParse(in.CustomerID),
		AmountCents: currency.ToCents(in.Amount),
		Status:      Status(in.Status),
		Date:        time.Now().Truncate(24 * time.Hour),
	}

	if err := s.storage.CreateInvoice(ctx, inv); err != nil {
		s.logger.Error("failed to create invoice",
			logger.Error(err),
			logger.Component("invoice"),
		)
		return nil, ErrDatabase
	}

	return inv, nil
}

// Update validates the input and rewrites customer, amount and status of an
// existing invoice.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) error {
	if err := validateInput(in); err != nil {
		return err
	}

	existing, err := s.storage.GetInvoiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("failed to load invoice",
			slog.String("invoice_id", id.String()),
			logger.Error(err),
			logger.Component("invoice"),
		)
		return ErrDatabase
	}

	existing.CustomerID = uuid.MustParse(in.CustomerID)
	existing.AmountCents = currency.ToCents(in.Amount)
	existing.Status = Status(in.Status)

	if err := s.storage.UpdateInvoice(ctx, existing); err != nil {
		s.logger.Error("failed to update invoice",
			slog.String("invoice_id", id.String()),
			logger.Error(err),
			logger.Component("invoice"),
		)
		return ErrDatabase
	}

	return nil
}

// Delete removes an invoice by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.DeleteInvoice(ctx, id); err != nil {
		s.logger.Error("failed to delete invoice",
			slog.String("invoice_id", id.String()),
			logger.Error(err),
			logger.Component("invoice"),
		)
		return ErrDatabase
	}
	return nil
}

// GetByID returns an invoice shaped for form prefill, with the amount
// converted back to dollars.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*EditView, error) {
	inv, err := s.storage.GetInvoiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to load invoice",
			slog.String("invoice_id", id.String()),
			logger.Error(err),
			logger.Component("invoice"),
		)
		return nil, ErrDatabase
	}

	return &EditView{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     currency.ToDollars(inv.AmountCents),
		Status:     inv.Status,
		Date:       inv.Date,
	}, nil
}

// List returns one page of the filtered invoice table with display-ready
// amounts. Pages start at 1.
func (s *Service) List(ctx context.Context, query string, page int) ([]Row, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * ItemsPerPage

	rows, err := s.storage.SearchInvoices(ctx, query, ItemsPerPage, offset)
	if err != nil {
		s.logger.Error("failed to fetch invoices",
			slog.String("query", query),
			logger.Error(err),
			logger.Component("invoice"),
		)
		return nil, ErrDatabase
	}

	for i := range rows {
		rows[i].Amount = currency.FormatUSD(rows[i].AmountCents)
	}

	return rows, nil
}

// Pages returns the number of pages the filtered table spans.
func (s *Service) Pages(ctx context.Context, query string) (int, error) {
	count, err := s.storage.CountInvoices(ctx, query)
	if err != nil {
		s.logger.Error("failed to count invoices",
			slog.String("query", query),
			logger.Error(err),
			logger.Component("invoice"),
		)
		return 0, ErrDatabase
	}

	return int(math.Ceil(float64(count) / float64(ItemsPerPage))), nil
}
