// Package seed loads the demo dataset: a dozen customers, their invoices
// and a year of revenue. Seeding is idempotent; rows are upserted so the
// endpoint can be hit repeatedly.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmedash/acmedash/pkg/logger"
)

// Seeder writes the fixture dataset into the database.
type Seeder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Option configures the Seeder.
type Option func(*Seeder)

func WithLogger(log *slog.Logger) Option {
	return func(s *Seeder) { s.logger = log }
}

// New creates a seeder over the given pool.
func New(pool *pgxpool.Pool, opts ...Option) *Seeder {
	s := &Seeder{
		pool:   pool,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run seeds customers, invoices and revenue in that order so invoice
// foreign keys resolve.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedCustomers(ctx); err != nil {
		return err
	}
	if err := s.seedInvoices(ctx); err != nil {
		return err
	}
	if err := s.seedRevenue(ctx); err != nil {
		return err
	}

	s.logger.Info("database seeded",
		slog.Int("customers", len(customers)),
		slog.Int("invoices", len(invoices)),
		slog.Int("revenue_months", len(revenue)),
		logger.Component("seed"),
	)
	return nil
}

func (s *Seeder) seedCustomers(ctx context.Context) error {
	for _, c := range customers {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO customers (id, name, email, image_url)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name, email = EXCLUDED.email, image_url = EXCLUDED.image_url`,
			c.ID, c.Name, c.Email, c.ImageURL,
		); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", c.Name, err)
		}
	}
	return nil
}

func (s *Seeder) seedInvoices(ctx context.Context) error {
	for _, inv := range invoices {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO invoices (id, customer_id, amount, status, date)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE
			 SET customer_id = EXCLUDED.customer_id, amount = EXCLUDED.amount,
			     status = EXCLUDED.status, date = EXCLUDED.date`,
			inv.ID, inv.CustomerID, inv.AmountCents, inv.Status, inv.Date,
		); err != nil {
			return fmt.Errorf("failed to seed invoice %s: %w", inv.ID, err)
		}
	}
	return nil
}

func (s *Seeder) seedRevenue(ctx context.Context) error {
	for _, rev := range revenue {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO revenue (month, revenue)
			 VALUES ($1, $2)
			 ON CONFLICT (month) DO UPDATE SET revenue = EXCLUDED.revenue`,
			rev.Month, rev.Revenue,
		); err != nil {
			return fmt.Errorf("failed to seed revenue %s: %w", rev.Month, err)
		}
	}
	return nil
}
