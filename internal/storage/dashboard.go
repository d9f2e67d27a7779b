package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmedash/acmedash/internal/dashboard"
	"github.com/acmedash/acmedash/internal/invoice"
)

// DashboardRepository serves the aggregate reads behind the dashboard.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a dashboard repository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

func (r *DashboardRepository) CountInvoices(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

func (r *DashboardRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *DashboardRepository) SumInvoicesByStatus(ctx context.Context, status invoice.Status) (int64, error) {
	var sum int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = $1`,
		status,
	).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum invoices: %w", err)
	}
	return sum, nil
}

func (r *DashboardRepository) ListRevenue(ctx context.Context) ([]dashboard.Revenue, error) {
	rows, err := r.pool.Query(ctx, `SELECT month, revenue FROM revenue`)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue: %w", err)
	}
	defer rows.Close()

	var result []dashboard.Revenue
	for rows.Next() {
		var rev dashboard.Revenue
		if err := rows.Scan(&rev.Month, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue: %w", err)
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read revenue: %w", err)
	}

	return result, nil
}

func (r *DashboardRepository) ListLatestInvoices(ctx context.Context, limit int) ([]dashboard.LatestInvoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT i.id, c.name, c.email, c.image_url, i.amount
		 FROM invoices i
		 JOIN customers c ON c.id = i.customer_id
		 ORDER BY i.date DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest invoices: %w", err)
	}
	defer rows.Close()

	var result []dashboard.LatestInvoice
	for rows.Next() {
		var inv dashboard.LatestInvoice
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Email, &inv.ImageURL, &inv.AmountCents); err != nil {
			return nil, fmt.Errorf("failed to scan latest invoice: %w", err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read latest invoices: %w", err)
	}

	return result, nil
}
