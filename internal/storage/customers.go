package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmedash/acmedash/internal/customer"
)

// CustomerRepository reads customers. Filtered search runs through the
// search_customers database function.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a customer repository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) ListCustomers(ctx context.Context) ([]customer.Field, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var result []customer.Field
	for rows.Next() {
		var field customer.Field
		if err := rows.Scan(&field.ID, &field.Name); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		result = append(result, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	return result, nil
}

func (r *CustomerRepository) SearchCustomers(ctx context.Context, query string) ([]customer.TableRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, image_url, total_invoices, total_pending, total_paid
		 FROM search_customers($1)`,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	defer rows.Close()

	var result []customer.TableRow
	for rows.Next() {
		var row customer.TableRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Email, &row.ImageURL,
			&row.TotalInvoices, &row.TotalPendingCents, &row.TotalPaidCents,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customer rows: %w", err)
	}

	return result, nil
}
