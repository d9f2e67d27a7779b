package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmedash/acmedash/internal/invoice"
	"github.com/acmedash/acmedash/pkg/pg"
)

// InvoiceRepository persists invoices. Filtered search and counting run
// through the search_invoices and count_invoices database functions.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates an invoice repository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

func (r *InvoiceRepository) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO invoices (id, customer_id, amount, status, date)
		 VALUES ($1, $2, $3, $4, $5)`,
		inv.ID, inv.CustomerID, inv.AmountCents, inv.Status, inv.Date,
	); err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET customer_id = $2, amount = $3, status = $4 WHERE id = $1`,
		inv.ID, inv.CustomerID, inv.AmountCents, inv.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) GetInvoiceByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.pool.QueryRow(ctx,
		`SELECT id, customer_id, amount, status, date FROM invoices WHERE id = $1`,
		id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &inv.Status, &inv.Date)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, invoice.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepository) SearchInvoices(ctx context.Context, query string, limit, offset int) ([]invoice.Row, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, customer_id, name, email, image_url, date, amount, status
		 FROM search_invoices($1, $2, $3)`,
		query, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search invoices: %w", err)
	}
	defer rows.Close()

	var result []invoice.Row
	for rows.Next() {
		var row invoice.Row
		if err := rows.Scan(
			&row.ID, &row.CustomerID, &row.Name, &row.Email,
			&row.ImageURL, &row.Date, &row.AmountCents, &row.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoice rows: %w", err)
	}

	return result, nil
}

func (r *InvoiceRepository) CountInvoices(ctx context.Context, query string) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx,
		`SELECT count_invoices($1)`, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}
