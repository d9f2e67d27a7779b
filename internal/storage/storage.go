// Package storage implements the persistence layer on PostgreSQL via pgx.
// Repositories return raw driver errors translated onto domain sentinels;
// the generic-error policy lives in the services on top.
package storage

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles every repository over one connection pool.
type Repositories struct {
	Users     *UserRepository
	Invoices  *InvoiceRepository
	Customers *CustomerRepository
	Dashboard *DashboardRepository
}

// NewRepositories creates all repositories over the given pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(pool),
		Invoices:  NewInvoiceRepository(pool),
		Customers: NewCustomerRepository(pool),
		Dashboard: NewDashboardRepository(pool),
	}
}
