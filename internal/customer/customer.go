package customer

import "github.com/google/uuid"

// Customer is the stored record.
type Customer struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"image_url"`
}

// Field is the minimal shape used to populate the customer dropdown on
// invoice forms.
type Field struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TableRow is one line of the filtered customer table. Totals arrive from
// the store in cents and leave the service formatted as currency.
type TableRow struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	ImageURL          string    `json:"image_url"`
	TotalInvoices     int       `json:"total_invoices"`
	TotalPendingCents int64     `json:"-"`
	TotalPaidCents    int64     `json:"-"`
	TotalPending      string    `json:"total_pending"`
	TotalPaid         string    `json:"total_paid"`
}
