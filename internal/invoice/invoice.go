package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Statuses lists every valid invoice status.
var Statuses = []string{string(StatusPending), string(StatusPaid)}

// Invoice is the stored record. Amount is integer cents; conversion to
// decimal currency happens only at the presentation boundary.
type Invoice struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	AmountCents int64
	Status      Status
	Date        time.Time
}

// Row is one line of the filtered invoice table, joined with customer
// details and carrying a display-ready amount.
type Row struct {
	ID          uuid.UUID `json:"id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ImageURL    string    `json:"image_url"`
	Date        time.Time `json:"date"`
	Amount      string    `json:"amount"`
	AmountCents int64     `json:"amount_cents"`
	Status      Status    `json:"status"`
}

// EditView is an invoice shaped for form prefill: amount back in dollars.
type EditView struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Amount     float64   `json:"amount"`
	Status     Status    `json:"status"`
	Date       time.Time `json:"date"`
}
