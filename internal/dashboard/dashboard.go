package dashboard

import "github.com/google/uuid"

// CardData is the summary strip at the top of the dashboard. Totals are
// display-ready currency strings.
type CardData struct {
	NumberOfCustomers    int    `json:"numberOfCustomers"`
	NumberOfInvoices     int    `json:"numberOfInvoices"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

// Revenue is one month of the revenue chart.
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// LatestInvoice is one line of the five-newest-invoices panel.
type LatestInvoice struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ImageURL    string    `json:"image_url"`
	Amount      string    `json:"amount"`
	AmountCents int64     `json:"-"`
}
