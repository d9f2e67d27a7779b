package httpapi

import (
	"net/http"

	"github.com/acmedash/acmedash/internal/dashboard"
)

// DashboardHandler serves the dashboard aggregates.
type DashboardHandler struct {
	dashboard *dashboard.Service
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: svc}
}

// Cards handles GET /dashboard/cards. The aggregate either succeeds whole
// or fails whole; there are no partial cards.
func (h *DashboardHandler) Cards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.dashboard.CardData(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch card data.")
		return
	}

	respondJSON(w, http.StatusOK, cards)
}

// Revenue handles GET /dashboard/revenue.
func (h *DashboardHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboard.Revenue(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch revenue data.")
		return
	}
	if rows == nil {
		rows = []dashboard.Revenue{}
	}

	respondJSON(w, http.StatusOK, rows)
}

// LatestInvoices handles GET /dashboard/latest-invoices.
func (h *DashboardHandler) LatestInvoices(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboard.LatestInvoices(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch latest invoices.")
		return
	}
	if rows == nil {
		rows = []dashboard.LatestInvoice{}
	}

	respondJSON(w, http.StatusOK, rows)
}
