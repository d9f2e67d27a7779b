package httpapi

import (
	"net/http"

	"github.com/acmedash/acmedash/internal/customer"
)

// CustomerHandler serves customer reads.
type CustomerHandler struct {
	customers *customer.Service
}

// NewCustomerHandler creates the customer handler.
func NewCustomerHandler(customers *customer.Service) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List handles GET /customers: the name-ordered dropdown fields.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	fields, err := h.customers.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers.")
		return
	}
	if fields == nil {
		fields = []customer.Field{}
	}

	respondJSON(w, http.StatusOK, fields)
}

// Search handles GET /customers/search?query=.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	rows, err := h.customers.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers.")
		return
	}
	if rows == nil {
		rows = []customer.TableRow{}
	}

	respondJSON(w, http.StatusOK, rows)
}
