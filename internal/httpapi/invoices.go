package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/acmedash/acmedash/internal/invoice"
	"github.com/acmedash/acmedash/pkg/validator"
)

// InvoiceHandler serves invoice CRUD and the filtered table.
type InvoiceHandler struct {
	invoices *invoice.Service
}

// NewInvoiceHandler creates the invoice handler.
func NewInvoiceHandler(invoices *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// parseInput reads the invoice form. An unparseable amount is left at zero
// so the service rejects it with the user-facing amount message.
func parseInput(r *http.Request) invoice.Input {
	in := invoice.Input{
		CustomerID: r.PostFormValue("customerId"),
		Status:     r.PostFormValue("status"),
	}
	if amount, err := strconv.ParseFloat(r.PostFormValue("amount"), 64); err == nil {
		in.Amount = amount
	}
	return in
}

// List handles GET /invoices?query=&page=.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	rows, err := h.invoices.List(r.Context(), query, page)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoices.")
		return
	}
	if rows == nil {
		rows = []invoice.Row{}
	}

	respondJSON(w, http.StatusOK, rows)
}

// Pages handles GET /invoices/pages?query=.
func (h *InvoiceHandler) Pages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.invoices.Pages(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoices pages.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"pages": pages})
}

// Get handles GET /invoices/{id}.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Invoice not found.")
		return
	}

	view, err := h.invoices.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Invoice not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoice.")
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := h.invoices.Create(r.Context(), parseInput(r)); err != nil {
		if validator.IsValidationError(err) {
			respondValidation(w, validator.Extract(err))
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create invoice.")
		return
	}

	respondRedirect(w, r, "/dashboard/invoices")
}

// Update handles POST /invoices/{id}.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Invoice not found.")
		return
	}

	if err := h.invoices.Update(r.Context(), id, parseInput(r)); err != nil {
		switch {
		case validator.IsValidationError(err):
			respondValidation(w, validator.Extract(err))
		case errors.Is(err, invoice.ErrNotFound):
			respondError(w, http.StatusNotFound, "Invoice not found.")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update invoice.")
		}
		return
	}

	respondRedirect(w, r, "/dashboard/invoices")
}

// Delete handles POST /invoices/{id}/delete.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Invoice not found.")
		return
	}

	if err := h.invoices.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete invoice.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Invoice deleted successfully."})
}
