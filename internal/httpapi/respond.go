package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/acmedash/acmedash/pkg/validator"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondValidation renders field-keyed validation errors the way form
// clients expect them: {"validationErrors": {"field": ["msg", ...]}}.
func respondValidation(w http.ResponseWriter, ve validator.ValidationErrors) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"validationErrors": ve.FieldMap(),
	})
}

// respondRedirect sends a see-other redirect carrying the target in the body
// too, so JSON clients can follow without parsing headers.
func respondRedirect(w http.ResponseWriter, r *http.Request, location string) {
	w.Header().Set("Location", location)
	respondJSON(w, http.StatusSeeOther, map[string]string{"redirect": location})
}
