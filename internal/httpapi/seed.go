package httpapi

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/acmedash/acmedash/internal/seed"
	"github.com/acmedash/acmedash/pkg/logger"
)

// SeedHandler exposes GET /seed for loading the demo dataset.
type SeedHandler struct {
	seeder *seed.Seeder
	logger *slog.Logger
}

// NewSeedHandler creates the seed handler.
func NewSeedHandler(seeder *seed.Seeder, log *slog.Logger) *SeedHandler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SeedHandler{seeder: seeder, logger: log}
}

// Seed handles GET /seed.
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.seeder.Run(r.Context()); err != nil {
		h.logger.Error("seeding failed",
			logger.Error(err),
			logger.Component("httpapi.seed"),
		)
		respondError(w, http.StatusInternalServerError, "Failed to seed database.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Database seeded"})
}
