package handlers

import (
	"net/http"

	"dreamvault/application/services"
	"dreamvault/pkg/auth"
	"dreamvault/pkg/common"
	pkgerrors "dreamvault/pkg/errors"

	"go.uber.org/zap"
)

// ProfileHandler serves the profile statistics endpoint
type ProfileHandler struct {
	stats  *services.StatsService
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(stats *services.StatsService, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		stats:  stats,
		errors: errorHandler,
		logger: logger,
	}
}

// GetStats handles GET /profile/stats
func (h *ProfileHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	stats, err := h.stats.GetProfileStats(r.Context(), userCtx.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, stats)
}
