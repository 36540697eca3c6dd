package handlers

import (
	"net/http"

	"dreamvault/application/services"
	"dreamvault/domain/core/valueobjects"
	"dreamvault/pkg/auth"
	"dreamvault/pkg/common"
	pkgerrors "dreamvault/pkg/errors"
	"dreamvault/pkg/observability"
	"dreamvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxInsightBodyBytes = 64 << 10

// InsightHandler handles interpretation and horoscope HTTP requests.
// Generation runs behind a fixed delay; the handler blocks on the handle
// for the duration of the request.
type InsightHandler struct {
	insights *services.InsightService
	errors   *pkgerrors.ErrorHandler
	metrics  *observability.MetricsRecorder
	logger   *zap.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insights *services.InsightService, errorHandler *pkgerrors.ErrorHandler, metrics *observability.MetricsRecorder, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		insights: insights,
		errors:   errorHandler,
		metrics:  metrics,
		logger:   logger,
	}
}

// SaveInterpretationRequest represents the confirmation request body
type SaveInterpretationRequest struct {
	Text   string   `json:"text" validate:"required"`
	Themes []string `json:"themes,omitempty" validate:"omitempty,max=5,dive,max=50"`
}

// InterpretDream handles POST /dreams/{dreamID}/interpretation
func (h *InsightHandler) InterpretDream(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	dreamID, err := valueobjects.NewDreamIDFromString(chi.URLParam(r, "dreamID"))
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid dream ID"))
		return
	}

	handle, err := h.insights.InterpretDream(r.Context(), userCtx.UserID, dreamID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	insight, err := handle.Await(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("generation interrupted", err))
		return
	}

	h.metrics.Count(r.Context(), "InsightsGenerated", 1)
	common.RespondJSON(w, http.StatusOK, toInsightResponse(insight))
}

// SaveInterpretation handles PUT /dreams/{dreamID}/interpretation
func (h *InsightHandler) SaveInterpretation(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	dreamID, err := valueobjects.NewDreamIDFromString(chi.URLParam(r, "dreamID"))
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid dream ID"))
		return
	}

	var req SaveInterpretationRequest
	if err := common.ParseJSONBody(w, r, &req, maxInsightBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if err := h.insights.SaveInterpretation(r.Context(), userCtx.UserID, dreamID, req.Text, req.Themes); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"saved": dreamID.String(),
	})
}

// GenerateHoroscope handles GET /horoscope
func (h *InsightHandler) GenerateHoroscope(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	handle, err := h.insights.GenerateHoroscope(r.Context(), userCtx.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	insight, err := handle.Await(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("generation interrupted", err))
		return
	}

	h.metrics.Count(r.Context(), "HoroscopesGenerated", 1)
	common.RespondJSON(w, http.StatusOK, toInsightResponse(insight))
}
