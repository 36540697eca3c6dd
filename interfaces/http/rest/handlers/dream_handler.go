package handlers

import (
	"net/http"

	"dreamvault/application/services"
	"dreamvault/domain/core/valueobjects"
	"dreamvault/pkg/auth"
	"dreamvault/pkg/common"
	pkgerrors "dreamvault/pkg/errors"
	"dreamvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxDreamBodyBytes bounds the accepted request body size
const maxDreamBodyBytes = 1 << 20

// DreamHandler handles journal entry HTTP requests
type DreamHandler struct {
	dreams *services.DreamService
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewDreamHandler creates a new dream handler
func NewDreamHandler(dreams *services.DreamService, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *DreamHandler {
	return &DreamHandler{
		dreams: dreams,
		errors: errorHandler,
		logger: logger,
	}
}

// CreateDreamRequest represents the request body for recording a dream
type CreateDreamRequest struct {
	Title string   `json:"title" validate:"required,max=200"`
	Body  string   `json:"body" validate:"required,max=20000"`
	Tags  []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Mood  string   `json:"mood,omitempty" validate:"omitempty,max=100"`
}

// UpdateDreamRequest represents a partial edit; absent fields stay as is
type UpdateDreamRequest struct {
	Title *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Body  *string   `json:"body,omitempty" validate:"omitempty,max=20000"`
	Tags  *[]string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Mood  *string   `json:"mood,omitempty" validate:"omitempty,max=100"`
}

// CreateDream handles POST /dreams
func (h *DreamHandler) CreateDream(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateDreamRequest
	if err := common.ParseJSONBody(w, r, &req, maxDreamBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	dream, err := h.dreams.CreateDream(r.Context(), userCtx.UserID, req.Title, req.Body, req.Tags, req.Mood)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, toDreamResponse(dream))
}

// GetDream handles GET /dreams/{dreamID}
func (h *DreamHandler) GetDream(w http.ResponseWriter, r *http.Request) {
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

	dream, err := h.dreams.GetDream(r.Context(), userCtx.UserID, dreamID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toDreamResponse(dream))
}

// ListDreams handles GET /dreams
func (h *DreamHandler) ListDreams(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	dreams, err := h.dreams.ListDreams(r.Context(), userCtx.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"dreams": toDreamResponses(dreams),
		"count":  len(dreams),
	})
}

// UpdateDream handles PUT /dreams/{dreamID}
func (h *DreamHandler) UpdateDream(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateDreamRequest
	if err := common.ParseJSONBody(w, r, &req, maxDreamBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	dream, err := h.dreams.UpdateDream(r.Context(), userCtx.UserID, dreamID, req.Title, req.Body, req.Tags, req.Mood)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toDreamResponse(dream))
}

// DeleteDream handles DELETE /dreams/{dreamID}
func (h *DreamHandler) DeleteDream(w http.ResponseWriter, r *http.Request) {
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

	if err := h.dreams.DeleteDream(r.Context(), userCtx.UserID, dreamID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": dreamID.String(),
	})
}
