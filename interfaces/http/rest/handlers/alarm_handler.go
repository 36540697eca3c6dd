package handlers

import (
	"net/http"

	"dreamvault/application/services"
	"dreamvault/domain/core/entities"
	"dreamvault/domain/core/valueobjects"
	"dreamvault/pkg/auth"
	"dreamvault/pkg/common"
	pkgerrors "dreamvault/pkg/errors"
	"dreamvault/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxAlarmBodyBytes = 16 << 10

// AlarmHandler handles alarm rule HTTP requests.
//
// Mutations that commit but fail to synchronize the reminder scheduler
// respond 200 with a warning block rather than an error status; the rule
// state the client sees is authoritative either way.
type AlarmHandler struct {
	alarms *services.AlarmService
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewAlarmHandler creates a new alarm handler
func NewAlarmHandler(alarms *services.AlarmService, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *AlarmHandler {
	return &AlarmHandler{
		alarms: alarms,
		errors: errorHandler,
		logger: logger,
	}
}

// CreateAlarmRequest represents the request body for creating a rule
type CreateAlarmRequest struct {
	Hour    int    `json:"hour" validate:"gte=0,lte=23"`
	Minute  int    `json:"minute" validate:"gte=0,lte=59"`
	Label   string `json:"label,omitempty" validate:"omitempty,max=100"`
	Enabled bool   `json:"enabled"`
}

// UpdateAlarmRequest represents the request body for editing a rule
type UpdateAlarmRequest struct {
	Hour   int    `json:"hour" validate:"gte=0,lte=23"`
	Minute int    `json:"minute" validate:"gte=0,lte=59"`
	Label  string `json:"label,omitempty" validate:"omitempty,max=100"`
}

// ToggleAlarmRequest represents the request body for flipping the flag
type ToggleAlarmRequest struct {
	Enabled bool `json:"enabled"`
}

// CreateAlarm handles POST /alarms
func (h *AlarmHandler) CreateAlarm(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req CreateAlarmRequest
	if err := common.ParseJSONBody(w, r, &req, maxAlarmBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	alarm, err := h.alarms.CreateAlarm(r.Context(), userCtx.UserID, req.Hour, req.Minute, req.Label, req.Enabled)
	h.respond(w, r, http.StatusCreated, alarm, err)
}

// GetAlarm handles GET /alarms/{alarmID}
func (h *AlarmHandler) GetAlarm(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	alarmID, err := valueobjects.NewAlarmIDFromString(chi.URLParam(r, "alarmID"))
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid alarm ID"))
		return
	}

	alarm, err := h.alarms.GetAlarm(r.Context(), userCtx.UserID, alarmID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toAlarmResponse(alarm))
}

// ListAlarms handles GET /alarms
func (h *AlarmHandler) ListAlarms(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	alarms, err := h.alarms.ListAlarms(r.Context(), userCtx.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"alarms": toAlarmResponses(alarms),
		"count":  len(alarms),
	})
}

// UpdateAlarm handles PUT /alarms/{alarmID}
func (h *AlarmHandler) UpdateAlarm(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	alarmID, err := valueobjects.NewAlarmIDFromString(chi.URLParam(r, "alarmID"))
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid alarm ID"))
		return
	}

	var req UpdateAlarmRequest
	if err := common.ParseJSONBody(w, r, &req, maxAlarmBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	alarm, err := h.alarms.UpdateAlarm(r.Context(), userCtx.UserID, alarmID, req.Hour, req.Minute, req.Label)
	h.respond(w, r, http.StatusOK, alarm, err)
}

// ToggleAlarm handles PATCH /alarms/{alarmID}/enabled
func (h *AlarmHandler) ToggleAlarm(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	alarmID, err := valueobjects.NewAlarmIDFromString(chi.URLParam(r, "alarmID"))
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid alarm ID"))
		return
	}

	var req ToggleAlarmRequest
	if err := common.ParseJSONBody(w, r, &req, maxAlarmBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	alarm, err := h.alarms.ToggleAlarm(r.Context(), userCtx.UserID, alarmID, req.Enabled)
	h.respond(w, r, http.StatusOK, alarm, err)
}

// DeleteAlarm handles DELETE /alarms/{alarmID}
func (h *AlarmHandler) DeleteAlarm(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("authentication required"))
		return
	}

	alarmID, err := valueobjects.NewAlarmIDFromString(chi.URLParam(r, "alarmID"))
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid alarm ID"))
		return
	}

	if err := h.alarms.DeleteAlarm(r.Context(), userCtx.UserID, alarmID); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": alarmID.String(),
	})
}

// respond writes a mutation result: success, success-with-warning for a
// committed rule whose registration was rejected, or a real error.
func (h *AlarmHandler) respond(w http.ResponseWriter, r *http.Request, okStatus int, alarm *entities.Alarm, err error) {
	if err == nil {
		common.RespondJSON(w, okStatus, toAlarmResponse(alarm))
		return
	}

	if alarm != nil {
		if appErr := pkgerrors.GetAppError(err); appErr != nil &&
			(appErr.Type == pkgerrors.ErrorTypeRegistration || appErr.Type == pkgerrors.ErrorTypePermission) {
			h.logger.Warn("Alarm mutation committed with scheduler warning",
				zap.String("alarmID", alarm.ID().String()),
				zap.String("type", string(appErr.Type)),
			)
			common.RespondJSONWithWarning(w, okStatus, toAlarmResponse(alarm), string(appErr.Type), appErr.Message)
			return
		}
	}

	h.errors.Handle(w, r, err)
}
