package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/notify"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/httputil"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/validator"
)

// NotificationHandler handles HTTP requests for notification endpoints.
type NotificationHandler struct {
	center *notify.Center
	logger *slog.Logger
}

// NewNotificationHandler creates a new notification HTTP handler.
func NewNotificationHandler(center *notify.Center, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		center: center,
		logger: logger,
	}
}

// EmitRequest is the JSON request body for emitting a notification.
type EmitRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity" validate:"omitempty,oneof=success error info warning"`
}

// ListActive handles GET /api/v1/notifications
func (h *NotificationHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.center.Active()})
}

// Emit handles POST /api/v1/notifications
func (h *NotificationHandler) Emit(w http.ResponseWriter, r *http.Request) {
	var req EmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.center.Emit(r.Context(), notify.Input{
		Title:       req.Title,
		Description: req.Description,
		Severity:    notify.Severity(req.Severity),
	})

	w.WriteHeader(http.StatusAccepted)
}

// Dismiss handles DELETE /api/v1/notifications/{notificationId}
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.center.Dismiss(chi.URLParam(r, "notificationId"))
	w.WriteHeader(http.StatusNoContent)
}
