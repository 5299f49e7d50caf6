package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/service"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/httputil"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/validator"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// SelectAddressRequest picks a saved address by ID, or "new" for a blank
// address form.
type SelectAddressRequest struct {
	Selection string `json:"selection" validate:"required"`
}

// UpdateDraftRequest replaces the editable draft fields.
type UpdateDraftRequest struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	AddressLine   string `json:"address_line"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card upi cod"`
}

// ConfirmPaymentRequest resolves a pending card payment.
type ConfirmPaymentRequest struct {
	Approved bool `json:"approved"`
}

// StartCheckout handles POST /api/v1/checkout
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	session, err := h.service.Start(r.Context(), contact)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: session})
}

// GetActive handles GET /api/v1/checkout
func (h *CheckoutHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	session, err := h.service.Active(r.Context(), contact.UserID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// GetSession handles GET /api/v1/checkout/{sessionId}
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	session, err := h.service.Get(r.Context(), contact.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// SelectAddress handles PUT /api/v1/checkout/{sessionId}/address
func (h *CheckoutHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	var req SelectAddressRequest
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

	session, err := h.service.SelectAddress(r.Context(), contact.UserID, chi.URLParam(r, "sessionId"), req.Selection, contact)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// UpdateDraft handles PUT /api/v1/checkout/{sessionId}/draft
func (h *CheckoutHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	var req UpdateDraftRequest
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

	session, err := h.service.UpdateDraft(r.Context(), contact.UserID, chi.URLParam(r, "sessionId"), service.DraftUpdate{
		FullName:      req.FullName,
		Phone:         req.Phone,
		AddressLine:   req.AddressLine,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// Submit handles POST /api/v1/checkout/{sessionId}/submit
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	session, err := h.service.Submit(r.Context(), contact.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// ConfirmPayment handles POST /api/v1/checkout/{sessionId}/payment
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	var req ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	session, err := h.service.ConfirmPayment(r.Context(), contact.UserID, chi.URLParam(r, "sessionId"), req.Approved)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// Cancel handles DELETE /api/v1/checkout/{sessionId}
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	session, err := h.service.Cancel(r.Context(), contact.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}
