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

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// AddProductRequest is the JSON request body for adding a product.
type AddProductRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required,min=1,max=500"`
	Price    int64  `json:"price" validate:"gte=0"`
	ImageURL string `json:"image_url"`
	ImageAlt string `json:"image_alt"`
}

// ContainsResponse reports wishlist membership for one product.
type ContainsResponse struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	wishlist, err := h.service.Get(r.Context(), contact.UserID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}

// AddProduct handles POST /api/v1/wishlist/items
func (h *WishlistHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	var req AddProductRequest
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

	wishlist, err := h.service.Add(r.Context(), contact.UserID, service.AddProductInput{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		ImageAlt: req.ImageAlt,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}

// RemoveProduct handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	wishlist, err := h.service.Remove(r.Context(), contact.UserID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}

// ContainsProduct handles GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) ContainsProduct(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productId is required"},
		})
		return
	}

	contains, err := h.service.Contains(r.Context(), contact.UserID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ContainsResponse{
		ProductID:  productID,
		InWishlist: contains,
	}})
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	contact, _ := contactFromContext(r.Context())

	if err := h.service.Clear(r.Context(), contact.UserID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
