package http

import (
	"errors"
	"net/http"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/cart/repository"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/cart/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart *service.CartService
	log  *zap.Logger
}

func NewCartHandler(cart *service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

type AddItemRequestDTO struct {
	ProductID string `json:"productId" validate:"required"`
	// Omitted quantity means one unit.
	Quantity int64 `json:"quantity" validate:"omitempty,gt=0"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	customerID := customerIDFromContext(r.Context())
	if err := h.cart.AddItem(r.Context(), customerID, req.ProductID, req.Quantity); err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	cart, err := h.cart.GetCart(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.GetCart(r.Context(), customerIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customerID := customerIDFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")
	if err := h.cart.UpdateItemQuantity(r.Context(), customerID, productID, req.Quantity); err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	cart, err := h.cart.GetCart(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// RemoveItem drops one line item. Removing the last item deletes the
// cart, so the follow-up read may legitimately find nothing; that case
// responds with a plain confirmation instead of a cart body.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID := customerIDFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")
	if err := h.cart.RemoveItem(r.Context(), customerID, productID); err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	cart, err := h.cart.GetCart(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
			return
		}
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}
