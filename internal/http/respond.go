package http

import (
	"encoding/json"
	"errors"
	"net/http"

	authrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/auth/repository"
	authsvc "github.com/abhijeet1717/ecommerce-backend-go/internal/auth/service"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/token"
	cartrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/cart/repository"
	cartsvc "github.com/abhijeet1717/ecommerce-backend-go/internal/cart/service"
	catalogrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/repository"
	checkoutsvc "github.com/abhijeet1717/ecommerce-backend-go/internal/checkout/service"
	ordersrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/orders/repository"
	orderssvc "github.com/abhijeet1717/ecommerce-backend-go/internal/orders/service"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	// Headers are already written; nothing useful to do on encode failure.
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Message: message})
}

// handleServiceError maps the services' sentinel errors onto HTTP status
// codes. Anything unrecognized is a 500 with its detail kept in the logs.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, catalogrepo.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, catalogrepo.ErrCategoryNotFound):
		respondError(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, catalogrepo.ErrDuplicateName):
		respondError(w, http.StatusConflict, "Name already exists")
	case errors.Is(err, catalogrepo.ErrInsufficientStock):
		respondError(w, http.StatusBadRequest, "Insufficient stock for the product")
	case errors.Is(err, cartrepo.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "Cart not found")
	case errors.Is(err, cartsvc.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "Product not found in cart")
	case errors.Is(err, checkoutsvc.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, checkoutsvc.ErrMissingEmail):
		respondError(w, http.StatusBadRequest, "Customer email not found")
	case errors.Is(err, checkoutsvc.ErrInvalidPaymentMethod):
		respondError(w, http.StatusBadRequest, "Invalid payment method")
	case errors.Is(err, ordersrepo.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, orderssvc.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "Invalid order status")
	case errors.Is(err, authrepo.ErrCustomerNotFound):
		respondError(w, http.StatusNotFound, "Customer not found")
	case errors.Is(err, authrepo.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, authsvc.ErrInvalidOTP):
		respondError(w, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, authsvc.ErrSessionInactive):
		respondError(w, http.StatusForbidden, "You have been logged out ! Please login again")
	case errors.Is(err, token.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "Invalid token")
	default:
		log.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
