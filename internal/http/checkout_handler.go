package http

import (
	"net/http"

	checkoutsvc "github.com/abhijeet1717/ecommerce-backend-go/internal/checkout/service"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/orders/domain"
	orderssvc "github.com/abhijeet1717/ecommerce-backend-go/internal/orders/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout *checkoutsvc.CheckoutService
	orders   *orderssvc.OrderService
	log      *zap.Logger
}

func NewCheckoutHandler(checkout *checkoutsvc.CheckoutService, orders *orderssvc.OrderService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		orders:   orders,
		log:      log,
	}
}

type ShippingAddressDTO struct {
	HouseNo  string `json:"houseNo" validate:"required"`
	City     string `json:"city" validate:"required"`
	District string `json:"district" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

type CheckoutRequestDTO struct {
	PaymentMethod   string             `json:"paymentMethod" validate:"required"`
	ShippingAddress ShippingAddressDTO `json:"shippingAddress" validate:"required"`
}

// CheckoutCODResponseDTO is the cash-on-delivery confirmation body.
type CheckoutCODResponseDTO struct {
	Message       string               `json:"message"`
	CustomerID    string               `json:"customerId"`
	Products      []domain.OrderItem   `json:"products"`
	OrderID       string               `json:"orderId"`
	TotalAmount   float64              `json:"totalAmount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	OrderStatus   domain.OrderStatus   `json:"orderStatus"`
}

type CheckoutCardResponseDTO struct {
	StripeCheckoutURL string `json:"stripeCheckoutUrl"`
}

type UpdateStatusRequestDTO struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.checkout.Checkout(
		r.Context(),
		customerIDFromContext(r.Context()),
		domain.PaymentMethod(req.PaymentMethod),
		domain.ShippingAddress{
			HouseNo:  req.ShippingAddress.HouseNo,
			City:     req.ShippingAddress.City,
			District: req.ShippingAddress.District,
			Country:  req.ShippingAddress.Country,
		},
	)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	if result.RedirectURL != "" {
		respondJSON(w, http.StatusOK, CheckoutCardResponseDTO{StripeCheckoutURL: result.RedirectURL})
		return
	}

	order := result.Order
	respondJSON(w, http.StatusOK, CheckoutCODResponseDTO{
		Message:       "Order placed successfully",
		CustomerID:    order.CustomerID,
		Products:      order.Items,
		OrderID:       order.ID.String(),
		TotalAmount:   order.OrderTotal,
		PaymentMethod: order.PaymentMethod,
		OrderStatus:   order.Status,
	})
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), customerIDFromContext(r.Context()), chi.URLParam(r, "order_id"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), customerIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *CheckoutHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "order_id"), req.Status); err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}
