package service

import (
	"context"
	"errors"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/orders/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/orders/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidStatus = errors.New("invalid order status")

type OrderService struct {
	repo repository.OrderRepository
	log  *zap.Logger
}

func NewOrderService(repo repository.OrderRepository, log *zap.Logger) *OrderService {
	return &OrderService{
		repo: repo,
		log:  log,
	}
}

// CreateOrder persists a new pending order and returns it with its
// generated id.
func (s *OrderService) CreateOrder(ctx context.Context, customerID string, items []domain.OrderItem, total float64, method domain.PaymentMethod, address domain.ShippingAddress) (*domain.Order, error) {
	order := &domain.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		Items:           items,
		OrderTotal:      total,
		PaymentMethod:   method,
		Status:          domain.OrderStatusPending,
		ShippingAddress: address,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", customerID),
		zap.Float64("order_total", total))
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, repository.ErrOrderNotFound
	}
	return s.repo.GetOrderForCustomer(ctx, customerID, id)
}

func (s *OrderService) ListOrders(ctx context.Context, customerID string) ([]*domain.Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return ErrInvalidStatus
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return repository.ErrOrderNotFound
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
