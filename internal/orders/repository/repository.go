package repository

import (
	"context"
	"errors"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/orders/domain"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error

	// GetOrderForCustomer scopes the lookup to the owning customer; an
	// order that exists but belongs to someone else is reported as not
	// found, never as forbidden.
	GetOrderForCustomer(ctx context.Context, customerID string, id uuid.UUID) (*domain.Order, error)

	ListOrdersByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	Close() error
}
