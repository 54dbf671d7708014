package repository

import (
	"context"
	"errors"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/cart/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
)

// CartRepository persists one cart document per customer. Mutating
// operations write the full document; the service layer owns the line
// item arithmetic.
type CartRepository interface {
	GetCart(ctx context.Context, customerID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, customerID string) error
}
