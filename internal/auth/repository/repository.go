package repository

import (
	"context"
	"errors"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicateEmail   = errors.New("email already registered")
)

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateProfile(ctx context.Context, id, fullName, phone string) (*domain.Customer, error)
	UpdatePassword(ctx context.Context, email, hashedPassword string) error
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}
