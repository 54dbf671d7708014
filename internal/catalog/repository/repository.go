package repository

import (
	"context"
	"errors"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateName     = errors.New("name already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the interface for product storage operations.
// Consumers define this interface, not the MongoDB implementation.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id string, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// DecrementStock atomically decrements stock_quantity when at least
	// quantity units are available. Returns ErrInsufficientStock when the
	// conditional update matches nothing but the product exists.
	DecrementStock(ctx context.Context, id string, quantity int64) error

	// IncrementStock returns previously decremented units. Used to
	// compensate a partially applied reservation.
	IncrementStock(ctx context.Context, id string, quantity int64) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, id string, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
