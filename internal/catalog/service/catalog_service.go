package service

import (
	"context"
	"sort"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/repository"
	"go.uber.org/zap"
)

// SortPriceLowToHigh is the only product sort the catalog supports.
const SortPriceLowToHigh = "priceLowToHigh"

type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		log:        log,
	}
}

func (s *CatalogService) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	s.log.Info("product added",
		zap.String("product_id", created.ID.Hex()),
		zap.String("name", created.Name))
	return created, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListProducts(ctx)
}

// FilterByCategory lists a category's products, optionally sorted by
// ascending price when sortBy is SortPriceLowToHigh.
func (s *CatalogService) FilterByCategory(ctx context.Context, categoryID, sortBy string) ([]domain.Product, error) {
	products, err := s.products.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if sortBy == SortPriceLowToHigh {
		sort.Slice(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	}

	return products, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	return s.products.UpdateProduct(ctx, id, product)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.DeleteProduct(ctx, id)
}

// ReserveStock takes quantity units out of the product's stock, failing
// with repository.ErrInsufficientStock when not enough units remain.
func (s *CatalogService) ReserveStock(ctx context.Context, id string, quantity int64) error {
	return s.products.DecrementStock(ctx, id, quantity)
}

// ReleaseStock puts previously reserved units back.
func (s *CatalogService) ReleaseStock(ctx context.Context, id string, quantity int64) error {
	return s.products.IncrementStock(ctx, id, quantity)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return s.categories.CreateCategory(ctx, category)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, category *domain.Category) (*domain.Category, error) {
	return s.categories.UpdateCategory(ctx, id, category)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.DeleteCategory(ctx, id)
}
