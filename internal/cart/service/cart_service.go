package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/cart/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/cart/repository"
	catalog "github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/domain"
	"go.uber.org/zap"
)

var ErrItemNotFound = errors.New("item not found in cart")

// ProductCatalog is the slice of the catalog the cart needs: resolving a
// product to snapshot its price at add time.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

type CartService struct {
	repo    repository.CartRepository
	catalog ProductCatalog
	log     *zap.Logger
}

func NewCartService(repo repository.CartRepository, catalog ProductCatalog, log *zap.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

// AddItem puts quantity units of a product into the customer's cart,
// creating the cart on first use. An existing line item keeps the unit
// price captured when it was first added; only its quantity grows.
func (s *CartService) AddItem(ctx context.Context, customerID, productID string, quantity int64) error {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	cart, err := s.repo.GetCart(ctx, customerID)
	if err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			return err
		}
		cart = &domain.Cart{CustomerID: customerID}
	}

	if item := cart.FindItem(productID); item != nil {
		item.Quantity += quantity
		cart.CartTotal += float64(quantity) * item.UnitPrice
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
		cart.CartTotal += float64(quantity) * product.Price
	}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}

func (s *CartService) GetCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	return s.repo.GetCart(ctx, customerID)
}

// UpdateItemQuantity sets the line item's quantity and adjusts the total
// by the delta against the snapshotted unit price. Quantity bounds are
// the caller's responsibility.
func (s *CartService) UpdateItemQuantity(ctx context.Context, customerID, productID string, newQuantity int64) error {
	cart, err := s.repo.GetCart(ctx, customerID)
	if err != nil {
		return err
	}

	item := cart.FindItem(productID)
	if item == nil {
		return ErrItemNotFound
	}

	cart.CartTotal += float64(newQuantity-item.Quantity) * item.UnitPrice
	item.Quantity = newQuantity

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}

// RemoveItem drops a line item. A cart left with no items is deleted
// rather than persisted empty.
func (s *CartService) RemoveItem(ctx context.Context, customerID, productID string) error {
	cart, err := s.repo.GetCart(ctx, customerID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrItemNotFound
	}

	removed := cart.Items[idx]
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.CartTotal -= float64(removed.Quantity) * removed.UnitPrice

	if len(cart.Items) == 0 {
		if err := s.repo.DeleteCart(ctx, customerID); err != nil {
			return fmt.Errorf("failed to delete emptied cart: %w", err)
		}
		s.log.Debug("cart emptied and deleted", zap.String("customer_id", customerID))
		return nil
	}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}

// ClearCart removes the cart document outright, used when a checkout
// completes.
func (s *CartService) ClearCart(ctx context.Context, customerID string) error {
	return s.repo.DeleteCart(ctx, customerID)
}
