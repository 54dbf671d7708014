package service

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	cartdomain "github.com/abhijeet1717/ecommerce-backend-go/internal/cart/domain"
	catalogdomain "github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/domain"
	ordersdomain "github.com/abhijeet1717/ecommerce-backend-go/internal/orders/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/notification"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/payment"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingEmail         = errors.New("customer email not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// CustomerDirectory resolves the checkout customer. The confirmation
// email address comes from here.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id string) (*authdomain.Customer, error)
}

// CartStore is the cart surface checkout consumes: read it, then clear
// it once the checkout committed.
type CartStore interface {
	GetCart(ctx context.Context, customerID string) (*cartdomain.Cart, error)
	ClearCart(ctx context.Context, customerID string) error
}

// StockKeeper reserves stock for a checkout and releases it again when a
// later step fails.
type StockKeeper interface {
	GetProduct(ctx context.Context, id string) (*catalogdomain.Product, error)
	ReserveStock(ctx context.Context, id string, quantity int64) error
	ReleaseStock(ctx context.Context, id string, quantity int64) error
}

// OrderCreator persists the pending order on the cash-on-delivery branch.
type OrderCreator interface {
	CreateOrder(ctx context.Context, customerID string, items []ordersdomain.OrderItem, total float64, method ordersdomain.PaymentMethod, address ordersdomain.ShippingAddress) (*ordersdomain.Order, error)
}

// Result is what a completed checkout hands back to the transport layer.
// Exactly one of Order and RedirectURL is set: cash-on-delivery produces
// an order, card produces a redirect to the hosted payment session.
type Result struct {
	Order       *ordersdomain.Order
	RedirectURL string
}

type CheckoutService struct {
	customers CustomerDirectory
	carts     CartStore
	stock     StockKeeper
	orders    OrderCreator
	gateway   payment.Gateway
	mailer    notification.Sender
	log       *zap.Logger
}

func NewCheckoutService(
	customers CustomerDirectory,
	carts CartStore,
	stock StockKeeper,
	orders OrderCreator,
	gateway payment.Gateway,
	mailer notification.Sender,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		customers: customers,
		carts:     carts,
		stock:     stock,
		orders:    orders,
		gateway:   gateway,
		mailer:    mailer,
		log:       log,
	}
}

// Checkout turns the customer's cart into either a pending order
// (cash-on-delivery) or a hosted payment session (card).
//
// Stock is reserved item by item with a conditional decrement, so two
// concurrent checkouts can never both take the last unit. The loop is
// compensated: when a later item cannot be reserved, units already taken
// for earlier items are released before the error is returned. The card
// branch creates no order record; the order materializes only after the
// payment provider confirms.
func (s *CheckoutService) Checkout(ctx context.Context, customerID string, method ordersdomain.PaymentMethod, address ordersdomain.ShippingAddress) (*Result, error) {
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.Email == "" {
		return nil, ErrMissingEmail
	}

	cart, err := s.carts.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Snapshot the cart lines; later cart mutations must not bleed into
	// the order.
	items := make([]ordersdomain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, ordersdomain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	products, err := s.reserve(ctx, items)
	if err != nil {
		return nil, err
	}

	switch method {
	case ordersdomain.PaymentMethodCard:
		return s.checkoutCard(ctx, customer, items, products, cart.CartTotal)
	case ordersdomain.PaymentMethodCOD:
		return s.checkoutCOD(ctx, customer, items, cart.CartTotal, address)
	default:
		s.release(ctx, items, len(items))
		return nil, ErrInvalidPaymentMethod
	}
}

// reserve decrements stock for every item in order, resolving each
// product first. On any failure the decrements already applied are
// rolled back.
func (s *CheckoutService) reserve(ctx context.Context, items []ordersdomain.OrderItem) ([]*catalogdomain.Product, error) {
	products := make([]*catalogdomain.Product, 0, len(items))
	for i, item := range items {
		product, err := s.stock.GetProduct(ctx, item.ProductID)
		if err != nil {
			s.release(ctx, items, i)
			return nil, err
		}

		if err := s.stock.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.release(ctx, items, i)
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// release returns the units reserved for items[0:n]. Failures here are
// logged only; the caller is already unwinding a more important error.
func (s *CheckoutService) release(ctx context.Context, items []ordersdomain.OrderItem, n int) {
	for _, item := range items[:n] {
		if err := s.stock.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.Error("failed to release reserved stock",
				zap.String("product_id", item.ProductID),
				zap.Int64("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

func (s *CheckoutService) checkoutCard(ctx context.Context, customer *authdomain.Customer, items []ordersdomain.OrderItem, products []*catalogdomain.Product, total float64) (*Result, error) {
	lines := make([]payment.LineItem, 0, len(items))
	for i, item := range items {
		lines = append(lines, payment.LineItem{
			Name:        products[i].Name,
			Description: products[i].Description,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	sess, err := s.gateway.CreateHostedSession(ctx, lines)
	if err != nil {
		s.release(ctx, items, len(items))
		return nil, fmt.Errorf("failed to start card payment: %w", err)
	}

	customerID := customer.ID.Hex()
	if err := s.carts.ClearCart(ctx, customerID); err != nil {
		// The payment session already exists; the customer must not be
		// blocked from paying because of a dangling cart document.
		s.log.Error("failed to clear cart after card checkout",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}

	s.notify(ctx, customer.Email, sess.ID, total)

	s.log.Info("card checkout redirected to payment session",
		zap.String("customer_id", customerID),
		zap.String("session_id", sess.ID))
	return &Result{RedirectURL: sess.URL}, nil
}

func (s *CheckoutService) checkoutCOD(ctx context.Context, customer *authdomain.Customer, items []ordersdomain.OrderItem, total float64, address ordersdomain.ShippingAddress) (*Result, error) {
	customerID := customer.ID.Hex()

	order, err := s.orders.CreateOrder(ctx, customerID, items, total, ordersdomain.PaymentMethodCOD, address)
	if err != nil {
		s.release(ctx, items, len(items))
		return nil, err
	}

	s.notify(ctx, customer.Email, order.ID.String(), total)

	if err := s.carts.ClearCart(ctx, customerID); err != nil {
		// The order exists; a leftover cart is an annoyance, not a
		// failed checkout.
		s.log.Error("failed to clear cart after cod checkout",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}

	return &Result{Order: order}, nil
}

// notify sends the confirmation mail. Delivery failures never fail the
// checkout.
func (s *CheckoutService) notify(ctx context.Context, email, ref string, total float64) {
	if err := s.mailer.SendOrderConfirmation(ctx, email, ref, total); err != nil {
		s.log.Warn("failed to send order confirmation",
			zap.String("email", email),
			zap.String("ref", ref),
			zap.Error(err))
	}
}
