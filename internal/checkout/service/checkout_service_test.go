package service

import (
	"context"
	"errors"
	"testing"

	authdomain "github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	cartdomain "github.com/abhijeet1717/ecommerce-backend-go/internal/cart/domain"
	cartrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/cart/repository"
	catalogdomain "github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/domain"
	catalogrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/repository"
	ordersdomain "github.com/abhijeet1717/ecommerce-backend-go/internal/orders/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/payment"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockCustomers struct {
	customer *authdomain.Customer
	err      error
}

func (m *mockCustomers) GetCustomer(context.Context, string) (*authdomain.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.customer, nil
}

type mockCarts struct {
	cart    *cartdomain.Cart
	getErr  error
	cleared bool
}

func (m *mockCarts) GetCart(context.Context, string) (*cartdomain.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.cart, nil
}

func (m *mockCarts) ClearCart(context.Context, string) error {
	m.cleared = true
	return nil
}

type stockProduct struct {
	product *catalogdomain.Product
	stock   int64
}

type mockStock struct {
	products map[string]*stockProduct
}

func (m *mockStock) GetProduct(_ context.Context, id string) (*catalogdomain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, catalogrepo.ErrProductNotFound
	}
	return p.product, nil
}

func (m *mockStock) ReserveStock(_ context.Context, id string, quantity int64) error {
	p, ok := m.products[id]
	if !ok {
		return catalogrepo.ErrProductNotFound
	}
	if p.stock < quantity {
		return catalogrepo.ErrInsufficientStock
	}
	p.stock -= quantity
	return nil
}

func (m *mockStock) ReleaseStock(_ context.Context, id string, quantity int64) error {
	p, ok := m.products[id]
	if !ok {
		return catalogrepo.ErrProductNotFound
	}
	p.stock += quantity
	return nil
}

type mockOrders struct {
	created *ordersdomain.Order
	err     error
}

func (m *mockOrders) CreateOrder(_ context.Context, customerID string, items []ordersdomain.OrderItem, total float64, method ordersdomain.PaymentMethod, address ordersdomain.ShippingAddress) (*ordersdomain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = &ordersdomain.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		Items:           items,
		OrderTotal:      total,
		PaymentMethod:   method,
		Status:          ordersdomain.OrderStatusPending,
		ShippingAddress: address,
	}
	return m.created, nil
}

type mockGateway struct {
	session *payment.HostedSession
	err     error
	lines   []payment.LineItem
}

func (m *mockGateway) CreateHostedSession(_ context.Context, items []payment.LineItem) (*payment.HostedSession, error) {
	m.lines = items
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

type mockSender struct {
	sent []string
	err  error
}

func (m *mockSender) SendOrderConfirmation(_ context.Context, to, ref string, _ float64) error {
	m.sent = append(m.sent, ref)
	return m.err
}

func (m *mockSender) SendPasswordResetOTP(context.Context, string, string) error {
	return m.err
}

type fixture struct {
	customers *mockCustomers
	carts     *mockCarts
	stock     *mockStock
	orders    *mockOrders
	gateway   *mockGateway
	sender    *mockSender
	svc       *CheckoutService
}

func newFixture() *fixture {
	f := &fixture{
		customers: &mockCustomers{customer: &authdomain.Customer{
			ID:    primitive.NewObjectID(),
			Email: "buyer@example.com",
		}},
		carts: &mockCarts{cart: &cartdomain.Cart{
			CustomerID: "cust-1",
			Items: []cartdomain.CartItem{
				{ProductID: "p1", Quantity: 2, UnitPrice: 10.0},
				{ProductID: "p2", Quantity: 1, UnitPrice: 30.0},
			},
			CartTotal: 50.0,
		}},
		stock: &mockStock{products: map[string]*stockProduct{
			"p1": {product: &catalogdomain.Product{Name: "Mug"}, stock: 5},
			"p2": {product: &catalogdomain.Product{Name: "Shirt"}, stock: 5},
		}},
		orders:  &mockOrders{},
		gateway: &mockGateway{session: &payment.HostedSession{ID: "cs_123", URL: "https://pay.example/cs_123"}},
		sender:  &mockSender{},
	}
	f.svc = NewCheckoutService(f.customers, f.carts, f.stock, f.orders, f.gateway, f.sender, zap.NewNop())
	return f
}

var testAddress = ordersdomain.ShippingAddress{
	HouseNo:  "12A",
	City:     "Pune",
	District: "Pune",
	Country:  "IN",
}

func TestCheckout_CODSuccess(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.Empty(t, result.RedirectURL)

	order := result.Order
	assert.Equal(t, ordersdomain.OrderStatusPending, order.Status)
	assert.Equal(t, ordersdomain.PaymentMethodCOD, order.PaymentMethod)
	assert.InDelta(t, 50.0, order.OrderTotal, 1e-9)
	require.Len(t, order.Items, 2)

	assert.Equal(t, int64(3), f.stock.products["p1"].stock)
	assert.Equal(t, int64(4), f.stock.products["p2"].stock)
	assert.True(t, f.carts.cleared)
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, order.ID.String(), f.sender.sent[0])
}

func TestCheckout_CardCreatesNoOrder(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCard, testAddress)
	require.NoError(t, err)
	assert.Nil(t, result.Order)
	assert.Equal(t, "https://pay.example/cs_123", result.RedirectURL)

	assert.Nil(t, f.orders.created)
	assert.True(t, f.carts.cleared)
	assert.Equal(t, int64(3), f.stock.products["p1"].stock)
	assert.Equal(t, int64(4), f.stock.products["p2"].stock)

	require.Len(t, f.gateway.lines, 2)
	assert.Equal(t, "Mug", f.gateway.lines[0].Name)
	assert.InDelta(t, 10.0, f.gateway.lines[0].UnitPrice, 1e-9)
	assert.Equal(t, int64(2), f.gateway.lines[0].Quantity)
}

func TestCheckout_MissingEmail(t *testing.T) {
	f := newFixture()
	f.customers.customer.Email = ""

	_, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	assert.ErrorIs(t, err, ErrMissingEmail)
	assert.False(t, f.carts.cleared)
}

func TestCheckout_CartNotFound(t *testing.T) {
	f := newFixture()
	f.carts.getErr = cartrepo.ErrCartNotFound

	_, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	assert.ErrorIs(t, err, cartrepo.ErrCartNotFound)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture()
	f.carts.cart.Items = nil

	_, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, f.orders.created)
}

func TestCheckout_InsufficientStockCompensatesEarlierItems(t *testing.T) {
	f := newFixture()
	f.stock.products["p2"].stock = 0

	_, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	assert.ErrorIs(t, err, catalogrepo.ErrInsufficientStock)

	// p1 was decremented before p2 failed; the units must come back.
	assert.Equal(t, int64(5), f.stock.products["p1"].stock)
	assert.Equal(t, int64(0), f.stock.products["p2"].stock)
	assert.Nil(t, f.orders.created)
	assert.False(t, f.carts.cleared)
}

func TestCheckout_ProductVanishedCompensatesEarlierItems(t *testing.T) {
	f := newFixture()
	delete(f.stock.products, "p2")

	_, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	assert.ErrorIs(t, err, catalogrepo.ErrProductNotFound)
	assert.Equal(t, int64(5), f.stock.products["p1"].stock)
}

func TestCheckout_InvalidPaymentMethodReleasesStock(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), "cust-1", "paypal", testAddress)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	assert.Equal(t, int64(5), f.stock.products["p1"].stock)
	assert.Equal(t, int64(5), f.stock.products["p2"].stock)
	assert.Nil(t, f.orders.created)
	assert.False(t, f.carts.cleared)
}

func TestCheckout_GatewayFailureReleasesStock(t *testing.T) {
	f := newFixture()
	f.gateway.err = errors.New("stripe down")
	f.gateway.session = nil

	_, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCard, testAddress)
	require.Error(t, err)

	assert.Equal(t, int64(5), f.stock.products["p1"].stock)
	assert.Equal(t, int64(5), f.stock.products["p2"].stock)
	assert.False(t, f.carts.cleared)
}

func TestCheckout_OrderCreationFailureReleasesStock(t *testing.T) {
	f := newFixture()
	f.orders.err = errors.New("postgres down")

	_, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	require.Error(t, err)

	assert.Equal(t, int64(5), f.stock.products["p1"].stock)
	assert.Equal(t, int64(5), f.stock.products["p2"].stock)
	assert.False(t, f.carts.cleared)
}

func TestCheckout_NotificationFailureDoesNotFailCheckout(t *testing.T) {
	f := newFixture()
	f.sender.err = errors.New("smtp rejected")

	result, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.True(t, f.carts.cleared)
}

func TestCheckout_SnapshotDecouplesFromCartMutation(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Checkout(context.Background(), "cust-1", ordersdomain.PaymentMethodCOD, testAddress)
	require.NoError(t, err)

	// Mutating the cart after checkout must not reach into the order.
	f.carts.cart.Items[0].Quantity = 99

	assert.Equal(t, int64(2), result.Order.Items[0].Quantity)
}
