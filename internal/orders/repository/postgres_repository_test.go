package repository

import (
	"context"
	"testing"
	"time"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/orders/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "../../../migrations",
	}

	repo, err := NewRepository(creds)
	require.NoError(t, err)

	err = repo.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func newTestOrder(customerID string) *domain.Order {
	return &domain.Order{
		ID:            uuid.New(),
		CustomerID:    customerID,
		OrderTotal:    49.98,
		PaymentMethod: domain.PaymentMethodCOD,
		Status:        domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: 24.99},
		},
		ShippingAddress: domain.ShippingAddress{
			HouseNo:  "12A",
			City:     "Pune",
			District: "Pune",
			Country:  "IN",
		},
	}
}

func TestCreateOrder_Success(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := newTestOrder("cust-1")

	err := repo.CreateOrder(ctx, order)
	require.NoError(t, err)
	assert.False(t, order.CreatedAt.IsZero())
	assert.False(t, order.UpdatedAt.IsZero())

	fetched, err := repo.GetOrderForCustomer(ctx, "cust-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)
	assert.Equal(t, order.CustomerID, fetched.CustomerID)
	assert.Equal(t, order.OrderTotal, fetched.OrderTotal)
	assert.Equal(t, order.PaymentMethod, fetched.PaymentMethod)
	assert.Equal(t, order.Status, fetched.Status)
	assert.Equal(t, order.ShippingAddress, fetched.ShippingAddress)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, order.Items[0], fetched.Items[0])
}

func TestGetOrderForCustomer_ScopedToOwner(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := newTestOrder("cust-1")
	require.NoError(t, repo.CreateOrder(ctx, order))

	// Another customer probing the same id learns nothing beyond "not
	// found".
	_, err := repo.GetOrderForCustomer(ctx, "cust-2", order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderForCustomer_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetOrderForCustomer(context.Background(), "cust-1", uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrdersByCustomer_NewestFirst(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	first := newTestOrder("cust-1")
	require.NoError(t, repo.CreateOrder(ctx, first))
	time.Sleep(10 * time.Millisecond)
	second := newTestOrder("cust-1")
	require.NoError(t, repo.CreateOrder(ctx, second))

	other := newTestOrder("cust-2")
	require.NoError(t, repo.CreateOrder(ctx, other))

	orders, err := repo.ListOrdersByCustomer(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestListOrdersByCustomer_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	orders, err := repo.ListOrdersByCustomer(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestUpdateStatus(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := newTestOrder("cust-1")
	require.NoError(t, repo.CreateOrder(ctx, order))

	err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusShipped)
	require.NoError(t, err)

	fetched, err := repo.GetOrderForCustomer(ctx, "cust-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, fetched.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
