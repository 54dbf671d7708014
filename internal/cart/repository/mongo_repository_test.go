package repository

import (
	"context"
	"testing"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/cart/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestDB(t *testing.T) (*MongoRepository, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	database, err := db.ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(database)
	require.NoError(t, repo.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func TestGetCart_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	cart, err := repo.GetCart(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, cart)
}

func TestUpsertCart_CreateThenRead(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.Cart{
		CustomerID: "cust-1",
		Items: []domain.CartItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 9.99},
		},
		CartTotal: 19.98,
	}

	require.NoError(t, repo.UpsertCart(ctx, cart))

	fetched, err := repo.GetCart(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", fetched.CustomerID)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, cart.Items[0], fetched.Items[0])
	assert.InDelta(t, 19.98, fetched.CartTotal, 1e-9)
	assert.False(t, fetched.CreatedAt.IsZero())
}

func TestUpsertCart_ReplacesWholeDocument(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.Cart{
		CustomerID: "cust-1",
		Items: []domain.CartItem{
			{ProductID: "p1", Quantity: 1, UnitPrice: 5.0},
		},
		CartTotal: 5.0,
	}
	require.NoError(t, repo.UpsertCart(ctx, cart))

	cart.Items = append(cart.Items, domain.CartItem{ProductID: "p2", Quantity: 3, UnitPrice: 2.0})
	cart.CartTotal = 11.0
	require.NoError(t, repo.UpsertCart(ctx, cart))

	fetched, err := repo.GetCart(ctx, "cust-1")
	require.NoError(t, err)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, "p2", fetched.Items[1].ProductID)
	assert.InDelta(t, 11.0, fetched.CartTotal, 1e-9)
}

func TestUpsertCart_OneCartPerCustomer(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		cart := &domain.Cart{
			CustomerID: "cust-1",
			Items:      []domain.CartItem{{ProductID: "p1", Quantity: int64(i + 1), UnitPrice: 1.0}},
			CartTotal:  float64(i + 1),
		}
		require.NoError(t, repo.UpsertCart(ctx, cart))
	}

	fetched, err := repo.GetCart(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), fetched.Items[0].Quantity)
}

func TestDeleteCart(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.Cart{
		CustomerID: "cust-1",
		Items:      []domain.CartItem{{ProductID: "p1", Quantity: 1, UnitPrice: 5.0}},
		CartTotal:  5.0,
	}
	require.NoError(t, repo.UpsertCart(ctx, cart))

	require.NoError(t, repo.DeleteCart(ctx, "cust-1"))

	_, err := repo.GetCart(ctx, "cust-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestDeleteCart_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.DeleteCart(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
