package repository

import (
	"context"
	"testing"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
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

func seedProduct(t *testing.T, repo *MongoRepository, name string, stock int64) *domain.Product {
	t.Helper()
	created, err := repo.CreateProduct(context.Background(), &domain.Product{
		Name:          name,
		Price:         19.99,
		CategoryID:    primitive.NewObjectID(),
		StockQuantity: stock,
		VendorID:      primitive.NewObjectID(),
	})
	require.NoError(t, err)
	return created
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedProduct(t, repo, "Mug", 10)

	_, err := repo.CreateProduct(context.Background(), &domain.Product{
		Name:          "Mug",
		Price:         5.0,
		CategoryID:    primitive.NewObjectID(),
		StockQuantity: 1,
		VendorID:      primitive.NewObjectID(),
	})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetProduct(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDecrementStock_Success(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := seedProduct(t, repo, "Mug", 10)

	err := repo.DecrementStock(ctx, product.ID.Hex(), 4)
	require.NoError(t, err)

	fetched, err := repo.GetProduct(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(6), fetched.StockQuantity)
}

func TestDecrementStock_ExactRemaining(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := seedProduct(t, repo, "Mug", 4)

	err := repo.DecrementStock(ctx, product.ID.Hex(), 4)
	require.NoError(t, err)

	fetched, err := repo.GetProduct(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), fetched.StockQuantity)
}

func TestDecrementStock_Insufficient(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := seedProduct(t, repo, "Mug", 3)

	err := repo.DecrementStock(ctx, product.ID.Hex(), 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// A failed decrement must leave stock untouched.
	fetched, err := repo.GetProduct(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(3), fetched.StockQuantity)
}

func TestDecrementStock_ProductNotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.DecrementStock(context.Background(), primitive.NewObjectID().Hex(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestIncrementStock_RestoresUnits(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := seedProduct(t, repo, "Mug", 5)

	require.NoError(t, repo.DecrementStock(ctx, product.ID.Hex(), 5))
	require.NoError(t, repo.IncrementStock(ctx, product.ID.Hex(), 5))

	fetched, err := repo.GetProduct(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(5), fetched.StockQuantity)
}

func TestListProductsByCategory(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	categoryID := primitive.NewObjectID()

	for _, name := range []string{"Mug", "Shirt"} {
		_, err := repo.CreateProduct(ctx, &domain.Product{
			Name:          name,
			Price:         9.99,
			CategoryID:    categoryID,
			StockQuantity: 1,
			VendorID:      primitive.NewObjectID(),
		})
		require.NoError(t, err)
	}
	seedProduct(t, repo, "Lamp", 1) // different category

	products, err := repo.ListProductsByCategory(ctx, categoryID.Hex())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCategoryLifecycle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created, err := repo.CreateCategory(ctx, &domain.Category{Name: "Kitchen"})
	require.NoError(t, err)

	_, err = repo.CreateCategory(ctx, &domain.Category{Name: "Kitchen"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	fetched, err := repo.GetCategory(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", fetched.Name)

	require.NoError(t, repo.DeleteCategory(ctx, created.ID.Hex()))
	_, err = repo.GetCategory(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
