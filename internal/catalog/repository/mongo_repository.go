package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements both ProductRepository and CategoryRepository
// on top of the products and categories collections.
type MongoRepository struct {
	products   *mongo.Collection
	categories *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
	}
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	_, err = m.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}

	return nil
}

func (m *MongoRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := m.products.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (m *MongoRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	err = m.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (m *MongoRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	cursor, err := m.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *MongoRepository) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	cursor, err := m.products.Find(ctx, bson.M{"category": oid})
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *MongoRepository) UpdateProduct(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":           product.Name,
		"price":          product.Price,
		"description":    product.Description,
		"category":       product.CategoryID,
		"stock_quantity": product.StockQuantity,
		"images":         product.Images,
		"updated_at":     time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Product
	err = m.products.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &updated, nil
}

func (m *MongoRepository) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	res, err := m.products.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *MongoRepository) DecrementStock(ctx context.Context, id string, quantity int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	// Conditional update: the filter only matches when enough stock is
	// available, so two concurrent checkouts cannot both pass a stale
	// stock check.
	filter := bson.M{
		"_id":            oid,
		"stock_quantity": bson.M{"$gte": quantity},
	}
	update := bson.M{
		"$inc": bson.M{"stock_quantity": -quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	res, err := m.products.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if res.MatchedCount == 0 {
		// Either the product vanished or stock was short; look once more
		// to tell the two apart.
		count, err := m.products.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("failed to check product existence: %w", err)
		}
		if count == 0 {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}

	return nil
}

func (m *MongoRepository) IncrementStock(ctx context.Context, id string, quantity int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	update := bson.M{
		"$inc": bson.M{"stock_quantity": quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	res, err := m.products.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *MongoRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := m.categories.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	category.ID = res.InsertedID.(primitive.ObjectID)
	return category, nil
}

func (m *MongoRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	var category domain.Category
	err = m.categories.FindOne(ctx, bson.M{"_id": oid}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (m *MongoRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cursor, err := m.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (m *MongoRepository) UpdateCategory(ctx context.Context, id string, category *domain.Category) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":            category.Name,
		"description":     category.Description,
		"parent_category": category.ParentCategory,
		"updated_at":      time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Category
	err = m.categories.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &updated, nil
}

func (m *MongoRepository) DeleteCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCategoryNotFound
	}

	res, err := m.categories.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
