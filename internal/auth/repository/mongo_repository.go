package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	customers *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		customers: db.Collection("customers"),
	}
}

func (m *MongoRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	if customer.Role == "" {
		customer.Role = domain.RoleCustomer
	}

	res, err := m.customers.InsertOne(ctx, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	customer.ID = res.InsertedID.(primitive.ObjectID)
	return customer, nil
}

func (m *MongoRepository) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	var customer domain.Customer
	err = m.customers.FindOne(ctx, bson.M{"_id": oid}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &customer, nil
}

func (m *MongoRepository) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var customer domain.Customer
	err := m.customers.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}

	return &customer, nil
}

func (m *MongoRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	cursor, err := m.customers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []domain.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

func (m *MongoRepository) UpdateProfile(ctx context.Context, id, fullName, phone string) (*domain.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	set := bson.M{
		"full_name":  fullName,
		"updated_at": time.Now(),
	}
	if phone != "" {
		set["phone"] = phone
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Customer
	err = m.customers.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &updated, nil
}

func (m *MongoRepository) UpdatePassword(ctx context.Context, email, hashedPassword string) error {
	update := bson.M{"$set": bson.M{
		"password":   hashedPassword,
		"updated_at": time.Now(),
	}}

	res, err := m.customers.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (m *MongoRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	update := bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Customer
	err = m.customers.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return &updated, nil
}

func (m *MongoRepository) DeleteCustomer(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCustomerNotFound
	}

	res, err := m.customers.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}
	return nil
}
