package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store keeps login state in two places: a durable sessions collection
// and a Redis mirror keyed by customer id. Login writes both, logout
// invalidates both. A crash between the two writes leaves a stale cache
// entry until its TTL runs out; that window is accepted rather than
// guarded by a transaction.
type Store struct {
	sessions *mongo.Collection
	cache    *redis.Client
	log      *zap.Logger
	sfg      singleflight.Group // dedupes durable-store fallbacks per customer
}

func NewStore(db *mongo.Database, cache *redis.Client, log *zap.Logger) *Store {
	return &Store{
		sessions: db.Collection("sessions"),
		cache:    cache,
		log:      log,
	}
}

func cacheKey(customerID string) string {
	return fmt.Sprintf("session:%s", customerID)
}

// Create records a fresh login in the durable store and mirrors it into
// the cache. The durable write must succeed; a cache write failure is
// logged and tolerated (the fallback path repairs it on first read).
func (s *Store) Create(ctx context.Context, customerID string, expiresAt time.Time) error {
	sess := domain.Session{
		CustomerID: customerID,
		IsActive:   true,
		CreatedAt:  time.Now(),
		ExpiresAt:  expiresAt,
	}

	if _, err := s.sessions.InsertOne(ctx, sess); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := s.prime(ctx, sess); err != nil {
		s.log.Warn("failed to mirror session into cache",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}

	return nil
}

// Invalidate marks the active session inactive and removes the cache
// mirror. Both stores are written; cache failure is logged only.
func (s *Store) Invalidate(ctx context.Context, customerID string) error {
	filter := bson.M{"customer_id": customerID, "is_active": true}
	update := bson.M{"$set": bson.M{"is_active": false}}

	if _, err := s.sessions.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}

	if err := s.cache.Del(ctx, cacheKey(customerID)).Err(); err != nil {
		s.log.Warn("failed to remove session from cache",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}

	return nil
}

// IsActive answers the fast logged-in check. The cache is authoritative
// when it has an entry; on a miss the durable store decides and the
// cache is re-primed. Concurrent misses for the same customer collapse
// into one durable lookup.
func (s *Store) IsActive(ctx context.Context, customerID string) (bool, error) {
	exists, err := s.cache.Exists(ctx, cacheKey(customerID)).Result()
	if err == nil && exists > 0 {
		return true, nil
	}
	if err != nil {
		s.log.Warn("session cache lookup failed, falling back to durable store",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}

	v, err, _ := s.sfg.Do(customerID, func() (interface{}, error) {
		var sess domain.Session
		filter := bson.M{
			"customer_id": customerID,
			"is_active":   true,
			"expires_at":  bson.M{"$gt": time.Now()},
		}
		findErr := s.sessions.FindOne(ctx, filter).Decode(&sess)
		if findErr != nil {
			if errors.Is(findErr, mongo.ErrNoDocuments) {
				return false, nil
			}
			return false, fmt.Errorf("failed to look up session: %w", findErr)
		}

		if primeErr := s.prime(ctx, sess); primeErr != nil {
			s.log.Warn("failed to re-prime session cache",
				zap.String("customer_id", customerID),
				zap.Error(primeErr))
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}

	return v.(bool), nil
}

func (s *Store) prime(ctx context.Context, sess domain.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey(sess.CustomerID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// CreateIndexes sets up the TTL index that reaps expired sessions.
func (s *Store) CreateIndexes(ctx context.Context) error {
	_, err := s.sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "is_active", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}
