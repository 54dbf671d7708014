package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the durable record of a login. A mirror entry lives in the
// session cache for fast "is this customer still logged in" checks; the
// durable record is the source of truth when the cache has no answer.
type Session struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CustomerID string             `bson:"customer_id" json:"customerId"`
	IsActive   bool               `bson:"is_active" json:"isActive"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	ExpiresAt  time.Time          `bson:"expires_at" json:"expiresAt"`
}
