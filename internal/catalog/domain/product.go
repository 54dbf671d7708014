package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	CategoryID    primitive.ObjectID `bson:"category" json:"category"`
	StockQuantity int64              `bson:"stock_quantity" json:"stockQuantity"`
	Images        []string           `bson:"images,omitempty" json:"images,omitempty"`
	VendorID      primitive.ObjectID `bson:"vendor_id" json:"vendorId"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
