package domain

import "time"

// CartItem is one line of a cart. UnitPrice is captured when the item is
// first added and never refreshed from the catalog afterwards: the price
// a customer saw at add time is the price they pay.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Quantity  int64   `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unitPrice"`
}

// Cart is the single pending-purchase document of a customer. Items keep
// insertion order. CartTotal is maintained incrementally and must equal
// the sum of quantity*unit_price over Items after every mutation.
type Cart struct {
	ID         string     `bson:"_id,omitempty" json:"-"`
	CustomerID string     `bson:"customer_id" json:"customerId"`
	Items      []CartItem `bson:"products" json:"products"`
	CartTotal  float64    `bson:"cart_total" json:"cartTotal"`
	CreatedAt  time.Time  `bson:"created_at" json:"-"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"-"`
}

// FindItem returns a pointer into Items for the given product, or nil.
func (c *Cart) FindItem(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
