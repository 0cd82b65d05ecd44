package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is used for new carts and when no priced product is known.
const DefaultCurrency = "USD"

// Cart is a user's pre-checkout collection of line items. Product ids are
// unique across Items and every quantity is positive.
type Cart struct {
	ID        string     `json:"id"`
	Currency  string     `json:"currency"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// LineItem is a (product id, quantity) pair within a cart.
type LineItem struct {
	ProductID string `json:"productId" validate:"required,max=128"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=999"`
}

// NewCart returns an empty cart with a fresh id.
func NewCart(currency string, now time.Time) *Cart {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Cart{
		ID:        uuid.New().String(),
		Currency:  currency,
		Items:     []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItemIndex returns the index of productID in Items, or -1.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Quantity returns the quantity held for productID (0 when absent).
func (c *Cart) Quantity(productID string) int {
	if i := c.FindItemIndex(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// LineCount is the number of distinct lines, which the cart badge shows.
func (c *Cart) LineCount() int {
	return len(c.Items)
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ProductIDs returns the product ids in line order.
func (c *Cart) ProductIDs() []string {
	ids := make([]string, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.ProductID
	}
	return ids
}
