package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentEMoney PaymentMethod = "e-money"
	PaymentCash   PaymentMethod = "cash"
)

// CheckoutDetails is the checkout form submission.
type CheckoutDetails struct {
	Name    string `json:"name" validate:"required,max=128"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=32"`
	Address string `json:"address" validate:"required,max=256"`
	Zip     string `json:"zip" validate:"required,max=16"`
	City    string `json:"city" validate:"required,max=128"`
	Country string `json:"country" validate:"required,max=128"`

	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=e-money cash"`
	EMoneyNumber  string        `json:"eMoneyNumber,omitempty" validate:"required_if=PaymentMethod e-money,max=32"`
	EMoneyPIN     string        `json:"eMoneyPin,omitempty" validate:"required_if=PaymentMethod e-money,max=8"`
}

// Customer is the billing and shipping part of an order. Payment secrets are
// never stored.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Zip     string `json:"zip"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// OrderItem is a priced snapshot of a cart line at checkout time.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Order is the immutable record created from a cart at checkout.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Currency      string          `json:"currency"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Shipping      decimal.Decimal `json:"shipping"`
	VAT           decimal.Decimal `json:"vat"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Customer      Customer        `json:"customer"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CustomerFrom copies the non-secret part of a checkout submission.
func CustomerFrom(d CheckoutDetails) Customer {
	return Customer{
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Address: d.Address,
		Zip:     d.Zip,
		City:    d.City,
		Country: d.Country,
	}
}

// ProductIDs returns the ordered product ids in line order.
func (o *Order) ProductIDs() []string {
	ids := make([]string, len(o.Items))
	for i, item := range o.Items {
		ids[i] = item.ProductID
	}
	return ids
}
