package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Price is a product's unit price as projected from the content repository.
// A null or missing amount fails validation instead of reading as zero.
type Price struct {
	Amount       decimal.NullDecimal `json:"amount" validate:"required,gte=0"`
	CurrencyCode string              `json:"currencyCode" validate:"required,len=3"`
}

// NewPrice returns a price with a known amount.
func NewPrice(amount decimal.Decimal, currencyCode string) Price {
	return Price{Amount: decimal.NewNullDecimal(amount), CurrencyCode: currencyCode}
}

// Unit returns the unit amount. A price that passed validation always has one.
func (p Price) Unit() decimal.Decimal {
	return p.Amount.Decimal
}

// CategorySummary is an entry of the category navigation list.
type CategorySummary struct {
	Title     string          `json:"title" validate:"required"`
	Slug      string          `json:"slug" validate:"required"`
	Thumbnail json.RawMessage `json:"thumbnail,omitempty"`
}

// CategoryProduct is a product as listed on a category page.
type CategoryProduct struct {
	Title        string          `json:"title" validate:"required"`
	Slug         string          `json:"slug" validate:"required"`
	Description  string          `json:"description"`
	IsNew        bool            `json:"isNew"`
	PreviewImage json.RawMessage `json:"previewImage,omitempty"`
}

// Category is a category page: its title and products ordered by catalog order.
type Category struct {
	Title    string            `json:"title" validate:"required"`
	Products []CategoryProduct `json:"products" validate:"dive"`
}

// Product is a product detail page.
type Product struct {
	ID          string          `json:"_id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       Price           `json:"price"`
	Features    json.RawMessage `json:"features,omitempty"`
	BoxIncludes []BoxItem       `json:"boxIncludes" validate:"dive"`
}

// BoxItem is one "in the box" entry of a product.
type BoxItem struct {
	Item     string `json:"item" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// PricedProduct is the projection used to price cart lines.
type PricedProduct struct {
	ID            string          `json:"_id" validate:"required"`
	Title         string          `json:"title" validate:"required"`
	ShortTitle    string          `json:"shortTitle,omitempty"`
	ShortestTitle string          `json:"shortestTitle,omitempty"`
	Thumbnail     json.RawMessage `json:"thumbnailImageNew,omitempty"`
	Price         Price           `json:"price"`
}
