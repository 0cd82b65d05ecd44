package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/utafrali/audiophile/internal/domain"
	"github.com/utafrali/audiophile/internal/service"
)

// Money is rendered as a fixed two-decimal string.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// --- Catalog views ---

type priceView struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type productView struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       priceView        `json:"price"`
	Features    json.RawMessage  `json:"features,omitempty"`
	BoxIncludes []domain.BoxItem `json:"boxIncludes"`
}

type categoryPageView struct {
	Category   *domain.Category         `json:"category"`
	Categories []domain.CategorySummary `json:"categories"`
}

type productPageView struct {
	Product    productView              `json:"product"`
	Categories []domain.CategorySummary `json:"categories"`
}

func newProductPageView(page *service.ProductPage) productPageView {
	p := page.Product
	box := p.BoxIncludes
	if box == nil {
		box = []domain.BoxItem{}
	}
	return productPageView{
		Product: productView{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       priceView{Amount: money(p.Price.Unit()), CurrencyCode: p.Price.CurrencyCode},
			Features:    p.Features,
			BoxIncludes: box,
		},
		Categories: page.Categories,
	}
}

// --- Cart views ---

type cartView struct {
	ID        string            `json:"id"`
	Currency  string            `json:"currency"`
	Items     []domain.LineItem `json:"items"`
	LineCount int               `json:"lineCount"`
	ItemCount int               `json:"itemCount"`
}

func newCartView(c *domain.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartView{
		ID:        c.ID,
		Currency:  c.Currency,
		Items:     items,
		LineCount: c.LineCount(),
		ItemCount: c.ItemCount(),
	}
}

type summaryLineView struct {
	ProductID     string          `json:"productId"`
	Title         string          `json:"title"`
	ShortTitle    string          `json:"shortTitle,omitempty"`
	ShortestTitle string          `json:"shortestTitle,omitempty"`
	Thumbnail     json.RawMessage `json:"thumbnail,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     string          `json:"unitPrice"`
	LineTotal     string          `json:"lineTotal"`
}

type totalsView struct {
	Total      string `json:"total"`
	Shipping   string `json:"shipping"`
	VAT        string `json:"vat"`
	GrandTotal string `json:"grandTotal"`
}

// summaryView carries totals only when the cart has priced lines, so an
// empty cart never renders as a zero total.
type summaryView struct {
	State    domain.SummaryState `json:"state"`
	Currency string              `json:"currency"`
	Lines    []summaryLineView   `json:"lines"`
	Totals   *totalsView         `json:"totals,omitempty"`
}

func newSummaryView(s domain.Summary) summaryView {
	v := summaryView{
		State:    s.State,
		Currency: s.Currency,
		Lines:    make([]summaryLineView, len(s.Lines)),
	}
	for i, line := range s.Lines {
		v.Lines[i] = summaryLineView{
			ProductID:     line.Product.ID,
			Title:         line.Product.Title,
			ShortTitle:    line.Product.ShortTitle,
			ShortestTitle: line.Product.ShortestTitle,
			Thumbnail:     line.Product.Thumbnail,
			Quantity:      line.Quantity,
			UnitPrice:     money(line.Product.Price.Unit()),
			LineTotal:     money(line.LineTotal),
		}
	}
	if !s.IsEmpty() {
		v.Totals = &totalsView{
			Total:      money(s.Total),
			Shipping:   money(s.Shipping),
			VAT:        money(s.VAT),
			GrandTotal: money(s.GrandTotal),
		}
	}
	return v
}

type checkoutView struct {
	Cart    cartView    `json:"cart"`
	Summary summaryView `json:"summary"`
}

func newCheckoutView(v *service.CheckoutView) checkoutView {
	return checkoutView{Cart: newCartView(v.Cart), Summary: newSummaryView(v.Summary)}
}

// --- Order views ---

type orderItemView struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type orderView struct {
	ID            string               `json:"id"`
	Currency      string               `json:"currency"`
	Items         []orderItemView      `json:"items"`
	Totals        totalsView           `json:"totals"`
	Customer      domain.Customer      `json:"customer"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type confirmationView struct {
	Message string    `json:"message"`
	Order   orderView `json:"order"`
}

const confirmationMessage = "Thank you for your order"

func newOrderView(o *domain.Order) orderView {
	items := make([]orderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemView{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
			LineTotal: money(item.LineTotal),
		}
	}
	return orderView{
		ID:       o.ID,
		Currency: o.Currency,
		Items:    items,
		Totals: totalsView{
			Total:      money(o.Total),
			Shipping:   money(o.Shipping),
			VAT:        money(o.VAT),
			GrandTotal: money(o.GrandTotal),
		},
		Customer:      o.Customer,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
}

type placedOrderView struct {
	OrderID         string `json:"orderId"`
	ConfirmationURL string `json:"confirmationUrl"`
}
