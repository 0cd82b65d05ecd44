package domain

import "github.com/shopspring/decimal"

// SummaryState distinguishes an empty cart from a priced one.
type SummaryState string

const (
	SummaryEmpty  SummaryState = "empty"
	SummaryPriced SummaryState = "priced"
)

// Pricing holds the checkout constants.
type Pricing struct {
	Shipping        decimal.Decimal
	VATRate         decimal.Decimal
	DefaultCurrency string
}

// DefaultPricing is a flat 50 shipping fee and 20% VAT included in prices.
func DefaultPricing() Pricing {
	return Pricing{
		Shipping:        decimal.NewFromInt(50),
		VATRate:         decimal.RequireFromString("0.2"),
		DefaultCurrency: DefaultCurrency,
	}
}

// SummaryLine is a cart line joined with its live price.
type SummaryLine struct {
	Product   PricedProduct
	Quantity  int
	LineTotal decimal.Decimal
}

// Summary is the checkout total for a cart. When State is SummaryEmpty the
// money fields are zero and must not be displayed.
type Summary struct {
	State      SummaryState
	Currency   string
	Lines      []SummaryLine
	Missing    []string
	Total      decimal.Decimal
	Shipping   decimal.Decimal
	VAT        decimal.Decimal
	GrandTotal decimal.Decimal
}

// IsEmpty reports whether there is nothing to price.
func (s Summary) IsEmpty() bool {
	return s.State == SummaryEmpty
}

// ComputeSummary prices cart lines using the given products. Lines whose
// product is not among products are listed in Missing and excluded from the
// total. VAT is informational: it is already included in Total and is not
// added to GrandTotal.
func ComputeSummary(cart Cart, products []PricedProduct, p Pricing) Summary {
	byID := make(map[string]PricedProduct, len(products))
	for _, prod := range products {
		byID[prod.ID] = prod
	}

	var s Summary
	total := decimal.Zero
	for _, item := range cart.Items {
		prod, ok := byID[item.ProductID]
		if !ok {
			s.Missing = append(s.Missing, item.ProductID)
			continue
		}
		line := prod.Price.Unit().Mul(decimal.NewFromInt(int64(item.Quantity)))
		s.Lines = append(s.Lines, SummaryLine{Product: prod, Quantity: item.Quantity, LineTotal: line})
		total = total.Add(line)
	}

	if len(s.Lines) == 0 {
		s.State = SummaryEmpty
		s.Currency = p.DefaultCurrency
		return s
	}

	s.State = SummaryPriced
	s.Currency = s.Lines[0].Product.Price.CurrencyCode
	if s.Currency == "" {
		s.Currency = p.DefaultCurrency
	}
	s.Total = total
	s.Shipping = p.Shipping
	s.VAT = total.Mul(p.VATRate).Round(2)
	s.GrandTotal = total.Add(p.Shipping)
	return s
}
