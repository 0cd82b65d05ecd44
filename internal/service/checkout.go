package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/audiophile/internal/domain"
	"github.com/utafrali/audiophile/internal/event"
	"github.com/utafrali/audiophile/internal/repository"
	apperrors "github.com/utafrali/audiophile/pkg/errors"
	"github.com/utafrali/audiophile/pkg/validator"
)

// CheckoutView is a cart priced against the live catalog.
type CheckoutView struct {
	Cart    *domain.Cart
	Summary domain.Summary
}

// CheckoutService prices carts and turns them into orders.
type CheckoutService struct {
	carts     *CartService
	orders    repository.OrderRepository
	content   ContentReader
	publisher event.Publisher
	pricing   domain.Pricing
	logger    *slog.Logger
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts *CartService,
	orders repository.OrderRepository,
	content ContentReader,
	publisher event.Publisher,
	pricing domain.Pricing,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		orders:    orders,
		content:   content,
		publisher: publisher,
		pricing:   pricing,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Summary prices the user's cart. Unit prices always come from the content
// repository. An empty cart is not priced and yields an empty summary.
func (s *CheckoutService) Summary(ctx context.Context, userID string) (*CheckoutView, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.price(ctx, cart)
	if err != nil {
		return nil, err
	}
	return &CheckoutView{Cart: cart, Summary: summary}, nil
}

func (s *CheckoutService) price(ctx context.Context, cart *domain.Cart) (domain.Summary, error) {
	if cart.IsEmpty() {
		return domain.ComputeSummary(*cart, nil, s.pricing), nil
	}

	products, err := s.content.ProductsByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return domain.Summary{}, fmt.Errorf("fetch cart products: %w", err)
	}

	summary := domain.ComputeSummary(*cart, products, s.pricing)
	for _, id := range summary.Missing {
		s.logger.WarnContext(ctx, "cart line references unknown product",
			slog.String("product_id", id),
		)
	}
	return summary, nil
}

// PlaceOrder validates the checkout form, snapshots the priced cart as an
// order and clears the cart.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, details domain.CheckoutDetails) (*domain.Order, error) {
	if err := validator.Validate(details); err != nil {
		return nil, err
	}

	view, err := s.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if view.Summary.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	order := buildOrder(userID, view.Summary, details, s.now())
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	ordersPlaced.WithLabelValues(string(order.PaymentMethod)).Inc()

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int("lines", len(order.Items)),
		slog.String("grand_total", order.GrandTotal.StringFixed(2)),
	)

	// The order is stored; a failure to clear the cart must not make the
	// client place it again.
	if _, err := s.carts.CheckedOut(ctx, userID, order.ProductIDs()); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after order",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

func buildOrder(userID string, summary domain.Summary, details domain.CheckoutDetails, now time.Time) *domain.Order {
	items := make([]domain.OrderItem, len(summary.Lines))
	for i, line := range summary.Lines {
		items[i] = domain.OrderItem{
			ProductID: line.Product.ID,
			Title:     line.Product.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price.Unit(),
			LineTotal: line.LineTotal,
		}
	}

	return &domain.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Currency:      summary.Currency,
		Items:         items,
		Total:         summary.Total,
		Shipping:      summary.Shipping,
		VAT:           summary.VAT,
		GrandTotal:    summary.GrandTotal,
		Customer:      domain.CustomerFrom(details),
		PaymentMethod: details.PaymentMethod,
		CreatedAt:     now,
	}
}
