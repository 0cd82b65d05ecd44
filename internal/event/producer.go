package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/audiophile/internal/domain"
	pkgkafka "github.com/utafrali/audiophile/pkg/kafka"
	"github.com/utafrali/audiophile/pkg/logger"
)

// Kafka topics for storefront domain events.
var (
	TopicCartUpdated = pkgkafka.Topic("cart", "updated")
	TopicOrderPlaced = pkgkafka.Topic("order", "placed")
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "audiophile-storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID    string            `json:"user_id"`
	CartID    string            `json:"cart_id"`
	Action    string            `json:"action"`
	Items     []domain.LineItem `json:"items"`
	LineCount int               `json:"line_count"`
	ItemCount int               `json:"item_count"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID       string `json:"order_id"`
	UserID        string `json:"user_id"`
	Currency      string `json:"currency"`
	ItemCount     int    `json:"item_count"`
	GrandTotal    string `json:"grand_total"`
	PaymentMethod string `json:"payment_method"`
}

// Publisher emits storefront domain events.
type Publisher interface {
	PublishCartUpdated(ctx context.Context, userID string, cart *domain.Cart, action string) error
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}

type eventWriter interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  eventWriter
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, userID string, cart *domain.Cart, action string) error {
	data := CartUpdatedData{
		UserID:    userID,
		CartID:    cart.ID,
		Action:    action,
		Items:     cart.Items,
		LineCount: cart.LineCount(),
		ItemCount: cart.ItemCount(),
	}

	if err := p.publish(ctx, TopicCartUpdated, userID, AggregateTypeCart, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", userID),
		slog.String("action", action),
		slog.Int("line_count", cart.LineCount()),
	)
	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	var items int
	for _, item := range order.Items {
		items += item.Quantity
	}

	data := OrderPlacedData{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Currency:      order.Currency,
		ItemCount:     items,
		GrandTotal:    order.GrandTotal.StringFixed(2),
		PaymentMethod: string(order.PaymentMethod),
	}

	if err := p.publish(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", order.ID),
	)
	return nil
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}

// NoopPublisher discards every event. It is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishCartUpdated(context.Context, string, *domain.Cart, string) error {
	return nil
}

func (NoopPublisher) PublishOrderPlaced(context.Context, *domain.Order) error {
	return nil
}

var _ Publisher = (*Producer)(nil)
