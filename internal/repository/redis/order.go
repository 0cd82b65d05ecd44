package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/audiophile/internal/domain"
	apperrors "github.com/utafrali/audiophile/pkg/errors"
)

const (
	orderKeyPrefix     = "order:"
	orderListKeyPrefix = "orders:"
)

func orderKey(userID, orderID string) string {
	return orderKeyPrefix + userID + ":" + orderID
}

// OrderRepository implements repository.OrderRepository using Redis. Orders
// are kept without expiry; each user's order ids are indexed in a sorted set
// scored by creation time.
type OrderRepository struct {
	client *redis.Client
}

// NewOrderRepository creates a new Redis-backed order repository.
func NewOrderRepository(client *redis.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

// Get retrieves an order by user and order ID.
func (r *OrderRepository) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	data, err := r.client.Get(ctx, orderKey(userID, orderID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("order", orderID)
		}
		return nil, fmt.Errorf("redis get order: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}

	return &order, nil
}

// Save stores the order unless one with the same ID already exists.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	ok, err := r.client.SetNX(ctx, orderKey(order.UserID, order.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx order: %w", err)
	}
	if !ok {
		return apperrors.Conflict(fmt.Sprintf("order %q already exists", order.ID))
	}

	err = r.client.ZAdd(ctx, orderListKeyPrefix+order.UserID, redis.Z{
		Score:  float64(order.CreatedAt.UnixMilli()),
		Member: order.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("redis zadd order: %w", err)
	}

	return nil
}

// ListIDs returns a page of the user's order IDs, newest first, and the
// user's total order count.
func (r *OrderRepository) ListIDs(ctx context.Context, userID string, offset, limit int64) ([]string, int64, error) {
	if offset < 0 || limit < 1 {
		return nil, 0, apperrors.InvalidInput("invalid order page")
	}
	key := orderListKeyPrefix + userID

	pipe := r.client.Pipeline()
	total := pipe.ZCard(ctx, key)
	ids := pipe.ZRevRange(ctx, key, offset, offset+limit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, 0, fmt.Errorf("redis list orders: %w", err)
	}

	return ids.Val(), total.Val(), nil
}
