package repository

import (
	"context"

	"github.com/utafrali/audiophile/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves the cart of a user. A missing cart is apperrors.ErrNotFound.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists a cart for the user, overwriting any existing one.
	Save(ctx context.Context, userID string, cart *domain.Cart) error

	// Delete removes the user's cart.
	Delete(ctx context.Context, userID string) error
}

// OrderRepository stores immutable order snapshots.
type OrderRepository interface {
	// Get retrieves one of the user's orders. A missing order is
	// apperrors.ErrNotFound.
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)

	// Save stores a new order. An order with the same id is never
	// overwritten; that case is apperrors.ErrConflict.
	Save(ctx context.Context, order *domain.Order) error

	// ListIDs returns up to limit of the user's order ids starting at offset,
	// newest first, together with the total number of orders the user has.
	ListIDs(ctx context.Context, userID string, offset, limit int64) ([]string, int64, error)
}

// SessionRepository records the anonymous session ids handed out to browsers.
type SessionRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, id string) error
}
