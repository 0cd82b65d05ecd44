package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/audiophile/internal/domain"
	"github.com/utafrali/audiophile/internal/event"
	"github.com/utafrali/audiophile/internal/repository"
	apperrors "github.com/utafrali/audiophile/pkg/errors"
)

// Cart limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity of a single line.
	MaxQuantityPerItem = 999
	// MaxItemsPerCart is the maximum number of distinct lines.
	MaxItemsPerCart = 50
)

// checkoutAction labels the cart change made by placing an order.
const checkoutAction = "checkout"

// CartService implements the business logic for cart operations. Mutations
// are a read, a pure reduction and a write; concurrent writers for the same
// user race and the last write wins.
type CartService struct {
	repo      repository.CartRepository
	publisher event.Publisher
	logger    *slog.Logger
	currency  string
	now       func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, publisher event.Publisher, logger *slog.Logger, currency string) *CartService {
	return &CartService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		currency:  currency,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetCart retrieves the cart for a user. If no cart exists, returns an empty cart.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(s.currency, s.now()), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// Apply validates action, applies it to the user's cart and persists the
// result. The cart.updated event is best effort.
func (s *CartService) Apply(ctx context.Context, userID string, action domain.Action) (*domain.Cart, error) {
	if err := validateAction(action); err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := domain.Reduce(*cart, action)
	if err := checkLimits(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, userID, &next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.updated(ctx, userID, &next, action.Name())

	return &next, nil
}

// CheckedOut removes the ordered products from the user's cart once their
// order is stored. Lines that were not ordered, such as products no longer in
// the catalog, stay in the cart. A cart left without lines is deleted.
func (s *CartService) CheckedOut(ctx context.Context, userID string, ordered []string) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := *cart
	for _, id := range ordered {
		next = domain.Reduce(next, domain.RemoveItem{ProductID: id})
	}
	next.UpdatedAt = s.now()

	if next.IsEmpty() {
		if err := s.repo.Delete(ctx, userID); err != nil {
			return nil, fmt.Errorf("delete cart: %w", err)
		}
	} else if err := s.repo.Save(ctx, userID, &next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.updated(ctx, userID, &next, checkoutAction)

	return &next, nil
}

// updated records a persisted cart change. The cart.updated event is best
// effort.
func (s *CartService) updated(ctx context.Context, userID string, cart *domain.Cart, action string) {
	cartMutations.WithLabelValues(action).Inc()

	if err := s.publisher.PublishCartUpdated(ctx, userID, cart, action); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart updated",
		slog.String("action", action),
		slog.Int("line_count", cart.LineCount()),
	)
}

func validateAction(action domain.Action) error {
	switch a := action.(type) {
	case domain.AddItem:
		if a.ProductID == "" {
			return apperrors.InvalidInput("product id is required")
		}
		if a.Quantity <= 0 {
			return apperrors.InvalidInput("quantity must be greater than 0")
		}
	case domain.UpdateItem:
		if a.ProductID == "" {
			return apperrors.InvalidInput("product id is required")
		}
		if a.Quantity < 0 {
			return apperrors.InvalidInput("quantity must not be negative")
		}
	case domain.RemoveItem:
		if a.ProductID == "" {
			return apperrors.InvalidInput("product id is required")
		}
	case domain.ReplaceItems:
		seen := make(map[string]struct{}, len(a.Items))
		for _, item := range a.Items {
			if item.ProductID == "" {
				return apperrors.InvalidInput("product id is required")
			}
			if item.Quantity <= 0 {
				return apperrors.InvalidInput("quantity must be greater than 0")
			}
			if _, dup := seen[item.ProductID]; dup {
				return apperrors.InvalidInput(fmt.Sprintf("product %q appears more than once", item.ProductID))
			}
			seen[item.ProductID] = struct{}{}
		}
	case domain.RemoveAll:
	case nil:
		return apperrors.InvalidInput("action is required")
	}
	return nil
}

func checkLimits(cart domain.Cart) error {
	if cart.LineCount() > MaxItemsPerCart {
		return apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d products", MaxItemsPerCart))
	}
	for _, item := range cart.Items {
		if item.Quantity > MaxQuantityPerItem {
			return apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
		}
	}
	return nil
}
