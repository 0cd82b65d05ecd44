package service

import (
	"context"
	"log/slog"

	"github.com/utafrali/audiophile/internal/domain"
	"github.com/utafrali/audiophile/internal/repository"
	apperrors "github.com/utafrali/audiophile/pkg/errors"
	"github.com/utafrali/audiophile/pkg/pagination"
)

// OrderService reads a user's placed orders.
type OrderService struct {
	repo   repository.OrderRepository
	logger *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, logger *slog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// Get returns one of the user's orders. Orders of other users are not found.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	return s.repo.Get(ctx, userID, orderID)
}

// List returns one page of the user's order ids, newest first.
func (s *OrderService) List(ctx context.Context, userID string, params pagination.Params) (pagination.Page[string], error) {
	if userID == "" {
		return pagination.Page[string]{}, apperrors.InvalidInput("user id is required")
	}
	ids, total, err := s.repo.ListIDs(ctx, userID, params.Offset(), params.Limit())
	if err != nil {
		return pagination.Page[string]{}, err
	}
	return pagination.NewPage(ids, total, params), nil
}
