package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/audiophile/internal/domain"
	"github.com/utafrali/audiophile/internal/event"
	apperrors "github.com/utafrali/audiophile/pkg/errors"
)

func newTestCartService(repo *mockCartRepository, pub event.Publisher) *CartService {
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	return NewCartService(repo, pub, newTestLogger(), "USD")
}

func storedCart(items ...domain.LineItem) *domain.Cart {
	return &domain.Cart{
		ID:        "cart-1",
		Currency:  "USD",
		Items:     items,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ============================================================================
// GetCart Tests
// ============================================================================

func TestGetCart_NotFoundReturnsEmpty(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, nil)

	repo.On("Get", mock.Anything, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	cart, err := svc.GetCart(context.Background(), "user-1")

	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.Equal(t, "USD", cart.Currency)
	assert.True(t, cart.IsEmpty())
}

func TestGetCart_StoreError(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, nil)

	repo.On("Get", mock.Anything, "user-1").Return(nil, errors.New("connection refused"))

	_, err := svc.GetCart(context.Background(), "user-1")

	require.Error(t, err)
	assert.Equal(t, 500, apperrors.HTTPStatus(err))
}

func TestGetCart_RequiresUser(t *testing.T) {
	svc := newTestCartService(new(mockCartRepository), nil)

	_, err := svc.GetCart(context.Background(), "")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// ============================================================================
// Apply Tests
// ============================================================================

func TestApply_AddPersistsAndPublishes(t *testing.T) {
	repo := new(mockCartRepository)
	pub := new(mockPublisher)
	svc := newTestCartService(repo, pub)

	repo.On("Get", mock.Anything, "user-1").Return(storedCart(domain.LineItem{ProductID: "p1", Quantity: 2}), nil)
	repo.On("Save", mock.Anything, "user-1", mock.MatchedBy(func(c *domain.Cart) bool {
		return len(c.Items) == 2 && c.Items[1] == domain.LineItem{ProductID: "p2", Quantity: 3}
	})).Return(nil)
	pub.On("PublishCartUpdated", mock.Anything, "user-1", mock.Anything, "add").Return(nil)

	cart, err := svc.Apply(context.Background(), "user-1", domain.AddItem{ProductID: "p2", Quantity: 3})

	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)
	assert.Equal(t, 2, cart.LineCount())
	assert.False(t, cart.UpdatedAt.IsZero())
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestApply_PublishFailureIsIgnored(t *testing.T) {
	repo := new(mockCartRepository)
	pub := new(mockPublisher)
	svc := newTestCartService(repo, pub)

	repo.On("Get", mock.Anything, "user-1").Return(storedCart(), nil)
	repo.On("Save", mock.Anything, "user-1", mock.Anything).Return(nil)
	pub.On("PublishCartUpdated", mock.Anything, "user-1", mock.Anything, "add").Return(errors.New("broker down"))

	_, err := svc.Apply(context.Background(), "user-1", domain.AddItem{ProductID: "p1", Quantity: 1})

	assert.NoError(t, err)
}

func TestApply_SaveError(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, nil)

	repo.On("Get", mock.Anything, "user-1").Return(storedCart(), nil)
	repo.On("Save", mock.Anything, "user-1", mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.Apply(context.Background(), "user-1", domain.AddItem{ProductID: "p1", Quantity: 1})

	assert.Error(t, err)
}

func TestApply_RejectsInvalidActions(t *testing.T) {
	tests := []struct {
		name   string
		action domain.Action
	}{
		{name: "add zero", action: domain.AddItem{ProductID: "p1", Quantity: 0}},
		{name: "add negative", action: domain.AddItem{ProductID: "p1", Quantity: -2}},
		{name: "add without product", action: domain.AddItem{Quantity: 1}},
		{name: "update negative", action: domain.UpdateItem{ProductID: "p1", Quantity: -1}},
		{name: "replace duplicate", action: domain.ReplaceItems{Items: []domain.LineItem{{ProductID: "p1", Quantity: 1}, {ProductID: "p1", Quantity: 2}}}},
		{name: "replace zero", action: domain.ReplaceItems{Items: []domain.LineItem{{ProductID: "p1", Quantity: 0}}}},
		{name: "nil", action: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockCartRepository)
			svc := newTestCartService(repo, nil)

			_, err := svc.Apply(context.Background(), "user-1", tt.action)

			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestApply_QuantityLimit(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, nil)

	repo.On("Get", mock.Anything, "user-1").Return(storedCart(domain.LineItem{ProductID: "p1", Quantity: MaxQuantityPerItem}), nil)

	_, err := svc.Apply(context.Background(), "user-1", domain.AddItem{ProductID: "p1", Quantity: 1})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestApply_RemoveAllKeepsIdentity(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, nil)

	repo.On("Get", mock.Anything, "user-1").Return(storedCart(domain.LineItem{ProductID: "p1", Quantity: 1}), nil)
	repo.On("Save", mock.Anything, "user-1", mock.Anything).Return(nil)

	cart, err := svc.Apply(context.Background(), "user-1", domain.RemoveAll{})

	require.NoError(t, err)
	assert.Equal(t, "cart-1", cart.ID)
	assert.Empty(t, cart.Items)
}

// ============================================================================
// CheckedOut Tests
// ============================================================================

func TestCheckedOut_DeletesEmptiedCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, nil)

	repo.On("Get", mock.Anything, "user-1").Return(storedCart(
		domain.LineItem{ProductID: "p1", Quantity: 2},
		domain.LineItem{ProductID: "p2", Quantity: 3},
	), nil)
	repo.On("Delete", mock.Anything, "user-1").Return(nil)

	cart, err := svc.CheckedOut(context.Background(), "user-1", []string{"p1", "p2"})

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckedOut_KeepsUnorderedLines(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, nil)

	repo.On("Get", mock.Anything, "user-1").Return(storedCart(
		domain.LineItem{ProductID: "p1", Quantity: 2},
		domain.LineItem{ProductID: "p2", Quantity: 3},
	), nil)
	repo.On("Save", mock.Anything, "user-1", mock.Anything).Return(nil)

	cart, err := svc.CheckedOut(context.Background(), "user-1", []string{"p1"})

	require.NoError(t, err)
	assert.Equal(t, []domain.LineItem{{ProductID: "p2", Quantity: 3}}, cart.Items)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCheckedOut_DeleteError(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, nil)

	repo.On("Get", mock.Anything, "user-1").Return(storedCart(domain.LineItem{ProductID: "p1", Quantity: 1}), nil)
	repo.On("Delete", mock.Anything, "user-1").Return(errors.New("connection reset"))

	_, err := svc.CheckedOut(context.Background(), "user-1", []string{"p1"})

	assert.ErrorContains(t, err, "delete cart")
}
