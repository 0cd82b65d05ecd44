package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCart(t *testing.T) {
	now := time.Now().UTC()
	c := NewCart("", now)

	_, err := uuid.Parse(c.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, c.Currency)
	assert.NotNil(t, c.Items)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, now, c.CreatedAt)
}

func TestCart_Counts(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2}, LineItem{ProductID: "p2", Quantity: 3})

	assert.Equal(t, 2, c.LineCount())
	assert.Equal(t, 5, c.ItemCount())
	assert.False(t, c.IsEmpty())
	assert.Equal(t, []string{"p1", "p2"}, c.ProductIDs())
}

func TestCart_FindItemIndex(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2}, LineItem{ProductID: "p2", Quantity: 3})

	assert.Equal(t, 1, c.FindItemIndex("p2"))
	assert.Equal(t, -1, c.FindItemIndex("p3"))
	assert.Equal(t, 3, c.Quantity("p2"))
	assert.Equal(t, 0, c.Quantity("p3"))
}
