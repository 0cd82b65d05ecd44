package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCart(items ...LineItem) Cart {
	if items == nil {
		items = []LineItem{}
	}
	return Cart{ID: "cart-1", Currency: "USD", Items: items, CreatedAt: time.Unix(0, 0).UTC()}
}

// ============================================================================
// AddItem Tests
// ============================================================================

func TestReduce_AddNewProduct(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2})

	got := Reduce(c, AddItem{ProductID: "p2", Quantity: 3})

	assert.Equal(t, []LineItem{{"p1", 2}, {"p2", 3}}, got.Items)
}

func TestReduce_AddExistingProductIncrements(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2}, LineItem{ProductID: "p2", Quantity: 1})

	got := Reduce(c, AddItem{ProductID: "p1", Quantity: 4})

	assert.Equal(t, []LineItem{{"p1", 6}, {"p2", 1}}, got.Items)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2}, LineItem{ProductID: "p2", Quantity: 3})
	before := append([]LineItem(nil), c.Items...)

	Reduce(c, AddItem{ProductID: "p1", Quantity: 1})
	Reduce(c, UpdateItem{ProductID: "p2", Quantity: 9})
	Reduce(c, RemoveItem{ProductID: "p1"})
	Reduce(c, RemoveAll{})

	assert.Equal(t, before, c.Items)
}

// ============================================================================
// RemoveItem Tests
// ============================================================================

func TestReduce_RemoveIsIdempotent(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2}, LineItem{ProductID: "p2", Quantity: 3})

	once := Reduce(c, RemoveItem{ProductID: "p1"})
	twice := Reduce(once, RemoveItem{ProductID: "p1"})

	assert.Equal(t, []LineItem{{"p2", 3}}, once.Items)
	assert.Equal(t, once, twice)
}

func TestReduce_RemoveAbsentIsNoop(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2})

	got := Reduce(c, RemoveItem{ProductID: "nope"})

	assert.Equal(t, c, got)
}

// ============================================================================
// UpdateItem Tests
// ============================================================================

func TestReduce_UpdateSetsQuantity(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2}, LineItem{ProductID: "p2", Quantity: 3})

	got := Reduce(c, UpdateItem{ProductID: "p1", Quantity: 1})

	assert.Equal(t, []LineItem{{"p1", 1}, {"p2", 3}}, got.Items)
}

func TestReduce_UpdateZeroEqualsRemove(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 1}, LineItem{ProductID: "p2", Quantity: 3})

	updated := Reduce(c, UpdateItem{ProductID: "p2", Quantity: 0})
	removed := Reduce(c, RemoveItem{ProductID: "p2"})

	assert.Equal(t, []LineItem{{"p1", 1}}, updated.Items)
	assert.Equal(t, removed, updated)
}

func TestReduce_UpdateAbsentAppends(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 1})

	got := Reduce(c, UpdateItem{ProductID: "p2", Quantity: 4})

	assert.Equal(t, []LineItem{{"p1", 1}, {"p2", 4}}, got.Items)
}

// ============================================================================
// ReplaceItems / RemoveAll Tests
// ============================================================================

func TestReduce_ReplaceIgnoresPriorItems(t *testing.T) {
	items := []LineItem{{"p9", 5}}
	a := Reduce(testCart(LineItem{ProductID: "p1", Quantity: 2}), ReplaceItems{Items: items})
	b := Reduce(testCart(), ReplaceItems{Items: items})

	assert.Equal(t, a.Items, b.Items)
	assert.Equal(t, items, a.Items)

	// The replacement is copied.
	items[0].Quantity = 1
	assert.Equal(t, 5, a.Items[0].Quantity)
}

func TestReduce_RemoveAllKeepsIdentity(t *testing.T) {
	c := testCart(LineItem{ProductID: "p1", Quantity: 2}, LineItem{ProductID: "p2", Quantity: 3})
	c.Currency = "EUR"

	got := Reduce(c, RemoveAll{})

	require.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, "cart-1", got.ID)
	assert.Equal(t, "EUR", got.Currency)
}

func TestAction_Names(t *testing.T) {
	assert.Equal(t, "add", AddItem{}.Name())
	assert.Equal(t, "remove", RemoveItem{}.Name())
	assert.Equal(t, "update", UpdateItem{}.Name())
	assert.Equal(t, "replace", ReplaceItems{}.Name())
	assert.Equal(t, "remove_all", RemoveAll{}.Name())
}
