package domain

// Action is a cart state transition. The set of actions is closed: only the
// types in this file implement it.
type Action interface {
	// Name labels the action in logs, metrics and events.
	Name() string
	isCartAction()
}

// AddItem increments ProductID's line by Quantity, appending it if absent.
type AddItem struct {
	ProductID string
	Quantity  int
}

// RemoveItem deletes ProductID's line. Removing an absent product is a no-op.
type RemoveItem struct {
	ProductID string
}

// UpdateItem sets ProductID's quantity. Zero removes the line; a product not
// yet in the cart is appended.
type UpdateItem struct {
	ProductID string
	Quantity  int
}

// ReplaceItems overwrites the whole line sequence.
type ReplaceItems struct {
	Items []LineItem
}

// RemoveAll empties the cart, keeping its id and currency.
type RemoveAll struct{}

func (AddItem) Name() string      { return "add" }
func (RemoveItem) Name() string   { return "remove" }
func (UpdateItem) Name() string   { return "update" }
func (ReplaceItems) Name() string { return "replace" }
func (RemoveAll) Name() string    { return "remove_all" }

func (AddItem) isCartAction()      {}
func (RemoveItem) isCartAction()   {}
func (UpdateItem) isCartAction()   {}
func (ReplaceItems) isCartAction() {}
func (RemoveAll) isCartAction()    {}

// Reduce returns the cart that results from applying action to cart. It never
// modifies cart or its Items and performs no validation beyond the
// zero-quantity rule of UpdateItem; callers validate quantities first.
func Reduce(cart Cart, action Action) Cart {
	next := cart
	next.Items = cloneItems(cart.Items)

	switch a := action.(type) {
	case AddItem:
		if i := next.FindItemIndex(a.ProductID); i >= 0 {
			next.Items[i].Quantity += a.Quantity
		} else {
			next.Items = append(next.Items, LineItem{ProductID: a.ProductID, Quantity: a.Quantity})
		}

	case RemoveItem:
		next.Items = without(next.Items, a.ProductID)

	case UpdateItem:
		switch i := next.FindItemIndex(a.ProductID); {
		case a.Quantity == 0:
			next.Items = without(next.Items, a.ProductID)
		case i >= 0:
			next.Items[i].Quantity = a.Quantity
		default:
			next.Items = append(next.Items, LineItem{ProductID: a.ProductID, Quantity: a.Quantity})
		}

	case ReplaceItems:
		next.Items = cloneItems(a.Items)

	case RemoveAll:
		next.Items = []LineItem{}
	}

	return next
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func without(items []LineItem, productID string) []LineItem {
	out := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}
