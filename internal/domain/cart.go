package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Cart is the shopping cart aggregate: a set of CartItems keyed by
// product id plus a tax rate. All item mutation goes through its
// methods so the quantity and stock invariants cannot be bypassed; the
// item map itself is never exposed.
//
// A cart with an empty UserID is anonymous (cookie-backed); the same
// aggregate serves both backing stores.
type Cart struct {
	ID            string
	UserID        string
	TaxPercentage float64
	items         map[string]*CartItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCart creates an empty cart. userID may be empty for an anonymous
// cart. Tax percentage must not be negative.
func NewCart(userID string, taxPercentage float64) (*Cart, error) {
	if taxPercentage < 0 {
		return nil, NewValidationError("tax percentage cannot be negative: %.2f", taxPercentage)
	}
	now := time.Now()
	return &Cart{
		ID:            uuid.New().String(),
		UserID:        userID,
		TaxPercentage: taxPercentage,
		items:         make(map[string]*CartItem),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// RehydrateCart rebuilds a cart from persisted state. Items whose
// CartID does not match are rejected, same as AddItem.
func RehydrateCart(id, userID string, taxPercentage float64, items []*CartItem) (*Cart, error) {
	if taxPercentage < 0 {
		return nil, NewValidationError("tax percentage cannot be negative: %.2f", taxPercentage)
	}
	cart := &Cart{
		ID:            id,
		UserID:        userID,
		TaxPercentage: taxPercentage,
		items:         make(map[string]*CartItem, len(items)),
	}
	for _, item := range items {
		if err := cart.AddItem(item); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// AddProduct adds quantity units of a product to the cart, either by
// incrementing an existing line or creating a new one. The combined
// quantity may never exceed the product's stock; on failure the cart is
// left unchanged.
func (c *Cart) AddProduct(product Product, quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity must be positive, got %d", quantity)
	}

	if existing, ok := c.items[product.ID]; ok {
		if existing.Quantity+quantity > product.Stock {
			return NewValidationError(
				"insufficient stock for product %s (requested: %d, available: %d)",
				product.Name, existing.Quantity+quantity, product.Stock,
			)
		}
		existing.Quantity += quantity
		existing.Product = product
		c.touch()
		return nil
	}

	item, err := NewCartItem(c.ID, product, quantity)
	if err != nil {
		return err
	}
	c.items[product.ID] = item
	c.touch()
	return nil
}

// RemoveProduct removes quantity units of a product. Removing at least
// the current quantity deletes the line; anything less decrements it.
// There is no "quantity zero" state.
func (c *Cart) RemoveProduct(productID string, quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity must be positive, got %d", quantity)
	}
	item, ok := c.items[productID]
	if !ok {
		return ErrCartItemNotFound
	}
	if quantity >= item.Quantity {
		delete(c.items, productID)
	} else {
		item.Quantity -= quantity
	}
	c.touch()
	return nil
}

// AddItem inserts a fully formed line, e.g. rehydrated from storage or
// carried over during a merge. The line must belong to this cart.
func (c *Cart) AddItem(item *CartItem) error {
	if item == nil {
		return NewValidationError("cart item is required")
	}
	if item.CartID != c.ID {
		return NewConflictError(
			"cart item %s belongs to cart %s, not cart %s", item.ID, item.CartID, c.ID,
		)
	}
	if item.Quantity <= 0 {
		return NewValidationError("cart item quantity must be positive, got %d", item.Quantity)
	}
	c.items[item.ProductID] = item
	c.touch()
	return nil
}

// RemoveItem deletes a line by its line id.
func (c *Cart) RemoveItem(itemID string) error {
	for productID, item := range c.items {
		if item.ID == itemID {
			delete(c.items, productID)
			c.touch()
			return nil
		}
	}
	return ErrCartItemNotFound
}

// SetTaxPercentage updates the cart's tax rate.
func (c *Cart) SetTaxPercentage(pct float64) error {
	if pct < 0 {
		return NewValidationError("tax percentage cannot be negative: %.2f", pct)
	}
	c.TaxPercentage = pct
	c.touch()
	return nil
}

// Clear removes every line from the cart.
func (c *Cart) Clear() {
	c.items = make(map[string]*CartItem)
	c.touch()
}

// ItemByProduct returns the line for a product id, if present.
func (c *Cart) ItemByProduct(productID string) (*CartItem, bool) {
	item, ok := c.items[productID]
	return item, ok
}

// Items returns the cart lines sorted by product id. The slice is a
// copy; mutating it does not affect the cart.
func (c *Cart) Items() []*CartItem {
	items := make([]*CartItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items
}

// LineCount returns the number of distinct product lines.
func (c *Cart) LineCount() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemsPrice sums the rounded extension of every line. The result is
// independent of insertion order.
func (c *Cart) ItemsPrice() float64 {
	var total float64
	for _, item := range c.items {
		total += item.LinePrice()
	}
	return RoundMoney(total)
}

// TaxPrice applies the cart's tax percentage to the items price.
func (c *Cart) TaxPrice() float64 {
	return RoundMoney(c.ItemsPrice() * c.TaxPercentage / 100)
}

// TotalPrice is items price plus tax, rounded.
func (c *Cart) TotalPrice() float64 {
	return RoundMoney(c.ItemsPrice() + c.TaxPrice())
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
