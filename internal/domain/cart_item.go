package domain

import (
	"github.com/google/uuid"
)

// CartItem is one product line inside a cart. It embeds a snapshot of
// the product as it looked when the line was created; the cart relies
// on that snapshot (price, stock) for all pricing and stock checks.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	Product   Product
}

// NewCartItem builds a cart line for the given product. Quantity must
// be positive; a line that would reach zero is removed at the cart
// level, never stored with quantity zero.
func NewCartItem(cartID string, product Product, quantity int) (*CartItem, error) {
	if cartID == "" {
		return nil, NewValidationError("cart item requires a cart id")
	}
	if quantity <= 0 {
		return nil, NewValidationError("cart item quantity must be positive, got %d", quantity)
	}
	if quantity > product.Stock {
		return nil, NewValidationError(
			"insufficient stock for product %s (requested: %d, available: %d)",
			product.Name, quantity, product.Stock,
		)
	}
	return &CartItem{
		ID:        uuid.New().String(),
		CartID:    cartID,
		ProductID: product.ID,
		Quantity:  quantity,
		Product:   product,
	}, nil
}

// RehydrateCartItem rebuilds a line loaded from storage, keeping its
// persisted id. The quantity invariant still applies.
func RehydrateCartItem(id, cartID string, product Product, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, NewValidationError("cart item quantity must be positive, got %d", quantity)
	}
	return &CartItem{
		ID:        id,
		CartID:    cartID,
		ProductID: product.ID,
		Quantity:  quantity,
		Product:   product,
	}, nil
}

// LinePrice is the rounded extension of this line: price x quantity.
func (i *CartItem) LinePrice() float64 {
	return RoundMoney(i.Product.Price * float64(i.Quantity))
}
