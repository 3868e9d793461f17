package domain

import (
	"github.com/google/uuid"
)

// OrderItem is one product line inside a placed order. Price, name and
// image are frozen at order time and stay valid no matter what happens
// to the catalog afterwards; the embedded Product is a distinct copy,
// not a reference to the live catalog row. Immutable once created —
// changes go through whole-order replacement.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     float64
	Name      string
	Slug      string
	Image     string
	Product   Product
}

// NewOrderItem freezes a product into an order line. Quantity and price
// must be positive.
func NewOrderItem(orderID string, product Product, quantity int, price float64) (*OrderItem, error) {
	if orderID == "" {
		return nil, NewValidationError("order item requires an order id")
	}
	if quantity <= 0 {
		return nil, NewValidationError("order item quantity must be positive, got %d", quantity)
	}
	if price <= 0 {
		return nil, NewValidationError("order item price must be positive, got %.2f", price)
	}
	var image string
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	return &OrderItem{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     RoundMoney(price),
		Name:      product.Name,
		Slug:      product.Slug,
		Image:     image,
		Product:   product,
	}, nil
}

// OrderItemFromCartItem converts a cart line into an order line,
// freezing the cart's snapshot price.
func OrderItemFromCartItem(orderID string, item *CartItem) (*OrderItem, error) {
	return NewOrderItem(orderID, item.Product, item.Quantity, item.Product.Price)
}

// RehydrateOrderItem rebuilds a line loaded from storage with its
// persisted id.
func RehydrateOrderItem(id, orderID string, product Product, quantity int, price float64, name, slug, image string) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, NewValidationError("order item quantity must be positive, got %d", quantity)
	}
	if price <= 0 {
		return nil, NewValidationError("order item price must be positive, got %.2f", price)
	}
	return &OrderItem{
		ID:        id,
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     RoundMoney(price),
		Name:      name,
		Slug:      slug,
		Image:     image,
		Product:   product,
	}, nil
}

// LinePrice is the rounded extension of this line: frozen price x quantity.
func (i *OrderItem) LinePrice() float64 {
	return RoundMoney(i.Price * float64(i.Quantity))
}
