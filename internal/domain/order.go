package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the order state machine. Transitions are
// monotonic: an order never silently reverts to an earlier state.
type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "pending_payment"
	StatusPaymentFailed  OrderStatus = "payment_failed"
	StatusPaid           OrderStatus = "paid"
	StatusProcessing     OrderStatus = "processing"
	StatusShipped        OrderStatus = "shipped"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
	StatusRefunded       OrderStatus = "refunded"
)

// ShippingAddress is the delivery destination captured at checkout.
// Every field is required.
type ShippingAddress struct {
	FullName      string `validate:"required"`
	StreetAddress string `validate:"required"`
	City          string `validate:"required"`
	PostalCode    string `validate:"required"`
	Country       string `validate:"required"`
}

// Order is the placed-order aggregate. It is treated as effectively
// immutable: state transitions return a new Order value instead of
// mutating in place, mirroring the freeze applied to its line items.
// Totals are always recomputed from the frozen line prices, never
// trusted from input.
type Order struct {
	ID              string
	UserID          string
	ShippingAddress ShippingAddress
	PaymentMethod   string
	PaymentResult   string
	ItemsPrice      float64
	ShippingPrice   float64
	TaxPrice        float64
	TotalPrice      float64
	Status          OrderStatus
	IsPaid          bool
	PaidAt          *time.Time
	IsDelivered     bool
	DeliveredAt     *time.Time
	TrackingNumber  string
	CustomerNotes   string
	InternalNotes   string
	items           map[string]*OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder creates a pending-payment order for a user. The shipping
// address is validated field by field; no order exists without a
// complete destination.
func NewOrder(userID string, address ShippingAddress, paymentMethod string, shippingPrice, taxPrice float64) (*Order, error) {
	if userID == "" {
		return nil, NewValidationError("order requires a user id")
	}
	if paymentMethod == "" {
		return nil, NewValidationError("order requires a payment method")
	}
	if err := validate.Struct(address); err != nil {
		return nil, NewValidationError("invalid shipping address: %v", err)
	}
	if shippingPrice < 0 {
		return nil, NewValidationError("shipping price cannot be negative: %.2f", shippingPrice)
	}
	if taxPrice < 0 {
		return nil, NewValidationError("tax price cannot be negative: %.2f", taxPrice)
	}
	now := time.Now()
	return &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		ShippingPrice:   RoundMoney(shippingPrice),
		TaxPrice:        RoundMoney(taxPrice),
		Status:          StatusPendingPayment,
		items:           make(map[string]*OrderItem),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// RehydrateOrder rebuilds an order from persisted state without
// re-running the transition checks that already passed when the state
// was first reached.
func RehydrateOrder(o Order, items []*OrderItem) (*Order, error) {
	o.items = make(map[string]*OrderItem, len(items))
	for _, item := range items {
		if item.OrderID != o.ID {
			return nil, NewConflictError(
				"order item %s belongs to order %s, not order %s", item.ID, item.OrderID, o.ID,
			)
		}
		o.items[item.ProductID] = item
	}
	o.recalculate()
	return &o, nil
}

// AddItem inserts a line into the order. The line must belong to this
// order; a mismatch is a programmer error on the calling side and
// returns a conflict.
func (o *Order) AddItem(item *OrderItem) (*Order, error) {
	if item == nil {
		return nil, NewValidationError("order item is required")
	}
	if item.OrderID != o.ID {
		return nil, NewConflictError(
			"order item %s belongs to order %s, not order %s", item.ID, item.OrderID, o.ID,
		)
	}
	clone := o.clone()
	clone.items[item.ProductID] = item
	clone.recalculate()
	return clone, nil
}

// RemoveItem deletes a line by product id.
func (o *Order) RemoveItem(productID string) (*Order, error) {
	if _, ok := o.items[productID]; !ok {
		return nil, ErrOrderItemNotFound
	}
	clone := o.clone()
	delete(clone.items, productID)
	clone.recalculate()
	return clone, nil
}

// MarkAsPaid records payment. Paying twice is a conflict and leaves the
// order untouched.
func (o *Order) MarkAsPaid(paymentResult string) (*Order, error) {
	if o.IsPaid {
		return nil, ErrAlreadyPaid
	}
	now := time.Now()
	clone := o.clone()
	clone.IsPaid = true
	clone.PaidAt = &now
	clone.PaymentResult = paymentResult
	clone.Status = StatusPaid
	return clone, nil
}

// MarkPaymentFailed records a failed payment attempt. Only reachable
// from pending_payment.
func (o *Order) MarkPaymentFailed() (*Order, error) {
	if o.IsPaid {
		return nil, ErrAlreadyPaid
	}
	if o.Status != StatusPendingPayment {
		return nil, NewConflictError("cannot fail payment for order in status %s", o.Status)
	}
	clone := o.clone()
	clone.Status = StatusPaymentFailed
	return clone, nil
}

// MarkAsShipped records shipment with a carrier tracking number. The
// order must be paid and not yet delivered.
func (o *Order) MarkAsShipped(trackingNumber string) (*Order, error) {
	if !o.IsPaid {
		return nil, ErrOrderNotPaid
	}
	if o.IsDelivered {
		return nil, ErrAlreadyDelivered
	}
	clone := o.clone()
	clone.Status = StatusShipped
	clone.TrackingNumber = trackingNumber
	return clone, nil
}

// MarkAsDelivered records delivery. Requires payment first; delivering
// twice is a conflict.
func (o *Order) MarkAsDelivered() (*Order, error) {
	if !o.IsPaid {
		return nil, ErrOrderNotPaid
	}
	if o.IsDelivered {
		return nil, ErrAlreadyDelivered
	}
	now := time.Now()
	clone := o.clone()
	clone.IsDelivered = true
	clone.DeliveredAt = &now
	clone.Status = StatusDelivered
	return clone, nil
}

// Cancel aborts an order that has not shipped. Cancellation is allowed
// while payment is pending or completed, but not once fulfilment has
// started.
func (o *Order) Cancel() (*Order, error) {
	switch o.Status {
	case StatusPendingPayment, StatusPaymentFailed, StatusPaid:
		clone := o.clone()
		clone.Status = StatusCancelled
		return clone, nil
	default:
		return nil, NewConflictError("cannot cancel order in status %s", o.Status)
	}
}

// ItemByProduct returns the line for a product id, if present.
func (o *Order) ItemByProduct(productID string) (*OrderItem, bool) {
	item, ok := o.items[productID]
	return item, ok
}

// Items returns the order lines sorted by product id.
func (o *Order) Items() []*OrderItem {
	items := make([]*OrderItem, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items
}

// LineCount returns the number of distinct product lines.
func (o *Order) LineCount() int {
	return len(o.items)
}

// recalculate rederives the money fields from the frozen line prices.
// totalPrice = itemsPrice + shippingPrice + taxPrice always holds.
func (o *Order) recalculate() {
	var items float64
	for _, item := range o.items {
		items += item.LinePrice()
	}
	o.ItemsPrice = RoundMoney(items)
	o.TotalPrice = RoundMoney(o.ItemsPrice + o.ShippingPrice + o.TaxPrice)
}

func (o *Order) clone() *Order {
	clone := *o
	clone.items = make(map[string]*OrderItem, len(o.items))
	for productID, item := range o.items {
		clone.items[productID] = item
	}
	clone.UpdatedAt = time.Now()
	return &clone
}
