package services

import (
	"encoding/json"
	"log"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/repositories"
)

// EventPublisher is the slice of the RabbitMQ client the order service
// needs. Kept narrow so tests can mock it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Shipping is free above this items-price threshold, flat otherwise.
const (
	freeShippingThreshold = 100.0
	flatShippingPrice     = 10.0
)

// OrderService handles business logic related to orders: checkout from
// a cart and the order status lifecycle.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
	}
}

// GetOrderByID retrieves an order, enforcing that the requester owns it.
func (s *OrderService) GetOrderByID(id, requesterID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		log.Printf("User %s attempted to read order %s owned by %s", requesterID, id, order.UserID)
		return nil, domain.NewConflictError("order %s does not belong to user %s", id, requesterID)
	}
	return order, nil
}

// GetOrdersByUser retrieves all orders placed by a user.
func (s *OrderService) GetOrdersByUser(userID string) ([]*domain.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

// PlaceOrder turns the user's cart into a new order. Each cart line is
// frozen into an order line carrying its own product snapshot, the
// order is persisted and the cart cleared, then an order.created event
// is published. Event publication is best-effort; a broker hiccup does
// not undo a placed order.
func (s *OrderService) PlaceOrder(userID string, address domain.ShippingAddress, paymentMethod string) (*domain.Order, error) {
	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.NewValidationError("cannot place an order from an empty cart")
	}

	itemsPrice := cart.ItemsPrice()
	shippingPrice := flatShippingPrice
	if itemsPrice >= freeShippingThreshold {
		shippingPrice = 0
	}

	order, err := domain.NewOrder(userID, address, paymentMethod, shippingPrice, cart.TaxPrice())
	if err != nil {
		return nil, err
	}

	for _, cartItem := range cart.Items() {
		orderItem, err := domain.OrderItemFromCartItem(order.ID, cartItem)
		if err != nil {
			return nil, err
		}
		order, err = order.AddItem(orderItem)
		if err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(order); err != nil {
		return nil, err
	}

	cart.Clear()
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// MarkOrderPaid records payment for an order and publishes order.paid.
func (s *OrderService) MarkOrderPaid(id, paymentResult string) (*domain.Order, error) {
	return s.transition(id, "order.paid", func(order *domain.Order) (*domain.Order, error) {
		return order.MarkAsPaid(paymentResult)
	})
}

// MarkOrderShipped records shipment and publishes order.shipped.
func (s *OrderService) MarkOrderShipped(id, trackingNumber string) (*domain.Order, error) {
	return s.transition(id, "order.shipped", func(order *domain.Order) (*domain.Order, error) {
		return order.MarkAsShipped(trackingNumber)
	})
}

// MarkOrderDelivered records delivery and publishes order.delivered.
func (s *OrderService) MarkOrderDelivered(id string) (*domain.Order, error) {
	return s.transition(id, "order.delivered", func(order *domain.Order) (*domain.Order, error) {
		return order.MarkAsDelivered()
	})
}

// CancelOrder aborts an unshipped order and publishes order.cancelled.
func (s *OrderService) CancelOrder(id string) (*domain.Order, error) {
	return s.transition(id, "order.cancelled", func(order *domain.Order) (*domain.Order, error) {
		return order.Cancel()
	})
}

func (s *OrderService) transition(id, event string, fn func(*domain.Order) (*domain.Order, error)) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	updated, err := fn(order)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(updated); err != nil {
		return nil, err
	}
	s.publishEvent(event, updated)
	return updated, nil
}

func (s *OrderService) publishEvent(routingKey string, order *domain.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	message := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalPrice,
	}
	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	} else {
		log.Printf("Successfully published %s event for order %s", routingKey, order.ID)
	}
}
