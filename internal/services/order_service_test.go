package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/repositories"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/services"
)

// recordingPublisher captures published events in memory.
type recordingPublisher struct {
	events []publishedEvent
	err    error
}

type publishedEvent struct {
	exchange   string
	routingKey string
	body       []byte
}

func (p *recordingPublisher) Publish(exchange, routingKey string, body []byte) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{exchange: exchange, routingKey: routingKey, body: body})
	return nil
}

var orderTestAddress = domain.ShippingAddress{
	FullName:      "John Doe",
	StreetAddress: "123 Main St",
	City:          "Springfield",
	PostalCode:    "12345",
	Country:       "USA",
}

type orderServiceFixture struct {
	service   *services.OrderService
	orderRepo *repositories.MockOrderRepository
	cartRepo  *repositories.MockCartRepository
	publisher *recordingPublisher
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	publisher := &recordingPublisher{}
	return &orderServiceFixture{
		service:   services.NewOrderService(orderRepo, cartRepo, publisher),
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
	}
}

// seedCart persists a cart for the user holding the given quantity of a
// single product, reusing the user's existing cart when there is one.
func (f *orderServiceFixture) seedCart(t *testing.T, userID string, price float64, quantity int) *domain.Cart {
	t.Helper()
	product, err := domain.NewProduct(domain.Product{
		Name:  "Wireless Mouse",
		Slug:  "wireless-mouse",
		Price: price,
		Stock: quantity * 2,
	})
	require.NoError(t, err)
	cart, err := f.cartRepo.FindByUserID(userID)
	if err != nil {
		cart, err = domain.NewCart(userID, 10)
		require.NoError(t, err)
	}
	require.NoError(t, cart.AddProduct(*product, quantity))
	require.NoError(t, f.cartRepo.Save(cart))
	return cart
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newOrderServiceFixture(t)
	cart := f.seedCart(t, "user-1", 10.99, 2)

	order, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	require.NoError(t, err)

	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, domain.StatusPendingPayment, order.Status)
	assert.Equal(t, 21.98, order.ItemsPrice)
	assert.Equal(t, 10.0, order.ShippingPrice) // below the free shipping threshold
	assert.Equal(t, 2.20, order.TaxPrice)
	assert.Equal(t, 34.18, order.TotalPrice)
	require.Equal(t, 1, order.LineCount())

	item := order.Items()[0]
	assert.Equal(t, 10.99, item.Price)
	assert.Equal(t, "Wireless Mouse", item.Name)
	assert.Equal(t, 2, item.Quantity)

	// The order was persisted and the cart emptied.
	persisted, err := f.orderRepo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalPrice, persisted.TotalPrice)

	emptied, err := f.cartRepo.FindByID(cart.ID)
	require.NoError(t, err)
	assert.True(t, emptied.IsEmpty())

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, "order", event.exchange)
	assert.Equal(t, "order.created", event.routingKey)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.body, &payload))
	assert.Equal(t, order.ID, payload["orderID"])
	assert.Equal(t, "user-1", payload["userID"])
}

func TestOrderService_PlaceOrderFreeShipping(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedCart(t, "user-1", 60.00, 2) // items price 120.00

	order, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.ShippingPrice)
	assert.Equal(t, 120.00, order.ItemsPrice)
	assert.Equal(t, 132.00, order.TotalPrice) // 120 + 0 shipping + 12 tax
}

func TestOrderService_PlaceOrderEmptyCart(t *testing.T) {
	f := newOrderServiceFixture(t)
	cart, err := domain.NewCart("user-1", 10)
	require.NoError(t, err)
	require.NoError(t, f.cartRepo.Save(cart))

	_, err = f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
	assert.Empty(t, f.publisher.events)
}

func TestOrderService_PlaceOrderNoCart(t *testing.T) {
	f := newOrderServiceFixture(t)

	_, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestOrderService_PlaceOrderSurvivesPublishFailure(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedCart(t, "user-1", 10.99, 2)
	f.publisher.err = errors.New("broker unreachable")

	order, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	require.NoError(t, err)

	persisted, err := f.orderRepo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, persisted.Status)
}

func TestOrderService_GetOrderByIDEnforcesOwnership(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedCart(t, "user-1", 10.99, 2)
	order, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	require.NoError(t, err)

	loaded, err := f.service.GetOrderByID(order.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, loaded.ID)

	_, err = f.service.GetOrderByID(order.ID, "intruder")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))

	_, err = f.service.GetOrderByID("missing", "user-1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_Lifecycle(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedCart(t, "user-1", 10.99, 2)
	order, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	require.NoError(t, err)

	paid, err := f.service.MarkOrderPaid(order.ID, "pay_123")
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, domain.StatusPaid, paid.Status)

	shipped, err := f.service.MarkOrderShipped(order.ID, "TRACK-42")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, shipped.Status)
	assert.Equal(t, "TRACK-42", shipped.TrackingNumber)

	delivered, err := f.service.MarkOrderDelivered(order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	assert.Equal(t, domain.StatusDelivered, delivered.Status)

	// Each transition was persisted and published in sequence.
	persisted, err := f.orderRepo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, persisted.Status)

	var keys []string
	for _, event := range f.publisher.events {
		keys = append(keys, event.routingKey)
	}
	assert.Equal(t, []string{"order.created", "order.paid", "order.shipped", "order.delivered"}, keys)
}

func TestOrderService_IllegalTransitionsNotPersisted(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedCart(t, "user-1", 10.99, 2)
	order, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	require.NoError(t, err)

	// Delivering before payment fails and leaves storage untouched.
	_, err = f.service.MarkOrderDelivered(order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPaid)

	_, err = f.service.MarkOrderPaid(order.ID, "pay_1")
	require.NoError(t, err)
	_, err = f.service.MarkOrderPaid(order.ID, "pay_2")
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	persisted, err := f.orderRepo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay_1", persisted.PaymentResult)
}

func TestOrderService_CancelOrder(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedCart(t, "user-1", 10.99, 2)
	order, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	require.NoError(t, err)

	cancelled, err := f.service.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// A cancelled order cannot be cancelled again.
	_, err = f.service.CancelOrder(order.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestOrderService_GetOrdersByUser(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedCart(t, "user-1", 10.99, 2)
	_, err := f.service.PlaceOrder("user-1", orderTestAddress, "stripe")
	require.NoError(t, err)
	f.seedCart(t, "user-1", 25.00, 1)
	_, err = f.service.PlaceOrder("user-1", orderTestAddress, "paypal")
	require.NoError(t, err)

	orders, err := f.service.GetOrdersByUser("user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, "user-1", order.UserID)
	}

	none, err := f.service.GetOrdersByUser("user-2")
	require.NoError(t, err)
	assert.Empty(t, none)
}
