package repositories

import (
	"sort"
	"sync"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]*domain.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

// FindByID returns an order by its ID.
func (r *MockOrderRepository) FindByID(id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(order)
}

// FindByUserID returns all orders placed by a user.
func (r *MockOrderRepository) FindByUserID(userID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			clone, err := copyOrder(order)
			if err != nil {
				return nil, err
			}
			orders = append(orders, clone)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Save stores a deep copy of the aggregate, mimicking the write-out /
// read-back boundary of real storage.
func (r *MockOrderRepository) Save(order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone, err := copyOrder(order)
	if err != nil {
		return err
	}
	r.orders[order.ID] = clone
	return nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func copyOrder(order *domain.Order) (*domain.Order, error) {
	items := make([]*domain.OrderItem, 0, order.LineCount())
	for _, item := range order.Items() {
		clone := *item
		items = append(items, &clone)
	}
	return domain.RehydrateOrder(*order, items)
}
