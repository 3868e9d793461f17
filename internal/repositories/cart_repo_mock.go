package repositories

import (
	"sync"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]*domain.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]*domain.Cart),
	}
}

// FindByID returns a cart by its ID.
func (r *MockCartRepository) FindByID(id string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return copyCart(cart)
}

// FindByUserID returns the cart owned by the given user.
func (r *MockCartRepository) FindByUserID(userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cart := range r.carts {
		if cart.UserID == userID {
			return copyCart(cart)
		}
	}
	return nil, domain.ErrCartNotFound
}

// Save stores a deep copy of the aggregate.
func (r *MockCartRepository) Save(cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone, err := copyCart(cart)
	if err != nil {
		return err
	}
	r.carts[cart.ID] = clone
	return nil
}

// Delete removes a cart by its ID.
func (r *MockCartRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.carts[id]
	if !ok {
		return domain.ErrCartNotFound
	}
	delete(r.carts, id)
	return nil
}

func copyCart(cart *domain.Cart) (*domain.Cart, error) {
	items := make([]*domain.CartItem, 0, cart.LineCount())
	for _, item := range cart.Items() {
		clone := *item
		items = append(items, &clone)
	}
	return domain.RehydrateCart(cart.ID, cart.UserID, cart.TaxPercentage, items)
}
