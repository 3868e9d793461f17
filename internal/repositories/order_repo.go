package repositories

import (
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

// OrderRepository defines the interface for order data access. Save
// persists the whole aggregate atomically: order row, line rows and
// per-line product snapshots commit or roll back together. On update,
// prior line and snapshot rows are deleted and fully reinserted because
// order lines are immutable once created.
type OrderRepository interface {
	FindByID(id string) (*domain.Order, error)
	FindByUserID(userID string) ([]*domain.Order, error)
	Save(order *domain.Order) error
	Delete(id string) error
}
