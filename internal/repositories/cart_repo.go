package repositories

import (
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

// CartRepository defines the interface for persisted cart data access.
//
// Save reconciles the aggregate's desired line set against the
// previously persisted rows: lines absent from the desired set are
// deleted, lines present in both with a changed quantity or price are
// updated, new lines are inserted. All of that plus the cart's scalar
// fields executes in one transaction. The domain core does not add a
// cart-level lock on top; two concurrent saves for the same cart id are
// serialized only by the storage engine's row locking inside that
// transaction.
type CartRepository interface {
	FindByID(id string) (*domain.Cart, error)
	FindByUserID(userID string) (*domain.Cart, error)
	Save(cart *domain.Cart) error
	Delete(id string) error
}
