package repositories

import (
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

// ProductRepository defines the interface for catalog data access. The
// domain core uses it to resolve stock and price at the moment of a
// cart or order mutation.
type ProductRepository interface {
	GetAll() ([]domain.Product, error)
	GetByID(id string) (*domain.Product, error)
	GetBySlug(slug string) (*domain.Product, error)
	Create(product *domain.Product) error
	Update(product *domain.Product) error
	Delete(id string) error
}
