package services

import (
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]domain.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*domain.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(slug)
}

// CreateProduct validates and creates a new product.
func (s *ProductService) CreateProduct(product domain.Product) (*domain.Product, error) {
	validated, err := domain.NewProduct(product)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(validated); err != nil {
		return nil, err
	}
	return validated, nil
}

// UpdateProduct validates and updates an existing product.
func (s *ProductService) UpdateProduct(product domain.Product) (*domain.Product, error) {
	validated, err := domain.NewProduct(product)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(validated); err != nil {
		return nil, err
	}
	return validated, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
