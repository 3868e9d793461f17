package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]domain.Product, error) {
	args := m.Called()
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*domain.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(slug string) (*domain.Product, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *domain.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *domain.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []domain.Product{
		{ID: "1", Name: "Product A", Slug: "product-a", Price: 10.0, Stock: 100},
		{ID: "2", Name: "Product B", Slug: "product-b", Price: 20.0, Stock: 50},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &domain.Product{ID: "1", Name: "Product A", Slug: "product-a", Price: 10.0, Stock: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, domain.ErrProductNotFound).Once()
	product, err = service.GetProductByID("99")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductBySlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &domain.Product{ID: "1", Name: "Product A", Slug: "product-a", Price: 10.0, Stock: 100}

	mockRepo.On("GetBySlug", "product-a").Return(expectedProduct, nil).Once()
	product, err := service.GetProductBySlug("product-a")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetBySlug", "missing").Return(nil, domain.ErrProductNotFound).Once()
	_, err = service.GetProductBySlug("missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Test successful creation: the service assigns an id and rounds
	// the price before hitting the repository.
	mockRepo.On("Create", mock.AnythingOfType("*domain.Product")).Return(nil).Once()
	created, err := service.CreateProduct(domain.Product{Name: "New Product", Slug: "new-product", Price: 50.004, Stock: 20})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 50.0, created.Price)
	mockRepo.AssertExpectations(t)

	// Test validation failure: the repository is never called.
	_, err = service.CreateProduct(domain.Product{Name: "ab", Slug: "ab", Price: 1.0, Stock: 1})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	repoErr := domain.NewPersistenceError("failed to create product", assert.AnError)
	mockRepo.On("Create", mock.AnythingOfType("*domain.Product")).Return(repoErr).Once()
	_, err = service.CreateProduct(domain.Product{Name: "New Product", Slug: "new-product", Price: 50.0, Stock: 20})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodePersistence))
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Test successful update
	mockRepo.On("Update", mock.AnythingOfType("*domain.Product")).Return(nil).Once()
	updated, err := service.UpdateProduct(domain.Product{ID: "1", Name: "Product A Updated", Slug: "product-a", Price: 12.0, Stock: 95})
	assert.NoError(t, err)
	assert.Equal(t, "Product A Updated", updated.Name)
	mockRepo.AssertExpectations(t)

	// Test update failure (e.g., product not found in repo)
	mockRepo.On("Update", mock.AnythingOfType("*domain.Product")).Return(domain.ErrProductNotFound).Once()
	_, err = service.UpdateProduct(domain.Product{ID: "99", Name: "NonExistent", Slug: "non-existent", Price: 1.0, Stock: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Test successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (e.g., product not found)
	mockRepo.On("Delete", "99").Return(domain.ErrProductNotFound).Once()
	err = service.DeleteProduct("99")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}
