package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]domain.Product, error) {
	var rows []models.Product
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, domain.NewPersistenceError("failed to get all products", err)
	}
	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, productToDomain(&rows[i]))
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*domain.Product, error) {
	var row models.Product
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.NewPersistenceError("failed to get product by id", err)
	}
	product := productToDomain(&row)
	return &product, nil
}

// GetBySlug retrieves a single product by its slug from the database.
func (r *GORMProductRepository) GetBySlug(slug string) (*domain.Product, error) {
	var row models.Product
	if err := r.db.First(&row, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.NewPersistenceError("failed to get product by slug", err)
	}
	product := productToDomain(&row)
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	row := productToRow(product)
	if err := r.db.Create(&row).Error; err != nil {
		return domain.NewPersistenceError("failed to create product", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *domain.Product) error {
	row := productToRow(product)
	res := r.db.Model(&models.Product{}).Where("id = ?", product.ID).
		Select("Name", "Slug", "Category", "Brand", "Description", "Price",
			"Stock", "Rating", "NumReviews", "Images", "IsFeatured", "Banner").
		Updates(&row)
	if res.Error != nil {
		return domain.NewPersistenceError("failed to update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return domain.NewPersistenceError("failed to delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
