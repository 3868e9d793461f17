package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Product is an immutable catalog snapshot. It is the pricing source of
// truth at the moment an item is added to a cart; any later catalog
// change produces a new instance and never touches existing snapshots.
type Product struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required,min=3,max=100"`
	Slug        string    `json:"slug" validate:"required"`
	Category    string    `json:"category,omitempty" validate:"omitempty,max=100"`
	Brand       string    `json:"brand,omitempty" validate:"omitempty,max=100"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=5"`
	NumReviews  int       `json:"num_reviews" validate:"gte=0"`
	Images      []string  `json:"images,omitempty" validate:"omitempty,dive,required"`
	IsFeatured  bool      `json:"is_featured"`
	Banner      string    `json:"banner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProduct validates and builds a Product. An empty id gets a fresh
// uuid. This is the only way to obtain a Product; no invalid instance
// can escape the factory.
func NewProduct(p Product) (*Product, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.Price = RoundMoney(p.Price)

	if err := validate.Struct(p); err != nil {
		return nil, NewValidationError("invalid product: %v", err)
	}
	return &p, nil
}

// WithPrice returns a copy of the product with a new price.
func (p *Product) WithPrice(price float64) (*Product, error) {
	if price < 0 {
		return nil, NewValidationError("product price cannot be negative: %.2f", price)
	}
	clone := *p
	clone.Price = RoundMoney(price)
	clone.UpdatedAt = time.Now()
	return &clone, nil
}

// WithStock returns a copy of the product with a new stock level.
func (p *Product) WithStock(stock int) (*Product, error) {
	if stock < 0 {
		return nil, NewValidationError("product stock cannot be negative: %d", stock)
	}
	clone := *p
	clone.Stock = stock
	clone.UpdatedAt = time.Now()
	return &clone, nil
}
