package models

import "gorm.io/gorm"

// Product represents a catalog product row. The domain layer converts
// it into an immutable domain.Product snapshot on read.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Slug        string   `json:"slug" gorm:"uniqueIndex;type:varchar(255)" validate:"required"`
	Category    string   `json:"category" validate:"omitempty,max=100"`
	Brand       string   `json:"brand" validate:"omitempty,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	NumReviews  int      `json:"num_reviews" validate:"gte=0"`
	Images      []string `json:"images" gorm:"serializer:json"`
	IsFeatured  bool     `json:"is_featured"`
	Banner      string   `json:"banner"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
