package models

import "gorm.io/gorm"

// Cart represents a persisted cart row. UserID is nil for anonymous
// carts that have not been claimed by a user yet.
type Cart struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        *string `json:"user_id" gorm:"index;type:varchar(36)"`
	TaxPercentage float64 `json:"tax_percentage"`
	gorm.Model
}

// CartItem represents a persisted cart line row. Price is the snapshot
// price captured when the line was created or last reconciled.
type CartItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string  `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"index;type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	gorm.Model
}
