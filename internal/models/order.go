package models

import (
	"time"

	"gorm.io/gorm"
)

// Order represents a persisted order row. The shipping address is
// flattened into the row; money fields are stored as computed by the
// domain aggregate.
type Order struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string     `json:"user_id" gorm:"index;type:varchar(36)"`
	FullName        string     `json:"full_name"`
	StreetAddress   string     `json:"street_address"`
	City            string     `json:"city"`
	PostalCode      string     `json:"postal_code"`
	Country         string     `json:"country"`
	PaymentMethod   string     `json:"payment_method"`
	PaymentResult   string     `json:"payment_result"`
	ItemsPrice      float64    `json:"items_price"`
	ShippingPrice   float64    `json:"shipping_price"`
	TaxPrice        float64    `json:"tax_price"`
	TotalPrice      float64    `json:"total_price"`
	Status          string     `json:"status"`
	IsPaid          bool       `json:"is_paid"`
	PaidAt          *time.Time `json:"paid_at"`
	IsDelivered     bool       `json:"is_delivered"`
	DeliveredAt     *time.Time `json:"delivered_at"`
	TrackingNumber  string     `json:"tracking_number"`
	CustomerNotes   string     `json:"customer_notes"`
	InternalNotes   string     `json:"internal_notes"`
	gorm.Model
}

// OrderItem represents a persisted order line row. Price, name and
// image are frozen at order time.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"index;type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at the time of order
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Image     string  `json:"image"`
	gorm.Model
}

// ProductSnapshot is the full frozen copy of a product attached to one
// order line. Order history reads from here, never from the live
// catalog, so later catalog edits cannot rewrite past orders.
type ProductSnapshot struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderItemID string   `json:"order_item_id" gorm:"uniqueIndex;type:varchar(36)"`
	ProductID   string   `json:"product_id" gorm:"type:varchar(36)"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Stock       int      `json:"stock"` // stock at order time
	Price       float64  `json:"price"`
	Images      []string `json:"images" gorm:"serializer:json"`
	Rating      float64  `json:"rating"`
	NumReviews  int      `json:"num_reviews"`
	IsFeatured  bool     `json:"is_featured"`
	Banner      string   `json:"banner"`
	gorm.Model
}
