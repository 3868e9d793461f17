package handlers

import (
	"time"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

// cartItemView is the JSON shape of one cart line.
type cartItemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LinePrice float64 `json:"line_price"`
}

// cartView is the JSON shape of a cart with computed totals.
type cartView struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id,omitempty"`
	TaxPercentage float64        `json:"tax_percentage"`
	Items         []cartItemView `json:"items"`
	ItemsPrice    float64        `json:"items_price"`
	TaxPrice      float64        `json:"tax_price"`
	TotalPrice    float64        `json:"total_price"`
}

func newCartView(cart *domain.Cart) cartView {
	items := make([]cartItemView, 0, cart.LineCount())
	for _, item := range cart.Items() {
		var image string
		if len(item.Product.Images) > 0 {
			image = item.Product.Images[0]
		}
		items = append(items, cartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Slug:      item.Product.Slug,
			Image:     image,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			LinePrice: item.LinePrice(),
		})
	}
	return cartView{
		ID:            cart.ID,
		UserID:        cart.UserID,
		TaxPercentage: cart.TaxPercentage,
		Items:         items,
		ItemsPrice:    cart.ItemsPrice(),
		TaxPrice:      cart.TaxPrice(),
		TotalPrice:    cart.TotalPrice(),
	}
}

// orderItemView is the JSON shape of one frozen order line.
type orderItemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LinePrice float64 `json:"line_price"`
}

// orderView is the JSON shape of an order.
type orderView struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	ShippingAddress shippingView    `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentResult   string          `json:"payment_result,omitempty"`
	Items           []orderItemView `json:"items"`
	ItemsPrice      float64         `json:"items_price"`
	ShippingPrice   float64         `json:"shipping_price"`
	TaxPrice        float64         `json:"tax_price"`
	TotalPrice      float64         `json:"total_price"`
	Status          string          `json:"status"`
	IsPaid          bool            `json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	IsDelivered     bool            `json:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type shippingView struct {
	FullName      string `json:"full_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
}

func newOrderView(order *domain.Order) orderView {
	items := make([]orderItemView, 0, order.LineCount())
	for _, item := range order.Items() {
		items = append(items, orderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LinePrice: item.LinePrice(),
		})
	}
	return orderView{
		ID:     order.ID,
		UserID: order.UserID,
		ShippingAddress: shippingView{
			FullName:      order.ShippingAddress.FullName,
			StreetAddress: order.ShippingAddress.StreetAddress,
			City:          order.ShippingAddress.City,
			PostalCode:    order.ShippingAddress.PostalCode,
			Country:       order.ShippingAddress.Country,
		},
		PaymentMethod:  order.PaymentMethod,
		PaymentResult:  order.PaymentResult,
		Items:          items,
		ItemsPrice:     order.ItemsPrice,
		ShippingPrice:  order.ShippingPrice,
		TaxPrice:       order.TaxPrice,
		TotalPrice:     order.TotalPrice,
		Status:         string(order.Status),
		IsPaid:         order.IsPaid,
		PaidAt:         order.PaidAt,
		IsDelivered:    order.IsDelivered,
		DeliveredAt:    order.DeliveredAt,
		TrackingNumber: order.TrackingNumber,
		CreatedAt:      order.CreatedAt,
	}
}
