package repositories

import (
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/models"
)

func productToDomain(row *models.Product) domain.Product {
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Category:    row.Category,
		Brand:       row.Brand,
		Description: row.Description,
		Price:       row.Price,
		Stock:       row.Stock,
		Rating:      row.Rating,
		NumReviews:  row.NumReviews,
		Images:      row.Images,
		IsFeatured:  row.IsFeatured,
		Banner:      row.Banner,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func productToRow(p *domain.Product) models.Product {
	return models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Category:    p.Category,
		Brand:       p.Brand,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Rating:      p.Rating,
		NumReviews:  p.NumReviews,
		Images:      p.Images,
		IsFeatured:  p.IsFeatured,
		Banner:      p.Banner,
	}
}

func snapshotToRow(itemID string, p *domain.Product) models.ProductSnapshot {
	return models.ProductSnapshot{
		OrderItemID: itemID,
		ProductID:   p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Category:    p.Category,
		Brand:       p.Brand,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price,
		Images:      p.Images,
		Rating:      p.Rating,
		NumReviews:  p.NumReviews,
		IsFeatured:  p.IsFeatured,
		Banner:      p.Banner,
	}
}

func snapshotToDomain(row *models.ProductSnapshot) domain.Product {
	return domain.Product{
		ID:          row.ProductID,
		Name:        row.Name,
		Slug:        row.Slug,
		Category:    row.Category,
		Brand:       row.Brand,
		Description: row.Description,
		Price:       row.Price,
		Stock:       row.Stock,
		Rating:      row.Rating,
		NumReviews:  row.NumReviews,
		Images:      row.Images,
		IsFeatured:  row.IsFeatured,
		Banner:      row.Banner,
	}
}

func orderToRow(o *domain.Order) models.Order {
	return models.Order{
		ID:             o.ID,
		UserID:         o.UserID,
		FullName:       o.ShippingAddress.FullName,
		StreetAddress:  o.ShippingAddress.StreetAddress,
		City:           o.ShippingAddress.City,
		PostalCode:     o.ShippingAddress.PostalCode,
		Country:        o.ShippingAddress.Country,
		PaymentMethod:  o.PaymentMethod,
		PaymentResult:  o.PaymentResult,
		ItemsPrice:     o.ItemsPrice,
		ShippingPrice:  o.ShippingPrice,
		TaxPrice:       o.TaxPrice,
		TotalPrice:     o.TotalPrice,
		Status:         string(o.Status),
		IsPaid:         o.IsPaid,
		PaidAt:         o.PaidAt,
		IsDelivered:    o.IsDelivered,
		DeliveredAt:    o.DeliveredAt,
		TrackingNumber: o.TrackingNumber,
		CustomerNotes:  o.CustomerNotes,
		InternalNotes:  o.InternalNotes,
	}
}

func orderRowToDomain(row *models.Order) domain.Order {
	return domain.Order{
		ID:     row.ID,
		UserID: row.UserID,
		ShippingAddress: domain.ShippingAddress{
			FullName:      row.FullName,
			StreetAddress: row.StreetAddress,
			City:          row.City,
			PostalCode:    row.PostalCode,
			Country:       row.Country,
		},
		PaymentMethod:  row.PaymentMethod,
		PaymentResult:  row.PaymentResult,
		ItemsPrice:     row.ItemsPrice,
		ShippingPrice:  row.ShippingPrice,
		TaxPrice:       row.TaxPrice,
		TotalPrice:     row.TotalPrice,
		Status:         domain.OrderStatus(row.Status),
		IsPaid:         row.IsPaid,
		PaidAt:         row.PaidAt,
		IsDelivered:    row.IsDelivered,
		DeliveredAt:    row.DeliveredAt,
		TrackingNumber: row.TrackingNumber,
		CustomerNotes:  row.CustomerNotes,
		InternalNotes:  row.InternalNotes,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
