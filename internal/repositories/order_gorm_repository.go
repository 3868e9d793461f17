package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// FindByID retrieves an order with its lines and frozen snapshots.
func (r *GORMOrderRepository) FindByID(id string) (*domain.Order, error) {
	var row models.Order
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.NewPersistenceError("failed to get order by id", err)
	}
	return r.rehydrate(&row)
}

// FindByUserID retrieves all orders placed by a user, newest first.
func (r *GORMOrderRepository) FindByUserID(userID string) ([]*domain.Order, error) {
	var rows []models.Order
	if err := r.db.Order("created_at DESC").Find(&rows, "user_id = ?", userID).Error; err != nil {
		return nil, domain.NewPersistenceError("failed to get orders by user id", err)
	}
	orders := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		order, err := r.rehydrate(&rows[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// rehydrate rebuilds the aggregate from the order row, its line rows
// and their snapshot rows. Order history reads exclusively from the
// snapshots; the live catalog is never consulted here.
func (r *GORMOrderRepository) rehydrate(row *models.Order) (*domain.Order, error) {
	var lineRows []models.OrderItem
	if err := r.db.Find(&lineRows, "order_id = ?", row.ID).Error; err != nil {
		return nil, domain.NewPersistenceError("failed to load order items", err)
	}

	items := make([]*domain.OrderItem, 0, len(lineRows))
	for i := range lineRows {
		line := &lineRows[i]
		var snapRow models.ProductSnapshot
		if err := r.db.First(&snapRow, "order_item_id = ?", line.ID).Error; err != nil {
			return nil, domain.NewPersistenceError("failed to load order line snapshot", err)
		}
		product := snapshotToDomain(&snapRow)
		item, err := domain.RehydrateOrderItem(
			line.ID, line.OrderID, product, line.Quantity, line.Price,
			line.Name, line.Slug, line.Image,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return domain.RehydrateOrder(orderRowToDomain(row), items)
}

// Save persists the whole aggregate in one transaction. Order lines are
// immutable once created, so an update deletes every prior line row and
// snapshot row and reinserts the full desired set instead of diffing.
func (r *GORMOrderRepository) Save(order *domain.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Every line must reference an existing catalog product.
		for _, item := range order.Items() {
			var count int64
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.NewValidationError("cannot link order line to unknown product %s", item.ProductID)
			}
		}

		orderRow := orderToRow(order)
		res := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Select("PaymentResult", "ItemsPrice", "ShippingPrice", "TaxPrice",
				"TotalPrice", "Status", "IsPaid", "PaidAt", "IsDelivered",
				"DeliveredAt", "TrackingNumber", "CustomerNotes", "InternalNotes").
			Updates(&orderRow)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&orderRow).Error; err != nil {
				return err
			}
		}

		// Whole-order replacement of lines and snapshots.
		var prior []models.OrderItem
		if err := tx.Find(&prior, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		for i := range prior {
			if err := tx.Unscoped().Delete(&models.ProductSnapshot{}, "order_item_id = ?", prior[i].ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Delete(&models.OrderItem{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}

		for _, item := range order.Items() {
			lineRow := models.OrderItem{
				ID:        item.ID,
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Name:      item.Name,
				Slug:      item.Slug,
				Image:     item.Image,
			}
			if err := tx.Create(&lineRow).Error; err != nil {
				return err
			}
			snapRow := snapshotToRow(item.ID, &item.Product)
			snapRow.ID = uuid.New().String()
			if err := tx.Create(&snapRow).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		var dErr *domain.Error
		if errors.As(err, &dErr) {
			return err
		}
		return domain.NewPersistenceError("failed to save order", err)
	}
	return nil
}

// Delete removes an order with its lines and snapshots.
func (r *GORMOrderRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var lines []models.OrderItem
		if err := tx.Find(&lines, "order_id = ?", id).Error; err != nil {
			return err
		}
		for i := range lines {
			if err := tx.Unscoped().Delete(&models.ProductSnapshot{}, "order_item_id = ?", lines[i].ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		var dErr *domain.Error
		if errors.As(err, &dErr) {
			return err
		}
		return domain.NewPersistenceError("failed to delete order", err)
	}
	return nil
}
