package repositories

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository. Cart
// line rows persist only product id, quantity and snapshot price; full
// product data is re-resolved from the catalog on read.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// FindByID retrieves a cart and its lines by cart id.
func (r *GORMCartRepository) FindByID(id string) (*domain.Cart, error) {
	var row models.Cart
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.NewPersistenceError("failed to get cart by id", err)
	}
	return r.rehydrate(&row)
}

// FindByUserID retrieves the cart owned by the given user.
func (r *GORMCartRepository) FindByUserID(userID string) (*domain.Cart, error) {
	var row models.Cart
	if err := r.db.First(&row, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.NewPersistenceError("failed to get cart by user id", err)
	}
	return r.rehydrate(&row)
}

// rehydrate rebuilds the aggregate from the cart row, its line rows and
// the current catalog. A line whose product no longer exists is dropped
// from the rehydrated cart rather than failing the read; the next save
// reconciles the row away.
func (r *GORMCartRepository) rehydrate(row *models.Cart) (*domain.Cart, error) {
	var lineRows []models.CartItem
	if err := r.db.Find(&lineRows, "cart_id = ?", row.ID).Error; err != nil {
		return nil, domain.NewPersistenceError("failed to load cart items", err)
	}

	items := make([]*domain.CartItem, 0, len(lineRows))
	for i := range lineRows {
		line := &lineRows[i]
		var productRow models.Product
		if err := r.db.First(&productRow, "id = ?", line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Dropping cart line %s: product %s no longer exists", line.ID, line.ProductID)
				continue
			}
			return nil, domain.NewPersistenceError("failed to resolve cart line product", err)
		}
		product := productToDomain(&productRow)
		product.Price = line.Price // keep the snapshot price captured at add time
		item, err := domain.RehydrateCartItem(line.ID, line.CartID, product, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var userID string
	if row.UserID != nil {
		userID = *row.UserID
	}
	return domain.RehydrateCart(row.ID, userID, row.TaxPercentage, items)
}

// Save reconciles the aggregate's desired state against the persisted
// rows inside a single transaction: the cart scalar fields are
// upserted, then line rows are diffed by line id into delete, update
// and insert sets. A crash mid-save leaves either the old state or the
// new state, never a mix.
func (r *GORMCartRepository) Save(cart *domain.Cart) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var userID *string
		if cart.UserID != "" {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", cart.UserID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.NewValidationError("cannot link cart to unknown user %s", cart.UserID)
			}
			userID = &cart.UserID
		}

		cartRow := models.Cart{
			ID:            cart.ID,
			UserID:        userID,
			TaxPercentage: cart.TaxPercentage,
		}
		res := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Select("UserID", "TaxPercentage").
			Updates(&cartRow)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&cartRow).Error; err != nil {
				return err
			}
		}

		var persisted []models.CartItem
		if err := tx.Find(&persisted, "cart_id = ?", cart.ID).Error; err != nil {
			return err
		}

		desired := make(map[string]*domain.CartItem)
		for _, item := range cart.Items() {
			desired[item.ID] = item
		}

		// Deletions and updates against the previously persisted rows.
		seen := make(map[string]bool, len(persisted))
		for i := range persisted {
			row := &persisted[i]
			item, ok := desired[row.ID]
			if !ok {
				if err := tx.Unscoped().Delete(&models.CartItem{}, "id = ?", row.ID).Error; err != nil {
					return err
				}
				continue
			}
			seen[row.ID] = true
			if row.Quantity != item.Quantity || row.Price != item.Product.Price {
				if err := tx.Model(&models.CartItem{}).Where("id = ?", row.ID).
					Updates(map[string]interface{}{
						"quantity": item.Quantity,
						"price":    item.Product.Price,
					}).Error; err != nil {
					return err
				}
			}
		}

		// Insertions for lines the storage has not seen yet.
		for id, item := range desired {
			if seen[id] {
				continue
			}
			lineRow := models.CartItem{
				ID:        item.ID,
				CartID:    cart.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			}
			if err := tx.Create(&lineRow).Error; err != nil {
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
		return domain.NewPersistenceError("failed to save cart", err)
	}
	return nil
}

// Delete removes a cart and all of its lines.
func (r *GORMCartRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&models.CartItem{}, "cart_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Delete(&models.Cart{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrCartNotFound
		}
		return nil
	})
	if err != nil {
		var dErr *domain.Error
		if errors.As(err, &dErr) {
			return err
		}
		return domain.NewPersistenceError("failed to delete cart", err)
	}
	return nil
}
