package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mkravets/storefront/internal/models"
)

// CartItems returns the user's line items in insertion order.
func (r *GormRepo) CartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddOneToCart increments the (user, product) line by exactly one, creating
// it with quantity 1 when absent. The conditional UPDATE plus the unique
// (user_id, product_id) index keeps concurrent adds from producing a second
// row for the same pair.
func (r *GormRepo) AddOneToCart(ctx context.Context, userID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", gorm.Expr("quantity + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			item = models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
			return tx.Create(&item).Error
		}
		return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	})
	return item, err
}

// ClearCart deletes every line item of the user. Clearing an empty cart is a
// no-op success.
func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
