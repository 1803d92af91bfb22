package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mkravets/storefront/internal/models"
)

var ErrCartEmpty = errors.New("cart is empty")

// PlaceOrder finalizes the user's cart in one transaction: snapshot the line
// items into an order at current catalog prices, store the shipping address
// on the user, and clear the cart. Nothing is committed on failure.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uint, address string) (*models.Order, []models.OrderItem, error) {
	var (
		order      models.Order
		orderItems []models.OrderItem
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		var total float64
		for _, it := range items {
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Product withdrawn from the catalog after it was
					// added. The stale line is invisible in the cart view
					// and must not block checkout; the clear below removes
					// the row.
					continue
				}
				return err
			}
			lineTotal := p.Price * float64(it.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
				LineTotal: lineTotal,
			})
			total += lineTotal
		}

		if len(orderItems) == 0 {
			return ErrCartEmpty
		}

		order = models.Order{
			UserID:    userID,
			CreatedAt: time.Now().Unix(),
			Address:   address,
			Total:     total,
			Status:    models.OrderStatusNew,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("address", address).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, orderItems, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
