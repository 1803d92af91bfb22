package seed

import (
	"context"

	"gorm.io/gorm"

	"github.com/mkravets/storefront/internal/models"
)

// DemoProducts is the starter catalog inserted on first boot.
var DemoProducts = []models.Product{
	{
		Name:        "Nintendo Switch",
		Description: "The new Nintendo flagship!",
		Price:       399.99,
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/8/88/Nintendo-Switch-wJoyCons-BlRd-Standing-FL.jpg/300px-Nintendo-Switch-wJoyCons-BlRd-Standing-FL.jpg",
	},
	{
		Name:        "SG Cricket Bat",
		Description: "Master-crafted English willow!",
		Price:       29.99,
		ImageURL:    "https://shop.teamsg.in/cdn/shop/products/LIAM-XTREME-scaled.jpg?v=1696576680&width=1946",
	},
	{
		Name:        "Mountain Dew",
		Description: "Darr ke aage jeet hai",
		Price:       3.99,
		ImageURL:    "https://www.jiomart.com/images/product/original/491349790/mountain-dew-750-ml-product-images-o491349790-p491349790-0-202203150326.jpg",
	},
	{
		Name:        "RCB Jersey",
		Description: "Not winning :(",
		Price:       19.99,
		ImageURL:    "https://m.media-amazon.com/images/I/41g+pgWuaKL._AC_UY1100_.jpg",
	},
	{
		Name:        "Tender Coconut",
		Description: "No one reads this",
		Price:       0.99,
		ImageURL:    "https://m.media-amazon.com/images/I/81Tpge1r7SL.jpg",
	},
}

// Products inserts the demo catalog when the products table is empty and
// returns whatever the table holds afterwards.
func Products(ctx context.Context, db *gorm.DB) ([]models.Product, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return nil, err
	}

	if count == 0 {
		products := make([]models.Product, len(DemoProducts))
		copy(products, DemoProducts)
		if err := db.WithContext(ctx).Create(&products).Error; err != nil {
			return nil, err
		}
	}

	var all []models.Product
	if err := db.WithContext(ctx).Order("id ASC").Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}
