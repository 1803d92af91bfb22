package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkravets/storefront/internal/logging"
	"github.com/mkravets/storefront/internal/models"
	"github.com/mkravets/storefront/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// CartLine is a line item resolved against the live catalog. Prices reflect
// the catalog at view time, not at add time.
type CartLine struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url,omitempty"`
	Price     float64 `json:"price"`
	Quantity  uint    `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// CartTotal sums price*quantity over the given lines.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// AddToCart puts one unit of the product into the user's cart. Each call adds
// exactly one: there is no bulk-set operation on the cart surface.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint) (models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	if productID == 0 {
		return models.CartItem{}, fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if _, err := s.Repo.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return models.CartItem{}, err
	}

	item, err := s.Repo.AddOneToCart(ctx, userID, productID)
	if err != nil {
		l.Error("add_to_cart_error", "error", err)
		return models.CartItem{}, err
	}

	l.Info("item added to cart", "user_id", userID, "product_id", productID, "quantity", item.Quantity)
	return item, nil
}

// ViewCart returns the cart lines in insertion order together with the total.
// An empty cart yields an empty slice and a zero total.
func (s *CartService) ViewCart(ctx context.Context, userID uint) (*CartView, error) {
	items, err := s.Repo.CartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: []CartLine{}}
	if len(items) == 0 {
		return view, nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			// Product removed from the catalog after it was added.
			continue
		}
		view.Items = append(view.Items, CartLine{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			Price:     p.Price,
			Quantity:  it.Quantity,
			LineTotal: p.Price * float64(it.Quantity),
		})
	}
	view.Total = CartTotal(view.Items)
	return view, nil
}

// ClearCart empties the user's cart. Safe to call on an already-empty cart.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}

// Checkout finalizes the cart: records the shipping address, writes an order
// snapshot and clears every line item. Payment info is accepted from the
// caller but never stored.
func (s *CartService) Checkout(ctx context.Context, userID uint, address, paymentInfo string) (*models.Order, []models.OrderItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.checkout")

	if address == "" {
		return nil, nil, fmt.Errorf("address required: %w", ErrValidation)
	}
	_ = paymentInfo

	order, items, err := s.Repo.PlaceOrder(ctx, userID, address)
	if err != nil {
		if errors.Is(err, repo.ErrCartEmpty) {
			return nil, nil, fmt.Errorf("nothing to check out: %w", ErrValidation)
		}
		l.Error("checkout_error", "error", err)
		return nil, nil, err
	}

	l.Info("order placed", "user_id", userID, "order_id", order.ID, "total", order.Total)
	return order, items, nil
}

func (s *CartService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}
