package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddToCartUnknownProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := registerUser(t, r, "alice")

	_, err := svc.AddToCart(context.Background(), user.ID, 42)
	require.ErrorIs(t, err, ErrNotFound)

	items, err := r.CartItems(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, items, "failed add must not mutate the cart")
}

func TestAddToCartQuantityEqualsCallCount(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := registerUser(t, r, "alice")
	p := createProduct(t, r, "Mountain Dew", 3.99)

	for i := 1; i <= 5; i++ {
		item, err := svc.AddToCart(context.Background(), user.ID, p.ID)
		require.NoError(t, err)
		require.Equal(t, uint(i), item.Quantity)
	}
}

func TestCartTotalEmpty(t *testing.T) {
	require.Zero(t, CartTotal(nil))
	require.Zero(t, CartTotal([]CartLine{}))
}

func TestCartTotalLinear(t *testing.T) {
	lines := []CartLine{
		{Price: 399.99, Quantity: 2},
		{Price: 3.99, Quantity: 1},
		{Price: 0.99, Quantity: 3},
	}
	require.InDelta(t, 399.99*2+3.99+0.99*3, CartTotal(lines), 1e-9)
}

func TestViewCartEmpty(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := registerUser(t, r, "alice")

	view, err := svc.ViewCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
	require.Zero(t, view.Total)
}

func TestViewCartUsesLivePrices(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	user := registerUser(t, r, "alice")
	p := createProduct(t, r, "RCB Jersey", 19.99)

	_, err := svc.AddToCart(context.Background(), user.ID, p.ID)
	require.NoError(t, err)

	p.Price = 24.99
	require.NoError(t, r.SaveProduct(context.Background(), p))

	view, err := svc.ViewCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.InDelta(t, 24.99, view.Items[0].Price, 1e-9)
	require.InDelta(t, 24.99, view.Total, 1e-9)
}

func TestCartScenarioAddViewCheckout(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	alice := registerUser(t, r, "alice")
	p1 := createProduct(t, r, "Nintendo Switch", 399.99)
	p2 := createProduct(t, r, "SG Cricket Bat", 29.99)

	_, err := svc.AddToCart(ctx, alice.ID, p1.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, alice.ID, p1.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, alice.ID, p2.ID)
	require.NoError(t, err)

	view, err := svc.ViewCart(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	require.Equal(t, p1.ID, view.Items[0].ProductID)
	require.Equal(t, uint(2), view.Items[0].Quantity)
	require.Equal(t, p2.ID, view.Items[1].ProductID)
	require.Equal(t, uint(1), view.Items[1].Quantity)
	require.InDelta(t, 399.99*2+29.99, view.Total, 1e-9)

	order, items, err := svc.Checkout(ctx, alice.ID, "221B Baker Street", "visa")
	require.NoError(t, err)
	require.InDelta(t, view.Total, order.Total, 1e-9)
	require.Len(t, items, 2)

	after, err := svc.ViewCart(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, after.Items)
	require.Zero(t, after.Total)
}

func TestCheckoutValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	alice := registerUser(t, r, "alice")
	p := createProduct(t, r, "Tender Coconut", 0.99)

	_, _, err := svc.Checkout(ctx, alice.ID, "", "visa")
	require.ErrorIs(t, err, ErrValidation, "address is required")

	_, _, err = svc.Checkout(ctx, alice.ID, "somewhere", "visa")
	require.ErrorIs(t, err, ErrValidation, "empty cart cannot be checked out")

	_, err = svc.AddToCart(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	_, _, err = svc.Checkout(ctx, alice.ID, "somewhere", "visa")
	require.NoError(t, err)
}

func TestCheckoutAfterProductWithdrawn(t *testing.T) {
	r := newTestRepo(t)
	cartSvc := &CartService{Repo: r}
	catalogSvc := &CatalogService{Repo: r}
	ctx := context.Background()

	alice := registerUser(t, r, "alice")
	p1 := createProduct(t, r, "Nintendo Switch", 399.99)
	p2 := createProduct(t, r, "SG Cricket Bat", 29.99)

	_, err := cartSvc.AddToCart(ctx, alice.ID, p1.ID)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(ctx, alice.ID, p2.ID)
	require.NoError(t, err)

	require.NoError(t, catalogSvc.DeleteProduct(ctx, p1.ID))

	// The withdrawn product disappears from the view and must not block
	// the checkout either.
	view, err := cartSvc.ViewCart(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	order, items, err := cartSvc.Checkout(ctx, alice.ID, "221B Baker Street", "visa")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, p2.ID, items[0].ProductID)
	require.InDelta(t, 29.99, order.Total, 1e-9)

	after, err := cartSvc.ViewCart(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, after.Items)
}

func TestClearCartIdempotentAtServiceLevel(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	alice := registerUser(t, r, "alice")
	p := createProduct(t, r, "Mountain Dew", 3.99)

	_, err := svc.AddToCart(ctx, alice.ID, p.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, alice.ID))
	require.NoError(t, svc.ClearCart(ctx, alice.ID))

	view, err := svc.ViewCart(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestCheckoutDoesNotTouchOtherCarts(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	alice := registerUser(t, r, "alice")
	bob := registerUser(t, r, "bob")
	p := createProduct(t, r, "RCB Jersey", 19.99)

	_, err := svc.AddToCart(ctx, alice.ID, p.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, bob.ID, p.ID)
	require.NoError(t, err)

	_, _, err = svc.Checkout(ctx, alice.ID, "somewhere", "")
	require.NoError(t, err)

	view, err := svc.ViewCart(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
}
