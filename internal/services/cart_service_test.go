package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/repositories"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/services"
)

type cartServiceFixture struct {
	service     *services.CartService
	cartRepo    *repositories.MockCartRepository
	productRepo *repositories.MockProductRepository
	guestStore  *repositories.MemoryGuestCartStore
}

func newCartServiceFixture(t *testing.T) *cartServiceFixture {
	t.Helper()
	cartRepo := repositories.NewMockCartRepository()
	productRepo := repositories.NewMockProductRepository()
	guestStore := repositories.NewMemoryGuestCartStore()
	return &cartServiceFixture{
		service:     services.NewCartService(cartRepo, productRepo, guestStore, 10),
		cartRepo:    cartRepo,
		productRepo: productRepo,
		guestStore:  guestStore,
	}
}

func (f *cartServiceFixture) seedProduct(t *testing.T, id string, price float64, stock int) domain.Product {
	t.Helper()
	product, err := domain.NewProduct(domain.Product{
		ID:    id,
		Name:  "Product " + id,
		Slug:  "product-" + id,
		Price: price,
		Stock: stock,
	})
	require.NoError(t, err)
	require.NoError(t, f.productRepo.Create(product))
	return *product
}

func TestGuestCartAccess_GetCartCreatesEmpty(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	guest := f.service.ForGuest("token-1")

	cart, err := guest.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.UserID)
	assert.Equal(t, 10.0, cart.TaxPercentage)

	// The same token resolves to the same cart afterwards.
	again, err := guest.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestGuestCartAccess_AddAndRemove(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 10)
	guest := f.service.ForGuest("token-1")

	cart, err := guest.AddItem(ctx, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.LineCount())

	// Adding the same product again merges into the line.
	cart, err = guest.AddItem(ctx, "p1", 1)
	require.NoError(t, err)
	item, ok := cart.ItemByProduct("p1")
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)

	cart, err = guest.RemoveItem(ctx, "p1", 1)
	require.NoError(t, err)
	item, ok = cart.ItemByProduct("p1")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)

	// State survives a fresh access for the same token.
	reloaded, err := f.service.ForGuest("token-1").GetCart(ctx)
	require.NoError(t, err)
	item, ok = reloaded.ItemByProduct("p1")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 10.99, item.Product.Price)
}

func TestGuestCartAccess_AddUnknownProduct(t *testing.T) {
	f := newCartServiceFixture(t)
	guest := f.service.ForGuest("token-1")

	_, err := guest.AddItem(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGuestCartAccess_StockCheckApplies(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 3)
	guest := f.service.ForGuest("token-1")

	_, err := guest.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	_, err = guest.AddItem(ctx, "p1", 2)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	// The failed add left the stored cart unchanged.
	cart, err := guest.GetCart(ctx)
	require.NoError(t, err)
	item, ok := cart.ItemByProduct("p1")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
}

func TestGuestCartAccess_DroppedProductOnRead(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 10)
	f.seedProduct(t, "p2", 25.00, 10)
	guest := f.service.ForGuest("token-1")

	_, err := guest.AddItem(ctx, "p1", 1)
	require.NoError(t, err)
	_, err = guest.AddItem(ctx, "p2", 1)
	require.NoError(t, err)

	// Retire one product. Its line vanishes from the next read instead
	// of failing it.
	require.NoError(t, f.productRepo.Delete("p1"))

	cart, err := guest.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.LineCount())
	_, ok := cart.ItemByProduct("p2")
	assert.True(t, ok)
}

func TestGuestCartAccess_Clear(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 10)
	guest := f.service.ForGuest("token-1")

	_, err := guest.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	require.NoError(t, guest.ClearCart(ctx))

	cart, err := guest.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestUserCartAccess_PersistsAcrossAccesses(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 10)
	user := f.service.ForUser("user-1")

	cart, err := user.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "user-1", cart.UserID)

	_, err = user.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	// A fresh strategy for the same user sees the persisted state.
	reloaded, err := f.service.ForUser("user-1").GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, reloaded.ID)
	item, ok := reloaded.ItemByProduct("p1")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)

	require.NoError(t, user.ClearCart(ctx))
	reloaded, err = user.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())
}

func TestMergeGuestCart_MovesAllLines(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 10)
	f.seedProduct(t, "p2", 25.00, 10)
	guest := f.service.ForGuest("token-1")

	_, err := guest.AddItem(ctx, "p1", 2)
	require.NoError(t, err)
	_, err = guest.AddItem(ctx, "p2", 1)
	require.NoError(t, err)

	require.NoError(t, f.service.MergeGuestCart(ctx, "token-1", "user-1"))

	userCart, err := f.service.ForUser("user-1").GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, userCart.LineCount())
	itemA, _ := userCart.ItemByProduct("p1")
	itemB, _ := userCart.ItemByProduct("p2")
	assert.Equal(t, 2, itemA.Quantity)
	assert.Equal(t, 1, itemB.Quantity)

	// The anonymous cart is gone.
	guestCart, err := guest.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, guestCart.IsEmpty())
}

func TestMergeGuestCart_MergesQuantities(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 10)

	_, err := f.service.ForGuest("token-1").AddItem(ctx, "p1", 2)
	require.NoError(t, err)
	_, err = f.service.ForUser("user-1").AddItem(ctx, "p1", 3)
	require.NoError(t, err)

	require.NoError(t, f.service.MergeGuestCart(ctx, "token-1", "user-1"))

	userCart, err := f.service.ForUser("user-1").GetCart(ctx)
	require.NoError(t, err)
	item, ok := userCart.ItemByProduct("p1")
	require.True(t, ok)
	assert.Equal(t, 5, item.Quantity)
}

func TestMergeGuestCart_BestEffortSkipsFailingLine(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 10)
	f.seedProduct(t, "p2", 25.00, 10)

	// The user already holds most of p1's stock; the guest's p1 line
	// cannot fit, but its p2 line still merges.
	_, err := f.service.ForUser("user-1").AddItem(ctx, "p1", 8)
	require.NoError(t, err)
	guest := f.service.ForGuest("token-1")
	_, err = guest.AddItem(ctx, "p1", 5)
	require.NoError(t, err)
	_, err = guest.AddItem(ctx, "p2", 1)
	require.NoError(t, err)

	require.NoError(t, f.service.MergeGuestCart(ctx, "token-1", "user-1"))

	userCart, err := f.service.ForUser("user-1").GetCart(ctx)
	require.NoError(t, err)
	itemA, ok := userCart.ItemByProduct("p1")
	require.True(t, ok)
	assert.Equal(t, 8, itemA.Quantity)
	itemB, ok := userCart.ItemByProduct("p2")
	require.True(t, ok)
	assert.Equal(t, 1, itemB.Quantity)

	// The guest cart is cleared even though one line was dropped.
	guestCart, err := guest.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, guestCart.IsEmpty())
}

func TestMergeGuestCart_NoGuestCartIsNoop(t *testing.T) {
	f := newCartServiceFixture(t)
	ctx := context.Background()
	f.seedProduct(t, "p1", 10.99, 10)

	_, err := f.service.ForUser("user-1").AddItem(ctx, "p1", 1)
	require.NoError(t, err)

	require.NoError(t, f.service.MergeGuestCart(ctx, "never-seen-token", "user-1"))

	userCart, err := f.service.ForUser("user-1").GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, userCart.LineCount())
}
