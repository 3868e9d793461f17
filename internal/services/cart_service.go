package services

import (
	"context"
	"errors"
	"log"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/repositories"
)

// CartAccess is the strategy interface over "where is the current cart
// stored". Both variants expose the same operations: an anonymous cart
// lives behind a client-held token in a key-value store, an
// authenticated cart lives in the cart repository keyed by user id.
type CartAccess interface {
	GetCart(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	ClearCart(ctx context.Context) error
}

// CartService builds cart access strategies and owns the guest-to-user
// merge performed on login.
type CartService struct {
	cartRepo      repositories.CartRepository
	productRepo   repositories.ProductRepository
	guestStore    repositories.GuestCartStore
	taxPercentage float64
}

// NewCartService creates a new CartService. taxPercentage is the rate
// applied to every new cart.
func NewCartService(
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	guestStore repositories.GuestCartStore,
	taxPercentage float64,
) *CartService {
	return &CartService{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		guestStore:    guestStore,
		taxPercentage: taxPercentage,
	}
}

// ForGuest returns the anonymous strategy bound to a cart token.
func (s *CartService) ForGuest(token string) CartAccess {
	return &guestCartAccess{service: s, token: token}
}

// ForUser returns the authenticated strategy bound to a user id.
func (s *CartService) ForUser(userID string) CartAccess {
	return &userCartAccess{service: s, userID: userID}
}

// MergeGuestCart moves the lines of an anonymous cart into the user's
// persisted cart and clears the anonymous one. The merge is best-effort
// per line: a line that fails its stock check is logged and skipped so
// one sold-out product cannot sink the rest of the guest cart. Every
// other cart mutation stays strict; only the merge is lossy.
func (s *CartService) MergeGuestCart(ctx context.Context, token, userID string) error {
	guest := s.ForGuest(token)
	user := s.ForUser(userID)

	guestCart, err := guest.GetCart(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil
		}
		return err
	}

	for _, item := range guestCart.Items() {
		if _, err := user.AddItem(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("Skipping guest cart line for product %s during merge: %v", item.ProductID, err)
		}
	}

	return guest.ClearCart(ctx)
}

// guestCartAccess stores carts as {cartId, lines} blobs in the guest
// store. Only line id, product id and quantity are persisted
// client-side; price and name come from the catalog on every read.
type guestCartAccess struct {
	service *CartService
	token   string
}

// GetCart rehydrates the anonymous cart by resolving each stored line
// against the current catalog. A product that can no longer be
// resolved is silently dropped: guest cookie data is last-write-wins
// and treating stale entries as absent beats failing the whole read.
func (a *guestCartAccess) GetCart(ctx context.Context) (*domain.Cart, error) {
	blob, err := a.service.guestStore.Get(ctx, a.token)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			cart, err := domain.NewCart("", a.service.taxPercentage)
			if err != nil {
				return nil, err
			}
			if err := a.save(ctx, cart); err != nil {
				return nil, err
			}
			return cart, nil
		}
		return nil, err
	}

	items := make([]*domain.CartItem, 0, len(blob.Lines))
	for _, line := range blob.Lines {
		product, err := a.service.productRepo.GetByID(line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				log.Printf("Dropping guest cart line %s: product %s no longer exists", line.LineID, line.ProductID)
				continue
			}
			return nil, err
		}
		item, err := domain.RehydrateCartItem(line.LineID, blob.CartID, *product, line.Quantity)
		if err != nil {
			log.Printf("Dropping guest cart line %s: %v", line.LineID, err)
			continue
		}
		items = append(items, item)
	}

	return domain.RehydrateCart(blob.CartID, "", a.service.taxPercentage, items)
}

func (a *guestCartAccess) AddItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	cart, err := a.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	product, err := a.service.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddProduct(*product, quantity); err != nil {
		return nil, err
	}
	if err := a.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (a *guestCartAccess) RemoveItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	cart, err := a.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveProduct(productID, quantity); err != nil {
		return nil, err
	}
	if err := a.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (a *guestCartAccess) ClearCart(ctx context.Context) error {
	return a.service.guestStore.Delete(ctx, a.token)
}

// save serializes the cart back into the blob format. Full product
// data is never persisted client-side.
func (a *guestCartAccess) save(ctx context.Context, cart *domain.Cart) error {
	blob := &repositories.GuestCartBlob{
		CartID: cart.ID,
		Lines:  make([]repositories.GuestCartLine, 0, cart.LineCount()),
	}
	for _, item := range cart.Items() {
		blob.Lines = append(blob.Lines, repositories.GuestCartLine{
			LineID:    item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return a.service.guestStore.Put(ctx, a.token, blob)
}

// userCartAccess stores carts through the cart repository. Each
// operation loads the aggregate, mutates it and re-persists through
// the reconciling save.
type userCartAccess struct {
	service *CartService
	userID  string
}

// GetCart loads the user's persisted cart, creating an empty one on
// first access.
func (a *userCartAccess) GetCart(_ context.Context) (*domain.Cart, error) {
	cart, err := a.service.cartRepo.FindByUserID(a.userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return nil, err
	}

	cart, err = domain.NewCart(a.userID, a.service.taxPercentage)
	if err != nil {
		return nil, err
	}
	if err := a.service.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (a *userCartAccess) AddItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	cart, err := a.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	product, err := a.service.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddProduct(*product, quantity); err != nil {
		return nil, err
	}
	if err := a.service.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (a *userCartAccess) RemoveItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	cart, err := a.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveProduct(productID, quantity); err != nil {
		return nil, err
	}
	if err := a.service.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (a *userCartAccess) ClearCart(ctx context.Context) error {
	cart, err := a.GetCart(ctx)
	if err != nil {
		return err
	}
	cart.Clear()
	return a.service.cartRepo.Save(cart)
}
