package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/services"
)

// CartTokenCookie is the cookie holding the anonymous cart token.
const CartTokenCookie = "cart_token"

const cartTokenTTL = 7 * 24 * time.Hour

// CartHandler handles HTTP requests for the cart. The same routes serve
// authenticated users (persisted cart) and guests (cookie token bound
// to the guest store); the strategy is picked per request.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. The
// group is expected to run behind middleware.AuthOptional.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// access picks the strategy for the request: a JWT-authenticated user
// gets the persisted cart, everyone else gets the token-backed guest
// cart. A missing guest token is issued on the spot.
func (h *CartHandler) access(c *fiber.Ctx) services.CartAccess {
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		return h.service.ForUser(userID)
	}

	token := c.Cookies(CartTokenCookie)
	if token == "" {
		token = uuid.New().String()
		c.Cookie(&fiber.Cookie{
			Name:     CartTokenCookie,
			Value:    token,
			Expires:  time.Now().Add(cartTokenTTL),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	return h.service.ForGuest(token)
}

// HandleGetCart returns the current cart with computed totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.access(c).GetCart(c.Context())
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return respondError(c, "Could not retrieve cart", err)
	}
	return c.JSON(newCartView(cart))
}

// AddItemRequest represents the request body for adding a product.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem adds a product to the current cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.access(c).AddItem(c.Context(), req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		return respondError(c, "Could not add item to cart", err)
	}
	return c.JSON(newCartView(cart))
}

// HandleRemoveItem removes quantity units of a product from the cart.
// The quantity query parameter defaults to 1; removing at least the
// current line quantity deletes the whole line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	quantity := c.QueryInt("quantity", 1)

	cart, err := h.access(c).RemoveItem(c.Context(), productID, quantity)
	if err != nil {
		log.Printf("Error removing product %s from cart: %v", productID, err)
		return respondError(c, "Could not remove item from cart", err)
	}
	return c.JSON(newCartView(cart))
}

// HandleClearCart empties the current cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.access(c).ClearCart(c.Context()); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return respondError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
