package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
	"github.com/olegkovalyov/next-ecommerce-sub000/internal/services"
)

// OrderHandler handles HTTP requests for orders. Every route requires
// an authenticated user; the user id comes from the JWT middleware.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Patch("/:id/pay", h.HandleMarkPaid)
	orderRoutes.Patch("/:id/ship", h.HandleMarkShipped)
	orderRoutes.Patch("/:id/deliver", h.HandleMarkDelivered)
	orderRoutes.Patch("/:id/cancel", h.HandleCancel)
}

func requesterID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// HandleGetOrders retrieves the authenticated user's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByUser(requesterID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return respondError(c, "Could not retrieve orders", err)
	}
	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}
	return c.JSON(views)
}

// HandleGetOrderByID retrieves a single order owned by the requester.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID, requesterID(c))
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return respondError(c, "Could not retrieve order", err)
	}
	return c.JSON(newOrderView(order))
}

// PlaceOrderRequest represents the checkout request body.
type PlaceOrderRequest struct {
	FullName      string `json:"full_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method"`
}

// HandlePlaceOrder turns the user's cart into an order.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing place order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	address := domain.ShippingAddress{
		FullName:      req.FullName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
	}

	order, err := h.service.PlaceOrder(requesterID(c), address, req.PaymentMethod)
	if err != nil {
		log.Printf("Error placing order: %v", err)
		return respondError(c, "Could not place order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newOrderView(order))
}

// MarkPaidRequest represents the payment confirmation body.
type MarkPaidRequest struct {
	PaymentResult string `json:"payment_result"`
}

// HandleMarkPaid records payment for an order.
func (h *OrderHandler) HandleMarkPaid(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req MarkPaidRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing mark paid request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.service.GetOrderByID(orderID, requesterID(c)); err != nil {
		return respondError(c, "Could not update order", err)
	}
	order, err := h.service.MarkOrderPaid(orderID, req.PaymentResult)
	if err != nil {
		log.Printf("Error marking order %s paid: %v", orderID, err)
		return respondError(c, "Could not mark order as paid", err)
	}
	return c.JSON(newOrderView(order))
}

// MarkShippedRequest represents the shipment body.
type MarkShippedRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

// HandleMarkShipped records shipment of an order.
func (h *OrderHandler) HandleMarkShipped(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req MarkShippedRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing mark shipped request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.service.GetOrderByID(orderID, requesterID(c)); err != nil {
		return respondError(c, "Could not update order", err)
	}
	order, err := h.service.MarkOrderShipped(orderID, req.TrackingNumber)
	if err != nil {
		log.Printf("Error marking order %s shipped: %v", orderID, err)
		return respondError(c, "Could not mark order as shipped", err)
	}
	return c.JSON(newOrderView(order))
}

// HandleMarkDelivered records delivery of an order.
func (h *OrderHandler) HandleMarkDelivered(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if _, err := h.service.GetOrderByID(orderID, requesterID(c)); err != nil {
		return respondError(c, "Could not update order", err)
	}
	order, err := h.service.MarkOrderDelivered(orderID)
	if err != nil {
		log.Printf("Error marking order %s delivered: %v", orderID, err)
		return respondError(c, "Could not mark order as delivered", err)
	}
	return c.JSON(newOrderView(order))
}

// HandleCancel aborts an unshipped order.
func (h *OrderHandler) HandleCancel(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if _, err := h.service.GetOrderByID(orderID, requesterID(c)); err != nil {
		return respondError(c, "Could not update order", err)
	}
	order, err := h.service.CancelOrder(orderID)
	if err != nil {
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return respondError(c, "Could not cancel order", err)
	}
	return c.JSON(newOrderView(order))
}
