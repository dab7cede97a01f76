package handlers

import (
	"log"
	"strings"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	orders := router.Group("/order")
	orders.Post("/place", authRequired, h.HandlePlaceOrder)
	orders.Post("/stripe", authRequired, h.HandlePlaceOrderStripe)
	orders.Post("/verifystripe", authRequired, h.HandleVerifyStripe)
	orders.Post("/userorders", authRequired, h.HandleUserOrders)
	orders.Post("/status", adminRequired, h.HandleUpdateStatus)
	orders.Get("/admin/list", adminRequired, h.HandleListOrders)
}

// PlaceOrderRequest represents the request body for order placement. The
// amount is the client-computed total, stored as submitted.
type PlaceOrderRequest struct {
	Address models.Address     `json:"address" validate:"required"`
	Items   []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Amount  float64            `json:"amount" validate:"required,gt=0"`
}

// HandlePlaceOrder creates a cash-on-delivery order for the caller.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing place order request: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	order, err := h.service.PlaceOrder(authUserID(c), req.Address, req.Items, req.Amount)
	if err != nil {
		log.Printf("Error placing order: %v", err)
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order Placed",
		"orderId": order.ID,
	})
}

// HandlePlaceOrderStripe creates an online order and returns the hosted
// checkout URL. The callback URLs point at the caller's origin.
func (h *OrderHandler) HandlePlaceOrderStripe(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing stripe order request: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	origin := c.Get("Origin")
	if origin == "" {
		origin = c.BaseURL()
	}

	_, sessionURL, err := h.service.PlaceOrderStripe(authUserID(c), req.Address, req.Items, req.Amount, origin)
	if err != nil {
		log.Printf("Error placing stripe order: %v", err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"session_url": sessionURL,
	})
}

// flexBool accepts JSON true/false as well as the string forms "true" and
// "false" that redirect query parameters get forwarded as.
type flexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *flexBool) UnmarshalJSON(data []byte) error {
	*b = flexBool(strings.Trim(string(data), `"`) == "true")
	return nil
}

// VerifyStripeRequest represents the request body for payment
// reconciliation.
type VerifyStripeRequest struct {
	OrderID string   `json:"orderId" validate:"required"`
	Success flexBool `json:"success"`
	UserID  string   `json:"userId"`
}

// HandleVerifyStripe reconciles the gateway redirect result for an order.
func (h *OrderHandler) HandleVerifyStripe(c *fiber.Ctx) error {
	var req VerifyStripeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	// The cart to clear is always the caller's own.
	if err := h.service.VerifyStripePayment(req.OrderID, authUserID(c), bool(req.Success)); err != nil {
		log.Printf("Error verifying payment for order %s: %v", req.OrderID, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success": bool(req.Success),
	})
}

// HandleUserOrders lists the caller's orders.
func (h *OrderHandler) HandleUserOrders(c *fiber.Ctx) error {
	orders, err := h.service.UserOrders(authUserID(c))
	if err != nil {
		log.Printf("Error listing user orders: %v", err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
	})
}

// UpdateStatusRequest represents the admin status update body.
type UpdateStatusRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

// HandleUpdateStatus overwrites an order's status.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	if err := h.service.UpdateStatus(req.OrderID, req.Status); err != nil {
		log.Printf("Error updating status for order %s: %v", req.OrderID, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status updated",
	})
}

// HandleListOrders returns one page of the admin order listing.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	filter := repositories.OrderFilter{
		Status:        c.Query("status"),
		PaymentMethod: c.Query("paymentMethod"),
	}

	orders, pagination, err := h.service.ListOrders(filter, page, limit)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"orders":     orders,
		"pagination": pagination,
	})
}
