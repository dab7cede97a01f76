package handlers

import (
	"log"

	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the server-side cart mirror.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. All cart
// routes operate on the authenticated caller's cart.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cart := router.Group("/cart", authRequired)
	cart.Post("/add", h.HandleAddToCart)
	cart.Post("/update", h.HandleUpdateCart)
	cart.Post("/get", h.HandleGetCart)
}

// CartItemRequest represents the request body for cart mutations.
type CartItemRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// HandleAddToCart increments one product+size by one.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cart, err := h.service.AddToCart(authUserID(c), req.ItemID, req.Size)
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"cartData": cart,
	})
}

// HandleUpdateCart sets the quantity of one product+size.
func (h *CartHandler) HandleUpdateCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cart, err := h.service.UpdateCart(authUserID(c), req.ItemID, req.Size, req.Quantity)
	if err != nil {
		log.Printf("Error updating cart: %v", err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"cartData": cart,
	})
}

// HandleGetCart returns the caller's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(authUserID(c))
	if err != nil {
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"cartData": cart,
	})
}
