package handlers

import (
	"log"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	users := router.Group("/user")
	users.Post("/register", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Post("/admin", h.HandleAdminLogin)
	users.Post("/create-admin", adminRequired, h.HandleCreateAdmin)
	users.Post("/details", authRequired, h.HandleUserDetails)
	users.Get("/verify", authRequired, h.HandleVerifyToken)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: req.Password}
	token, err := h.authService.RegisterUser(&user)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// HandleAdminLogin authenticates admin accounts against the database role.
func (h *AuthHandler) HandleAdminLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	token, err := h.authService.AdminLogin(req.Email, req.Password)
	if err != nil {
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// HandleCreateAdmin creates an additional admin account.
func (h *AuthHandler) HandleCreateAdmin(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	admin := models.User{Name: req.Name, Email: req.Email, Password: req.Password}
	token, err := h.authService.CreateAdmin(&admin)
	if err != nil {
		log.Printf("Error creating admin: %v", err)
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"message": "Admin created successfully",
	})
}

// UserDetailsRequest represents the request body for the details endpoint.
type UserDetailsRequest struct {
	UserID string `json:"userId"`
}

// HandleUserDetails returns safe profile fields for the caller's own
// account.
func (h *AuthHandler) HandleUserDetails(c *fiber.Ctx) error {
	var req UserDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	callerID := authUserID(c)
	if req.UserID == "" {
		req.UserID = callerID
	}
	if req.UserID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You are not authorized to access this information",
		})
	}

	user, err := h.authService.GetUser(req.UserID)
	if err != nil {
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// HandleVerifyToken confirms the caller's token resolved to a user.
func (h *AuthHandler) HandleVerifyToken(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Token is valid",
	})
}
