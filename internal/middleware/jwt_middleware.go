package middleware

import (
	"log"
	"strings"

	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Empty string means the header was missing or malformed.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthRequired is a Fiber middleware that checks for a valid JWT token
// and stores the resolved user ID and role in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required. Please log in.",
				"code":    "AUTH_REQUIRED",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
				"code":    "INVALID_TOKEN",
			})
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token format",
				"code":    "INVALID_TOKEN_FORMAT",
			})
		}

		// The token subject must still resolve to an account.
		if _, err := authService.GetUser(userID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
				"code":    "USER_NOT_FOUND",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("role", claims["role"])
		return c.Next()
	}
}

// AdminRequired is a Fiber middleware that additionally requires the
// token's user to hold the admin role in the database. The database role
// is the single source of truth; there is no credential fallback.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not Authorized",
				"code":    "AUTH_REQUIRED",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
				"code":    "INVALID_TOKEN",
			})
		}

		userID, _ := claims["user_id"].(string)
		user, err := authService.GetUser(userID)
		if err != nil || !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Invalid Credentials",
				"code":    "ADMIN_REQUIRED",
			})
		}

		c.Locals("user_id", user.ID)
		c.Locals("role", user.Role)
		return c.Next()
	}
}
