package handlers

import (
	"errors"
	"fmt"

	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// failWith maps a service error onto the {success:false, message} envelope
// with an HTTP status derived from the sentinel it wraps.
func failWith(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidStatus):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrEmailRegistered):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrGateway):
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// badRequest is the envelope for malformed or invalid request bodies.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// validationMessage flattens validator errors into one toast-friendly
// message string.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		e := validationErrors[0]
		return fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
	}
	return "Validation failed"
}

// authUserID returns the user ID resolved by the auth middleware.
func authUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
