package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

// statusFromError maps the domain error taxonomy to an HTTP status.
func statusFromError(err error) int {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeValidation):
		return fiber.StatusBadRequest
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return fiber.StatusNotFound
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
