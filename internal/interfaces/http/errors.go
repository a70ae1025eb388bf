package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain"
)

// respondError maps domain errors onto the uniform error body. Anything it
// does not recognise goes through the dependency classifier so the user sees
// a category instead of a raw driver message.
func respondError(c *fiber.Ctx, err error) error {
	var verr *billing.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "validation failed",
			Fields:  verr.Fields,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "resource not found",
		})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrStatusEditForbidden):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "STATUS_EDIT_FORBIDDEN", Message: "invoice status does not allow edits",
		})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INVALID_TRANSITION", Message: "illegal status transition",
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: "a record with the same key already exists",
		})
	case errors.Is(err, domain.ErrNumberingExhausted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "NUMBERING_EXHAUSTED", Message: "could not reserve a unique invoice number, try again",
		})
	}

	cat := domain.ClassifyDependencyError(err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: domain.DependencyMessage(cat, err),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: message,
	})
}
