package handlers

import (
	"github.com/flowershop/forms"
	"github.com/flowershop/store"
	"github.com/gofiber/fiber/v2"
)

const (
	individualOrderCreated    = "We will contact you soon. Meanwhile, have a cup of tea 😊"
	individualOrderInvalid    = "The form was filled in incorrectly:"
	individualOrderNotAllowed = "Method not allowed. Use POST."
)

// IndividualOrder accepts the individual order form. Only POST is allowed;
// every answer is JSON.
func (h *Handler) IndividualOrder(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		c.Set(fiber.HeaderAllow, fiber.MethodPost)
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"detail": individualOrderNotAllowed,
			"status": fiber.StatusMethodNotAllowed,
		})
	}

	var form forms.IndividualOrderForm
	if err := c.BodyParser(&form); err != nil {
		return invalidForm(c, forms.Errors{
			"__all__": {{Message: "The request body could not be read.", Code: "invalid"}},
		})
	}

	if err := form.Validate(); err != nil {
		errs, ok := err.(forms.Errors)
		if !ok {
			return err
		}
		return invalidForm(c, errs)
	}

	order := form.Order()
	if err := store.CreateIndividualOrder(h.DB.WithContext(c.UserContext()), order); err != nil {
		logger(c).WithError(err).Error("individual order was not saved")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": fiber.ErrInternalServerError.Message,
			"status": fiber.StatusInternalServerError,
		})
	}

	if err := h.Publisher.PublishIndividualOrder(c.UserContext(), order); err != nil {
		logger(c).WithError(err).WithField("reference", order.Reference).Warn("individual order notification failed")
	}
	logger(c).WithField("reference", order.Reference).Info("individual order received")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"detail": individualOrderCreated,
		"status": "success",
	})
}

func invalidForm(c *fiber.Ctx, errs forms.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": individualOrderInvalid,
		"errors": errs.AsJSON(),
		"status": fiber.StatusBadRequest,
	})
}
