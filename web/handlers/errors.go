package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler answers failed requests. JSON callers get
// {"detail", "status"}; everyone else gets the error page.
func (h *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := fiber.ErrInternalServerError.Message

	var fe *fiber.Error
	if errors.As(httpError(err), &fe) {
		code = fe.Code
		message = fe.Message
	}

	entry := logger(c).WithField("status", code)
	if code >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.Debug(message)
	}

	if wantsJSON(c) {
		return c.Status(code).JSON(fiber.Map{
			"detail": message,
			"status": code,
		})
	}

	data := fiber.Map{
		"Title":   message,
		"Code":    code,
		"Message": message,
	}
	cs, cartErr := h.loadCarts(c)
	if cartErr != nil {
		cs = nil
	}
	if renderErr := c.Status(code).Render("pages/error", h.mergeContext(c, cs, data), "layouts/base"); renderErr != nil {
		logger(c).WithError(renderErr).Error("error page could not be rendered")
		return c.Status(code).SendString(message)
	}
	return nil
}

// wantsJSON reports whether the caller talks JSON rather than HTML
func wantsJSON(c *fiber.Ctx) bool {
	path := c.Path()
	if strings.HasPrefix(path, "/cart/") || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/individual-order") {
		return true
	}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return true
	}
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
