package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetSQLLogs returns the most recent SQL statements as JSON
func (h *Handler) GetSQLLogs(c *fiber.Ctx) error {
	return c.JSON(h.QueryLog.GetRecentQueries(20))
}

// ClearSQLLogs clears all SQL logs
func (h *Handler) ClearSQLLogs(c *fiber.Ctx) error {
	h.QueryLog.Clear()
	return c.SendStatus(fiber.StatusOK)
}
