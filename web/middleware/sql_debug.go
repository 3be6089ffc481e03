package middleware

import (
	"strconv"

	"github.com/flowershop/database"
	"github.com/gofiber/fiber/v2"
)

// SQLDebugMiddleware marks where the request starts in the query log so pages
// can show the statements they ran. The total is also sent as a header.
func SQLDebugMiddleware(ql *database.QueryLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mark := ql.Counter()
		c.Locals("SQLMark", mark)

		err := c.Next()

		c.Set("X-SQL-Queries", strconv.Itoa(ql.Counter()-mark))
		return err
	}
}
