package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	"coursedesk_backend/internals/helpers/logger"
)

const LocRequestID = "reqid"

// RequestContext assigns a request id, a request-scoped logger and a
// timeout-bound user context.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals(LocRequestID, id)

		log := logger.New().With().Str("request_id", id).Logger()
		ctx, cancel := context.WithTimeout(logger.WithContext(context.Background(), log), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		return c.Next()
	}
}
