package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"coursedesk_backend/internals/configs"
	reqlogger "coursedesk_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(15 * time.Second))
	app.Use(reqlogger.LoggerMiddleware(configs.GetEnv("BUSINESS_TIMEZONE", "UTC")))
	app.Use(CorsMiddleware(configs.CorsOrigins))
	app.Use(GlobalRateLimiter())
}
