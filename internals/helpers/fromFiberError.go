package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"coursedesk_backend/internals/helpers/logger"
)

// ErrorHandler renders every error returned by a handler in the standard
// JSON shape. Non-fiber errors become a generic 500 and are logged.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return JsonValidationError(c, fieldErr.Fields)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			log := logger.FromContext(c.UserContext())
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
		return JsonError(c, fe.Code, fe.Message)
	}

	log := logger.FromContext(c.UserContext())
	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}
