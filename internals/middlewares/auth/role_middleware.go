package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const RoleAdmin = "admin"

// RequireRole allows the request when the user holds any of the roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		have, _ := c.Locals(LocRoles).([]string)
		for _, want := range roles {
			for _, h := range have {
				if strings.EqualFold(h, want) {
					return c.Next()
				}
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
}

func RequireAdmin() fiber.Handler { return RequireRole(RoleAdmin) }

// Actor identifies the caller for audit entries ("system" when anonymous).
func Actor(c *fiber.Ctx) string {
	if email, _ := c.Locals(LocEmail).(string); email != "" {
		return email
	}
	if id, _ := c.Locals(LocUserID).(string); id != "" {
		return id
	}
	return "system"
}
