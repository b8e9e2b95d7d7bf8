package details

import (
	"github.com/gofiber/fiber/v2"

	CheckoutRoute "coursedesk_backend/internals/features/checkout/route"
	checkoutSvc "coursedesk_backend/internals/features/checkout/service"
)

func CheckoutPublicRoutes(r fiber.Router, s *checkoutSvc.Service, webhookSecret string) {
	CheckoutRoute.CheckoutPublicRoutes(r, s, webhookSecret)
}
