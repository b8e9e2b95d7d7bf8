// file: internals/features/checkout/route/checkout_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	ctrl "coursedesk_backend/internals/features/checkout/controller"
	svc "coursedesk_backend/internals/features/checkout/service"
	"coursedesk_backend/internals/middlewares"
)

func CheckoutPublicRoutes(r fiber.Router, s *svc.Service, webhookSecret string) {
	h := ctrl.NewCheckoutController(s, webhookSecret)

	r.Post("/checkout/intent", middlewares.CheckoutRateLimiter(), h.CreateIntent)
	r.Post("/stripe/webhook", h.StripeWebhook)
}
