// file: internals/features/checkout/controller/checkout_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	dto "coursedesk_backend/internals/features/checkout/dto"
	svc "coursedesk_backend/internals/features/checkout/service"
	"coursedesk_backend/internals/features/integrations/stripegw"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/logger"
)

type CheckoutController struct {
	Service       *svc.Service
	WebhookSecret string
}

func NewCheckoutController(s *svc.Service, webhookSecret string) *CheckoutController {
	return &CheckoutController{Service: s, WebhookSecret: webhookSecret}
}

/*
=========================================================

	POST /api/public/checkout/intent
	Body: { class_code, email, first_name, last_name, phone }

=========================================================
*/
func (h *CheckoutController) CreateIntent(c *fiber.Ctx) error {
	var req dto.CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	req.Normalize()
	if fields := helper.Validate(&req); fields != nil {
		return helper.ValidationError(c, fields)
	}

	out, err := h.Service.CreateIntent(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "payment intent created", out)
}

/*
=========================================================

	POST /api/public/stripe/webhook
	Signed by Stripe; the raw body is verified before decoding.
	2xx tells Stripe to stop; 5xx asks for a redelivery.

=========================================================
*/
func (h *CheckoutController) StripeWebhook(c *fiber.Ctx) error {
	if h.WebhookSecret == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "webhook is not configured")
	}

	payload := append([]byte(nil), c.Body()...)
	ev, err := stripegw.VerifyWebhook(payload, c.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		log := logger.FromContext(c.UserContext())
		log.Warn().Err(err).Str("ip", c.IP()).Msg("rejected stripe webhook")
		return fiber.NewError(fiber.StatusBadRequest, "invalid signature")
	}

	outcome, err := h.Service.HandleEvent(c.UserContext(), ev)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "event processing failed")
	}
	return c.JSON(dto.WebhookAck{
		Received:  true,
		EventID:   ev.ID,
		Outcome:   string(outcome),
		Duplicate: outcome == svc.OutcomeDuplicate,
	})
}
