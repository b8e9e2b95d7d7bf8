package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svc "coursedesk_backend/internals/features/checkout/service"
	helper "coursedesk_backend/internals/helpers"
)

func newApp(h *CheckoutController) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/intent", h.CreateIntent)
	app.Post("/webhook", h.StripeWebhook)
	return app
}

func TestStripeWebhook_NotConfigured(t *testing.T) {
	app := newApp(NewCheckoutController(&svc.Service{}, ""))

	resp, err := app.Test(httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestStripeWebhook_RejectsBadSignature(t *testing.T) {
	app := newApp(NewCheckoutController(&svc.Service{}, "whsec_test"))

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{"id":"evt_1","type":"payment_intent.succeeded"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateIntent_ValidatesBody(t *testing.T) {
	app := newApp(NewCheckoutController(&svc.Service{}, ""))

	req := httptest.NewRequest("POST", "/intent", strings.NewReader(`{"class_code":"EMR-003","email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
