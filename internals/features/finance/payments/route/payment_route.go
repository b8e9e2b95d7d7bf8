// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "coursedesk_backend/internals/features/finance/payments/controller"
)

func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := ctrl.NewPaymentController(db)

	r.Get("/payments", h.ListPayments)

	inv := r.Group("/invoices-to-import")
	inv.Get("/", h.ListInvoicesToImport)
	inv.Post("/mark-exported", h.MarkExported)

	ev := r.Group("/payment-gateway-events")
	ev.Get("/", h.ListGatewayEvents)
	ev.Get("/:id", h.GetGatewayEvent)
}
