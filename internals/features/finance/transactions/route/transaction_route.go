// file: internals/features/finance/transactions/route/transaction_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "coursedesk_backend/internals/features/finance/transactions/controller"
)

// TransactionAdminRoutes mounts under /api/a (admin auth applied above).
func TransactionAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := ctrl.NewTransactionController(db)

	g := r.Group("/transactions")
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Patch("/:id/status", h.UpdateStatus)
}
