// file: internals/features/finance/reconciliation/route/reconciliation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "coursedesk_backend/internals/features/finance/reconciliation/controller"
	svc "coursedesk_backend/internals/features/finance/reconciliation/service"
)

func ReconciliationAdminRoutes(r fiber.Router, db *gorm.DB, payouts svc.PayoutSource) {
	h := ctrl.NewReconciliationController(db, payouts)

	g := r.Group("/reconciliation")
	g.Get("/payouts", h.ListPayoutGroups)
	g.Post("/transactions/:id/reconcile", h.Reconcile)
	g.Post("/sync", h.SyncPayouts)
}
