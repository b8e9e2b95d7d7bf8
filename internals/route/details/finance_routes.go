// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	EnrollmentRoute "coursedesk_backend/internals/features/finance/enrollments/route"
	PaymentRoute "coursedesk_backend/internals/features/finance/payments/route"
	ReconciliationRoute "coursedesk_backend/internals/features/finance/reconciliation/route"
	recSvc "coursedesk_backend/internals/features/finance/reconciliation/service"
	TransactionRoute "coursedesk_backend/internals/features/finance/transactions/route"
)

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB, payouts recSvc.PayoutSource) {
	EnrollmentRoute.EnrollmentAdminRoutes(r, db)
	TransactionRoute.TransactionAdminRoutes(r, db)
	PaymentRoute.PaymentAdminRoutes(r, db)
	ReconciliationRoute.ReconciliationAdminRoutes(r, db, payouts)
}
