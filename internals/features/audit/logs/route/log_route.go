// file: internals/features/audit/logs/route/log_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "coursedesk_backend/internals/features/audit/logs/controller"
)

func LogAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := ctrl.NewLogController(db)
	r.Get("/logs", h.List)
}
