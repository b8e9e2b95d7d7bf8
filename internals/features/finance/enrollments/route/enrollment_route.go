// file: internals/features/finance/enrollments/route/enrollment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "coursedesk_backend/internals/features/finance/enrollments/controller"
)

func EnrollmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := ctrl.NewEnrollmentController(db)

	g := r.Group("/enrollments")
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
}
