// file: internals/features/people/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "coursedesk_backend/internals/features/people/students/controller"
)

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := ctrl.NewStudentController(db)

	g := r.Group("/students")
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Patch("/:id", h.Patch)
}
