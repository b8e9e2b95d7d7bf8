// file: internals/features/catalog/courses/route/course_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "coursedesk_backend/internals/features/catalog/courses/controller"
)

func CourseAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := ctrl.NewCourseController(db)

	g := r.Group("/courses")
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Post("/", h.Create)
	g.Patch("/:id", h.Patch)
	g.Delete("/:id", h.Delete)
}
