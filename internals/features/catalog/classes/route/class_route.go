// file: internals/features/catalog/classes/route/class_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "coursedesk_backend/internals/features/catalog/classes/controller"
	"coursedesk_backend/internals/features/integrations/webflow"
)

func ClassAdminRoutes(r fiber.Router, db *gorm.DB, cms webflow.CMS) {
	h := ctrl.NewClassController(db, cms)

	g := r.Group("/classes")
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Get("/:id/installment-plan", h.PreviewPlan)
	g.Post("/", h.Create)
	g.Post("/:id/sync", h.Sync)
	g.Patch("/:id", h.Patch)
	g.Delete("/:id", h.Delete)
}

func ClassPublicRoutes(r fiber.Router, db *gorm.DB) {
	h := ctrl.NewClassController(db, nil)

	g := r.Group("/classes")
	g.Get("/", h.ListPublic)
	g.Get("/:code", h.GetPublicByCode)
}
