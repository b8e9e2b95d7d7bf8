// file: internals/route/details/catalog_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ClassRoute "coursedesk_backend/internals/features/catalog/classes/route"
	CourseRoute "coursedesk_backend/internals/features/catalog/courses/route"
	"coursedesk_backend/internals/features/integrations/webflow"
)

func CatalogPublicRoutes(r fiber.Router, db *gorm.DB) {
	ClassRoute.ClassPublicRoutes(r, db)
}

func CatalogAdminRoutes(r fiber.Router, db *gorm.DB, cms webflow.CMS) {
	CourseRoute.CourseAdminRoutes(r, db)
	ClassRoute.ClassAdminRoutes(r, db, cms)
}
