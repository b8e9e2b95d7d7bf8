package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	LogRoute "coursedesk_backend/internals/features/audit/logs/route"
	StudentRoute "coursedesk_backend/internals/features/people/students/route"
)

func PeopleAdminRoutes(r fiber.Router, db *gorm.DB) {
	StudentRoute.StudentAdminRoutes(r, db)
}

func AuditAdminRoutes(r fiber.Router, db *gorm.DB) {
	LogRoute.LogAdminRoutes(r, db)
}
