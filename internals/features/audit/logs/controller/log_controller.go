// file: internals/features/audit/logs/controller/log_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coursedesk_backend/internals/features/audit/logs/model"
	helper "coursedesk_backend/internals/helpers"
)

type LogController struct {
	DB *gorm.DB
}

func NewLogController(db *gorm.DB) *LogController {
	return &LogController{DB: db}
}

// GET /api/a/logs?action=&entity=&entity_id=&actor=&page=&per_page=
func (ctl *LogController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.LogModel{})
	if s := strings.TrimSpace(c.Query("action")); s != "" {
		tx = tx.Where("log_action = ?", s)
	}
	if s := strings.TrimSpace(c.Query("entity")); s != "" {
		tx = tx.Where("log_entity = ?", s)
	}
	if s := strings.TrimSpace(c.Query("entity_id")); s != "" {
		tx = tx.Where("log_entity_id = ?", s)
	}
	if s := strings.TrimSpace(c.Query("actor")); s != "" {
		tx = tx.Where("log_actor ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "log")
	}

	var rows []model.LogModel
	if err := tx.Order("log_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromDBError(err, "log")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}
