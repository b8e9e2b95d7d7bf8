// file: internals/features/catalog/courses/controller/course_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	classModel "coursedesk_backend/internals/features/catalog/classes/model"
	dto "coursedesk_backend/internals/features/catalog/courses/dto"
	model "coursedesk_backend/internals/features/catalog/courses/model"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/middlewares/auth"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

/*
=========================================================

	LIST
	GET /api/a/courses
	Query: q, kind, is_active, page, per_page

=========================================================
*/
func (ctl *CourseController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.CourseModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("course_name ILIKE ? OR course_code ILIKE ?", like, like)
	}
	if k := strings.ToLower(strings.TrimSpace(c.Query("kind"))); k != "" {
		tx = tx.Where("course_kind = ?", k)
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("is_active"))); s == "true" || s == "false" {
		tx = tx.Where("course_is_active = ?", s == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "course")
	}

	var rows []model.CourseModel
	if err := tx.Order("course_code ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromDBError(err, "course")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

// GET /api/a/courses/:id
func (ctl *CourseController) GetByID(c *fiber.Ctx) error {
	row, err := ctl.find(c)
	if err != nil {
		return err
	}

	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&classModel.ClassModel{}).
		Where("class_course_code = ?", row.CourseCode).
		Count(&count).Error; err != nil {
		return helper.FromDBError(err, "class")
	}
	return helper.JsonOK(c, "ok", dto.CourseResponse{CourseModel: *row, CourseClassCount: count})
}

// POST /api/a/courses
func (ctl *CourseController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	req.Normalize()
	if fields := helper.Validate(&req); fields != nil {
		return helper.ValidationError(c, fields)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.FromDBError(err, "course")
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action: "course.created", Entity: "course", EntityID: m.CourseID.String(), Actor: auth.Actor(c),
		Details: map[string]any{"course_code": m.CourseCode},
	})
	return helper.JsonCreated(c, "course created", m)
}

// PATCH /api/a/courses/:id
func (ctl *CourseController) Patch(c *fiber.Ctx) error {
	row, err := ctl.find(c)
	if err != nil {
		return err
	}

	var req dto.PatchCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	upd, bad := req.Apply()
	if bad != nil {
		return helper.ValidationError(c, bad)
	}
	if len(upd) == 0 {
		return helper.JsonOK(c, "nothing to update", row)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Model(row).Updates(upd).Error; err != nil {
		return helper.FromDBError(err, "course")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Where("course_id = ?", row.CourseID).Take(row).Error; err != nil {
		return helper.FromDBError(err, "course")
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action: "course.updated", Entity: "course", EntityID: row.CourseID.String(), Actor: auth.Actor(c),
	})
	return helper.JsonUpdated(c, "course updated", row)
}

// DELETE /api/a/courses/:id (soft, refused while classes exist)
func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	row, err := ctl.find(c)
	if err != nil {
		return err
	}

	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&classModel.ClassModel{}).
		Where("class_course_code = ?", row.CourseCode).
		Count(&count).Error; err != nil {
		return helper.FromDBError(err, "class")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "course still has classes")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(row).Error; err != nil {
		return helper.FromDBError(err, "course")
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action: "course.deleted", Entity: "course", EntityID: row.CourseID.String(), Actor: auth.Actor(c),
	})
	return helper.JsonDeleted(c, "course deleted", fiber.Map{"course_id": row.CourseID})
}

func (ctl *CourseController) find(c *fiber.Ctx) (*model.CourseModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	var row model.CourseModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("course_id = ?", id).Take(&row).Error; err != nil {
		return nil, helper.FromDBError(err, "course")
	}
	return &row, nil
}
