// file: internals/features/catalog/classes/controller/class_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	dto "coursedesk_backend/internals/features/catalog/classes/dto"
	model "coursedesk_backend/internals/features/catalog/classes/model"
	svc "coursedesk_backend/internals/features/catalog/classes/service"
	courseModel "coursedesk_backend/internals/features/catalog/courses/model"
	enrModel "coursedesk_backend/internals/features/finance/enrollments/model"
	txSvc "coursedesk_backend/internals/features/finance/transactions/service"
	"coursedesk_backend/internals/features/integrations/webflow"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
	"coursedesk_backend/internals/helpers/logger"
	"coursedesk_backend/internals/middlewares/auth"
)

type ClassController struct {
	DB  *gorm.DB
	CMS webflow.CMS // nil when the CMS is not configured
}

func NewClassController(db *gorm.DB, cms webflow.CMS) *ClassController {
	return &ClassController{DB: db, CMS: cms}
}

/*
=========================================================

	LIST
	GET /api/a/classes
	Query: course_code, q, is_published, upcoming=true, page, per_page

=========================================================
*/
func (ctl *ClassController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.ClassModel{})
	if cc := strings.ToUpper(strings.TrimSpace(c.Query("course_code"))); cc != "" {
		tx = tx.Where("class_course_code = ?", cc)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("class_title ILIKE ? OR class_code ILIKE ?", like, like)
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("is_published"))); s == "true" || s == "false" {
		tx = tx.Where("class_is_published = ?", s == "true")
	}
	if c.QueryBool("upcoming") {
		tx = tx.Where("class_start_date >= ?", dbtime.Today())
	}
	return ctl.list(c, tx, paging)
}

// GET /api/public/classes (published only)
func (ctl *ClassController) ListPublic(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.ClassModel{}).
		Where("class_is_published = TRUE").
		Where("class_start_date IS NULL OR class_start_date >= ?", dbtime.Today())
	if cc := strings.ToUpper(strings.TrimSpace(c.Query("course_code"))); cc != "" {
		tx = tx.Where("class_course_code = ?", cc)
	}
	return ctl.list(c, tx, paging)
}

func (ctl *ClassController) list(c *fiber.Ctx, tx *gorm.DB, paging helper.Paging) error {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "class")
	}

	var rows []model.ClassModel
	if err := tx.Order("class_start_date ASC NULLS LAST, class_code ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromDBError(err, "class")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

// GET /api/a/classes/:id
func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	cls, course, err := ctl.find(c)
	if err != nil {
		return err
	}

	var enrolled int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&enrModel.EnrollmentModel{}).
		Where("enrollment_class_id = ?", cls.ClassID).
		Count(&enrolled).Error; err != nil {
		return helper.FromDBError(err, "enrollment")
	}
	return helper.JsonOK(c, "ok", dto.ClassResponse{ClassModel: *cls, ClassCourseName: course.CourseName, ClassEnrolledCount: enrolled})
}

// GET /api/public/classes/:code
func (ctl *ClassController) GetPublicByCode(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	var cls model.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("class_code = ? AND class_is_published = TRUE", code).
		Take(&cls).Error; err != nil {
		return helper.FromDBError(err, "class")
	}
	var course courseModel.CourseModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("course_code = ?", cls.ClassCourseCode).
		Take(&course).Error; err != nil {
		return helper.FromDBError(err, "course")
	}
	return helper.JsonOK(c, "ok", dto.ClassResponse{ClassModel: cls, ClassCourseName: course.CourseName})
}

// POST /api/a/classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	req.Normalize()
	if fields := helper.Validate(&req); fields != nil {
		return helper.ValidationError(c, fields)
	}
	if fields := req.CheckDates(); fields != nil {
		return helper.ValidationError(c, fields)
	}

	var created *model.ClassModel
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		course, code, err := svc.AllocateClassCode(c.UserContext(), tx, req.ClassCourseCode)
		if err != nil {
			return err
		}
		if !course.CourseIsActive {
			return fiber.NewError(fiber.StatusConflict, "course is not active")
		}
		created = req.ToModel(code)
		if err := tx.Create(created).Error; err != nil {
			return helper.FromDBError(err, "class")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action: "class.created", Entity: "class", EntityID: created.ClassID.String(), Actor: auth.Actor(c),
		Details: map[string]any{"class_code": created.ClassCode},
	})
	return helper.JsonCreated(c, "class created", created)
}

// PATCH /api/a/classes/:id
func (ctl *ClassController) Patch(c *fiber.Ctx) error {
	cls, _, err := ctl.find(c)
	if err != nil {
		return err
	}

	var req dto.PatchClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	upd, bad := req.Apply(cls)
	if bad != nil {
		return helper.ValidationError(c, bad)
	}
	if len(upd) == 0 {
		return helper.JsonOK(c, "nothing to update", cls)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Model(cls).Updates(upd).Error; err != nil {
		return helper.FromDBError(err, "class")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Where("class_id = ?", cls.ClassID).Take(cls).Error; err != nil {
		return helper.FromDBError(err, "class")
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action: "class.updated", Entity: "class", EntityID: cls.ClassID.String(), Actor: auth.Actor(c),
	})
	return helper.JsonUpdated(c, "class updated", cls)
}

// DELETE /api/a/classes/:id (soft, refused while enrollments exist)
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	cls, _, err := ctl.find(c)
	if err != nil {
		return err
	}

	var enrolled int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&enrModel.EnrollmentModel{}).
		Where("enrollment_class_id = ?", cls.ClassID).
		Count(&enrolled).Error; err != nil {
		return helper.FromDBError(err, "enrollment")
	}
	if enrolled > 0 {
		return fiber.NewError(fiber.StatusConflict, "class has enrollments")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(cls).Error; err != nil {
		return helper.FromDBError(err, "class")
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action: "class.deleted", Entity: "class", EntityID: cls.ClassID.String(), Actor: auth.Actor(c),
	})
	return helper.JsonDeleted(c, "class deleted", fiber.Map{"class_id": cls.ClassID})
}

// POST /api/a/classes/:id/sync
func (ctl *ClassController) Sync(c *fiber.Ctx) error {
	if ctl.CMS == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "CMS sync is not configured")
	}
	cls, course, err := ctl.find(c)
	if err != nil {
		return err
	}

	res, err := svc.SyncClass(c.UserContext(), ctl.DB, ctl.CMS, cls, *course)

	details := map[string]any{"item_id": res.ItemID, "live": res.Live, "fallback": res.Fallback}
	if err != nil {
		details["error"] = err.Error()
	}
	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action: "class.synced", Entity: "class", EntityID: cls.ClassID.String(), Actor: auth.Actor(c), Details: details,
	})

	if err != nil {
		log := logger.FromContext(c.UserContext())
		log.Error().Err(err).Str("class_code", cls.ClassCode).Msg("CMS sync failed")
		return fiber.NewError(fiber.StatusBadGateway, "CMS sync failed")
	}
	return helper.JsonOK(c, "class synced", dto.SyncClassResponse{
		ClassID:       cls.ClassID.String(),
		WebflowItemID: res.ItemID,
		Live:          res.Live,
		Fallback:      res.Fallback,
	})
}

// GET /api/a/classes/:id/installment-plan?payment_date=YYYY-MM-DD
func (ctl *ClassController) PreviewPlan(c *fiber.Ctx) error {
	cls, _, err := ctl.find(c)
	if err != nil {
		return err
	}

	paid := dbtime.Today()
	if s := strings.TrimSpace(c.Query("payment_date")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payment_date")
		}
		paid = d
	}

	in := svc.InstallmentInputFor(*cls, paid, "")
	return helper.JsonOK(c, "ok", fiber.Map{
		"class_code":  cls.ClassCode,
		"price_cents": cls.ClassPriceCents,
		"invoices":    txSvc.PreviewInstallmentPlan(in),
	})
}

func (ctl *ClassController) find(c *fiber.Ctx) (*model.ClassModel, *courseModel.CourseModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var cls model.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("class_id = ?", id).Take(&cls).Error; err != nil {
		return nil, nil, helper.FromDBError(err, "class")
	}
	var course courseModel.CourseModel
	if err := ctl.DB.WithContext(c.UserContext()).Unscoped().
		Where("course_code = ?", cls.ClassCourseCode).
		Take(&course).Error; err != nil {
		return nil, nil, helper.FromDBError(err, "course")
	}
	return &cls, &course, nil
}
