// file: internals/features/people/students/controller/student_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	txSvc "coursedesk_backend/internals/features/finance/transactions/service"
	dto "coursedesk_backend/internals/features/people/students/dto"
	model "coursedesk_backend/internals/features/people/students/model"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/middlewares/auth"
)

type StudentController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Now: time.Now}
}

// GET /api/a/students?q=&page=&per_page=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where(
			"student_email ILIKE ? OR student_first_name ILIKE ? OR student_last_name ILIKE ? OR (student_first_name || ' ' || student_last_name) ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "student")
	}
	var rows []model.StudentModel
	if err := tx.Order("student_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromDBError(err, "student")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

type enrollmentRow struct {
	EnrollmentID         uuid.UUID
	EnrollmentClassID    uuid.UUID
	EnrollmentEnrolledAt time.Time
	ClassCode            string
	ClassTitle           string
}

// GET /api/a/students/:id
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	st, err := ctl.find(c)
	if err != nil {
		return err
	}

	var rows []enrollmentRow
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("enrollments e").
		Select("e.enrollment_id, e.enrollment_class_id, e.enrollment_enrolled_at, cl.class_code, cl.class_title").
		Joins("JOIN classes cl ON cl.class_id = e.enrollment_class_id").
		Where("e.enrollment_student_id = ?", st.StudentID).
		Order("e.enrollment_enrolled_at DESC").
		Scan(&rows).Error; err != nil {
		return helper.FromDBError(err, "enrollment")
	}

	ids := lo.Map(rows, func(r enrollmentRow, _ int) uuid.UUID { return r.EnrollmentID })
	txs, err := txSvc.FetchByEnrollmentIDs(c.UserContext(), ctl.DB, ids)
	if err != nil {
		return helper.FromDBError(err, "transaction")
	}
	status := txSvc.StatusByEnrollment(ids, txs, ctl.Now())

	out := dto.StudentDetailResponse{
		StudentModel: *st,
		Enrollments: lo.Map(rows, func(r enrollmentRow, _ int) dto.StudentEnrollment {
			return dto.StudentEnrollment{
				EnrollmentID:  r.EnrollmentID,
				ClassID:       r.EnrollmentClassID,
				ClassCode:     r.ClassCode,
				ClassTitle:    r.ClassTitle,
				EnrolledAt:    r.EnrollmentEnrolledAt,
				PaymentStatus: string(status[r.EnrollmentID]),
			}
		}),
	}
	return helper.JsonOK(c, "ok", out)
}

// PATCH /api/a/students/:id
func (ctl *StudentController) Patch(c *fiber.Ctx) error {
	st, err := ctl.find(c)
	if err != nil {
		return err
	}

	var req dto.PatchStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	upd, bad := req.Apply()
	if bad != nil {
		return helper.ValidationError(c, bad)
	}
	if len(upd) == 0 {
		return helper.JsonOK(c, "nothing to update", st)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Model(st).Updates(upd).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "email already belongs to another student")
		}
		return helper.FromDBError(err, "student")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Where("student_id = ?", st.StudentID).Take(st).Error; err != nil {
		return helper.FromDBError(err, "student")
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action: "student.updated", Entity: "student", EntityID: st.StudentID.String(), Actor: auth.Actor(c),
		Details: map[string]any{"fields": lo.Keys(upd)},
	})
	return helper.JsonUpdated(c, "student updated", st)
}

func (ctl *StudentController) find(c *fiber.Ctx) (*model.StudentModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	var st model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("student_id = ?", id).Take(&st).Error; err != nil {
		return nil, helper.FromDBError(err, "student")
	}
	return &st, nil
}
