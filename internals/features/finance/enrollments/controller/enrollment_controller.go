// file: internals/features/finance/enrollments/controller/enrollment_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	dto "coursedesk_backend/internals/features/finance/enrollments/dto"
	payModel "coursedesk_backend/internals/features/finance/payments/model"
	txDto "coursedesk_backend/internals/features/finance/transactions/dto"
	txModel "coursedesk_backend/internals/features/finance/transactions/model"
	txSvc "coursedesk_backend/internals/features/finance/transactions/service"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
)

type EnrollmentController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db, Now: time.Now}
}

type rosterRow struct {
	EnrollmentID         uuid.UUID
	EnrollmentEnrolledAt time.Time
	StudentID            uuid.UUID
	StudentEmail         string
	StudentFirstName     string
	StudentLastName      string
	ClassID              uuid.UUID
	ClassCode            string
	ClassTitle           string
	ClassStartDate       dbtime.Date
	ClassCourseCode      string
}

func (r rosterRow) item(status txSvc.PaymentStatusLabel) dto.EnrollmentListItem {
	return dto.EnrollmentListItem{
		EnrollmentID:         r.EnrollmentID,
		EnrollmentEnrolledAt: r.EnrollmentEnrolledAt,
		StudentID:            r.StudentID,
		StudentEmail:         r.StudentEmail,
		StudentName:          strings.TrimSpace(r.StudentFirstName + " " + r.StudentLastName),
		ClassID:              r.ClassID,
		ClassCode:            r.ClassCode,
		ClassTitle:           r.ClassTitle,
		ClassStartDate:       r.ClassStartDate,
		ClassCourseCode:      r.ClassCourseCode,
		PaymentStatus:        string(status),
	}
}

const rosterColumns = `e.enrollment_id, e.enrollment_enrolled_at,
	s.student_id, s.student_email, s.student_first_name, s.student_last_name,
	cl.class_id, cl.class_code, cl.class_title, cl.class_start_date, cl.class_course_code`

func (ctl *EnrollmentController) roster() *gorm.DB {
	return ctl.DB.Table("enrollments e").
		Joins("JOIN students s ON s.student_id = e.enrollment_student_id").
		Joins("JOIN classes cl ON cl.class_id = e.enrollment_class_id")
}

/*
=========================================================

	LIST
	GET /api/a/enrollments
	Query: class_id, class_code, course_code, student_id, q, page, per_page

	payment_status is derived per row from a single batched
	transaction fetch for the page.

=========================================================
*/
func (ctl *EnrollmentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := ctl.roster().WithContext(c.UserContext())
	if s := strings.TrimSpace(c.Query("class_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid class_id")
		}
		q = q.Where("e.enrollment_class_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("e.enrollment_student_id = ?", id)
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("class_code"))); s != "" {
		q = q.Where("cl.class_code = ?", s)
	}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("course_code"))); s != "" {
		q = q.Where("cl.class_course_code = ?", s)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("s.student_email ILIKE ? OR s.student_first_name ILIKE ? OR s.student_last_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "enrollment")
	}

	var rows []rosterRow
	if err := q.Select(rosterColumns).
		Order("e.enrollment_enrolled_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.FromDBError(err, "enrollment")
	}

	ids := lo.Map(rows, func(r rosterRow, _ int) uuid.UUID { return r.EnrollmentID })
	txs, err := txSvc.FetchByEnrollmentIDs(c.UserContext(), ctl.DB, ids)
	if err != nil {
		return helper.FromDBError(err, "transaction")
	}
	status := txSvc.StatusByEnrollment(ids, txs, ctl.Now())

	items := lo.Map(rows, func(r rosterRow, _ int) dto.EnrollmentListItem {
		return r.item(status[r.EnrollmentID])
	})
	return helper.JsonList(c, "ok", items, helper.BuildPagination(total, paging))
}

// GET /api/a/enrollments/:id
func (ctl *EnrollmentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	ctx := c.UserContext()
	now := ctl.Now()

	var rows []rosterRow
	if err := ctl.roster().WithContext(ctx).
		Select(rosterColumns).
		Where("e.enrollment_id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return helper.FromDBError(err, "enrollment")
	}
	if len(rows) == 0 {
		return helper.NotFound("enrollment")
	}

	txs, err := txSvc.FetchByEnrollmentIDs(ctx, ctl.DB, []uuid.UUID{id})
	if err != nil {
		return helper.FromDBError(err, "transaction")
	}

	var payments []payModel.PaymentModel
	if err := ctl.DB.WithContext(ctx).
		Where("payment_enrollment_id = ?", id).
		Order("payment_paid_at ASC").
		Find(&payments).Error; err != nil {
		return helper.FromDBError(err, "payment")
	}

	status := txSvc.StatusByEnrollment([]uuid.UUID{id}, txs, now)
	return helper.JsonOK(c, "ok", dto.EnrollmentDetailResponse{
		EnrollmentListItem: rows[0].item(status[id]),
		Transactions: lo.Map(txs[id], func(t txModel.TransactionModel, _ int) txDto.TransactionResponse {
			return txDto.FromModel(t, txSvc.ViewOf(t).IsPastDue(now))
		}),
		Payments: payments,
	})
}
