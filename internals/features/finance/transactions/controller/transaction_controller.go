// file: internals/features/finance/transactions/controller/transaction_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	dto "coursedesk_backend/internals/features/finance/transactions/dto"
	model "coursedesk_backend/internals/features/finance/transactions/model"
	svc "coursedesk_backend/internals/features/finance/transactions/service"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
	"coursedesk_backend/internals/middlewares/auth"
)

type TransactionController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db, Now: time.Now}
}

/*
=========================================================

	LIST
	GET /api/a/transactions
	Query:
	- status, type
	- enrollment_id
	- past_due=true
	- reconciled (true|false)
	- page, per_page

=========================================================
*/
func (ctl *TransactionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	now := ctl.Now()

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.TransactionModel{})

	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		if !model.TransactionStatus(s).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "invalid status")
		}
		tx = tx.Where("transaction_status = ?", s)
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("type"))); s != "" {
		if !model.TransactionType(s).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "invalid type")
		}
		tx = tx.Where("transaction_type = ?", s)
	}
	if s := strings.TrimSpace(c.Query("enrollment_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid enrollment_id")
		}
		tx = tx.Where("transaction_enrollment_id = ?", id)
	}
	if c.QueryBool("past_due") {
		tx = tx.Where("transaction_status <> ? AND transaction_due_date < ?",
			model.TransactionStatusPaid, dbtime.DateOf(dbtime.ToBusinessTime(now)))
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("reconciled"))); s == "true" || s == "false" {
		tx = tx.Where("transaction_reconciled = ?", s == "true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "transaction")
	}

	var rows []model.TransactionModel
	if err := tx.
		Order("transaction_due_date ASC NULLS LAST, transaction_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromDBError(err, "transaction")
	}

	out := make([]dto.TransactionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r, svc.ViewOf(r).IsPastDue(now)))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging))
}

// GET /api/a/transactions/:id
func (ctl *TransactionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var row model.TransactionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("transaction_id = ?", id).
		Take(&row).Error; err != nil {
		return helper.FromDBError(err, "transaction")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(row, svc.ViewOf(row).IsPastDue(ctl.Now())))
}

// PATCH /api/a/transactions/:id/status
func (ctl *TransactionController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req dto.UpdateTransactionStatusRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}

	now := ctl.Now()
	row, err := svc.TransitionStatus(c.UserContext(), ctl.DB, id, req.TransactionStatus, now)
	if err != nil {
		return err
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action:   "transaction.status_changed",
		Entity:   "transaction",
		EntityID: row.TransactionID.String(),
		Actor:    auth.Actor(c),
		Details:  map[string]any{"status": row.TransactionStatus},
	})

	return helper.JsonUpdated(c, "transaction updated", dto.FromModel(*row, svc.ViewOf(*row).IsPastDue(now)))
}
