// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	dto "coursedesk_backend/internals/features/finance/payments/dto"
	model "coursedesk_backend/internals/features/finance/payments/model"
	svc "coursedesk_backend/internals/features/finance/payments/service"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/middlewares/auth"
)

type PaymentController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Now: time.Now}
}

/* =======================================================================
   Payments
   GET /api/a/payments?enrollment_id=&payment_intent=&start=&end=&page=&per_page=
======================================================================= */

func (h *PaymentController) ListPayments(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	db := h.DB.WithContext(c.UserContext()).Model(&model.PaymentModel{})
	if s := strings.TrimSpace(c.Query("enrollment_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid enrollment_id")
		}
		db = db.Where("payment_enrollment_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("payment_intent")); s != "" {
		db = db.Where("payment_stripe_payment_intent_id = ?", s)
	}
	var err error
	if db, err = timeRange(c, db, "payment_paid_at"); err != nil {
		return err
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "payment")
	}
	var rows []model.PaymentModel
	if err := db.Order("payment_paid_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromDBError(err, "payment")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

/* =======================================================================
   Invoices to import
   GET  /api/a/invoices-to-import?exported=false
   POST /api/a/invoices-to-import/mark-exported
======================================================================= */

func (h *PaymentController) ListInvoicesToImport(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 500)

	db := h.DB.WithContext(c.UserContext()).Model(&model.InvoiceToImportModel{})
	switch strings.ToLower(strings.TrimSpace(c.Query("exported", "false"))) {
	case "false":
		db = db.Where("invoice_to_import_exported_at IS NULL")
	case "true":
		db = db.Where("invoice_to_import_exported_at IS NOT NULL")
	case "all":
	default:
		return fiber.NewError(fiber.StatusBadRequest, "exported must be true, false or all")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "invoice")
	}
	var rows []model.InvoiceToImportModel
	if err := db.Order("invoice_to_import_invoice_number ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromDBError(err, "invoice")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

func (h *PaymentController) MarkExported(c *fiber.Ctx) error {
	var req dto.MarkExportedRequest
	if len(c.Body()) > 0 {
		if err := helper.ParseAndValidate(c, &req); err != nil {
			return err
		}
	}

	n, err := svc.MarkExported(c.UserContext(), h.DB, req.IDs, h.Now())
	if err != nil {
		return helper.FromDBError(err, "invoice")
	}

	logSvc.Record(c.UserContext(), h.DB, logSvc.Entry{
		Action: "invoices.exported", Entity: "invoice_to_import", Actor: auth.Actor(c),
		Details: map[string]any{"count": n, "requested": len(req.IDs)},
	})
	return helper.JsonUpdated(c, "invoices marked exported", dto.MarkExportedResponse{Exported: n})
}

/* =======================================================================
   Gateway events
   GET /api/a/payment-gateway-events?type=&status=&q=&start=&end=
   GET /api/a/payment-gateway-events/:id
======================================================================= */

func (h *PaymentController) ListGatewayEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	db := h.DB.WithContext(c.UserContext()).Model(&model.PaymentGatewayEventModel{}).
		Omit("gateway_event_payload")
	if s := strings.TrimSpace(c.Query("type")); s != "" {
		db = db.Where("gateway_event_type = ?", s)
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		db = db.Where("gateway_event_status = ?", s)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		db = db.Where(`gateway_event_external_id ILIKE ? OR COALESCE(gateway_event_external_ref,'') ILIKE ?`, like, like)
	}
	var err error
	if db, err = timeRange(c, db, "gateway_event_received_at"); err != nil {
		return err
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.FromDBError(err, "gateway event")
	}
	var rows []model.PaymentGatewayEventModel
	if err := db.Order("gateway_event_received_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromDBError(err, "gateway event")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

func (h *PaymentController) GetGatewayEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	var m model.PaymentGatewayEventModel
	if err := h.DB.WithContext(c.UserContext()).Where("gateway_event_id = ?", id).Take(&m).Error; err != nil {
		return helper.FromDBError(err, "gateway event")
	}
	return helper.JsonOK(c, "ok", m)
}

// start/end are RFC3339, end exclusive.
func timeRange(c *fiber.Ctx, db *gorm.DB, col string) (*gorm.DB, error) {
	if s := strings.TrimSpace(c.Query("start")); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid start (use RFC3339)")
		}
		db = db.Where(col+" >= ?", t)
	}
	if s := strings.TrimSpace(c.Query("end")); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid end (use RFC3339)")
		}
		db = db.Where(col+" < ?", t)
	}
	return db, nil
}
