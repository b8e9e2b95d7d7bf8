// file: internals/features/finance/reconciliation/controller/reconciliation_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	svc "coursedesk_backend/internals/features/finance/reconciliation/service"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/middlewares/auth"
)

const (
	defaultSyncDays = 30
	maxSyncDays     = 120
)

type ReconciliationController struct {
	DB      *gorm.DB
	Service *svc.Service
	Payouts svc.PayoutSource // nil when Stripe is not configured
}

func NewReconciliationController(db *gorm.DB, payouts svc.PayoutSource) *ReconciliationController {
	return &ReconciliationController{
		DB:      db,
		Service: svc.NewService(svc.NewGormStore(db)),
		Payouts: payouts,
	}
}

// GET /api/a/reconciliation/payouts
func (ctl *ReconciliationController) ListPayoutGroups(c *fiber.Ctx) error {
	groups, err := ctl.Service.ListGroups(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", groups)
}

// POST /api/a/reconciliation/transactions/:id/reconcile
func (ctl *ReconciliationController) Reconcile(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res, err := ctl.Service.Reconcile(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !res.AlreadyDone {
		logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
			Action:   "transaction.reconciled",
			Entity:   "transaction",
			EntityID: id.String(),
			Actor:    auth.Actor(c),
		})
	}
	return helper.JsonUpdated(c, "transaction reconciled", res)
}

// POST /api/a/reconciliation/sync?days=30
func (ctl *ReconciliationController) SyncPayouts(c *fiber.Ctx) error {
	if ctl.Payouts == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "payment processor is not configured")
	}
	days := c.QueryInt("days", defaultSyncDays)
	if days < 1 || days > maxSyncDays {
		return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 120")
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	sum, err := ctl.Service.SyncPayouts(c.UserContext(), ctl.Payouts, since)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "payout sync failed: "+err.Error())
	}

	logSvc.Record(c.UserContext(), ctl.DB, logSvc.Entry{
		Action:  "payouts.synced",
		Entity:  "payout",
		Actor:   auth.Actor(c),
		Details: map[string]any{"days": days, "payouts": sum.Payouts, "stamped": sum.Transactions},
	})
	return helper.JsonOK(c, "payouts synced", sum)
}
