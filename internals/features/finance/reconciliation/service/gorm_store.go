// file: internals/features/finance/reconciliation/service/gorm_store.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	txModel "coursedesk_backend/internals/features/finance/transactions/model"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/dbtime"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) ListUnreconciled(ctx context.Context) ([]UnreconciledRow, error) {
	var rows []UnreconciledRow
	err := s.DB.WithContext(ctx).Raw(`
		SELECT
			t.transaction_id,
			t.transaction_enrollment_id                          AS enrollment_id,
			t.transaction_type,
			t.transaction_invoice_number                         AS invoice_number,
			TRIM(s.student_first_name || ' ' || s.student_last_name) AS student_name,
			s.student_email,
			c.class_code,
			COALESCE(t.transaction_stripe_payment_intent_id, '') AS payment_intent_id,
			t.transaction_payout_id                              AS payout_id,
			t.transaction_payout_date                            AS payout_date,
			COALESCE(t.transaction_payment_amount_cents, 0)      AS payment_amount_cents
		FROM transactions t
		JOIN enrollments e ON e.enrollment_id = t.transaction_enrollment_id
		JOIN students s    ON s.student_id = e.enrollment_student_id
		JOIN classes c     ON c.class_id = e.enrollment_class_id
		WHERE t.transaction_payout_id IS NOT NULL
		  AND t.transaction_reconciled = FALSE
		ORDER BY t.transaction_payout_date DESC, t.transaction_created_at ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, helper.FromDBError(err, "transaction")
	}
	return rows, nil
}

func (s *GormStore) GetReconcileState(ctx context.Context, id uuid.UUID) (*ReconcileState, error) {
	var t txModel.TransactionModel
	if err := s.DB.WithContext(ctx).
		Select("transaction_id", "transaction_payout_id", "transaction_reconciled", "transaction_reconciled_at").
		Where("transaction_id = ?", id).
		Take(&t).Error; err != nil {
		return nil, helper.FromDBError(err, "transaction")
	}
	return &ReconcileState{
		PayoutID:     t.TransactionPayoutID,
		Reconciled:   t.TransactionReconciled,
		ReconciledAt: t.TransactionReconciledAt,
	}, nil
}

// MarkReconciled is a single conditional UPDATE; the row lock Postgres takes
// for it is the only coordination needed.
func (s *GormStore) MarkReconciled(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&txModel.TransactionModel{}).
		Where("transaction_id = ? AND transaction_reconciled = FALSE", id).
		Updates(map[string]any{
			"transaction_reconciled":    true,
			"transaction_reconciled_at": at,
		})
	if res.Error != nil {
		return 0, helper.FromDBError(res.Error, "transaction")
	}
	return res.RowsAffected, nil
}

func (s *GormStore) StampPayout(ctx context.Context, paymentIntentID, payoutID string, payoutDate dbtime.Date, amountCents int64) (int64, error) {
	if paymentIntentID == "" {
		return 0, nil
	}
	res := s.DB.WithContext(ctx).
		Model(&txModel.TransactionModel{}).
		Where("transaction_stripe_payment_intent_id = ? AND transaction_status = ? AND transaction_payout_id IS NULL",
			paymentIntentID, txModel.TransactionStatusPaid).
		Updates(map[string]any{
			"transaction_payout_id":            payoutID,
			"transaction_payout_date":          payoutDate,
			"transaction_payment_amount_cents": amountCents,
		})
	if res.Error != nil {
		return 0, helper.FromDBError(res.Error, "transaction")
	}
	return res.RowsAffected, nil
}
