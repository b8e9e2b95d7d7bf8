// file: internals/features/finance/transactions/service/transaction_query_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursedesk_backend/internals/features/finance/transactions/model"
	helper "coursedesk_backend/internals/helpers"
)

// FetchByEnrollmentIDs loads the transactions of many enrollments in one
// query, keyed by enrollment id. Missing keys mean no transactions.
func FetchByEnrollmentIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID][]model.TransactionModel, error) {
	out := make(map[uuid.UUID][]model.TransactionModel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	strIDs := lo.Uniq(lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }))

	var rows []model.TransactionModel
	if err := db.WithContext(ctx).
		Where("transaction_enrollment_id = ANY(?::uuid[])", pq.StringArray(strIDs)).
		Order("transaction_enrollment_id, transaction_type, transaction_created_at, transaction_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.TransactionEnrollmentID] = append(out[r.TransactionEnrollmentID], r)
	}
	return out, nil
}

// StatusByEnrollment derives the payment label for every enrollment id.
func StatusByEnrollment(ids []uuid.UUID, txs map[uuid.UUID][]model.TransactionModel, now time.Time) map[uuid.UUID]PaymentStatusLabel {
	out := make(map[uuid.UUID]PaymentStatusLabel, len(ids))
	for _, id := range ids {
		out[id] = DeriveEnrollmentPaymentStatus(lo.Map(txs[id], func(t model.TransactionModel, _ int) TransactionView {
			return ViewOf(t)
		}), now)
	}
	return out
}

// TransitionStatus moves one transaction along the ledger state machine.
// The row is locked so concurrent admin and webhook updates serialize.
func TransitionStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, to model.TransactionStatus, now time.Time) (*model.TransactionModel, error) {
	var out model.TransactionModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ?", id).
			Take(&out).Error; err != nil {
			return helper.FromDBError(err, "transaction")
		}
		if out.TransactionStatus == to {
			return nil
		}
		if err := ValidateTransition(out.TransactionStatus, to); err != nil {
			return err
		}

		updates := map[string]any{"transaction_status": to}
		if to == model.TransactionStatusPaid {
			updates["transaction_paid_at"] = now
		}
		if err := tx.Model(&out).Updates(updates).Error; err != nil {
			return helper.FromDBError(err, "transaction")
		}
		return tx.Where("transaction_id = ?", id).Take(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
