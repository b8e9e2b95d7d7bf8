// file: internals/features/finance/reconciliation/service/reconciliation_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"coursedesk_backend/internals/helpers/dbtime"
	"coursedesk_backend/internals/helpers/logger"
)

// UnreconciledRow is a paid-out transaction waiting for operator review.
type UnreconciledRow struct {
	TransactionID      uuid.UUID   `json:"transaction_id"`
	EnrollmentID       uuid.UUID   `json:"enrollment_id"`
	TransactionType    string      `json:"transaction_type"`
	InvoiceNumber      *int64      `json:"invoice_number,omitempty"`
	StudentName        string      `json:"student_name"`
	StudentEmail       string      `json:"student_email"`
	ClassCode          string      `json:"class_code"`
	PaymentIntentID    string      `json:"payment_intent_id"`
	PayoutID           string      `json:"payout_id"`
	PayoutDate         dbtime.Date `json:"payout_date"`
	PaymentAmountCents int64       `json:"payment_amount_cents"`
}

type PayoutGroup struct {
	PayoutID         string            `json:"payout_id"`
	PayoutDate       dbtime.Date       `json:"payout_date"`
	PayoutTotalCents int64             `json:"payout_total_cents"`
	Transactions     []UnreconciledRow `json:"transactions"`
}

// GroupByPayout buckets rows by payout id, newest payout first. Each group's
// total is the sum of its rows' payment amounts.
func GroupByPayout(rows []UnreconciledRow) []PayoutGroup {
	buckets := lo.GroupBy(rows, func(r UnreconciledRow) string { return r.PayoutID })

	groups := make([]PayoutGroup, 0, len(buckets))
	for id, items := range buckets {
		g := PayoutGroup{
			PayoutID:         id,
			PayoutTotalCents: lo.SumBy(items, func(r UnreconciledRow) int64 { return r.PaymentAmountCents }),
			Transactions:     items,
		}
		for _, it := range items {
			if it.PayoutDate.After(g.PayoutDate) {
				g.PayoutDate = it.PayoutDate
			}
		}
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].PayoutDate.Equal(groups[j].PayoutDate) {
			return groups[i].PayoutDate.After(groups[j].PayoutDate)
		}
		return groups[i].PayoutID < groups[j].PayoutID
	})
	return groups
}

// ReconcileState is what Reconcile needs to know about a transaction.
type ReconcileState struct {
	PayoutID     *string
	Reconciled   bool
	ReconciledAt *time.Time
}

// Store is the persistence the reconciliation flow needs.
type Store interface {
	ListUnreconciled(ctx context.Context) ([]UnreconciledRow, error)
	GetReconcileState(ctx context.Context, id uuid.UUID) (*ReconcileState, error)
	// MarkReconciled flips the flag only where it is still false and returns
	// the number of rows changed.
	MarkReconciled(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
	StampPayout(ctx context.Context, paymentIntentID, payoutID string, payoutDate dbtime.Date, amountCents int64) (int64, error)
}

type Service struct {
	Store Store
	Now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

func (s *Service) ListGroups(ctx context.Context) ([]PayoutGroup, error) {
	rows, err := s.Store.ListUnreconciled(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByPayout(rows), nil
}

type ReconcileResult struct {
	TransactionID uuid.UUID  `json:"transaction_id"`
	Reconciled    bool       `json:"reconciled"`
	ReconciledAt  *time.Time `json:"reconciled_at,omitempty"`
	AlreadyDone   bool       `json:"already_reconciled"`
}

// Reconcile marks one transaction as matched against its payout. Calling it
// again is a successful no-op.
func (s *Service) Reconcile(ctx context.Context, id uuid.UUID) (*ReconcileResult, error) {
	st, err := s.Store.GetReconcileState(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.Reconciled {
		return &ReconcileResult{TransactionID: id, Reconciled: true, ReconciledAt: st.ReconciledAt, AlreadyDone: true}, nil
	}
	if st.PayoutID == nil || *st.PayoutID == "" {
		return nil, fiber.NewError(fiber.StatusConflict, "transaction has not been paid out yet")
	}

	now := s.Now().UTC()
	n, err := s.Store.MarkReconciled(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// lost a race with another reconcile; the row is reconciled either way
		st, err = s.Store.GetReconcileState(ctx, id)
		if err != nil {
			return nil, err
		}
		return &ReconcileResult{TransactionID: id, Reconciled: true, ReconciledAt: st.ReconciledAt, AlreadyDone: true}, nil
	}

	log := logger.FromContext(ctx)
	log.Info().Str("transaction_id", id.String()).Str("payout_id", *st.PayoutID).Msg("transaction reconciled")
	return &ReconcileResult{TransactionID: id, Reconciled: true, ReconciledAt: &now}, nil
}
