// file: internals/features/finance/reconciliation/service/payout_sync_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"coursedesk_backend/internals/features/integrations/stripegw"
	"coursedesk_backend/internals/helpers/dbtime"
	"coursedesk_backend/internals/helpers/logger"
)

// PayoutSource lists settled payouts and the charges inside them.
type PayoutSource interface {
	ListPaidPayouts(ctx context.Context, since time.Time) ([]stripegw.Payout, error)
	ListPayoutCharges(ctx context.Context, payoutID string) ([]stripegw.PayoutCharge, error)
}

type SyncSummary struct {
	Payouts      int `json:"payouts"`
	Charges      int `json:"charges"`
	Transactions int `json:"transactions_stamped"`
}

// SyncPayouts stamps local transactions with the payout that settled their
// payment intent. Already stamped rows are left alone, so re-running over the
// same window is harmless.
func (s *Service) SyncPayouts(ctx context.Context, src PayoutSource, since time.Time) (SyncSummary, error) {
	log := logger.FromContext(ctx)
	var sum SyncSummary

	payouts, err := src.ListPaidPayouts(ctx, since)
	if err != nil {
		return sum, err
	}

	for _, p := range payouts {
		charges, err := src.ListPayoutCharges(ctx, p.ID)
		if err != nil {
			return sum, fmt.Errorf("payout %s: %w", p.ID, err)
		}
		sum.Payouts++

		day := dbtime.DateOf(p.ArrivalDate)
		for _, ch := range charges {
			sum.Charges++
			n, err := s.Store.StampPayout(ctx, ch.PaymentIntentID, p.ID, day, ch.AmountCents)
			if err != nil {
				return sum, fmt.Errorf("stamp %s: %w", ch.PaymentIntentID, err)
			}
			sum.Transactions += int(n)
		}
	}

	log.Info().
		Int("payouts", sum.Payouts).
		Int("charges", sum.Charges).
		Int("stamped", sum.Transactions).
		Time("since", since).
		Msg("payout sync finished")
	return sum, nil
}
