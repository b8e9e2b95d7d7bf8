// file: internals/features/checkout/service/webhook_service.go
package service

import (
	"context"
	"errors"

	payModel "coursedesk_backend/internals/features/finance/payments/model"
	paySvc "coursedesk_backend/internals/features/finance/payments/service"
	"coursedesk_backend/internals/features/integrations/stripegw"
	"coursedesk_backend/internals/helpers/logger"
)

type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeFailed    Outcome = "failed"
)

// Retryable reports whether Stripe should redeliver the event.
func Retryable(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrNotCheckout) &&
		!errors.Is(err, ErrBadMetadata) &&
		!errors.Is(err, ErrRefundTargetMissing)
}

// HandleEvent dispatches one verified webhook event. The returned error is
// only non-nil when the delivery should be retried.
func (s *Service) HandleEvent(ctx context.Context, ev *stripegw.Event) (Outcome, error) {
	log := logger.FromContext(ctx).With().Str("event_id", ev.ID).Str("event_type", ev.Type).Logger()
	ctx = logger.WithContext(ctx, log)

	var ref *string
	switch {
	case ev.PaymentIntent != nil:
		ref = &ev.PaymentIntent.ID
	case ev.Charge != nil && ev.Charge.PaymentIntentID != "":
		ref = &ev.Charge.PaymentIntentID
	}

	row, done, err := paySvc.ReceiveEvent(ctx, s.DB, ev.ID, ev.Type, ref, ev.Raw)
	if err != nil {
		return OutcomeFailed, err
	}
	if done {
		log.Info().Msg("duplicate webhook delivery")
		return OutcomeDuplicate, nil
	}

	outcome, herr := s.dispatch(ctx, ev)

	status := payModel.GatewayEventStatusProcessed
	switch {
	case herr != nil:
		status = payModel.GatewayEventStatusFailed
		outcome = OutcomeFailed
	case outcome == OutcomeIgnored:
		status = payModel.GatewayEventStatusIgnored
	}
	if err := paySvc.FinishEvent(ctx, s.DB, row.GatewayEventID, status, herr); err != nil {
		log.Warn().Err(err).Msg("update gateway event status")
	}

	if herr != nil {
		log.Error().Err(herr).Bool("retry", Retryable(herr)).Msg("webhook handling failed")
		if Retryable(herr) {
			return outcome, herr
		}
	}
	return outcome, nil
}

func (s *Service) dispatch(ctx context.Context, ev *stripegw.Event) (Outcome, error) {
	switch ev.Type {
	case stripegw.EventPaymentIntentSucceeded:
		if ev.PaymentIntent == nil {
			return OutcomeIgnored, nil
		}
		c, err := s.CompleteCheckout(ctx, ev.PaymentIntent)
		if errors.Is(err, ErrNotCheckout) {
			return OutcomeIgnored, nil
		}
		if err != nil {
			return OutcomeFailed, err
		}
		if c.AlreadyDone {
			return OutcomeDuplicate, nil
		}
		return OutcomeProcessed, nil

	case stripegw.EventPaymentIntentFailed:
		if ev.PaymentIntent == nil {
			return OutcomeIgnored, nil
		}
		if _, err := DecodeMeta(ev.PaymentIntent.Metadata); errors.Is(err, ErrNotCheckout) {
			return OutcomeIgnored, nil
		}
		s.PaymentFailed(ctx, ev.PaymentIntent)
		return OutcomeProcessed, nil

	case stripegw.EventChargeRefunded:
		if ev.Charge == nil {
			return OutcomeIgnored, nil
		}
		changed, err := s.ChargeRefunded(ctx, ev.Charge)
		if err != nil {
			return OutcomeFailed, err
		}
		if !changed {
			return OutcomeIgnored, nil
		}
		return OutcomeProcessed, nil
	}
	return OutcomeIgnored, nil
}
