// file: internals/features/integrations/stripegw/webhook.go
package stripegw

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"
	EventChargeRefunded         = "charge.refunded"
)

// Event is the verified, decoded part of a webhook delivery.
type Event struct {
	ID   string
	Type string
	Raw  []byte

	PaymentIntent *EventPaymentIntent
	Charge        *EventCharge
}

type EventPaymentIntent struct {
	ID             string
	AmountCents    int64
	Currency       string
	LatestChargeID string
	Metadata       map[string]string
	FailureReason  string
}

type EventCharge struct {
	ID              string
	PaymentIntentID string
	AmountRefunded  int64
	Refunded        bool
}

// VerifyWebhook checks the Stripe-Signature header and decodes the objects
// the service handles. API version mismatches between the account and the
// SDK are tolerated.
func VerifyWebhook(payload []byte, signature, secret string) (*Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("verify stripe signature: %w", err)
	}
	return decodeEvent(ev, payload)
}

// Event objects are decoded with encoding/json because the SDK's expandable
// fields implement json.Unmarshaler against it.
func decodeEvent(ev stripe.Event, payload []byte) (*Event, error) {
	out := &Event{ID: ev.ID, Type: string(ev.Type), Raw: payload}
	if ev.Data == nil {
		return out, nil
	}

	switch out.Type {
	case EventPaymentIntentSucceeded, EventPaymentIntentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment intent: %w", err)
		}
		epi := &EventPaymentIntent{
			ID:          pi.ID,
			AmountCents: pi.AmountReceived,
			Currency:    string(pi.Currency),
			Metadata:    pi.Metadata,
		}
		if epi.AmountCents == 0 {
			epi.AmountCents = pi.Amount
		}
		if pi.LatestCharge != nil {
			epi.LatestChargeID = pi.LatestCharge.ID
		}
		if pi.LastPaymentError != nil {
			epi.FailureReason = pi.LastPaymentError.Msg
		}
		out.PaymentIntent = epi

	case EventChargeRefunded:
		var ch stripe.Charge
		if err := json.Unmarshal(ev.Data.Raw, &ch); err != nil {
			return nil, fmt.Errorf("decode charge: %w", err)
		}
		ec := &EventCharge{ID: ch.ID, AmountRefunded: ch.AmountRefunded, Refunded: ch.Refunded}
		if ch.PaymentIntent != nil {
			ec.PaymentIntentID = ch.PaymentIntent.ID
		}
		out.Charge = ec
	}
	return out, nil
}
