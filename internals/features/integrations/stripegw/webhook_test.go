package stripegw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
)

const testSecret = "whsec_test_secret"

func signed(t *testing.T, payload string) (string, []byte) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testSecret,
		Timestamp: time.Now(),
	})
	return sp.Header, sp.Payload
}

func TestVerifyWebhook_PaymentIntentSucceeded(t *testing.T) {
	header, body := signed(t, `{
		"id": "evt_1",
		"object": "event",
		"type": "payment_intent.succeeded",
		"api_version": "2020-08-27",
		"data": {"object": {
			"id": "pi_123",
			"object": "payment_intent",
			"amount": 25000,
			"amount_received": 25000,
			"currency": "usd",
			"latest_charge": "ch_9",
			"metadata": {"class_id": "c1", "student_email": "a@b.co"}
		}}
	}`)

	ev, err := VerifyWebhook(body, header, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, EventPaymentIntentSucceeded, ev.Type)
	require.NotNil(t, ev.PaymentIntent)
	assert.Equal(t, "pi_123", ev.PaymentIntent.ID)
	assert.Equal(t, int64(25000), ev.PaymentIntent.AmountCents)
	assert.Equal(t, "ch_9", ev.PaymentIntent.LatestChargeID)
	assert.Equal(t, "c1", ev.PaymentIntent.Metadata["class_id"])
}

func TestVerifyWebhook_ChargeRefunded(t *testing.T) {
	header, body := signed(t, `{
		"id": "evt_2",
		"object": "event",
		"type": "charge.refunded",
		"data": {"object": {"id": "ch_1", "object": "charge", "payment_intent": "pi_1", "refunded": true, "amount_refunded": 500}}
	}`)

	ev, err := VerifyWebhook(body, header, testSecret)
	require.NoError(t, err)
	require.NotNil(t, ev.Charge)
	assert.Equal(t, "pi_1", ev.Charge.PaymentIntentID)
	assert.True(t, ev.Charge.Refunded)
}

func TestVerifyWebhook_BadSignature(t *testing.T) {
	_, body := signed(t, `{"id":"evt_3","object":"event","type":"payment_intent.succeeded","data":{"object":{}}}`)
	_, err := VerifyWebhook(body, "t=1,v1=deadbeef", testSecret)
	assert.Error(t, err)
}

func TestValidateIDs(t *testing.T) {
	assert.NoError(t, ValidateSecretKey("sk_test_123"))
	assert.ErrorIs(t, ValidateSecretKey("pk_test_123"), ErrInvalidSecretKey)
	assert.ErrorIs(t, ValidateSecretKey(""), ErrInvalidSecretKey)

	assert.NoError(t, ValidateProductID("prod_ABC"))
	assert.ErrorIs(t, ValidateProductID("price_ABC"), ErrInvalidProductID)

	_, err := New("rk_live_x")
	assert.ErrorIs(t, err, ErrInvalidSecretKey)
}
