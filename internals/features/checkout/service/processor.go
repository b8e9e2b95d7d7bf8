// file: internals/features/checkout/service/processor.go
package service

import (
	"context"

	"coursedesk_backend/internals/features/integrations/stripegw"
)

// PaymentProcessor is the part of the Stripe gateway checkout needs.
type PaymentProcessor interface {
	DefaultPriceCents(ctx context.Context, productID string) (int64, error)
	CreatePaymentIntent(ctx context.Context, in stripegw.PaymentIntentInput) (*stripegw.PaymentIntent, error)
	ReceiptURL(ctx context.Context, chargeID string) (string, error)
}
