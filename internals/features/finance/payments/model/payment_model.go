// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PaymentModel is one captured charge.
type PaymentModel struct {
	PaymentID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:payment_id" json:"payment_id"`
	PaymentEnrollmentID uuid.UUID `gorm:"type:uuid;not null;index;column:payment_enrollment_id" json:"payment_enrollment_id"`

	PaymentAmountCents int64     `gorm:"not null;column:payment_amount_cents" json:"payment_amount_cents"`
	PaymentCurrency    string    `gorm:"type:varchar(3);not null;default:'usd';column:payment_currency" json:"payment_currency"`
	PaymentPaidAt      time.Time `gorm:"type:timestamptz;not null;column:payment_paid_at" json:"payment_paid_at"`

	PaymentStripePaymentIntentID string  `gorm:"type:varchar(64);not null;uniqueIndex:uq_payments_payment_intent;column:payment_stripe_payment_intent_id" json:"payment_stripe_payment_intent_id"`
	PaymentStripeReceiptURL      *string `gorm:"type:text;column:payment_stripe_receipt_url" json:"payment_stripe_receipt_url,omitempty"`

	PaymentMeta datatypes.JSONMap `gorm:"type:jsonb;column:payment_meta" json:"payment_meta,omitempty"`

	PaymentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:payment_created_at" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:payment_updated_at" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }
