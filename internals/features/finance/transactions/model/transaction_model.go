// file: internals/features/finance/transactions/model/transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"coursedesk_backend/internals/helpers/dbtime"
)

type TransactionType string

const (
	TransactionTypeRegistrationFee TransactionType = "registration_fee"
	TransactionTypeTuitionA        TransactionType = "tuition_a"
	TransactionTypeTuitionB        TransactionType = "tuition_b"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusPaid      TransactionStatus = "paid"
	TransactionStatusCancelled TransactionStatus = "cancelled"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusPaid, TransactionStatusCancelled, TransactionStatusRefunded:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeRegistrationFee, TransactionTypeTuitionA, TransactionTypeTuitionB:
		return true
	}
	return false
}

// Transactions are never deleted; only status moves.
type TransactionModel struct {
	TransactionID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:transaction_id" json:"transaction_id"`
	TransactionEnrollmentID uuid.UUID         `gorm:"type:uuid;not null;index;column:transaction_enrollment_id" json:"transaction_enrollment_id"`
	TransactionType         TransactionType   `gorm:"type:varchar(24);not null;column:transaction_type" json:"transaction_type"`
	TransactionStatus       TransactionStatus `gorm:"type:varchar(16);not null;default:'pending';column:transaction_status" json:"transaction_status"`

	TransactionAmountDueCents int64       `gorm:"not null;default:0;column:transaction_amount_due_cents" json:"transaction_amount_due_cents"`
	TransactionDueDate        dbtime.Date `gorm:"type:date;column:transaction_due_date" json:"transaction_due_date"`

	// Installment bookkeeping (tuition only)
	TransactionInvoiceNumber   *int64  `gorm:"uniqueIndex:uq_transactions_invoice_number;column:transaction_invoice_number" json:"transaction_invoice_number,omitempty"`
	TransactionInvoiceSequence *int    `gorm:"column:transaction_invoice_sequence" json:"transaction_invoice_sequence,omitempty"`
	TransactionItem            *string `gorm:"type:varchar(120);column:transaction_item" json:"transaction_item,omitempty"`
	TransactionMemo            *string `gorm:"type:text;column:transaction_memo" json:"transaction_memo,omitempty"`

	TransactionStripePaymentIntentID *string    `gorm:"type:varchar(64);index;column:transaction_stripe_payment_intent_id" json:"transaction_stripe_payment_intent_id,omitempty"`
	TransactionPaidAt                *time.Time `gorm:"type:timestamptz;column:transaction_paid_at" json:"transaction_paid_at,omitempty"`

	// Payout stamping + reconciliation
	TransactionPayoutID           *string     `gorm:"type:varchar(64);index;column:transaction_payout_id" json:"transaction_payout_id,omitempty"`
	TransactionPayoutDate         dbtime.Date `gorm:"type:date;column:transaction_payout_date" json:"transaction_payout_date"`
	TransactionPaymentAmountCents *int64      `gorm:"column:transaction_payment_amount_cents" json:"transaction_payment_amount_cents,omitempty"`
	TransactionReconciled         bool        `gorm:"not null;default:false;column:transaction_reconciled" json:"transaction_reconciled"`
	TransactionReconciledAt       *time.Time  `gorm:"type:timestamptz;column:transaction_reconciled_at" json:"transaction_reconciled_at,omitempty"`

	TransactionReminderSentAt *time.Time `gorm:"type:timestamptz;column:transaction_reminder_sent_at" json:"transaction_reminder_sent_at,omitempty"`

	TransactionCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:transaction_created_at" json:"transaction_created_at"`
	TransactionUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:transaction_updated_at" json:"transaction_updated_at"`
}

func (TransactionModel) TableName() string { return "transactions" }

// IDCounterModel backs the atomic invoice-number allocator.
type IDCounterModel struct {
	IDCounterName      string    `gorm:"type:varchar(64);primaryKey;column:id_counter_name" json:"id_counter_name"`
	IDCounterValue     int64     `gorm:"not null;column:id_counter_value" json:"id_counter_value"`
	IDCounterUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:id_counter_updated_at" json:"id_counter_updated_at"`
}

func (IDCounterModel) TableName() string { return "id_counters" }
