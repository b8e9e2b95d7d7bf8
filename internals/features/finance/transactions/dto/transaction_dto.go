// file: internals/features/finance/transactions/dto/transaction_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"coursedesk_backend/internals/features/finance/transactions/model"
	"coursedesk_backend/internals/helpers/dbtime"
)

/* =========================================================
   Requests
   ========================================================= */

type UpdateTransactionStatusRequest struct {
	TransactionStatus model.TransactionStatus `json:"transaction_status" validate:"required,oneof=pending paid cancelled refunded"`
}

/* =========================================================
   Responses
   ========================================================= */

type TransactionResponse struct {
	TransactionID           uuid.UUID               `json:"transaction_id"`
	TransactionEnrollmentID uuid.UUID               `json:"transaction_enrollment_id"`
	TransactionType         model.TransactionType   `json:"transaction_type"`
	TransactionStatus       model.TransactionStatus `json:"transaction_status"`
	TransactionIsPastDue    bool                    `json:"transaction_is_past_due"`

	TransactionAmountDueCents int64       `json:"transaction_amount_due_cents"`
	TransactionDueDate        dbtime.Date `json:"transaction_due_date"`

	TransactionInvoiceNumber   *int64  `json:"transaction_invoice_number,omitempty"`
	TransactionInvoiceSequence *int    `json:"transaction_invoice_sequence,omitempty"`
	TransactionItem            *string `json:"transaction_item,omitempty"`
	TransactionMemo            *string `json:"transaction_memo,omitempty"`

	TransactionStripePaymentIntentID *string    `json:"transaction_stripe_payment_intent_id,omitempty"`
	TransactionPaidAt                *time.Time `json:"transaction_paid_at,omitempty"`

	TransactionPayoutID           *string     `json:"transaction_payout_id,omitempty"`
	TransactionPayoutDate         dbtime.Date `json:"transaction_payout_date"`
	TransactionPaymentAmountCents *int64      `json:"transaction_payment_amount_cents,omitempty"`
	TransactionReconciled         bool        `json:"transaction_reconciled"`
	TransactionReconciledAt       *time.Time  `json:"transaction_reconciled_at,omitempty"`

	TransactionCreatedAt time.Time `json:"transaction_created_at"`
	TransactionUpdatedAt time.Time `json:"transaction_updated_at"`
}

func FromModel(m model.TransactionModel, pastDue bool) TransactionResponse {
	return TransactionResponse{
		TransactionID:                    m.TransactionID,
		TransactionEnrollmentID:          m.TransactionEnrollmentID,
		TransactionType:                  m.TransactionType,
		TransactionStatus:                m.TransactionStatus,
		TransactionIsPastDue:             pastDue,
		TransactionAmountDueCents:        m.TransactionAmountDueCents,
		TransactionDueDate:               m.TransactionDueDate,
		TransactionInvoiceNumber:         m.TransactionInvoiceNumber,
		TransactionInvoiceSequence:       m.TransactionInvoiceSequence,
		TransactionItem:                  m.TransactionItem,
		TransactionMemo:                  m.TransactionMemo,
		TransactionStripePaymentIntentID: m.TransactionStripePaymentIntentID,
		TransactionPaidAt:                m.TransactionPaidAt,
		TransactionPayoutID:              m.TransactionPayoutID,
		TransactionPayoutDate:            m.TransactionPayoutDate,
		TransactionPaymentAmountCents:    m.TransactionPaymentAmountCents,
		TransactionReconciled:            m.TransactionReconciled,
		TransactionReconciledAt:          m.TransactionReconciledAt,
		TransactionCreatedAt:             m.TransactionCreatedAt,
		TransactionUpdatedAt:             m.TransactionUpdatedAt,
	}
}
