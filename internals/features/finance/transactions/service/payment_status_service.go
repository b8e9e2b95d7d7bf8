// file: internals/features/finance/transactions/service/payment_status_service.go
package service

import (
	"time"

	"coursedesk_backend/internals/features/finance/transactions/model"
	"coursedesk_backend/internals/helpers/dbtime"
)

type PaymentStatusLabel string

const (
	StatusNoPayments       PaymentStatusLabel = "No payments yet"
	StatusRegFeePastDue    PaymentStatusLabel = "Registration fee past due"
	StatusTuitionAPastDue  PaymentStatusLabel = "Tuition A past due"
	StatusTuitionBPastDue  PaymentStatusLabel = "Tuition B past due"
	StatusAllPaid          PaymentStatusLabel = "All paid"
	StatusFirstPaymentPaid PaymentStatusLabel = "First payment paid"
	StatusRegFeePaid       PaymentStatusLabel = "Registration fee paid"
	StatusPending          PaymentStatusLabel = "Pending"
)

// TransactionView is the slice of a transaction the status rule looks at.
type TransactionView struct {
	Type      model.TransactionType
	Status    model.TransactionStatus
	DueDate   dbtime.Date
	CreatedAt time.Time
}

func ViewOf(t model.TransactionModel) TransactionView {
	return TransactionView{
		Type:      t.TransactionType,
		Status:    t.TransactionStatus,
		DueDate:   t.TransactionDueDate,
		CreatedAt: t.TransactionCreatedAt,
	}
}

// IsPastDue: not paid and the due day is strictly before the business-local
// day of now.
func (v TransactionView) IsPastDue(now time.Time) bool {
	if v.Status == model.TransactionStatusPaid || v.DueDate.IsZero() {
		return false
	}
	return v.DueDate.Before(dbtime.DateOf(dbtime.ToBusinessTime(now)))
}

// supersedes reports whether v should stand for its type instead of cur.
// A paid row always wins; otherwise the newest row wins.
func (v TransactionView) supersedes(cur TransactionView) bool {
	vPaid := v.Status == model.TransactionStatusPaid
	curPaid := cur.Status == model.TransactionStatusPaid
	if vPaid != curPaid {
		return vPaid
	}
	if !v.CreatedAt.Equal(cur.CreatedAt) {
		return v.CreatedAt.After(cur.CreatedAt)
	}
	if !v.DueDate.Equal(cur.DueDate) {
		return v.DueDate.After(cur.DueDate)
	}
	return v.Status < cur.Status
}

// latestByType picks one row per transaction type. The result does not
// depend on input order.
func latestByType(txs []TransactionView) map[model.TransactionType]TransactionView {
	byType := make(map[model.TransactionType]TransactionView, len(txs))
	for _, t := range txs {
		if cur, ok := byType[t.Type]; !ok || t.supersedes(cur) {
			byType[t.Type] = t
		}
	}
	return byType
}

// DeriveEnrollmentPaymentStatus computes the enrollment's payment label from
// its transactions. A repeated type (e.g. a second registration fee after a
// refund) is judged by its representative row. First match wins.
func DeriveEnrollmentPaymentStatus(txs []TransactionView, now time.Time) PaymentStatusLabel {
	if len(txs) == 0 {
		return StatusNoPayments
	}

	byType := latestByType(txs)
	reg, hasReg := byType[model.TransactionTypeRegistrationFee]
	a, hasA := byType[model.TransactionTypeTuitionA]
	b, hasB := byType[model.TransactionTypeTuitionB]

	paid := func(v TransactionView, ok bool) bool { return ok && v.Status == model.TransactionStatusPaid }

	switch {
	case hasReg && reg.IsPastDue(now):
		return StatusRegFeePastDue
	case hasA && a.IsPastDue(now):
		return StatusTuitionAPastDue
	case hasB && b.IsPastDue(now):
		return StatusTuitionBPastDue
	case allPaid(byType):
		return StatusAllPaid
	case paid(reg, hasReg) && paid(a, hasA) && !paid(b, hasB):
		return StatusFirstPaymentPaid
	case paid(reg, hasReg) && !paid(a, hasA):
		return StatusRegFeePaid
	}
	return StatusPending
}

func allPaid(txs map[model.TransactionType]TransactionView) bool {
	for _, t := range txs {
		if t.Status != model.TransactionStatusPaid {
			return false
		}
	}
	return true
}
