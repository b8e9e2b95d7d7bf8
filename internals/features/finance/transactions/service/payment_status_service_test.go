package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursedesk_backend/internals/features/finance/transactions/model"
	"coursedesk_backend/internals/helpers/dbtime"
)

var statusNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func tv(typ model.TransactionType, status model.TransactionStatus, due string) TransactionView {
	v := TransactionView{Type: typ, Status: status}
	if due != "" {
		v.DueDate = dbtime.MustParseDate(due)
	}
	return v
}

const (
	past   = "2025-06-01"
	future = "2025-07-01"
)

func TestDeriveEnrollmentPaymentStatus(t *testing.T) {
	reg := model.TransactionTypeRegistrationFee
	a := model.TransactionTypeTuitionA
	b := model.TransactionTypeTuitionB
	paid := model.TransactionStatusPaid
	pending := model.TransactionStatusPending
	cancelled := model.TransactionStatusCancelled
	refunded := model.TransactionStatusRefunded

	tests := []struct {
		name string
		txs  []TransactionView
		want PaymentStatusLabel
	}{
		{"no transactions", nil, StatusNoPayments},
		{
			"first payment paid",
			[]TransactionView{tv(reg, paid, past), tv(a, paid, past), tv(b, pending, future)},
			StatusFirstPaymentPaid,
		},
		{
			"tuition A past due regardless of B",
			[]TransactionView{tv(reg, paid, ""), tv(a, pending, past), tv(b, paid, future)},
			StatusTuitionAPastDue,
		},
		{
			"tuition A past due with B also past due",
			[]TransactionView{tv(reg, paid, ""), tv(a, pending, past), tv(b, pending, past)},
			StatusTuitionAPastDue,
		},
		{
			"registration fee past due beats tuition",
			[]TransactionView{tv(reg, pending, past), tv(a, pending, past)},
			StatusRegFeePastDue,
		},
		{
			"tuition B past due",
			[]TransactionView{tv(reg, paid, ""), tv(a, paid, past), tv(b, pending, past)},
			StatusTuitionBPastDue,
		},
		{
			"all paid",
			[]TransactionView{tv(reg, paid, past), tv(a, paid, past), tv(b, paid, past)},
			StatusAllPaid,
		},
		{
			"registration fee paid only",
			[]TransactionView{tv(reg, paid, ""), tv(a, pending, future), tv(b, pending, future)},
			StatusRegFeePaid,
		},
		{
			"nothing paid nothing due",
			[]TransactionView{tv(reg, pending, future), tv(a, pending, future)},
			StatusPending,
		},
		{
			"due today is not past due",
			[]TransactionView{tv(reg, paid, ""), tv(a, pending, "2025-06-15")},
			StatusRegFeePaid,
		},
		{
			"missing due date never past due",
			[]TransactionView{tv(a, pending, "")},
			StatusPending,
		},
		{
			"cancelled tuition B with an old due date counts as past due",
			[]TransactionView{tv(reg, paid, ""), tv(a, paid, past), tv(b, cancelled, past)},
			StatusTuitionBPastDue,
		},
		{
			"refunded registration fee with an old due date",
			[]TransactionView{tv(reg, refunded, past), tv(a, pending, future), tv(b, pending, future)},
			StatusRegFeePastDue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveEnrollmentPaymentStatus(tt.txs, statusNow))
		})
	}
}

func TestDeriveEnrollmentPaymentStatus_RepeatedTypes(t *testing.T) {
	reg := model.TransactionTypeRegistrationFee
	a := model.TransactionTypeTuitionA
	b := model.TransactionTypeTuitionB
	at := func(v TransactionView, day int) TransactionView {
		v.CreatedAt = time.Date(2025, 5, day, 9, 0, 0, 0, time.UTC)
		return v
	}

	tests := []struct {
		name string
		txs  []TransactionView
		want PaymentStatusLabel
	}{
		{
			"refund then repurchase",
			[]TransactionView{
				at(tv(reg, model.TransactionStatusRefunded, past), 1),
				at(tv(reg, model.TransactionStatusPaid, past), 10),
				at(tv(a, model.TransactionStatusPending, future), 1),
				at(tv(b, model.TransactionStatusPending, future), 1),
			},
			StatusRegFeePaid,
		},
		{
			"paid row wins even when older",
			[]TransactionView{
				at(tv(reg, model.TransactionStatusPaid, past), 1),
				at(tv(reg, model.TransactionStatusPending, past), 10),
				at(tv(a, model.TransactionStatusPending, future), 1),
			},
			StatusRegFeePaid,
		},
		{
			"newest unpaid row wins",
			[]TransactionView{
				at(tv(a, model.TransactionStatusCancelled, past), 1),
				at(tv(a, model.TransactionStatusPending, future), 10),
			},
			StatusPending,
		},
		{
			"superseded refund does not block all paid",
			[]TransactionView{
				at(tv(reg, model.TransactionStatusRefunded, past), 1),
				at(tv(reg, model.TransactionStatusPaid, past), 10),
				at(tv(a, model.TransactionStatusPaid, past), 1),
				at(tv(b, model.TransactionStatusPaid, past), 1),
			},
			StatusAllPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveEnrollmentPaymentStatus(tt.txs, statusNow))

			reversed := make([]TransactionView, len(tt.txs))
			for i, v := range tt.txs {
				reversed[len(tt.txs)-1-i] = v
			}
			assert.Equal(t, tt.want, DeriveEnrollmentPaymentStatus(reversed, statusNow), "reversed order")
		})
	}
}

func TestTransactionView_IsPastDue(t *testing.T) {
	assert.True(t, tv(model.TransactionTypeTuitionA, model.TransactionStatusPending, past).IsPastDue(statusNow))
	assert.False(t, tv(model.TransactionTypeTuitionA, model.TransactionStatusPaid, past).IsPastDue(statusNow))
	assert.False(t, tv(model.TransactionTypeTuitionA, model.TransactionStatusPending, future).IsPastDue(statusNow))
}

func TestStatusByEnrollment(t *testing.T) {
	e1, e2 := uuid.New(), uuid.New()

	rows := StatusByEnrollment(
		[]uuid.UUID{e1, e2},
		map[uuid.UUID][]model.TransactionModel{
			e1: {{TransactionEnrollmentID: e1, TransactionType: model.TransactionTypeRegistrationFee, TransactionStatus: model.TransactionStatusPaid}},
		},
		statusNow,
	)
	require.Len(t, rows, 2)
	assert.Equal(t, StatusRegFeePaid, rows[e1])
	assert.Equal(t, StatusNoPayments, rows[e2])
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, ValidateTransition(model.TransactionStatusPending, model.TransactionStatusPaid))
	assert.NoError(t, ValidateTransition(model.TransactionStatusPending, model.TransactionStatusCancelled))
	assert.NoError(t, ValidateTransition(model.TransactionStatusPaid, model.TransactionStatusRefunded))

	assert.Error(t, ValidateTransition(model.TransactionStatusPaid, model.TransactionStatusPending))
	assert.Error(t, ValidateTransition(model.TransactionStatusCancelled, model.TransactionStatusPaid))
	assert.Error(t, ValidateTransition(model.TransactionStatusPending, "archived"))
}
